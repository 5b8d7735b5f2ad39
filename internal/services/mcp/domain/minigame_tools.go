package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"

	playgrpc "github.com/NickTran11/masterbait/internal/services/play/api/grpc/play"
)

// FlashcardInput represents the MCP tool input for the flashcard tools.
type FlashcardInput struct{}

// FlashcardResult is the visible flashcard.
type FlashcardResult struct {
	Index   int    `json:"index" jsonschema:"card position"`
	Total   int    `json:"total" jsonschema:"cards in the deck"`
	Front   string `json:"front" jsonschema:"card prompt"`
	Body    string `json:"body" jsonschema:"answer once flipped, otherwise a hint to flip"`
	Flipped bool   `json:"flipped" jsonschema:"whether the answer is showing"`
}

// FlashcardNextTool defines the MCP tool schema for advancing the deck.
func FlashcardNextTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "flashcard_next",
		Description: "Advances to the next flashcard, face down",
	}
}

// FlashcardFlipTool defines the MCP tool schema for flipping a card.
func FlashcardFlipTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "flashcard_flip",
		Description: "Flips the current flashcard",
	}
}

type flashcardCall func(context.Context, *playgrpc.FlashcardRequest, ...grpc.CallOption) (*playgrpc.FlashcardResponse, error)

// FlashcardNextHandler advances the deck.
func FlashcardNextHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[FlashcardInput, FlashcardResult] {
	return flashcardHandler("flashcard next", client.NextFlashcard, getContext)
}

// FlashcardFlipHandler flips the current card.
func FlashcardFlipHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[FlashcardInput, FlashcardResult] {
	return flashcardHandler("flashcard flip", client.FlipFlashcard, getContext)
}

func flashcardHandler(name string, call flashcardCall, getContext func() Context) mcp.ToolHandlerFor[FlashcardInput, FlashcardResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ FlashcardInput) (*mcp.CallToolResult, FlashcardResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, FlashcardResult{}, err
		}
		defer cancel()

		resp, err := call(callCtx, &playgrpc.FlashcardRequest{SessionID: sessionID})
		if err != nil {
			return nil, FlashcardResult{}, fmt.Errorf("%s failed: %w", name, err)
		}
		c := resp.Card
		return nil, FlashcardResult{Index: c.Index, Total: c.Total, Front: c.Front, Body: c.Body, Flipped: c.Flipped}, nil
	}
}

// DomainRoundNewInput represents the MCP tool input for dealing a domain round.
type DomainRoundNewInput struct{}

// DomainRoundNewResult lists the shuffled domain options.
type DomainRoundNewResult struct {
	Options []string `json:"options" jsonschema:"one real domain among look-alikes"`
}

// DomainRoundNewTool defines the MCP tool schema for dealing a domain round.
func DomainRoundNewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "domain_round_new",
		Description: "Deals a real-or-fake domain round",
	}
}

// DomainRoundNewHandler deals a domain round.
func DomainRoundNewHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[DomainRoundNewInput, DomainRoundNewResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ DomainRoundNewInput) (*mcp.CallToolResult, DomainRoundNewResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, DomainRoundNewResult{}, err
		}
		defer cancel()

		resp, err := client.NewDomainRound(callCtx, &playgrpc.NewDomainRoundRequest{SessionID: sessionID})
		if err != nil {
			return nil, DomainRoundNewResult{}, fmt.Errorf("domain round failed: %w", err)
		}
		return nil, DomainRoundNewResult{Options: resp.Options}, nil
	}
}

// DomainRoundAnswerInput represents the MCP tool input for answering a domain round.
type DomainRoundAnswerInput struct {
	Option string `json:"option" jsonschema:"the domain believed to be real"`
}

// DomainRoundAnswerTool defines the MCP tool schema for answering a domain round.
func DomainRoundAnswerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "domain_round_answer",
		Description: "Answers the dealt domain round and returns the coach feedback",
	}
}

// DomainRoundAnswerHandler answers the dealt domain round.
func DomainRoundAnswerHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[DomainRoundAnswerInput, FeedbackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DomainRoundAnswerInput) (*mcp.CallToolResult, FeedbackResult, error) {
		if input.Option == "" {
			return nil, FeedbackResult{}, fmt.Errorf("option is required")
		}
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, FeedbackResult{}, err
		}
		defer cancel()

		resp, err := client.AnswerDomainRound(callCtx, &playgrpc.AnswerDomainRoundRequest{SessionID: sessionID, Option: input.Option})
		if err != nil {
			return nil, FeedbackResult{}, fmt.Errorf("domain round answer failed: %w", err)
		}
		return nil, feedbackResult(resp.Feedback, resp.Message), nil
	}
}
