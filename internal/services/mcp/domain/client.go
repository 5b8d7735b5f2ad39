package domain

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/NickTran11/masterbait/internal/platform/timeouts"
	playgrpc "github.com/NickTran11/masterbait/internal/services/play/api/grpc/play"
)

// PlayClient is the PlayService surface the MCP tools use.
type PlayClient interface {
	ListLevels(context.Context, *playgrpc.ListLevelsRequest, ...grpc.CallOption) (*playgrpc.ListLevelsResponse, error)
	StartLevel(context.Context, *playgrpc.StartLevelRequest, ...grpc.CallOption) (*playgrpc.StartLevelResponse, error)
	SelectMessage(context.Context, *playgrpc.SelectMessageRequest, ...grpc.CallOption) (*playgrpc.SelectMessageResponse, error)
	RecordClue(context.Context, *playgrpc.RecordClueRequest, ...grpc.CallOption) (*playgrpc.RecordClueResponse, error)
	SubmitDecision(context.Context, *playgrpc.SubmitDecisionRequest, ...grpc.CallOption) (*playgrpc.SubmitDecisionResponse, error)
	ExitLevel(context.Context, *playgrpc.ExitLevelRequest, ...grpc.CallOption) (*playgrpc.ExitLevelResponse, error)
	SetHardMode(context.Context, *playgrpc.SetHardModeRequest, ...grpc.CallOption) (*playgrpc.SetHardModeResponse, error)
	Acknowledge(context.Context, *playgrpc.AcknowledgeRequest, ...grpc.CallOption) (*playgrpc.AcknowledgeResponse, error)
	GetProgress(context.Context, *playgrpc.GetProgressRequest, ...grpc.CallOption) (*playgrpc.GetProgressResponse, error)
	ListJournal(context.Context, *playgrpc.ListJournalRequest, ...grpc.CallOption) (*playgrpc.ListJournalResponse, error)
	NextFlashcard(context.Context, *playgrpc.FlashcardRequest, ...grpc.CallOption) (*playgrpc.FlashcardResponse, error)
	FlipFlashcard(context.Context, *playgrpc.FlashcardRequest, ...grpc.CallOption) (*playgrpc.FlashcardResponse, error)
	NewDomainRound(context.Context, *playgrpc.NewDomainRoundRequest, ...grpc.CallOption) (*playgrpc.NewDomainRoundResponse, error)
	AnswerDomainRound(context.Context, *playgrpc.AnswerDomainRoundRequest, ...grpc.CallOption) (*playgrpc.AnswerDomainRoundResponse, error)
}

var _ PlayClient = (*playgrpc.Client)(nil)

// Context is the play session the MCP server acts on.
type Context struct {
	SessionID string
	// Locale selects the language of coach messages and error text.
	Locale string
}

// callContext bounds a tool's gRPC call and attaches the locale header.
func callContext(ctx context.Context, getContext func() Context) (context.Context, string, context.CancelFunc, error) {
	c := getContext()
	if c.SessionID == "" {
		return nil, "", nil, fmt.Errorf("no play session is active")
	}
	runCtx, cancel := context.WithTimeout(ctx, timeouts.ToolCall)
	if c.Locale != "" {
		runCtx = metadata.AppendToOutgoingContext(runCtx, playgrpc.LocaleHeader, c.Locale)
	}
	return runCtx, c.SessionID, cancel, nil
}
