package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	playgrpc "github.com/NickTran11/masterbait/internal/services/play/api/grpc/play"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
)

// LevelListInput represents the MCP tool input for listing levels.
type LevelListInput struct{}

// LevelSummary is one level-map entry.
type LevelSummary struct {
	ID               int    `json:"id" jsonschema:"level identifier"`
	Title            string `json:"title" jsonschema:"level title"`
	Description      string `json:"description" jsonschema:"level description"`
	Type             string `json:"type" jsonschema:"Email, SMS or Combo"`
	Difficulty       string `json:"difficulty" jsonschema:"Easy, Medium, Hard or Hard+"`
	TimeLimitSeconds int    `json:"time_limit_seconds" jsonschema:"countdown length"`
	Unlocked         bool   `json:"unlocked" jsonschema:"whether the level can be started"`
	Stars            int    `json:"stars" jsonschema:"best stars earned"`
}

// LevelListResult represents the MCP tool output for listing levels.
type LevelListResult struct {
	Levels []LevelSummary `json:"levels" jsonschema:"levels in map order"`
}

// LevelListTool defines the MCP tool schema for listing levels.
func LevelListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "level_list",
		Description: "Lists the levels with unlock state and best stars",
	}
}

// LevelListHandler lists the session's levels.
func LevelListHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[LevelListInput, LevelListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ LevelListInput) (*mcp.CallToolResult, LevelListResult, error) {
		result, err := listLevels(ctx, client, getContext)
		if err != nil {
			return nil, LevelListResult{}, err
		}
		return nil, result, nil
	}
}

func listLevels(ctx context.Context, client PlayClient, getContext func() Context) (LevelListResult, error) {
	callCtx, sessionID, cancel, err := callContext(ctx, getContext)
	if err != nil {
		return LevelListResult{}, err
	}
	defer cancel()

	resp, err := client.ListLevels(callCtx, &playgrpc.ListLevelsRequest{SessionID: sessionID})
	if err != nil {
		return LevelListResult{}, fmt.Errorf("level list failed: %w", err)
	}
	result := LevelListResult{Levels: make([]LevelSummary, 0, len(resp.Levels))}
	for _, l := range resp.Levels {
		result.Levels = append(result.Levels, LevelSummary{
			ID:               l.Level.ID,
			Title:            l.Level.Title,
			Description:      l.Level.Description,
			Type:             string(l.Level.Type),
			Difficulty:       string(l.Level.Difficulty),
			TimeLimitSeconds: l.Level.TimeLimitSeconds,
			Unlocked:         l.Unlocked,
			Stars:            l.Stars,
		})
	}
	return result, nil
}

// LevelStartInput represents the MCP tool input for starting a level.
type LevelStartInput struct {
	LevelID int `json:"level_id" jsonschema:"level identifier (1-4)"`
}

// LevelStartResult represents the MCP tool output for starting a level.
type LevelStartResult struct {
	LevelID       int              `json:"level_id" jsonschema:"started level"`
	Mode          string           `json:"mode" jsonschema:"email, sms or combo"`
	TimeRemaining int              `json:"time_remaining" jsonschema:"seconds on the countdown"`
	HardMode      bool             `json:"hard_mode" jsonschema:"whether distractions are running"`
	MessageIndex  int              `json:"message_index" jsonschema:"loaded inbox message, -1 for none"`
	Inbox         []MessageSummary `json:"inbox,omitempty" jsonschema:"inbox rows for email and combo levels"`
	Thread        []SmsView        `json:"thread,omitempty" jsonschema:"SMS thread for sms and combo levels"`
}

// LevelStartTool defines the MCP tool schema for starting a level.
func LevelStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "level_start",
		Description: "Starts an unlocked level, abandoning any level in progress",
	}
}

// LevelStartHandler starts a level.
func LevelStartHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[LevelStartInput, LevelStartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LevelStartInput) (*mcp.CallToolResult, LevelStartResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, LevelStartResult{}, err
		}
		defer cancel()

		resp, err := client.StartLevel(callCtx, &playgrpc.StartLevelRequest{SessionID: sessionID, LevelID: input.LevelID})
		if err != nil {
			return nil, LevelStartResult{}, fmt.Errorf("level start failed: %w", err)
		}
		a := resp.Active
		return nil, LevelStartResult{
			LevelID:       a.Level.ID,
			Mode:          string(a.Mode),
			TimeRemaining: a.TimeRemaining,
			HardMode:      a.DistractionsActive,
			MessageIndex:  a.MessageIndex,
			Inbox:         inboxSummary(a.Inbox),
			Thread:        threadView(a.Thread),
		}, nil
	}
}

// MessageSelectInput represents the MCP tool input for opening an inbox message.
type MessageSelectInput struct {
	Index int `json:"index" jsonschema:"inbox message index"`
}

// LinkView is a link chip.
type LinkView struct {
	Label string `json:"label" jsonschema:"chip label"`
	URL   string `json:"url" jsonschema:"real destination"`
}

// MessageSelectResult represents the MCP tool output for opening a message.
type MessageSelectResult struct {
	Index   int        `json:"index" jsonschema:"message index"`
	Sender  string     `json:"sender" jsonschema:"display name"`
	Address string     `json:"address" jsonschema:"sender address"`
	ReplyTo string     `json:"reply_to" jsonschema:"reply-to address"`
	Subject string     `json:"subject" jsonschema:"subject line"`
	Body    string     `json:"body" jsonschema:"plain-text body"`
	Links   []LinkView `json:"links" jsonschema:"link chips"`
	Clues   []string   `json:"clues" jsonschema:"hints that can be recorded with clue_record"`
}

// MessageSelectTool defines the MCP tool schema for opening a message.
func MessageSelectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "message_select",
		Description: "Opens an inbox message in the running email or combo level",
	}
}

// MessageSelectHandler opens an inbox message.
func MessageSelectHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[MessageSelectInput, MessageSelectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MessageSelectInput) (*mcp.CallToolResult, MessageSelectResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, MessageSelectResult{}, err
		}
		defer cancel()

		resp, err := client.SelectMessage(callCtx, &playgrpc.SelectMessageRequest{SessionID: sessionID, Index: input.Index})
		if err != nil {
			return nil, MessageSelectResult{}, fmt.Errorf("message select failed: %w", err)
		}
		m := resp.Message
		links := make([]LinkView, 0, len(m.Links))
		for _, l := range m.Links {
			links = append(links, LinkView{Label: l.Label, URL: l.URL})
		}
		return nil, MessageSelectResult{
			Index:   input.Index,
			Sender:  m.Sender,
			Address: m.Address,
			ReplyTo: m.ReplyTo,
			Subject: m.Subject,
			Body:    catalog.PlainText(m.Body),
			Links:   links,
			Clues:   resp.Clues,
		}, nil
	}
}

// ClueRecordInput represents the MCP tool input for recording a clue.
type ClueRecordInput struct {
	Text string `json:"text" jsonschema:"clue text"`
}

// ClueRecordTool defines the MCP tool schema for recording a clue.
func ClueRecordTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "clue_record",
		Description: "Records a discovered clue for the running level",
	}
}

// ClueRecordHandler records a clue.
func ClueRecordHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[ClueRecordInput, ClueView] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClueRecordInput) (*mcp.CallToolResult, ClueView, error) {
		if strings.TrimSpace(input.Text) == "" {
			return nil, ClueView{}, fmt.Errorf("clue text is required")
		}
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, ClueView{}, err
		}
		defer cancel()

		resp, err := client.RecordClue(callCtx, &playgrpc.RecordClueRequest{SessionID: sessionID, Text: input.Text})
		if err != nil {
			return nil, ClueView{}, fmt.Errorf("clue record failed: %w", err)
		}
		return nil, ClueView{At: resp.Clue.At.Format(time.RFC3339), Text: resp.Clue.Text}, nil
	}
}

// DecisionSubmitInput represents the MCP tool input for deciding a level.
type DecisionSubmitInput struct {
	Action string `json:"action" jsonschema:"one of report, ignore, callit, open, reply"`
}

// DecisionSubmitTool defines the MCP tool schema for deciding a level.
func DecisionSubmitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "decision_submit",
		Description: "Submits the player's decision and returns the coach feedback",
	}
}

// DecisionSubmitHandler resolves the running level.
func DecisionSubmitHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[DecisionSubmitInput, FeedbackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DecisionSubmitInput) (*mcp.CallToolResult, FeedbackResult, error) {
		action, err := catalog.ParseAction(input.Action)
		if err != nil {
			return nil, FeedbackResult{}, err
		}
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, FeedbackResult{}, err
		}
		defer cancel()

		resp, err := client.SubmitDecision(callCtx, &playgrpc.SubmitDecisionRequest{SessionID: sessionID, Action: action})
		if err != nil {
			return nil, FeedbackResult{}, fmt.Errorf("decision submit failed: %w", err)
		}
		return nil, feedbackResult(resp.Feedback, resp.Message), nil
	}
}

// LevelExitInput represents the MCP tool input for leaving a level.
type LevelExitInput struct{}

// PhaseResult reports the controller phase after a call.
type PhaseResult struct {
	Phase string `json:"phase" jsonschema:"controller phase"`
}

// LevelExitTool defines the MCP tool schema for leaving a level.
func LevelExitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "level_exit",
		Description: "Leaves the running level without scoring it",
	}
}

// LevelExitHandler abandons the running level.
func LevelExitHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[LevelExitInput, PhaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ LevelExitInput) (*mcp.CallToolResult, PhaseResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, PhaseResult{}, err
		}
		defer cancel()

		if _, err := client.ExitLevel(callCtx, &playgrpc.ExitLevelRequest{SessionID: sessionID}); err != nil {
			return nil, PhaseResult{}, fmt.Errorf("level exit failed: %w", err)
		}
		return nil, PhaseResult{Phase: "idle"}, nil
	}
}

// HardModeSetInput represents the MCP tool input for toggling hard mode.
type HardModeSetInput struct {
	Enabled bool `json:"enabled" jsonschema:"turn distractions on or off"`
}

// HardModeSetResult represents the MCP tool output for toggling hard mode.
type HardModeSetResult struct {
	HardMode bool `json:"hard_mode" jsonschema:"hard mode after the call"`
}

// HardModeSetTool defines the MCP tool schema for toggling hard mode.
func HardModeSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hard_mode_set",
		Description: "Turns distraction notifications on or off",
	}
}

// HardModeSetHandler toggles hard mode.
func HardModeSetHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[HardModeSetInput, HardModeSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HardModeSetInput) (*mcp.CallToolResult, HardModeSetResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, HardModeSetResult{}, err
		}
		defer cancel()

		resp, err := client.SetHardMode(callCtx, &playgrpc.SetHardModeRequest{SessionID: sessionID, Enabled: input.Enabled})
		if err != nil {
			return nil, HardModeSetResult{}, fmt.Errorf("hard mode set failed: %w", err)
		}
		return nil, HardModeSetResult{HardMode: resp.HardMode}, nil
	}
}

// FeedbackAcknowledgeInput represents the MCP tool input for dismissing feedback.
type FeedbackAcknowledgeInput struct{}

// FeedbackAcknowledgeTool defines the MCP tool schema for dismissing feedback.
func FeedbackAcknowledgeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "feedback_acknowledge",
		Description: "Dismisses the coach feedback of a resolved level",
	}
}

// FeedbackAcknowledgeHandler dismisses level feedback.
func FeedbackAcknowledgeHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[FeedbackAcknowledgeInput, PhaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ FeedbackAcknowledgeInput) (*mcp.CallToolResult, PhaseResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, PhaseResult{}, err
		}
		defer cancel()

		if _, err := client.Acknowledge(callCtx, &playgrpc.AcknowledgeRequest{SessionID: sessionID}); err != nil {
			return nil, PhaseResult{}, fmt.Errorf("feedback acknowledge failed: %w", err)
		}
		return nil, PhaseResult{Phase: "idle"}, nil
	}
}

// ProgressGetInput represents the MCP tool input for reading progress.
type ProgressGetInput struct{}

// ProgressGetTool defines the MCP tool schema for reading progress.
func ProgressGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "progress_get",
		Description: "Returns unlock progress, stars, coach tally and the clue log",
	}
}

// ProgressGetHandler reads the session progress.
func ProgressGetHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[ProgressGetInput, ProgressResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ProgressGetInput) (*mcp.CallToolResult, ProgressResult, error) {
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, ProgressResult{}, err
		}
		defer cancel()

		resp, err := client.GetProgress(callCtx, &playgrpc.GetProgressRequest{SessionID: sessionID})
		if err != nil {
			return nil, ProgressResult{}, fmt.Errorf("progress get failed: %w", err)
		}
		return nil, progressResult(resp.View), nil
	}
}
