package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	playgrpc "github.com/NickTran11/masterbait/internal/services/play/api/grpc/play"
)

// JournalListInput represents the MCP tool input for reading the event journal.
type JournalListInput struct {
	Filter   string `json:"filter,omitempty" jsonschema:"AIP-160 filter over type, level_id and ts"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"keep only the newest N entries"`
}

// JournalEntry is one recorded controller event.
type JournalEntry struct {
	Seq           uint64 `json:"seq" jsonschema:"journal sequence number"`
	Type          string `json:"type" jsonschema:"event type"`
	LevelID       int    `json:"level_id,omitempty" jsonschema:"level the event belongs to"`
	Ts            string `json:"ts" jsonschema:"RFC3339 event time"`
	Phase         string `json:"phase" jsonschema:"controller phase after the event"`
	TimeRemaining int    `json:"time_remaining,omitempty" jsonschema:"countdown value, for ticks"`
	Detail        string `json:"detail,omitempty" jsonschema:"clue text, distraction title or feedback mood"`
}

// JournalListResult represents the MCP tool output for reading the journal.
type JournalListResult struct {
	Entries []JournalEntry `json:"entries" jsonschema:"entries, oldest first"`
}

// JournalListTool defines the MCP tool schema for reading the journal.
func JournalListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "journal_list",
		Description: "Lists recent session events, optionally filtered (e.g. type = \"level.resolved\")",
	}
}

// JournalListHandler reads the session event journal.
func JournalListHandler(client PlayClient, getContext func() Context) mcp.ToolHandlerFor[JournalListInput, JournalListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input JournalListInput) (*mcp.CallToolResult, JournalListResult, error) {
		if input.PageSize < 0 {
			return nil, JournalListResult{}, fmt.Errorf("page_size must not be negative")
		}
		callCtx, sessionID, cancel, err := callContext(ctx, getContext)
		if err != nil {
			return nil, JournalListResult{}, err
		}
		defer cancel()

		resp, err := client.ListJournal(callCtx, &playgrpc.ListJournalRequest{
			SessionID: sessionID,
			Filter:    input.Filter,
			PageSize:  input.PageSize,
		})
		if err != nil {
			return nil, JournalListResult{}, fmt.Errorf("journal list failed: %w", err)
		}
		result := JournalListResult{Entries: make([]JournalEntry, 0, len(resp.Entries))}
		for _, e := range resp.Entries {
			entry := JournalEntry{
				Seq:           e.Seq,
				Type:          string(e.Type),
				LevelID:       e.LevelID,
				Ts:            e.At.Format(time.RFC3339),
				Phase:         string(e.Event.Phase),
				TimeRemaining: e.Event.TimeRemaining,
			}
			switch {
			case e.Event.Clue != nil:
				entry.Detail = e.Event.Clue.Text
			case e.Event.Distraction != nil:
				entry.Detail = e.Event.Distraction.Title
			case e.Event.Feedback != nil:
				entry.Detail = string(e.Event.Feedback.Mood)
			}
			result.Entries = append(result.Entries, entry)
		}
		return nil, result, nil
	}
}
