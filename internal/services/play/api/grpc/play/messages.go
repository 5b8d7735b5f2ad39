package play

import (
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/clue"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
	"github.com/NickTran11/masterbait/internal/services/play/domain/minigame"
	"github.com/NickTran11/masterbait/internal/services/play/journal"
)

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type CloseSessionRequest struct {
	SessionID string `json:"session_id"`
}

type CloseSessionResponse struct{}

type ListLevelsRequest struct {
	SessionID string `json:"session_id"`
}

// LevelSummary is a level-map entry.
type LevelSummary struct {
	Level    catalog.Level `json:"level"`
	Unlocked bool          `json:"unlocked"`
	Stars    int           `json:"stars"`
}

type ListLevelsResponse struct {
	Levels []LevelSummary `json:"levels"`
}

type StartLevelRequest struct {
	SessionID string `json:"session_id"`
	LevelID   int    `json:"level_id"`
}

type StartLevelResponse struct {
	Active level.Active `json:"active"`
}

type SelectMessageRequest struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
}

type SelectMessageResponse struct {
	Message catalog.EmailMessage `json:"message"`
	// Clues are the hints the message's link chips reveal.
	Clues []string `json:"clues"`
}

type RecordClueRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type RecordClueResponse struct {
	Clue clue.Entry `json:"clue"`
}

type SubmitDecisionRequest struct {
	SessionID string         `json:"session_id"`
	Action    catalog.Action `json:"action"`
}

type SubmitDecisionResponse struct {
	Feedback coach.Feedback `json:"feedback"`
	// Message is the coach text rendered for the caller's locale.
	Message string `json:"message"`
}

type ExitLevelRequest struct {
	SessionID string `json:"session_id"`
}

type ExitLevelResponse struct{}

type SetHardModeRequest struct {
	SessionID string `json:"session_id"`
	Enabled   bool   `json:"enabled"`
}

type SetHardModeResponse struct {
	HardMode bool `json:"hard_mode"`
}

type AcknowledgeRequest struct {
	SessionID string `json:"session_id"`
}

type AcknowledgeResponse struct{}

type GetProgressRequest struct {
	SessionID string `json:"session_id"`
}

type GetProgressResponse struct {
	View level.View `json:"view"`
}

type ListJournalRequest struct {
	SessionID string `json:"session_id"`
	Filter    string `json:"filter"`
	PageSize  int    `json:"page_size"`
}

type ListJournalResponse struct {
	Entries []journal.Entry `json:"entries"`
}

type WatchRequest struct {
	SessionID string `json:"session_id"`
}

type FlashcardRequest struct {
	SessionID string `json:"session_id"`
}

type FlashcardResponse struct {
	Card minigame.CardView `json:"card"`
}

type NewDomainRoundRequest struct {
	SessionID string `json:"session_id"`
}

type NewDomainRoundResponse struct {
	Options []string `json:"options"`
}

type AnswerDomainRoundRequest struct {
	SessionID string `json:"session_id"`
	Option    string `json:"option"`
}

type AnswerDomainRoundResponse struct {
	Feedback coach.Feedback `json:"feedback"`
	Message  string         `json:"message"`
}
