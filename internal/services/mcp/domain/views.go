package domain

import (
	"slices"
	"time"

	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
	"github.com/NickTran11/masterbait/internal/services/play/domain/progress"
)

// LevelStars is the best rating recorded for one level.
type LevelStars struct {
	LevelID int `json:"level_id" jsonschema:"level identifier"`
	Stars   int `json:"stars" jsonschema:"best star rating (0-3)"`
}

// ClueView is one clue log entry.
type ClueView struct {
	At   string `json:"at" jsonschema:"RFC3339 time the clue was recorded"`
	Text string `json:"text" jsonschema:"clue text"`
}

// MessageSummary is an inbox row.
type MessageSummary struct {
	Index   int    `json:"index" jsonschema:"message index for message_select"`
	Sender  string `json:"sender" jsonschema:"display name of the sender"`
	Subject string `json:"subject" jsonschema:"subject line"`
	Snippet string `json:"snippet" jsonschema:"plain-text preview of the body"`
}

// SmsView is one SMS bubble.
type SmsView struct {
	Sender    string `json:"sender" jsonschema:"sender number or name"`
	Timestamp string `json:"timestamp" jsonschema:"display timestamp"`
	Text      string `json:"text" jsonschema:"message text"`
}

// FeedbackResult is the coach verdict for a level decision or mini-game answer.
type FeedbackResult struct {
	Kind           string   `json:"kind" jsonschema:"level or domain_pick"`
	LevelID        int      `json:"level_id,omitempty" jsonschema:"level that was resolved"`
	Mood           string   `json:"mood" jsonschema:"success, warning or fail"`
	Correct        bool     `json:"correct" jsonschema:"whether the choice was safe for the truth"`
	Stars          int      `json:"stars" jsonschema:"stars awarded (0-3)"`
	Action         string   `json:"action,omitempty" jsonschema:"action that resolved the level"`
	TeachingPoints []string `json:"teaching_points,omitempty" jsonschema:"lessons for this scenario"`
	GainedXP       int      `json:"gained_xp" jsonschema:"coach experience gained"`
	StreakDelta    int      `json:"streak_delta" jsonschema:"change to the streak (+1 or -1)"`
	Message        string   `json:"message" jsonschema:"rendered coach message"`
}

func feedbackResult(fb coach.Feedback, message string) FeedbackResult {
	return FeedbackResult{
		Kind:           string(fb.Kind),
		LevelID:        fb.LevelID,
		Mood:           string(fb.Mood),
		Correct:        fb.Correct,
		Stars:          fb.Stars,
		Action:         string(fb.Action),
		TeachingPoints: fb.TeachingPoints,
		GainedXP:       fb.GainedXP,
		StreakDelta:    fb.StreakDelta,
		Message:        message,
	}
}

// ProgressResult is the session state.
type ProgressResult struct {
	Phase         string       `json:"phase" jsonschema:"controller phase (idle, running, resolved)"`
	LevelID       int          `json:"level_id,omitempty" jsonschema:"active level, if any"`
	TimeRemaining int          `json:"time_remaining,omitempty" jsonschema:"seconds left on the active level"`
	UnlockedLevel int          `json:"unlocked_level" jsonschema:"highest playable level"`
	SelectedLevel int          `json:"selected_level" jsonschema:"last started level"`
	HardMode      bool         `json:"hard_mode" jsonschema:"whether distractions are on"`
	XP            int          `json:"xp" jsonschema:"coach experience total"`
	Streak        int          `json:"streak" jsonschema:"current correct-answer streak"`
	Stars         []LevelStars `json:"stars" jsonschema:"best stars per level"`
	Clues         []ClueView   `json:"clues" jsonschema:"clue log, newest first"`
}

func progressResult(v level.View) ProgressResult {
	out := ProgressResult{
		Phase:         string(v.Phase),
		UnlockedLevel: v.Progress.UnlockedLevel,
		SelectedLevel: v.Progress.SelectedLevel,
		HardMode:      v.Progress.HardMode,
		XP:            v.Progress.XP,
		Streak:        v.Progress.Streak,
		Stars:         starsList(v.Progress),
		Clues:         make([]ClueView, 0, len(v.Progress.Clues)),
	}
	if v.Active != nil {
		out.LevelID = v.Active.Level.ID
		out.TimeRemaining = v.Active.TimeRemaining
	}
	for _, c := range v.Progress.Clues {
		out.Clues = append(out.Clues, ClueView{At: c.At.Format(time.RFC3339), Text: c.Text})
	}
	return out
}

func starsList(p progress.Snapshot) []LevelStars {
	out := make([]LevelStars, 0, len(p.StarsByLevel))
	for id, stars := range p.StarsByLevel {
		out = append(out, LevelStars{LevelID: id, Stars: stars})
	}
	slices.SortFunc(out, func(a, b LevelStars) int { return a.LevelID - b.LevelID })
	return out
}

func inboxSummary(inbox *catalog.EmailScenario) []MessageSummary {
	if inbox == nil {
		return nil
	}
	out := make([]MessageSummary, 0, len(inbox.Messages))
	for i, m := range inbox.Messages {
		out = append(out, MessageSummary{Index: i, Sender: m.Sender, Subject: m.Subject, Snippet: m.Snippet()})
	}
	return out
}

func threadView(thread catalog.SmsScenario) []SmsView {
	out := make([]SmsView, 0, len(thread))
	for _, m := range thread {
		out = append(out, SmsView{Sender: m.Sender, Timestamp: m.Timestamp, Text: m.Text})
	}
	return out
}
