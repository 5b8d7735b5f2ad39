// Package coach builds the feedback shown after a decision: mood, title,
// experience, streak and the message the coach types out.
package coach

import (
	"strings"

	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/scoring"
	"github.com/NickTran11/masterbait/internal/services/play/i18n"
)

// Mood colors the coach frame.
type Mood string

const (
	MoodSuccess Mood = "success"
	MoodWarning Mood = "warning"
	MoodFail    Mood = "fail"
)

// Kind tells level feedback from mini-game feedback.
type Kind string

const (
	KindLevel      Kind = "level"
	KindDomainPick Kind = "domain_pick"
)

// MinXP is the floor on experience gained per level.
const MinXP = 5

// Feedback is the payload of a resolved level or mini-game answer. Title,
// Summary and Tip are message keys.
type Feedback struct {
	Kind           Kind           `json:"kind"`
	LevelID        int            `json:"level_id,omitempty"`
	Mood           Mood           `json:"mood"`
	Title          string         `json:"title"`
	Correct        bool           `json:"correct"`
	Stars          int            `json:"stars"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	TeachingPoints []string       `json:"teaching_points,omitempty"`
	GainedXP       int            `json:"gained_xp"`
	StreakDelta    int            `json:"streak_delta"`
	Action         catalog.Action `json:"action,omitempty"`
	Tip            string         `json:"tip"`
	Cheer          string         `json:"cheer,omitempty"`
}

// MoodFor picks the mood: success for the best correct action, warning for
// any other correct action, fail otherwise.
func MoodFor(action, best catalog.Action, correct bool) Mood {
	switch {
	case action == catalog.ActionTimeout || !correct:
		return MoodFail
	case action == best:
		return MoodSuccess
	default:
		return MoodWarning
	}
}

// XP is the experience for a level result.
func XP(stars int, correct bool) int {
	gained := stars * 10
	if correct {
		gained += 10
	}
	return max(MinXP, gained)
}

// StreakDelta is +1 for a correct result and -1 otherwise.
func StreakDelta(correct bool) int {
	if correct {
		return 1
	}
	return -1
}

// Build assembles level feedback from the decision and its score.
func Build(levelID int, action catalog.Action, pack scoring.TruthPack, result scoring.Result) Feedback {
	mood := MoodFor(action, pack.BestAction, result.Correct)
	return Feedback{
		Kind:           KindLevel,
		LevelID:        levelID,
		Mood:           mood,
		Title:          titleFor(mood),
		Correct:        result.Correct,
		Stars:          result.Stars,
		Summary:        result.Summary,
		TeachingPoints: append([]string(nil), pack.TeachingPoints...),
		GainedXP:       XP(result.Stars, result.Correct),
		StreakDelta:    StreakDelta(result.Correct),
		Action:         action,
		Tip:            i18n.TipLevelKey,
	}
}

func titleFor(m Mood) string {
	switch m {
	case MoodSuccess:
		return i18n.TitleSuccessKey
	case MoodFail:
		return i18n.TitleFailKey
	default:
		return i18n.TitleWarningKey
	}
}

// StarLine renders stars out of scoring.MaxStars as filled and empty glyphs.
func StarLine(stars int) string {
	stars = max(0, min(scoring.MaxStars, stars))
	return strings.Repeat("★", stars) + strings.Repeat("☆", scoring.MaxStars-stars)
}
