// Package scoring turns a decision into a correctness verdict and a star
// rating, and resolves the ground truth a decision is judged against. Both
// functions are pure.
package scoring

import "github.com/NickTran11/masterbait/internal/services/play/domain/catalog"

const (
	// MaxStars is the best rating for a level.
	MaxStars = 3
	// CluesPerBonus is how many clues earn the investigation bonus.
	CluesPerBonus = 3
	// SpeedThresholdSeconds is the time remaining that earns the speed bonus.
	SpeedThresholdSeconds = 25
)

// Summary lines. They double as message keys for localization.
const (
	SummaryCorrect   = "Good choice. You reduced risk and stayed calm."
	SummaryIncorrect = "Risky choice. In real life, this could expose data."
	SummaryTimeout   = "Time ran out. Pressure causes mistakes."
)

// Input is everything a decision is scored on.
type Input struct {
	Action        catalog.Action
	Truth         catalog.Truth
	BestAction    catalog.Action
	ClueCount     int
	TimeRemaining int
}

// Result is the verdict for one decision.
type Result struct {
	Correct    bool   `json:"correct"`
	Stars      int    `json:"stars"`
	Summary    string `json:"summary"`
	ClueBonus  int    `json:"clue_bonus"`
	SpeedBonus int    `json:"speed_bonus"`
	BestBonus  int    `json:"best_bonus"`
	TimedOut   bool   `json:"timed_out,omitempty"`
}

// IsCorrect judges an action against the truth. Cautious actions are always
// correct; on a safe message anything but engaging is correct.
func IsCorrect(action catalog.Action, truth catalog.Truth) bool {
	if action == catalog.ActionTimeout {
		return false
	}
	if truth == catalog.TruthPhish {
		return action.Safe()
	}
	return !action.Risky()
}

// Score rates a decision.
func Score(in Input) Result {
	if in.Action == catalog.ActionTimeout {
		return Result{Summary: SummaryTimeout, TimedOut: true}
	}

	r := Result{Correct: IsCorrect(in.Action, in.Truth)}
	r.ClueBonus = min(1, max(0, in.ClueCount)/CluesPerBonus)
	if in.TimeRemaining >= SpeedThresholdSeconds {
		r.SpeedBonus = 1
	}
	if in.Action == in.BestAction {
		r.BestBonus = 1
	}

	stars := clamp(1+r.ClueBonus+r.SpeedBonus+r.BestBonus, 0, MaxStars)
	if !r.Correct {
		stars = max(0, stars-1)
	}
	r.Stars = stars

	if r.Correct {
		r.Summary = SummaryCorrect
	} else {
		r.Summary = SummaryIncorrect
	}
	return r
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
