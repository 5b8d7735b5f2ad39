package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
)

var allActions = append(append([]catalog.Action(nil), catalog.PlayerActions...), catalog.ActionTimeout)

func TestCorrectnessTable(t *testing.T) {
	tests := []struct {
		truth  catalog.Truth
		action catalog.Action
		want   bool
	}{
		{catalog.TruthPhish, catalog.ActionReport, true},
		{catalog.TruthPhish, catalog.ActionIgnore, true},
		{catalog.TruthPhish, catalog.ActionCallIT, true},
		{catalog.TruthPhish, catalog.ActionOpen, false},
		{catalog.TruthPhish, catalog.ActionReply, false},
		{catalog.TruthSafe, catalog.ActionReport, true},
		{catalog.TruthSafe, catalog.ActionIgnore, true},
		{catalog.TruthSafe, catalog.ActionCallIT, true},
		{catalog.TruthSafe, catalog.ActionOpen, false},
		{catalog.TruthSafe, catalog.ActionReply, false},
		{catalog.TruthPhish, catalog.ActionTimeout, false},
		{catalog.TruthSafe, catalog.ActionTimeout, false},
	}
	for _, tt := range tests {
		got := Score(Input{Action: tt.action, Truth: tt.truth, BestAction: catalog.ActionReport, TimeRemaining: 30})
		if got.Correct != tt.want {
			t.Fatalf("Score(%s, %s).Correct = %v, want %v", tt.action, tt.truth, got.Correct, tt.want)
		}
	}
}

func TestScoreProperties(t *testing.T) {
	for _, truth := range []catalog.Truth{catalog.TruthPhish, catalog.TruthSafe} {
		for _, best := range catalog.PlayerActions {
			for _, action := range allActions {
				for clues := 0; clues <= 15; clues++ {
					for remaining := 0; remaining <= 60; remaining += 5 {
						in := Input{Action: action, Truth: truth, BestAction: best, ClueCount: clues, TimeRemaining: remaining}
						r := Score(in)
						if r.Stars < 0 || r.Stars > MaxStars {
							t.Fatalf("Score(%+v).Stars = %d, out of range", in, r.Stars)
						}
						if !r.Correct && r.Stars > 2 {
							t.Fatalf("Score(%+v).Stars = %d for incorrect decision", in, r.Stars)
						}
						if action == catalog.ActionTimeout && (r.Correct || r.Stars != 0) {
							t.Fatalf("Score(%+v) = %+v, want timeout to be {false, 0}", in, r)
						}
						if r != Score(in) {
							t.Fatalf("Score(%+v) is not deterministic", in)
						}
					}
				}
			}
		}
	}
}

func TestClueBonus(t *testing.T) {
	for clues := 0; clues <= 40; clues++ {
		r := Score(Input{Action: catalog.ActionReport, Truth: catalog.TruthPhish, BestAction: catalog.ActionReport, ClueCount: clues})
		want := 0
		if clues >= 3 {
			want = 1
		}
		if r.ClueBonus != want {
			t.Fatalf("clue bonus for %d clues = %d, want %d", clues, r.ClueBonus, want)
		}
	}
}

func TestSpeedBonusThreshold(t *testing.T) {
	at := Score(Input{Action: catalog.ActionIgnore, Truth: catalog.TruthSafe, BestAction: catalog.ActionIgnore, TimeRemaining: 25})
	below := Score(Input{Action: catalog.ActionIgnore, Truth: catalog.TruthSafe, BestAction: catalog.ActionIgnore, TimeRemaining: 24})
	if at.SpeedBonus != 1 || below.SpeedBonus != 0 {
		t.Fatalf("speed bonus at 25s = %d, at 24s = %d, want 1 and 0", at.SpeedBonus, below.SpeedBonus)
	}
}

func TestScoreScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Result
	}{
		{
			name: "mass phishing reported with clues and time",
			in:   Input{Action: catalog.ActionReport, Truth: catalog.TruthPhish, BestAction: catalog.ActionReport, ClueCount: 4, TimeRemaining: 30},
			want: Result{Correct: true, Stars: 3, Summary: SummaryCorrect, ClueBonus: 1, SpeedBonus: 1, BestBonus: 1},
		},
		{
			name: "mass phishing opened",
			in:   Input{Action: catalog.ActionOpen, Truth: catalog.TruthPhish, BestAction: catalog.ActionReport, ClueCount: 4, TimeRemaining: 30},
			want: Result{Correct: false, Stars: 2, Summary: SummaryIncorrect, ClueBonus: 1, SpeedBonus: 1},
		},
		{
			name: "slow correct without clues",
			in:   Input{Action: catalog.ActionIgnore, Truth: catalog.TruthPhish, BestAction: catalog.ActionReport, TimeRemaining: 3},
			want: Result{Correct: true, Stars: 1, Summary: SummaryCorrect},
		},
		{
			name: "slow wrong without clues",
			in:   Input{Action: catalog.ActionReply, Truth: catalog.TruthPhish, BestAction: catalog.ActionReport, TimeRemaining: 3},
			want: Result{Correct: false, Stars: 0, Summary: SummaryIncorrect},
		},
		{
			name: "timeout",
			in:   Input{Action: catalog.ActionTimeout, Truth: catalog.TruthPhish, BestAction: catalog.ActionReport, ClueCount: 9, TimeRemaining: 0},
			want: Result{Summary: SummaryTimeout, TimedOut: true},
		},
		{
			name: "over caution on safe message",
			in:   Input{Action: catalog.ActionReport, Truth: catalog.TruthSafe, BestAction: catalog.ActionIgnore, ClueCount: 3, TimeRemaining: 40},
			want: Result{Correct: true, Stars: 3, Summary: SummaryCorrect, ClueBonus: 1, SpeedBonus: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Score(tt.in)); diff != "" {
				t.Fatalf("Score mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
