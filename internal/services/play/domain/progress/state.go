// Package progress holds the mutable per-session record: which levels are
// unlocked, the best stars earned on each, the hard-mode toggle and the
// coach tally. It is owned by a single level controller and is not safe for
// concurrent use on its own.
package progress

import (
	"maps"
	"time"

	"github.com/NickTran11/masterbait/internal/services/play/domain/clue"
)

// State is the session record.
type State struct {
	UnlockedLevel int
	StarsByLevel  map[int]int
	SelectedLevel int
	HardMode      bool
	Clues         clue.Log
	XP            int
	Streak        int
}

// New returns the state of a fresh session: level 1 unlocked and selected.
func New() *State {
	return &State{
		UnlockedLevel: 1,
		StarsByLevel:  make(map[int]int),
		SelectedLevel: 1,
	}
}

// Unlocked reports whether the level may be started.
func (s *State) Unlocked(levelID int) bool {
	return levelID >= 1 && levelID <= s.UnlockedLevel
}

// Record applies a resolved level. A correct result unlocks the next level
// up to maxLevel; stars only ever improve. It reports whether the visible
// progression changed.
func (s *State) Record(levelID, maxLevel int, correct bool, stars int) bool {
	changed := false
	if correct {
		next := min(maxLevel, levelID+1)
		if next > s.UnlockedLevel {
			s.UnlockedLevel = next
			changed = true
		}
	}
	if s.StarsByLevel == nil {
		s.StarsByLevel = make(map[int]int)
	}
	if prev, ok := s.StarsByLevel[levelID]; !ok || stars > prev {
		s.StarsByLevel[levelID] = max(prev, stars)
		changed = true
	}
	return changed
}

// Award adds coach XP and a streak delta. Both totals floor at zero.
func (s *State) Award(xp, streakDelta int) {
	s.XP = max(0, s.XP+xp)
	s.Streak = max(0, s.Streak+streakDelta)
}

// AddClue records a clue discovered at time at.
func (s *State) AddClue(at time.Time, text string) {
	s.Clues.Add(at, text)
}

// Snapshot is a read-only copy of the state for outbound events.
type Snapshot struct {
	UnlockedLevel int          `json:"unlocked_level"`
	StarsByLevel  map[int]int  `json:"stars_by_level"`
	SelectedLevel int          `json:"selected_level"`
	HardMode      bool         `json:"hard_mode"`
	Clues         []clue.Entry `json:"clues,omitempty"`
	XP            int          `json:"xp"`
	Streak        int          `json:"streak"`
}

// Snapshot copies the state.
func (s *State) Snapshot() Snapshot {
	stars := make(map[int]int, len(s.StarsByLevel))
	maps.Copy(stars, s.StarsByLevel)
	return Snapshot{
		UnlockedLevel: s.UnlockedLevel,
		StarsByLevel:  stars,
		SelectedLevel: s.SelectedLevel,
		HardMode:      s.HardMode,
		Clues:         s.Clues.Entries(),
		XP:            s.XP,
		Streak:        s.Streak,
	}
}
