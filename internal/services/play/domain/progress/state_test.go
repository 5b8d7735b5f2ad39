package progress

import (
	"math/rand"
	"testing"
	"time"
)

func TestNewState(t *testing.T) {
	s := New()
	if s.UnlockedLevel != 1 || s.SelectedLevel != 1 {
		t.Fatalf("new state = %+v, want level 1 unlocked and selected", s)
	}
	if !s.Unlocked(1) || s.Unlocked(2) || s.Unlocked(0) {
		t.Fatal("unexpected unlock set for fresh session")
	}
}

func TestRecordUnlocksNextOnCorrect(t *testing.T) {
	s := New()
	if !s.Record(1, 4, true, 2) {
		t.Fatal("expected progression change")
	}
	if s.UnlockedLevel != 2 || s.StarsByLevel[1] != 2 {
		t.Fatalf("state = %+v, want unlocked 2 and 2 stars on level 1", s)
	}
}

func TestRecordIncorrectKeepsUnlock(t *testing.T) {
	s := New()
	s.Record(1, 4, false, 1)
	if s.UnlockedLevel != 1 {
		t.Fatalf("unlocked = %d, want 1", s.UnlockedLevel)
	}
	if s.StarsByLevel[1] != 1 {
		t.Fatalf("stars = %d, want 1", s.StarsByLevel[1])
	}
}

func TestRecordCapsAtMaxLevel(t *testing.T) {
	s := New()
	s.UnlockedLevel = 4
	s.Record(4, 4, true, 3)
	if s.UnlockedLevel != 4 {
		t.Fatalf("unlocked = %d, want 4", s.UnlockedLevel)
	}
}

func TestRecordReplayDoesNotRegress(t *testing.T) {
	s := New()
	s.Record(1, 4, true, 3)
	s.Record(2, 4, true, 1)
	if s.Record(1, 4, true, 1) {
		t.Fatal("expected no change replaying level 1 with fewer stars")
	}
	if s.UnlockedLevel != 3 || s.StarsByLevel[1] != 3 {
		t.Fatalf("state = %+v, want unlocked 3 and level 1 at 3 stars", s)
	}
}

func TestRecordMonotonicUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New()
	for range 500 {
		beforeUnlocked := s.UnlockedLevel
		levelID := 1 + rng.Intn(s.UnlockedLevel)
		beforeStars := s.StarsByLevel[levelID]
		correct := rng.Intn(2) == 0
		stars := rng.Intn(4)

		s.Record(levelID, 4, correct, stars)

		if s.UnlockedLevel < beforeUnlocked {
			t.Fatalf("unlocked decreased from %d to %d", beforeUnlocked, s.UnlockedLevel)
		}
		if s.UnlockedLevel > beforeUnlocked && (!correct || levelID != beforeUnlocked) {
			t.Fatalf("unlock advanced without a correct result on the frontier level (level %d, correct %v)", levelID, correct)
		}
		if s.StarsByLevel[levelID] < beforeStars {
			t.Fatalf("stars for level %d decreased from %d to %d", levelID, beforeStars, s.StarsByLevel[levelID])
		}
	}
}

func TestAwardFloorsAtZero(t *testing.T) {
	s := New()
	s.Award(30, 1)
	s.Award(5, -1)
	s.Award(5, -1)
	if s.XP != 40 || s.Streak != 0 {
		t.Fatalf("tally = %d xp / %d streak, want 40 / 0", s.XP, s.Streak)
	}
	s.Award(-100, 0)
	if s.XP != 0 {
		t.Fatalf("xp = %d, want 0", s.XP)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := New()
	s.Record(1, 4, true, 2)
	s.AddClue(time.Now(), "hint")
	snap := s.Snapshot()
	snap.StarsByLevel[1] = 0
	snap.Clues[0].Text = "mutated"
	if s.StarsByLevel[1] != 2 {
		t.Fatal("expected snapshot stars to be copied")
	}
	if s.Clues.Entries()[0].Text != "hint" {
		t.Fatal("expected snapshot clues to be copied")
	}
}
