package minigame

import (
	"fmt"
	"slices"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/i18n"
)

// Domain pick rewards.
const (
	CorrectXP = 20
	WrongXP   = 8
)

// Rand is the randomness a round needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Round is one domain pick: the real domain hidden among look-alikes.
type Round struct {
	real    string
	Options []string `json:"options"`
}

// NewRound picks one of rounds and shuffles its options.
func NewRound(rounds []catalog.DomainRound, rng Rand) (*Round, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("no domain rounds available")
	}
	r := rounds[rng.Intn(len(rounds))]
	opts := append([]string{r.Real}, r.Fakes...)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return &Round{real: r.Real, Options: opts}, nil
}

// Real returns the genuine domain.
func (r *Round) Real() string { return r.real }

// Answer judges a chosen option and returns the coach feedback for it.
func (r *Round) Answer(option string) (coach.Feedback, error) {
	if !slices.Contains(r.Options, option) {
		return coach.Feedback{}, apperrors.WithMetadata(apperrors.CodeMinigameOptionInvalid,
			fmt.Sprintf("option %q is not in this round", option),
			map[string]string{"Option": option})
	}
	f := coach.Feedback{
		Kind:   coach.KindDomainPick,
		Detail: r.real,
		Tip:    i18n.TipDomainKey,
	}
	if option == r.real {
		f.Correct = true
		f.Mood = coach.MoodSuccess
		f.Title = i18n.TitleCorrectKey
		f.Summary = i18n.DomainRealKey
		f.GainedXP = CorrectXP
		f.StreakDelta = 1
	} else {
		f.Mood = coach.MoodFail
		f.Title = i18n.TitleNopeKey
		f.Summary = i18n.DomainFakeKey
		f.GainedXP = WrongXP
		f.StreakDelta = -1
	}
	return f, nil
}
