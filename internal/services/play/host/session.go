package host

import (
	"context"
	"math/rand"
	"sync"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
	"github.com/NickTran11/masterbait/internal/services/play/domain/minigame"
	"github.com/NickTran11/masterbait/internal/services/play/journal"
)

// Session is one isolated player: a level controller with its own journal,
// mini-games and event subscribers.
type Session struct {
	ID         string
	Controller *level.Controller
	Journal    *journal.Journal

	buffer int

	mu      sync.Mutex
	rng     *rand.Rand
	deck    *minigame.Deck
	round   *minigame.Round
	subs    map[int]chan level.Event
	nextSub int
	dropped int
	closed  bool
}

// OnEvent implements level.Listener. Subscribers that are not keeping up
// lose the event rather than stall the controller.
func (s *Session) OnEvent(e level.Event) {
	s.Journal.Append(e)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.dropped++
		}
	}
}

// Subscribe returns a channel of future events and a function that cancels
// the subscription. The channel closes on cancel or when the session closes.
func (s *Session) Subscribe() (<-chan level.Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan level.Event, s.buffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.nextSub++
	id := s.nextSub
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Dropped returns how many events were discarded for slow subscribers.
func (s *Session) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Flashcard returns the current card.
func (s *Session) Flashcard() minigame.CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Current()
}

// FlipFlashcard reveals the current card's answer.
func (s *Session) FlipFlashcard() minigame.CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Flip()
}

// NextFlashcard advances the deck, wrapping at the end.
func (s *Session) NextFlashcard() minigame.CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Next()
}

// NewDomainRound deals a fresh domain pick and returns its options.
func (s *Session) NewDomainRound() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := minigame.NewRound(s.Controller.Catalog().DomainRounds, s.rng)
	if err != nil {
		return nil, err
	}
	s.round = r
	return append([]string(nil), r.Options...), nil
}

// AnswerDomainRound judges option against the current round and applies the
// reward to the coach tally. The round is spent once answered.
func (s *Session) AnswerDomainRound(ctx context.Context, option string) (coach.Feedback, error) {
	s.mu.Lock()
	r := s.round
	if r == nil {
		s.mu.Unlock()
		return coach.Feedback{}, apperrors.New(apperrors.CodeMinigameOptionInvalid, "no domain round in progress")
	}
	fb, err := r.Answer(option)
	if err != nil {
		s.mu.Unlock()
		return coach.Feedback{}, err
	}
	s.round = nil
	s.mu.Unlock()

	return s.Controller.AwardMiniGame(ctx, fb), nil
}

func (s *Session) close() {
	s.Controller.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
