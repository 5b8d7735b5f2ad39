// Package level runs the level lifecycle for one play session: start,
// countdown, hard-mode distractions, decision resolution and progression.
//
// A Controller is an actor. Every inbound call and every timer callback
// takes the controller lock, so progression and clue updates for a session
// are serialized. Outbound events are delivered in production order after the
// lock is released.
package level

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
	"github.com/NickTran11/masterbait/internal/platform/random"
	"github.com/NickTran11/masterbait/internal/platform/schedule"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/clue"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/distraction"
	"github.com/NickTran11/masterbait/internal/services/play/domain/progress"
	"github.com/NickTran11/masterbait/internal/services/play/domain/scoring"
)

const tracerName = "github.com/NickTran11/masterbait/internal/services/play/domain/level"

// Random is the seeded source for distractions and cheer lines.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Config wires a Controller. Only Catalog is required.
type Config struct {
	Catalog             *catalog.Catalog
	Scheduler           schedule.Scheduler
	Random              Random
	Now                 func() time.Time
	Listener            Listener
	Logger              *zap.Logger
	Tracer              trace.Tracer
	Progress            *progress.State
	CountdownInterval   time.Duration
	DistractionInterval time.Duration
}

// Controller owns the session state and the active level.
type Controller struct {
	catalog             *catalog.Catalog
	sched               schedule.Scheduler
	rng                 Random
	now                 func() time.Time
	listener            Listener
	log                 *zap.Logger
	tracer              trace.Tracer
	countdownInterval   time.Duration
	distractionInterval time.Duration

	mu         sync.Mutex
	dispatchMu sync.Mutex

	state            *progress.State
	phase            Phase
	active           *Active
	last             *coach.Feedback
	generation       uint64
	stopCountdown    func()
	stopDistractions func()
}

// NewController builds a controller in the Idle phase.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	c := &Controller{
		catalog:             cfg.Catalog,
		sched:               cfg.Scheduler,
		rng:                 cfg.Random,
		now:                 cfg.Now,
		listener:            cfg.Listener,
		log:                 cfg.Logger,
		tracer:              cfg.Tracer,
		countdownInterval:   cfg.CountdownInterval,
		distractionInterval: cfg.DistractionInterval,
		state:               cfg.Progress,
		phase:               PhaseIdle,
	}
	if c.sched == nil {
		c.sched = schedule.Ticker{}
	}
	if c.rng == nil {
		src, err := random.NewSource(0)
		if err != nil {
			return nil, err
		}
		c.rng = src
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	if c.countdownInterval <= 0 {
		c.countdownInterval = time.Second
	}
	if c.distractionInterval <= 0 {
		c.distractionInterval = distraction.Interval
	}
	if c.state == nil {
		c.state = progress.New()
	}
	return c, nil
}

// Catalog returns the content the controller plays.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// StartLevel loads level id and starts it. Any level already in progress is
// abandoned first: its timers stop and it is reported as exited.
func (c *Controller) StartLevel(ctx context.Context, id int) (Active, error) {
	lv, err := c.catalog.Level(id)
	if err != nil {
		return Active{}, err
	}

	c.mu.Lock()
	if !c.state.Unlocked(id) {
		err := c.rejectLocked(apperrors.CodeLevelLocked, fmt.Sprintf("level %d is locked", id), id)
		c.mu.Unlock()
		return Active{}, err
	}
	a, err := load(c.catalog, lv)
	if err != nil {
		c.mu.Unlock()
		return Active{}, err
	}

	var evs []Event
	if c.phase == PhaseRunning {
		evs = append(evs, c.abandonLocked()...)
	}
	c.stopTimersLocked()
	c.generation++

	c.state.Clues.Reset()
	c.state.SelectedLevel = id
	c.state.HardMode = lv.HardMode()
	c.active = a
	c.last = nil
	c.phase = PhaseLoaded

	c.phase = PhaseRunning
	c.startCountdownLocked()
	if c.state.HardMode {
		c.startDistractionsLocked()
	}
	c.log.Info("level started",
		zap.Int("level_id", id),
		zap.String("mode", string(a.Mode)),
		zap.Bool("hard_mode", c.state.HardMode))

	evs = append(evs, c.eventLocked(EventLevelStarted))
	view := *c.active
	c.unlockAndDispatch(evs)
	return view, nil
}

// SubmitDecision resolves the running level with a player action.
func (c *Controller) SubmitDecision(ctx context.Context, action catalog.Action) (coach.Feedback, error) {
	if !action.PlayerChoice() {
		return coach.Feedback{}, apperrors.WithMetadata(apperrors.CodeActionInvalid,
			fmt.Sprintf("action %q cannot be submitted", action),
			map[string]string{"Action": string(action)})
	}

	c.mu.Lock()
	if c.phase != PhaseRunning {
		err := c.notRunningLocked("submit decision")
		c.mu.Unlock()
		return coach.Feedback{}, err
	}
	evs := c.resolveLocked(ctx, action)
	fb := *c.last
	c.unlockAndDispatch(evs)
	return fb, nil
}

// ExitLevel abandons the running level without scoring it.
func (c *Controller) ExitLevel(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseRunning {
		err := c.notRunningLocked("exit level")
		c.mu.Unlock()
		return err
	}
	evs := c.abandonLocked()
	c.unlockAndDispatch(evs)
	return nil
}

// Acknowledge dismisses the feedback of a resolved level.
func (c *Controller) Acknowledge(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseResolved {
		err := c.rejectLocked(apperrors.CodeLevelNotResolved,
			fmt.Sprintf("acknowledge in phase %s", c.phase), c.activeID())
		c.mu.Unlock()
		return err
	}
	ev := c.eventLocked(EventFeedbackAcknowledged)
	c.phase = PhaseIdle
	c.active = nil
	ev.Phase = c.phase
	c.unlockAndDispatch([]Event{ev})
	return nil
}

// SetHardMode toggles distractions. While a level runs the distraction timer
// restarts so at most one is ever active.
func (c *Controller) SetHardMode(ctx context.Context, on bool) {
	c.mu.Lock()
	c.state.HardMode = on
	if c.phase == PhaseRunning {
		c.stopDistractionsLocked()
		if on {
			c.startDistractionsLocked()
		}
	}
	ev := c.eventLocked(EventHardModeChanged)
	ev.HardMode = on
	c.unlockAndDispatch([]Event{ev})
}

// SelectEmailMessage loads message index of the running level's inbox.
func (c *Controller) SelectEmailMessage(ctx context.Context, index int) (catalog.EmailMessage, error) {
	c.mu.Lock()
	if c.phase != PhaseRunning {
		err := c.notRunningLocked("select message")
		c.mu.Unlock()
		return catalog.EmailMessage{}, err
	}
	a := c.active
	if a.Inbox == nil {
		err := c.rejectLocked(apperrors.CodeModeHasNoEmail,
			fmt.Sprintf("%s level has no inbox", a.Mode), a.Level.ID)
		c.mu.Unlock()
		return catalog.EmailMessage{}, err
	}
	if index < 0 || index >= len(a.Inbox.Messages) {
		c.mu.Unlock()
		return catalog.EmailMessage{}, apperrors.WithMetadata(apperrors.CodeMessageNotFound,
			fmt.Sprintf("message %d not in %q", index, a.ScenarioKey),
			map[string]string{"Index": strconv.Itoa(index), "Scenario": a.ScenarioKey})
	}
	a.MessageIndex = index
	msg := a.Inbox.Messages[index]
	ev := c.eventLocked(EventMessageSelected)
	ev.MessageIndex = index
	c.unlockAndDispatch([]Event{ev})
	return msg, nil
}

// RecordClue adds a discovered hint to the clue log.
func (c *Controller) RecordClue(ctx context.Context, text string) (clue.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return clue.Entry{}, apperrors.New(apperrors.CodeClueEmpty, "clue text is empty")
	}

	c.mu.Lock()
	if c.phase != PhaseRunning {
		err := c.notRunningLocked("record clue")
		c.mu.Unlock()
		return clue.Entry{}, err
	}
	entry := clue.Entry{At: c.now(), Text: text}
	c.state.AddClue(entry.At, entry.Text)
	ev := c.eventLocked(EventClueRecorded)
	ev.Clue = &entry
	c.unlockAndDispatch([]Event{ev})
	return entry, nil
}

// AwardMiniGame applies mini-game feedback to the coach tally. A cheer line
// is attached when the feedback has none.
func (c *Controller) AwardMiniGame(ctx context.Context, fb coach.Feedback) coach.Feedback {
	c.mu.Lock()
	if fb.Cheer == "" {
		fb.Cheer = coach.Cheer(c.rng)
	}
	c.state.Award(fb.GainedXP, fb.StreakDelta)
	ev := c.eventLocked(EventCoachAwarded)
	ev.Feedback = &fb
	snap := c.state.Snapshot()
	ev.Progress = &snap
	c.unlockAndDispatch([]Event{ev})
	return fb
}

// View is a read-only picture of the controller.
type View struct {
	Phase        Phase             `json:"phase"`
	Active       *Active           `json:"active,omitempty"`
	Progress     progress.Snapshot `json:"progress"`
	LastFeedback *coach.Feedback   `json:"last_feedback,omitempty"`
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{Phase: c.phase, Progress: c.state.Snapshot()}
	if c.active != nil {
		a := *c.active
		v.Active = &a
	}
	if c.last != nil {
		fb := *c.last
		v.LastFeedback = &fb
	}
	return v
}

// Close stops any running level without scoring it. The controller stays
// usable.
func (c *Controller) Close() {
	c.mu.Lock()
	var evs []Event
	if c.phase == PhaseRunning {
		evs = c.abandonLocked()
	}
	c.stopTimersLocked()
	c.unlockAndDispatch(evs)
}

func (c *Controller) resolveLocked(ctx context.Context, action catalog.Action) []Event {
	a := c.active
	_, span := c.tracer.Start(ctx, "level.resolve", trace.WithAttributes(
		attribute.Int("level.id", a.Level.ID),
		attribute.String("level.action", string(action)),
	))
	defer span.End()

	c.stopTimersLocked()
	c.generation++

	pack := scoring.ResolveTruth(a.Mode, a.inbox(), a.ActiveMessage())
	result := scoring.Score(scoring.Input{
		Action:        action,
		Truth:         pack.Truth,
		BestAction:    pack.BestAction,
		ClueCount:     c.state.Clues.Len(),
		TimeRemaining: a.TimeRemaining,
	})
	changed := c.state.Record(a.Level.ID, c.catalog.MaxLevel(), result.Correct, result.Stars)

	fb := coach.Build(a.Level.ID, action, pack, result)
	fb.Cheer = coach.Cheer(c.rng)
	c.state.Award(fb.GainedXP, fb.StreakDelta)
	c.last = &fb
	c.phase = PhaseResolved
	a.DistractionsActive = false

	span.SetAttributes(
		attribute.Bool("level.correct", result.Correct),
		attribute.Int("level.stars", result.Stars),
	)
	c.log.Info("level resolved",
		zap.Int("level_id", a.Level.ID),
		zap.String("action", string(action)),
		zap.Bool("correct", result.Correct),
		zap.Int("stars", result.Stars),
		zap.Int("time_remaining", a.TimeRemaining),
		zap.Int("clues", c.state.Clues.Len()))

	resolved := c.eventLocked(EventLevelResolved)
	resolved.Feedback = &fb
	evs := []Event{resolved}
	if changed {
		prog := c.eventLocked(EventProgressionChanged)
		snap := c.state.Snapshot()
		prog.Progress = &snap
		evs = append(evs, prog)
	}
	return evs
}

// abandonLocked stops the running level without scoring and returns to Idle
// through Exited.
func (c *Controller) abandonLocked() []Event {
	c.stopTimersLocked()
	c.generation++
	c.phase = PhaseExited
	ev := c.eventLocked(EventLevelExited)
	c.log.Info("level exited", zap.Int("level_id", ev.LevelID), zap.Int("time_remaining", ev.TimeRemaining))
	c.active = nil
	c.phase = PhaseIdle
	return []Event{ev}
}

func (c *Controller) startCountdownLocked() {
	gen := c.generation
	c.stopCountdown = c.sched.Every(c.countdownInterval, func() { c.onCountdown(gen) })
}

func (c *Controller) startDistractionsLocked() {
	gen := c.generation
	c.stopDistractions = c.sched.Every(c.distractionInterval, func() { c.onDistraction(gen) })
	if c.active != nil {
		c.active.DistractionsActive = true
	}
}

func (c *Controller) stopDistractionsLocked() {
	if c.stopDistractions != nil {
		c.stopDistractions()
		c.stopDistractions = nil
	}
	if c.active != nil {
		c.active.DistractionsActive = false
	}
}

func (c *Controller) stopTimersLocked() {
	if c.stopCountdown != nil {
		c.stopCountdown()
		c.stopCountdown = nil
	}
	c.stopDistractionsLocked()
}

func (c *Controller) onCountdown(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseRunning {
		c.mu.Unlock()
		return
	}
	a := c.active
	a.TimeRemaining = max(0, a.TimeRemaining-1)
	evs := []Event{c.eventLocked(EventTick)}
	if a.TimeRemaining == 0 {
		evs = append(evs, c.resolveLocked(context.Background(), catalog.ActionTimeout)...)
	}
	c.unlockAndDispatch(evs)
}

func (c *Controller) onDistraction(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseRunning || !c.state.HardMode {
		c.mu.Unlock()
		return
	}
	n := distraction.Next(c.rng)
	ev := c.eventLocked(EventDistraction)
	ev.Distraction = &n
	c.unlockAndDispatch([]Event{ev})
}

func (c *Controller) eventLocked(t EventType) Event {
	ev := Event{Type: t, At: c.now(), Phase: c.phase}
	if c.active != nil {
		ev.LevelID = c.active.Level.ID
		ev.TimeRemaining = c.active.TimeRemaining
	}
	return ev
}

func (c *Controller) activeID() int {
	if c.active == nil {
		return 0
	}
	return c.active.Level.ID
}

func (c *Controller) notRunningLocked(op string) error {
	return c.rejectLocked(apperrors.CodeLevelNotRunning,
		fmt.Sprintf("%s in phase %s", op, c.phase), c.activeID())
}

func (c *Controller) rejectLocked(code apperrors.Code, msg string, levelID int) error {
	c.log.Warn("rejected call",
		zap.String("code", string(code)),
		zap.String("phase", string(c.phase)),
		zap.Int("level_id", levelID),
		zap.String("reason", msg))
	return apperrors.WithMetadata(code, msg, map[string]string{
		"Phase":   string(c.phase),
		"LevelID": strconv.Itoa(levelID),
	})
}

// unlockAndDispatch releases the state lock and delivers evs. The dispatch
// lock is taken before the state lock is released so events from concurrent
// calls keep their production order.
func (c *Controller) unlockAndDispatch(evs []Event) {
	if len(evs) == 0 || c.listener == nil {
		c.mu.Unlock()
		return
	}
	c.dispatchMu.Lock()
	c.mu.Unlock()
	defer c.dispatchMu.Unlock()
	for _, e := range evs {
		c.listener.OnEvent(e)
	}
}
