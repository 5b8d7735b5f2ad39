package level

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
	"github.com/NickTran11/masterbait/internal/platform/schedule"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/distraction"
	"github.com/NickTran11/masterbait/internal/services/play/domain/progress"
)

const testSeed = 42

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type harness struct {
	ctrl  *Controller
	clock *schedule.Manual
	rec   *recorder
}

func newHarness(t *testing.T, unlocked int) *harness {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	clock := schedule.NewManual(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	rec := &recorder{}
	state := progress.New()
	state.UnlockedLevel = unlocked
	ctrl, err := NewController(Config{
		Catalog:   cat,
		Scheduler: clock,
		Random:    rand.New(rand.NewSource(testSeed)),
		Now:       clock.Now,
		Listener:  rec,
		Progress:  state,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return &harness{ctrl: ctrl, clock: clock, rec: rec}
}

func (h *harness) start(t *testing.T, id int) Active {
	t.Helper()
	a, err := h.ctrl.StartLevel(context.Background(), id)
	if err != nil {
		t.Fatalf("start level %d: %v", id, err)
	}
	return a
}

func (h *harness) clues(t *testing.T, n int) {
	t.Helper()
	for i := range n {
		if _, err := h.ctrl.RecordClue(context.Background(), "hint"); err != nil {
			t.Fatalf("record clue %d: %v", i, err)
		}
	}
}

func (h *harness) decide(t *testing.T, a catalog.Action) coach.Feedback {
	t.Helper()
	fb, err := h.ctrl.SubmitDecision(context.Background(), a)
	if err != nil {
		t.Fatalf("submit %s: %v", a, err)
	}
	return fb
}

func TestNewControllerRequiresCatalog(t *testing.T) {
	if _, err := NewController(Config{}); err == nil {
		t.Fatal("expected error without catalog")
	}
}

func TestStartLevelLoadsEmailLevel(t *testing.T) {
	h := newHarness(t, 1)
	a := h.start(t, 1)

	if a.Mode != catalog.ModeEmail || a.TimeRemaining != 60 || a.MessageIndex != 0 {
		t.Fatalf("active = %+v", a)
	}
	if a.Inbox == nil || len(a.Inbox.Messages) != 2 || a.Thread != nil {
		t.Fatalf("expected inbox only, got inbox=%v thread=%v", a.Inbox, a.Thread)
	}
	if a.DistractionsActive {
		t.Fatal("easy level must not start distractions")
	}
	v := h.ctrl.Snapshot()
	if v.Phase != PhaseRunning || v.Progress.HardMode {
		t.Fatalf("view = %+v", v)
	}
	if h.clock.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", h.clock.Pending())
	}
	if got := h.rec.ofType(EventLevelStarted); len(got) != 1 || got[0].LevelID != 1 {
		t.Fatalf("started events = %+v", got)
	}
}

func TestStartLevelLoadsComboContent(t *testing.T) {
	h := newHarness(t, 4)
	a := h.start(t, 4)
	if a.Mode != catalog.ModeCombo || a.Inbox == nil || len(a.Thread) != 2 {
		t.Fatalf("combo active = %+v", a)
	}
	if !a.DistractionsActive || h.clock.Pending() != 2 {
		t.Fatalf("expected countdown and distraction timers, pending = %d", h.clock.Pending())
	}
}

func TestMassPhishingBestPlay(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t, 1)
	h.clues(t, 4)
	h.clock.Advance(30 * time.Second)

	fb := h.decide(t, catalog.ActionReport)

	if !fb.Correct || fb.Stars != 3 || fb.Mood != coach.MoodSuccess {
		t.Fatalf("feedback = %+v, want correct 3 stars success", fb)
	}
	if fb.GainedXP != 40 || fb.StreakDelta != 1 {
		t.Fatalf("tally = %d/%d, want 40/+1", fb.GainedXP, fb.StreakDelta)
	}
	if fb.Cheer == "" {
		t.Fatal("expected a cheer line")
	}
	v := h.ctrl.Snapshot()
	if v.Phase != PhaseResolved || v.Progress.UnlockedLevel != 2 || v.Progress.StarsByLevel[1] != 3 {
		t.Fatalf("view = %+v", v)
	}
	if v.Progress.XP != 40 || v.Progress.Streak != 1 {
		t.Fatalf("coach tally = %d/%d, want 40/1", v.Progress.XP, v.Progress.Streak)
	}
	if h.clock.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", h.clock.Pending())
	}
	if got := h.rec.ofType(EventTick); len(got) != 30 {
		t.Fatalf("ticks = %d, want 30", len(got))
	}
	prog := h.rec.ofType(EventProgressionChanged)
	if len(prog) != 1 || prog[0].Progress.UnlockedLevel != 2 {
		t.Fatalf("progression events = %+v", prog)
	}
}

func TestMassPhishingOpenedLink(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t, 1)
	h.clues(t, 4)
	h.clock.Advance(30 * time.Second)

	fb := h.decide(t, catalog.ActionOpen)
	if fb.Correct || fb.Stars > 2 || fb.Mood != coach.MoodFail || fb.StreakDelta != -1 {
		t.Fatalf("feedback = %+v", fb)
	}
	if v := h.ctrl.Snapshot(); v.Progress.UnlockedLevel != 1 {
		t.Fatalf("unlocked = %d, want 1", v.Progress.UnlockedLevel)
	}
}

func TestSafeMessageSelected(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t, 1)
	msg, err := h.ctrl.SelectEmailMessage(context.Background(), 1)
	if err != nil {
		t.Fatalf("select message: %v", err)
	}
	if msg.Sender != "Team Calendar" {
		t.Fatalf("selected %q, want Team Calendar", msg.Sender)
	}
	fb := h.decide(t, catalog.ActionIgnore)
	if !fb.Correct || fb.Mood != coach.MoodSuccess {
		t.Fatalf("feedback = %+v, want correct success on safe message", fb)
	}
	fb2 := h.rec.ofType(EventLevelResolved)[0].Feedback
	if fb2.TeachingPoints[0] != "Not everything is phishing—still verify sender + domain." {
		t.Fatalf("teaching points = %v", fb2.TeachingPoints)
	}
}

func TestCountdownTimeout(t *testing.T) {
	h := newHarness(t, 2)
	h.start(t, 2)
	h.clues(t, 5)

	h.clock.Advance(55 * time.Second)

	resolved := h.rec.ofType(EventLevelResolved)
	if len(resolved) != 1 {
		t.Fatalf("resolved events = %d, want 1", len(resolved))
	}
	fb := resolved[0].Feedback
	if fb.Correct || fb.Stars != 0 || fb.Action != catalog.ActionTimeout || fb.Mood != coach.MoodFail {
		t.Fatalf("timeout feedback = %+v", fb)
	}
	if fb.StreakDelta != -1 || fb.GainedXP != coach.MinXP {
		t.Fatalf("timeout tally = %d/%d", fb.GainedXP, fb.StreakDelta)
	}
	if ticks := h.rec.ofType(EventTick); len(ticks) != 55 {
		t.Fatalf("ticks = %d, want 55", len(ticks))
	}
	if h.clock.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", h.clock.Pending())
	}
	h.clock.Advance(time.Minute)
	if ticks := h.rec.ofType(EventTick); len(ticks) != 55 {
		t.Fatalf("ticks after timeout = %d, want 55", len(ticks))
	}
	if v := h.ctrl.Snapshot(); v.Phase != PhaseResolved || v.Progress.StarsByLevel[2] != 0 {
		t.Fatalf("view = %+v", v)
	}
}

func TestDecisionOutsideRunningIsRejected(t *testing.T) {
	h := newHarness(t, 1)

	_, err := h.ctrl.SubmitDecision(context.Background(), catalog.ActionReport)
	if !apperrors.HasCode(err, apperrors.CodeLevelNotRunning) {
		t.Fatalf("idle submit err = %v", err)
	}

	h.start(t, 1)
	h.decide(t, catalog.ActionReport)
	before := h.ctrl.Snapshot().Progress

	_, err = h.ctrl.SubmitDecision(context.Background(), catalog.ActionOpen)
	if !apperrors.HasCode(err, apperrors.CodeLevelNotRunning) {
		t.Fatalf("resolved submit err = %v", err)
	}
	after := h.ctrl.Snapshot().Progress
	if before.XP != after.XP || before.Streak != after.Streak || len(h.rec.ofType(EventLevelResolved)) != 1 {
		t.Fatal("rejected decision must not change state")
	}
}

func TestSubmitRejectsTimeoutAndUnknownActions(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t, 1)
	for _, a := range []catalog.Action{catalog.ActionTimeout, "delete"} {
		if _, err := h.ctrl.SubmitDecision(context.Background(), a); !apperrors.HasCode(err, apperrors.CodeActionInvalid) {
			t.Fatalf("submit %q err = %v", a, err)
		}
	}
	if h.ctrl.Snapshot().Phase != PhaseRunning {
		t.Fatal("invalid action must not resolve the level")
	}
}

func TestStartLevelErrors(t *testing.T) {
	h := newHarness(t, 1)
	if _, err := h.ctrl.StartLevel(context.Background(), 2); !apperrors.HasCode(err, apperrors.CodeLevelLocked) {
		t.Fatalf("locked start err = %v", err)
	}
	if _, err := h.ctrl.StartLevel(context.Background(), 9); !apperrors.HasCode(err, apperrors.CodeLevelNotFound) {
		t.Fatalf("unknown start err = %v", err)
	}
	if h.ctrl.Snapshot().Phase != PhaseIdle {
		t.Fatal("failed start must leave controller idle")
	}
}

func TestExitStopsTimersWithoutScoring(t *testing.T) {
	h := newHarness(t, 4)
	h.start(t, 3)
	h.clock.Advance(10 * time.Second)

	if err := h.ctrl.ExitLevel(context.Background()); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if h.clock.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", h.clock.Pending())
	}
	v := h.ctrl.Snapshot()
	if v.Phase != PhaseIdle || v.Active != nil {
		t.Fatalf("view after exit = %+v", v)
	}
	if _, ok := v.Progress.StarsByLevel[3]; ok {
		t.Fatal("exit must not record stars")
	}
	exited := h.rec.ofType(EventLevelExited)
	if len(exited) != 1 || exited[0].Phase != PhaseExited || exited[0].TimeRemaining != 35 {
		t.Fatalf("exited events = %+v", exited)
	}

	h.rec.reset()
	h.clock.Advance(2 * time.Minute)
	if len(h.rec.events) != 0 {
		t.Fatalf("events after exit = %+v", h.rec.events)
	}
	if err := h.ctrl.ExitLevel(context.Background()); !apperrors.HasCode(err, apperrors.CodeLevelNotRunning) {
		t.Fatalf("second exit err = %v", err)
	}
}

func TestRestartDoesNotAccumulateTimers(t *testing.T) {
	h := newHarness(t, 4)
	h.start(t, 3)
	h.start(t, 3)
	h.start(t, 4)

	if h.clock.Pending() != 2 {
		t.Fatalf("pending timers = %d, want 2", h.clock.Pending())
	}
	if got := len(h.rec.ofType(EventLevelExited)); got != 2 {
		t.Fatalf("exited events = %d, want 2", got)
	}
	h.clock.Advance(time.Second)
	ticks := h.rec.ofType(EventTick)
	if len(ticks) != 1 || ticks[0].LevelID != 4 || ticks[0].TimeRemaining != 39 {
		t.Fatalf("ticks = %+v, want one tick for level 4 at 39s", ticks)
	}
}

func TestHardModeDistractionsAreSeeded(t *testing.T) {
	h := newHarness(t, 3)
	h.start(t, 3)
	h.clock.Advance(13 * time.Second)

	got := h.rec.ofType(EventDistraction)
	if len(got) != 2 {
		t.Fatalf("distractions = %d, want 2", len(got))
	}
	want := rand.New(rand.NewSource(testSeed))
	for i, e := range got {
		if n := distraction.Next(want); *e.Distraction != n {
			t.Fatalf("distraction %d = %+v, want %+v", i, *e.Distraction, n)
		}
	}
}

func TestSetHardModeRestartsDistractions(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()
	h.start(t, 1)

	h.ctrl.SetHardMode(ctx, true)
	h.ctrl.SetHardMode(ctx, true)
	if h.clock.Pending() != 2 {
		t.Fatalf("pending timers = %d, want 2", h.clock.Pending())
	}
	h.clock.Advance(7 * time.Second)
	if got := len(h.rec.ofType(EventDistraction)); got != 1 {
		t.Fatalf("distractions = %d, want 1", got)
	}

	h.ctrl.SetHardMode(ctx, false)
	if h.clock.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", h.clock.Pending())
	}
	h.clock.Advance(20 * time.Second)
	if got := len(h.rec.ofType(EventDistraction)); got != 1 {
		t.Fatalf("distractions after disabling = %d, want 1", got)
	}
	if v := h.ctrl.Snapshot(); v.Progress.HardMode || v.Active.DistractionsActive {
		t.Fatalf("view = %+v", v)
	}
}

func TestSetHardModeOutsideLevel(t *testing.T) {
	h := newHarness(t, 1)
	h.ctrl.SetHardMode(context.Background(), true)
	if h.clock.Pending() != 0 {
		t.Fatal("hard mode outside a level must not start timers")
	}
	if !h.ctrl.Snapshot().Progress.HardMode {
		t.Fatal("expected hard mode flag stored")
	}
	h.start(t, 1)
	if h.ctrl.Snapshot().Progress.HardMode {
		t.Fatal("level start resets hard mode from difficulty")
	}
}

func TestHardModeSurvivesExitUntilRestart(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()
	h.start(t, 1)
	h.ctrl.SetHardMode(ctx, true)
	h.clock.Advance(10 * time.Second)
	if got := len(h.rec.ofType(EventDistraction)); got != 1 {
		t.Fatalf("distractions = %d, want 1", got)
	}

	if err := h.ctrl.ExitLevel(ctx); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if v := h.ctrl.Snapshot(); !v.Progress.HardMode || v.Progress.XP != 0 {
		t.Fatalf("progress after exit = %+v", v.Progress)
	}

	h.start(t, 1)
	if h.ctrl.Snapshot().Progress.HardMode {
		t.Fatal("restart keeps hard mode, want reset from difficulty")
	}
	if h.clock.Pending() != 1 {
		t.Fatalf("pending timers = %d, want countdown only", h.clock.Pending())
	}
}

func TestComboTruthIgnoresViewedMessage(t *testing.T) {
	for idx := range 2 {
		h := newHarness(t, 4)
		h.start(t, 4)
		if _, err := h.ctrl.SelectEmailMessage(context.Background(), idx); err != nil {
			t.Fatalf("select %d: %v", idx, err)
		}
		fb := h.decide(t, catalog.ActionReport)
		if !fb.Correct || fb.Mood != coach.MoodSuccess {
			t.Fatalf("viewing %d: feedback = %+v, want phish verdict", idx, fb)
		}
	}

	h := newHarness(t, 4)
	h.start(t, 4)
	h.ctrl.SelectEmailMessage(context.Background(), 0)
	if fb := h.decide(t, catalog.ActionOpen); fb.Correct {
		t.Fatal("opening in a combo level with a phish must be incorrect")
	}
}

func TestSMSLevelUsesPolicyTruth(t *testing.T) {
	h := newHarness(t, 2)
	h.start(t, 2)
	if _, err := h.ctrl.SelectEmailMessage(context.Background(), 0); !apperrors.HasCode(err, apperrors.CodeModeHasNoEmail) {
		t.Fatalf("select on sms err = %v", err)
	}
	fb := h.decide(t, catalog.ActionReply)
	if fb.Correct {
		t.Fatal("replying to smishing must be incorrect")
	}
	if fb.TeachingPoints[0] != "Smishing uses urgency + links to steal data." {
		t.Fatalf("teaching points = %v", fb.TeachingPoints)
	}
}

func TestSelectMessageOutOfRange(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t, 1)
	for _, idx := range []int{-1, 2} {
		if _, err := h.ctrl.SelectEmailMessage(context.Background(), idx); !apperrors.HasCode(err, apperrors.CodeMessageNotFound) {
			t.Fatalf("select %d err = %v", idx, err)
		}
	}
}

func TestRecordClue(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()

	if _, err := h.ctrl.RecordClue(ctx, "early"); !apperrors.HasCode(err, apperrors.CodeLevelNotRunning) {
		t.Fatalf("clue before start err = %v", err)
	}
	h.start(t, 1)
	if _, err := h.ctrl.RecordClue(ctx, "   "); !apperrors.HasCode(err, apperrors.CodeClueEmpty) {
		t.Fatalf("blank clue err = %v", err)
	}
	h.clues(t, 20)
	clues := h.ctrl.Snapshot().Progress.Clues
	if len(clues) != 12 {
		t.Fatalf("clues = %d, want 12", len(clues))
	}

	h.decide(t, catalog.ActionReport)
	h.ctrl.Acknowledge(ctx)
	h.start(t, 1)
	if n := len(h.ctrl.Snapshot().Progress.Clues); n != 0 {
		t.Fatalf("clues after restart = %d, want 0", n)
	}
}

func TestAcknowledge(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()
	if err := h.ctrl.Acknowledge(ctx); !apperrors.HasCode(err, apperrors.CodeLevelNotResolved) {
		t.Fatalf("acknowledge idle err = %v", err)
	}
	h.start(t, 1)
	h.decide(t, catalog.ActionCallIT)
	if err := h.ctrl.Acknowledge(ctx); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	v := h.ctrl.Snapshot()
	if v.Phase != PhaseIdle || v.Active != nil {
		t.Fatalf("view = %+v", v)
	}
	if v.LastFeedback == nil || v.LastFeedback.Action != catalog.ActionCallIT {
		t.Fatalf("last feedback = %+v", v.LastFeedback)
	}
}

func TestUnlockAndStarsMonotonic(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()

	h.start(t, 1)
	h.clues(t, 3)
	h.decide(t, catalog.ActionReport)
	h.ctrl.Acknowledge(ctx)

	h.start(t, 1)
	h.decide(t, catalog.ActionOpen)
	h.ctrl.Acknowledge(ctx)

	v := h.ctrl.Snapshot()
	if v.Progress.UnlockedLevel != 2 {
		t.Fatalf("unlocked = %d, want 2", v.Progress.UnlockedLevel)
	}
	if v.Progress.StarsByLevel[1] != 3 {
		t.Fatalf("stars = %d, want 3", v.Progress.StarsByLevel[1])
	}
	if v.Progress.Streak != 0 {
		t.Fatalf("streak = %d, want 0", v.Progress.Streak)
	}
}

func TestAwardMiniGame(t *testing.T) {
	h := newHarness(t, 1)
	fb := h.ctrl.AwardMiniGame(context.Background(), coach.Feedback{Kind: coach.KindDomainPick, GainedXP: 20, StreakDelta: 1})
	if fb.Cheer == "" {
		t.Fatal("expected cheer line")
	}
	v := h.ctrl.Snapshot()
	if v.Progress.XP != 20 || v.Progress.Streak != 1 {
		t.Fatalf("tally = %d/%d, want 20/1", v.Progress.XP, v.Progress.Streak)
	}
	if got := h.rec.ofType(EventCoachAwarded); len(got) != 1 || got[0].Progress.XP != 20 {
		t.Fatalf("awarded events = %+v", got)
	}
}

func TestCallbacksRouting(t *testing.T) {
	var ticks []int
	var resolved, progressed, distracted int
	cb := Callbacks{
		OnTick:               func(r int) { ticks = append(ticks, r) },
		OnDistraction:        func(distraction.Notification) { distracted++ },
		OnLevelResolved:      func(coach.Feedback) { resolved++ },
		OnProgressionChanged: func(progress.Snapshot) { progressed++ },
	}
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	clock := schedule.NewManual(time.Time{})
	ctrl, err := NewController(Config{Catalog: cat, Scheduler: clock, Now: clock.Now, Listener: Multi{cb, nil}})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if _, err := ctrl.StartLevel(context.Background(), 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctrl.SetHardMode(context.Background(), true)
	clock.Advance(60 * time.Second)

	if len(ticks) != 60 || ticks[0] != 59 || ticks[59] != 0 {
		t.Fatalf("ticks = %v", ticks)
	}
	if resolved != 1 || progressed != 1 || distracted != 9 {
		t.Fatalf("resolved=%d progressed=%d distracted=%d, want 1/1/9", resolved, progressed, distracted)
	}
}

func TestTickerSchedulerTimesOutAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	done := make(chan coach.Feedback, 1)
	ctrl, err := NewController(Config{
		Catalog:           cat,
		CountdownInterval: time.Millisecond,
		Listener: Callbacks{OnLevelResolved: func(fb coach.Feedback) {
			done <- fb
		}},
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if _, err := ctrl.StartLevel(context.Background(), 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	select {
	case fb := <-done:
		if fb.Action != catalog.ActionTimeout {
			t.Fatalf("resolved with %s, want timeout", fb.Action)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for countdown")
	}
}

func TestConcurrentCallsAreSerialized(t *testing.T) {
	defer goleak.VerifyNone(t)

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	state := progress.New()
	state.UnlockedLevel = 3
	rec := &recorder{}
	ctrl, err := NewController(Config{
		Catalog:             cat,
		CountdownInterval:   time.Millisecond,
		DistractionInterval: time.Millisecond,
		Listener:            rec,
		Progress:            state,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctx := context.Background()
	if _, err := ctrl.StartLevel(ctx, 3); err != nil {
		t.Fatalf("start: %v", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				ctrl.RecordClue(ctx, "hint")
				ctrl.Snapshot()
			}
		}()
	}
	wg.Wait()
	ctrl.Close()

	if v := ctrl.Snapshot(); len(v.Progress.Clues) > 12 {
		t.Fatalf("clues = %d, want <= 12", len(v.Progress.Clues))
	}
	if got := len(rec.ofType(EventLevelResolved)); got > 1 {
		t.Fatalf("resolved %d times, want at most once", got)
	}
}
