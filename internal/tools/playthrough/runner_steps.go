package playthrough

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/i18n"
)

// revealStep paces the coach reveal in verbose runs.
const revealStep = time.Millisecond

func (r *Runner) runStep(ctx context.Context, state *runState, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctrl := state.session.Controller
	switch step.Kind {
	case "start":
		level, err := requiredInt(step.Args, "level")
		if err != nil {
			return err
		}
		if _, err := ctrl.StartLevel(ctx, level); err != nil {
			return err
		}
		state.last = nil
		return nil
	case "select":
		index, err := requiredInt(step.Args, "index")
		if err != nil {
			return err
		}
		_, err = ctrl.SelectEmailMessage(ctx, index)
		return err
	case "clue":
		_, err := ctrl.RecordClue(ctx, optionalString(step.Args, "text", ""))
		return err
	case "clues":
		count, err := requiredInt(step.Args, "count")
		if err != nil {
			return err
		}
		return r.recordClues(ctx, state, count)
	case "wait":
		seconds, ok := readFloat(step.Args, "seconds")
		if !ok {
			return r.assertions.Failf("wait requires seconds")
		}
		state.clock.Advance(time.Duration(seconds * float64(time.Second)))
		if fb := ctrl.Snapshot().LastFeedback; fb != nil && state.last == nil {
			state.last = fb
			return r.narrate(ctx, fb)
		}
		return nil
	case "decide":
		action, err := catalog.ParseAction(optionalString(step.Args, "action", ""))
		if err != nil {
			return err
		}
		fb, err := ctrl.SubmitDecision(ctx, action)
		if err != nil {
			return err
		}
		state.last = &fb
		return r.narrate(ctx, &fb)
	case "exit":
		return ctrl.ExitLevel(ctx)
	case "hard_mode":
		enabled, _ := step.Args["enabled"].(bool)
		ctrl.SetHardMode(ctx, enabled)
		return nil
	case "acknowledge":
		return ctrl.Acknowledge(ctx)
	case "expect":
		return r.expectFeedback(state, step.Args)
	case "expect_progress":
		return r.expectProgress(state, step.Args)
	case "expect_phase":
		want := optionalString(step.Args, "phase", "")
		if got := string(ctrl.Snapshot().Phase); got != want {
			return r.assertions.Assertf("phase = %s, want %s", got, want)
		}
		return nil
	default:
		return r.assertions.Failf("unknown step kind %q", step.Kind)
	}
}

// narrate types the coach message out as a player would see it and logs the
// revealed text. Quiet runs skip the reveal.
func (r *Runner) narrate(ctx context.Context, fb *coach.Feedback) error {
	if !r.verbose {
		return nil
	}
	printer := i18n.Printer(i18n.Default())
	var shown string
	if err := coach.Reveal(ctx, coach.Message(printer, *fb), revealStep, func(s string) { shown = s }); err != nil {
		return err
	}
	r.logger.Info("coach",
		zap.Int("level_id", fb.LevelID),
		zap.String("mood", string(fb.Mood)),
		zap.String("title", coach.Title(printer, *fb)),
		zap.String("message", shown))
	return nil
}

// recordClues records count clues, drawing on the hints the running level
// exposes and numbering extra notes once those run out.
func (r *Runner) recordClues(ctx context.Context, state *runState, count int) error {
	ctrl := state.session.Controller
	var hints []string
	if a := ctrl.Snapshot().Active; a != nil {
		if m := a.ActiveMessage(); m != nil {
			hints = append(hints, m.Clues()...)
		}
		hints = append(hints, a.Thread.Clues()...)
	}
	for i := range count {
		text := fmt.Sprintf("Note %d", i+1)
		if i < len(hints) {
			text = hints[i]
		}
		if _, err := ctrl.RecordClue(ctx, text); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) expectFeedback(state *runState, args map[string]any) error {
	fb := state.last
	if fb == nil {
		return r.assertions.Assertf("no feedback to check")
	}
	if want, ok := readBool(args, "correct"); ok && fb.Correct != want {
		return r.assertions.Assertf("correct = %t, want %t", fb.Correct, want)
	}
	if want, ok := readInt(args, "stars"); ok && fb.Stars != want {
		return r.assertions.Assertf("stars = %d, want %d", fb.Stars, want)
	}
	if want, ok := args["mood"].(string); ok && string(fb.Mood) != want {
		return r.assertions.Assertf("mood = %s, want %s", fb.Mood, want)
	}
	if want, ok := readInt(args, "xp"); ok && fb.GainedXP != want {
		return r.assertions.Assertf("xp = %d, want %d", fb.GainedXP, want)
	}
	if want, ok := readInt(args, "streak_delta"); ok && fb.StreakDelta != want {
		return r.assertions.Assertf("streak_delta = %d, want %d", fb.StreakDelta, want)
	}
	if want, ok := args["action"].(string); ok && string(fb.Action) != want {
		return r.assertions.Assertf("action = %s, want %s", fb.Action, want)
	}
	return nil
}

func (r *Runner) expectProgress(state *runState, args map[string]any) error {
	snap := state.session.Controller.Snapshot().Progress
	if want, ok := readInt(args, "unlocked"); ok && snap.UnlockedLevel != want {
		return r.assertions.Assertf("unlocked = %d, want %d", snap.UnlockedLevel, want)
	}
	if want, ok := readInt(args, "xp"); ok && snap.XP != want {
		return r.assertions.Assertf("total xp = %d, want %d", snap.XP, want)
	}
	if want, ok := readInt(args, "streak"); ok && snap.Streak != want {
		return r.assertions.Assertf("streak = %d, want %d", snap.Streak, want)
	}
	if want, ok := readBool(args, "hard_mode"); ok && snap.HardMode != want {
		return r.assertions.Assertf("hard_mode = %t, want %t", snap.HardMode, want)
	}
	if raw, ok := args["stars"]; ok {
		want, err := starsByLevel(raw)
		if err != nil {
			return r.assertions.Failf("expect_progress stars: %v", err)
		}
		for level, stars := range want {
			if got := snap.StarsByLevel[level]; got != stars {
				return r.assertions.Assertf("level %d stars = %d, want %d", level, got, stars)
			}
		}
	}
	return nil
}

// starsByLevel reads {3, 2} as levels 1 and 2, or {[3] = 1} as level 3.
func starsByLevel(raw any) (map[int]int, error) {
	out := map[int]int{}
	switch v := raw.(type) {
	case []any:
		for i, s := range v {
			n, ok := s.(int)
			if !ok {
				return nil, fmt.Errorf("stars[%d] is %T, want integer", i+1, s)
			}
			out[i+1] = n
		}
	case map[int]any:
		for level, s := range v {
			n, ok := s.(int)
			if !ok {
				return nil, fmt.Errorf("stars[%d] is %T, want integer", level, s)
			}
			out[level] = n
		}
	default:
		return nil, fmt.Errorf("stars must be a table, got %T", raw)
	}
	return out, nil
}

func requiredInt(args map[string]any, key string) (int, error) {
	value, ok := readInt(args, key)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func readInt(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func readFloat(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func readBool(args map[string]any, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

func optionalString(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return fallback
}
