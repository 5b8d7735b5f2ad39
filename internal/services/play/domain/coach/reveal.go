package coach

import (
	"context"
	"time"
)

// RevealStep is the default delay between revealed characters.
const RevealStep = 14 * time.Millisecond

// Reveal types text out one rune at a time, calling emit with each growing
// prefix. It returns ctx.Err() when cancelled and nil once the full text has
// been emitted. It has no effect on game state.
func Reveal(ctx context.Context, text string, step time.Duration, emit func(string)) error {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if step <= 0 {
		step = RevealStep
	}
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for i := 1; i <= len(runes); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(string(runes[:i]))
		if i == len(runes) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
