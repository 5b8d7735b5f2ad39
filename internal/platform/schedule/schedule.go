// Package schedule runs periodic jobs for level timers.
//
// The ticker implementation backs live sessions; Manual backs tests and
// scripted playthroughs where time only moves when the caller advances it.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned stop function is
// called. Stop never blocks on a running fn, so it is safe to call from
// inside fn or while holding a lock that fn also takes. A callback already in
// flight may still complete after stop returns.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// Ticker schedules jobs on background goroutines driven by time.Ticker.
type Ticker struct{}

// Every implements Scheduler.
func (Ticker) Every(interval time.Duration, fn func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				fn()
			case <-ctx.Done():
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(cancel) }
}
