package timex

import (
	"context"
	"time"
)

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Tick waits for d and reports whether to continue (false => stop).
// Loops take a Tick instead of sleeping so tests can drive them without a clock.
type Tick func(d time.Duration) bool

// SleepTick returns a Tick that sleeps for d, or stops early when ctx is done.
func SleepTick(ctx context.Context) Tick {
	return func(d time.Duration) bool {
		if d <= 0 {
			return ctx.Err() == nil
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
			return true
		}
	}
}

// Hold runs a blocking pause through tick, ignoring the stop result.
// Used for bring-up sequences that must complete regardless.
func Hold(tick Tick, d time.Duration) {
	if tick != nil {
		tick(d)
	}
}
