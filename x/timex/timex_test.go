package timex

import (
	"context"
	"testing"
	"time"
)

func TestSleepTickWaits(t *testing.T) {
	tick := SleepTick(context.Background())
	start := time.Now()
	if !tick(5 * time.Millisecond) {
		t.Fatal("tick reported stop on a live context")
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Fatal("tick returned before the requested duration")
	}
}

func TestSleepTickStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tick := SleepTick(ctx)
	cancel()
	if tick(time.Hour) {
		t.Fatal("tick continued after cancellation")
	}
	if tick(0) {
		t.Fatal("zero-length tick continued after cancellation")
	}
}

func TestHoldCallsTick(t *testing.T) {
	var got []time.Duration
	Hold(func(d time.Duration) bool { got = append(got, d); return false }, time.Second)
	Hold(nil, time.Second) // nil tick is a no-op
	if len(got) != 1 || got[0] != time.Second {
		t.Fatalf("Hold recorded %v", got)
	}
}
