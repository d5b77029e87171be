package google

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Sleeper pauses for d or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// WallClock sleeps in real time.
var WallClock Sleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
})

// randDuration returns a uniform duration in [lo, hi].
func randDuration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
}

// scroller is the part of a session that can wheel-scroll.
type scroller interface {
	Scroll(ctx context.Context, deltaY float64) error
}

// humanScroll wheels down the page in a few uneven steps. It gives up
// quietly on the first failure.
func humanScroll(ctx context.Context, s scroller, sleep Sleeper) {
	steps := 3 + rand.IntN(4)
	for i := 0; i < steps; i++ {
		delta := float64(120 + rand.IntN(361))
		if err := s.Scroll(ctx, delta); err != nil {
			slog.Debug("synthetic scroll stopped", "step", i, "error", err)
			return
		}
		if err := sleep.Sleep(ctx, randDuration(100*time.Millisecond, 400*time.Millisecond)); err != nil {
			return
		}
	}
}
