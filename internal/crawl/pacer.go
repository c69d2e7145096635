package crawl

import (
	"context"
	"math/rand"
	"time"
)

// Pacer inserts a randomized delay between browser actions to bound outbound
// request rate. It is a pacing policy, not a concurrency mechanism.
type Pacer struct {
	Min time.Duration
	Max time.Duration

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer builds a pacer drawing uniformly from [min, max].
func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{Min: min, Max: max, sleep: sleepCtx}
}

// Wait blocks for a random duration in the configured range, returning early
// with the context error if the run is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Min
	if span := p.Max - p.Min; span > 0 {
		d += time.Duration(rand.Int63n(int64(span) + 1))
	}
	if d <= 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
