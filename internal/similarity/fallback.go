package similarity

import (
	"context"
	"log"
)

// Fallback wraps a preferred scorer with an always-available secondary. The
// first primary failure switches the scorer over for the rest of the run, so
// a dead backend is not retried on every pair.
type Fallback struct {
	Primary   Scorer
	Secondary Scorer

	degraded bool
}

// Name implements Scorer.
func (f *Fallback) Name() string {
	if f.degraded {
		return f.Secondary.Name()
	}
	return f.Primary.Name()
}

// Score implements Scorer.
func (f *Fallback) Score(ctx context.Context, a, b string) (float64, error) {
	if !f.degraded {
		score, err := f.Primary.Score(ctx, a, b)
		if err == nil {
			return score, nil
		}
		log.Printf("[SIMILARITY] %s backend failed (%v); falling back to %s", f.Primary.Name(), err, f.Secondary.Name())
		f.degraded = true
	}
	return f.Secondary.Score(ctx, a, b)
}
