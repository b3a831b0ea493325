package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryConfig controls how often a failed batch request is re-sent.
// The default is a single attempt: the game serves its fallback set the
// moment a batch fails, so retrying only delays the player.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// delay is the pause after the given failed attempt (1-based). A rate
// limit hint from the server wins over the computed backoff.
func (c RetryConfig) delay(attempt int, err *Error) time.Duration {
	if err.Kind == RateLimited && err.RetryAfter > 0 {
		return min(err.RetryAfter, c.MaxWait)
	}
	wait := float64(c.InitialWait)
	for range attempt - 1 {
		wait *= c.Multiplier
	}
	wait = min(wait, float64(c.MaxWait))
	// Full jitter in [wait/2, wait].
	return time.Duration(wait/2 + rand.Float64()*wait/2)
}

// Retrier re-sends requests that failed with a transient *Error.
type Retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p when cfg allows more than one attempt and returns p
// unchanged otherwise.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	return &Retrier{inner: p, cfg: cfg}
}

func (r *Retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		var e *Error
		if attempt >= r.cfg.MaxAttempts || !errors.As(err, &e) || !e.Transient() {
			return nil, err
		}

		t := time.NewTimer(r.cfg.delay(attempt, e))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *Retrier) ModelID() string {
	return r.inner.ModelID()
}
