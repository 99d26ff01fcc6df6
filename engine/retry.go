package engine

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// retryAdapter wraps a single adapter call (cache/audit/notification
// dispatch) with a short, bounded retry before the caller treats the
// failure as final and swallows it — a momentary hiccup behind a custom
// adapter shouldn't read identically to a permanent one (SPEC_FULL.md
// §4.6), while the orchestrator's swallow-on-failure contract (spec §4.7)
// is unchanged once retries are exhausted.
func retryAdapter(ctx context.Context, fn func() error) error {
	op := func() (struct{}, error) {
		return struct{}{}, fn()
	}
	_, err := backoff.Retry(ctx, op,
		backoff.WithMaxTries(2),
		backoff.WithBackOff(constantBackOff(25*time.Millisecond)),
	)
	return err
}

type constantBackOff time.Duration

func (c constantBackOff) NextBackOff() time.Duration { return time.Duration(c) }

func (constantBackOff) Reset() {}
