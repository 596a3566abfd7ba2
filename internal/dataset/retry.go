package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/atharv3903/skyroute/internal/logging"
	"github.com/atharv3903/skyroute/internal/model"
)

// RetryWithBackoff runs fn up to maxRetries times, sleeping attempt²×backoff
// between attempts. It gives up early when ctx is done.
func RetryWithBackoff(ctx context.Context, maxRetries int, backoff time.Duration, fn func() error, log *logging.Logger) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt*attempt) * backoff
			log.Warn("retrying (attempt %d/%d) after %v", attempt+1, maxRetries, wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(); err != nil {
			lastErr = err
			log.Error("attempt %d failed: %v", attempt+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}

type retrying struct {
	Source
	max     int
	backoff time.Duration
	log     *logging.Logger
}

// WithRetry wraps src so Load is retried with RetryWithBackoff.
func WithRetry(src Source, max int, backoff time.Duration, log *logging.Logger) Source {
	return &retrying{Source: src, max: max, backoff: backoff, log: log}
}

func (r *retrying) Load(ctx context.Context) ([]model.Row, error) {
	var rows []model.Row
	err := RetryWithBackoff(ctx, r.max, r.backoff, func() error {
		var err error
		rows, err = r.Source.Load(ctx)
		return err
	}, r.log)
	return rows, err
}

func (r *retrying) Close() error { return Close(r.Source) }
