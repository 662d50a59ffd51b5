package main

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/harvinder-fsd/roster/client"
)

// withRetry runs op, retrying recoverable failures up to retries times with
// exponential backoff. Irrecoverable errors (4xx, validation) fail fast.
func withRetry(ctx context.Context, retries int, op func() error) error {
	if retries <= 0 {
		return op()
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	exp.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && client.IsIrrecoverable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Msg("request failed, retrying")
	})
}
