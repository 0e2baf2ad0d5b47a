package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/subreddit-archiver/pkg/errors"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
)

// Config bounds the retries of one platform call. MaxRetries counts the
// attempts after the first.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2,
	}
}

func (c Config) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.InitialInterval
	exp.MaxInterval = c.MaxInterval
	exp.Multiplier = c.Multiplier
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, c.MaxRetries), ctx)
}

// Do runs op until it succeeds, returns a non-transient error, or the
// retry budget is spent. Only errors classified as transient are retried.
func Do(ctx context.Context, log logger.Logger, name string, op func() error, cfg Config) error {
	attempt := 1

	classified := func() error {
		err := op()
		if err != nil && !errors.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Warn("Transient failure, retrying",
			"operation", name,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", wait.Round(time.Millisecond).String(),
		)
		attempt++
	}

	return backoff.RetryNotify(classified, cfg.backOff(ctx), notify)
}
