package ratelimit

import (
	"context"
	"time"

	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"golang.org/x/time/rate"
)

// Gate is the single "wait until the next call is permitted" checkpoint shared
// by every outbound request of a run.
type Gate interface {
	Wait(ctx context.Context) error
}

// IntervalGate admits one call per interval with no burst.
type IntervalGate struct {
	limiter *rate.Limiter
}

var _ Gate = (*IntervalGate)(nil)

// NewGate creates a gate spacing calls at least interval apart.
// A non-positive interval disables the gate.
func NewGate(interval time.Duration) *IntervalGate {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &IntervalGate{limiter: rate.NewLimiter(limit, 1)}
}

// FromConfig builds the run-wide gate from Mirror.RequestInterval.
func FromConfig(cfg *config.Config) Gate {
	return NewGate(cfg.Mirror.RequestInterval)
}

// Wait blocks until the next call is permitted or ctx is done.
func (g *IntervalGate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
