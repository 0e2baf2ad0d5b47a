package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/publisher"
)

// Client runs the mirroring pipeline: classify, resolve, publish, record.
type Client interface {
	// RunCycle mirrors every new source post created within window.
	RunCycle(ctx context.Context, window time.Duration) (*Report, error)

	// CopyPost mirrors one source post regardless of its age. Without force
	// a post already in the ledger is left alone and the outcome is nil.
	CopyPost(ctx context.Context, id string, force bool) (*publisher.Outcome, error)
}

// Resolver materializes the media of a classified post.
type Resolver interface {
	Resolve(ctx context.Context, post *domain.Post, shape domain.Shape, dir string) domain.Resolution
}

// Publisher creates the destination post and records the source id.
type Publisher interface {
	Publish(ctx context.Context, post *domain.Post, res domain.Resolution, mapping domain.CategoryMapping) (*publisher.Outcome, error)
}

// Report summarizes one scan cycle.
type Report struct {
	Scanned   int
	Mirrored  int
	Fallbacks int
	Skipped   int
	Failed    int
	// FailedIDs lists source posts to re-run with the copy command.
	FailedIDs []string
}

func (r *Report) String() string {
	return fmt.Sprintf("scanned %d, mirrored %d (%d as text fallback), skipped %d, failed %d",
		r.Scanned, r.Mirrored, r.Fallbacks, r.Skipped, r.Failed)
}
