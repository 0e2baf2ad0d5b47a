package mirrorrecord

import (
	"context"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
)

// Noop stands in when no database is configured or it cannot be reached.
type Noop struct{}

var _ Repository = Noop{}

func (Noop) Create(context.Context, domain.MirrorRecord) error { return nil }

func (Noop) MarkRemoved(context.Context, string, string, string, time.Time) error { return nil }
