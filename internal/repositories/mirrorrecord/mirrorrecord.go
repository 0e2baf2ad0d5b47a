package mirrorrecord

import (
	"context"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
)

// Repository journals mirrored posts. The file ledger stays the authority for
// deduplication; the journal is an optional queryable history.
//
//go:generate go run go.uber.org/mock/mockgen -source=mirrorrecord.go -destination=mocks/mock.go
type Repository interface {
	// Create records a mirrored post, replacing an earlier record of the same source post.
	Create(ctx context.Context, record domain.MirrorRecord) error

	// MarkRemoved stamps the record of sourceID as removed. Posts mirrored
	// before the journal existed get a record on first removal.
	MarkRemoved(ctx context.Context, sourceID, destinationID, reason string, at time.Time) error
}
