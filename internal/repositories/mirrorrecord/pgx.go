package mirrorrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/repositories"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
)

const table = "mirror_records"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("MirrorRecordRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, record domain.MirrorRecord) error {
	degradations := record.Degradations
	if degradations == nil {
		degradations = []string{}
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("source_id", "destination_id", "shape", "action", "degradations", "created_at").
		Values(record.SourceID, record.DestinationID, record.Shape, string(record.Action), degradations, createdAt).
		Suffix(`ON CONFLICT (source_id) DO UPDATE SET
			destination_id = EXCLUDED.destination_id,
			shape = EXCLUDED.shape,
			action = EXCLUDED.action,
			degradations = EXCLUDED.degradations,
			created_at = EXCLUDED.created_at,
			removed_at = NULL,
			removal_reason = NULL`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert mirror record %s: %w", record.SourceID, err)
	}
	return nil
}

func (p *Pgx) MarkRemoved(ctx context.Context, sourceID, destinationID, reason string, at time.Time) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("source_id", "destination_id", "shape", "action", "removed_at", "removal_reason").
		Values(sourceID, destinationID, "unknown", string(domain.ActionPublished), at, reason).
		Suffix(`ON CONFLICT (source_id) DO UPDATE SET
			removed_at = EXCLUDED.removed_at,
			removal_reason = EXCLUDED.removal_reason
			WHERE mirror_records.removed_at IS NULL`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark %s removed: %w", sourceID, err)
	}
	p.logger.Debug("Marked mirror record removed", "source_id", sourceID, "rows", tag.RowsAffected())
	return nil
}
