package mirrorrecord

import (
	"context"

	"github.com/orgball2608/subreddit-archiver/internal/db"
	"github.com/orgball2608/subreddit-archiver/internal/pgx"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config *config.Config
	Logger logger.Logger
}

// Provide returns the Postgres journal when it is configured and reachable
// and Noop otherwise. The journal is advisory, so an unreachable database
// or a failed migration only costs the journal, never the run.
func Provide(opts Opts) Repository {
	if !opts.Config.JournalEnabled() {
		opts.Logger.Info("Mirror journal disabled, POSTGRES_HOST is not set")
		return Noop{}
	}

	pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
	if err != nil {
		opts.Logger.Warn("Mirror journal unavailable, continuing without it", "error", err)
		return Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgx.ConnectTimeout)
	defer cancel()
	if err := db.Migrate(ctx, opts.Config.GetDSN()); err != nil {
		pool.Close()
		opts.Logger.Warn("Mirror journal migration failed, continuing without it", "error", err)
		return Noop{}
	}
	opts.Logger.Info("Mirror journal ready")

	return NewPgx(pool, opts.Logger)
}

var Module = fx.Module("mirror_record_repository",
	fx.Provide(Provide),
)
