package pgx

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

// ConnectTimeout bounds the initial ping.
const ConnectTimeout = 10 * time.Second

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New connects the pool and closes it when the application stops. An
// unreachable server is reported here rather than from a start hook, so
// callers can decide whether the database is optional.
func New(opts Opts) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, opts.Config.GetURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	opts.Logger.Info("Connected to postgres", "host", opts.Config.Postgres.Host, "database", opts.Config.Postgres.Name)

	opts.LC.Append(
		fx.Hook{
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		},
	)

	return pool, nil
}
