package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/orgball2608/subreddit-archiver/internal/migrations"
	"github.com/pressly/goose/v3"
)

// migrationsDir is only scanned for stray files; the migrations themselves
// are compiled in and registered by the migrations package.
const migrationsDir = "."

// Command runs one goose command against the database at dsn.
func Command(ctx context.Context, dsn, command string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, conn, migrationsDir)
	case "down":
		return goose.DownContext(ctx, conn, migrationsDir)
	case "status":
		return goose.StatusContext(ctx, conn, migrationsDir)
	case "reset":
		return goose.ResetContext(ctx, conn, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, dsn string) error {
	return Command(ctx, dsn, "up")
}
