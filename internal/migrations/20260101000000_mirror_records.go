package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upMirrorRecords, downMirrorRecords)
}

func upMirrorRecords(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS mirror_records (
		id             SERIAL PRIMARY KEY,
		source_id      VARCHAR(16) NOT NULL UNIQUE,
		destination_id VARCHAR(16) NOT NULL,
		shape          VARCHAR(32) NOT NULL,
		action         VARCHAR(16) NOT NULL,
		degradations   TEXT[] NOT NULL DEFAULT '{}',
		created_at     TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		removed_at     TIMESTAMP WITH TIME ZONE,
		removal_reason VARCHAR
	);
	CREATE INDEX IF NOT EXISTS mirror_records_destination_id_idx ON mirror_records (destination_id);
	`)
	return err
}

func downMirrorRecords(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS mirror_records;`)
	return err
}
