package command

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/mirror"
	"github.com/orgball2608/subreddit-archiver/internal/publisher"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func runMirror(cmd *cobra.Command, args []string) error {
	var (
		cfg    *config.Config
		log    logger.Logger
		client mirror.Client
	)

	return runApp(cmd.Context(), fx.Populate(&cfg, &log, &client), func(ctx context.Context) error {
		window := windowArg(log, args, cfg.Mirror.Window)
		return mirrorCycle(ctx, log, client, window)
	})
}

// mirrorCycle runs one cycle. Only a ledger write failure is returned;
// anything else aborting the cycle is logged and retried next run.
func mirrorCycle(ctx context.Context, log logger.Logger, client mirror.Client, window time.Duration) error {
	report, err := client.RunCycle(ctx, window)
	switch {
	case errors.Is(err, publisher.ErrLedgerWrite):
		return err
	case err != nil:
		log.Error("Mirror cycle aborted", "error", err)
		return nil
	}

	log.Info("Mirror cycle done", "report", report.String())
	if len(report.FailedIDs) > 0 {
		log.Warn("Some posts were not mirrored, re-run them with copy", "source_ids", report.FailedIDs)
	}
	return nil
}
