package command

import (
	"context"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/scheduler"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [window]",
		Short: "Mark archive posts whose source post was removed",
		Long: "Scans archive posts created within window (<n>m or <n>h, default " +
			"from SYNC_WINDOW) and marks those whose source post is gone.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg  *config.Config
				log  logger.Logger
				sync scheduler.Syncer
			)

			return runApp(cmd.Context(), fx.Populate(&cfg, &log, &sync), func(ctx context.Context) error {
				return syncPass(ctx, log, sync, windowArg(log, args, cfg.Sync.Window))
			})
		},
	}
}

// syncPass never fails the process; an aborted pass is picked up by the
// next one.
func syncPass(ctx context.Context, log logger.Logger, sync scheduler.Syncer, window time.Duration) error {
	report, err := sync.Run(ctx, window)
	if err != nil {
		log.Error("Synchronization aborted", "error", err)
		return nil
	}

	log.Info("Synchronization done",
		"scanned", report.Scanned,
		"removed", report.Removed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return nil
}
