package command

import (
	"context"

	"github.com/orgball2608/subreddit-archiver/internal/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run mirror cycles and synchronization on their cron schedules",
		Long: "Runs until interrupted. Schedules come from SCHEDULE_MIRROR and " +
			"SCHEDULE_SYNC, and the jobs never overlap.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sched *scheduler.Scheduler

			return runApp(cmd.Context(), fx.Populate(&sched), func(ctx context.Context) error {
				return sched.Run(ctx)
			})
		},
	}
}
