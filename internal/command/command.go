package command

import (
	"context"
	"os"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/app"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// NewRoot returns the archiver command tree. Without a subcommand it runs
// one mirror cycle.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "archiver [window]",
		Short: "Mirror new posts from the source subreddit to the archive",
		Long: "Runs one mirror cycle over source posts created within window " +
			"(<n>m or <n>h, default from MIRROR_WINDOW). A malformed window is " +
			"logged and replaced by the default.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMirror,
	}

	root.AddCommand(
		newSyncCommand(),
		newCopyCommand(),
		newRulesCommand(),
		newServeCommand(),
	)
	return root
}

// runApp builds the application with the requested targets, starts its
// lifecycle hooks, runs body and stops the application again. Errors
// building or starting the application are configuration or credential
// errors.
func runApp(ctx context.Context, targets fx.Option, body func(ctx context.Context) error) error {
	boot := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})
	defer logger.Flush()

	application := fx.New(
		fx.Logger(boot),
		app.Module,
		targets,
	)
	if err := application.Err(); err != nil {
		boot.Error("Failed to build application", "error", err)
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, application.StartTimeout())
	defer cancel()
	if err := application.Start(startCtx); err != nil {
		boot.Error("Failed to start application", "error", err)
		return err
	}

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), application.StopTimeout())
		defer cancel()
		if err := application.Stop(stopCtx); err != nil {
			boot.Error("Failed to stop application", "error", err)
		}
	}()

	return body(ctx)
}

// windowArg resolves the optional window argument. Falling back to the
// default is always logged.
func windowArg(log logger.Logger, args []string, fallback time.Duration) time.Duration {
	if len(args) == 0 || args[0] == "" {
		log.Warn("No window argument, using default", "default", fallback.String())
		return fallback
	}
	arg := args[0]

	window, err := config.WindowOrDefault(arg, fallback)
	if err != nil {
		log.Warn("Ignoring window argument, using default", "error", err, "default", fallback.String())
	}
	return window
}
