package command

import (
	"context"
	"fmt"

	"github.com/orgball2608/subreddit-archiver/internal/mirror"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newCopyCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "copy <post-id>",
		Short: "Mirror one source post regardless of its age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				log    logger.Logger
				client mirror.Client
			)

			return runApp(cmd.Context(), fx.Populate(&log, &client), func(ctx context.Context) error {
				return copyPost(ctx, cmd, log, client, args[0], force)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "mirror again even if the post is in the ledger")
	return cmd
}

func copyPost(ctx context.Context, cmd *cobra.Command, log logger.Logger, client mirror.Client, id string, force bool) error {
	out, err := client.CopyPost(ctx, id, force)
	if err != nil {
		return fmt.Errorf("failed to copy post %s: %w", id, err)
	}
	if out == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already mirrored\n", id)
		return nil
	}

	log.Info("Post copied", "source_id", id, "destination_id", out.DestinationID, "action", string(out.Action))
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", id, out.DestinationID, string(out.Action))
	return nil
}
