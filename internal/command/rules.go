package command

import (
	"context"
	"fmt"
	"io"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the source subreddit rules as YAML",
		Long: "Prints the source rules, useful for filling in " +
			"SYNC_RULE_VIOLATION_TEXTS.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var source reddit.Source

			return runApp(cmd.Context(), fx.Populate(&source), func(ctx context.Context) error {
				rules, err := source.Rules(ctx)
				if err != nil {
					return fmt.Errorf("failed to fetch rules: %w", err)
				}
				return writeRules(cmd.OutOrStdout(), rules)
			})
		},
	}
}

func writeRules(w io.Writer, rules []domain.Rule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]domain.Rule{"rules": rules}); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return enc.Close()
}
