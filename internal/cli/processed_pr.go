package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/adapter/driven/checkpoint"
	"github.com/ericfisherdev/prpoll/internal/application"
)

// newProcessedPRCommand builds the processed_pr subcommand: record that a PR
// was processed at a given update time (and optionally commit), so find_pr
// skips it until it changes again. No output on success.
func newProcessedPRCommand(opts *Options) *cobra.Command {
	var (
		issueURL      string
		updatedAt     string
		lastCommitSHA string
	)

	cmd := &cobra.Command{
		Use:   "processed_pr",
		Short: "Store a PR as processed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := time.Parse(time.RFC3339, updatedAt)
			if err != nil {
				return fmt.Errorf("parsing --updated-at %q: %w", updatedAt, err)
			}

			recorder := application.NewRecordService(checkpoint.NewStore(opts.CheckpointFile))
			return recorder.MarkProcessed(issueURL, ts, lastCommitSHA)
		},
	}

	cmd.Flags().StringVar(&issueURL, "issue-url", "", "PR issue URL (the checkpoint key)")
	cmd.Flags().StringVar(&updatedAt, "updated-at", "", "PR updated_at timestamp (RFC 3339)")
	cmd.Flags().StringVar(&lastCommitSHA, "last-commit-sha", "", "PR last commit SHA")
	_ = cmd.MarkFlagRequired("issue-url")
	_ = cmd.MarkFlagRequired("updated-at")

	return cmd
}
