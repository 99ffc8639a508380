// Package cli defines the command-line interface for prpoll.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/config"
	"github.com/ericfisherdev/prpoll/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	Token          string
	CheckpointFile string
	Debug          bool
}

// Execute builds the root command, runs it with the provided args, and
// returns any error. Environment-derived configuration supplies flag
// defaults; flags override it.
func Execute(args []string) error {
	cfg := config.Load()

	opts := &Options{
		Token:          cfg.GitHubToken,
		CheckpointFile: cfg.CheckpointFile,
	}

	slog.SetDefault(logging.NewLogger(os.Stderr, false))

	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prpoll",
		Short: "prpoll polls GitHub pull requests and records what was processed",
		Long: "prpoll finds open pull requests that still need processing, keeps a local\n" +
			"checkpoint of what was already handled, and reports outcomes back to GitHub\n" +
			"as commit statuses or comments. Each subcommand prints at most one result\n" +
			"line to stdout so an external orchestrator can drive it from a script.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.NewLogger(os.Stderr, opts.Debug))
			slog.Debug("logger initialized", "debug", opts.Debug)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Token, "token", opts.Token, "GitHub personal access token (defaults to GITHUB_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.CheckpointFile, "checkpoint-file", opts.CheckpointFile, "Path to the checkpoint file")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "Show debug output")

	cmd.AddCommand(
		newFindPRCommand(opts),
		newLoadPRCommand(opts),
		newProcessedPRCommand(opts),
		newStatusCommitCommand(opts),
		newListChecksCommand(opts),
		newAddCommentCommand(opts),
	)

	return cmd
}
