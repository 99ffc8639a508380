package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/adapter/driven/checkpoint"
	"github.com/ericfisherdev/prpoll/internal/adapter/driven/github"
	"github.com/ericfisherdev/prpoll/internal/application"
	"github.com/ericfisherdev/prpoll/internal/domain/model"
)

// newFindPRCommand builds the find_pr subcommand: detect the next PR that
// needs processing and print it, or print nothing when everything is
// up to date.
func newFindPRCommand(opts *Options) *cobra.Command {
	var (
		owner           string
		repo            string
		authorInOrg     string
		successfulCheck string
		excludeDrafts   bool
	)

	cmd := &cobra.Command{
		Use:   "find_pr",
		Short: "Find the next PR that needs to be processed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := github.NewClient(opts.Token)
			store := checkpoint.NewStore(opts.CheckpointFile)
			detector := application.NewDetectService(client, store)

			pr, err := detector.FindNext(cmd.Context(), owner, repo, application.FilterConfig{
				AuthorInOrg:     authorInOrg,
				SuccessfulCheck: successfulCheck,
				ExcludeDrafts:   excludeDrafts,
			})
			if err != nil {
				return err
			}
			if pr == nil {
				return nil
			}

			printPR(cmd.OutOrStdout(), *pr)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the repo")
	cmd.Flags().StringVar(&repo, "repo", "", "Repo name")
	cmd.Flags().StringVar(&authorInOrg, "author-in-org", "", "Skip PRs from authors not in this organization")
	cmd.Flags().StringVar(&successfulCheck, "successful-check", "", "Skip PRs that did not pass this check")
	cmd.Flags().BoolVar(&excludeDrafts, "exclude-drafts", false, "Skip draft PRs instead of just logging them")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

// printPR writes the single-line result an orchestrator parses:
// "<number> <reference> <updated_at> <head_sha>".
func printPR(w io.Writer, pr model.PullRequest) {
	fmt.Fprintf(w, "%d %s %s %s\n",
		pr.Number,
		pr.Reference,
		pr.UpdatedAt.UTC().Format(time.RFC3339),
		pr.HeadSHA,
	)
}
