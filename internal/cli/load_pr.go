package cli

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/adapter/driven/github"
)

// newLoadPRCommand builds the load_pr subcommand: print one specific PR in
// find_pr's output format, bypassing detection. The head commit comes from
// the PR's commit list rather than the embedded head ref, so the printed SHA
// reflects the commits endpoint even when the two disagree briefly.
func newLoadPRCommand(opts *Options) *cobra.Command {
	var (
		owner    string
		repo     string
		prNumber int
	)

	cmd := &cobra.Command{
		Use:   "load_pr",
		Short: "Load details for a given PR",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := github.NewClient(opts.Token)

			pr, err := client.FetchPullRequest(cmd.Context(), owner, repo, prNumber)
			if err != nil {
				return err
			}

			sha, err := client.FetchLastCommitSHA(cmd.Context(), owner, repo, prNumber)
			if err != nil {
				return err
			}
			pr.HeadSHA = sha

			printPR(cmd.OutOrStdout(), *pr)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the repo")
	cmd.Flags().StringVar(&repo, "repo", "", "Repo name")
	cmd.Flags().IntVar(&prNumber, "pr-number", 0, "PR number")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-number")

	return cmd
}
