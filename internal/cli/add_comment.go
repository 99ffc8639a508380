package cli

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/adapter/driven/github"
)

// newAddCommentCommand builds the add_comment subcommand: post a comment on
// an issue or PR. No output on success.
func newAddCommentCommand(opts *Options) *cobra.Command {
	var (
		owner       string
		repo        string
		issueNumber int
		body        string
	)

	cmd := &cobra.Command{
		Use:   "add_comment",
		Short: "Add a comment to an issue or PR",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := github.NewClient(opts.Token)
			return client.CreateIssueComment(cmd.Context(), owner, repo, issueNumber, body)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the repo")
	cmd.Flags().StringVar(&repo, "repo", "", "Repo name")
	cmd.Flags().IntVar(&issueNumber, "issue-number", 0, "Issue (or PR) number")
	cmd.Flags().StringVar(&body, "body", "", "Comment body")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("issue-number")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}
