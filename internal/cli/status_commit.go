package cli

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/adapter/driven/github"
	"github.com/ericfisherdev/prpoll/internal/domain/model"
	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

// newStatusCommitCommand builds the status_commit subcommand: post a commit
// status for a SHA. No output on success.
func newStatusCommitCommand(opts *Options) *cobra.Command {
	var (
		owner         string
		repo          string
		commit        string
		state         string
		description   string
		statusContext string
		targetURL     string
	)

	cmd := &cobra.Command{
		Use:   "status_commit",
		Short: "Add a commit status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := model.ParseStatusState(state)
			if err != nil {
				return err
			}

			client := github.NewClient(opts.Token)
			return client.CreateCommitStatus(cmd.Context(), owner, repo, commit, driven.StatusReport{
				State:       string(parsed),
				Description: description,
				Context:     statusContext,
				TargetURL:   targetURL,
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the repo")
	cmd.Flags().StringVar(&repo, "repo", "", "Repo name")
	cmd.Flags().StringVar(&commit, "commit", "", "Commit SHA")
	cmd.Flags().StringVar(&state, "status-state", "", "Status state (error, failure, pending, success)")
	cmd.Flags().StringVar(&description, "status-description", "", "Status description")
	cmd.Flags().StringVar(&statusContext, "status-context", "", "Status context")
	cmd.Flags().StringVar(&targetURL, "status-target-url", "", "Status target URL")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("commit")
	_ = cmd.MarkFlagRequired("status-state")
	_ = cmd.MarkFlagRequired("status-description")
	_ = cmd.MarkFlagRequired("status-context")

	return cmd
}
