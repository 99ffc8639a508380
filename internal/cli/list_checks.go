package cli

import (
	"fmt"
	"regexp"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/prpoll/internal/adapter/driven/github"
	"github.com/ericfisherdev/prpoll/internal/application"
	"github.com/ericfisherdev/prpoll/internal/domain/model"
)

// newListChecksCommand builds the list_checks subcommand: show the commit
// statuses on a PR's head commit as a table, optionally narrowed by state,
// context, target URL, creation time, or collapsed to the latest run per
// context.
func newListChecksCommand(opts *Options) *cobra.Command {
	var (
		owner           string
		repo            string
		prNumber        int
		filterState     string
		contextRE       string
		targetURLRE     string
		createdAtGE     string
		latestByContext bool
	)

	cmd := &cobra.Command{
		Use:   "list_checks",
		Short: "List checks on a PR's head commit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := buildCheckFilter(filterState, contextRE, targetURLRE, createdAtGE, latestByContext)
			if err != nil {
				return err
			}

			client := github.NewClient(opts.Token)

			pr, err := client.FetchPullRequest(cmd.Context(), owner, repo, prNumber)
			if err != nil {
				return err
			}

			statuses, err := client.FetchCommitStatuses(cmd.Context(), owner, repo, pr.HeadSHA)
			if err != nil {
				return err
			}

			statuses = application.FilterStatuses(statuses, filter)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"created_at", "state", "context", "target_url"})
			for _, s := range statuses {
				table.Append([]string{
					s.CreatedAt.UTC().Format(time.RFC3339),
					string(s.State),
					s.Context,
					s.TargetURL,
				})
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the repo")
	cmd.Flags().StringVar(&repo, "repo", "", "Repo name")
	cmd.Flags().IntVar(&prNumber, "pr-number", 0, "PR number")
	cmd.Flags().StringVar(&filterState, "filter-by-state", "", "Only show checks with this state")
	cmd.Flags().StringVar(&contextRE, "filter-by-context-re", "", "Only show checks with context matching this regexp; checks with an empty context are excluded")
	cmd.Flags().StringVar(&targetURLRE, "filter-by-target-url-re", "", "Only show checks with target_url matching this regexp; checks with an empty target_url are excluded")
	cmd.Flags().StringVar(&createdAtGE, "filter-by-created-at-ge", "", "Only show checks with created_at >= the given RFC 3339 time")
	cmd.Flags().BoolVar(&latestByContext, "latest-by-context", false, "Only show the latest check for every context by created_at time")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-number")

	return cmd
}

// buildCheckFilter validates and compiles the list_checks filter flags.
func buildCheckFilter(state, contextRE, targetURLRE, createdAtGE string, latestByContext bool) (application.CheckFilter, error) {
	filter := application.CheckFilter{LatestByContext: latestByContext}

	if state != "" {
		parsed, err := model.ParseStatusState(state)
		if err != nil {
			return filter, err
		}
		filter.State = parsed
	}

	if contextRE != "" {
		re, err := regexp.Compile(contextRE)
		if err != nil {
			return filter, fmt.Errorf("compiling --filter-by-context-re: %w", err)
		}
		filter.ContextRE = re
	}

	if targetURLRE != "" {
		re, err := regexp.Compile(targetURLRE)
		if err != nil {
			return filter, fmt.Errorf("compiling --filter-by-target-url-re: %w", err)
		}
		filter.TargetURLRE = re
	}

	if createdAtGE != "" {
		ts, err := time.Parse(time.RFC3339, createdAtGE)
		if err != nil {
			return filter, fmt.Errorf("parsing --filter-by-created-at-ge %q: %w", createdAtGE, err)
		}
		filter.CreatedAtFloor = ts
	}

	return filter, nil
}
