package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubWriter = (*Client)(nil)

// CreateCommitStatus posts a commit status for the given SHA. The call is
// fire-and-forget: a non-success response is returned as an error and never
// retried locally.
func (c *Client) CreateCommitStatus(ctx context.Context, owner, repo, sha string, report driven.StatusReport) error {
	status := gh.RepoStatus{
		State:       gh.Ptr(report.State),
		Description: gh.Ptr(report.Description),
		Context:     gh.Ptr(report.Context),
	}
	if report.TargetURL != "" {
		status.TargetURL = gh.Ptr(report.TargetURL)
	}

	_, _, err := c.gh.Repositories.CreateStatus(ctx, owner, repo, sha, status)
	if err != nil {
		return fmt.Errorf("creating commit status for %s/%s@%s: %w", owner, repo, sha, err)
	}

	return nil
}

// CreateIssueComment adds a comment to an issue or pull request.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, issueNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("creating issue comment on %s/%s#%d: %w", owner, repo, issueNumber, err)
	}

	return nil
}
