package driven

import (
	"context"

	"github.com/ericfisherdev/prpoll/internal/domain/model"
)

// GitHubClient defines the driven port for reading from the GitHub API.
// Implementations hide pagination: list methods return the complete
// collection in the order the API returned it, without re-sorting.
type GitHubClient interface {
	// FetchOpenPullRequests returns all open pull requests for the
	// repository, requested sorted by update time descending.
	FetchOpenPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error)

	// FetchPullRequest returns a single pull request by number.
	FetchPullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequest, error)

	// FetchLastCommitSHA returns the SHA of the last commit on the PR's
	// commit list, i.e. the current head commit.
	FetchLastCommitSHA(ctx context.Context, owner, repo string, number int) (string, error)

	// FetchCommitStatuses returns all commit statuses for the given ref,
	// newest first as returned by the API.
	FetchCommitStatuses(ctx context.Context, owner, repo, ref string) ([]model.CommitStatus, error)

	// FetchOrgMembership looks up the user's membership in the organization.
	// A 404 (not a member, or membership not visible) surfaces as an error.
	FetchOrgMembership(ctx context.Context, org, user string) (*model.Membership, error)
}
