package driven

import "context"

// StatusReport is the input to GitHubWriter.CreateCommitStatus: an outbound
// assertion about one commit. It is constructed and sent once, never stored.
type StatusReport struct {
	State       string // "error", "failure", "pending", or "success".
	Description string // Human-readable summary shown next to the check.
	Context     string // Namespaced label distinguishing concurrent checks.
	TargetURL   string // Optional link to details.
}

// GitHubWriter defines the driven port for GitHub write operations.
// It is intentionally separate from GitHubClient (read operations).
// Both methods are fire-and-forget: a non-success response is an error,
// there is no local retry.
type GitHubWriter interface {
	// CreateCommitStatus posts a commit status for the given SHA.
	CreateCommitStatus(ctx context.Context, owner, repo, sha string, report StatusReport) error

	// CreateIssueComment adds a comment to an issue or pull request.
	CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) error
}
