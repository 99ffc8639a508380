// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"
	"sort"

	"github.com/ericfisherdev/prpoll/internal/domain/model"
	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

// FilterConfig holds the optional eligibility filters applied by FindNext.
// Zero values disable the corresponding filter.
type FilterConfig struct {
	// AuthorInOrg skips PRs whose author is not an active member of this
	// organization.
	AuthorInOrg string
	// SuccessfulCheck skips PRs whose head commit does not carry a
	// most-recent status with this context in state "success".
	SuccessfulCheck string
	// ExcludeDrafts skips draft PRs. When false, drafts are only logged.
	ExcludeDrafts bool
}

// DetectService decides which pull request, if any, next requires
// processing, given the remote PR list and the local checkpoints.
type DetectService struct {
	gh          driven.GitHubClient
	checkpoints driven.CheckpointStore
}

// NewDetectService creates a DetectService with its required dependencies.
func NewDetectService(gh driven.GitHubClient, checkpoints driven.CheckpointStore) *DetectService {
	return &DetectService{
		gh:          gh,
		checkpoints: checkpoints,
	}
}

// FindNext fetches the repository's open PRs, normalizes their order, and
// returns the first one that has changed since its checkpoint and passes the
// configured eligibility filters. It returns (nil, nil) when no candidate
// survives. At most one PR is surfaced per call: the consuming orchestrator
// does expensive work per PR, and already-processed PRs are skipped on the
// next cycle, so scanning stops at the first match.
func (s *DetectService) FindNext(ctx context.Context, owner, repo string, filters FilterConfig) (*model.PullRequest, error) {
	candidates, err := s.gh.FetchOpenPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	checkpoints, err := s.checkpoints.Load()
	if err != nil {
		return nil, err
	}

	// The API is asked for updated-desc order but the scan must not depend
	// on remote ordering guarantees.
	SortCandidates(candidates)

	for _, pr := range candidates {
		slog.Debug("considering pull request",
			"pr", pr.Number,
			"reference", pr.Reference,
			"updated_at", pr.UpdatedAt,
			"head_sha", pr.HeadSHA,
		)

		if pr.IsDraft {
			slog.Debug("pull request is a draft", "pr", pr.Number, "excluded", filters.ExcludeDrafts)
			if filters.ExcludeDrafts {
				continue
			}
		}

		if cp, ok := checkpoints[pr.Reference]; ok {
			if cp.LastCommitSHA != "" && cp.LastCommitSHA == pr.HeadSHA {
				slog.Debug("head commit already processed", "pr", pr.Number, "head_sha", pr.HeadSHA)
				continue
			}
			// A recorded commit that no longer matches means new commits were
			// pushed; that re-runs the PR even when updated_at is stable.
			commitChanged := cp.LastCommitSHA != "" && cp.LastCommitSHA != pr.HeadSHA
			if cp.UpdatedAt.Equal(pr.UpdatedAt) && !commitChanged {
				slog.Debug("already processed at this update time", "pr", pr.Number, "updated_at", pr.UpdatedAt)
				continue
			}
		}

		if filters.AuthorInOrg != "" && !s.authorInOrg(ctx, pr, filters.AuthorInOrg) {
			continue
		}

		if filters.SuccessfulCheck != "" {
			ok, err := s.checkSucceeded(ctx, owner, repo, pr, filters.SuccessfulCheck)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		return &pr, nil
	}

	return nil, nil
}

// SortCandidates normalizes candidate order to updated-at descending, ties
// broken by descending PR number, so detection is deterministic regardless
// of remote ordering.
func SortCandidates(prs []model.PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool {
		if !prs[i].UpdatedAt.Equal(prs[j].UpdatedAt) {
			return prs[i].UpdatedAt.After(prs[j].UpdatedAt)
		}
		return prs[i].Number > prs[j].Number
	})
}

// authorInOrg reports whether the PR author is an active member of org. A
// failed lookup (404 included) counts as non-membership rather than a fatal
// error, so one unresolvable author cannot stall the whole scan.
func (s *DetectService) authorInOrg(ctx context.Context, pr model.PullRequest, org string) bool {
	membership, err := s.gh.FetchOrgMembership(ctx, org, pr.Author)
	if err != nil {
		slog.Debug("membership lookup failed", "pr", pr.Number, "author", pr.Author, "org", org, "error", err)
		return false
	}

	if !membership.IsActiveIn(org) {
		slog.Debug("author is not an active org member",
			"pr", pr.Number,
			"author", pr.Author,
			"org", org,
			"state", membership.State,
		)
		return false
	}

	return true
}

// checkSucceeded reports whether the most recently created commit status
// with the given context on the PR's head commit is in state "success".
// A head commit with no status for the context has not been checked yet
// and is not eligible.
func (s *DetectService) checkSucceeded(ctx context.Context, owner, repo string, pr model.PullRequest, checkName string) (bool, error) {
	statuses, err := s.gh.FetchCommitStatuses(ctx, owner, repo, pr.HeadSHA)
	if err != nil {
		return false, err
	}

	var latest *model.CommitStatus
	for i := range statuses {
		if statuses[i].Context != checkName {
			continue
		}
		if latest == nil || statuses[i].CreatedAt.After(latest.CreatedAt) {
			latest = &statuses[i]
		}
	}

	if latest == nil {
		slog.Debug("required check has not run", "pr", pr.Number, "check", checkName)
		return false, nil
	}

	if latest.State != model.StatusStateSuccess {
		slog.Debug("required check is not successful",
			"pr", pr.Number,
			"check", checkName,
			"state", latest.State,
			"created_at", latest.CreatedAt,
		)
		return false, nil
	}

	return true, nil
}
