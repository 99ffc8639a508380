// Package github implements the GitHubClient and GitHubWriter ports using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/prpoll/internal/domain/model"
	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
//
// An empty token yields an unauthenticated client, which works against
// public repositories at a lower rate limit.
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchOpenPullRequests retrieves all open pull requests for the repository,
// requested sorted by update time descending. It follows the Link-header
// pagination cursor until the last page and maps go-github types to domain
// model types.
func (c *Client) FetchOpenPullRequests(ctx context.Context, owner, repo string) ([]model.PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:     "open",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var allPRs []model.PullRequest

	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pull requests for %s/%s (page %d): %w", owner, repo, opts.Page, err)
		}

		logRateLimit(resp, owner+"/"+repo+"/pulls", opts.Page, len(prs))

		for _, pr := range prs {
			allPRs = append(allPRs, mapPullRequest(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// FetchPullRequest retrieves a single pull request by number.
func (c *Client) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequest, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	logRateLimit(resp, fmt.Sprintf("%s/%s/pulls/%d", owner, repo, number), 0, 1)

	mapped := mapPullRequest(pr)
	return &mapped, nil
}

// FetchLastCommitSHA returns the SHA of the last commit on the PR's commit
// list. The commit endpoint pages via the Link header; the final element of
// the last page is the current head commit.
func (c *Client) FetchLastCommitSHA(ctx context.Context, owner, repo string, number int) (string, error) {
	opts := &gh.ListOptions{PerPage: 100}

	var last string

	for {
		commits, resp, err := c.gh.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return "", fmt.Errorf("listing commits for %s/%s#%d (page %d): %w", owner, repo, number, opts.Page, err)
		}

		for _, commit := range commits {
			last = commit.GetSHA()
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if last == "" {
		return "", fmt.Errorf("pull request %s/%s#%d has no commits", owner, repo, number)
	}

	return last, nil
}

// FetchCommitStatuses retrieves all commit statuses for the given ref. The
// status endpoint is consumed with a page counter terminating on the first
// empty page, the other pagination convention the GitHub API uses.
func (c *Client) FetchCommitStatuses(ctx context.Context, owner, repo, ref string) ([]model.CommitStatus, error) {
	opts := &gh.ListOptions{PerPage: 100, Page: 1}

	var allStatuses []model.CommitStatus

	for {
		statuses, resp, err := c.gh.Repositories.ListStatuses(ctx, owner, repo, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("listing statuses for %s/%s@%s (page %d): %w", owner, repo, ref, opts.Page, err)
		}

		logRateLimit(resp, owner+"/"+repo+"/statuses", opts.Page, len(statuses))

		if len(statuses) == 0 {
			break
		}

		for _, s := range statuses {
			allStatuses = append(allStatuses, mapCommitStatus(s))
		}

		opts.Page++
	}

	return allStatuses, nil
}

// FetchOrgMembership looks up the user's membership in the organization.
func (c *Client) FetchOrgMembership(ctx context.Context, org, user string) (*model.Membership, error) {
	membership, resp, err := c.gh.Organizations.GetOrgMembership(ctx, user, org)
	if err != nil {
		return nil, fmt.Errorf("fetching membership of %s in %s: %w", user, org, err)
	}

	logRateLimit(resp, "orgs/"+org+"/memberships", 0, 1)

	return &model.Membership{
		OrgLogin: membership.GetOrganization().GetLogin(),
		State:    membership.GetState(),
	}, nil
}

// mapPullRequest converts a go-github PullRequest to a domain model PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest) model.PullRequest {
	return model.PullRequest{
		Reference: pr.GetIssueURL(),
		Number:    pr.GetNumber(),
		Author:    pr.GetUser().GetLogin(),
		IsDraft:   pr.GetDraft(),
		HeadSHA:   pr.GetHead().GetSHA(),
		UpdatedAt: pr.GetUpdatedAt().Time,
	}
}

// mapCommitStatus converts a go-github RepoStatus to a domain model CommitStatus.
func mapCommitStatus(s *gh.RepoStatus) model.CommitStatus {
	return model.CommitStatus{
		Context:     s.GetContext(),
		State:       model.StatusState(s.GetState()),
		Description: s.GetDescription(),
		TargetURL:   s.GetTargetURL(),
		CreatedAt:   s.GetCreatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
