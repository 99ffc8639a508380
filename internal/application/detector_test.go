package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prpoll/internal/application"
	"github.com/ericfisherdev/prpoll/internal/domain/model"
)

// --- Mock implementations ---

type mockGitHubClient struct {
	prs      []model.PullRequest
	prsErr   error
	statuses map[string][]model.CommitStatus // keyed by ref
	members  map[string]model.Membership     // keyed by user login

	statusCalls     int
	membershipCalls int
}

func (m *mockGitHubClient) FetchOpenPullRequests(_ context.Context, _, _ string) ([]model.PullRequest, error) {
	return m.prs, m.prsErr
}

func (m *mockGitHubClient) FetchPullRequest(_ context.Context, _, _ string, _ int) (*model.PullRequest, error) {
	return nil, nil
}

func (m *mockGitHubClient) FetchLastCommitSHA(_ context.Context, _, _ string, _ int) (string, error) {
	return "", nil
}

func (m *mockGitHubClient) FetchCommitStatuses(_ context.Context, _, _, ref string) ([]model.CommitStatus, error) {
	m.statusCalls++
	return m.statuses[ref], nil
}

func (m *mockGitHubClient) FetchOrgMembership(_ context.Context, _, user string) (*model.Membership, error) {
	m.membershipCalls++
	membership, ok := m.members[user]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return &membership, nil
}

type memCheckpointStore struct {
	set     model.CheckpointSet
	loadErr error
}

func (m *memCheckpointStore) Load() (model.CheckpointSet, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.set == nil {
		return model.CheckpointSet{}, nil
	}
	return m.set, nil
}

func (m *memCheckpointStore) Save(set model.CheckpointSet) error {
	m.set = set
	return nil
}

// --- Helpers ---

func ts(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func twoPRs() []model.PullRequest {
	return []model.PullRequest{
		{
			Reference: "https://api.github.com/repos/o/r/issues/1",
			Number:    1,
			Author:    "alice",
			HeadSHA:   "sha-a",
			UpdatedAt: ts("2024-01-02T00:00:00Z"),
		},
		{
			Reference: "https://api.github.com/repos/o/r/issues/2",
			Number:    2,
			Author:    "bob",
			HeadSHA:   "sha-b",
			UpdatedAt: ts("2024-01-01T00:00:00Z"),
		},
	}
}

func findNext(t *testing.T, gh *mockGitHubClient, store *memCheckpointStore, filters application.FilterConfig) *model.PullRequest {
	t.Helper()

	svc := application.NewDetectService(gh, store)
	pr, err := svc.FindNext(context.Background(), "o", "r", filters)
	require.NoError(t, err)
	return pr
}

// --- Tests ---

func TestFindNext_NoCheckpointsReturnsLatest(t *testing.T) {
	gh := &mockGitHubClient{prs: twoPRs()}
	store := &memCheckpointStore{}

	pr := findNext(t, gh, store, application.FilterConfig{})

	require.NotNil(t, pr)
	assert.Equal(t, 1, pr.Number)
	assert.Equal(t, "sha-a", pr.HeadSHA)
}

func TestFindNext_Idempotent(t *testing.T) {
	gh := &mockGitHubClient{prs: twoPRs()}
	store := &memCheckpointStore{}

	first := findNext(t, gh, store, application.FilterConfig{})
	second := findNext(t, gh, store, application.FilterConfig{})

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Reference, second.Reference)
}

func TestFindNext_SkipsCheckpointedUpdateTime(t *testing.T) {
	gh := &mockGitHubClient{prs: twoPRs()}
	store := &memCheckpointStore{set: model.CheckpointSet{
		"https://api.github.com/repos/o/r/issues/1": {Number: 1, UpdatedAt: ts("2024-01-02T00:00:00Z")},
	}}

	pr := findNext(t, gh, store, application.FilterConfig{})

	require.NotNil(t, pr)
	assert.Equal(t, 2, pr.Number)
}

func TestFindNext_SkipsCheckpointedHeadCommit(t *testing.T) {
	// updated_at moved forward but the head commit is the one already
	// processed: a re-trigger with nothing new to act on.
	gh := &mockGitHubClient{prs: twoPRs()}
	store := &memCheckpointStore{set: model.CheckpointSet{
		"https://api.github.com/repos/o/r/issues/1": {
			Number:        1,
			UpdatedAt:     ts("2024-01-01T12:00:00Z"),
			LastCommitSHA: "sha-a",
		},
	}}

	pr := findNext(t, gh, store, application.FilterConfig{})

	require.NotNil(t, pr)
	assert.Equal(t, 2, pr.Number)
}

func TestFindNext_NewCommitWithStableUpdateTimeSurfaces(t *testing.T) {
	gh := &mockGitHubClient{prs: twoPRs()}
	store := &memCheckpointStore{set: model.CheckpointSet{
		"https://api.github.com/repos/o/r/issues/1": {
			Number:        1,
			UpdatedAt:     ts("2024-01-02T00:00:00Z"),
			LastCommitSHA: "sha-old",
		},
	}}

	pr := findNext(t, gh, store, application.FilterConfig{})

	require.NotNil(t, pr)
	assert.Equal(t, 1, pr.Number)
}

func TestFindNext_NoEligibleCandidate(t *testing.T) {
	gh := &mockGitHubClient{prs: twoPRs()}
	store := &memCheckpointStore{set: model.CheckpointSet{
		"https://api.github.com/repos/o/r/issues/1": {Number: 1, UpdatedAt: ts("2024-01-02T00:00:00Z")},
		"https://api.github.com/repos/o/r/issues/2": {Number: 2, UpdatedAt: ts("2024-01-01T00:00:00Z")},
	}}

	pr := findNext(t, gh, store, application.FilterConfig{})

	assert.Nil(t, pr)
}

func TestFindNext_NormalizesOrderLocally(t *testing.T) {
	// Remote order is oldest-first with a tie; detection must not depend on it.
	gh := &mockGitHubClient{prs: []model.PullRequest{
		{Reference: "ref/3", Number: 3, UpdatedAt: ts("2024-01-01T00:00:00Z")},
		{Reference: "ref/4", Number: 4, UpdatedAt: ts("2024-01-05T00:00:00Z")},
		{Reference: "ref/7", Number: 7, UpdatedAt: ts("2024-01-05T00:00:00Z")},
	}}
	store := &memCheckpointStore{}

	pr := findNext(t, gh, store, application.FilterConfig{})

	require.NotNil(t, pr)
	assert.Equal(t, 7, pr.Number, "tie on updated_at breaks by higher number")
}

func TestFindNext_DraftsEligibleByDefault(t *testing.T) {
	prs := twoPRs()
	prs[0].IsDraft = true
	gh := &mockGitHubClient{prs: prs}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{})

	require.NotNil(t, pr)
	assert.Equal(t, 1, pr.Number)
}

func TestFindNext_ExcludeDrafts(t *testing.T) {
	prs := twoPRs()
	prs[0].IsDraft = true
	gh := &mockGitHubClient{prs: prs}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{ExcludeDrafts: true})

	require.NotNil(t, pr)
	assert.Equal(t, 2, pr.Number)
}

func TestFindNext_MembershipFilter(t *testing.T) {
	gh := &mockGitHubClient{
		prs: twoPRs(),
		members: map[string]model.Membership{
			// alice's lookup 404s; bob is active.
			"bob": {OrgLogin: "acme", State: "active"},
		},
	}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{AuthorInOrg: "acme"})

	require.NotNil(t, pr)
	assert.Equal(t, 2, pr.Number)
	assert.Equal(t, 2, gh.membershipCalls)
}

func TestFindNext_MembershipPendingSkips(t *testing.T) {
	gh := &mockGitHubClient{
		prs: twoPRs(),
		members: map[string]model.Membership{
			"alice": {OrgLogin: "acme", State: "pending"},
			"bob":   {OrgLogin: "other", State: "active"},
		},
	}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{AuthorInOrg: "acme"})

	assert.Nil(t, pr)
}

func TestFindNext_SuccessfulCheckLatestWins(t *testing.T) {
	gh := &mockGitHubClient{
		prs: twoPRs(),
		statuses: map[string][]model.CommitStatus{
			"sha-a": {
				{Context: "ci/e2e", State: model.StatusStatePending, CreatedAt: ts("2024-01-01T10:00:00Z")},
				{Context: "ci/e2e", State: model.StatusStateSuccess, CreatedAt: ts("2024-01-01T12:00:00Z")},
			},
		},
	}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{SuccessfulCheck: "ci/e2e"})

	require.NotNil(t, pr)
	assert.Equal(t, 1, pr.Number)
}

func TestFindNext_SuccessfulCheckLatestPendingSkips(t *testing.T) {
	gh := &mockGitHubClient{
		prs: twoPRs(),
		statuses: map[string][]model.CommitStatus{
			"sha-a": {
				{Context: "ci/e2e", State: model.StatusStateSuccess, CreatedAt: ts("2024-01-01T10:00:00Z")},
				{Context: "ci/e2e", State: model.StatusStatePending, CreatedAt: ts("2024-01-01T12:00:00Z")},
			},
			"sha-b": {
				{Context: "ci/e2e", State: model.StatusStateSuccess, CreatedAt: ts("2024-01-01T11:00:00Z")},
			},
		},
	}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{SuccessfulCheck: "ci/e2e"})

	require.NotNil(t, pr)
	assert.Equal(t, 2, pr.Number)
}

func TestFindNext_CheckNeverRanSkips(t *testing.T) {
	gh := &mockGitHubClient{
		prs: twoPRs(),
		statuses: map[string][]model.CommitStatus{
			"sha-a": {
				{Context: "ci/other", State: model.StatusStateSuccess, CreatedAt: ts("2024-01-01T10:00:00Z")},
			},
		},
	}

	pr := findNext(t, gh, &memCheckpointStore{}, application.FilterConfig{SuccessfulCheck: "ci/e2e"})

	assert.Nil(t, pr)
	assert.Equal(t, 2, gh.statusCalls, "both candidates were inspected")
}

func TestFindNext_FiltersOnlyAfterChangeDetection(t *testing.T) {
	// The checkpointed PR is skipped before any remote filter lookup runs.
	gh := &mockGitHubClient{
		prs: twoPRs(),
		statuses: map[string][]model.CommitStatus{
			"sha-b": {
				{Context: "ci/e2e", State: model.StatusStateSuccess, CreatedAt: ts("2024-01-01T11:00:00Z")},
			},
		},
	}
	store := &memCheckpointStore{set: model.CheckpointSet{
		"https://api.github.com/repos/o/r/issues/1": {Number: 1, UpdatedAt: ts("2024-01-02T00:00:00Z")},
	}}

	pr := findNext(t, gh, store, application.FilterConfig{SuccessfulCheck: "ci/e2e"})

	require.NotNil(t, pr)
	assert.Equal(t, 2, pr.Number)
	assert.Equal(t, 1, gh.statusCalls, "skipped candidate must not trigger a status fetch")
}

func TestFindNext_PropagatesFetchError(t *testing.T) {
	gh := &mockGitHubClient{prsErr: errors.New("boom")}
	svc := application.NewDetectService(gh, &memCheckpointStore{})

	_, err := svc.FindNext(context.Background(), "o", "r", application.FilterConfig{})

	assert.Error(t, err)
}

func TestFindNext_PropagatesCheckpointLoadError(t *testing.T) {
	gh := &mockGitHubClient{prs: twoPRs()}
	svc := application.NewDetectService(gh, &memCheckpointStore{loadErr: errors.New("disk gone")})

	_, err := svc.FindNext(context.Background(), "o", "r", application.FilterConfig{})

	assert.Error(t, err)
}

func TestSortCandidates(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 1, UpdatedAt: ts("2024-01-01T00:00:00Z")},
		{Number: 2, UpdatedAt: ts("2024-01-03T00:00:00Z")},
		{Number: 5, UpdatedAt: ts("2024-01-02T00:00:00Z")},
		{Number: 3, UpdatedAt: ts("2024-01-02T00:00:00Z")},
	}

	application.SortCandidates(prs)

	var numbers []int
	for _, pr := range prs {
		numbers = append(numbers, pr.Number)
	}
	assert.Equal(t, []int{2, 5, 3, 1}, numbers)
}
