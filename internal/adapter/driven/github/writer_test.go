package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

func TestCreateCommitStatus(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	})

	client, _ := newTestClient(t, handler)
	err := client.CreateCommitStatus(context.Background(), "owner", "repo", "abc123", driven.StatusReport{
		State:       "success",
		Description: "All checks passed",
		Context:     "ci/prpoll",
		TargetURL:   "https://ci.example/run/9",
	})

	require.NoError(t, err)
	assert.Equal(t, "/repos/owner/repo/statuses/abc123", gotPath)
	assert.Equal(t, "success", gotBody["state"])
	assert.Equal(t, "All checks passed", gotBody["description"])
	assert.Equal(t, "ci/prpoll", gotBody["context"])
	assert.Equal(t, "https://ci.example/run/9", gotBody["target_url"])
}

func TestCreateCommitStatus_OmitsEmptyTargetURL(t *testing.T) {
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":2}`))
	})

	client, _ := newTestClient(t, handler)
	err := client.CreateCommitStatus(context.Background(), "owner", "repo", "abc123", driven.StatusReport{
		State:       "pending",
		Description: "Running",
		Context:     "ci/prpoll",
	})

	require.NoError(t, err)
	_, present := gotBody["target_url"]
	assert.False(t, present)
}

func TestCreateCommitStatus_NonSuccessIsError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	})

	client, _ := newTestClient(t, handler)
	err := client.CreateCommitStatus(context.Background(), "owner", "repo", "abc123", driven.StatusReport{
		State:       "success",
		Description: "d",
		Context:     "c",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestCreateIssueComment(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3}`))
	})

	client, _ := newTestClient(t, handler)
	err := client.CreateIssueComment(context.Background(), "owner", "repo", 12, "build finished")

	require.NoError(t, err)
	assert.Equal(t, "/repos/owner/repo/issues/12/comments", gotPath)
	assert.Equal(t, "build finished", gotBody["body"])
}
