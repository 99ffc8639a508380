package model

import "time"

// PullRequest is a point-in-time snapshot of an open GitHub pull request,
// built fresh on every fetch and discarded at the end of a polling cycle.
type PullRequest struct {
	// Reference is the PR's issue URL. It is the stable identity used as
	// the checkpoint key, distinct from the numeric Number.
	Reference string
	Number    int
	Author    string
	IsDraft   bool
	HeadSHA   string // Current head commit SHA; changes whenever commits are pushed.
	UpdatedAt time.Time
}
