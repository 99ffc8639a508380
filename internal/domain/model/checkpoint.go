package model

import "time"

// Checkpoint records the last state at which one pull request was
// successfully processed. A checkpoint exists only after at least one
// mark-processed call for the PR.
type Checkpoint struct {
	Number    int       `yaml:"number"`
	UpdatedAt time.Time `yaml:"updated_at"`
	// LastCommitSHA is the head commit that was processed. Empty means the
	// PR was never processed past initial detection.
	LastCommitSHA string `yaml:"last_commit_sha,omitempty"`
}

// CheckpointSet is the full persisted checkpoint mapping, keyed by PR
// reference. The checkpoint store owns this data; everything else reads it.
type CheckpointSet map[string]Checkpoint
