package model

import "fmt"

// StatusState represents the state of a commit status.
type StatusState string

const (
	StatusStateError   StatusState = "error"
	StatusStateFailure StatusState = "failure"
	StatusStatePending StatusState = "pending"
	StatusStateSuccess StatusState = "success"
)

// ParseStatusState validates a textual commit-status state.
func ParseStatusState(value string) (StatusState, error) {
	switch StatusState(value) {
	case StatusStateError, StatusStateFailure, StatusStatePending, StatusStateSuccess:
		return StatusState(value), nil
	default:
		return "", fmt.Errorf("invalid status state %q: must be one of error, failure, pending, success", value)
	}
}
