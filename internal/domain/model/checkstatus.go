package model

import "time"

// CommitStatus represents an individual status entry from the GitHub Status API.
type CommitStatus struct {
	Context     string // CI service identifier (e.g., "ci/prow/e2e").
	State       StatusState
	Description string
	TargetURL   string // URL for more details on the status.
	CreatedAt   time.Time
}

// Membership carries the result of an organization-membership lookup.
type Membership struct {
	OrgLogin string // Login of the organization the membership belongs to.
	State    string // "active" or "pending".
}

// IsActiveIn reports whether the membership is an active membership in the
// given organization.
func (m Membership) IsActiveIn(org string) bool {
	return m.OrgLogin == org && m.State == "active"
}
