package application

import (
	"regexp"
	"time"

	"github.com/ericfisherdev/prpoll/internal/domain/model"
)

// CheckFilter narrows a commit-status list for display. Zero values disable
// the corresponding criterion.
type CheckFilter struct {
	// LatestByContext keeps only the newest status (by creation time) for
	// each context, collapsing re-runs.
	LatestByContext bool
	// State keeps only statuses in this state.
	State model.StatusState
	// ContextRE keeps only statuses whose context matches; statuses with an
	// empty context are excluded.
	ContextRE *regexp.Regexp
	// TargetURLRE keeps only statuses whose target URL matches; statuses
	// with an empty target URL are excluded.
	TargetURLRE *regexp.Regexp
	// CreatedAtFloor keeps only statuses created at or after this time.
	CreatedAtFloor time.Time
}

// FilterStatuses applies the filter criteria in order: latest-by-context
// first, then state, context, target URL, and creation-time floor. The
// relative order of surviving statuses is preserved.
func FilterStatuses(statuses []model.CommitStatus, f CheckFilter) []model.CommitStatus {
	out := statuses

	if f.LatestByContext {
		out = latestByContext(out)
	}

	if f.State != "" {
		out = keep(out, func(s model.CommitStatus) bool {
			return s.State == f.State
		})
	}

	if f.ContextRE != nil {
		out = keep(out, func(s model.CommitStatus) bool {
			return s.Context != "" && f.ContextRE.MatchString(s.Context)
		})
	}

	if f.TargetURLRE != nil {
		out = keep(out, func(s model.CommitStatus) bool {
			return s.TargetURL != "" && f.TargetURLRE.MatchString(s.TargetURL)
		})
	}

	if !f.CreatedAtFloor.IsZero() {
		out = keep(out, func(s model.CommitStatus) bool {
			return !s.CreatedAt.Before(f.CreatedAtFloor)
		})
	}

	return out
}

// latestByContext keeps one status per context, the newest by CreatedAt,
// at the position where the context first appeared.
func latestByContext(statuses []model.CommitStatus) []model.CommitStatus {
	position := make(map[string]int)
	var out []model.CommitStatus

	for _, s := range statuses {
		if i, ok := position[s.Context]; ok {
			if s.CreatedAt.After(out[i].CreatedAt) {
				out[i] = s
			}
			continue
		}
		position[s.Context] = len(out)
		out = append(out, s)
	}

	return out
}

func keep(statuses []model.CommitStatus, pred func(model.CommitStatus) bool) []model.CommitStatus {
	var out []model.CommitStatus
	for _, s := range statuses {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
