package application

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/prpoll/internal/domain/model"
	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

// RecordService updates the checkpoint store after an external process has
// finished acting on a pull request.
type RecordService struct {
	checkpoints driven.CheckpointStore
}

// NewRecordService creates a RecordService backed by the given store.
func NewRecordService(checkpoints driven.CheckpointStore) *RecordService {
	return &RecordService{checkpoints: checkpoints}
}

// MarkProcessed upserts the checkpoint for the given PR reference: it loads
// the full store, replaces the record, and saves the store back. A crash
// between load and save loses only this single update. lastCommitSHA may be
// empty when the processing did not reach a specific commit.
func (s *RecordService) MarkProcessed(reference string, updatedAt time.Time, lastCommitSHA string) error {
	number, err := NumberFromReference(reference)
	if err != nil {
		return err
	}

	set, err := s.checkpoints.Load()
	if err != nil {
		return err
	}

	set[reference] = model.Checkpoint{
		Number:        number,
		UpdatedAt:     updatedAt,
		LastCommitSHA: lastCommitSHA,
	}

	return s.checkpoints.Save(set)
}

// NumberFromReference extracts the PR number from a reference URL, which
// ends in ".../issues/<number>".
func NumberFromReference(reference string) (int, error) {
	idx := strings.LastIndex(reference, "/")
	if idx < 0 || idx == len(reference)-1 {
		return 0, fmt.Errorf("reference %q has no trailing number segment", reference)
	}

	number, err := strconv.Atoi(reference[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("reference %q has a non-numeric trailing segment: %w", reference, err)
	}

	return number, nil
}
