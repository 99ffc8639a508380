package driven

import "github.com/ericfisherdev/prpoll/internal/domain/model"

// CheckpointStore defines the driven port for checkpoint persistence. The
// store is the exclusive owner of checkpoint data: the detector only reads
// the loaded set, and the recorder is the only writer.
type CheckpointStore interface {
	// Load returns the persisted checkpoint mapping. A store that does not
	// exist yet loads as an empty set, not an error.
	Load() (model.CheckpointSet, error)

	// Save atomically overwrites the persisted mapping with the given set.
	// The whole set is serialized each time; last writer wins.
	Save(set model.CheckpointSet) error
}
