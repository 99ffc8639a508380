// Package checkpoint implements the CheckpointStore port backed by a single
// YAML file keyed by PR reference.
package checkpoint

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/prpoll/internal/domain/model"
	"github.com/ericfisherdev/prpoll/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CheckpointStore = (*Store)(nil)

// IOError indicates the checkpoint backing file could not be read, decoded,
// or written. A missing file is not an IOError: it loads as an empty set.
type IOError struct {
	Op   string // "read", "decode", "encode", or "write".
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("checkpoint %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store persists the checkpoint mapping in one YAML file. Save rewrites the
// whole file atomically; concurrent invocations are out of scope and the
// last writer wins.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path. The file is not touched
// until the first Load or Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted checkpoint mapping. A missing or empty file
// yields an empty set.
func (s *Store) Load() (model.CheckpointSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.CheckpointSet{}, nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}

	var set model.CheckpointSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, &IOError{Op: "decode", Path: s.path, Err: err}
	}

	if set == nil {
		set = model.CheckpointSet{}
	}

	return set, nil
}

// Save serializes the full mapping and replaces the file atomically
// (write-to-temp-then-rename), so a crash mid-save never leaves a truncated
// store behind.
func (s *Store) Save(set model.CheckpointSet) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return &IOError{Op: "encode", Path: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "write", Path: s.path, Err: err}
		}
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}

	return nil
}
