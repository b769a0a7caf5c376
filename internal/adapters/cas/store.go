// Package cas persists the last check report of each project.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPath is the store file used by the CLI, relative to the working directory.
var DefaultPath = filepath.Join(".retarget", "state.json")

var _ ports.ReportStore = (*Store)(nil)

// Store implements ports.ReportStore using a flat JSON file keyed by project name.
type Store struct {
	path    string
	mu      sync.RWMutex
	records map[string]domain.ReportRecord
}

// NewStore creates a Store backed by the file at path. A missing file is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		records: make(map[string]domain.ReportRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path) //nolint:gosec // Path is cleaned and provided by trusted caller
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", s.path)
	}
	return nil
}

// saveLocked writes all records. Callers hold mu.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", s.path)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Get retrieves the last record for a project. Names are matched case-insensitively.
func (s *Store) Get(project string) (*domain.ReportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key(project)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put replaces the record of record.Project and saves the store.
func (s *Store) Put(record domain.ReportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key(record.Project)] = record
	return s.saveLocked()
}

func key(project string) string {
	return strings.ToLower(project)
}
