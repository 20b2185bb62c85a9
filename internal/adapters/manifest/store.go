// Package manifest implements the package.json store.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/depvet/depvet/internal/core/domain"
)

const filePerm = 0o644

// Store implements ports.ManifestStore on the filesystem. It remembers a
// digest of every document it hands out so an unchanged manifest is never
// rewritten.
type Store struct {
	mu      sync.Mutex
	digests map[string]uint64
}

// NewStore creates a new manifest store.
func NewStore() *Store {
	return &Store{
		digests: make(map[string]uint64),
	}
}

// Read loads and parses the package.json in dir.
func (s *Store) Read(dir string) (*domain.Manifest, error) {
	path := filepath.Join(dir, "package.json")
	//nolint:gosec // path is the user's own project manifest
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "dir", dir)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "dir", dir)
	}
	m, err := domain.ParseManifest(dir, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.digests[dir] = xxhash.Sum64(data)
	s.mu.Unlock()
	return m, nil
}

// Save persists a manifest atomically with a trailing newline. Saving a
// document whose serialized form matches what was read is a no-op.
func (s *Store) Save(m *domain.Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "dir", m.Dir)
	}
	data = append(data, '\n')

	s.mu.Lock()
	prev, known := s.digests[m.Dir]
	s.mu.Unlock()
	if known && prev == xxhash.Sum64(data) {
		return nil
	}

	path := filepath.Join(m.Dir, "package.json")
	tmp, err := os.CreateTemp(m.Dir, ".package.json.*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "dir", m.Dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "dir", m.Dir)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "dir", m.Dir)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "dir", m.Dir)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "dir", m.Dir)
	}

	s.mu.Lock()
	s.digests[m.Dir] = xxhash.Sum64(data)
	s.mu.Unlock()
	return nil
}
