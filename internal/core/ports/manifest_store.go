package ports

import "github.com/depvet/depvet/internal/core/domain"

// ManifestStore reads and persists package.json documents.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Read loads the manifest from the given project directory.
	Read(dir string) (*domain.Manifest, error)
	// Save atomically persists a mutated manifest back to its directory with a
	// trailing newline. Saving an unchanged manifest is a no-op.
	Save(m *domain.Manifest) error
}
