package ports

import "github.com/depvet/depvet/internal/core/domain"

// Catalog supplies the trusted replacement packages. It is read-only data
// loaded once at startup and passed explicitly into the engine.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// Candidates returns every known replacement row.
	Candidates() ([]domain.CandidateReplacement, error)
}
