// Package catalog loads the trusted replacement-package catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"

	"github.com/depvet/depvet/internal/core/domain"
)

//go:embed registry.json
var embedded []byte

// row is the JSON shape of one catalog entry.
type row struct {
	Name        string `json:"name"`
	Replacement string `json:"replacement"`
	Version     string `json:"version"`
	Engines     struct {
		Node string `json:"node"`
	} `json:"engines"`
}

// Catalog implements ports.Catalog. Rows are parsed once at construction and
// served read-only afterwards.
type Catalog struct {
	candidates []domain.CandidateReplacement
}

// New loads the catalog embedded in the binary.
func New() (*Catalog, error) {
	return parse(embedded)
}

// NewFromFile loads a catalog from a user-provided JSON file.
func NewFromFile(path string) (*Catalog, error) {
	//nolint:gosec // path is provided by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogInvalid, err), "path", path)
	}
	c, err := parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return c, nil
}

// Candidates returns every known replacement row.
func (c *Catalog) Candidates() ([]domain.CandidateReplacement, error) {
	return c.candidates, nil
}

func parse(data []byte) (*Catalog, error) {
	var rows []row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Join(domain.ErrCatalogInvalid, err)
	}

	candidates := make([]domain.CandidateReplacement, 0, len(rows))
	for _, r := range rows {
		if r.Name == "" || r.Replacement == "" {
			return nil, zerr.With(domain.ErrCatalogInvalid, "name", r.Name)
		}
		version, err := semver.NewVersion(r.Version)
		if err != nil {
			parseErr := zerr.With(errors.Join(domain.ErrCatalogInvalid, err), "name", r.Name)
			return nil, zerr.With(parseErr, "version", r.Version)
		}
		cand := domain.CandidateReplacement{
			Original:    r.Name,
			Replacement: r.Replacement,
			Version:     version,
		}
		if r.Engines.Node != "" {
			minEngine, err := semver.NewConstraint(r.Engines.Node)
			if err != nil {
				parseErr := zerr.With(errors.Join(domain.ErrCatalogInvalid, err), "name", r.Name)
				return nil, zerr.With(parseErr, "engines.node", r.Engines.Node)
			}
			cand.MinEngine = minEngine
		}
		candidates = append(candidates, cand)
	}
	return &Catalog{candidates: candidates}, nil
}
