package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depvet/depvet/internal/adapters/catalog"
	"github.com/depvet/depvet/internal/core/domain"
)

func TestNew_EmbeddedCatalog(t *testing.T) {
	c, err := catalog.New()
	require.NoError(t, err)

	rows, err := c.Candidates()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		assert.NotEmpty(t, row.Original)
		assert.NotEmpty(t, row.Replacement)
		require.NotNil(t, row.Version, "row %s", row.Original)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "left-pad", "replacement": "leftpad-safe", "version": "1.2.1", "engines": {"node": ">=14"}}
	]`), 0o644))

	c, err := catalog.NewFromFile(path)
	require.NoError(t, err)

	rows, err := c.Candidates()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "left-pad", rows[0].Original)
	assert.Equal(t, "leftpad-safe", rows[0].Replacement)
	assert.Equal(t, "1.2.1", rows[0].Version.String())
	require.NotNil(t, rows[0].MinEngine)
}

func TestNewFromFile_Missing(t *testing.T) {
	_, err := catalog.NewFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
}

func TestNewFromFile_BadRows(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing name", `[{"replacement": "x", "version": "1.0.0"}]`},
		{"bad version", `[{"name": "a", "replacement": "b", "version": "not-semver"}]`},
		{"bad engine range", `[{"name": "a", "replacement": "b", "version": "1.0.0", "engines": {"node": "!!"}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "catalog.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			_, err := catalog.NewFromFile(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
		})
	}
}
