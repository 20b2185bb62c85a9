package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depvet/depvet/internal/core/domain"
)

func parseManifest(t *testing.T, data string) *domain.Manifest {
	t.Helper()
	m, err := domain.ParseManifest("/tmp/project", []byte(data))
	require.NoError(t, err)
	return m
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := domain.ParseManifest("/tmp/project", []byte("{"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestInvalid)
}

func TestManifest_Accessors(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"private": true,
		"packageManager": "pnpm@9.1.0",
		"engines": {"node": ">=18"},
		"workspaces": ["packages/*"]
	}`)

	assert.Equal(t, "demo", m.Name())
	assert.True(t, m.Private())
	assert.Equal(t, "pnpm@9.1.0", m.PackageManager())
	assert.Equal(t, ">=18", m.EngineNode())
	assert.Equal(t, []string{"packages/*"}, m.WorkspacePatterns())
}

func TestManifest_WorkspacePatterns_ObjectForm(t *testing.T) {
	m := parseManifest(t, `{"workspaces": {"packages": ["apps/*", "libs/*"]}}`)
	assert.Equal(t, []string{"apps/*", "libs/*"}, m.WorkspacePatterns())

	m = parseManifest(t, `{"name": "no-workspaces"}`)
	assert.Nil(t, m.WorkspacePatterns())
}

func TestManifest_DependencyGroup_AbsentVsEmpty(t *testing.T) {
	m := parseManifest(t, `{"dependencies": {}, "devDependencies": {"is-odd": "^3.0.1"}}`)

	assert.NotNil(t, m.DependencyGroup(domain.GroupDependencies))
	assert.Nil(t, m.DependencyGroup(domain.GroupPeerDependencies))
	assert.Equal(t, map[string]string{"is-odd": "^3.0.1"},
		m.DependencyGroup(domain.GroupDevDependencies))
}

func TestManifest_EncodePreservesKeyOrder(t *testing.T) {
	src := `{
  "name": "demo",
  "version": "1.0.0",
  "scripts": {
    "build": "tsc"
  },
  "dependencies": {
    "zebra": "^1.0.0",
    "alpha": "^2.0.0"
  }
}`
	m := parseManifest(t, src)
	out, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestManifest_SetDependencyGroup_KeepsOrderAppendsSorted(t *testing.T) {
	m := parseManifest(t, `{"dependencies": {"zebra": "^1.0.0", "alpha": "^2.0.0"}}`)

	entries := m.DependencyGroup(domain.GroupDependencies)
	entries["zebra"] = "npm:zebra-safe@^1"
	entries["mango"] = "^3.0.0"
	entries["beta"] = "^4.0.0"
	m.SetDependencyGroup(domain.GroupDependencies, entries)

	out, err := m.Encode()
	require.NoError(t, err)

	// Surviving keys keep their order, new keys follow sorted.
	text := string(out)
	zebra := strings.Index(text, `"zebra"`)
	alpha := strings.Index(text, `"alpha"`)
	beta := strings.Index(text, `"beta"`)
	mango := strings.Index(text, `"mango"`)
	require.NotEqual(t, -1, zebra)
	assert.Less(t, zebra, alpha)
	assert.Less(t, alpha, beta)
	assert.Less(t, beta, mango)
	assert.Contains(t, text, `"zebra": "npm:zebra-safe@^1"`)
}

func TestManifest_SetDependencyGroup_NeverPresentEmptySkipped(t *testing.T) {
	m := parseManifest(t, `{"name": "demo"}`)
	m.SetDependencyGroup(domain.GroupOptionalDependencies, map[string]string{})
	assert.NotContains(t, m.Keys(), "optionalDependencies")
}

func TestManifest_SetOverrides_InsertedAfterSibling(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"resolutions": {"foo": "^1.0.0"},
		"dependencies": {"left-pad": "^1.3.0"}
	}`)

	m.SetOverrides(domain.KindOverrides,
		map[string]string{"left-pad": "npm:leftpad-safe@^1"},
		[]string{"resolutions", "pnpm"},
		[]string{"dependencies"})

	assert.Equal(t, []string{"name", "resolutions", "overrides", "dependencies"}, m.Keys())
}

func TestManifest_SetOverrides_InsertedBeforeDependencies(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"dependencies": {"left-pad": "^1.3.0"}
	}`)

	m.SetOverrides(domain.KindOverrides,
		map[string]string{"left-pad": "npm:leftpad-safe@^1"},
		[]string{"resolutions", "pnpm"},
		[]string{"dependencies", "devDependencies"})

	assert.Equal(t, []string{"name", "overrides", "dependencies"}, m.Keys())
}

func TestManifest_SetOverrides_ReplacedInPlace(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"overrides": {"left-pad": "npm:leftpad-safe@^1"},
		"dependencies": {}
	}`)

	m.SetOverrides(domain.KindOverrides,
		map[string]string{"left-pad": "npm:leftpad-safe@1.2.1"},
		nil, nil)

	assert.Equal(t, []string{"name", "overrides", "dependencies"}, m.Keys())
	assert.Equal(t, map[string]string{"left-pad": "npm:leftpad-safe@1.2.1"},
		m.Overrides(domain.KindOverrides))
}

func TestManifest_SetOverrides_EmptyRemovesField(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"overrides": {"left-pad": "npm:leftpad-safe@^1"}
	}`)

	m.SetOverrides(domain.KindOverrides, map[string]string{}, nil, nil)
	assert.NotContains(t, m.Keys(), "overrides")
}

func TestManifest_PnpmOverrides_NestedReadWrite(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"pnpm": {"overrides": {"left-pad": "npm:leftpad-safe@^1"}}
	}`)

	assert.Equal(t, map[string]string{"left-pad": "npm:leftpad-safe@^1"},
		m.Overrides(domain.KindPnpmOverrides))

	m.SetOverrides(domain.KindPnpmOverrides,
		map[string]string{
			"left-pad": "npm:leftpad-safe@^1",
			"is-odd":   "npm:is-odd-safe@^2",
		},
		nil, nil)

	assert.Equal(t, map[string]string{
		"left-pad": "npm:leftpad-safe@^1",
		"is-odd":   "npm:is-odd-safe@^2",
	}, m.Overrides(domain.KindPnpmOverrides))
}

func TestManifest_PnpmOverrides_EmptyPrunesPnpmObject(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"pnpm": {"overrides": {"left-pad": "npm:leftpad-safe@^1"}}
	}`)

	m.SetOverrides(domain.KindPnpmOverrides, map[string]string{}, nil, nil)
	assert.NotContains(t, m.Keys(), "pnpm")
}

func TestManifest_PnpmOverrides_EmptyKeepsOtherPnpmSettings(t *testing.T) {
	m := parseManifest(t, `{
		"name": "demo",
		"pnpm": {
			"overrides": {"left-pad": "npm:leftpad-safe@^1"},
			"peerDependencyRules": {"ignoreMissing": ["react"]}
		}
	}`)

	m.SetOverrides(domain.KindPnpmOverrides, map[string]string{}, nil, nil)
	assert.Contains(t, m.Keys(), "pnpm")
	assert.Nil(t, m.Overrides(domain.KindPnpmOverrides))
}
