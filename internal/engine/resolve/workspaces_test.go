package resolve_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/depvet/depvet/internal/core/domain"
	"github.com/depvet/depvet/internal/engine/resolve"
)

func testCatalogRows() []domain.CandidateReplacement {
	return []domain.CandidateReplacement{
		{Original: "left-pad", Replacement: "leftpad-safe", Version: semver.MustParse("1.2.1")},
		{Original: "is-odd", Replacement: "is-odd-safe", Version: semver.MustParse("2.0.0")},
		{Original: "object-assign", Replacement: "object-assign-safe", Version: semver.MustParse("3.1.0")},
	}
}

func TestResolveWorkspaces_AggregatesAcrossMembers(t *testing.T) {
	engine, m := newTestEngine(t)
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "monorepo",
  "private": true,
  "workspaces": ["packages/*"]
}`)
	writeFile(t, filepath.Join(root, "package-lock.json"), npmLockWithLeftPad)

	memberA := filepath.Join(root, "packages", "a")
	writeFile(t, filepath.Join(memberA, "package.json"), `{
  "name": "a",
  "dependencies": {"is-odd": "^3.0.1"}
}`)
	memberB := filepath.Join(root, "packages", "b")
	writeFile(t, filepath.Join(memberB, "package.json"), `{
  "name": "b",
  "devDependencies": {"object-assign": "^4.1.1"}
}`)

	m.catalog.EXPECT().Candidates().Return(testCatalogRows(), nil).Times(3)
	m.members.EXPECT().ListMembers(domain.AgentNPM, root).Return([]string{
		filepath.Join(memberA, "package.json"),
		filepath.Join(memberB, "package.json"),
	}, nil)

	state, err := engine.ResolveWorkspaces(context.Background(), root, resolve.Options{Agent: domain.AgentNPM})
	require.NoError(t, err)

	// Root contributes leftpad-safe from its lockfile; each member contributes
	// one direct-dependency rewrite.
	assert.Equal(t, []string{"is-odd-safe", "leftpad-safe", "object-assign-safe"}, state.Added())
	assert.Equal(t, []string{"is-odd-safe", "object-assign-safe"}, state.AddedInWorkspaces())

	// Members only rewrite their own dependency entries; the override maps
	// stay at the root.
	savedA := readManifest(t, memberA)
	assert.Equal(t, map[string]string{"is-odd": "npm:is-odd-safe@^2"},
		savedA.DependencyGroup(domain.GroupDependencies))
	assert.Nil(t, savedA.Overrides(domain.KindOverrides))

	savedB := readManifest(t, memberB)
	assert.Equal(t, map[string]string{"object-assign": "npm:object-assign-safe@^3"},
		savedB.DependencyGroup(domain.GroupDevDependencies))
	assert.Nil(t, savedB.Overrides(domain.KindOverrides))

	savedRoot := readManifest(t, root)
	assert.Equal(t, map[string]string{"left-pad": "npm:leftpad-safe@^1"},
		savedRoot.Overrides(domain.KindOverrides))
}

func TestResolveWorkspaces_NoMembersIsPlainResolve(t *testing.T) {
	engine, m := newTestEngine(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "demo", "private": true}`)
	writeFile(t, filepath.Join(root, "package-lock.json"), npmLockWithLeftPad)

	m.catalog.EXPECT().Candidates().Return(testCatalogRows(), nil)
	m.members.EXPECT().ListMembers(domain.AgentNPM, root).Return(nil, nil)

	state, err := engine.ResolveWorkspaces(context.Background(), root, resolve.Options{Agent: domain.AgentNPM})
	require.NoError(t, err)
	assert.Equal(t, []string{"leftpad-safe"}, state.Added())
	assert.Empty(t, state.AddedInWorkspaces())
}

func TestResolveWorkspaces_PnpmFallbackWarnsExactlyOnce(t *testing.T) {
	engine, m := newTestEngine(t)
	root := t.TempDir()
	// pnpm declares members in pnpm-workspace.yaml, not in the manifest, so
	// the warning gate must come from the member listing.
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "monorepo",
  "private": true
}`)
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages:\n  - packages/*\n")

	memberA := filepath.Join(root, "packages", "a")
	writeFile(t, filepath.Join(memberA, "package.json"), `{"name": "a"}`)

	m.catalog.EXPECT().Candidates().Return(testCatalogRows(), nil).Times(2)
	m.members.EXPECT().ListMembers(domain.AgentPnpm, root).Return([]string{
		filepath.Join(memberA, "package.json"),
	}, nil)
	m.lister.EXPECT().List(gomock.Any(), domain.AgentPnpm, root, true).
		Return(`{"dependencies":{"left-pad":{"version":"1.3.0"}}}`, true, nil)
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	state, err := engine.ResolveWorkspaces(context.Background(), root, resolve.Options{
		Agent:    domain.AgentPnpm,
		ProdOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"leftpad-safe"}, state.Added())
}

func TestResolveWorkspaces_MemberFailureNamesDirectory(t *testing.T) {
	engine, m := newTestEngine(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "monorepo", "private": true, "workspaces": ["packages/*"]}`)

	missing := filepath.Join(root, "packages", "ghost")
	m.catalog.EXPECT().Candidates().Return(testCatalogRows(), nil).AnyTimes()
	m.members.EXPECT().ListMembers(domain.AgentNPM, root).Return([]string{
		filepath.Join(missing, "package.json"),
	}, nil)

	_, err := engine.ResolveWorkspaces(context.Background(), root, resolve.Options{Agent: domain.AgentNPM})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}
