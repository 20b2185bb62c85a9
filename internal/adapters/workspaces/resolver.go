// Package workspaces discovers workspace member manifests.
package workspaces

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/depvet/depvet/internal/core/domain"
	"github.com/depvet/depvet/internal/core/ports"
)

// Resolver implements ports.WorkspaceLister by globbing workspace patterns
// against the project tree.
type Resolver struct {
	store ports.ManifestStore
}

// NewResolver creates a Resolver.
func NewResolver(store ports.ManifestStore) *Resolver {
	return &Resolver{store: store}
}

// pnpmWorkspaceFile mirrors pnpm-workspace.yaml.
type pnpmWorkspaceFile struct {
	Packages []string `yaml:"packages"`
}

// ListMembers returns the absolute paths of member package.json files, sorted.
// For pnpm the patterns come from pnpm-workspace.yaml; every other agent
// declares them in the root manifest's workspaces field. The root manifest
// itself is never a member.
func (r *Resolver) ListMembers(agent domain.Agent, rootDir string) ([]string, error) {
	patterns, err := r.patterns(agent, rootDir)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	include, exclude := splitNegations(patterns)

	seen := make(map[string]struct{})
	for _, pattern := range include {
		matches, err := globDirs(rootDir, pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "bad workspace pattern"), "pattern", pattern)
		}
		for _, rel := range matches {
			if excluded(rel, exclude) {
				continue
			}
			manifestPath := filepath.Join(rootDir, rel, "package.json")
			if _, statErr := os.Stat(manifestPath); statErr != nil {
				continue
			}
			seen[manifestPath] = struct{}{}
		}
	}

	members := make([]string, 0, len(seen))
	for path := range seen {
		members = append(members, path)
	}
	sort.Strings(members)
	return members, nil
}

func (r *Resolver) patterns(agent domain.Agent, rootDir string) ([]string, error) {
	if agent == domain.AgentPnpm {
		data, err := os.ReadFile(filepath.Join(rootDir, "pnpm-workspace.yaml"))
		if err != nil {
			if os.IsNotExist(err) {
				// Fall through to the manifest field: some pnpm projects
				// declare workspaces there instead.
				return r.manifestPatterns(rootDir)
			}
			return nil, zerr.Wrap(err, "failed to read pnpm-workspace.yaml")
		}
		var wf pnpmWorkspaceFile
		if err := yaml.Unmarshal(data, &wf); err != nil {
			return nil, zerr.Wrap(err, "failed to parse pnpm-workspace.yaml")
		}
		return wf.Packages, nil
	}
	return r.manifestPatterns(rootDir)
}

func (r *Resolver) manifestPatterns(rootDir string) ([]string, error) {
	m, err := r.store.Read(rootDir)
	if err != nil {
		return nil, err
	}
	return m.WorkspacePatterns(), nil
}

// globDirs walks rootDir matching pattern against relative directory paths.
// node_modules subtrees are pruned.
func globDirs(rootDir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	var matches []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // unreadable subtrees are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == "node_modules" {
			return filepath.SkipDir
		}
		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func splitNegations(patterns []string) (include, exclude []string) {
	for _, p := range patterns {
		if neg, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, neg)
			continue
		}
		include = append(include, p)
	}
	return include, exclude
}

func excluded(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
