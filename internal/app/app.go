// Package app implements the application layer for depvet.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/depvet/depvet/internal/adapters/catalog"
	"github.com/depvet/depvet/internal/core/domain"
	"github.com/depvet/depvet/internal/core/ports"
	"github.com/depvet/depvet/internal/engine/resolve"
)

// App wires the resolution engine to the CLI surface.
type App struct {
	engine     *resolve.Engine
	detector   ports.AgentDetector
	store      ports.ManifestStore
	workspaces ports.WorkspaceLister
	logger     ports.Logger
}

// New creates a new App instance.
func New(
	engine *resolve.Engine,
	detector ports.AgentDetector,
	store ports.ManifestStore,
	workspaces ports.WorkspaceLister,
	logger ports.Logger,
) *App {
	return &App{
		engine:     engine,
		detector:   detector,
		store:      store,
		workspaces: workspaces,
		logger:     logger,
	}
}

// OptimizeOptions configure one optimize run.
type OptimizeOptions struct {
	// Dir is the project root. Empty means the current directory.
	Dir string
	// Agent forces a package manager instead of detecting one.
	Agent string
	// Pin selects exact-version overrides.
	Pin bool
	// ProdOnly scans the live production tree instead of the lockfile.
	ProdOnly bool
	// CatalogPath points at a replacement catalog file, overriding the
	// embedded one.
	CatalogPath string
}

// OptimizeResult is what a run produced.
type OptimizeResult struct {
	Agent domain.Agent
	State *domain.ResolutionState
}

// Optimize resolves overrides for the project and its workspaces.
func (a *App) Optimize(ctx context.Context, opts OptimizeOptions) (*OptimizeResult, error) {
	dir := projectDir(opts.Dir)

	agent, err := a.resolveAgent(opts.Agent, dir)
	if err != nil {
		return nil, err
	}

	engine := a.engine
	if opts.CatalogPath != "" {
		cat, err := catalog.NewFromFile(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
		engine = engine.WithCatalog(cat)
	}

	state, err := engine.ResolveWorkspaces(ctx, dir, resolve.Options{
		Agent:    agent,
		Pin:      opts.Pin,
		ProdOnly: opts.ProdOnly,
	})
	if err != nil {
		return nil, err
	}
	return &OptimizeResult{Agent: agent, State: state}, nil
}

// DetectAgent reports which package manager owns the project.
func (a *App) DetectAgent(dir string) (domain.Agent, error) {
	return a.detector.Detect(projectDir(dir))
}

// projectDependencies is one project's slice of the merged manifest scan.
type projectDependencies struct {
	Name                 string            `json:"name,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// ScanManifest writes a merged dependency manifest for the project and all of
// its workspaces as JSON, keyed by project directory relative to the root. It
// is meant for feeding external vulnerability scanners.
func (a *App) ScanManifest(out io.Writer, dir, agentName string) error {
	root := projectDir(dir)

	agent, err := a.resolveAgent(agentName, root)
	if err != nil {
		return err
	}

	members, err := a.workspaces.ListMembers(agent, root)
	if err != nil {
		return err
	}

	dirs := []string{root}
	for _, manifestPath := range members {
		dirs = append(dirs, filepath.Dir(manifestPath))
	}

	merged := make(map[string]projectDependencies, len(dirs))
	for _, d := range dirs {
		m, err := a.store.Read(d)
		if err != nil {
			return zerr.With(err, "dir", d)
		}
		rel, err := filepath.Rel(root, d)
		if err != nil {
			rel = d
		}
		merged[filepath.ToSlash(rel)] = projectDependencies{
			Name:                 m.Name(),
			Dependencies:         m.DependencyGroup(domain.GroupDependencies),
			DevDependencies:      m.DependencyGroup(domain.GroupDevDependencies),
			PeerDependencies:     m.DependencyGroup(domain.GroupPeerDependencies),
			OptionalDependencies: m.DependencyGroup(domain.GroupOptionalDependencies),
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(merged); err != nil {
		return zerr.Wrap(err, "failed to encode dependency manifest")
	}
	return nil
}

// WriteSummary prints a human-readable account of an optimize run.
func (a *App) WriteSummary(out io.Writer, result *OptimizeResult) {
	state := result.State
	if !state.Changed() {
		fmt.Fprintln(out, "Your dependencies are already optimized.")
		return
	}

	if added := state.Added(); len(added) > 0 {
		fmt.Fprintf(out, "Added %d %s: %s\n",
			len(added), plural("override", len(added)), strings.Join(added, ", "))
	}
	if updated := state.Updated(); len(updated) > 0 {
		fmt.Fprintf(out, "Updated %d %s: %s\n",
			len(updated), plural("override", len(updated)), strings.Join(updated, ", "))
	}

	workspaceNames := union(state.AddedInWorkspaces(), state.UpdatedInWorkspaces())
	if len(workspaceNames) > 0 {
		fmt.Fprintf(out, "Workspace members touched: %s\n", strings.Join(workspaceNames, ", "))
	}

	fmt.Fprintf(out, "Run %s install to apply the changes.\n", result.Agent.Command())
}

func (a *App) resolveAgent(name, dir string) (domain.Agent, error) {
	if name != "" {
		return domain.ParseAgent(name)
	}
	return a.detector.Detect(dir)
}

func projectDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, name := range a {
		seen[name] = struct{}{}
	}
	for _, name := range b {
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
