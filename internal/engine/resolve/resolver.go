package resolve

import (
	"context"
	"strings"
	"sync"

	"github.com/depvet/depvet/internal/core/domain"
	"github.com/depvet/depvet/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxConcurrent bounds every fan-out in the engine: candidates within one
// project and workspace members across the run.
const maxConcurrent = 3

// Options configure one resolution run.
type Options struct {
	// Agent is the package manager detected for the project root.
	Agent domain.Agent

	// Pin selects exact-version overrides over caret-major ranges.
	Pin bool

	// ProdOnly scans the live production dependency list instead of the
	// lockfile. Not every agent supports it.
	ProdOnly bool

	// State is the shared aggregate for recursive runs. Nil means a fresh
	// state is created at the root call.
	State *domain.ResolutionState

	// HasWorkspaceMembers reports that the run spans workspace members. Set by
	// ResolveWorkspaces from the lister result; gates the one-shot warning
	// about listing a pnpm workspace with the npm fallback.
	HasWorkspaceMembers bool
}

// Engine computes and applies vetted-replacement overrides for a project.
// It is a pure function of its inputs aside from the injected I/O collaborators.
type Engine struct {
	catalog    ports.Catalog
	registry   ports.Registry
	store      ports.ManifestStore
	lister     ports.DependencyLister
	workspaces ports.WorkspaceLister
	logger     ports.Logger
	tracer     ports.Tracer
}

// NewEngine creates an Engine with the given collaborators.
func NewEngine(
	catalog ports.Catalog,
	registry ports.Registry,
	store ports.ManifestStore,
	lister ports.DependencyLister,
	workspaces ports.WorkspaceLister,
	logger ports.Logger,
	tracer ports.Tracer,
) *Engine {
	return &Engine{
		catalog:    catalog,
		registry:   registry,
		store:      store,
		lister:     lister,
		workspaces: workspaces,
		logger:     logger,
		tracer:     tracer,
	}
}

// WithCatalog returns a copy of the engine reading candidates from a
// different catalog. Used when the CLI is pointed at a catalog file.
func (e *Engine) WithCatalog(catalog ports.Catalog) *Engine {
	clone := *e
	clone.catalog = catalog
	return &clone
}

// run is the mutable working set of one project pass. All shared maps are
// guarded by one mutex; candidate goroutines only ever write disjoint keys but
// Go maps still need the lock.
type run struct {
	mu       sync.Mutex
	manifest *domain.Manifest
	prof     Profile
	opts     Options
	isRoot   bool
	inTree   func(text, name string) bool
	groups   map[domain.DependencyGroup]map[string]string
	override []*domain.OverridesData
	aliases  map[string]string
}

// Resolve runs the engine for a single project directory. dir may be the root
// or a workspace member; rootDir is fixed for the whole recursive run. The
// tree-presence scan and the override-map pass only happen at the root.
func (e *Engine) Resolve(ctx context.Context, dir, rootDir string, opts Options) (*domain.ResolutionState, error) {
	prof, err := ProfileFor(opts.Agent)
	if err != nil {
		return nil, err
	}
	if opts.ProdOnly && !prof.SupportsProdList {
		return nil, zerr.With(domain.ErrProdOnlyUnsupported, "agent", opts.Agent.String())
	}

	state := opts.State
	if state == nil {
		state = domain.NewResolutionState()
		opts.State = state
	}

	ctx, span := e.tracer.Start(ctx, "resolve "+dir)
	defer span.End()

	manifest, err := e.store.Read(dir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	candidates, err := e.catalog.Candidates()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	nodeRange := manifest.EngineNode()
	applicable := candidates[:0:0]
	for _, cand := range candidates {
		if cand.SupportsEngine(nodeRange) {
			applicable = append(applicable, cand)
		}
	}

	r := newRun(manifest, prof, opts, dir == rootDir)

	var subject string
	if r.isRoot {
		subject, err = e.presenceSubject(ctx, dir, prof, opts, state)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, cand := range applicable {
		g.Go(func() error {
			return e.applyCandidate(gctx, r, cand, subject, state)
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	r.writeBack()
	if err := e.store.Save(manifest); err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "dir", dir)
	}

	span.SetAttribute("candidates", len(applicable))
	return state, nil
}

// newRun extracts the live dependency groups and override maps for a project.
// A root project that is neither private nor a workspace root is publishable
// and may be consumed through npm or yarn alike, so it carries two override
// maps at once; everyone else gets the single map of its agent.
func newRun(manifest *domain.Manifest, prof Profile, opts Options, isRoot bool) *run {
	r := &run{
		manifest: manifest,
		prof:     prof,
		opts:     opts,
		isRoot:   isRoot,
		inTree:   prof.InLockfile,
		groups:   make(map[domain.DependencyGroup]map[string]string),
		aliases:  make(map[string]string),
	}
	if opts.ProdOnly {
		r.inTree = prof.InListOutput
	}
	for _, group := range domain.DependencyGroups {
		if entries := manifest.DependencyGroup(group); entries != nil {
			r.groups[group] = entries
		}
	}
	publishable := isRoot && !manifest.Private() &&
		len(manifest.WorkspacePatterns()) == 0 && !opts.HasWorkspaceMembers
	if publishable {
		r.override = []*domain.OverridesData{
			domain.NewOverridesData(domain.KindOverrides, manifest.Overrides(domain.KindOverrides)),
			domain.NewOverridesData(domain.KindResolutions, manifest.Overrides(domain.KindResolutions)),
		}
	} else {
		r.override = []*domain.OverridesData{
			domain.NewOverridesData(prof.Kind, manifest.Overrides(prof.Kind)),
		}
	}
	return r
}

// applyCandidate handles one catalog row end to end: the direct-dependency
// rewrite for every group, then (root only) the override-map pass for each
// override shape the project maintains.
func (e *Engine) applyCandidate(
	ctx context.Context,
	r *run,
	cand domain.CandidateReplacement,
	subject string,
	state *domain.ResolutionState,
) error {
	prefix := domain.OverridePrefix(cand.Replacement)
	computed := domain.OverrideSpec(cand.Replacement, cand.Version, r.opts.Pin)

	r.rewriteDependencies(cand, prefix, computed, state)

	if !r.isRoot {
		return nil
	}
	for _, od := range r.override {
		if err := e.applyOverride(ctx, r, od, cand, prefix, computed, subject, state); err != nil {
			return err
		}
	}
	return nil
}

// rewriteDependencies rewrites direct entries found under the original or the
// replacement name, unless the entry already pins a valid replacement spec.
// The resulting spec is remembered in the alias map for both names.
func (r *run) rewriteDependencies(
	cand domain.CandidateReplacement,
	prefix, computed string,
	state *domain.ResolutionState,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, group := range domain.DependencyGroups {
		entries, ok := r.groups[group]
		if !ok {
			continue
		}
		for _, name := range []string{cand.Original, cand.Replacement} {
			cur, ok := entries[name]
			if !ok {
				continue
			}
			// The rewrite always lands under the original name. A match under
			// the replacement name must not re-fire once the original-name
			// entry already carries the computed spec.
			if !domain.IsPinnedOverrideSpec(cur, prefix) && cur != computed &&
				entries[cand.Original] != computed {
				hadPrefix := strings.HasPrefix(cur, prefix)
				entries[cand.Original] = computed
				cur = computed
				if hadPrefix {
					state.MarkUpdated(cand.Replacement, !r.isRoot)
				} else {
					state.MarkAdded(cand.Replacement, !r.isRoot)
				}
			}
			if spec, ok := entries[cand.Original]; ok {
				cur = spec
			}
			r.aliases[cand.Original] = cur
			r.aliases[cand.Replacement] = cur
		}
	}
}

// applyOverride is the root-only override-map pass for one candidate and one
// override shape.
func (e *Engine) applyOverride(
	ctx context.Context,
	r *run,
	od *domain.OverridesData,
	cand domain.CandidateReplacement,
	prefix, computed, subject string,
	state *domain.ResolutionState,
) error {
	r.mu.Lock()
	existing, hasKey := od.Entries[cand.Original]
	_, hasAlias := r.aliases[cand.Original]
	r.mu.Unlock()

	// Skip packages that are neither overridden already nor in the tree.
	if !hasKey && !r.inTree(subject, cand.Original) {
		return nil
	}

	if hasKey && existing != "" &&
		!strings.HasPrefix(existing, prefix) && existing != "$"+cand.Original {
		// User-authored override; never clobbered.
		return nil
	}

	spec := computed
	switch {
	case od.Kind == domain.KindOverrides && r.prof.RefsDirectDeps && hasAlias:
		// npm rejects a standalone override for a direct dependency; the
		// override must reference the dependency's own entry.
		spec = "$" + cand.Original

	case hasKey && existing != "":
		if r.opts.Pin {
			major, ok := domain.SpecMajor(existing, prefix)
			if ok && major != cand.Version.Major() {
				// The user may have pinned ahead of the catalog. Resolve what
				// their spec actually installs before recomputing, so we never
				// silently downgrade. Lookup failures keep the existing spec.
				actual, err := e.registry.ResolveVersion(ctx, existing)
				if err != nil {
					e.logger.Debug("registry lookup failed for " + existing + ": " + err.Error())
					return nil
				}
				if actual == nil {
					return nil
				}
				spec = prefix + actual.String()
			}
		}
	}

	if spec == existing && hasKey {
		return nil
	}

	r.mu.Lock()
	od.Entries[cand.Original] = spec
	r.mu.Unlock()

	if od.Had(cand.Original) {
		state.MarkUpdated(cand.Replacement, false)
	} else {
		state.MarkAdded(cand.Replacement, false)
	}
	return nil
}
