package resolve

import (
	"context"
	"path/filepath"

	"github.com/depvet/depvet/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ResolveWorkspaces runs the engine for a project root and all of its
// workspace members. The root resolves first because it performs the only
// tree-presence scan; members then run with the same shared state, up to
// maxConcurrent at a time, with no ordering between them.
func (e *Engine) ResolveWorkspaces(ctx context.Context, rootDir string, opts Options) (*domain.ResolutionState, error) {
	if opts.State == nil {
		opts.State = domain.NewResolutionState()
	}
	state := opts.State

	members, err := e.workspaces.ListMembers(opts.Agent, rootDir)
	if err != nil {
		return nil, zerr.With(err, "dir", rootDir)
	}
	opts.HasWorkspaceMembers = len(members) > 0

	if _, err := e.Resolve(ctx, rootDir, rootDir, opts); err != nil {
		return nil, zerr.With(err, "dir", rootDir)
	}
	if len(members) == 0 {
		return state, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, manifestPath := range members {
		dir := filepath.Dir(manifestPath)
		g.Go(func() error {
			if _, err := e.Resolve(gctx, dir, rootDir, opts); err != nil {
				return zerr.With(err, "dir", dir)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}
