package resolve

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/depvet/depvet/internal/core/domain"
	"go.trai.ch/zerr"
)

// presenceSubject obtains the text scanned for package presence at the project
// root: the lockfile by default, the live list-command output when prodOnly is
// set. A missing lockfile is not an error; every presence test simply misses.
func (e *Engine) presenceSubject(
	ctx context.Context,
	dir string,
	prof Profile,
	opts Options,
	state *domain.ResolutionState,
) (string, error) {
	if !opts.ProdOnly {
		data, err := os.ReadFile(filepath.Join(dir, prof.Lockfile))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", nil
			}
			return "", zerr.With(zerr.Wrap(err, "failed to read lockfile"), "lockfile", prof.Lockfile)
		}
		return string(data), nil
	}

	out, usedFallback, err := e.lister.List(ctx, opts.Agent, dir, true)
	if err != nil {
		return "", err
	}
	if usedFallback && opts.Agent == domain.AgentPnpm && opts.HasWorkspaceMembers && state.WarnPnpmFallbackOnce() {
		e.logger.Warn("pnpm is unavailable; the dependency tree was listed with npm, which may miss pnpm workspace linkage")
	}
	return out, nil
}
