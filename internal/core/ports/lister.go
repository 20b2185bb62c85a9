package ports

import (
	"context"

	"github.com/depvet/depvet/internal/core/domain"
)

// DependencyLister runs the agent's live dependency-listing command.
//
//go:generate mockgen -source=lister.go -destination=mocks/mock_lister.go -package=mocks
type DependencyLister interface {
	// List returns the raw stdout of the agent's list invocation for the given
	// project directory. usedFallback reports that the agent's native tool was
	// unavailable and a fallback lister produced the output instead.
	List(ctx context.Context, agent domain.Agent, dir string, prodOnly bool) (out string, usedFallback bool, err error)
}
