package ports

import "github.com/depvet/depvet/internal/core/domain"

// WorkspaceLister discovers workspace member manifests under a project root.
//
//go:generate mockgen -source=workspaces.go -destination=mocks/mock_workspaces.go -package=mocks
type WorkspaceLister interface {
	// ListMembers returns absolute paths of member package.json files, sorted.
	// A project without workspace declarations yields an empty slice, not an
	// error.
	ListMembers(agent domain.Agent, rootDir string) ([]string, error)
}
