package ports

import "github.com/depvet/depvet/internal/core/domain"

// AgentDetector determines the package manager in charge of a project.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type AgentDetector interface {
	// Detect inspects the lockfiles in dir and returns the owning agent.
	Detect(dir string) (domain.Agent, error)
}
