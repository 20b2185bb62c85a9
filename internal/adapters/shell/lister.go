// Package shell shells out to package managers to enumerate installed
// dependencies.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"go.trai.ch/zerr"

	"github.com/depvet/depvet/internal/core/domain"
	"github.com/depvet/depvet/internal/core/ports"
)

// Lister implements ports.DependencyLister using os/exec.
type Lister struct {
	logger ports.Logger
}

// NewLister creates a Lister.
func NewLister(logger ports.Logger) *Lister {
	return &Lister{
		logger: logger,
	}
}

// List runs the agent's list command in dir and returns its raw output.
// Exit status is deliberately ignored: list commands exit non-zero on
// peer-dependency warnings while still printing the full tree, and a
// missing tree simply yields output no package name matches.
//
// usedFallback is true when the pnpm binary was unavailable and npm was
// used in its place.
func (l *Lister) List(ctx context.Context, agent domain.Agent, dir string, prodOnly bool) (string, bool, error) {
	argv, err := listCommand(agent, prodOnly)
	if err != nil {
		return "", false, err
	}

	usedFallback := false
	if agent == domain.AgentPnpm {
		if _, lookErr := exec.LookPath(argv[0]); lookErr != nil {
			l.logger.Debug("pnpm binary not found, listing " + dir + " with npm")
			argv, _ = listCommand(domain.AgentNPM, prodOnly)
			usedFallback = true
		}
	}

	out, err := l.run(ctx, dir, argv)
	if err != nil {
		return "", usedFallback, err
	}
	return out, usedFallback, nil
}

func (l *Lister) run(ctx context.Context, dir string, argv []string) (string, error) {
	//nolint:gosec // argv comes from the fixed per-agent table above
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit with output: treat the output as the listing.
			if stdout.Len() > 0 {
				l.logger.Debug(argv[0] + " list exited non-zero, using its output anyway")
				return stdout.String(), nil
			}
			listErr := errors.Join(domain.ErrListCommandFailed, err)
			listErr = zerr.With(listErr, "command", argv[0])
			listErr = zerr.With(listErr, "exit_code", exitErr.ExitCode())
			return "", zerr.With(listErr, "stderr", stderr.String())
		}
		listErr := errors.Join(domain.ErrListCommandFailed, err)
		return "", zerr.With(listErr, "command", argv[0])
	}
	return stdout.String(), nil
}

// listCommand returns the argv for the agent's dependency listing, with the
// production-only flag applied when requested.
func listCommand(agent domain.Agent, prodOnly bool) ([]string, error) {
	switch agent {
	case domain.AgentNPM:
		argv := []string{"npm", "ls", "--json", "--all"}
		if prodOnly {
			argv = append(argv, "--omit=dev")
		}
		return argv, nil
	case domain.AgentPnpm:
		argv := []string{"pnpm", "ls", "--json", "--depth", "Infinity"}
		if prodOnly {
			argv = append(argv, "--prod")
		}
		return argv, nil
	case domain.AgentYarnClassic:
		argv := []string{"yarn", "list"}
		if prodOnly {
			argv = append(argv, "--production")
		}
		return argv, nil
	case domain.AgentYarnBerry:
		return []string{"yarn", "info", "--recursive", "--json"}, nil
	case domain.AgentVlt, domain.AgentBun:
		return nil, zerr.With(domain.ErrProdOnlyUnsupported, "agent", agent.String())
	default:
		return nil, zerr.With(domain.ErrUnknownAgent, "agent", agent.String())
	}
}
