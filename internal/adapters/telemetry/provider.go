package telemetry

import (
	"os"

	"golang.org/x/term"

	"github.com/depvet/depvet/internal/adapters/telemetry/progrock"
	"github.com/depvet/depvet/internal/core/ports"
)

// New selects a tracer for the current environment: the progrock tape when
// stderr is an interactive terminal, the no-op tracer for CI and piped runs.
func New() ports.Tracer {
	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"
	if isCI || !term.IsTerminal(int(os.Stderr.Fd())) {
		return NewNoOpTracer()
	}
	return progrock.New()
}
