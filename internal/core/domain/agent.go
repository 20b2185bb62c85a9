package domain

import "go.trai.ch/zerr"

// Agent identifies a supported JavaScript package manager.
// It is detected once per project from the lockfiles present on disk
// and never changes during a resolution run.
type Agent string

const (
	// AgentNPM is the primary registry client (package-lock.json).
	AgentNPM Agent = "npm"
	// AgentPnpm is the fast, hard-link based client (pnpm-lock.yaml).
	AgentPnpm Agent = "pnpm"
	// AgentYarnClassic is yarn 1.x (yarn.lock without a __metadata header).
	AgentYarnClassic Agent = "yarn-classic"
	// AgentYarnBerry is yarn 2+ (yarn.lock opening with a __metadata block).
	AgentYarnBerry Agent = "yarn-berry"
	// AgentVlt is the minimal-lockfile client (vlt-lock.json).
	AgentVlt Agent = "vlt"
	// AgentBun is the bun runtime's bundled client (bun.lock / bun.lockb).
	AgentBun Agent = "bun"
)

// Agents lists every supported agent in a stable order.
var Agents = []Agent{AgentNPM, AgentPnpm, AgentYarnClassic, AgentYarnBerry, AgentVlt, AgentBun}

// String returns the agent name as used in user-facing output.
func (a Agent) String() string {
	return string(a)
}

// Command returns the binary users invoke for this agent. Both yarn flavors
// share the yarn binary.
func (a Agent) Command() string {
	switch a {
	case AgentYarnClassic, AgentYarnBerry:
		return "yarn"
	default:
		return string(a)
	}
}

// ParseAgent converts a user-provided agent name into an Agent.
func ParseAgent(s string) (Agent, error) {
	for _, a := range Agents {
		if string(a) == s {
			return a, nil
		}
	}
	return "", zerr.With(ErrUnknownAgent, "agent", s)
}
