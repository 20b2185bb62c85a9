// Package resolve implements the override resolution engine: it decides, for
// every dependency of a project and every workspace member, whether to rewrite
// its version constraint to point at a vetted replacement package.
package resolve

import (
	"strings"

	"github.com/depvet/depvet/internal/core/domain"
	"go.trai.ch/zerr"
)

// Profile is the per-agent constant record describing where overrides live in
// a manifest, how package presence is detected, and where a brand-new override
// field should be inserted. Profiles are never mutated after construction.
type Profile struct {
	// Kind is the override field shape the agent reads.
	Kind domain.OverrideKind

	// Lockfile is the lockfile filename scanned for presence.
	Lockfile string

	// InLockfile reports whether name appears in the resolved tree based on
	// the raw lockfile text.
	InLockfile func(text, name string) bool

	// InListOutput reports presence based on the stdout of the agent's live
	// dependency-listing command.
	InListOutput func(text, name string) bool

	// SupportsProdList reports whether the agent can list production-only
	// dependencies. Agents without it reject the prod-only option outright.
	SupportsProdList bool

	// RefsDirectDeps marks the one agent whose override syntax forbids a
	// standalone spec for a direct dependency: the override must reference the
	// dependency's own entry instead.
	RefsDirectDeps bool

	// InsertAfter and InsertBefore are ordered sibling-key hints for placing a
	// brand-new override field. After-hints win; the final fallback is the end
	// of the manifest.
	InsertAfter  []string
	InsertBefore []string
}

var dependencyGroupKeys = []string{
	"dependencies", "devDependencies", "peerDependencies", "optionalDependencies",
}

var profiles = map[domain.Agent]Profile{
	domain.AgentNPM: {
		Kind:             domain.KindOverrides,
		Lockfile:         "package-lock.json",
		InLockfile:       npmLockfileHas,
		InListOutput:     jsonKeyPresent,
		SupportsProdList: true,
		RefsDirectDeps:   true,
		InsertAfter:      []string{"resolutions", "pnpm"},
		InsertBefore:     dependencyGroupKeys,
	},
	domain.AgentPnpm: {
		Kind:             domain.KindPnpmOverrides,
		Lockfile:         "pnpm-lock.yaml",
		InLockfile:       pnpmLockfileHas,
		InListOutput:     jsonKeyPresent,
		SupportsProdList: true,
		InsertAfter:      []string{"overrides", "resolutions"},
		InsertBefore:     dependencyGroupKeys,
	},
	domain.AgentYarnClassic: {
		Kind:             domain.KindResolutions,
		Lockfile:         "yarn.lock",
		InLockfile:       yarnClassicLockfileHas,
		InListOutput:     yarnListHas,
		SupportsProdList: true,
		InsertAfter:      []string{"overrides", "pnpm"},
		InsertBefore:     dependencyGroupKeys,
	},
	domain.AgentYarnBerry: {
		Kind:             domain.KindResolutions,
		Lockfile:         "yarn.lock",
		InLockfile:       yarnBerryLockfileHas,
		InListOutput:     yarnBerryInfoHas,
		SupportsProdList: true,
		InsertAfter:      []string{"overrides", "pnpm"},
		InsertBefore:     dependencyGroupKeys,
	},
	domain.AgentVlt: {
		Kind:         domain.KindOverrides,
		Lockfile:     "vlt-lock.json",
		InLockfile:   vltLockfileHas,
		InListOutput: jsonKeyPresent,
		InsertAfter:  []string{"resolutions", "pnpm"},
		InsertBefore: dependencyGroupKeys,
	},
	domain.AgentBun: {
		Kind:         domain.KindOverrides,
		Lockfile:     "bun.lock",
		InLockfile:   bunLockfileHas,
		InListOutput: jsonKeyPresent,
		InsertAfter:  []string{"resolutions", "pnpm"},
		InsertBefore: dependencyGroupKeys,
	},
}

// ProfileFor returns the constant profile for an agent.
func ProfileFor(agent domain.Agent) (Profile, error) {
	prof, ok := profiles[agent]
	if !ok {
		return Profile{}, zerr.With(domain.ErrUnknownAgent, "agent", agent.String())
	}
	return prof, nil
}

// npm's package-lock keys every installed package by its node_modules path.
// Nested installs produce keys like "node_modules/a/node_modules/b", so the
// match anchors on the path segment rather than the opening quote.
func npmLockfileHas(text, name string) bool {
	return strings.Contains(text, "node_modules/"+name+`"`)
}

// pnpm-lock.yaml keys packages as 'name@version' (v9) or /name@version (v6-8).
func pnpmLockfileHas(text, name string) bool {
	return strings.Contains(text, "'"+name+"@") ||
		strings.Contains(text, "/"+name+"@")
}

// yarn 1.x lockfile entries start a line with one or more name@range selectors.
func yarnClassicLockfileHas(text, name string) bool {
	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")
		if strings.HasPrefix(line, name+"@") ||
			strings.HasPrefix(line, `"`+name+`@`) ||
			strings.Contains(line, ", "+name+"@") {
			return true
		}
	}
	return false
}

// yarn berry lockfile selectors carry the npm: protocol.
func yarnBerryLockfileHas(text, name string) bool {
	return strings.Contains(text, `"`+name+`@npm:`) ||
		strings.Contains(text, "\n"+name+"@npm:")
}

// vlt-lock.json node ids embed the package name between the edge separator and
// its version.
func vltLockfileHas(text, name string) bool {
	return strings.Contains(text, "·"+name+"@")
}

// bun.lock records resolved packages as "name@version" strings.
func bunLockfileHas(text, name string) bool {
	return strings.Contains(text, `"`+name+`@`)
}

// jsonKeyPresent matches JSON-shaped list output (npm ls --json and friends).
func jsonKeyPresent(text, name string) bool {
	return strings.Contains(text, `"`+name+`":`)
}

// yarn list prints tree lines such as "├─ left-pad@1.3.0".
func yarnListHas(text, name string) bool {
	return strings.Contains(text, " "+name+"@") ||
		strings.Contains(text, `"`+name+`@`)
}

// yarn berry info --json emits one JSON value per locator.
func yarnBerryInfoHas(text, name string) bool {
	return strings.Contains(text, `"`+name+`@npm:`)
}

// hintsForKind supplies insertion hints for an override map written under a
// shape other than the agent's own, which happens for the dual override hedge
// of publishable root projects.
func hintsForKind(kind domain.OverrideKind) []string {
	switch kind {
	case domain.KindResolutions:
		return []string{"overrides", "pnpm"}
	case domain.KindPnpmOverrides:
		return []string{"overrides", "resolutions"}
	default:
		return []string{"resolutions", "pnpm"}
	}
}
