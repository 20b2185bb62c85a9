package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CandidateReplacement is one row of the trusted replacement catalog: a vetted,
// drop-in substitute for a known original package, published under a different name.
type CandidateReplacement struct {
	// Original is the package name the replacement substitutes for.
	Original string

	// Replacement is the name the vetted package is published under.
	Replacement string

	// Version is the pinned catalog version of the replacement.
	Version *semver.Version

	// MinEngine is the minimum node engine requirement of the replacement
	// (e.g. ">=14"). Nil means the replacement runs everywhere.
	MinEngine *semver.Constraints
}

// SupportsEngine reports whether the replacement can be used by a project that
// declares the given engines.node range. A project without a declared range, or
// a range whose floor cannot be determined, accepts every candidate.
func (c CandidateReplacement) SupportsEngine(nodeRange string) bool {
	if c.MinEngine == nil {
		return true
	}
	floor := engineFloor(nodeRange)
	if floor == nil {
		return true
	}
	return c.MinEngine.Check(floor)
}

// engineFloor extracts the lowest concrete version from a node range declaration.
// It only needs to handle the shapes that appear in real manifests: ">=14",
// "^18.0.0", "14 || 16 || >=18", "18.x".
func engineFloor(nodeRange string) *semver.Version {
	first, _, _ := strings.Cut(nodeRange, "||")
	first = strings.TrimSpace(first)
	if first == "" {
		return nil
	}
	first = strings.Fields(first)[0]
	first = strings.TrimLeft(first, "^~><= v")
	first = strings.TrimSuffix(first, ".x")
	v, err := semver.NewVersion(first)
	if err != nil {
		return nil
	}
	return v
}
