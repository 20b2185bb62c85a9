package domain

import "errors"

// Sentinels are plain stdlib errors so that wrapping them with zerr context
// (which chains to the sentinel as cause) keeps errors.Is identity intact.
var (
	// ErrUnknownAgent is returned when an agent name is not one of the supported package managers.
	ErrUnknownAgent = errors.New("unknown package manager agent")

	// ErrProdOnlyUnsupported is returned when prod-only scanning is requested for an
	// agent that has no production-only dependency listing.
	ErrProdOnlyUnsupported = errors.New("prod-only scanning is not supported for this agent")

	// ErrManifestNotFound is returned when a project directory has no package.json.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrManifestInvalid is returned when a package.json cannot be parsed.
	ErrManifestInvalid = errors.New("invalid manifest")

	// ErrManifestWriteFailed is returned when a mutated manifest cannot be persisted.
	ErrManifestWriteFailed = errors.New("failed to write manifest")

	// ErrCatalogInvalid is returned when the replacement catalog cannot be parsed.
	ErrCatalogInvalid = errors.New("invalid replacement catalog")

	// ErrListCommandFailed is returned when the agent's dependency-listing command fails.
	ErrListCommandFailed = errors.New("dependency list command failed")

	// ErrRegistryLookupFailed is returned when the registry cannot resolve a version.
	// It is recovered locally by the resolution engine and never surfaced to callers.
	ErrRegistryLookupFailed = errors.New("registry version lookup failed")
)
