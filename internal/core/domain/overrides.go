package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// OverrideKind identifies where overrides live in a manifest.
type OverrideKind string

const (
	// KindOverrides is the flat top-level "overrides" map (npm, bun, vlt).
	KindOverrides OverrideKind = "overrides"
	// KindPnpmOverrides is the "overrides" map nested under the "pnpm" field.
	KindPnpmOverrides OverrideKind = "pnpm-overrides"
	// KindResolutions is the flat top-level "resolutions" map (yarn).
	KindResolutions OverrideKind = "resolutions"
)

// OverridesData is one override map of a project, tracked together with the set
// of keys that were present before the resolution run so the engine can tell a
// newly created entry from a modified one.
type OverridesData struct {
	Kind    OverrideKind
	Entries map[string]string

	had map[string]struct{}
}

// NewOverridesData wraps an override map pulled from a manifest.
// A nil entries map is replaced with an empty one.
func NewOverridesData(kind OverrideKind, entries map[string]string) *OverridesData {
	if entries == nil {
		entries = make(map[string]string)
	}
	had := make(map[string]struct{}, len(entries))
	for name := range entries {
		had[name] = struct{}{}
	}
	return &OverridesData{Kind: kind, Entries: entries, had: had}
}

// Had reports whether the override key existed before the run started.
func (o *OverridesData) Had(name string) bool {
	_, ok := o.had[name]
	return ok
}

// EcosystemPrefix is the alias protocol used for replacement specs.
const EcosystemPrefix = "npm:"

// OverridePrefix returns the spec prefix identifying a replacement package,
// e.g. "npm:leftpad-safe@".
func OverridePrefix(replacement string) string {
	return EcosystemPrefix + replacement + "@"
}

// OverrideSpec builds the spec written for a replacement: an exact pin when pin
// is set, otherwise a caret range over the catalog version's major. These are
// the only two shapes a replacement spec ever takes.
func OverrideSpec(replacement string, version *semver.Version, pin bool) string {
	prefix := OverridePrefix(replacement)
	if pin {
		return prefix + version.String()
	}
	return prefix + "^" + strconv.FormatUint(version.Major(), 10)
}

// IsPinnedOverrideSpec reports whether spec already carries the replacement
// prefix followed by an exact version. Caret ranges and anything else count as
// not pinned, so the engine may rewrite them.
func IsPinnedOverrideSpec(spec, prefix string) bool {
	rest, ok := strings.CutPrefix(spec, prefix)
	if !ok {
		return false
	}
	_, err := semver.StrictNewVersion(rest)
	return err == nil
}

// SpecMajor extracts the major version encoded in a replacement spec, accepting
// both the exact-pin and caret-major shapes.
func SpecMajor(spec, prefix string) (uint64, bool) {
	rest, ok := strings.CutPrefix(spec, prefix)
	if !ok {
		return 0, false
	}
	rest = strings.TrimPrefix(rest, "^")
	v, err := semver.NewVersion(rest)
	if err != nil {
		return 0, false
	}
	return v.Major(), true
}
