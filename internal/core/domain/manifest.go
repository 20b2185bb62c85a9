package domain

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/iancoleman/orderedmap"
	"go.trai.ch/zerr"
)

// DependencyGroup is one of the four dependency sections of a manifest.
type DependencyGroup string

const (
	// GroupDependencies holds direct production dependencies.
	GroupDependencies DependencyGroup = "dependencies"
	// GroupDevDependencies holds development-only dependencies.
	GroupDevDependencies DependencyGroup = "devDependencies"
	// GroupPeerDependencies holds peer dependencies.
	GroupPeerDependencies DependencyGroup = "peerDependencies"
	// GroupOptionalDependencies holds optional dependencies.
	GroupOptionalDependencies DependencyGroup = "optionalDependencies"
)

// DependencyGroups lists the groups in manifest-conventional order.
var DependencyGroups = []DependencyGroup{
	GroupDependencies,
	GroupDevDependencies,
	GroupPeerDependencies,
	GroupOptionalDependencies,
}

// Manifest is a package.json modeled as an ordered association list so that
// in-place mutation and deterministic field insertion never disturb the order
// of unrelated keys.
type Manifest struct {
	// Dir is the directory the manifest was read from.
	Dir string

	doc *orderedmap.OrderedMap
}

// ParseManifest decodes raw package.json bytes read from dir.
func ParseManifest(dir string, data []byte) (*Manifest, error) {
	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, zerr.With(errors.Join(ErrManifestInvalid, err), "dir", dir)
	}
	return &Manifest{Dir: dir, doc: doc}, nil
}

// ParseManifestFile reads and decodes a package.json on disk.
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(ErrManifestNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read manifest")
	}
	return ParseManifest(filepath.Dir(path), data)
}

// Encode serializes the manifest with two-space indentation, matching the
// formatting package managers themselves emit.
func (m *Manifest) Encode() ([]byte, error) {
	m.doc.SetEscapeHTML(false)
	data, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode manifest")
	}
	return data, nil
}

// Name returns the package name, or "" when absent.
func (m *Manifest) Name() string {
	return m.stringAt("name")
}

// PackageManager returns the packageManager field, e.g. "pnpm@9.1.0", or ""
// when absent.
func (m *Manifest) PackageManager() string {
	return m.stringAt("packageManager")
}

// Private reports whether the manifest is marked private.
func (m *Manifest) Private() bool {
	v, ok := m.doc.Get("private")
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// EngineNode returns the declared engines.node range, or "" when absent.
func (m *Manifest) EngineNode() string {
	engines, ok := objectAt(m.doc, "engines")
	if !ok {
		return ""
	}
	v, ok := engines.Get("node")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// WorkspacePatterns returns the workspace member glob patterns. Both the array
// form and the object form with a "packages" list are understood.
func (m *Manifest) WorkspacePatterns() []string {
	v, ok := m.doc.Get("workspaces")
	if !ok {
		return nil
	}
	if arr, ok := v.([]any); ok {
		return stringSlice(arr)
	}
	if obj, ok := asObject(v); ok {
		if pk, ok := obj.Get("packages"); ok {
			if arr, ok := pk.([]any); ok {
				return stringSlice(arr)
			}
		}
	}
	return nil
}

// DependencyGroup returns the named dependency group as a mutable mapping.
// Absent groups yield nil so callers can tell "missing" from "empty".
func (m *Manifest) DependencyGroup(group DependencyGroup) map[string]string {
	obj, ok := objectAt(m.doc, string(group))
	if !ok {
		return nil
	}
	return stringMap(obj)
}

// SetDependencyGroup writes a dependency group back, keeping the original key
// order for surviving entries and appending new names sorted. Groups that were
// never present and have no entries are left out entirely.
func (m *Manifest) SetDependencyGroup(group DependencyGroup, entries map[string]string) {
	existing, present := objectAt(m.doc, string(group))
	if !present && len(entries) == 0 {
		return
	}
	var order []string
	if present {
		order = existing.Keys()
	}
	m.doc.Set(string(group), buildOrdered(entries, order))
}

// Overrides returns the override map for the given kind, or nil when the field
// is absent.
func (m *Manifest) Overrides(kind OverrideKind) map[string]string {
	switch kind {
	case KindPnpmOverrides:
		pnpm, ok := objectAt(m.doc, "pnpm")
		if !ok {
			return nil
		}
		inner, ok := asObjectAt(pnpm, "overrides")
		if !ok {
			return nil
		}
		return stringMap(inner)
	case KindResolutions:
		obj, ok := objectAt(m.doc, "resolutions")
		if !ok {
			return nil
		}
		return stringMap(obj)
	default:
		obj, ok := objectAt(m.doc, "overrides")
		if !ok {
			return nil
		}
		return stringMap(obj)
	}
}

// SetOverrides persists an override map. An existing field is replaced in
// place; a missing field is inserted after the first matching key in after,
// failing that before the first matching key in before, failing that at the
// end of the manifest. Empty maps are never written: the field is removed if
// previously present, and an emptied pnpm object is pruned as well.
func (m *Manifest) SetOverrides(kind OverrideKind, entries map[string]string, after, before []string) {
	if kind == KindPnpmOverrides {
		m.setPnpmOverrides(entries, after, before)
		return
	}
	key := "overrides"
	if kind == KindResolutions {
		key = "resolutions"
	}
	if len(entries) == 0 {
		m.doc.Delete(key)
		return
	}
	existing, present := objectAt(m.doc, key)
	var order []string
	if present {
		order = existing.Keys()
	}
	m.setNear(key, buildOrdered(entries, order), after, before)
}

func (m *Manifest) setPnpmOverrides(entries map[string]string, after, before []string) {
	pnpm, present := objectAt(m.doc, "pnpm")
	if len(entries) == 0 {
		if !present {
			return
		}
		pnpm.Delete("overrides")
		if len(pnpm.Keys()) == 0 {
			m.doc.Delete("pnpm")
		} else {
			m.doc.Set("pnpm", *pnpm)
		}
		return
	}
	var order []string
	if present {
		if inner, ok := asObjectAt(pnpm, "overrides"); ok {
			order = inner.Keys()
		}
	} else {
		pnpm = orderedmap.New()
	}
	pnpm.Set("overrides", buildOrdered(entries, order))
	if present {
		m.doc.Set("pnpm", *pnpm)
		return
	}
	m.setNear("pnpm", *pnpm, after, before)
}

// Keys exposes the top-level key order for tests and diffing.
func (m *Manifest) Keys() []string {
	return m.doc.Keys()
}

// setNear inserts key at a position chosen by the sibling hints, rebuilding the
// association list when an interior position is required.
func (m *Manifest) setNear(key string, value any, after, before []string) {
	if _, ok := m.doc.Get(key); ok {
		m.doc.Set(key, value)
		return
	}
	keys := m.doc.Keys()
	pos := -1
	for _, hint := range after {
		if i := slices.Index(keys, hint); i >= 0 {
			pos = i + 1
			break
		}
	}
	if pos < 0 {
		for _, hint := range before {
			if i := slices.Index(keys, hint); i >= 0 {
				pos = i
				break
			}
		}
	}
	if pos < 0 || pos >= len(keys) {
		m.doc.Set(key, value)
		return
	}
	next := orderedmap.New()
	for i, k := range keys {
		if i == pos {
			next.Set(key, value)
		}
		v, _ := m.doc.Get(k)
		next.Set(k, v)
	}
	m.doc = next
}

func (m *Manifest) stringAt(key string) string {
	v, ok := m.doc.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// buildOrdered turns a plain map into an ordered object, preserving a previous
// key order and appending new keys sorted.
func buildOrdered(entries map[string]string, order []string) orderedmap.OrderedMap {
	out := orderedmap.New()
	seen := make(map[string]struct{}, len(order))
	for _, k := range order {
		if v, ok := entries[k]; ok {
			out.Set(k, v)
			seen[k] = struct{}{}
		}
	}
	rest := make([]string, 0, len(entries))
	for k := range entries {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	for _, k := range rest {
		out.Set(k, entries[k])
	}
	return *out
}

func objectAt(doc *orderedmap.OrderedMap, key string) (*orderedmap.OrderedMap, bool) {
	v, ok := doc.Get(key)
	if !ok {
		return nil, false
	}
	return asObject(v)
}

func asObjectAt(obj *orderedmap.OrderedMap, key string) (*orderedmap.OrderedMap, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}
	return asObject(v)
}

func asObject(v any) (*orderedmap.OrderedMap, bool) {
	switch o := v.(type) {
	case orderedmap.OrderedMap:
		return &o, true
	case *orderedmap.OrderedMap:
		return o, true
	default:
		return nil, false
	}
}

func stringMap(obj *orderedmap.OrderedMap) map[string]string {
	out := make(map[string]string, len(obj.Keys()))
	for _, k := range obj.Keys() {
		if v, ok := obj.Get(k); ok {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}

func stringSlice(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
