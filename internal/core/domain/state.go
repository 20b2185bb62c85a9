package domain

import (
	"slices"
	"sync"
)

// ResolutionState is the aggregate threaded through a whole resolution run. It
// is created once at the root call, shared by reference with every workspace
// member pass, and only ever unioned: entries are added, never removed, so the
// additive mutations are safe under the engine's bounded-concurrency fan-out.
type ResolutionState struct {
	mu                  sync.Mutex
	added               map[string]struct{}
	updated             map[string]struct{}
	addedInWorkspaces   map[string]struct{}
	updatedInWorkspaces map[string]struct{}
	warnedPnpmFallback  bool
}

// NewResolutionState creates an empty state.
func NewResolutionState() *ResolutionState {
	return &ResolutionState{
		added:               make(map[string]struct{}),
		updated:             make(map[string]struct{}),
		addedInWorkspaces:   make(map[string]struct{}),
		updatedInWorkspaces: make(map[string]struct{}),
	}
}

// MarkAdded records a replacement whose override was newly created. Within one
// run a name is either added or updated, never both; whichever mark lands
// first wins.
func (s *ResolutionState) MarkAdded(name string, inWorkspace bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.updated[name]; !ok {
		s.added[name] = struct{}{}
	}
	if inWorkspace {
		s.addedInWorkspaces[name] = struct{}{}
	}
}

// MarkUpdated records a replacement whose existing override spec changed.
func (s *ResolutionState) MarkUpdated(name string, inWorkspace bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.added[name]; !ok {
		s.updated[name] = struct{}{}
	}
	if inWorkspace {
		s.updatedInWorkspaces[name] = struct{}{}
	}
}

// Added returns the names of newly created overrides, sorted.
func (s *ResolutionState) Added() []string {
	return s.sorted(&s.added)
}

// Updated returns the names of modified overrides, sorted.
func (s *ResolutionState) Updated() []string {
	return s.sorted(&s.updated)
}

// AddedInWorkspaces returns the subset of added names that came from workspace
// members rather than the project root, sorted.
func (s *ResolutionState) AddedInWorkspaces() []string {
	return s.sorted(&s.addedInWorkspaces)
}

// UpdatedInWorkspaces returns the subset of updated names that came from
// workspace members, sorted.
func (s *ResolutionState) UpdatedInWorkspaces() []string {
	return s.sorted(&s.updatedInWorkspaces)
}

// Changed reports whether the run touched anything at all.
func (s *ResolutionState) Changed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.added) > 0 || len(s.updated) > 0
}

// WarnPnpmFallbackOnce flips the one-shot pnpm-workspace fallback flag and
// reports whether the caller should emit the warning. Only the first caller
// across the whole recursive run gets true.
func (s *ResolutionState) WarnPnpmFallbackOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warnedPnpmFallback {
		return false
	}
	s.warnedPnpmFallback = true
	return true
}

func (s *ResolutionState) sorted(set *map[string]struct{}) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(*set))
	for name := range *set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
