package resolve

// writeBack persists the run's mutated dependency groups and override maps
// into the ordered manifest document. Groups keep their original key order;
// override fields are replaced in place when present and inserted near a
// semantically adjacent sibling when new. Empty override maps are omitted or
// removed rather than written as empty objects.
func (r *run) writeBack() {
	for group, entries := range r.groups {
		r.manifest.SetDependencyGroup(group, entries)
	}
	for _, od := range r.override {
		after := r.prof.InsertAfter
		if od.Kind != r.prof.Kind {
			after = hintsForKind(od.Kind)
		}
		r.manifest.SetOverrides(od.Kind, od.Entries, after, r.prof.InsertBefore)
	}
}
