package schema

// Dependencies is the answer to a multi-type dependency query: SDL for the
// types only reachable from each input type, plus one block for the types
// reachable from two or more of them.
type Dependencies struct {
	// PerType maps each requested type to the SDL of its specific
	// dependencies (shared types removed). Empty string when everything
	// the type reaches is shared.
	PerType map[string]string

	// Shared is the SDL for types reachable from two or more of the
	// requested types. Empty for single-type queries by construction.
	Shared string
}

// splitShared partitions the union of the reachable sets by multiplicity:
// anything present in two or more sets is shared. There is no distance
// tie-break; membership in >=2 sets is sufficient and total.
func splitShared(reachableByType map[string]map[string]struct{}) map[string]struct{} {
	counts := make(map[string]int)
	for _, reachable := range reachableByType {
		for name := range reachable {
			counts[name]++
		}
	}

	shared := make(map[string]struct{})
	for name, count := range counts {
		if count > 1 {
			shared[name] = struct{}{}
		}
	}
	return shared
}

// TypeDependencies computes, for each requested type, the SDL of the schema
// it transitively depends on, separated into type-specific and shared
// blocks. Unknown names are rejected up front with suggestions; this is the
// strict counterpart to the silent tolerance used for category seeds.
func (s *Snapshot) TypeDependencies(typeNames []string) (*Dependencies, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	available := s.graph.TypeNames()
	for _, name := range typeNames {
		if !s.graph.HasType(name) {
			return nil, unknownTypeError(name, available)
		}
	}

	// Exhaustive reachability per input type.
	reachableByType := make(map[string]map[string]struct{}, len(typeNames))
	for _, name := range typeNames {
		reachableByType[name] = s.graph.Reachable(name)
	}

	shared := splitShared(reachableByType)

	deps := &Dependencies{PerType: make(map[string]string, len(typeNames))}
	for _, name := range typeNames {
		specific := make(map[string]struct{})
		for t := range reachableByType[name] {
			if _, isShared := shared[t]; !isShared {
				specific[t] = struct{}{}
			}
		}
		deps.PerType[name] = RenderDefinitions(specific, s.schema)
	}

	if len(shared) > 0 {
		deps.Shared = RenderDefinitions(shared, s.schema)
	}

	return deps, nil
}
