package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Depth bounds a reachability traversal in graph hops. A non-negative value
// limits the BFS to that many levels; Exhaustive removes the limit.
type Depth int

// Exhaustive is the unlimited-depth sentinel, spelled "exhaustive" in
// category configuration.
const Exhaustive Depth = -1

// IsExhaustive reports whether the depth places no limit on traversal.
func (d Depth) IsExhaustive() bool {
	return d < 0
}

func (d Depth) String() string {
	if d.IsExhaustive() {
		return "exhaustive"
	}
	return strconv.Itoa(int(d))
}

// UnmarshalYAML accepts either a non-negative integer or the string
// "exhaustive".
func (d *Depth) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		if n < 0 {
			return fmt.Errorf("depth must be non-negative, got %d", n)
		}
		*d = Depth(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("depth must be an integer or %q", "exhaustive")
	}
	if s != "exhaustive" {
		return fmt.Errorf("depth must be an integer or %q, got %q", "exhaustive", s)
	}
	*d = Exhaustive
	return nil
}

// Reachable returns every type transitively referenced from start, including
// start itself. The traversal is breadth-first; a node already visited is
// never re-expanded, so cycles (Target <-> Disease) terminate naturally with
// each member included exactly once.
func (g *TypeGraph) Reachable(start string) map[string]struct{} {
	return g.ReachableWithDepth([]string{start}, Exhaustive)
}

// ReachableWithDepth performs a level-by-level BFS from the seed set, bounded
// at maxDepth hops. Depth 0 returns exactly the seeds. The graph is never
// mutated; the result is a fresh set on every call.
func (g *TypeGraph) ReachableWithDepth(seeds []string, maxDepth Depth) map[string]struct{} {
	visited := make(map[string]struct{}, len(seeds))
	frontier := make(map[string]struct{}, len(seeds))
	for _, seed := range seeds {
		visited[seed] = struct{}{}
		frontier[seed] = struct{}{}
	}

	for depth := 0; len(frontier) > 0; depth++ {
		if !maxDepth.IsExhaustive() && depth >= int(maxDepth) {
			break
		}

		next := make(map[string]struct{})
		for name := range frontier {
			for referenced := range g.Adjacency[name] {
				if _, seen := visited[referenced]; !seen {
					visited[referenced] = struct{}{}
					next[referenced] = struct{}{}
				}
			}
		}
		frontier = next
	}

	return visited
}
