package schema

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestReachableWithDepth(t *testing.T) {
	g := buildTestGraph(t)

	testCases := []struct {
		name     string
		seeds    []string
		depth    Depth
		expected map[string]struct{}
	}{
		{
			name:     "depth zero returns seeds only",
			seeds:    []string{"Target"},
			depth:    0,
			expected: set("Target"),
		},
		{
			name:     "depth one returns direct references",
			seeds:    []string{"Target"},
			depth:    1,
			expected: set("Target", "Disease", "Pathway"),
		},
		{
			name:     "depth two includes transitive references",
			seeds:    []string{"Target"},
			depth:    2,
			expected: set("Target", "Disease", "Pathway", "Drug"),
		},
		{
			name:     "exhaustive reaches everything",
			seeds:    []string{"Target"},
			depth:    Exhaustive,
			expected: set("Target", "Disease", "Pathway", "Drug", "Mechanism"),
		},
		{
			name:     "multiple leaf seeds stay put",
			seeds:    []string{"Pathway", "Mechanism"},
			depth:    1,
			expected: set("Pathway", "Mechanism"),
		},
		{
			name:     "seed without outgoing edges is included at any depth",
			seeds:    []string{"Pagination"},
			depth:    Exhaustive,
			expected: set("Pagination"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.ReachableWithDepth(tc.seeds, tc.depth)
			if !equalSets(got, tc.expected) {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestReachableMonotonicGrowth(t *testing.T) {
	g := buildTestGraph(t)

	prev := g.ReachableWithDepth([]string{"Query"}, 0)
	for depth := 1; depth <= 6; depth++ {
		next := g.ReachableWithDepth([]string{"Query"}, Depth(depth))
		for name := range prev {
			if _, ok := next[name]; !ok {
				t.Fatalf("depth %d lost %s present at depth %d", depth, name, depth-1)
			}
		}
		prev = next
	}
}

func TestReachableFixpoint(t *testing.T) {
	g := buildTestGraph(t)

	exhaustive := g.Reachable("Query")

	// One extra level past exhaustion must change nothing.
	deeper := g.ReachableWithDepth([]string{"Query"}, Depth(len(exhaustive)+1))
	if !equalSets(exhaustive, deeper) {
		t.Errorf("exhaustive result is not a fixpoint: %v vs %v", exhaustive, deeper)
	}
}

func TestReachableHandlesMutualCycle(t *testing.T) {
	g := BuildTypeGraph(mustLoad(t, `
		type Query { a: A }
		type A { b: B }
		type B { a: A }
	`))

	got := g.Reachable("A")
	if !equalSets(got, set("A", "B")) {
		t.Errorf("cycle traversal got %v, want {A, B}", got)
	}
}

func TestReachableDoesNotMutateGraph(t *testing.T) {
	g := buildTestGraph(t)
	before := len(g.Adjacency["Target"])

	g.Reachable("Target")
	g.ReachableWithDepth([]string{"Target", "Disease"}, 3)

	if len(g.Adjacency["Target"]) != before {
		t.Error("traversal mutated the adjacency map")
	}
}

func TestDepthYAML(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Depth
		hasError bool
	}{
		{name: "integer", input: "2", expected: Depth(2)},
		{name: "zero", input: "0", expected: Depth(0)},
		{name: "exhaustive sentinel", input: `"exhaustive"`, expected: Exhaustive},
		{name: "negative rejected", input: "-1", hasError: true},
		{name: "other string rejected", input: `"deep"`, hasError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Depth
			err := yaml.Unmarshal([]byte(tc.input), &d)
			if tc.hasError {
				if err == nil {
					t.Fatalf("expected error, got depth %s", d)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d != tc.expected {
				t.Errorf("got %s, want %s", d, tc.expected)
			}
		})
	}
}
