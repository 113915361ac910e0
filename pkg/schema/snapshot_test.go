package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
)

type stubFetcher struct {
	schema *ast.Schema
	err    error
}

func (f stubFetcher) FetchSchema(ctx context.Context) (*ast.Schema, error) {
	return f.schema, f.err
}

func newTestSnapshot(t *testing.T, categories ...Category) *Snapshot {
	t.Helper()
	snap, err := Prefetch(context.Background(), stubFetcher{schema: loadTestSchema(t)}, categories)
	if err != nil {
		t.Fatalf("prefetch: %v", err)
	}
	return snap
}

func TestPrefetchFailurePropagates(t *testing.T) {
	fetchErr := errors.New("upstream down")
	_, err := Prefetch(context.Background(), stubFetcher{err: fetchErr}, nil)
	if !errors.Is(err, fetchErr) {
		t.Errorf("got %v, want wrapped fetch error", err)
	}
}

func TestUninitializedSnapshotFailsFast(t *testing.T) {
	var snap *Snapshot

	if _, err := snap.SDL(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SDL: got %v, want ErrNotInitialized", err)
	}
	if _, err := snap.Graph(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Graph: got %v, want ErrNotInitialized", err)
	}
	if _, err := snap.Subschemas(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Subschemas: got %v, want ErrNotInitialized", err)
	}
	if _, err := snap.Subschema("target"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Subschema: got %v, want ErrNotInitialized", err)
	}
	if _, err := snap.TypeDependencies([]string{"Target"}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("TypeDependencies: got %v, want ErrNotInitialized", err)
	}
}

func TestSnapshotSDLContainsAllTypes(t *testing.T) {
	snap := newTestSnapshot(t)

	sdl, err := snap.SDL()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"type Target", "type Disease", "enum DiseaseType", "union SearchResult"} {
		if !strings.Contains(sdl, want) {
			t.Errorf("full SDL missing %q", want)
		}
	}
}

func TestSubschemaUnknownCategoryListsValidNames(t *testing.T) {
	snap := newTestSnapshot(t,
		Category{Name: "target-info", Description: "targets", Types: []string{"Target"}, Depth: 1},
		Category{Name: "disease-info", Description: "diseases", Types: []string{"Disease"}, Depth: 1},
	)

	_, err := snap.Subschema("nope")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("got %v, want ErrUnknownCategory", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "target-info") || !strings.Contains(msg, "disease-info") {
		t.Errorf("error should list every valid category, got %q", msg)
	}
}

func TestSubschemaLookup(t *testing.T) {
	snap := newTestSnapshot(t,
		Category{Name: "target-info", Description: "targets", Types: []string{"Target", "Pathway"}, Depth: 1},
	)

	sub, err := snap.Subschema("target-info")
	if err != nil {
		t.Fatal(err)
	}
	if !equalSets(sub.Types, set("Target", "Pathway", "Disease")) {
		t.Errorf("resolved types = %v", sub.Types)
	}
	if !strings.Contains(sub.SDL, "type Pathway") {
		t.Errorf("subschema SDL missing Pathway:\n%s", sub.SDL)
	}
}

func TestCategoryNamesSorted(t *testing.T) {
	snap := newTestSnapshot(t,
		Category{Name: "zeta", Types: []string{"Target"}, Depth: 0},
		Category{Name: "alpha", Types: []string{"Disease"}, Depth: 0},
	)

	names := snap.CategoryNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("got %v, want [alpha zeta]", names)
	}
}
