//go:build cgo

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brunobiangulo/ragduel/dataset"
)

func openSQLiteTest(t *testing.T) Graph {
	t.Helper()
	g, err := Open(context.Background(), Config{
		Backend:      "sqlite",
		Path:         filepath.Join(t.TempDir(), "test.db"),
		EmbeddingDim: 3,
	})
	if err != nil {
		t.Fatalf("Open(sqlite) error: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	if err := g.Load(context.Background(), dataset.Builtin()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return g
}

func TestSQLiteEntityRoundTrip(t *testing.T) {
	g := openSQLiteTest(t)
	ctx := context.Background()

	e, ok, err := g.Entity(ctx, "superman")
	if err != nil || !ok {
		t.Fatalf("Entity() = ok=%v err=%v, want found", ok, err)
	}
	if e.Name != "Superman" || e.Type != "Hero" {
		t.Errorf("entity = %q (%s), want Superman (Hero)", e.Name, e.Type)
	}
	// Attribute order must survive the JSON round trip.
	wantKeys := []string{"real_name", "powers", "origin", "team"}
	if len(e.Attrs) != len(wantKeys) {
		t.Fatalf("len(Attrs) = %d, want %d", len(e.Attrs), len(wantKeys))
	}
	for i, key := range wantKeys {
		if e.Attrs[i].Key != key {
			t.Errorf("Attrs[%d].Key = %q, want %q", i, e.Attrs[i].Key, key)
		}
	}
	if !e.Attrs[1].IsList() {
		t.Error("powers should round-trip as a list")
	}

	_, ok, err = g.Entity(ctx, "Aquaman")
	if err != nil {
		t.Fatalf("Entity() error: %v", err)
	}
	if ok {
		t.Error("Entity(Aquaman) found, want missing")
	}
}

func TestSQLiteEntityNamesOrder(t *testing.T) {
	g := openSQLiteTest(t)

	names, err := g.EntityNames(context.Background())
	if err != nil {
		t.Fatalf("EntityNames() error: %v", err)
	}
	want := dataset.Builtin().EntityNames()
	if len(names) != len(want) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSQLiteEdges(t *testing.T) {
	g := openSQLiteTest(t)
	ctx := context.Background()

	edges, err := g.Edges(ctx, []string{"Superman"}, nil)
	if err != nil {
		t.Fatalf("Edges() error: %v", err)
	}
	if len(edges) != 7 {
		t.Errorf("len(edges) = %d, want 7", len(edges))
	}

	members, err := g.Edges(ctx, []string{"Justice League"}, []string{"MEMBER_OF"})
	if err != nil {
		t.Fatalf("Edges() error: %v", err)
	}
	want := []string{"Superman", "Batman", "Wonder Woman", "Flash"}
	if len(members) != len(want) {
		t.Fatalf("len(member edges) = %d, want %d", len(members), len(want))
	}
	for i, e := range members {
		if e.From != want[i] {
			t.Errorf("members[%d].From = %q, want %q", i, e.From, want[i])
		}
		if !e.Directed {
			t.Errorf("members[%d] should be directed", i)
		}
	}
}

func TestSQLiteTraversal(t *testing.T) {
	g := openSQLiteTest(t)

	neighbors, err := Neighbors(context.Background(), g, "Flash", nil, 1)
	if err != nil {
		t.Fatalf("Neighbors() error: %v", err)
	}
	got := distances(neighbors)
	if got["Flash"] != 0 {
		t.Errorf("Flash distance = %d, want 0", got["Flash"])
	}
	for _, name := range []string{"Superman", "Batman", "Wonder Woman", "Justice League"} {
		if d, ok := got[name]; !ok || d != 1 {
			t.Errorf("distance[%s] = %d (ok=%v), want 1", name, d, ok)
		}
	}
}

func TestSQLiteFactIndex(t *testing.T) {
	g := openSQLiteTest(t)
	index, ok := g.(FactIndex)
	if !ok {
		t.Fatal("sqlite backend should implement FactIndex")
	}
	ctx := context.Background()

	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	if err := index.IndexFacts(ctx, embeddings); err != nil {
		t.Fatalf("IndexFacts() error: %v", err)
	}

	matches, err := index.SearchFacts(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchFacts() error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Ordinal != 0 {
		t.Errorf("best match ordinal = %d, want 0", matches[0].Ordinal)
	}
}

func TestSQLiteReload(t *testing.T) {
	g := openSQLiteTest(t)
	ctx := context.Background()

	// Loading again must replace, not duplicate.
	if err := g.Load(ctx, dataset.Builtin()); err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	names, err := g.EntityNames(ctx)
	if err != nil {
		t.Fatalf("EntityNames() error: %v", err)
	}
	if len(names) != 5 {
		t.Errorf("len(names) after reload = %d, want 5", len(names))
	}
}
