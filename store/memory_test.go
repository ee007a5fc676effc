package store

import (
	"context"
	"errors"
	"testing"

	"github.com/brunobiangulo/ragduel/dataset"
)

func loadMemory(t *testing.T, d *dataset.Dataset) *Memory {
	t.Helper()
	m := NewMemory()
	if err := m.Load(context.Background(), d); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return m
}

func TestMemoryEntityLookup(t *testing.T) {
	m := loadMemory(t, dataset.Builtin())
	ctx := context.Background()

	e, ok, err := m.Entity(ctx, "SUPERMAN")
	if err != nil || !ok {
		t.Fatalf("Entity() = ok=%v err=%v, want found", ok, err)
	}
	if e.Name != "Superman" {
		t.Errorf("Name = %q, want Superman", e.Name)
	}

	_, ok, err = m.Entity(ctx, "Aquaman")
	if err != nil {
		t.Fatalf("Entity() error: %v", err)
	}
	if ok {
		t.Error("Entity(Aquaman) found, want missing")
	}
}

func TestMemoryEdgesFilter(t *testing.T) {
	m := loadMemory(t, dataset.Builtin())
	ctx := context.Background()

	edges, err := m.Edges(ctx, []string{"Superman"}, nil)
	if err != nil {
		t.Fatalf("Edges() error: %v", err)
	}
	// 3 TEAMMATE + 3 ALLY + 1 MEMBER_OF touch Superman.
	if len(edges) != 7 {
		t.Errorf("len(edges) = %d, want 7", len(edges))
	}

	allies, err := m.Edges(ctx, []string{"Superman"}, []string{"ally"})
	if err != nil {
		t.Fatalf("Edges() error: %v", err)
	}
	if len(allies) != 3 {
		t.Errorf("len(ally edges) = %d, want 3", len(allies))
	}
	for _, e := range allies {
		if e.Type != "ALLY" {
			t.Errorf("edge type = %q, want ALLY", e.Type)
		}
	}
}

func TestMemoryEdgesLoadOrder(t *testing.T) {
	m := loadMemory(t, dataset.Builtin())

	edges, err := m.Edges(context.Background(), []string{"Justice League"}, nil)
	if err != nil {
		t.Fatalf("Edges() error: %v", err)
	}
	want := []string{"Superman", "Batman", "Wonder Woman", "Flash"}
	if len(edges) != len(want) {
		t.Fatalf("len(edges) = %d, want %d", len(edges), len(want))
	}
	for i, e := range edges {
		if e.From != want[i] {
			t.Errorf("edges[%d].From = %q, want %q", i, e.From, want[i])
		}
	}
}

func TestMemoryFactIndex(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	if err := m.IndexFacts(ctx, embeddings); err != nil {
		t.Fatalf("IndexFacts() error: %v", err)
	}

	matches, err := m.SearchFacts(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchFacts() error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Ordinal != 0 {
		t.Errorf("best match ordinal = %d, want 0", matches[0].Ordinal)
	}
	if matches[1].Ordinal != 2 {
		t.Errorf("second match ordinal = %d, want 2", matches[1].Ordinal)
	}
	if matches[0].Score < matches[1].Score {
		t.Error("matches should be sorted best first")
	}
}

func TestOpenDefaultsToMemory(t *testing.T) {
	g, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer g.Close()
	if _, ok := g.(*Memory); !ok {
		t.Errorf("Open(Config{}) = %T, want *Memory", g)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "neo4j"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(neo4j) = %v, want ErrUnknownBackend", err)
	}
}
