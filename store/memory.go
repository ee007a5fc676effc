package store

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/brunobiangulo/ragduel/dataset"
)

// Memory is the in-memory Graph backend. It is the default for tests and for
// demo runs with no database configured, and also serves the fact index by
// brute-force cosine similarity.
type Memory struct {
	entities  []dataset.Entity
	byName    map[string]dataset.Entity
	edges     []Edge
	factIndex [][]float32
}

var (
	_ Graph     = (*Memory)(nil)
	_ FactIndex = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{byName: make(map[string]dataset.Entity)}
}

func (m *Memory) Load(ctx context.Context, d *dataset.Dataset) error {
	m.entities = append([]dataset.Entity(nil), d.Entities...)
	m.byName = make(map[string]dataset.Entity, len(d.Entities))
	for _, e := range d.Entities {
		m.byName[strings.ToLower(e.Name)] = e
	}
	m.edges = make([]Edge, len(d.Relationships))
	for i, r := range d.Relationships {
		m.edges[i] = Edge{From: r.From, To: r.To, Type: r.Type, Directed: r.Directed}
	}
	return nil
}

func (m *Memory) Entity(ctx context.Context, name string) (dataset.Entity, bool, error) {
	e, ok := m.byName[strings.ToLower(name)]
	return e, ok, nil
}

func (m *Memory) EntityNames(ctx context.Context) ([]string, error) {
	names := make([]string, len(m.entities))
	for i, e := range m.entities {
		names[i] = e.Name
	}
	return names, nil
}

func (m *Memory) Edges(ctx context.Context, names []string, relTypes []string) ([]Edge, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = true
	}
	var out []Edge
	for _, e := range m.edges {
		if !want[strings.ToLower(e.From)] && !want[strings.ToLower(e.To)] {
			continue
		}
		if !matchesType(e.Type, relTypes) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// IndexFacts keeps the embeddings in memory, one per corpus ordinal.
func (m *Memory) IndexFacts(ctx context.Context, embeddings [][]float32) error {
	m.factIndex = embeddings
	return nil
}

// SearchFacts brute-forces cosine similarity over the indexed facts.
func (m *Memory) SearchFacts(ctx context.Context, query []float32, k int) ([]FactMatch, error) {
	if len(m.factIndex) == 0 || len(query) == 0 {
		return nil, nil
	}
	matches := make([]FactMatch, 0, len(m.factIndex))
	for i, emb := range m.factIndex {
		matches = append(matches, FactMatch{Ordinal: i, Score: cosine(query, emb)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
