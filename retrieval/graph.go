package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/brunobiangulo/ragduel/dataset"
	"github.com/brunobiangulo/ragduel/store"
)

// GraphRAG retrieves context by finding entities mentioned in the query and
// walking the reference graph outward from them, bounded by hop count and a
// context-size cap.
type GraphRAG struct {
	graph store.Graph

	// Known entity names sorted longest-first for seed detection, and their
	// dataset load positions for deterministic truncation tie-breaks.
	byLength []string
	ordinal  map[string]int
}

// NewGraphRAG snapshots the store's entity name list. The reference data is
// immutable after load, so the snapshot never goes stale.
func NewGraphRAG(ctx context.Context, g store.Graph) (*GraphRAG, error) {
	names, err := g.EntityNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entity names: %w", err)
	}

	r := &GraphRAG{
		graph:   g,
		ordinal: make(map[string]int, len(names)),
	}
	for i, n := range names {
		r.ordinal[strings.ToLower(n)] = i
	}
	r.byLength = append(r.byLength, names...)
	sort.SliceStable(r.byLength, func(i, j int) bool {
		return len(r.byLength[i]) > len(r.byLength[j])
	})
	return r, nil
}

// Seeds scans the query for known entity names, case-insensitively and
// longest-match-first so "Wonder Woman" wins over a hypothetical "Woman".
// Matched regions are masked to stop shorter names matching inside them.
func (r *GraphRAG) Seeds(query string) []string {
	masked := []rune(strings.ToLower(query))
	var seeds []string
	for _, name := range r.byLength {
		needle := []rune(strings.ToLower(name))
		if len(needle) == 0 {
			continue
		}
		// Every occurrence is masked, not just the first, so a shorter name
		// cannot match inside a later repeat of a longer one. The seed itself
		// is recorded once.
		seeded := false
		for i := 0; i+len(needle) <= len(masked); i++ {
			if string(masked[i:i+len(needle)]) != string(needle) {
				continue
			}
			if !boundaryBefore(masked, i) || !boundaryAfter(masked, i+len(needle)) {
				continue
			}
			if !seeded {
				seeds = append(seeds, name)
				seeded = true
			}
			for j := i; j < i+len(needle); j++ {
				masked[j] = 0
			}
			i += len(needle) - 1
		}
	}
	return seeds
}

func boundaryBefore(runes []rune, i int) bool {
	return i == 0 || !unicode.IsLetter(runes[i-1]) && !unicode.IsNumber(runes[i-1])
}

func boundaryAfter(runes []rune, i int) bool {
	return i == len(runes) || !unicode.IsLetter(runes[i]) && !unicode.IsNumber(runes[i])
}

// Retrieve runs seed detection, bounded traversal, truncation, and
// serialization. Store failure is reported as StatusStoreError on the result
// (degraded mode), never as a returned error.
func (r *GraphRAG) Retrieve(ctx context.Context, query string, maxHops, maxEntities int) (*Result, error) {
	res := &Result{Strategy: StrategyGraph, Status: StatusNoSeed}

	seeds := r.Seeds(query)
	if len(seeds) == 0 {
		return res, nil
	}

	// Merge traversals across seeds, deduplicating by entity name with the
	// closest distance winning.
	merged := make(map[string]store.Neighbor)
	for _, seed := range seeds {
		neighbors, err := store.Neighbors(ctx, r.graph, seed, nil, maxHops)
		if err != nil {
			slog.Warn("retrieval: graph traversal failed", "seed", seed, "error", err)
			res.Status = StatusStoreError
			res.Detail = err.Error()
			res.Items = nil
			return res, nil
		}
		for _, n := range neighbors {
			key := strings.ToLower(n.Entity.Name)
			if prev, ok := merged[key]; !ok || n.Distance < prev.Distance {
				merged[key] = n
			}
		}
	}

	retained := make([]store.Neighbor, 0, len(merged))
	for _, n := range merged {
		retained = append(retained, n)
	}
	// Closest first; dataset load order breaks distance ties, so truncation
	// is deterministic across runs.
	sort.SliceStable(retained, func(i, j int) bool {
		if retained[i].Distance != retained[j].Distance {
			return retained[i].Distance < retained[j].Distance
		}
		return r.ordinal[strings.ToLower(retained[i].Entity.Name)] <
			r.ordinal[strings.ToLower(retained[j].Entity.Name)]
	})
	if maxEntities > 0 && len(retained) > maxEntities {
		retained = retained[:maxEntities]
	}

	res.Items = r.serialize(ctx, retained)
	if len(res.Items) > 0 {
		res.Status = StatusOK
	}
	return res, nil
}

// serialize renders retained entities (attribute lines) and the
// relationships connecting them ("A -[TYPE]-> B" lines). An isolated seed
// still gets its attribute line, so disconnected entities return something.
func (r *GraphRAG) serialize(ctx context.Context, retained []store.Neighbor) []Item {
	var items []Item

	distance := make(map[string]int, len(retained))
	names := make([]string, len(retained))
	for i, n := range retained {
		names[i] = n.Entity.Name
		distance[strings.ToLower(n.Entity.Name)] = n.Distance
		items = append(items, Item{
			Text:  entityLine(n.Entity),
			Score: hopScore(n.Distance),
		})
	}

	edges, err := r.graph.Edges(ctx, names, nil)
	if err != nil {
		// Entities were already serialized; missing relationship lines are a
		// degradation, not a reason to drop the context.
		slog.Warn("retrieval: listing connecting relationships failed", "error", err)
		return items
	}
	for _, e := range edges {
		fromDist, fromOK := distance[strings.ToLower(e.From)]
		toDist, toOK := distance[strings.ToLower(e.To)]
		if !fromOK || !toOK {
			continue // endpoint truncated away
		}
		arrow := "-"
		if e.Directed {
			arrow = "->"
		}
		items = append(items, Item{
			Text:  fmt.Sprintf("%s -[%s]%s %s", e.From, e.Type, arrow, e.To),
			Score: hopScore(maxInt(fromDist, toDist)),
		})
	}
	return items
}

func entityLine(e dataset.Entity) string {
	var b strings.Builder
	b.WriteString(e.Name)
	if e.Type != "" {
		fmt.Fprintf(&b, " (%s)", e.Type)
	}
	for i, a := range e.Attrs {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", strings.ReplaceAll(a.Key, "_", " "), a.String())
	}
	return b.String()
}

// hopScore maps traversal distance to a relevance score: 1 for the seed,
// shrinking with each hop.
func hopScore(distance int) float64 {
	return 1.0 / float64(1+distance)
}
