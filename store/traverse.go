package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/brunobiangulo/ragduel/dataset"
)

// Neighbor is one entity reached by traversal: the entity, the edge it was
// first reached through (zero-valued for the seed itself), and its hop
// distance from the seed.
type Neighbor struct {
	Entity   dataset.Entity
	Edge     Edge
	Distance int
}

// Neighbors performs a breadth-first traversal from seed up to maxHops,
// optionally restricted to the given relationship types.
//
// Guarantees: each entity is visited at most once even when the graph
// contains cycles (visited set keyed by lowercased entity name); Distance is
// the hop count from the seed; result order is deterministic (BFS layer by
// layer, edges in dataset load order within a layer). An unknown seed yields
// an empty result and a nil error.
func Neighbors(ctx context.Context, g Graph, seed string, relTypes []string, maxHops int) ([]Neighbor, error) {
	if maxHops < 1 {
		return nil, fmt.Errorf("store: maxHops must be >= 1, got %d", maxHops)
	}

	seedEntity, ok, err := g.Entity(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("resolving seed %q: %w", seed, err)
	}
	if !ok {
		return nil, nil
	}

	visited := map[string]bool{strings.ToLower(seedEntity.Name): true}
	result := []Neighbor{{Entity: seedEntity, Distance: 0}}

	frontier := []string{seedEntity.Name}
	for hop := 1; hop <= maxHops && len(frontier) > 0; hop++ {
		edges, err := g.Edges(ctx, frontier, relTypes)
		if err != nil {
			return nil, fmt.Errorf("expanding hop %d: %w", hop, err)
		}

		var next []string
		for _, e := range edges {
			// An edge touching the frontier can lead out through either
			// endpoint; follow whichever side is unvisited. Direction is
			// presentation only, traversal is symmetric.
			for _, candidate := range []string{e.To, e.From} {
				key := strings.ToLower(candidate)
				if visited[key] {
					continue
				}
				visited[key] = true

				ent, ok, err := g.Entity(ctx, candidate)
				if err != nil {
					return nil, fmt.Errorf("resolving %q at hop %d: %w", candidate, hop, err)
				}
				if !ok {
					continue // load-time validation makes this unreachable
				}
				result = append(result, Neighbor{Entity: ent, Edge: e, Distance: hop})
				next = append(next, ent.Name)
			}
		}
		frontier = next
	}

	return result, nil
}
