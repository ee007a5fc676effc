package retrieval

import (
	"context"
	"log/slog"
	"sort"

	"github.com/brunobiangulo/ragduel/store"
)

const rrfK = 60 // RRF constant (standard value from literature)

// Hybrid fusion weights. Overlap stays dominant: the vector ranking refines
// order among overlap hits and surfaces paraphrase matches, it does not
// replace the default matching policy.
const (
	weightOverlap = 1.0
	weightVector  = 0.7
)

// rankedFact is one corpus fact with its current ranking score.
type rankedFact struct {
	ordinal int
	score   float64
}

// fuseVector embeds the query, fetches the nearest facts from the index, and
// fuses both rankings with weighted RRF. Any failure in the vector path logs
// a warning and returns the overlap ranking unchanged, keeping the default
// path deterministic and network-free.
func (t *Traditional) fuseVector(ctx context.Context, query string, overlap []rankedFact, k int) []rankedFact {
	embeddings, err := t.embedder.Embed(ctx, []string{query})
	if err != nil || len(embeddings) == 0 {
		slog.Warn("retrieval: query embedding failed, using overlap only", "error", err)
		return overlap
	}
	matches, err := t.index.SearchFacts(ctx, embeddings[0], maxInt(k*2, 10))
	if err != nil {
		slog.Warn("retrieval: fact index search failed, using overlap only", "error", err)
		return overlap
	}
	return fuseRRF(overlap, matches)
}

// fuseRRF implements Reciprocal Rank Fusion over the overlap and vector
// rankings: score = sum(weight_i / (rrfK + rank_i)), rank 1-based. Facts
// present in only one ranking still contribute their single term.
func fuseRRF(overlap []rankedFact, vector []store.FactMatch) []rankedFact {
	fused := make(map[int]float64)
	order := make(map[int]int) // first-seen position, for deterministic ties

	for rank, f := range overlap {
		fused[f.ordinal] += weightOverlap / float64(rrfK+rank+1)
		if _, ok := order[f.ordinal]; !ok {
			order[f.ordinal] = len(order)
		}
	}
	for rank, m := range vector {
		fused[m.Ordinal] += weightVector / float64(rrfK+rank+1)
		if _, ok := order[m.Ordinal]; !ok {
			order[m.Ordinal] = len(order)
		}
	}

	out := make([]rankedFact, 0, len(fused))
	for ordinal, score := range fused {
		out = append(out, rankedFact{ordinal: ordinal, score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return order[out[i].ordinal] < order[out[j].ordinal]
	})
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
