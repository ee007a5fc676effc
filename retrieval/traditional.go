package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/brunobiangulo/ragduel/llm"
	"github.com/brunobiangulo/ragduel/store"
)

// Traditional is the flat keyword retriever. The fact corpus is tokenized
// once at construction and never mutated; Retrieve is a pure ranking over it.
type Traditional struct {
	facts  []string
	tokens []map[string]bool

	// Hybrid mode, enabled only when an embedder and a fact index are
	// available. Overlap scoring stays the default matching policy; the
	// vector ranking is fused in by weighted RRF.
	embedder llm.Provider
	index    store.FactIndex
}

// NewTraditional builds the retriever over the given fact corpus.
func NewTraditional(facts []string) *Traditional {
	t := &Traditional{
		facts:  facts,
		tokens: make([]map[string]bool, len(facts)),
	}
	for i, f := range facts {
		t.tokens[i] = tokenSet(f)
	}
	return t
}

// EnableHybrid embeds the corpus and stores it in the fact index. From then
// on Retrieve fuses vector ranks into the overlap ranking.
func (t *Traditional) EnableHybrid(ctx context.Context, embedder llm.Provider, index store.FactIndex) error {
	if len(t.facts) == 0 {
		return nil
	}
	embeddings, err := embedder.Embed(ctx, t.facts)
	if err != nil {
		return err
	}
	if err := index.IndexFacts(ctx, embeddings); err != nil {
		return err
	}
	t.embedder = embedder
	t.index = index
	slog.Info("retrieval: hybrid fact index ready", "facts", len(t.facts))
	return nil
}

// Retrieve scores every fact by token overlap with the query and returns the
// top k with score > 0, descending score, corpus order on ties. Zero matches
// is a legitimate outcome (StatusNoMatch), not an error. With identical
// query and corpus the ordering is always identical.
func (t *Traditional) Retrieve(ctx context.Context, query string, k int) (*Result, error) {
	res := &Result{Strategy: StrategyTraditional, Status: StatusNoMatch}

	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return res, nil
	}

	var ranked []rankedFact
	for i, factTokens := range t.tokens {
		overlap := 0
		for tok := range queryTokens {
			if factTokens[tok] {
				overlap++
			}
		}
		if overlap > 0 {
			ranked = append(ranked, rankedFact{ordinal: i, score: float64(overlap)})
		}
	}
	// Stable keeps corpus order on equal scores.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if t.index != nil {
		ranked = t.fuseVector(ctx, query, ranked, k)
	}

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	for _, s := range ranked {
		res.Items = append(res.Items, Item{Text: t.facts[s.ordinal], Score: s.score})
	}
	if len(res.Items) > 0 {
		res.Status = StatusOK
	}
	return res, nil
}

// Facts returns the corpus in load order.
func (t *Traditional) Facts() []string { return t.facts }

// tokenSet normalizes text to a comparable token set: case-folded, with
// punctuation stripped so "Superman's" and "superman" compare equal.
func tokenSet(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		tokens[strings.ToLower(field)] = true
	}
	return tokens
}
