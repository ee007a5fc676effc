// Package retrieval implements the two competing retrieval strategies: a
// flat token-overlap search over derived facts (with an optional vector
// hybrid mode) and a bounded graph traversal from entities mentioned in the
// query. Both produce the same Result shape so the orchestrator can feed
// either to generation.
package retrieval

import "strings"

// Strategy names reported on results.
const (
	StrategyTraditional = "traditional"
	StrategyGraph       = "graph"
)

// Status distinguishes the legitimate empty outcomes from each other and
// from infrastructure failure.
type Status string

const (
	// StatusOK means at least one fact or fragment was retrieved.
	StatusOK Status = "ok"
	// StatusNoMatch means the query matched nothing. Expected, not an error.
	StatusNoMatch Status = "no_match"
	// StatusNoSeed means the query mentioned no known entity, so the graph
	// strategy had nowhere to start.
	StatusNoSeed Status = "no_seed"
	// StatusStoreError means the graph store could not be reached. Distinct
	// from StatusNoSeed so callers can explain degraded mode.
	StatusStoreError Status = "store_error"
)

// Item is one retrieved fact or subgraph fragment with its relevance score.
type Item struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Result is an ordered retrieval outcome, best item first.
type Result struct {
	Strategy string `json:"strategy"`
	Status   Status `json:"status"`
	Items    []Item `json:"items"`
	// Detail carries the store error message when Status is StatusStoreError.
	Detail string `json:"detail,omitempty"`
}

// Empty reports whether nothing was retrieved.
func (r *Result) Empty() bool { return len(r.Items) == 0 }

// Context renders the retrieved items as a context block for a generation
// prompt, one item per line.
func (r *Result) Context() string {
	if r.Empty() {
		return ""
	}
	lines := make([]string, len(r.Items))
	for i, item := range r.Items {
		lines[i] = item.Text
	}
	return strings.Join(lines, "\n")
}
