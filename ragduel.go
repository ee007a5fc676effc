// Package ragduel compares two retrieval strategies over a small
// entity-relationship knowledge base: a flat keyword retriever over derived
// text facts, and a graph retriever that walks the relationship structure.
// Both feed the same generation backend chain, so an operator can judge the
// strategies side by side for one query.
package ragduel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brunobiangulo/ragduel/dataset"
	"github.com/brunobiangulo/ragduel/llm"
	"github.com/brunobiangulo/ragduel/metrics"
	"github.com/brunobiangulo/ragduel/retrieval"
	"github.com/brunobiangulo/ragduel/store"
)

// Engine wires the graph store, both retrievers, and the backend router.
// The reference data is loaded once at construction and read-only afterwards,
// so Compare is safe for concurrent use.
type Engine struct {
	cfg         Config
	graph       store.Graph
	traditional *retrieval.Traditional
	graphRAG    *retrieval.GraphRAG
	router      *llm.Router

	mu     sync.Mutex
	closed bool
}

// Branch is one side of a comparison: what a strategy retrieved and what the
// generation chain made of it.
type Branch struct {
	Retrieval *retrieval.Result `json:"retrieval"`
	Answer    string            `json:"answer"`
	Backend   string            `json:"backend"`
	Degraded  bool              `json:"degraded"`
}

// Comparison is the side-by-side outcome for one query.
type Comparison struct {
	ID          string        `json:"id"`
	Query       string        `json:"query"`
	Traditional Branch        `json:"traditional"`
	Graph       Branch        `json:"graph"`
	Elapsed     time.Duration `json:"elapsed"`
}

// New builds an engine: opens the configured store, loads the dataset,
// derives the fact corpus, and assembles the backend chain.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	ds, err := loadDataset(cfg)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	g, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := g.Load(ctx, ds); err != nil {
		g.Close()
		return nil, fmt.Errorf("loading graph store: %w", err)
	}

	facts := retrieval.DeriveFacts(ds)
	if len(cfg.FactSheets) > 0 {
		extra, err := dataset.LoadFactSheets(cfg.FactSheets...)
		if err != nil {
			g.Close()
			return nil, err
		}
		facts = append(facts, extra...)
	}
	traditional := retrieval.NewTraditional(facts)

	if cfg.Embedding != nil {
		if err := enableHybrid(ctx, cfg, traditional, g); err != nil {
			slog.Warn("engine: hybrid retrieval unavailable, using overlap only", "error", err)
		}
	}

	graphRAG, err := retrieval.NewGraphRAG(ctx, g)
	if err != nil {
		g.Close()
		return nil, err
	}

	router, err := llm.NewRouter(cfg.Backends)
	if err != nil {
		g.Close()
		return nil, err
	}

	slog.Info("engine: ready",
		"entities", len(ds.Entities),
		"relationships", len(ds.Relationships),
		"facts", len(facts),
		"store", cfg.Store.Backend,
		"backends", router.Backends())
	return &Engine{
		cfg:         cfg,
		graph:       g,
		traditional: traditional,
		graphRAG:    graphRAG,
		router:      router,
	}, nil
}

func loadDataset(cfg Config) (*dataset.Dataset, error) {
	if cfg.Dataset == "" {
		return dataset.Builtin(), nil
	}
	return dataset.Load(cfg.Dataset)
}

func enableHybrid(ctx context.Context, cfg Config, t *retrieval.Traditional, g store.Graph) error {
	index, ok := g.(store.FactIndex)
	if !ok {
		return store.ErrFactIndexUnsupported
	}
	embedder, err := llm.NewProvider(*cfg.Embedding)
	if err != nil {
		return err
	}
	return t.EnableHybrid(ctx, embedder, index)
}

// Compare runs both retrieval strategies for the query and routes each
// result through the generation chain with a strategy-specific prompt. An
// empty retrieval on one side never fails the comparison; that side still
// gets an answer through the deterministic fallback.
func (e *Engine) Compare(ctx context.Context, query string) (*Comparison, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrEngineClosed
	}
	e.mu.Unlock()

	start := time.Now()
	cmp := &Comparison{ID: uuid.NewString(), Query: query}

	// The strategies share no mutable state, so running them in parallel is
	// purely a latency optimization.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		cmp.Traditional = e.runTraditional(ctx, query)
	}()
	go func() {
		defer wg.Done()
		cmp.Graph = e.runGraph(ctx, query)
	}()
	wg.Wait()

	cmp.Elapsed = time.Since(start)
	metrics.Default().IncComparison(cmp.Traditional.Degraded || cmp.Graph.Degraded)
	slog.Info("engine: comparison done",
		"id", cmp.ID,
		"traditional_status", cmp.Traditional.Retrieval.Status,
		"graph_status", cmp.Graph.Retrieval.Status,
		"elapsed", cmp.Elapsed.Round(time.Millisecond))
	return cmp, nil
}

// Search runs a single strategy without generation, for the CLI and the
// keyword/graph search tools.
func (e *Engine) Search(ctx context.Context, strategy, query string) (*retrieval.Result, error) {
	switch strategy {
	case retrieval.StrategyTraditional:
		return e.retrieveTraditional(ctx, query)
	case retrieval.StrategyGraph:
		return e.retrieveGraph(ctx, query)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, strategy)
	}
}

// Entity looks up one entity by name, case-insensitively.
func (e *Engine) Entity(ctx context.Context, name string) (dataset.Entity, bool, error) {
	return e.graph.Entity(ctx, name)
}

// EntityNames lists all entity names in load order.
func (e *Engine) EntityNames(ctx context.Context) ([]string, error) {
	return e.graph.EntityNames(ctx)
}

func (e *Engine) retrieveTraditional(ctx context.Context, query string) (*retrieval.Result, error) {
	start := time.Now()
	res, err := e.traditional.Retrieve(ctx, query, e.cfg.TopK)
	metrics.Default().ObserveRetrievalSeconds(retrieval.StrategyTraditional, time.Since(start).Seconds())
	return res, err
}

func (e *Engine) retrieveGraph(ctx context.Context, query string) (*retrieval.Result, error) {
	start := time.Now()
	res, err := e.graphRAG.Retrieve(ctx, query, e.cfg.MaxHops, e.cfg.MaxEntities)
	metrics.Default().ObserveRetrievalSeconds(retrieval.StrategyGraph, time.Since(start).Seconds())
	return res, err
}

func (e *Engine) runTraditional(ctx context.Context, query string) Branch {
	res, err := e.retrieveTraditional(ctx, query)
	if err != nil {
		res = &retrieval.Result{
			Strategy: retrieval.StrategyTraditional,
			Status:   retrieval.StatusStoreError,
			Detail:   err.Error(),
		}
	}
	contextBlock := res.Context()
	return e.generate(ctx, res, llm.GenerateRequest{
		System:  systemPrompt,
		Prompt:  traditionalPrompt(contextBlock, query),
		Context: contextBlock,
	})
}

func (e *Engine) runGraph(ctx context.Context, query string) Branch {
	res, err := e.retrieveGraph(ctx, query)
	if err != nil {
		res = &retrieval.Result{
			Strategy: retrieval.StrategyGraph,
			Status:   retrieval.StatusStoreError,
			Detail:   err.Error(),
		}
	}
	contextBlock := res.Context()
	return e.generate(ctx, res, llm.GenerateRequest{
		System:  systemPrompt,
		Prompt:  graphPrompt(contextBlock, query),
		Context: contextBlock,
	})
}

func (e *Engine) generate(ctx context.Context, res *retrieval.Result, req llm.GenerateRequest) Branch {
	gen := e.router.Generate(ctx, req)
	return Branch{
		Retrieval: res,
		Answer:    gen.Answer,
		Backend:   gen.Backend,
		Degraded:  gen.Degraded,
	}
}

// Close releases the store connection. Further Compare calls return
// ErrEngineClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.graph.Close()
}
