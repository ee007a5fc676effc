// Package store provides read-only access to the entity/relationship
// reference graph behind a small Graph interface with interchangeable
// backends: in-memory (tests, zero-dep demo), SQLite, and Postgres.
//
// Breadth-first traversal lives here too (see Neighbors) so cycle-safety is
// an invariant of one shared routine rather than a property of each backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brunobiangulo/ragduel/dataset"
)

var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("store: unknown backend")

	// ErrUnavailable is returned when the underlying database cannot be
	// reached. Callers treat it as a degraded-mode signal, not a crash.
	ErrUnavailable = errors.New("store: graph store unavailable")

	// ErrFactIndexUnsupported is returned by backends without a vector fact
	// index. The flat retriever degrades to overlap-only scoring.
	ErrFactIndexUnsupported = errors.New("store: fact index not supported by this backend")
)

// Edge is a typed relationship between two entities, in dataset load order.
type Edge struct {
	From     string
	To       string
	Type     string
	Directed bool
}

// Graph is the knowledge store accessor. All methods are read-only after
// Load; implementations must return edges in dataset load order so traversal
// and truncation stay deterministic.
type Graph interface {
	// Load populates the store from validated reference data. Called once
	// at startup; the dataset is never mutated afterwards.
	Load(ctx context.Context, d *dataset.Dataset) error

	// Entity returns the named entity, case-insensitively. A missing name
	// is (zero, false, nil), not an error.
	Entity(ctx context.Context, name string) (dataset.Entity, bool, error)

	// EntityNames returns all entity names in load order.
	EntityNames(ctx context.Context) ([]string, error)

	// Edges returns every edge touching any of the given entity names,
	// optionally filtered to the given relationship types.
	Edges(ctx context.Context, names []string, relTypes []string) ([]Edge, error)

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// FactIndex is an optional Graph capability: a vector index over the flat
// fact corpus used by the hybrid retrieval mode. Backends that cannot serve
// it return ErrFactIndexUnsupported.
type FactIndex interface {
	// IndexFacts stores one embedding per corpus fact, keyed by the fact's
	// corpus ordinal. Replaces any previous index.
	IndexFacts(ctx context.Context, embeddings [][]float32) error

	// SearchFacts returns the k nearest fact ordinals for the query vector,
	// best first, with similarity scores in [0, 1].
	SearchFacts(ctx context.Context, query []float32, k int) ([]FactMatch, error)
}

// FactMatch is one vector search hit: the fact's corpus ordinal and score.
type FactMatch struct {
	Ordinal int
	Score   float64
}

// Config selects and parameterizes a store backend.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"` // memory, sqlite, postgres
	Path         string `json:"path" yaml:"path"`       // sqlite database file
	DSN          string `json:"dsn" yaml:"dsn"`         // postgres connection string
	EmbeddingDim int    `json:"embedding_dim" yaml:"embedding_dim"`
}

// Open creates the configured Graph backend. It does not Load data.
func Open(ctx context.Context, cfg Config) (Graph, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return openSQLite(ctx, cfg)
	case "postgres":
		return openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// matchesType reports whether an edge type passes the allow-list. An empty
// list allows every type.
func matchesType(edgeType string, relTypes []string) bool {
	if len(relTypes) == 0 {
		return true
	}
	for _, t := range relTypes {
		if strings.EqualFold(edgeType, t) {
			return true
		}
	}
	return false
}
