package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunobiangulo/ragduel/dataset"
)

// Postgres is the pgx-backed Graph backend for shared deployments. It does
// not serve the fact index; the flat retriever degrades to overlap-only.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Graph = (*Postgres)(nil)

func openPostgres(ctx context.Context, cfg Config) (Graph, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("store: postgres backend requires a DSN")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS entities (
			ord INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			entity_type TEXT NOT NULL,
			attrs JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS relationships (
			ord INTEGER PRIMARY KEY,
			from_name TEXT NOT NULL,
			to_name TEXT NOT NULL,
			rel_type TEXT NOT NULL,
			directed BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX IF NOT EXISTS idx_rel_from ON relationships(lower(from_name));
		CREATE INDEX IF NOT EXISTS idx_rel_to ON relationships(lower(to_name));
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, d *dataset.Dataset) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning load: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE entities, relationships"); err != nil {
		return fmt.Errorf("clearing tables: %w", err)
	}

	for i, e := range d.Entities {
		attrs := make([]attrJSON, len(e.Attrs))
		for j, a := range e.Attrs {
			attrs[j] = attrJSON(a)
		}
		data, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("encoding attrs for %q: %w", e.Name, err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO entities (ord, name, entity_type, attrs) VALUES ($1, $2, $3, $4)",
			i, e.Name, e.Type, data); err != nil {
			return fmt.Errorf("inserting entity %q: %w", e.Name, err)
		}
	}
	for i, r := range d.Relationships {
		if _, err := tx.Exec(ctx,
			"INSERT INTO relationships (ord, from_name, to_name, rel_type, directed) VALUES ($1, $2, $3, $4, $5)",
			i, r.From, r.To, r.Type, r.Directed); err != nil {
			return fmt.Errorf("inserting relationship %q-[%s]->%q: %w", r.From, r.Type, r.To, err)
		}
	}

	return tx.Commit(ctx)
}

// attrJSON mirrors dataset.Attribute as a JSON array element so attribute
// order survives the round trip (a JSON object would not preserve it).
type attrJSON struct {
	Key    string   `json:"key"`
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

func (p *Postgres) Entity(ctx context.Context, name string) (dataset.Entity, bool, error) {
	var e dataset.Entity
	var attrsData []byte
	err := p.pool.QueryRow(ctx,
		"SELECT name, entity_type, attrs FROM entities WHERE lower(name) = lower($1)",
		name).Scan(&e.Name, &e.Type, &attrsData)
	if err == pgx.ErrNoRows {
		return dataset.Entity{}, false, nil
	}
	if err != nil {
		return dataset.Entity{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var attrs []attrJSON
	if err := json.Unmarshal(attrsData, &attrs); err != nil {
		return dataset.Entity{}, false, fmt.Errorf("decoding attrs for %q: %w", e.Name, err)
	}
	e.Attrs = make([]dataset.Attribute, len(attrs))
	for i, a := range attrs {
		e.Attrs[i] = dataset.Attribute(a)
	}
	return e, true, nil
}

func (p *Postgres) EntityNames(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, "SELECT name FROM entities ORDER BY ord")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (p *Postgres) Edges(ctx context.Context, names []string, relTypes []string) ([]Edge, error) {
	if len(names) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT from_name, to_name, rel_type, directed
		FROM relationships
		WHERE lower(from_name) = ANY($1) OR lower(to_name) = ANY($1)
		ORDER BY ord
	`, lowered)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.From, &e.To, &e.Type, &e.Directed); err != nil {
			return nil, err
		}
		if matchesType(e.Type, relTypes) {
			edges = append(edges, e)
		}
	}
	return edges, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
