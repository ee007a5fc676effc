//go:build cgo

package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/brunobiangulo/ragduel/dataset"
)

func init() {
	sqlite_vec.Auto()
}

// SQLite is the file-backed Graph backend. Entities and relationships are
// (re)loaded from the dataset at startup; the vec_facts virtual table serves
// the optional fact index via sqlite-vec.
type SQLite struct {
	db           *sql.DB
	embeddingDim int
}

var (
	_ Graph     = (*SQLite)(nil)
	_ FactIndex = (*SQLite)(nil)
)

func openSQLite(ctx context.Context, cfg Config) (Graph, error) {
	path := cfg.Path
	if path == "" {
		path = "ragduel.db"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	dim := cfg.EmbeddingDim
	if dim == 0 {
		dim = 768
	}
	if _, err := db.ExecContext(ctx, sqliteSchema(dim)); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &SQLite{db: db, embeddingDim: dim}, nil
}

func sqliteSchema(embeddingDim int) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS entities (
    ord INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    entity_type TEXT NOT NULL,
    attrs JSON NOT NULL
);

CREATE TABLE IF NOT EXISTS relationships (
    ord INTEGER PRIMARY KEY,
    from_name TEXT NOT NULL COLLATE NOCASE,
    to_name TEXT NOT NULL COLLATE NOCASE,
    rel_type TEXT NOT NULL,
    directed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_rel_from ON relationships(from_name);
CREATE INDEX IF NOT EXISTS idx_rel_to ON relationships(to_name);

-- Vector index over the flat fact corpus via sqlite-vec
CREATE VIRTUAL TABLE IF NOT EXISTS vec_facts USING vec0(
    fact_ord INTEGER PRIMARY KEY,
    embedding float[%d]
);
`, embeddingDim)
}

// attrRow is the JSON shape attributes are stored as. A JSON object would
// lose declaration order, so attrs are an array.
type attrRow struct {
	Key    string   `json:"key"`
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

func (s *SQLite) Load(ctx context.Context, d *dataset.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM entities", "DELETE FROM relationships"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	for i, e := range d.Entities {
		attrs := make([]attrRow, len(e.Attrs))
		for j, a := range e.Attrs {
			attrs[j] = attrRow(a)
		}
		data, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("encoding attrs for %q: %w", e.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO entities (ord, name, entity_type, attrs) VALUES (?, ?, ?, ?)",
			i, e.Name, e.Type, string(data)); err != nil {
			return fmt.Errorf("inserting entity %q: %w", e.Name, err)
		}
	}

	for i, r := range d.Relationships {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO relationships (ord, from_name, to_name, rel_type, directed) VALUES (?, ?, ?, ?, ?)",
			i, r.From, r.To, r.Type, boolInt(r.Directed)); err != nil {
			return fmt.Errorf("inserting relationship %q-[%s]->%q: %w", r.From, r.Type, r.To, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Entity(ctx context.Context, name string) (dataset.Entity, bool, error) {
	var e dataset.Entity
	var attrsJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT name, entity_type, attrs FROM entities WHERE name = ? COLLATE NOCASE",
		name).Scan(&e.Name, &e.Type, &attrsJSON)
	if err == sql.ErrNoRows {
		return dataset.Entity{}, false, nil
	}
	if err != nil {
		return dataset.Entity{}, false, fmt.Errorf("querying entity: %w", err)
	}

	var attrs []attrRow
	if err := json.Unmarshal([]byte(attrsJSON), &attrs); err != nil {
		return dataset.Entity{}, false, fmt.Errorf("decoding attrs for %q: %w", e.Name, err)
	}
	e.Attrs = make([]dataset.Attribute, len(attrs))
	for i, a := range attrs {
		e.Attrs[i] = dataset.Attribute(a)
	}
	return e, true, nil
}

func (s *SQLite) EntityNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM entities ORDER BY ord")
	if err != nil {
		return nil, fmt.Errorf("querying entity names: %w", err)
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

func (s *SQLite) Edges(ctx context.Context, names []string, relTypes []string) ([]Edge, error) {
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(names)-1) + "?"
	query := fmt.Sprintf(`
		SELECT from_name, to_name, rel_type, directed
		FROM relationships
		WHERE from_name IN (%s) OR to_name IN (%s)
		ORDER BY ord
	`, placeholders, placeholders)

	args := make([]any, 0, len(names)*2)
	for i := 0; i < 2; i++ {
		for _, n := range names {
			args = append(args, n)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		var directed int
		if err := rows.Scan(&e.From, &e.To, &e.Type, &directed); err != nil {
			return nil, err
		}
		e.Directed = directed != 0
		if matchesType(e.Type, relTypes) {
			edges = append(edges, e)
		}
	}
	return edges, rows.Err()
}

func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) IndexFacts(ctx context.Context, embeddings [][]float32) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning fact index: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vec_facts"); err != nil {
		return fmt.Errorf("clearing fact index: %w", err)
	}
	for i, emb := range embeddings {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vec_facts (fact_ord, embedding) VALUES (?, ?)",
			i, serializeFloat32(emb)); err != nil {
			return fmt.Errorf("indexing fact %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) SearchFacts(ctx context.Context, query []float32, k int) ([]FactMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fact_ord, distance
		FROM vec_facts
		WHERE embedding MATCH ? AND k = ?
		ORDER BY distance
	`, serializeFloat32(query), k)
	if err != nil {
		return nil, fmt.Errorf("searching fact index: %w", err)
	}
	defer rows.Close()

	var matches []FactMatch
	for rows.Next() {
		var m FactMatch
		var distance float64
		if err := rows.Scan(&m.Ordinal, &distance); err != nil {
			return nil, err
		}
		m.Score = 1.0 - distance
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// serializeFloat32 converts a float32 slice to little-endian bytes for sqlite-vec.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
