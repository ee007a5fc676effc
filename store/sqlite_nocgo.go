//go:build !cgo

package store

import (
	"context"
	"fmt"
)

// The sqlite backend needs cgo for mattn/go-sqlite3 and sqlite-vec.
func openSQLite(ctx context.Context, cfg Config) (Graph, error) {
	return nil, fmt.Errorf("%w: sqlite (requires cgo)", ErrUnknownBackend)
}
