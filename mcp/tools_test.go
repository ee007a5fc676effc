package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/brunobiangulo/ragduel"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine, err := ragduel.New(context.Background(), ragduel.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return NewServer(engine, "test")
}

func TestHandleCompare(t *testing.T) {
	s := newTestServer(t)

	_, cmp, err := s.handleCompare(context.Background(), nil, CompareInput{Query: "Who is Superman's ally?"})
	if err != nil {
		t.Fatalf("handleCompare() error: %v", err)
	}
	if cmp.Traditional.Answer == "" || cmp.Graph.Answer == "" {
		t.Error("both branches must carry an answer")
	}
	if !strings.Contains(cmp.Graph.Retrieval.Context(), "Superman") {
		t.Errorf("graph context missing the seed:\n%s", cmp.Graph.Retrieval.Context())
	}
}

func TestHandleCompareEmptyQuery(t *testing.T) {
	s := newTestServer(t)

	if _, _, err := s.handleCompare(context.Background(), nil, CompareInput{}); err == nil {
		t.Error("empty query should be rejected")
	}
}

func TestHandleSearchTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, keyword, err := s.handleKeywordSearch(ctx, nil, SearchInput{Query: "Superman powers"})
	if err != nil {
		t.Fatalf("handleKeywordSearch() error: %v", err)
	}
	if keyword.Empty() {
		t.Error("keyword search found nothing for a direct attribute query")
	}

	_, graph, err := s.handleGraphSearch(ctx, nil, SearchInput{Query: "Superman powers"})
	if err != nil {
		t.Fatalf("handleGraphSearch() error: %v", err)
	}
	if graph.Empty() {
		t.Error("graph search found nothing for a seeded query")
	}
}

func TestHandleGetEntity(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleGetEntity(ctx, nil, GetEntityInput{Name: "batman"})
	if err != nil {
		t.Fatalf("handleGetEntity() error: %v", err)
	}
	if !out.Found || out.Entity.Name != "Batman" {
		t.Errorf("out = %+v, want Batman found", out)
	}

	_, out, err = s.handleGetEntity(ctx, nil, GetEntityInput{Name: "Aquaman"})
	if err != nil {
		t.Fatalf("handleGetEntity() error: %v", err)
	}
	if out.Found {
		t.Error("Aquaman should not be found")
	}
}

func TestHandleListEntities(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleListEntities(context.Background(), nil, ListEntitiesInput{})
	if err != nil {
		t.Fatalf("handleListEntities() error: %v", err)
	}
	if len(out.Names) != 5 {
		t.Errorf("len(Names) = %d, want 5", len(out.Names))
	}
	if out.Names[0] != "Superman" {
		t.Errorf("Names[0] = %q, want Superman (load order)", out.Names[0])
	}
}
