package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brunobiangulo/ragduel"
	"github.com/brunobiangulo/ragduel/dataset"
	"github.com/brunobiangulo/ragduel/retrieval"
)

type CompareInput struct {
	Query string `json:"query" jsonschema:"the natural-language question to run through both retrieval strategies"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"the natural-language question to retrieve context for"`
}

type GetEntityInput struct {
	Name string `json:"name" jsonschema:"entity name, matched case-insensitively"`
}

type ListEntitiesInput struct{}

type EntityOutput struct {
	Found  bool           `json:"found"`
	Entity dataset.Entity `json:"entity,omitzero"`
}

type ListEntitiesOutput struct {
	Names []string `json:"names"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "compare_retrieval",
		Description: "Run a question through both the keyword retriever and the graph retriever, generate an answer from each context, and return the side-by-side result",
	}, s.handleCompare)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "keyword_search",
		Description: "Retrieve the top facts for a question by token overlap, without generation",
	}, s.handleKeywordSearch)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "graph_search",
		Description: "Retrieve an entity-relationship subgraph for a question by seed detection and bounded traversal, without generation",
	}, s.handleGraphSearch)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Look up one entity and its attributes by name",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List all entity names in the knowledge base",
	}, s.handleListEntities)
}

func (s *Server) handleCompare(ctx context.Context, req *sdk.CallToolRequest, input CompareInput) (*sdk.CallToolResult, ragduel.Comparison, error) {
	if input.Query == "" {
		return nil, ragduel.Comparison{}, fmt.Errorf("query is required")
	}
	cmp, err := s.engine.Compare(ctx, input.Query)
	if err != nil {
		return nil, ragduel.Comparison{}, err
	}
	return nil, *cmp, nil
}

func (s *Server) handleKeywordSearch(ctx context.Context, req *sdk.CallToolRequest, input SearchInput) (*sdk.CallToolResult, retrieval.Result, error) {
	return s.search(ctx, retrieval.StrategyTraditional, input.Query)
}

func (s *Server) handleGraphSearch(ctx context.Context, req *sdk.CallToolRequest, input SearchInput) (*sdk.CallToolResult, retrieval.Result, error) {
	return s.search(ctx, retrieval.StrategyGraph, input.Query)
}

func (s *Server) search(ctx context.Context, strategy, query string) (*sdk.CallToolResult, retrieval.Result, error) {
	if query == "" {
		return nil, retrieval.Result{}, fmt.Errorf("query is required")
	}
	res, err := s.engine.Search(ctx, strategy, query)
	if err != nil {
		return nil, retrieval.Result{}, err
	}
	return nil, *res, nil
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, EntityOutput, error) {
	if input.Name == "" {
		return nil, EntityOutput{}, fmt.Errorf("name is required")
	}
	entity, found, err := s.engine.Entity(ctx, input.Name)
	if err != nil {
		return nil, EntityOutput{}, err
	}
	return nil, EntityOutput{Found: found, Entity: entity}, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	names, err := s.engine.EntityNames(ctx)
	if err != nil {
		return nil, ListEntitiesOutput{}, err
	}
	return nil, ListEntitiesOutput{Names: names}, nil
}
