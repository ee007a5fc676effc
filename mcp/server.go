// Package mcp exposes the comparison engine to MCP clients: a compare tool
// plus direct access to each retrieval strategy and the entity catalog.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brunobiangulo/ragduel"
)

// Server wraps the MCP protocol server around an engine.
type Server struct {
	engine *ragduel.Engine
	mcp    *sdk.Server
}

// NewServer creates the protocol server and registers all tools.
func NewServer(engine *ragduel.Engine, version string) *Server {
	s := &Server{
		engine: engine,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "ragduel",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves the MCP protocol on the given transport until ctx is done.
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
