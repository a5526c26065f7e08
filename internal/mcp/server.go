// Package mcp exposes the finished database to the display application as
// read-only MCP tools over stdio.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"pokedex/internal/store"
)

type Server struct {
	db  store.Store
	mcp *sdk.Server
}

func NewServer(db store.Store, version string) *Server {
	s := &Server{
		db: db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "pokedex",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
