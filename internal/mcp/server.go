// Package mcp exposes the DraCor adapter over the Model Context Protocol:
// six analysis tools, the resource catalog mirroring the upstream REST
// endpoints, and the analysis prompt templates. Handlers never fail the
// protocol call for an upstream problem; errors become an {"error": ...}
// payload in the result content.
package mcp

import (
	"context"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"dracormcp/internal/dracor"
	"dracormcp/internal/drama"
)

// API is the full DraCor client surface the server dispatches to. It embeds
// the subset the composite operations consume so a single mock covers both
// in tests.
type API interface {
	drama.Fetcher
	Info(ctx context.Context) (map[string]any, error)
	Corpus(ctx context.Context, name string) (dracor.Corpus, error)
	CorpusMetadata(ctx context.Context, name string) ([]map[string]any, error)
	SpokenText(ctx context.Context, corpus, play string) (string, error)
	SpokenTextByCharacter(ctx context.Context, corpus, play string) ([]map[string]any, error)
	StageDirections(ctx context.Context, corpus, play string) (string, error)
	Relations(ctx context.Context, corpus, play string) ([]map[string]any, error)
	PlaysWithCharacter(ctx context.Context, wikidataID string) ([]map[string]any, error)
}

var _ API = (*dracor.Client)(nil)

type Server struct {
	api    API
	logger *slog.Logger
	mcp    *sdk.Server
}

func NewServer(api API, logger *slog.Logger, version string) *Server {
	s := &Server{
		api:    api,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "dracormcp",
			Version: version,
		}, nil),
	}
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
