// Package drama implements the composite analysis operations of the adapter:
// multi-filter play search, play comparison, relation-graph construction from
// co-occurrence CSV, structural analysis, cross-play character search, and
// full-text/TEI analysis. All operations run against a Fetcher so tests can
// substitute a mock upstream.
package drama

import (
	"context"

	"dracormcp/internal/dracor"
)

// Fetcher is the subset of the DraCor client the composite operations need.
type Fetcher interface {
	Corpora(ctx context.Context) ([]dracor.Corpus, error)
	Plays(ctx context.Context, corpus string) ([]dracor.Play, error)
	Play(ctx context.Context, corpus, play string) (dracor.Play, error)
	PlayMetrics(ctx context.Context, corpus, play string) (map[string]any, error)
	Characters(ctx context.Context, corpus, play string) ([]dracor.Character, error)
	NetworkCSV(ctx context.Context, corpus, play string) (string, error)
	RelationsCSV(ctx context.Context, corpus, play string) (string, error)
	TEI(ctx context.Context, corpus, play string) (string, error)
	FullText(ctx context.Context, corpus, play string) (string, error)
}

var _ Fetcher = (*dracor.Client)(nil)

func firstAuthor(p dracor.Play) string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0].Name
}
