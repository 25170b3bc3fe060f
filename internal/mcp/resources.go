package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const jsonMIME = "application/json"

// registerResources mirrors the upstream REST endpoints as MCP resources.
// Each scheme maps to one accessor; list responses are wrapped under a key
// naming the collection, single-object responses pass through unwrapped.
func (s *Server) registerResources() {
	s.mcp.AddResource(&sdk.Resource{
		URI:         "info://",
		Name:        "api-info",
		Description: "DraCor API information and version details",
		MIMEType:    jsonMIME,
	}, func(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
		info, err := s.api.Info(ctx)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, info)
	})

	s.mcp.AddResource(&sdk.Resource{
		URI:         "corpora://",
		Name:        "corpora",
		Description: "List of all available corpora (collections of plays)",
		MIMEType:    jsonMIME,
	}, func(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
		corpora, err := s.api.Corpora(ctx)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, map[string]any{"corpora": corpora})
	})

	s.addCorpusTemplate("corpus://{corpus}", "corpus",
		"Information about a specific corpus",
		func(ctx context.Context, corpus string) (any, error) {
			return s.api.Corpus(ctx, corpus)
		})

	s.addCorpusTemplate("corpus-metadata://{corpus}", "corpus-metadata",
		"Metadata for all plays in a corpus",
		func(ctx context.Context, corpus string) (any, error) {
			metadata, err := s.api.CorpusMetadata(ctx, corpus)
			if err != nil {
				return nil, err
			}
			return map[string]any{"metadata": metadata}, nil
		})

	s.addCorpusTemplate("plays://{corpus}", "plays",
		"List of plays in a specific corpus",
		func(ctx context.Context, corpus string) (any, error) {
			plays, err := s.api.Plays(ctx, corpus)
			if err != nil {
				return nil, err
			}
			return map[string]any{"plays": plays}, nil
		})

	s.addPlayTemplate("play://{corpus}/{play}", "play",
		"Information about a specific play",
		func(ctx context.Context, corpus, play string) (any, error) {
			return s.api.Play(ctx, corpus, play)
		})

	s.addPlayTemplate("play-metrics://{corpus}/{play}", "play-metrics",
		"Network metrics for a specific play",
		func(ctx context.Context, corpus, play string) (any, error) {
			return s.api.PlayMetrics(ctx, corpus, play)
		})

	s.addPlayTemplate("characters://{corpus}/{play}", "characters",
		"List of characters in a specific play",
		func(ctx context.Context, corpus, play string) (any, error) {
			characters, err := s.api.Characters(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"characters": characters}, nil
		})

	s.addPlayTemplate("spoken-text://{corpus}/{play}", "spoken-text",
		"All dialogue of a play as plain text",
		func(ctx context.Context, corpus, play string) (any, error) {
			text, err := s.api.SpokenText(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": text}, nil
		})

	s.addPlayTemplate("spoken-text-by-character://{corpus}/{play}", "spoken-text-by-character",
		"Spoken text for each character in a play",
		func(ctx context.Context, corpus, play string) (any, error) {
			byCharacter, err := s.api.SpokenTextByCharacter(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text_by_character": byCharacter}, nil
		})

	s.addPlayTemplate("stage-directions://{corpus}/{play}", "stage-directions",
		"All stage directions of a play",
		func(ctx context.Context, corpus, play string) (any, error) {
			text, err := s.api.StageDirections(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": text}, nil
		})

	s.addPlayTemplate("network-data://{corpus}/{play}", "network-data",
		"Co-occurrence network of a play in CSV format",
		func(ctx context.Context, corpus, play string) (any, error) {
			csv, err := s.api.NetworkCSV(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"csv_data": csv}, nil
		})

	s.addPlayTemplate("relations://{corpus}/{play}", "relations",
		"Character relation data for a play",
		func(ctx context.Context, corpus, play string) (any, error) {
			relations, err := s.api.Relations(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"relations": relations}, nil
		})

	s.addPlayTemplate("full-text://{corpus}/{play}", "full-text",
		"Full text of a play combining dialogue and stage directions",
		func(ctx context.Context, corpus, play string) (any, error) {
			text, err := s.api.FullText(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": text}, nil
		})

	s.addPlayTemplate("tei://{corpus}/{play}", "tei",
		"Full TEI XML source of a play",
		func(ctx context.Context, corpus, play string) (any, error) {
			tei, err := s.api.TEI(ctx, corpus, play)
			if err != nil {
				return nil, err
			}
			return map[string]any{"tei_text": tei}, nil
		})

	s.mcp.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: "character-by-wikidata://{id}",
		Name:        "character-by-wikidata",
		Description: "Plays having a character identified by Wikidata ID",
		MIMEType:    jsonMIME,
	}, func(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
		id, err := splitSingleURI(req.Params.URI)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		plays, err := s.api.PlaysWithCharacter(ctx, id)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, map[string]any{"plays": plays})
	})
}

func (s *Server) addCorpusTemplate(template, name, description string, fetch func(ctx context.Context, corpus string) (any, error)) {
	s.mcp.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: template,
		Name:        name,
		Description: description,
		MIMEType:    jsonMIME,
	}, func(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
		corpus, err := splitSingleURI(req.Params.URI)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		payload, err := fetch(ctx, corpus)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, payload)
	})
}

func (s *Server) addPlayTemplate(template, name, description string, fetch func(ctx context.Context, corpus, play string) (any, error)) {
	s.mcp.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: template,
		Name:        name,
		Description: description,
		MIMEType:    jsonMIME,
	}, func(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
		corpus, play, err := splitPairURI(req.Params.URI)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		payload, err := fetch(ctx, corpus, play)
		if err != nil {
			return s.errorResource(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, payload)
	})
}

// splitSingleURI extracts the sole path element of a scheme://value URI.
func splitSingleURI(uri string) (string, error) {
	rest, err := uriRest(uri)
	if err != nil {
		return "", err
	}
	if strings.Contains(rest, "/") {
		return "", fmt.Errorf("resource uri %q takes a single identifier", uri)
	}
	return rest, nil
}

// splitPairURI extracts corpus and play from a scheme://corpus/play URI.
func splitPairURI(uri string) (string, string, error) {
	rest, err := uriRest(uri)
	if err != nil {
		return "", "", err
	}
	corpus, play, ok := strings.Cut(rest, "/")
	if !ok || corpus == "" || play == "" || strings.Contains(play, "/") {
		return "", "", fmt.Errorf("resource uri %q needs corpus and play identifiers", uri)
	}
	return corpus, play, nil
}

func uriRest(uri string) (string, error) {
	_, rest, ok := strings.Cut(uri, "://")
	if !ok || rest == "" {
		return "", fmt.Errorf("malformed resource uri: %q", uri)
	}
	return rest, nil
}

func jsonResource(uri string, payload any) (*sdk.ReadResourceResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(errorJSON(err))
	}
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) errorResource(uri string, err error) (*sdk.ReadResourceResult, error) {
	s.logger.Warn("resource read failed", "uri", uri, "error", err)
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     errorJSON(err),
		}},
	}, nil
}
