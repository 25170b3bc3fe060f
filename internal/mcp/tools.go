package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"dracormcp/internal/drama"
)

type SearchPlaysInput struct {
	Query         string `json:"query,omitempty" jsonschema:"text search across title, subtitle, and author"`
	CorpusName    string `json:"corpus_name,omitempty" jsonschema:"corpus to search within, e.g. shake, ger, rus"`
	CharacterName string `json:"character_name,omitempty" jsonschema:"name of a character that appears in the play"`
	Country       string `json:"country,omitempty" jsonschema:"country of origin"`
	Language      string `json:"language,omitempty" jsonschema:"language of the play"`
	Author        string `json:"author,omitempty" jsonschema:"name of the playwright"`
	YearFrom      int    `json:"year_from,omitempty" jsonschema:"starting year for date range filter"`
	YearTo        int    `json:"year_to,omitempty" jsonschema:"ending year for date range filter"`
	GenderFilter  string `json:"gender_filter,omitempty" jsonschema:"female_dominated, male_dominated, or balanced"`
}

type ComparePlaysInput struct {
	CorpusName1 string `json:"corpus_name1" jsonschema:"corpus of the first play"`
	PlayName1   string `json:"play_name1" jsonschema:"identifier of the first play"`
	CorpusName2 string `json:"corpus_name2" jsonschema:"corpus of the second play"`
	PlayName2   string `json:"play_name2" jsonschema:"identifier of the second play"`
}

type PlayRefInput struct {
	CorpusName string `json:"corpus_name" jsonschema:"corpus identifier"`
	PlayName   string `json:"play_name" jsonschema:"play identifier"`
}

type FindCharacterInput struct {
	CharacterName string `json:"character_name" jsonschema:"character name to look for, case-insensitive substring"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_plays",
		Description: "Advanced search for plays with multiple filter options",
		InputSchema: mustSchema[SearchPlaysInput](),
	}, s.handleSearchPlays)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "compare_plays",
		Description: "Compare two plays in terms of metrics and structure",
		InputSchema: mustSchema[ComparePlaysInput](),
	}, s.handleComparePlays)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "analyze_character_relations",
		Description: "Analyze the character relationships in a play",
		InputSchema: mustSchema[PlayRefInput](),
	}, s.handleCharacterRelations)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "analyze_play_structure",
		Description: "Analyze the structure of a play including acts, scenes, and metrics",
		InputSchema: mustSchema[PlayRefInput](),
	}, s.handlePlayStructure)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_character_across_plays",
		Description: "Find a character across multiple plays in the database",
		InputSchema: mustSchema[FindCharacterInput](),
	}, s.handleFindCharacter)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "analyze_full_text",
		Description: "Analyze the full text of a play, including dialogue and stage directions",
		InputSchema: mustSchema[PlayRefInput](),
	}, s.handleFullText)
}

func mustSchema[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("deriving tool schema: %v", err))
	}
	return schema
}

// toolResult renders a handler outcome as one JSON text content. Errors are
// part of the payload, not protocol faults, so clients always get a body to
// inspect.
func (s *Server) toolResult(name string, v any, err error) (*sdk.CallToolResult, any, error) {
	if err != nil {
		s.logger.Warn("tool failed", "tool", name, "error", err)
		return &sdk.CallToolResult{
			IsError: true,
			Content: []sdk.Content{&sdk.TextContent{Text: errorJSON(err)}},
		}, nil, nil
	}
	data, merr := json.Marshal(v)
	if merr != nil {
		return &sdk.CallToolResult{
			IsError: true,
			Content: []sdk.Content{&sdk.TextContent{Text: errorJSON(merr)}},
		}, nil, nil
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorJSON(err error) string {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}

func (s *Server) handleSearchPlays(ctx context.Context, req *sdk.CallToolRequest, input SearchPlaysInput) (*sdk.CallToolResult, any, error) {
	result, err := drama.SearchPlays(ctx, s.api, drama.SearchFilters{
		Query:         input.Query,
		CorpusName:    input.CorpusName,
		CharacterName: input.CharacterName,
		Country:       input.Country,
		Language:      input.Language,
		Author:        input.Author,
		YearFrom:      input.YearFrom,
		YearTo:        input.YearTo,
		GenderFilter:  input.GenderFilter,
	})
	return s.toolResult("search_plays", result, err)
}

func (s *Server) handleComparePlays(ctx context.Context, req *sdk.CallToolRequest, input ComparePlaysInput) (*sdk.CallToolResult, any, error) {
	result, err := drama.ComparePlays(ctx, s.api, input.CorpusName1, input.PlayName1, input.CorpusName2, input.PlayName2)
	return s.toolResult("compare_plays", result, err)
}

func (s *Server) handleCharacterRelations(ctx context.Context, req *sdk.CallToolRequest, input PlayRefInput) (*sdk.CallToolResult, any, error) {
	result, err := drama.CharacterRelations(ctx, s.api, input.CorpusName, input.PlayName)
	return s.toolResult("analyze_character_relations", result, err)
}

func (s *Server) handlePlayStructure(ctx context.Context, req *sdk.CallToolRequest, input PlayRefInput) (*sdk.CallToolResult, any, error) {
	result, err := drama.PlayStructure(ctx, s.api, input.CorpusName, input.PlayName)
	return s.toolResult("analyze_play_structure", result, err)
}

func (s *Server) handleFindCharacter(ctx context.Context, req *sdk.CallToolRequest, input FindCharacterInput) (*sdk.CallToolResult, any, error) {
	result, err := drama.FindCharacter(ctx, s.api, input.CharacterName)
	return s.toolResult("find_character_across_plays", result, err)
}

func (s *Server) handleFullText(ctx context.Context, req *sdk.CallToolRequest, input PlayRefInput) (*sdk.CallToolResult, any, error) {
	result, err := drama.FullTextAnalysis(ctx, s.api, input.CorpusName, input.PlayName)
	return s.toolResult("analyze_full_text", result, err)
}
