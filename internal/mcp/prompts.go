package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultTaggingCorpus is used by the character_tagging_analysis prompt when
// no corpus argument is given.
const defaultTaggingCorpus = "dutch"

func (s *Server) registerPrompts() {
	playArgs := []*sdk.PromptArgument{
		{Name: "corpus_name", Description: "corpus identifier", Required: true},
		{Name: "play_name", Description: "play identifier", Required: true},
	}

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "analyze_play",
		Description: "Create a prompt for analyzing a specific play",
		Arguments:   playArgs,
	}, playPrompt(analyzePlayPrompt))

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "character_analysis",
		Description: "Create a prompt for analyzing a specific character",
		Arguments: []*sdk.PromptArgument{
			{Name: "corpus_name", Description: "corpus identifier", Required: true},
			{Name: "play_name", Description: "play identifier", Required: true},
			{Name: "character_id", Description: "character identifier", Required: true},
		},
	}, func(ctx context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
		args := req.Params.Arguments
		return promptResult(characterAnalysisPrompt(args["corpus_name"], args["play_name"], args["character_id"])), nil
	})

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "network_analysis",
		Description: "Create a prompt for analyzing a character network",
		Arguments:   playArgs,
	}, playPrompt(networkAnalysisPrompt))

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "comparative_analysis",
		Description: "Create a prompt for comparing two plays",
		Arguments: []*sdk.PromptArgument{
			{Name: "corpus_name1", Description: "corpus of the first play", Required: true},
			{Name: "play_name1", Description: "first play identifier", Required: true},
			{Name: "corpus_name2", Description: "corpus of the second play", Required: true},
			{Name: "play_name2", Description: "second play identifier", Required: true},
		},
	}, func(ctx context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
		args := req.Params.Arguments
		text := comparativeAnalysisPrompt(args["corpus_name1"], args["play_name1"], args["corpus_name2"], args["play_name2"])
		return promptResult(text), nil
	})

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "gender_analysis",
		Description: "Create a prompt for analyzing gender representation in a play",
		Arguments:   playArgs,
	}, playPrompt(genderAnalysisPrompt))

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "historical_context",
		Description: "Create a prompt for analyzing the historical context of a play",
		Arguments:   playArgs,
	}, playPrompt(historicalContextPrompt))

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "full_text_analysis",
		Description: "Template for analyzing the full text of a play",
	}, func(ctx context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
		return promptResult(fullTextAnalysisPrompt()), nil
	})

	s.mcp.AddPrompt(&sdk.Prompt{
		Name:        "character_tagging_analysis",
		Description: "Template for analyzing character ID tagging issues in plays",
		Arguments: []*sdk.PromptArgument{
			{Name: "corpus_name", Description: "corpus to analyze, defaults to dutch"},
			{Name: "play_name", Description: "specific play to analyze"},
		},
	}, func(ctx context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
		args := req.Params.Arguments
		return promptResult(characterTaggingPrompt(args["corpus_name"], args["play_name"])), nil
	})
}

func playPrompt(build func(corpus, play string) string) sdk.PromptHandler {
	return func(ctx context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
		args := req.Params.Arguments
		return promptResult(build(args["corpus_name"], args["play_name"])), nil
	}
}

func promptResult(text string) *sdk.GetPromptResult {
	return &sdk.GetPromptResult{
		Messages: []*sdk.PromptMessage{{
			Role:    "user",
			Content: &sdk.TextContent{Text: text},
		}},
	}
}

func analyzePlayPrompt(corpus, play string) string {
	return fmt.Sprintf(`You are a drama analysis expert who can help analyze plays from the DraCor (Drama Corpora Project) database.

You have access to the following play:

Corpus: %s
Play: %s

Analyze this play in terms of:
1. Basic information (title, author, year)
2. Structure (acts, scenes)
3. Character relationships
4. Key metrics and statistics

Please provide a comprehensive analysis including:
- Historical context of the play
- Structural analysis
- Character analysis
- Network analysis (how characters relate to each other)
- Notable aspects of this play compared to others from the same period`, corpus, play)
}

func characterAnalysisPrompt(corpus, play, characterID string) string {
	return fmt.Sprintf(`You are a drama character analysis expert who can help analyze characters from plays in the DraCor database.

You have access to the following character:

Corpus: %s
Play: %s
Character: %s

Analyze this character in terms of:
1. Basic information (name, gender)
2. Importance in the play (based on speech counts, words spoken)
3. Relationships with other characters
4. Character development throughout the play

Please provide a comprehensive character analysis that could help researchers or students understand this character better.`, corpus, play, characterID)
}

func networkAnalysisPrompt(corpus, play string) string {
	return fmt.Sprintf(`You are a network analysis expert who can help analyze character networks from plays in the DraCor database.

You have access to the following play network:

Corpus: %s
Play: %s

Analyze this play's character network in terms of:
1. Overall network structure and density
2. Central characters (highest degree, betweenness)
3. Character communities or groups
4. Strongest and weakest relationships
5. How the network structure relates to the themes of the play

Please provide a comprehensive network analysis that could help researchers understand the social dynamics in this play.`, corpus, play)
}

func comparativeAnalysisPrompt(corpus1, play1, corpus2, play2 string) string {
	return fmt.Sprintf(`You are a drama analysis expert who can help compare plays from the DraCor database.

You have access to the following two plays:

Play 1:
Corpus: %s
Play: %s

Play 2:
Corpus: %s
Play: %s

Compare these plays in terms of:
1. Basic information (title, author, year)
2. Structure (acts, scenes, length)
3. Character count and dynamics
4. Network complexity and density
5. Historical context and significance

Please provide a comprehensive comparative analysis that highlights similarities and differences between these plays.`, corpus1, play1, corpus2, play2)
}

func genderAnalysisPrompt(corpus, play string) string {
	return fmt.Sprintf(`You are a scholar specializing in gender studies and dramatic literature. You've been asked to analyze gender representation in a drama.

Corpus: %s
Play: %s

Please analyze the play in terms of:
1. Gender distribution of characters
2. Speaking time and importance of male vs. female characters
3. Relationships between characters of different genders
4. Historical context of gender representation in this period
5. Notable aspects of gender portrayal in this play

Your analysis should consider both quantitative data (number of characters, speaking lines) and qualitative aspects (power dynamics, character development).`, corpus, play)
}

func historicalContextPrompt(corpus, play string) string {
	return fmt.Sprintf(`You are a theater historian who specializes in putting dramatic works in their historical context.

Corpus: %s
Play: %s

Please provide a detailed analysis of the historical context of this play, including:
1. Political and social climate when the play was written
2. Theatrical conventions of the period
3. How contemporary events might have influenced the play
4. Reception of the play when it was first performed
5. The play's significance in the author's body of work
6. How the play reflects or challenges the values of its time

Your analysis should help modern readers and scholars understand the play within its original historical framework.`, corpus, play)
}

// fullTextAnalysisPrompt is a fill-in template; the braced placeholders are
// for the client to substitute, not for this server.
func fullTextAnalysisPrompt() string {
	return `I'll analyze the full text of {play_title} by {author} from the {corpus_name} corpus.

## Basic Information
- Title: {play_title}
- Author: {author}
- Written: {written_year}
- Premiere: {premiere_date}

## Full Text Analysis

{analysis}

## Key Themes and Motifs

{themes}

## Language and Style

{style}

## Historical and Cultural Context

{context}`
}

func characterTaggingPrompt(corpus, play string) string {
	if corpus == "" {
		corpus = defaultTaggingCorpus
	}
	if play == "" {
		return fmt.Sprintf(`Your task is to analyze a play from the %[1]s corpus in the DraCor database to identify character ID tagging issues.

First, use the search_plays tool to find available plays in the %[1]s corpus, then select one for analysis.

Once you've selected a play, perform a comprehensive analysis of:
1. Character relations
2. Full text (especially TEI format)
3. Play structure

Identify all possible inconsistencies in character ID tagging, including:
* Spelling variations of character names
* Character name confusion or conflation
* Historical spelling variants
* Discrepancies between character IDs and stage directions

Create a detailed report of potential character ID tagging errors in a structured table format with the following columns:
* Text ID (unique identifier for the play)
* Current character ID used in the database
* Problematic variant(s) found in the text
* Type of error (spelling, variation, confusion, etc.)
* Explanation of the issue`, corpus)
	}
	return fmt.Sprintf(`Your task is to analyze '%[2]s' from the %[1]s corpus in the DraCor database to identify character ID tagging issues. Specifically:

1. Perform a comprehensive analysis of:
   * Character relations
   * Full text (especially TEI format)
   * Play structure

2. Identify all possible inconsistencies in character ID tagging, including:
   * Spelling variations of character names
   * Character name confusion or conflation
   * Historical spelling variants
   * Discrepancies between character IDs and stage directions

3. Create a detailed report of potential character ID tagging errors in a structured table format with the following columns:
   * Text ID: %[1]s/%[2]s
   * Current character ID used in the database
   * Problematic variant(s) found in the text
   * Type of error (spelling, variation, confusion, etc.)
   * Explanation of the issue`, corpus, play)
}
