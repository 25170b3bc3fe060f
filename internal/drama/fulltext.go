package drama

import (
	"context"
	"strings"

	"dracormcp/internal/dracor"
)

type TextAnalysis struct {
	TextLength               int      `json:"text_length"`
	CharacterCount           int      `json:"character_count"`
	DialogueToDirectionRatio *float64 `json:"dialogue_to_direction_ratio"`
}

type FullTextReport struct {
	Play        dracor.Play        `json:"play"`
	Characters  []dracor.Character `json:"characters"`
	Text        string             `json:"text"`
	TEIAnalysis *TEISummary        `json:"tei_analysis,omitempty"`
	Analysis    TextAnalysis       `json:"analysis"`
}

// FullTextAnalysis analyzes a play's text. The TEI document is the primary
// source; when it cannot be fetched the analysis degrades to the synthesized
// plain text, and when it cannot be parsed the TEI summary is zeroed instead
// of failing the call. Play metadata and the character list are required:
// either failure aborts.
func FullTextAnalysis(ctx context.Context, f Fetcher, corpus, playName string) (FullTextReport, error) {
	if err := dracor.ValidateName(corpus, "corpus_name"); err != nil {
		return FullTextReport{}, err
	}
	if err := dracor.ValidateName(playName, "play_name"); err != nil {
		return FullTextReport{}, err
	}

	var (
		text       string
		teiSummary *TEISummary
	)
	teiText, teiErr := f.TEI(ctx, corpus, playName)
	if teiErr != nil {
		fullText, err := f.FullText(ctx, corpus, playName)
		if err != nil {
			return FullTextReport{}, err
		}
		text = fullText
	} else {
		summary := summarizeTEI(teiText)
		teiSummary = &summary
		// Plain text accompanies the TEI analysis for easier consumption;
		// if it cannot be fetched the report carries an empty text body.
		if fullText, err := f.FullText(ctx, corpus, playName); err == nil {
			text = fullText
		}
	}

	play, err := f.Play(ctx, corpus, playName)
	if err != nil {
		return FullTextReport{}, err
	}
	characters, err := f.Characters(ctx, corpus, playName)
	if err != nil {
		return FullTextReport{}, err
	}

	return FullTextReport{
		Play:        play,
		Characters:  characters,
		Text:        text,
		TEIAnalysis: teiSummary,
		Analysis: TextAnalysis{
			TextLength:               len(text),
			CharacterCount:           len(characters),
			DialogueToDirectionRatio: dialogueToDirectionRatio(text),
		},
	}, nil
}

// dialogueToDirectionRatio counts the literal section headers the full-text
// synthesis emits. Nil when there is no stage-directions header: an unknown
// ratio is reported as null, never as a division fallback.
func dialogueToDirectionRatio(text string) *float64 {
	directions := strings.Count(text, "\n\nSTAGE DIRECTIONS:")
	if directions == 0 {
		return nil
	}
	dialogue := strings.Count(text, "\n\nDIALOGUE:")
	ratio := float64(dialogue) / float64(directions)
	return &ratio
}
