package drama

import (
	"context"

	"dracormcp/internal/dracor"
)

type ComparedPlay struct {
	Title   string         `json:"title"`
	Author  string         `json:"author,omitempty"`
	Year    dracor.Year    `json:"year,omitempty"`
	Metrics map[string]any `json:"metrics"`
}

type Comparison struct {
	Plays []ComparedPlay `json:"plays"`
}

// ComparePlays fetches detail and metrics for two plays. Any fetch failure
// aborts the comparison.
func ComparePlays(ctx context.Context, f Fetcher, corpus1, play1, corpus2, play2 string) (Comparison, error) {
	if err := dracor.ValidateName(corpus1, "corpus_name1"); err != nil {
		return Comparison{}, err
	}
	if err := dracor.ValidateName(play1, "play_name1"); err != nil {
		return Comparison{}, err
	}
	if err := dracor.ValidateName(corpus2, "corpus_name2"); err != nil {
		return Comparison{}, err
	}
	if err := dracor.ValidateName(play2, "play_name2"); err != nil {
		return Comparison{}, err
	}

	comparison := Comparison{Plays: make([]ComparedPlay, 0, 2)}
	for _, ref := range [][2]string{{corpus1, play1}, {corpus2, play2}} {
		play, err := f.Play(ctx, ref[0], ref[1])
		if err != nil {
			return Comparison{}, err
		}
		metrics, err := f.PlayMetrics(ctx, ref[0], ref[1])
		if err != nil {
			return Comparison{}, err
		}
		comparison.Plays = append(comparison.Plays, ComparedPlay{
			Title:   play.Title,
			Author:  firstAuthor(play),
			Year:    play.YearNormalized,
			Metrics: metrics,
		})
	}
	return comparison, nil
}
