package drama

import (
	"context"
	"fmt"
	"strings"

	"dracormcp/internal/dracor"
)

// Gender filter values accepted by SearchPlays.
const (
	GenderFemaleDominated = "female_dominated"
	GenderMaleDominated   = "male_dominated"
	GenderBalanced        = "balanced"
)

// SearchFilters are the caller-supplied search criteria. Zero values mean
// "not specified". CorpusName is a substring match against corpus
// identifiers and narrows which corpora are scanned, not an exact key.
type SearchFilters struct {
	Query         string
	CorpusName    string
	CharacterName string
	Country       string
	Language      string
	Author        string
	YearFrom      int
	YearTo        int
	GenderFilter  string
}

// FiltersApplied echoes the originally supplied filter values back to the
// caller. It is built from the SearchFilters argument alone, never from loop
// state, so the echoed corpus_name cannot drift to the last corpus scanned.
type FiltersApplied struct {
	Query         string `json:"query,omitempty"`
	CorpusName    string `json:"corpus_name,omitempty"`
	CharacterName string `json:"character_name,omitempty"`
	Country       string `json:"country,omitempty"`
	Language      string `json:"language,omitempty"`
	Author        string `json:"author,omitempty"`
	YearRange     string `json:"year_range,omitempty"`
	GenderFilter  string `json:"gender_filter,omitempty"`
}

type SearchHit struct {
	Corpus string      `json:"corpus"`
	Play   dracor.Play `json:"play"`
}

type TopResult struct {
	Corpus     string      `json:"corpus"`
	PlayName   string      `json:"play_name"`
	Title      string      `json:"title"`
	Author     string      `json:"author,omitempty"`
	Year       dracor.Year `json:"year,omitempty"`
	Language   string      `json:"language,omitempty"`
	Characters int         `json:"characters"`
	Link       string      `json:"link"`
}

type SearchResult struct {
	Count          int            `json:"count"`
	Results        []SearchHit    `json:"results"`
	TopResults     []TopResult    `json:"top_results"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

const maxTopResults = 5

// SearchPlays scans the selected corpora and returns every play matching all
// specified filters. A failure listing the corpora aborts the search; a
// failure fetching one corpus's plays or one play's characters excludes that
// corpus or play without failing the aggregate.
func SearchPlays(ctx context.Context, f Fetcher, filters SearchFilters) (SearchResult, error) {
	corpora, err := f.Corpora(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Results:        []SearchHit{},
		TopResults:     []TopResult{},
		FiltersApplied: filters.applied(),
	}

	for _, corpus := range corpora {
		if filters.CorpusName != "" && !containsFold(corpus.Name, filters.CorpusName) {
			continue
		}

		plays, err := f.Plays(ctx, corpus.Name)
		if err != nil {
			continue
		}

		for _, play := range plays {
			if !filters.matches(ctx, f, corpus.Name, play) {
				continue
			}

			result.Results = append(result.Results, SearchHit{Corpus: corpus.Name, Play: play})

			if len(result.TopResults) < maxTopResults {
				detail, err := f.Play(ctx, corpus.Name, play.Name)
				if err != nil {
					continue
				}
				result.TopResults = append(result.TopResults, TopResult{
					Corpus:     corpus.Name,
					PlayName:   play.Name,
					Title:      play.Title,
					Author:     firstAuthor(play),
					Year:       play.YearNormalized,
					Language:   play.OriginalLanguage,
					Characters: len(detail.Characters),
					Link:       fmt.Sprintf("https://dracor.org/%s/%s", corpus.Name, play.Name),
				})
			}
		}
	}

	result.Count = len(result.Results)
	return result, nil
}

func (sf SearchFilters) applied() FiltersApplied {
	applied := FiltersApplied{
		Query:         sf.Query,
		CorpusName:    sf.CorpusName,
		CharacterName: sf.CharacterName,
		Country:       sf.Country,
		Language:      sf.Language,
		Author:        sf.Author,
		GenderFilter:  sf.GenderFilter,
	}
	switch {
	case sf.YearFrom != 0 && sf.YearTo != 0:
		applied.YearRange = fmt.Sprintf("%d-%d", sf.YearFrom, sf.YearTo)
	case sf.YearFrom != 0:
		applied.YearRange = fmt.Sprintf("%d-", sf.YearFrom)
	case sf.YearTo != 0:
		applied.YearRange = fmt.Sprintf("-%d", sf.YearTo)
	}
	return applied
}

func (sf SearchFilters) matches(ctx context.Context, f Fetcher, corpusName string, play dracor.Play) bool {
	if sf.Query != "" {
		var sb strings.Builder
		sb.WriteString(play.Title)
		for _, a := range play.Authors {
			sb.WriteString(" ")
			sb.WriteString(a.Name)
		}
		sb.WriteString(" ")
		sb.WriteString(play.Subtitle)
		sb.WriteString(" ")
		sb.WriteString(play.OriginalTitle)
		if !containsFold(sb.String(), sf.Query) {
			return false
		}
	}

	if sf.Country != "" {
		var sb strings.Builder
		sb.WriteString(play.WrittenIn)
		sb.WriteString(" ")
		sb.WriteString(play.PrintedIn)
		for _, a := range play.Authors {
			sb.WriteString(" ")
			sb.WriteString(a.Country)
		}
		if !containsFold(sb.String(), sf.Country) {
			return false
		}
	}

	if sf.Language != "" && !containsFold(play.OriginalLanguage, sf.Language) {
		return false
	}

	if sf.Author != "" {
		found := false
		for _, a := range play.Authors {
			if containsFold(a.Name, sf.Author) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if sf.YearFrom != 0 || sf.YearTo != 0 {
		// Undated plays pass the range filter: unknown is not excluded.
		if year, ok := play.ResolvedYear(); ok {
			if sf.YearFrom != 0 && year < sf.YearFrom {
				return false
			}
			if sf.YearTo != 0 && year > sf.YearTo {
				return false
			}
		}
	}

	// The character and gender filters share one characters fetch. A fetch
	// failure excludes the play from a character-name search but lets it
	// pass a gender search, matching the adapter's historical asymmetry.
	if sf.CharacterName != "" || sf.GenderFilter != "" {
		characters, err := f.Characters(ctx, corpusName, play.Name)

		if sf.CharacterName != "" {
			if err != nil {
				return false
			}
			found := false
			for _, ch := range characters {
				if containsFold(ch.Name, sf.CharacterName) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}

		if sf.GenderFilter != "" && err == nil && !matchesGenderFilter(characters, sf.GenderFilter) {
			return false
		}
	}

	return true
}

func matchesGenderFilter(characters []dracor.Character, filter string) bool {
	var male, female int
	for _, ch := range characters {
		switch ch.Gender {
		case "MALE":
			male++
		case "FEMALE":
			female++
		}
	}
	total := male + female
	if total == 0 {
		// Plays without gendered characters always pass.
		return true
	}

	ratio := float64(female) / float64(total)
	switch filter {
	case GenderFemaleDominated:
		return ratio > 0.5
	case GenderMaleDominated:
		return ratio < 0.5
	case GenderBalanced:
		return ratio >= 0.4 && ratio <= 0.6
	default:
		return true
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
