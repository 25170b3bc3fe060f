package drama

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dracormcp/internal/dracor"
)

func searchFixture() *mockFetcher {
	return &mockFetcher{
		corpora: []dracor.Corpus{{Name: "shake"}, {Name: "ger"}},
		plays: map[string][]dracor.Play{
			"shake": {
				{
					Name:             "hamlet",
					Title:            "Hamlet",
					Authors:          []dracor.Author{{Name: "William Shakespeare", Country: "England"}},
					YearNormalized:   1601,
					OriginalLanguage: "English",
				},
				{
					Name:             "romeo-and-juliet",
					Title:            "Romeo and Juliet",
					Authors:          []dracor.Author{{Name: "William Shakespeare", Country: "England"}},
					YearWritten:      1595,
					OriginalLanguage: "English",
				},
				{
					Name:    "undated-play",
					Title:   "An Undated Interlude",
					Authors: []dracor.Author{{Name: "Anonymous"}},
				},
			},
			"ger": {
				{
					Name:             "emilia-galotti",
					Title:            "Emilia Galotti",
					Authors:          []dracor.Author{{Name: "Gotthold Ephraim Lessing", Country: "Germany"}},
					YearNormalized:   1772,
					OriginalLanguage: "German",
				},
			},
		},
		playDetail: map[string]dracor.Play{},
		characters: map[string][]dracor.Character{
			"shake/hamlet": {
				{ID: "hamlet", Name: "Hamlet", Gender: "MALE"},
				{ID: "ophelia", Name: "Ophelia", Gender: "FEMALE"},
				{ID: "claudius", Name: "Claudius", Gender: "MALE"},
			},
			"shake/romeo-and-juliet": {
				{ID: "romeo", Name: "Romeo", Gender: "MALE"},
				{ID: "juliet", Name: "Juliet", Gender: "FEMALE"},
			},
		},
	}
}

func TestSearchPlays_CorpusSubstringFilter(t *testing.T) {
	f := searchFixture()

	result, err := SearchPlays(context.Background(), f, SearchFilters{CorpusName: "shake"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Count)
	for _, hit := range result.Results {
		assert.Contains(t, hit.Corpus, "shake")
	}
	assert.Equal(t, "shake", result.FiltersApplied.CorpusName)
}

func TestSearchPlays_FiltersAppliedEchoesInput(t *testing.T) {
	f := searchFixture()

	result, err := SearchPlays(context.Background(), f, SearchFilters{
		Query:      "hamlet",
		CorpusName: "sh",
		YearFrom:   1595,
		YearTo:     1650,
	})
	require.NoError(t, err)

	// The echo must reflect the caller's values even though the scan walked
	// other corpus names.
	assert.Equal(t, "sh", result.FiltersApplied.CorpusName)
	assert.Equal(t, "hamlet", result.FiltersApplied.Query)
	assert.Equal(t, "1595-1650", result.FiltersApplied.YearRange)
}

func TestSearchPlays_YearRangeKeepsUndatedPlays(t *testing.T) {
	f := searchFixture()

	result, err := SearchPlays(context.Background(), f, SearchFilters{
		CorpusName: "shake",
		YearFrom:   1595,
		YearTo:     1600,
	})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, hit := range result.Results {
		names[hit.Play.Name] = true
		if year, ok := hit.Play.ResolvedYear(); ok {
			assert.NotZero(t, year)
			assert.GreaterOrEqual(t, year, 1595)
			assert.LessOrEqual(t, year, 1600)
		}
	}
	assert.True(t, names["romeo-and-juliet"])
	assert.True(t, names["undated-play"], "plays without year fields pass the range filter")
	assert.False(t, names["hamlet"])
}

func TestSearchPlays_QueryMatchesTitleAndAuthor(t *testing.T) {
	f := searchFixture()

	byTitle, err := SearchPlays(context.Background(), f, SearchFilters{Query: "galotti"})
	require.NoError(t, err)
	require.Equal(t, 1, byTitle.Count)
	assert.Equal(t, "emilia-galotti", byTitle.Results[0].Play.Name)

	byAuthor, err := SearchPlays(context.Background(), f, SearchFilters{Query: "shakespeare"})
	require.NoError(t, err)
	assert.Equal(t, 3, byAuthor.Count)
}

func TestSearchPlays_CountryLanguageAuthor(t *testing.T) {
	f := searchFixture()

	result, err := SearchPlays(context.Background(), f, SearchFilters{Country: "germany"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "ger", result.Results[0].Corpus)

	result, err = SearchPlays(context.Background(), f, SearchFilters{Language: "english"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	result, err = SearchPlays(context.Background(), f, SearchFilters{Author: "lessing"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestSearchPlays_CharacterFilterSharesFetch(t *testing.T) {
	f := searchFixture()

	result, err := SearchPlays(context.Background(), f, SearchFilters{
		CorpusName:    "shake",
		CharacterName: "ophelia",
		GenderFilter:  GenderMaleDominated,
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.Count)
	assert.Equal(t, "hamlet", result.Results[0].Play.Name)
	// Character and gender filters must share a single characters fetch.
	assert.Equal(t, 1, f.characterCalls["shake/hamlet"])
}

func TestSearchPlays_GenderFilter(t *testing.T) {
	f := searchFixture()

	balanced, err := SearchPlays(context.Background(), f, SearchFilters{
		CorpusName:   "shake",
		GenderFilter: GenderBalanced,
	})
	require.NoError(t, err)
	names := map[string]bool{}
	for _, hit := range balanced.Results {
		names[hit.Play.Name] = true
	}
	// romeo-and-juliet is 1/2 female; hamlet is 1/3.
	assert.True(t, names["romeo-and-juliet"])
	assert.False(t, names["hamlet"])
	// A play with no gendered characters always passes.
	assert.True(t, names["undated-play"])
}

func TestSearchPlays_CharacterFetchFailure(t *testing.T) {
	f := searchFixture()
	f.charactersErr = map[string]error{"shake/hamlet": errUpstream}

	// Character filter: the play with the failing fetch is excluded.
	result, err := SearchPlays(context.Background(), f, SearchFilters{
		CorpusName:    "shake",
		CharacterName: "hamlet",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)

	// Gender filter alone: the same failure leaves the play in.
	result, err = SearchPlays(context.Background(), f, SearchFilters{
		CorpusName:   "shake",
		GenderFilter: GenderFemaleDominated,
	})
	require.NoError(t, err)
	names := map[string]bool{}
	for _, hit := range result.Results {
		names[hit.Play.Name] = true
	}
	assert.True(t, names["hamlet"])
}

func TestSearchPlays_CorporaFailureAborts(t *testing.T) {
	f := &mockFetcher{corporaErr: errUpstream}

	_, err := SearchPlays(context.Background(), f, SearchFilters{})
	require.ErrorIs(t, err, errUpstream)
}

func TestSearchPlays_CorpusPlaysFailureSkipsCorpus(t *testing.T) {
	f := searchFixture()
	f.playsErr = map[string]error{"shake": errUpstream}

	result, err := SearchPlays(context.Background(), f, SearchFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "ger", result.Results[0].Corpus)
}

func TestSearchPlays_TopResultsCapped(t *testing.T) {
	plays := make([]dracor.Play, 8)
	for i := range plays {
		plays[i] = dracor.Play{Name: string(rune('a' + i)), Title: "Play"}
	}
	f := &mockFetcher{
		corpora:    []dracor.Corpus{{Name: "big"}},
		plays:      map[string][]dracor.Play{"big": plays},
		playDetail: map[string]dracor.Play{},
	}

	result, err := SearchPlays(context.Background(), f, SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Count)
	assert.Len(t, result.TopResults, 5)
	assert.Equal(t, "https://dracor.org/big/a", result.TopResults[0].Link)
}
