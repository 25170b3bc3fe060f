package drama

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dracormcp/internal/dracor"
)

func structureFixture() *mockFetcher {
	return &mockFetcher{
		playDetail: map[string]dracor.Play{
			"shake/hamlet": {
				Title:          "Hamlet",
				Authors:        []dracor.Author{{Name: "William Shakespeare"}},
				YearNormalized: 1601,
				YearWritten:    1600,
				Segments: []dracor.Segment{
					{Type: "act", Number: 1, Title: "Act 1"},
					{Type: "scene", Number: 1, Title: "Scene 1", Speakers: []string{"bernardo", "francisco"}},
					{Type: "scene", Number: 2, Title: "Scene 2"},
					{Type: "act", Number: 2},
					{Type: "prologue", Number: 0},
				},
			},
		},
		metrics: map[string]map[string]any{
			"shake/hamlet": {"segments": float64(5), "dialogues": float64(100)},
		},
		characters: map[string][]dracor.Character{
			"shake/hamlet": {
				{ID: "hamlet", Name: "Hamlet", Gender: "MALE", NumOfWords: 600},
				{ID: "ophelia", Name: "Ophelia", Gender: "FEMALE", NumOfWords: 300},
				{ID: "ghost", Name: "Ghost", Gender: "UNKNOWN", NumOfWords: 100},
				{ID: "chorus", Name: "Chorus", Gender: "GROUP", NumOfWords: 0},
			},
		},
	}
}

func TestPlayStructure(t *testing.T) {
	f := structureFixture()

	structure, err := PlayStructure(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)

	assert.Equal(t, "Hamlet", structure.Title)
	assert.Equal(t, []string{"William Shakespeare"}, structure.Authors)
	assert.Equal(t, dracor.Year(1601), structure.Year)
	assert.Equal(t, dracor.Year(1600), structure.YearWritten)

	require.Len(t, structure.Acts, 2)
	require.Len(t, structure.Scenes, 2)
	assert.Equal(t, 2, structure.NumOfActs)
	assert.Equal(t, 2, structure.NumOfScenes)
	assert.Equal(t, []string{"bernardo", "francisco"}, structure.Scenes[0].Speakers)
	assert.Equal(t, []string{}, structure.Scenes[1].Speakers)

	assert.Equal(t, float64(5), structure.Segments)
	assert.Equal(t, float64(100), structure.Dialogues)
	assert.Equal(t, 1000, structure.WordCount)

	assert.Equal(t, 4, structure.Characters.Total)

	require.Len(t, structure.SpeakingDistribution, 4)
	assert.Equal(t, "Hamlet", structure.SpeakingDistribution[0].Character)
	assert.Equal(t, 60.0, structure.SpeakingDistribution[0].Percentage)
	assert.Equal(t, 30.0, structure.SpeakingDistribution[1].Percentage)
}

func TestPlayStructure_GenderOutsideBuckets(t *testing.T) {
	f := structureFixture()

	structure, err := PlayStructure(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)

	// GROUP is tallied nowhere: the three fixed buckets only count exact
	// matches, so total exceeds the bucket sum.
	assert.Equal(t, map[string]int{"MALE": 1, "FEMALE": 1, "UNKNOWN": 1}, structure.Characters.ByGender)
}

func TestPlayStructure_ZeroWordsEmptyDistribution(t *testing.T) {
	f := structureFixture()
	f.characters["shake/hamlet"] = []dracor.Character{
		{ID: "a", Name: "A", Gender: "MALE"},
		{ID: "b", Name: "B", Gender: "FEMALE"},
	}

	structure, err := PlayStructure(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)

	assert.Equal(t, 0, structure.WordCount)
	assert.Empty(t, structure.SpeakingDistribution)
	assert.NotNil(t, structure.SpeakingDistribution)
}

func TestPlayStructure_PercentageRounding(t *testing.T) {
	f := structureFixture()
	f.characters["shake/hamlet"] = []dracor.Character{
		{ID: "a", Name: "A", NumOfWords: 1},
		{ID: "b", Name: "B", NumOfWords: 2},
	}

	structure, err := PlayStructure(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)

	require.Len(t, structure.SpeakingDistribution, 2)
	assert.Equal(t, 66.67, structure.SpeakingDistribution[0].Percentage)
	assert.Equal(t, 33.33, structure.SpeakingDistribution[1].Percentage)
}

func TestPlayStructure_FetchFailureAborts(t *testing.T) {
	f := structureFixture()
	f.charactersErr = map[string]error{"shake/hamlet": errUpstream}

	_, err := PlayStructure(context.Background(), f, "shake", "hamlet")
	require.ErrorIs(t, err, errUpstream)
}
