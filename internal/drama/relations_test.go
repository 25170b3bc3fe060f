package drama

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dracormcp/internal/dracor"
)

func relationsFixture() *mockFetcher {
	return &mockFetcher{
		playDetail: map[string]dracor.Play{
			"shake/hamlet": {Title: "Hamlet", Authors: []dracor.Author{{Name: "William Shakespeare"}}, YearNormalized: 1601},
		},
		characters: map[string][]dracor.Character{
			"shake/hamlet": {
				{ID: "hamlet", Name: "Hamlet"},
				{ID: "ophelia", Name: "Ophelia"},
				{ID: "claudius", Name: "Claudius"},
			},
		},
		networkCSV: map[string]string{
			"shake/hamlet": "Source,Type,Target,Weight\n" +
				"hamlet,Undirected,ophelia,12\n" +
				"hamlet,Undirected,claudius,30\n" +
				"ophelia,Undirected,claudius,4\n" +
				"hamlet,Undirected,ghost,bogus\n",
		},
		relationsCSV: map[string]string{
			"shake/hamlet": "Source,Type,Target,Label\n" +
				"hamlet,Directed,ophelia,lover\n",
		},
		metrics: map[string]map[string]any{
			"shake/hamlet": {"segments": float64(20)},
		},
	}
}

func TestCharacterRelations(t *testing.T) {
	f := relationsFixture()

	analysis, err := CharacterRelations(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)

	assert.Equal(t, "Hamlet", analysis.Play.Title)
	assert.Equal(t, 3, analysis.TotalCharacters)
	assert.Equal(t, 4, analysis.TotalRelations)

	// Sorted descending by weight.
	weights := []int{}
	for _, rel := range analysis.StrongestRelations {
		weights = append(weights, rel.Weight)
	}
	assert.Equal(t, []int{30, 12, 4, 0}, weights)

	// Names resolved via the character lookup, raw id kept when unresolved.
	assert.Equal(t, "Hamlet", analysis.StrongestRelations[0].Source)
	assert.Equal(t, "Claudius", analysis.StrongestRelations[0].Target)
	assert.Equal(t, "hamlet", analysis.StrongestRelations[0].SourceID)
	last := analysis.StrongestRelations[3]
	assert.Equal(t, "ghost", last.Target)
	assert.Equal(t, 0, last.Weight, "non-numeric weight defaults to 0")

	// Fewer than 10 relations: weakest is the whole list.
	assert.Len(t, analysis.WeakestRelations, 4)

	require.Len(t, analysis.FormalRelations, 1)
	assert.Equal(t, FormalRelation{Source: "Hamlet", Target: "Ophelia", Type: "lover"}, analysis.FormalRelations[0])

	assert.Equal(t, float64(20), analysis.Metrics["segments"])
}

func TestCharacterRelations_CutoffsAtTen(t *testing.T) {
	f := relationsFixture()
	var sb strings.Builder
	sb.WriteString("Source,Type,Target,Weight\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&sb, "c%d,Undirected,c%d,%d\n", i, i+1, i)
	}
	f.networkCSV["shake/hamlet"] = sb.String()

	analysis, err := CharacterRelations(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)

	assert.Equal(t, 25, analysis.TotalRelations)
	require.Len(t, analysis.StrongestRelations, 10)
	assert.Equal(t, 25, analysis.StrongestRelations[0].Weight)
	assert.Equal(t, 16, analysis.StrongestRelations[9].Weight)
	require.Len(t, analysis.WeakestRelations, 10)
	assert.Equal(t, 10, analysis.WeakestRelations[0].Weight)
	assert.Equal(t, 1, analysis.WeakestRelations[9].Weight)
}

func TestCharacterRelations_FormalRelationsBestEffort(t *testing.T) {
	f := relationsFixture()
	f.relationsErr = map[string]error{"shake/hamlet": errUpstream}

	analysis, err := CharacterRelations(context.Background(), f, "shake", "hamlet")
	require.NoError(t, err)
	assert.Empty(t, analysis.FormalRelations)
	assert.NotNil(t, analysis.FormalRelations)
}

func TestCharacterRelations_RequiredFetchFailureAborts(t *testing.T) {
	f := relationsFixture()
	f.networkErr = map[string]error{"shake/hamlet": errUpstream}

	_, err := CharacterRelations(context.Background(), f, "shake", "hamlet")
	require.ErrorIs(t, err, errUpstream)
}

func TestCharacterRelations_ValidatesNames(t *testing.T) {
	_, err := CharacterRelations(context.Background(), &mockFetcher{}, "shake", "ham let")
	require.ErrorIs(t, err, dracor.ErrInvalidName)
}

func TestParseNetworkCSV_SkipsHeaderAndShortRows(t *testing.T) {
	relations := parseNetworkCSV("Source,Type,Target,Weight\nonly,two\na,Undirected,b,5\n", nil)
	require.Len(t, relations, 1)
	assert.Equal(t, Relation{Source: "a", SourceID: "a", Target: "b", TargetID: "b", Weight: 5}, relations[0])
}

func TestParseNetworkCSV_Empty(t *testing.T) {
	assert.Empty(t, parseNetworkCSV("", nil))
	assert.Empty(t, parseNetworkCSV("Source,Type,Target,Weight\n", nil))
}
