package drama

import (
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"dracormcp/internal/dracor"
)

type Relation struct {
	Source   string `json:"source"`
	SourceID string `json:"source_id"`
	Target   string `json:"target"`
	TargetID string `json:"target_id"`
	Weight   int    `json:"weight"`
}

type FormalRelation struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type PlayRef struct {
	Title  string      `json:"title"`
	Author string      `json:"author,omitempty"`
	Year   dracor.Year `json:"year,omitempty"`
}

type RelationsAnalysis struct {
	Play               PlayRef          `json:"play"`
	TotalCharacters    int              `json:"totalCharacters"`
	TotalRelations     int              `json:"totalRelations"`
	StrongestRelations []Relation       `json:"strongestRelations"`
	WeakestRelations   []Relation       `json:"weakestRelations"`
	FormalRelations    []FormalRelation `json:"formalRelations"`
	Metrics            map[string]any   `json:"metrics"`
}

const relationCutoff = 10

// CharacterRelations reconstructs the co-occurrence graph of a play from the
// upstream network CSV and resolves character ids to names. The explicit
// relations CSV is best-effort: plays without one simply get an empty
// formalRelations list.
func CharacterRelations(ctx context.Context, f Fetcher, corpus, playName string) (RelationsAnalysis, error) {
	if err := dracor.ValidateName(corpus, "corpus_name"); err != nil {
		return RelationsAnalysis{}, err
	}
	if err := dracor.ValidateName(playName, "play_name"); err != nil {
		return RelationsAnalysis{}, err
	}

	play, err := f.Play(ctx, corpus, playName)
	if err != nil {
		return RelationsAnalysis{}, err
	}
	characters, err := f.Characters(ctx, corpus, playName)
	if err != nil {
		return RelationsAnalysis{}, err
	}
	networkCSV, err := f.NetworkCSV(ctx, corpus, playName)
	if err != nil {
		return RelationsAnalysis{}, err
	}

	names := make(map[string]string, len(characters))
	for _, ch := range characters {
		names[ch.ID] = ch.Name
	}

	relations := parseNetworkCSV(networkCSV, names)
	sort.SliceStable(relations, func(i, j int) bool {
		return relations[i].Weight > relations[j].Weight
	})

	strongest := relations
	if len(strongest) > relationCutoff {
		strongest = strongest[:relationCutoff]
	}
	weakest := relations
	if len(relations) >= relationCutoff {
		weakest = relations[len(relations)-relationCutoff:]
	}

	formal := []FormalRelation{}
	if relCSV, err := f.RelationsCSV(ctx, corpus, playName); err == nil {
		formal = parseRelationsCSV(relCSV, names)
	}

	metrics, err := f.PlayMetrics(ctx, corpus, playName)
	if err != nil {
		return RelationsAnalysis{}, err
	}

	return RelationsAnalysis{
		Play: PlayRef{
			Title:  play.Title,
			Author: firstAuthor(play),
			Year:   play.YearNormalized,
		},
		TotalCharacters:    len(characters),
		TotalRelations:     len(relations),
		StrongestRelations: strongest,
		WeakestRelations:   weakest,
		FormalRelations:    formal,
		Metrics:            metrics,
	}, nil
}

// parseNetworkCSV reads co-occurrence rows of the form
// source,type,target,weight. The header row is skipped, short rows are
// ignored, and a non-numeric weight counts as 0. Unresolvable ids keep the
// raw id as the display name.
func parseNetworkCSV(data string, names map[string]string) []Relation {
	rows := readCSV(data)
	relations := []Relation{}
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		source, target := row[0], row[2]
		weight, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			weight = 0
		}
		relations = append(relations, Relation{
			Source:   resolveName(names, source),
			SourceID: source,
			Target:   resolveName(names, target),
			TargetID: target,
			Weight:   weight,
		})
	}
	return relations
}

func parseRelationsCSV(data string, names map[string]string) []FormalRelation {
	rows := readCSV(data)
	relations := []FormalRelation{}
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		relations = append(relations, FormalRelation{
			Source: resolveName(names, row[0]),
			Target: resolveName(names, row[2]),
			Type:   row[3],
		})
	}
	return relations
}

func readCSV(data string) [][]string {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil
	}
	return rows
}

func resolveName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}
