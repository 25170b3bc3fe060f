package drama

import (
	"context"
	"math"
	"sort"

	"dracormcp/internal/dracor"
)

type ActInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title,omitempty"`
}

type SceneInfo struct {
	Number   int      `json:"number"`
	Title    string   `json:"title,omitempty"`
	Speakers []string `json:"speakers"`
}

type CharacterStats struct {
	Total    int            `json:"total"`
	ByGender map[string]int `json:"byGender"`
}

type Speaking struct {
	Character  string  `json:"character"`
	Words      int     `json:"words"`
	Percentage float64 `json:"percentage"`
}

type Structure struct {
	Title                string         `json:"title"`
	Authors              []string       `json:"authors"`
	Year                 dracor.Year    `json:"year,omitempty"`
	YearWritten          dracor.Year    `json:"yearWritten,omitempty"`
	YearPrinted          dracor.Year    `json:"yearPrinted,omitempty"`
	YearPremiered        dracor.Year    `json:"yearPremiered,omitempty"`
	Acts                 []ActInfo      `json:"acts"`
	Scenes               []SceneInfo    `json:"scenes"`
	NumOfActs            int            `json:"numOfActs"`
	NumOfScenes          int            `json:"numOfScenes"`
	Segments             any            `json:"segments,omitempty"`
	Dialogues            any            `json:"dialogues,omitempty"`
	WordCount            int            `json:"wordCount"`
	Characters           CharacterStats `json:"characters"`
	SpeakingDistribution []Speaking     `json:"speakingDistribution"`
}

const maxSpeakingEntries = 10

// PlayStructure summarizes acts, scenes, gender distribution and speaking
// shares of a play. Segment and dialogue counts come from the upstream
// metrics payload and are passed through untyped.
func PlayStructure(ctx context.Context, f Fetcher, corpus, playName string) (Structure, error) {
	if err := dracor.ValidateName(corpus, "corpus_name"); err != nil {
		return Structure{}, err
	}
	if err := dracor.ValidateName(playName, "play_name"); err != nil {
		return Structure{}, err
	}

	play, err := f.Play(ctx, corpus, playName)
	if err != nil {
		return Structure{}, err
	}
	metrics, err := f.PlayMetrics(ctx, corpus, playName)
	if err != nil {
		return Structure{}, err
	}
	characters, err := f.Characters(ctx, corpus, playName)
	if err != nil {
		return Structure{}, err
	}

	acts := []ActInfo{}
	scenes := []SceneInfo{}
	for _, seg := range play.Segments {
		switch seg.Type {
		case "act":
			acts = append(acts, ActInfo{Number: seg.Number, Title: seg.Title})
		case "scene":
			speakers := seg.Speakers
			if speakers == nil {
				speakers = []string{}
			}
			scenes = append(scenes, SceneInfo{Number: seg.Number, Title: seg.Title, Speakers: speakers})
		}
	}

	// Genders outside MALE/FEMALE are dropped from the tally, not folded
	// into UNKNOWN. UNKNOWN only counts characters explicitly tagged so.
	byGender := map[string]int{"MALE": 0, "FEMALE": 0, "UNKNOWN": 0}
	for _, ch := range characters {
		if _, ok := byGender[ch.Gender]; ok {
			byGender[ch.Gender]++
		}
	}

	totalWords := 0
	for _, ch := range characters {
		totalWords += ch.NumOfWords
	}

	distribution := []Speaking{}
	if totalWords > 0 {
		for _, ch := range characters {
			distribution = append(distribution, Speaking{
				Character:  ch.Name,
				Words:      ch.NumOfWords,
				Percentage: roundTo2(float64(ch.NumOfWords) / float64(totalWords) * 100),
			})
		}
		sort.SliceStable(distribution, func(i, j int) bool {
			return distribution[i].Words > distribution[j].Words
		})
		if len(distribution) > maxSpeakingEntries {
			distribution = distribution[:maxSpeakingEntries]
		}
	}

	authors := []string{}
	for _, a := range play.Authors {
		authors = append(authors, a.Name)
	}

	return Structure{
		Title:                play.Title,
		Authors:              authors,
		Year:                 play.YearNormalized,
		YearWritten:          play.YearWritten,
		YearPrinted:          play.YearPrinted,
		YearPremiered:        play.YearPremiered,
		Acts:                 acts,
		Scenes:               scenes,
		NumOfActs:            len(acts),
		NumOfScenes:          len(scenes),
		Segments:             metrics["segments"],
		Dialogues:            metrics["dialogues"],
		WordCount:            totalWords,
		Characters:           CharacterStats{Total: len(characters), ByGender: byGender},
		SpeakingDistribution: distribution,
	}, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
