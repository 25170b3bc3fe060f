package drama

import (
	"context"
)

type CharacterMatch struct {
	Corpus          string `json:"corpus"`
	Play            string `json:"play"`
	Character       string `json:"character"`
	Gender          string `json:"gender,omitempty"`
	NumOfSpeechActs int    `json:"numOfSpeechActs"`
	NumOfWords      int    `json:"numOfWords"`
}

type CharacterMatches struct {
	Matches []CharacterMatch `json:"matches"`
}

// FindCharacter scans every play in every corpus for characters whose name
// contains the given substring, case-insensitively. One character-list fetch
// per play, fully sequential; a failure fetching one play's characters skips
// that play only, while a corpus listing failure aborts.
func FindCharacter(ctx context.Context, f Fetcher, characterName string) (CharacterMatches, error) {
	corpora, err := f.Corpora(ctx)
	if err != nil {
		return CharacterMatches{}, err
	}

	matches := CharacterMatches{Matches: []CharacterMatch{}}
	for _, corpus := range corpora {
		plays, err := f.Plays(ctx, corpus.Name)
		if err != nil {
			return CharacterMatches{}, err
		}

		for _, play := range plays {
			characters, err := f.Characters(ctx, corpus.Name, play.Name)
			if err != nil {
				continue
			}
			for _, ch := range characters {
				if !containsFold(ch.Name, characterName) {
					continue
				}
				matches.Matches = append(matches.Matches, CharacterMatch{
					Corpus:          corpus.Name,
					Play:            play.Title,
					Character:       ch.Name,
					Gender:          ch.Gender,
					NumOfSpeechActs: ch.NumOfSpeechActs,
					NumOfWords:      ch.NumOfWords,
				})
			}
		}
	}
	return matches, nil
}
