package dracor

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Year is a publication or premiere year as reported by DraCor. The API is
// inconsistent about the encoding: some corpora report years as JSON numbers,
// others as strings, sometimes with non-numeric qualifiers ("ca. 1600").
// A zero Year means the field was absent or not parseable.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*y = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*y = 0
			return nil
		}
		*y = Year(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

type Author struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

type Segment struct {
	Type     string   `json:"type"`
	Number   int      `json:"number"`
	Title    string   `json:"title,omitempty"`
	Speakers []string `json:"speakers,omitempty"`
}

type Character struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Gender          string `json:"gender,omitempty"`
	NumOfSpeechActs int    `json:"numOfSpeechActs,omitempty"`
	NumOfWords      int    `json:"numOfWords,omitempty"`
}

type Play struct {
	ID               string      `json:"id,omitempty"`
	Name             string      `json:"name"`
	Title            string      `json:"title"`
	Subtitle         string      `json:"subtitle,omitempty"`
	OriginalTitle    string      `json:"originalTitle,omitempty"`
	Authors          []Author    `json:"authors,omitempty"`
	YearNormalized   Year        `json:"yearNormalized,omitempty"`
	YearWritten      Year        `json:"yearWritten,omitempty"`
	YearPrinted      Year        `json:"yearPrinted,omitempty"`
	YearPremiered    Year        `json:"yearPremiered,omitempty"`
	OriginalLanguage string      `json:"originalLanguage,omitempty"`
	WrittenIn        string      `json:"writtenIn,omitempty"`
	PrintedIn        string      `json:"printedIn,omitempty"`
	Segments         []Segment   `json:"segments,omitempty"`
	Characters       []Character `json:"characters,omitempty"`
}

// ResolvedYear returns the first present of yearNormalized, yearWritten and
// yearPrinted. ok is false when none is present; undated plays must not be
// treated as year zero by range filters.
func (p Play) ResolvedYear() (int, bool) {
	for _, y := range []Year{p.YearNormalized, p.YearWritten, p.YearPrinted} {
		if y != 0 {
			return int(y), true
		}
	}
	return 0, false
}

type Corpus struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Plays       []Play `json:"plays,omitempty"`
}
