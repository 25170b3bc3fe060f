package drama

import (
	"context"
	"errors"

	"dracormcp/internal/dracor"
)

var errUpstream = errors.New("upstream unavailable")

// mockFetcher serves canned responses keyed by "corpus/play" and records
// how often each play's character list was fetched.
type mockFetcher struct {
	corpora    []dracor.Corpus
	corporaErr error

	plays    map[string][]dracor.Play
	playsErr map[string]error

	playDetail map[string]dracor.Play
	playErr    map[string]error

	metrics    map[string]map[string]any
	metricsErr map[string]error

	characters    map[string][]dracor.Character
	charactersErr map[string]error

	networkCSV    map[string]string
	networkErr    map[string]error
	relationsCSV  map[string]string
	relationsErr  map[string]error
	teiText       map[string]string
	teiErr        map[string]error
	fullText      map[string]string
	fullTextErr   map[string]error

	characterCalls map[string]int
}

func key(corpus, play string) string { return corpus + "/" + play }

func (m *mockFetcher) Corpora(ctx context.Context) ([]dracor.Corpus, error) {
	return m.corpora, m.corporaErr
}

func (m *mockFetcher) Plays(ctx context.Context, corpus string) ([]dracor.Play, error) {
	if err := m.playsErr[corpus]; err != nil {
		return nil, err
	}
	return m.plays[corpus], nil
}

func (m *mockFetcher) Play(ctx context.Context, corpus, play string) (dracor.Play, error) {
	if err := m.playErr[key(corpus, play)]; err != nil {
		return dracor.Play{}, err
	}
	return m.playDetail[key(corpus, play)], nil
}

func (m *mockFetcher) PlayMetrics(ctx context.Context, corpus, play string) (map[string]any, error) {
	if err := m.metricsErr[key(corpus, play)]; err != nil {
		return nil, err
	}
	return m.metrics[key(corpus, play)], nil
}

func (m *mockFetcher) Characters(ctx context.Context, corpus, play string) ([]dracor.Character, error) {
	if m.characterCalls == nil {
		m.characterCalls = map[string]int{}
	}
	m.characterCalls[key(corpus, play)]++
	if err := m.charactersErr[key(corpus, play)]; err != nil {
		return nil, err
	}
	return m.characters[key(corpus, play)], nil
}

func (m *mockFetcher) NetworkCSV(ctx context.Context, corpus, play string) (string, error) {
	if err := m.networkErr[key(corpus, play)]; err != nil {
		return "", err
	}
	return m.networkCSV[key(corpus, play)], nil
}

func (m *mockFetcher) RelationsCSV(ctx context.Context, corpus, play string) (string, error) {
	if err := m.relationsErr[key(corpus, play)]; err != nil {
		return "", err
	}
	return m.relationsCSV[key(corpus, play)], nil
}

func (m *mockFetcher) TEI(ctx context.Context, corpus, play string) (string, error) {
	if err := m.teiErr[key(corpus, play)]; err != nil {
		return "", err
	}
	return m.teiText[key(corpus, play)], nil
}

func (m *mockFetcher) FullText(ctx context.Context, corpus, play string) (string, error) {
	if err := m.fullTextErr[key(corpus, play)]; err != nil {
		return "", err
	}
	return m.fullText[key(corpus, play)], nil
}
