// Package dracor is a thin client for the DraCor (Drama Corpora Project)
// REST API v1. Each accessor maps to one upstream endpoint, validates its
// identifier arguments, and performs a single bounded-timeout GET. Nothing
// is cached or retried; two calls may observe different upstream states.
package dracor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public DraCor API, overridable via configuration.
const DefaultBaseURL = "https://dracor.org/api/v1"

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 30 * time.Second

// Markers used when synthesizing a combined full-text document from the
// spoken-text and stage-directions endpoints. Analysis code counts these
// literal headers, so they must not change independently.
const (
	DialogueHeader        = "DIALOGUE:\n\n"
	StageDirectionsHeader = "\n\nSTAGE DIRECTIONS:\n\n"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, accept string) (*http.Response, error) {
	u := c.baseURL + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", accept)
	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", path, res.Status)
	}
	return res, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	res, err := c.get(ctx, path, params, "application/json")
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getText(ctx context.Context, path string) (string, error) {
	res, err := c.get(ctx, path, nil, "text/plain")
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s response: %w", path, err)
	}
	return string(body), nil
}

func validatePair(corpus, play string) error {
	if err := ValidateName(corpus, "corpus_name"); err != nil {
		return err
	}
	return ValidateName(play, "play_name")
}

func playPath(corpus, play, suffix string) string {
	p := "corpora/" + corpus + "/plays/" + play
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// Info returns API name and version details.
func (c *Client) Info(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "info", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Corpora lists all available corpora.
func (c *Client) Corpora(ctx context.Context) ([]Corpus, error) {
	var out []Corpus
	if err := c.getJSON(ctx, "corpora", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Corpus returns one corpus including its play list.
func (c *Client) Corpus(ctx context.Context, name string) (Corpus, error) {
	if err := ValidateName(name, "corpus_name"); err != nil {
		return Corpus{}, err
	}
	var out Corpus
	if err := c.getJSON(ctx, "corpora/"+name, nil, &out); err != nil {
		return Corpus{}, err
	}
	return out, nil
}

// CorpusMetadata returns per-play metadata rows for a corpus.
func (c *Client) CorpusMetadata(ctx context.Context, name string) ([]map[string]any, error) {
	if err := ValidateName(name, "corpus_name"); err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := c.getJSON(ctx, "corpora/"+name+"/metadata", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Plays returns the play list of a corpus.
func (c *Client) Plays(ctx context.Context, corpus string) ([]Play, error) {
	cp, err := c.Corpus(ctx, corpus)
	if err != nil {
		return nil, err
	}
	return cp.Plays, nil
}

// Play returns full detail for one play.
func (c *Client) Play(ctx context.Context, corpus, play string) (Play, error) {
	if err := validatePair(corpus, play); err != nil {
		return Play{}, err
	}
	var out Play
	if err := c.getJSON(ctx, playPath(corpus, play, ""), nil, &out); err != nil {
		return Play{}, err
	}
	return out, nil
}

// PlayMetrics returns upstream-computed network metrics, passed through
// opaquely.
func (c *Client) PlayMetrics(ctx context.Context, corpus, play string) (map[string]any, error) {
	if err := validatePair(corpus, play); err != nil {
		return nil, err
	}
	var out map[string]any
	if err := c.getJSON(ctx, playPath(corpus, play, "metrics"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Characters returns the character list of a play.
func (c *Client) Characters(ctx context.Context, corpus, play string) ([]Character, error) {
	if err := validatePair(corpus, play); err != nil {
		return nil, err
	}
	var out []Character
	if err := c.getJSON(ctx, playPath(corpus, play, "characters"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SpokenText returns all dialogue of a play as plain text.
func (c *Client) SpokenText(ctx context.Context, corpus, play string) (string, error) {
	if err := validatePair(corpus, play); err != nil {
		return "", err
	}
	return c.getText(ctx, playPath(corpus, play, "spoken-text"))
}

// SpokenTextByCharacter returns dialogue grouped per character.
func (c *Client) SpokenTextByCharacter(ctx context.Context, corpus, play string) ([]map[string]any, error) {
	if err := validatePair(corpus, play); err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := c.getJSON(ctx, playPath(corpus, play, "spoken-text-by-character"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StageDirections returns all stage directions of a play as plain text.
func (c *Client) StageDirections(ctx context.Context, corpus, play string) (string, error) {
	if err := validatePair(corpus, play); err != nil {
		return "", err
	}
	return c.getText(ctx, playPath(corpus, play, "stage-directions"))
}

// NetworkCSV returns the co-occurrence network of a play as CSV text.
func (c *Client) NetworkCSV(ctx context.Context, corpus, play string) (string, error) {
	if err := validatePair(corpus, play); err != nil {
		return "", err
	}
	return c.getText(ctx, playPath(corpus, play, "networkdata/csv"))
}

// Relations returns explicit character relations as JSON.
func (c *Client) Relations(ctx context.Context, corpus, play string) ([]map[string]any, error) {
	if err := validatePair(corpus, play); err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := c.getJSON(ctx, playPath(corpus, play, "relations"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RelationsCSV returns explicit character relations as CSV text. Not every
// play has them; callers treat failures as "no formal relations".
func (c *Client) RelationsCSV(ctx context.Context, corpus, play string) (string, error) {
	if err := validatePair(corpus, play); err != nil {
		return "", err
	}
	return c.getText(ctx, playPath(corpus, play, "relations/csv"))
}

// TEI returns the TEI XML source of a play.
func (c *Client) TEI(ctx context.Context, corpus, play string) (string, error) {
	if err := validatePair(corpus, play); err != nil {
		return "", err
	}
	return c.getText(ctx, playPath(corpus, play, "tei"))
}

// FullText synthesizes a plain-text rendition of a play by concatenating the
// spoken-text and stage-directions responses under literal headers. DraCor
// has no single plain-text endpoint.
func (c *Client) FullText(ctx context.Context, corpus, play string) (string, error) {
	spoken, err := c.SpokenText(ctx, corpus, play)
	if err != nil {
		return "", err
	}
	stage, err := c.StageDirections(ctx, corpus, play)
	if err != nil {
		return "", err
	}
	return DialogueHeader + spoken + StageDirectionsHeader + stage, nil
}

// PlaysWithCharacter lists plays containing a character identified by
// Wikidata id.
func (c *Client) PlaysWithCharacter(ctx context.Context, wikidataID string) ([]map[string]any, error) {
	if err := ValidateWikidataID(wikidataID); err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := c.getJSON(ctx, "character/"+wikidataID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
