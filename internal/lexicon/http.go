package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTP looks words up in a remote dictionary that speaks the
// dictionaryapi.dev response format:
//
//	GET {base}/{word} -> [{"word": "...", "meanings": [{"partOfSpeech": "...",
//	                       "definitions": [{"definition": "..."}]}]}]
//
// A 404 means the word is unknown.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP creates a remote lexicon rooted at base with a per-request timeout.
func NewHTTP(base string, timeout time.Duration) *HTTP {
	return &HTTP{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type apiEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// MeaningOf implements Lexicon.
func (h *HTTP) MeaningOf(ctx context.Context, word string) (*Definition, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+"/"+url.PathEscape(w), nil)
	if err != nil {
		return nil, fmt.Errorf("building lexicon request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying lexicon: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("lexicon returned %s", resp.Status)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding lexicon response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	def := &Definition{Word: w, Source: h.base}
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				def.Meanings = append(def.Meanings, Meaning{PartOfSpeech: m.PartOfSpeech, Text: d.Definition})
			}
		}
	}
	return def, nil
}
