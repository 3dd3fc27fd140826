package lexicon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDictionaryMeaningOf(t *testing.T) {
	dict, err := LoadDictionary()
	if err != nil {
		t.Fatalf("LoadDictionary() error: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		word  string
		known bool
	}{
		{"programme", true},
		{"GAMER", true},
		{"  train ", true},
		{"countdown", true},
		{"xqzvt", false},
		{"", false},
	}

	for _, tt := range tests {
		def, err := dict.MeaningOf(ctx, tt.word)
		if err != nil {
			t.Errorf("MeaningOf(%q) error: %v", tt.word, err)
			continue
		}
		if (def != nil) != tt.known {
			t.Errorf("MeaningOf(%q) known = %v, want %v", tt.word, def != nil, tt.known)
		}
	}

	if len(dict.NineLetterWords()) == 0 {
		t.Error("NineLetterWords() is empty")
	}
	for _, w := range dict.NineLetterWords() {
		if def, _ := dict.MeaningOf(ctx, w); def == nil {
			t.Errorf("Dictionary does not know its own conundrum word %q", w)
		}
	}
}

func TestDictionaryCancelled(t *testing.T) {
	dict := NewDictionary([]string{"cat"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := dict.MeaningOf(ctx, "cat"); !errors.Is(err, context.Canceled) {
		t.Errorf("MeaningOf() with cancelled context error = %v, want context.Canceled", err)
	}
}

type stubLexicon struct {
	def *Definition
	err error
}

func (s stubLexicon) MeaningOf(context.Context, string) (*Definition, error) {
	return s.def, s.err
}

func TestChain(t *testing.T) {
	boom := errors.New("boom")
	found := &Definition{Word: "cat", Source: "stub"}
	ctx := context.Background()

	tests := []struct {
		name    string
		chain   Chain
		wantDef bool
		wantErr bool
	}{
		{"first finds", Chain{stubLexicon{def: found}, stubLexicon{err: boom}}, true, false},
		{"fallback after error", Chain{stubLexicon{err: boom}, stubLexicon{def: found}}, true, false},
		{"unknown everywhere", Chain{stubLexicon{}, stubLexicon{}}, false, false},
		{"error then unknown", Chain{stubLexicon{err: boom}, stubLexicon{}}, false, false},
		{"all fail", Chain{stubLexicon{err: boom}, stubLexicon{err: boom}}, false, true},
		{"empty chain", Chain{}, false, false},
	}

	for _, tt := range tests {
		def, err := tt.chain.MeaningOf(ctx, "cat")
		if (def != nil) != tt.wantDef {
			t.Errorf("%s: definition found = %v, want %v", tt.name, def != nil, tt.wantDef)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, want error %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestHTTPMeaningOf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gamer":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"word":"gamer","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"One who plays games."}]}]}]`))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	lex := NewHTTP(srv.URL+"/", time.Second)
	ctx := context.Background()

	def, err := lex.MeaningOf(ctx, "Gamer")
	if err != nil {
		t.Fatalf("MeaningOf(gamer) error: %v", err)
	}
	m, ok := def.First()
	if !ok {
		t.Fatal("MeaningOf(gamer) returned no meanings")
	}
	if m.PartOfSpeech != "noun" || m.Text != "One who plays games." {
		t.Errorf("First() = %+v, want noun meaning", m)
	}

	if def, err := lex.MeaningOf(ctx, "xqzvt"); err != nil || def != nil {
		t.Errorf("MeaningOf(unknown) = %v, %v, want nil, nil", def, err)
	}

	if _, err := lex.MeaningOf(ctx, "broken"); err == nil {
		t.Error("MeaningOf(broken) error = nil, want server error")
	}
}

func TestDefinitionFirstNil(t *testing.T) {
	var d *Definition
	if _, ok := d.First(); ok {
		t.Error("nil Definition.First() ok = true, want false")
	}
}
