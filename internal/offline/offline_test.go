package offline

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"prosescan/internal/aidetect"
	"prosescan/internal/corpus"
	"prosescan/internal/db"
	"prosescan/internal/pipeline"
)

type failTransport struct{}

func (f failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network disabled for offline test")
}

func TestOfflineMode(t *testing.T) {
	original := http.DefaultTransport
	http.DefaultTransport = failTransport{}
	t.Cleanup(func() { http.DefaultTransport = original })

	text := strings.Repeat("Furthermore, we leverage a robust framework to optimize the landscape. ", 20)
	res := aidetect.Analyze(text)
	if res.Score == 0 || res.ActivePatterns == 0 {
		t.Fatalf("expected analysis to work offline, got %+v", res)
	}

	dbPath := filepath.Join(t.TempDir(), "lexicon.db")
	if err := db.SaveLexicon(dbPath, corpus.Default()); err != nil {
		t.Fatalf("expected lexicon store to work offline: %v", err)
	}
	lex, err := db.LoadLexicon(dbPath, "")
	if err != nil {
		t.Fatalf("load lexicon offline: %v", err)
	}
	engine := aidetect.NewEngine(aidetect.DefaultConfig(), lex, nil)

	docs := []string{text, text, text}
	scores := make([]float64, len(docs))
	errs := pipeline.Run([]int{0, 1, 2}, 2, func(i int) error {
		scores[i] = engine.Analyze(aidetect.Input{Text: docs[i]}).Score
		return nil
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, s := range scores {
		if s != res.Score {
			t.Fatalf("expected stored lexicon to score like the embedded one, got %v want %v", s, res.Score)
		}
	}
}
