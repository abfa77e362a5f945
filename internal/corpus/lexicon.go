package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
)

//go:embed data/lexicon.json
var lexiconJSON []byte

type Category string

const (
	TechnicalJargon    Category = "technical_jargon"
	BuzzwordVerbs      Category = "buzzword_verbs"
	AbstractNouns      Category = "abstract_nouns"
	CommonAdjectives   Category = "common_adjectives"
	PredictableOpeners Category = "predictable_openers"
	PseudoInsights     Category = "pseudo_insights"
	Platitudes         Category = "platitudes"
	Transitions        Category = "transitions"
	Hedging            Category = "hedging"
	PersonalVoice      Category = "personal_voice"
)

// Categories lists every category the extractors consume, in a stable order.
var Categories = []Category{
	TechnicalJargon,
	BuzzwordVerbs,
	AbstractNouns,
	CommonAdjectives,
	PredictableOpeners,
	PseudoInsights,
	Platitudes,
	Transitions,
	Hedging,
	PersonalVoice,
}

// Lexicon is a versioned set of marker terms grouped by category. A Lexicon
// is treated as immutable once built; accessors hand out copies.
type Lexicon struct {
	version string
	entries map[Category][]string
}

type lexiconDoc struct {
	Version    string              `json:"version"`
	Categories map[string][]string `json:"categories"`
}

var defaultLexicon = sync.OnceValue(func() Lexicon {
	lex, err := Parse(lexiconJSON)
	if err != nil {
		panic(fmt.Sprintf("corpus: embedded lexicon is invalid: %v", err))
	}
	return lex
})

// Default returns the lexicon shipped with the binary.
func Default() Lexicon {
	return defaultLexicon()
}

// Parse decodes a JSON lexicon document. Unknown categories are kept so that
// stores can round-trip them, but only Categories are matched.
func Parse(raw []byte) (Lexicon, error) {
	var doc lexiconDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Lexicon{}, fmt.Errorf("decode lexicon: %w", err)
	}
	if strings.TrimSpace(doc.Version) == "" {
		return Lexicon{}, fmt.Errorf("lexicon version is empty")
	}
	entries := make(map[Category][]string, len(doc.Categories))
	for name, terms := range doc.Categories {
		entries[Category(name)] = slices.Clone(terms)
	}
	return Lexicon{version: doc.Version, entries: entries}, nil
}

// New builds a lexicon from in-memory tables.
func New(version string, entries map[Category][]string) Lexicon {
	cp := make(map[Category][]string, len(entries))
	for cat, terms := range entries {
		cp[cat] = slices.Clone(terms)
	}
	return Lexicon{version: version, entries: cp}
}

func (l Lexicon) Version() string {
	return l.version
}

// Terms returns a copy of the terms in cat.
func (l Lexicon) Terms(cat Category) []string {
	return slices.Clone(l.entries[cat])
}

// CategoryNames returns the categories present in l, sorted.
func (l Lexicon) CategoryNames() []Category {
	out := make([]Category, 0, len(l.entries))
	for cat := range l.entries {
		out = append(out, cat)
	}
	slices.Sort(out)
	return out
}

// Size is the total number of terms across all categories.
func (l Lexicon) Size() int {
	n := 0
	for _, terms := range l.entries {
		n += len(terms)
	}
	return n
}

// MergedSuffix marks the version of a lexicon extended by Merge.
const MergedSuffix = "+extra"

// Merge returns a new lexicon with extra appended per category. Terms already
// present (case-insensitive) are not duplicated. l is left untouched. When any
// term is added the version gains MergedSuffix.
func (l Lexicon) Merge(extra map[Category][]string) Lexicon {
	out := New(l.version, l.entries)
	added := 0
	for cat, terms := range extra {
		seen := map[string]struct{}{}
		for _, t := range out.entries[cat] {
			seen[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
		for _, t := range terms {
			key := strings.ToLower(strings.TrimSpace(t))
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out.entries[cat] = append(out.entries[cat], t)
			added++
		}
	}
	if added > 0 && !strings.HasSuffix(out.version, MergedSuffix) {
		out.version += MergedSuffix
	}
	return out
}

// MarshalJSON encodes l in the same document shape Parse accepts.
func (l Lexicon) MarshalJSON() ([]byte, error) {
	doc := lexiconDoc{Version: l.version, Categories: map[string][]string{}}
	for cat, terms := range l.entries {
		doc.Categories[string(cat)] = terms
	}
	return json.Marshal(doc)
}
