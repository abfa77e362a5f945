package corpus

import (
	"regexp"
	"strings"
	"unicode"
)

type term struct {
	text string
	re   *regexp.Regexp
}

// Matchers holds compiled word-boundary matchers for every category of a
// lexicon. It is safe for concurrent use.
type Matchers struct {
	version string
	terms   map[Category][]term
	skipped []string
}

// Compile builds matchers for lex. Entries that cannot form a valid matcher
// are skipped and reported by Skipped.
func Compile(lex Lexicon) *Matchers {
	m := &Matchers{
		version: lex.Version(),
		terms:   make(map[Category][]term, len(lex.entries)),
	}
	for _, cat := range lex.CategoryNames() {
		seen := map[string]struct{}{}
		for _, raw := range lex.entries[cat] {
			text := normalizeTerm(raw)
			if !validTerm(text) {
				m.skipped = append(m.skipped, string(cat)+":"+raw)
				continue
			}
			if _, dup := seen[text]; dup {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(text) + `\b`)
			if err != nil {
				m.skipped = append(m.skipped, string(cat)+":"+raw)
				continue
			}
			seen[text] = struct{}{}
			m.terms[cat] = append(m.terms[cat], term{text: text, re: re})
		}
	}
	return m
}

func (m *Matchers) Version() string {
	return m.version
}

// Skipped lists "category:entry" for every malformed lexicon entry.
func (m *Matchers) Skipped() []string {
	return append([]string(nil), m.skipped...)
}

// Count returns the total number of whole-word occurrences of cat's terms in
// lower, plus the terms that matched at least once. lower must already be
// lower-cased.
func (m *Matchers) Count(cat Category, lower string) (int, []string) {
	count := 0
	var found []string
	for _, t := range m.terms[cat] {
		n := len(t.re.FindAllStringIndex(lower, -1))
		if n > 0 {
			count += n
			found = append(found, t.text)
		}
	}
	return count, found
}

// Phrases counts how many distinct terms of cat appear in lower by substring
// containment.
func (m *Matchers) Phrases(cat Category, lower string) (int, []string) {
	var found []string
	for _, t := range m.terms[cat] {
		if strings.Contains(lower, t.text) {
			found = append(found, t.text)
		}
	}
	return len(found), found
}

// Distinct returns the terms from cats that occur at least once in lower,
// each reported once even when it belongs to several categories.
func (m *Matchers) Distinct(lower string, cats ...Category) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, cat := range cats {
		for _, t := range m.terms[cat] {
			if _, ok := seen[t.text]; ok {
				continue
			}
			if t.re.MatchString(lower) {
				seen[t.text] = struct{}{}
				out = append(out, t.text)
			}
		}
	}
	return out
}

// Any reports whether any term of cat occurs in lower.
func (m *Matchers) Any(cat Category, lower string) bool {
	for _, t := range m.terms[cat] {
		if t.re.MatchString(lower) {
			return true
		}
	}
	return false
}

func normalizeTerm(raw string) string {
	raw = strings.ReplaceAll(raw, "’", "'")
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

func validTerm(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return false
		}
	}
	return isWordByte(text[0]) && isWordByte(text[len(text)-1])
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
