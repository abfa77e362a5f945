package segment

import (
	"regexp"
	"strings"
)

// MinSentenceChars is the trimmed length a sentence must exceed to be kept.
const MinSentenceChars = 10

var (
	wordFinder     = regexp.MustCompile(`\w+`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	multiSpace     = regexp.MustCompile(`\s+`)
	listItem       = regexp.MustCompile(`^\s*(?:[-*+•]|\d{1,3}[.)])\s+\S`)
)

// Segmentation is a read-only view of one input text.
type Segmentation struct {
	Text       string
	Lower      string
	Words      []string
	Sentences  []string
	Paragraphs []string
	// ListBlocks holds the item count of each contiguous list block.
	ListBlocks []int
}

func (s Segmentation) WordCount() int      { return len(s.Words) }
func (s Segmentation) SentenceCount() int  { return len(s.Sentences) }
func (s Segmentation) ParagraphCount() int { return len(s.Paragraphs) }

// Split segments text into words, sentences, paragraphs and list blocks.
func Split(text string) Segmentation {
	if text == "" {
		return Segmentation{}
	}
	text = normalizeNewlines(text)
	return Segmentation{
		Text:       text,
		Lower:      Normalize(text),
		Words:      Words(text),
		Sentences:  Sentences(text),
		Paragraphs: Paragraphs(text),
		ListBlocks: ListBlocks(text),
	}
}

// Normalize lower-cases text, straightens curly apostrophes and collapses
// whitespace runs to a single space.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "’", "'")
	text = strings.ReplaceAll(text, "‘", "'")
	return strings.TrimSpace(multiSpace.ReplaceAllString(strings.ToLower(text), " "))
}

func Words(text string) []string {
	return wordFinder.FindAllString(strings.ToLower(text), -1)
}

func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) > MinSentenceChars {
			out = append(out, s)
		}
	}
	return out
}

func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphSplit.Split(normalizeNewlines(text), -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListBlocks returns the item count of every run of consecutive list lines.
// A non-list line, blank or not, ends the current block.
func ListBlocks(text string) []int {
	var out []int
	run := 0
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if listItem.MatchString(line) {
			run++
			continue
		}
		if run > 0 {
			out = append(out, run)
			run = 0
		}
	}
	if run > 0 {
		out = append(out, run)
	}
	return out
}

// SentenceWordCounts returns the whitespace-delimited word count of each
// sentence.
func (s Segmentation) SentenceWordCounts() []float64 {
	out := make([]float64, len(s.Sentences))
	for i, sentence := range s.Sentences {
		out[i] = float64(len(strings.Fields(sentence)))
	}
	return out
}

// ParagraphSentenceCounts returns the number of kept sentences per paragraph.
func (s Segmentation) ParagraphSentenceCounts() []float64 {
	out := make([]float64, len(s.Paragraphs))
	for i, p := range s.Paragraphs {
		out[i] = float64(len(Sentences(p)))
	}
	return out
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
