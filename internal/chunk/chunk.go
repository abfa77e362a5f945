package chunk

import (
	"strings"

	"prosescan/internal/segment"
)

type Segment struct {
	Index     int
	StartWord int
	EndWord   int
	Text      string
}

// Sections groups whole paragraphs into segments of at least targetWords
// whitespace-separated words, so paragraph structure survives inside each
// segment. A trailing remainder shorter than half the target joins the
// previous segment, and a single paragraph longer than twice the target is
// cut into word windows.
func Sections(text string, targetWords int) []Segment {
	if targetWords <= 0 {
		return nil
	}
	var out []Segment
	var paras []string
	start, words := 0, 0
	flush := func() {
		if len(paras) == 0 {
			return
		}
		out = append(out, Segment{
			Index:     len(out),
			StartWord: start,
			EndWord:   start + words,
			Text:      strings.Join(paras, "\n\n"),
		})
		start += words
		paras, words = nil, 0
	}

	for _, p := range segment.Paragraphs(text) {
		n := len(strings.Fields(p))
		if n == 0 {
			continue
		}
		if n > 2*targetWords {
			flush()
			for _, w := range SlidingWindow(p, targetWords, 0) {
				out = append(out, Segment{
					Index:     len(out),
					StartWord: start + w.StartWord,
					EndWord:   start + w.EndWord,
					Text:      w.Text,
				})
			}
			start += n
			continue
		}
		paras = append(paras, p)
		words += n
		if words >= targetWords {
			flush()
		}
	}
	if len(paras) > 0 && words*2 < targetWords && len(out) > 0 {
		last := &out[len(out)-1]
		last.Text += "\n\n" + strings.Join(paras, "\n\n")
		last.EndWord += words
		paras = nil
	}
	flush()
	return out
}

// SlidingWindow cuts text into windows of segmentWords words that overlap by
// overlapWords. Offsets count whitespace-separated words.
func SlidingWindow(text string, segmentWords, overlapWords int) []Segment {
	if segmentWords <= 0 {
		return nil
	}
	if overlapWords < 0 {
		overlapWords = 0
	}
	if overlapWords >= segmentWords {
		overlapWords = segmentWords - 1
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	step := segmentWords - overlapWords
	segments := make([]Segment, 0, (len(tokens)/step)+1)
	for start := 0; start < len(tokens); start += step {
		end := start + segmentWords
		if end > len(tokens) {
			end = len(tokens)
		}
		segments = append(segments, Segment{
			Index:     len(segments),
			StartWord: start,
			EndWord:   end,
			Text:      strings.Join(tokens[start:end], " "),
		})
		if end == len(tokens) {
			break
		}
	}

	return segments
}
