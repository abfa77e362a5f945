package aidetect

import (
	"fmt"

	"prosescan/internal/chunk"
)

// SectionResult scores one paragraph-aligned slice of a longer document.
type SectionResult struct {
	Index     int     `json:"index"`
	StartWord int     `json:"start_word"`
	EndWord   int     `json:"end_word"`
	Score     float64 `json:"score"`
	Verdict   string  `json:"verdict"`
	Result    Result  `json:"result"`
}

// AnalyzeSections splits in.Text into sections of about targetWords words and
// scores each one independently. Sections below the minimum word count
// report the usual too-short result.
func (e *Engine) AnalyzeSections(in Input, targetWords int) []SectionResult {
	if targetWords < e.cfg.MinWords {
		targetWords = e.cfg.MinWords
	}
	segments := chunk.Sections(in.Text, targetWords)
	out := make([]SectionResult, 0, len(segments))
	for _, seg := range segments {
		res := e.Analyze(Input{
			DocumentID: fmt.Sprintf("%s#%d", defaultIfEmpty(in.DocumentID, "doc"), seg.Index),
			Text:       seg.Text,
			Language:   in.Language,
		})
		out = append(out, SectionResult{
			Index:     seg.Index,
			StartWord: seg.StartWord,
			EndWord:   seg.EndWord,
			Score:     res.Score,
			Verdict:   res.Verdict,
			Result:    res,
		})
	}
	return out
}
