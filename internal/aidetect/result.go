package aidetect

import (
	"prosescan/internal/features"
	"prosescan/internal/segment"
)

const (
	VerdictVeryUnlikely = "very-unlikely"
	VerdictUnlikely     = "unlikely"
	VerdictPossibly     = "possibly"
	VerdictLikely       = "likely"
	VerdictVeryLikely   = "very-likely"
)

const (
	ConfidenceInsufficient = "insufficient"
	ConfidenceMinimal      = "minimal"
	ConfidenceLow          = "low"
	ConfidenceMedium       = "medium"
	ConfidenceHigh         = "high"
	ConfidenceVeryHigh     = "very-high"
)

func Verdict(score float64) string {
	switch {
	case score < 0.2:
		return VerdictVeryUnlikely
	case score < 0.4:
		return VerdictUnlikely
	case score < 0.6:
		return VerdictPossibly
	case score < 0.8:
		return VerdictLikely
	default:
		return VerdictVeryLikely
	}
}

// ConfidenceLabel describes how much convergent evidence backs a score. It
// looks only at pattern counts, never at the score itself, so one strong but
// isolated signal stays low confidence.
func ConfidenceLabel(active, strong int) string {
	switch {
	case active <= 0:
		return ConfidenceInsufficient
	case active >= 6 && strong >= 3:
		return ConfidenceVeryHigh
	case active >= 4 && strong >= 2:
		return ConfidenceHigh
	case active >= 3 && strong >= 2:
		return ConfidenceMedium
	case strong >= 1:
		return ConfidenceLow
	default:
		return ConfidenceMinimal
	}
}

func buildMetrics(seg segment.Segmentation, m features.Measurements) Metrics {
	return Metrics{
		Words:              seg.WordCount(),
		Sentences:          seg.SentenceCount(),
		Paragraphs:         seg.ParagraphCount(),
		ListBlocks:         len(seg.ListBlocks),
		AvgSentenceLength:  safeMetric(m.AvgSentenceLength),
		AvgParagraphLength: safeMetric(m.AvgParagraphLength),
		TransitionDensity:  safeMetric(m.TransitionDensity),
		BuzzwordDensity:    safeMetric(m.BuzzwordDensity),
		PersonalVoice:      m.PersonalVoice,
		Contractions:       m.Contractions,
		TechnicalTerms:     m.TechnicalTerms,
	}
}

func safeMetric(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}
