package features

import (
	"prosescan/internal/corpus"
)

// Measurements are the raw counts and densities reported alongside the
// score. They are computed whether or not any pattern fires.
type Measurements struct {
	AvgSentenceLength  float64
	AvgParagraphLength float64
	TransitionDensity  float64
	BuzzwordDensity    float64
	PersonalVoice      bool
	Contractions       int
	TechnicalTerms     int
}

func Measure(in Input) Measurements {
	if in.Matchers == nil {
		in.Matchers = corpus.Compile(corpus.Default())
	}
	seg := in.Seg
	sentenceMean, _ := meanVariance(seg.SentenceWordCounts())
	paragraphMean, _ := meanVariance(seg.ParagraphSentenceCounts())

	buzz := 0
	for _, cat := range []corpus.Category{corpus.BuzzwordVerbs, corpus.AbstractNouns, corpus.CommonAdjectives} {
		n, _ := in.Matchers.Count(cat, seg.Lower)
		buzz += n
	}
	technical := 0
	for _, cat := range jargonCategories {
		n, _ := in.Matchers.Count(cat, seg.Lower)
		technical += n
	}

	return Measurements{
		AvgSentenceLength:  finiteOrZero(sentenceMean),
		AvgParagraphLength: finiteOrZero(paragraphMean),
		TransitionDensity:  perSentence(in, corpus.Transitions),
		BuzzwordDensity:    ratio(float64(buzz), float64(seg.WordCount())) * 1000,
		PersonalVoice:      in.Matchers.Any(corpus.PersonalVoice, seg.Lower),
		Contractions:       countContractions(seg.Lower),
		TechnicalTerms:     technical,
	}
}

func finiteOrZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
