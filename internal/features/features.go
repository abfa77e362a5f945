package features

import (
	"math"

	"prosescan/internal/corpus"
	"prosescan/internal/segment"
)

// Signal is one fired pattern: its key, strength in [0,1] and a
// human-readable explanation.
type Signal struct {
	Key    string
	Score  float64
	Detail string
}

// Input is everything an extractor may look at. Scale is the domain
// threshold scale applied to density thresholds.
type Input struct {
	Seg        segment.Segmentation
	Matchers   *corpus.Matchers
	Thresholds Thresholds
	Scale      float64
}

// Extractor reports a signal and true when its pattern is present.
type Extractor struct {
	Key string
	Run func(in Input) (Signal, bool)
}

// Extractors lists the extractors in detection order.
var Extractors = []Extractor{
	{corpus.TechnicalJargonClustering, technicalJargon},
	{corpus.BuzzwordClustering, buzzwordClustering},
	{corpus.PredictableOpenerUse, predictableOpeners},
	{corpus.PseudoInsightOveruse, pseudoInsights},
	{corpus.PlatitudeOveruse, platitudes},
	{corpus.HedgingLanguage, hedgingLanguage},
	{corpus.TransitionOveruse, transitionOveruse},
	{corpus.LackPersonalVoice, lackPersonalVoice},
	{corpus.NoContractions, noContractions},
	{corpus.ConsistentSentenceLength, consistentSentenceLength},
	{corpus.UniformParagraphLength, uniformParagraphLength},
	{corpus.RepetitiveSentenceStarters, repetitiveStarters},
	{corpus.UniformListStructure, uniformListStructure},
	{corpus.NoRhetoricalQuestions, noRhetoricalQuestions},
}

// Extract runs every extractor over in and returns the fired signals in
// detection order. Signals with a non-finite score are treated as absent.
func Extract(in Input) []Signal {
	if in.Matchers == nil {
		in.Matchers = corpus.Compile(corpus.Default())
	}
	if in.Scale <= 0 || !finite(in.Scale) {
		in.Scale = 1
	}
	out := make([]Signal, 0, len(Extractors))
	for _, ex := range Extractors {
		sig, ok := ex.Run(in)
		if !ok || !finite(sig.Score) {
			continue
		}
		sig.Key = ex.Key
		sig.Score = clamp01(sig.Score)
		out = append(out, sig)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ratio divides and returns 0 for a zero or non-finite result.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if !finite(r) {
		return 0
	}
	return r
}

func meanVariance(values []float64) (mean, variance float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, variance
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
