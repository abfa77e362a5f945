package features

import (
	"fmt"
	"math"
	"strings"

	"prosescan/internal/corpus"
	"prosescan/internal/segment"
)

var jargonCategories = []corpus.Category{corpus.TechnicalJargon, corpus.BuzzwordVerbs, corpus.AbstractNouns}

// jargonCluster scores sentences that mix more than one jargon term.
func jargonCluster(in Input) (float64, []string) {
	th := in.Thresholds
	cluster := 0.0
	var found []string
	seen := map[string]struct{}{}
	for _, sentence := range in.Seg.Sentences {
		terms := in.Matchers.Distinct(segment.Normalize(sentence), jargonCategories...)
		if len(terms) < 2 {
			continue
		}
		cluster += float64(len(terms)) * th.JargonTermWeight
		for _, t := range terms {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				found = append(found, t)
			}
		}
	}
	return cluster, found
}

func technicalJargon(in Input) (Signal, bool) {
	th := in.Thresholds
	cluster, found := jargonCluster(in)
	if cluster <= th.JargonClusterMin*in.Scale {
		return Signal{}, false
	}
	density := ratio(cluster, float64(in.Seg.SentenceCount()))
	return Signal{
		Score:  math.Min(density*th.JargonDensityScale, 1),
		Detail: "High technical jargon clustering: " + strings.Join(firstN(found, 5), ", "),
	}, true
}

// buzzwordScore is the weighted buzzword count over the whole text.
func buzzwordScore(in Input) float64 {
	th := in.Thresholds
	verbs, _ := in.Matchers.Count(corpus.BuzzwordVerbs, in.Seg.Lower)
	nouns, _ := in.Matchers.Count(corpus.AbstractNouns, in.Seg.Lower)
	adjs, _ := in.Matchers.Count(corpus.CommonAdjectives, in.Seg.Lower)
	return float64(verbs)*th.BuzzwordVerbWeight + float64(nouns)*th.BuzzwordNounWeight + float64(adjs)*th.BuzzwordAdjWeight
}

func buzzwordClustering(in Input) (Signal, bool) {
	th := in.Thresholds
	score := buzzwordScore(in)
	if score <= th.BuzzwordScoreMin*in.Scale {
		return Signal{}, false
	}
	per1000 := ratio(score, float64(in.Seg.WordCount())) * 1000
	return Signal{
		Score:  math.Min(ratio(per1000, th.BuzzwordPer1000Scale), 1),
		Detail: fmt.Sprintf("Buzzword clustering detected (score: %.1f)", score),
	}, true
}

func phraseSignal(in Input, cat corpus.Category, perHit float64, label string) (Signal, bool) {
	n, found := in.Matchers.Phrases(cat, in.Seg.Lower)
	if n == 0 {
		return Signal{}, false
	}
	return Signal{
		Score:  math.Min(float64(n)*perHit, 1),
		Detail: label + ": " + strings.Join(firstN(found, 2), ", "),
	}, true
}

func predictableOpeners(in Input) (Signal, bool) {
	return phraseSignal(in, corpus.PredictableOpeners, in.Thresholds.OpenerPerHit, "Predictable openers found")
}

func pseudoInsights(in Input) (Signal, bool) {
	return phraseSignal(in, corpus.PseudoInsights, in.Thresholds.PseudoInsightPerHit, "Pseudo-insight phrases")
}

func platitudes(in Input) (Signal, bool) {
	return phraseSignal(in, corpus.Platitudes, in.Thresholds.PlatitudePerHit, "Platitudes found")
}

// perSentence returns the occurrences of cat divided by the sentence count.
func perSentence(in Input, cat corpus.Category) float64 {
	n, _ := in.Matchers.Count(cat, in.Seg.Lower)
	return ratio(float64(n), float64(in.Seg.SentenceCount()))
}

func densitySignal(in Input, cat corpus.Category, floor float64, format string) (Signal, bool) {
	d := perSentence(in, cat)
	if d <= floor*in.Scale {
		return Signal{}, false
	}
	return Signal{
		Score:  math.Min(d*in.Thresholds.DensitySignalScale, 1),
		Detail: fmt.Sprintf(format, d*100),
	}, true
}

func hedgingLanguage(in Input) (Signal, bool) {
	return densitySignal(in, corpus.Hedging, in.Thresholds.HedgingDensityMin, "Excessive hedging language (%.1f%% of sentences)")
}

func transitionOveruse(in Input) (Signal, bool) {
	return densitySignal(in, corpus.Transitions, in.Thresholds.TransitionDensityMin, "High transition word density: %.1f%% of sentences")
}

func lackPersonalVoice(in Input) (Signal, bool) {
	if in.Seg.WordCount() <= in.Thresholds.AbsenceMinWords || in.Matchers.Any(corpus.PersonalVoice, in.Seg.Lower) {
		return Signal{}, false
	}
	return Signal{Score: in.Thresholds.VoicePenalty, Detail: "No personal voice indicators detected"}, true
}

func noContractions(in Input) (Signal, bool) {
	if in.Seg.WordCount() <= in.Thresholds.AbsenceMinWords || countContractions(in.Seg.Lower) > 0 {
		return Signal{}, false
	}
	return Signal{Score: in.Thresholds.ContractionPenalty, Detail: "No contractions found - unnaturally formal"}, true
}
