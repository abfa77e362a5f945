package features

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var contractionPattern = regexp.MustCompile(`\b\w+'\w+\b`)

func countContractions(lower string) int {
	return len(contractionPattern.FindAllStringIndex(lower, -1))
}

func consistentSentenceLength(in Input) (Signal, bool) {
	th := in.Thresholds
	if in.Seg.SentenceCount() < th.SentenceMinCount {
		return Signal{}, false
	}
	mean, variance := meanVariance(in.Seg.SentenceWordCounts())
	if variance >= th.SentenceVarianceMax || mean <= th.SentenceLengthFloor {
		return Signal{}, false
	}
	return Signal{
		Score:  math.Min(1-ratio(variance, th.SentenceVarianceScale), th.SentenceSignalCap),
		Detail: fmt.Sprintf("Sentences too consistent in length (variance: %.1f)", variance),
	}, true
}

func uniformParagraphLength(in Input) (Signal, bool) {
	th := in.Thresholds
	if in.Seg.ParagraphCount() < th.ParagraphMinCount {
		return Signal{}, false
	}
	_, variance := meanVariance(in.Seg.ParagraphSentenceCounts())
	if variance >= th.ParagraphVarianceMax {
		return Signal{}, false
	}
	return Signal{
		Score:  math.Min(1-ratio(variance, th.ParagraphVarianceScale), th.ParagraphSignalCap),
		Detail: fmt.Sprintf("Paragraphs are suspiciously uniform in length (variance: %.2f)", variance),
	}, true
}

// repetitiveStarters looks for sentence openings shared by more than
// StarterMinRepeats-1 sentences.
func repetitiveStarters(in Input) (Signal, bool) {
	th := in.Thresholds
	n := in.Seg.SentenceCount()
	if n < th.StarterMinSentences || th.StarterPrefixWords <= 0 {
		return Signal{}, false
	}
	counts := map[string]int{}
	var order []string
	for _, s := range in.Seg.Sentences {
		fields := strings.Fields(strings.ToLower(s))
		if len(fields) < th.StarterPrefixWords {
			continue
		}
		prefix := strings.Join(fields[:th.StarterPrefixWords], " ")
		if counts[prefix] == 0 {
			order = append(order, prefix)
		}
		counts[prefix]++
	}
	repeated := 0
	var top []string
	for _, prefix := range order {
		if counts[prefix] >= th.StarterMinRepeats {
			repeated += counts[prefix]
			top = append(top, fmt.Sprintf("%q x%d", prefix, counts[prefix]))
		}
	}
	fraction := ratio(float64(repeated), float64(n))
	if fraction <= th.StarterFractionMin {
		return Signal{}, false
	}
	return Signal{
		Score:  math.Min(fraction*2, 1),
		Detail: "Repetitive sentence openers: " + strings.Join(firstN(top, 2), ", "),
	}, true
}

func uniformListStructure(in Input) (Signal, bool) {
	th := in.Thresholds
	blocks := in.Seg.ListBlocks
	if len(blocks) < th.ListMinBlocks || len(blocks) == 0 {
		return Signal{}, false
	}
	values := make([]float64, len(blocks))
	triplets := 0
	for i, b := range blocks {
		values[i] = float64(b)
		if b == 3 {
			triplets++
		}
	}
	_, variance := meanVariance(values)
	score := 1 - ratio(variance, th.ListVarianceScale)
	detail := fmt.Sprintf("Lists consistently have the same number of items (%d lists)", len(blocks))
	if triplets*2 > len(blocks) {
		score += th.ListTripletBoost
		detail = fmt.Sprintf("Most lists have exactly three items (%d of %d)", triplets, len(blocks))
	}
	if score <= 0 {
		return Signal{}, false
	}
	return Signal{Score: math.Min(score, 1), Detail: detail}, true
}

func noRhetoricalQuestions(in Input) (Signal, bool) {
	th := in.Thresholds
	if in.Seg.SentenceCount() <= th.QuestionMinSentences || strings.Contains(in.Seg.Text, "?") {
		return Signal{}, false
	}
	return Signal{Score: th.QuestionPenalty, Detail: "No rhetorical questions in the text"}, true
}
