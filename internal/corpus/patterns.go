package corpus

// Pattern keys. Keys are unique across all groups.
const (
	UniformParagraphLength     = "uniform_paragraph_length"
	TransitionOveruse          = "transition_overuse"
	ConsistentSentenceLength   = "consistent_sentence_length"
	RepetitiveSentenceStarters = "repetitive_sentence_starters"
	UniformListStructure       = "uniform_list_structure"
	NoRhetoricalQuestions      = "no_rhetorical_questions"
	NoContractions             = "no_contractions"

	TechnicalJargonClustering = "technical_jargon"
	BuzzwordClustering        = "buzzword_clustering"
	LackPersonalVoice         = "lack_personal_voice"
	PlatitudeOveruse          = "platitude_overuse"
	PseudoInsightOveruse      = "pseudo_insight_overuse"
	PredictableOpenerUse      = "predictable_openers"

	HedgingLanguage = "hedging_language"
)

const (
	GroupStructural = "structural"
	GroupContent    = "content"
	GroupLanguage   = "language"
)

// DefaultWeight applies to signal keys missing from the pattern table.
const DefaultWeight = 0.1

type Pattern struct {
	Key         string
	Group       string
	Weight      float64
	Description string
}

var patterns = []Pattern{
	{UniformParagraphLength, GroupStructural, 0.15, "Paragraphs are suspiciously uniform in length"},
	{TransitionOveruse, GroupStructural, 0.20, "Excessive use of transition words between sentences"},
	{ConsistentSentenceLength, GroupStructural, 0.10, "Sentences are too consistent in length"},
	{RepetitiveSentenceStarters, GroupStructural, 0.18, "Repetitive sentence opening patterns"},
	{UniformListStructure, GroupStructural, 0.12, "Lists consistently have same number of items"},
	{NoRhetoricalQuestions, GroupStructural, 0.08, "Complete absence of rhetorical questions"},
	{NoContractions, GroupStructural, 0.10, "Unnaturally perfect grammar with no contractions"},

	{TechnicalJargonClustering, GroupContent, 0.25, "High concentration of technical jargon"},
	{BuzzwordClustering, GroupContent, 0.22, "AI buzzwords appear in clusters"},
	{LackPersonalVoice, GroupContent, 0.18, "No personal anecdotes, opinions, or voice"},
	{PlatitudeOveruse, GroupContent, 0.10, "Overuse of platitudes and generic statements"},
	{PseudoInsightOveruse, GroupContent, 0.16, "Overuse of pseudo-insightful phrases"},
	{PredictableOpenerUse, GroupContent, 0.14, "Stock openers and closers"},

	{HedgingLanguage, GroupLanguage, 0.12, "Excessive use of hedging/qualifying language"},
}

var patternIndex = func() map[string]Pattern {
	idx := make(map[string]Pattern, len(patterns))
	for _, p := range patterns {
		if _, dup := idx[p.Key]; dup {
			panic("corpus: duplicate pattern key " + p.Key)
		}
		idx[p.Key] = p
	}
	return idx
}()

// Patterns returns a copy of the pattern definition table.
func Patterns() []Pattern {
	return append([]Pattern(nil), patterns...)
}

// Lookup returns the definition of the pattern named key.
func Lookup(key string) (Pattern, bool) {
	p, ok := patternIndex[key]
	return p, ok
}

// Weight resolves the weight for key: overrides first, then the pattern
// table, then fallback.
func Weight(key string, overrides map[string]float64, fallback float64) float64 {
	if w, ok := overrides[key]; ok && w > 0 && w <= 1 {
		return w
	}
	if p, ok := Lookup(key); ok {
		return p.Weight
	}
	return fallback
}
