package aidetect

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"prosescan/internal/corpus"
	"prosescan/internal/domain"
	"prosescan/internal/features"
)

const casualText = `I think the best summer of my life was the one we spent at the lake cabin with my grandmother, and I remember waking up early every morning to catch fish while she laughed at me%s. She didn't say much, and we'd sit there on the dock for hours without talking at all.

Honestly, I can't tell you what we ate most days. The weather mostly stayed warm. It usually didn't rain! My uncle came up on weekends with his old truck full of groceries and a radio that only picked up one station.

Do you ever miss a place you can't go back to? I do. The cabin got sold a few years after she passed. That was a long time ago now. I'm not sure I'd even recognize the road. Some things are better left the way you remember them.`

const leverageText = "I think we should leverage the old truck for the move. " +
	"Honestly, leverage is all we have left with the landlord, so we leverage it. " +
	"My sister says to leverage her friends and leverage her cousins too. " +
	"We could leverage the neighbor's van, leverage the garage, and maybe leverage a few favors from the guys at work if they're free on Saturday morning before lunch. " +
	"Fine. Then we leverage pizza as payment and leverage the afternoon for unpacking."

var jargonPool = []string{
	"leverage", "harness", "optimize", "streamline", "orchestrate", "empower", "foster", "cultivate",
	"synthesize", "curate", "catalyze", "facilitate", "spearhead", "galvanize", "distill",
	"LLMs", "RAG", "LoRA", "AGI", "GANs", "SMPC", "CoT", "zero-shot",
	"paradigm", "tapestry", "landscape", "ecosystem", "framework", "blueprint", "trajectory",
}

func jargonText() string {
	var b strings.Builder
	for i := 0; i < 14; i++ {
		words := make([]string, 15)
		for j := range words {
			words[j] = jargonPool[(i*15+j)%len(jargonPool)]
		}
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strings.Join(words, " ") + ".")
	}
	return b.String()
}

func casual(extra string) string {
	return fmt.Sprintf(casualText, extra)
}

type recordLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordLogger) Log(level, stage, message, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+"|"+stage+"|"+message+"|"+detail)
}

func (l *recordLogger) find(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if strings.HasPrefix(e, level+"|") {
			out = append(out, e)
		}
	}
	return out
}

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewEngine(cfg, corpus.Default(), nil)
}

func TestAnalyzeShortText(t *testing.T) {
	for _, text := range []string{"", "   ", "Just a handful of words here, nothing more to see."} {
		res := Analyze(text)
		if res.Score != 0 {
			t.Fatalf("expected zero score for %q, got %v", text, res.Score)
		}
		if res.Confidence != ConfidenceInsufficient || res.Verdict != VerdictVeryUnlikely {
			t.Fatalf("unexpected labels for %q: %s %s", text, res.Confidence, res.Verdict)
		}
		if len(res.Details) != 1 || !strings.Contains(res.Details[0], "minimum 50 words") {
			t.Fatalf("expected too-short detail for %q, got %v", text, res.Details)
		}
		if res.ActivePatterns != 0 || len(res.Signals) != 0 {
			t.Fatalf("expected no patterns for %q, got %+v", text, res)
		}
	}
	res := Analyze("Just a handful of words here, nothing more to see.")
	if res.Metrics.Words != 10 || res.Metrics.Sentences != 1 || res.Metrics.Paragraphs != 1 {
		t.Fatalf("expected counts on short text, got %+v", res.Metrics)
	}
}

func TestAnalyzeJargonHeavyText(t *testing.T) {
	log := &recordLogger{}
	engine := NewEngine(DefaultConfig(), corpus.Default(), log)
	res := engine.Analyze(Input{DocumentID: "doc-1", Text: jargonText()})

	if res.Score < 0.6 {
		t.Fatalf("expected score >= 0.6, got %v (%+v)", res.Score, res.Signals)
	}
	if res.Verdict != VerdictLikely && res.Verdict != VerdictVeryLikely {
		t.Fatalf("unexpected verdict %q", res.Verdict)
	}
	if res.Confidence != ConfidenceVeryHigh {
		t.Fatalf("expected very-high confidence, got %q (active=%d strong=%d)", res.Confidence, res.ActivePatterns, res.StrongPatterns)
	}
	for _, key := range []string{corpus.TechnicalJargonClustering, corpus.BuzzwordClustering, corpus.LackPersonalVoice, corpus.NoContractions} {
		if _, ok := res.Signals[key]; !ok {
			t.Fatalf("expected %s signal, got %+v", key, res.Signals)
		}
	}
	if res.Details[0] != "Multiple AI patterns detected - confidence boost applied (1.4x)" {
		t.Fatalf("expected boost detail first, got %q", res.Details[0])
	}
	for _, want := range []string{"High technical jargon clustering", "No personal voice indicators detected", "No contractions found"} {
		if !hasDetail(res.Details, want) {
			t.Fatalf("expected a detail containing %q, got %v", want, res.Details)
		}
	}
	if res.Domain != domain.Casual || res.DocumentID != "doc-1" {
		t.Fatalf("unexpected domain or id: %s %s", res.Domain, res.DocumentID)
	}
	if res.Metrics.TechnicalTerms == 0 || res.Metrics.BuzzwordDensity == 0 || res.Metrics.PersonalVoice {
		t.Fatalf("unexpected metrics: %+v", res.Metrics)
	}
	if len(log.find("ANALYSIS")) != 1 {
		t.Fatalf("expected one analysis log entry, got %v", log.entries)
	}
}

func TestAnalyzeCasualText(t *testing.T) {
	res := Analyze(casual(""))
	if res.Score >= 0.2 {
		t.Fatalf("expected score < 0.2, got %v (%+v)", res.Score, res.Signals)
	}
	if res.Verdict != VerdictVeryUnlikely {
		t.Fatalf("unexpected verdict %q", res.Verdict)
	}
	if !res.Metrics.PersonalVoice || res.Metrics.Contractions == 0 {
		t.Fatalf("expected personal voice and contractions, got %+v", res.Metrics)
	}
	if res.ActivePatterns == 0 && (len(res.Details) != 1 || res.Details[0] != NoPatternsDetail) {
		t.Fatalf("expected no-patterns detail, got %v", res.Details)
	}
}

func TestConfidenceDecoupledFromScore(t *testing.T) {
	res := Analyze(leverageText)
	if res.ActivePatterns != 1 || res.StrongPatterns != 1 {
		t.Fatalf("expected a single strong signal, got active=%d strong=%d (%+v)", res.ActivePatterns, res.StrongPatterns, res.Signals)
	}
	if got := res.Signals[corpus.BuzzwordClustering]; got != 1 {
		t.Fatalf("expected saturated buzzword signal, got %v", got)
	}
	if res.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence, got %q", res.Confidence)
	}
	if math.Abs(res.Score-0.22) > 1e-9 {
		t.Fatalf("expected score 0.22, got %v", res.Score)
	}
}

func TestScoreMonotonicInBuzzwords(t *testing.T) {
	prev := -1.0
	for k := 0; k <= 10; k++ {
		res := Analyze(casual(strings.Repeat(" leverage", k)))
		if res.Score < prev {
			t.Fatalf("score dropped from %v to %v after adding buzzword %d", prev, res.Score, k)
		}
		prev = res.Score
	}
	if prev == 0 {
		t.Fatal("expected buzzwords to raise the score")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	text := jargonText()
	first := Analyze(text)
	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Analyze(text)
		}(i)
	}
	wg.Wait()
	for i, res := range results {
		if !reflect.DeepEqual(first, res) {
			t.Fatalf("result %d differs:\n%+v\n%+v", i, first, res)
		}
	}
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	engine := newTestEngine(t, nil)
	res := engine.Analyze(Input{Text: jargonText(), Language: "fr"})
	if res.Score != 0 || res.Confidence != ConfidenceInsufficient {
		t.Fatalf("expected empty result for unsupported language, got %+v", res)
	}
	if len(res.Details) != 1 || !strings.Contains(res.Details[0], "Unsupported language") {
		t.Fatalf("unexpected details: %v", res.Details)
	}
	if res := engine.Analyze(Input{Text: jargonText(), Language: "EN"}); res.Score == 0 {
		t.Fatal("expected EN to be analyzed")
	}
}

func TestScoresStayBounded(t *testing.T) {
	inputs := []string{
		jargonText(),
		strings.Repeat("leverage ", 400),
		strings.Repeat("Furthermore, moreover, however. ", 80),
		strings.Repeat("- item\n", 200),
		strings.Repeat("?!.", 500),
		strings.Repeat("\x00\xff weird ", 100),
	}
	for _, text := range inputs {
		res := Analyze(text)
		if math.IsNaN(res.Score) || res.Score < 0 || res.Score > 1 {
			t.Fatalf("score out of range: %v", res.Score)
		}
		for key, v := range res.Signals {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("signal %s out of range: %v", key, v)
			}
		}
	}
}

func TestWeightOverride(t *testing.T) {
	engine := newTestEngine(t, func(c *Config) {
		c.Weights = map[string]float64{corpus.BuzzwordClustering: 0.44}
	})
	res := engine.Analyze(Input{Text: leverageText})
	if math.Abs(res.Score-0.44) > 1e-9 {
		t.Fatalf("expected overridden weight to apply, got %v", res.Score)
	}
}

func TestDomainMultiplier(t *testing.T) {
	engine := newTestEngine(t, func(c *Config) {
		c.Domains = domain.DefaultProfiles()
		c.Domains[domain.Casual] = domain.Profile{ThresholdScale: 1, ScoreMultiplier: 0.5}
	})
	res := engine.Analyze(Input{Text: leverageText})
	if math.Abs(res.Score-0.11) > 1e-9 {
		t.Fatalf("expected casual multiplier to halve the score, got %v", res.Score)
	}
}

func TestExtraTermsExtendLexicon(t *testing.T) {
	text := strings.ReplaceAll(leverageText, "leverage", "synergize")
	if res := Analyze(text); res.ActivePatterns != 0 {
		t.Fatalf("expected no patterns before extension, got %+v", res.Signals)
	}
	engine := newTestEngine(t, func(c *Config) {
		c.ExtraTerms = map[corpus.Category][]string{corpus.BuzzwordVerbs: {"synergize"}}
	})
	if res := engine.Analyze(Input{Text: text}); res.Signals[corpus.BuzzwordClustering] != 1 {
		t.Fatalf("expected custom term to fire buzzword clustering, got %+v", res.Signals)
	}
	if want := corpus.Default().Version() + corpus.MergedSuffix; engine.LexiconVersion() != want {
		t.Fatalf("expected extended lexicon version %q, got %q", want, engine.LexiconVersion())
	}
}

func TestMinWordsCannotDropBelowFloor(t *testing.T) {
	engine := newTestEngine(t, func(c *Config) { c.MinWords = 20 })
	if engine.Config().MinWords != MinWordsFloor {
		t.Fatalf("expected min words clamped to %d, got %d", MinWordsFloor, engine.Config().MinWords)
	}
	text := strings.TrimSpace(strings.Repeat("the quiet harbour town slept late. ", 6))
	res := engine.Analyze(Input{Text: text})
	if res.Verdict != VerdictVeryUnlikely || res.Score != 0 || len(res.Details) != 1 {
		t.Fatalf("expected too-short result for 36 words, got %+v", res)
	}
	if res.Details[0] != fmt.Sprintf(TooShortDetail, MinWordsFloor) {
		t.Fatalf("unexpected detail %q", res.Details[0])
	}
}

func hasDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

func TestNewEngineLogsSkippedTerms(t *testing.T) {
	log := &recordLogger{}
	lex := corpus.New("test", map[corpus.Category][]string{
		corpus.BuzzwordVerbs: {"leverage", "  ", "-dash"},
	})
	NewEngine(DefaultConfig(), lex, log)
	warns := log.find("WARN")
	if len(warns) != 1 || !strings.Contains(warns[0], "-dash") {
		t.Fatalf("expected one warning naming the skipped entry, got %v", warns)
	}
}

func TestAggregateBoostTiers(t *testing.T) {
	cfg := DefaultConfig().normalized()
	sig := func(key string, score float64) features.Signal { return features.Signal{Key: key, Score: score} }

	four := []features.Signal{
		sig(corpus.TechnicalJargonClustering, 0.6),
		sig(corpus.BuzzwordClustering, 0.6),
		sig(corpus.NoContractions, 0.3),
		sig(corpus.NoRhetoricalQuestions, 0.3),
	}
	agg := aggregate(four, cfg, 1)
	want := (0.6*0.25 + 0.6*0.22 + 0.3*0.10 + 0.3*0.08) * 1.2
	if agg.Boost != 1.2 || math.Abs(agg.Score-want) > 1e-9 {
		t.Fatalf("expected medium boost, got %+v want score %v", agg, want)
	}

	agg = aggregate(four[:3], cfg, 1)
	if agg.Boost != 1 {
		t.Fatalf("expected no boost with three signals, got %v", agg.Boost)
	}

	nan := append([]features.Signal{sig(corpus.HedgingLanguage, math.NaN())}, four...)
	agg = aggregate(nan, cfg, math.Inf(1))
	if math.IsNaN(agg.Score) || agg.Score > 1 {
		t.Fatalf("expected finite bounded score, got %v", agg.Score)
	}
}

func TestVerdictBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, VerdictVeryUnlikely},
		{0.19, VerdictVeryUnlikely},
		{0.2, VerdictUnlikely},
		{0.4, VerdictPossibly},
		{0.6, VerdictLikely},
		{0.8, VerdictVeryLikely},
		{1, VerdictVeryLikely},
	}
	for _, tc := range cases {
		if got := Verdict(tc.score); got != tc.want {
			t.Fatalf("Verdict(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestConfidenceLabel(t *testing.T) {
	cases := []struct {
		active, strong int
		want           string
	}{
		{0, 0, ConfidenceInsufficient},
		{2, 0, ConfidenceMinimal},
		{1, 1, ConfidenceLow},
		{3, 2, ConfidenceMedium},
		{4, 2, ConfidenceHigh},
		{6, 2, ConfidenceHigh},
		{6, 3, ConfidenceVeryHigh},
	}
	for _, tc := range cases {
		if got := ConfidenceLabel(tc.active, tc.strong); got != tc.want {
			t.Fatalf("ConfidenceLabel(%d, %d) = %q, want %q", tc.active, tc.strong, got, tc.want)
		}
	}
}
