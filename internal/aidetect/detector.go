package aidetect

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"prosescan/internal/corpus"
	"prosescan/internal/domain"
	"prosescan/internal/features"
	"prosescan/internal/segment"
)

const (
	TooShortDetail   = "Text too short for reliable analysis (minimum %d words required)"
	NoPatternsDetail = "No significant AI patterns detected"
)

type Input struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
	Language   string `json:"language"`
}

type Metrics struct {
	Words              int     `json:"words"`
	Sentences          int     `json:"sentences"`
	Paragraphs         int     `json:"paragraphs"`
	ListBlocks         int     `json:"list_blocks"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	AvgParagraphLength float64 `json:"avg_paragraph_length"`
	TransitionDensity  float64 `json:"transition_density"`
	BuzzwordDensity    float64 `json:"buzzword_density"`
	PersonalVoice      bool    `json:"personal_voice"`
	Contractions       int     `json:"contractions"`
	TechnicalTerms     int     `json:"technical_terms"`
}

type Result struct {
	DocumentID     string             `json:"document_id,omitempty"`
	Score          float64            `json:"score"`
	Verdict        string             `json:"verdict"`
	Confidence     string             `json:"confidence"`
	Domain         domain.Label       `json:"domain"`
	Details        []string           `json:"details"`
	Signals        map[string]float64 `json:"signals"`
	ActivePatterns int                `json:"active_patterns"`
	StrongPatterns int                `json:"strong_patterns"`
	Metrics        Metrics            `json:"metrics"`
}

type Logger interface {
	Log(level, stage, message, detail string)
}

// Engine scores text against one immutable configuration and lexicon. It
// holds no per-call state and may be shared across goroutines.
type Engine struct {
	cfg        Config
	matchers   *corpus.Matchers
	classifier domain.Classifier
	logger     Logger
}

func NewEngine(cfg Config, lex corpus.Lexicon, logger Logger) *Engine {
	cfg = cfg.normalized()
	if len(cfg.ExtraTerms) > 0 {
		lex = lex.Merge(cfg.ExtraTerms)
	}
	classifier := domain.DefaultClassifier()
	classifier.MinVotes = cfg.DomainMinVotes
	e := &Engine{
		cfg:        cfg,
		matchers:   corpus.Compile(lex),
		classifier: classifier,
		logger:     logger,
	}
	if skipped := e.matchers.Skipped(); len(skipped) > 0 {
		e.log("WARN", "CORPUS", "skipped malformed lexicon entries", strings.Join(skipped, "; "))
	}
	e.log("INFO", "CORPUS", "lexicon compiled", fmt.Sprintf("version=%s terms=%d", lex.Version(), lex.Size()))
	return e
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return NewEngine(DefaultConfig(), corpus.Default(), nil)
})

// Analyze scores text with the default configuration and embedded lexicon.
func Analyze(text string) Result {
	return defaultEngine().Analyze(Input{Text: text})
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg.normalized()
}

func (e *Engine) LexiconVersion() string {
	return e.matchers.Version()
}

func (e *Engine) Analyze(in Input) Result {
	start := time.Now()
	res := Result{
		DocumentID: in.DocumentID,
		Domain:     domain.Casual,
		Details:    []string{},
		Signals:    map[string]float64{},
	}
	if lang := strings.TrimSpace(in.Language); lang != "" && !strings.EqualFold(lang, "en") {
		res.Details = append(res.Details, fmt.Sprintf("Unsupported language %q: only English text can be analyzed", lang))
		return e.finish(res, start)
	}

	seg := segment.Split(in.Text)
	res.Metrics = Metrics{
		Words:      seg.WordCount(),
		Sentences:  seg.SentenceCount(),
		Paragraphs: seg.ParagraphCount(),
		ListBlocks: len(seg.ListBlocks),
	}
	if seg.WordCount() < e.cfg.MinWords {
		res.Details = append(res.Details, fmt.Sprintf(TooShortDetail, e.cfg.MinWords))
		return e.finish(res, start)
	}

	res.Domain = e.classifier.ClassifyWords(seg.Words)
	profile := domain.ProfileFor(e.cfg.Domains, res.Domain)
	fin := features.Input{
		Seg:        seg,
		Matchers:   e.matchers,
		Thresholds: e.cfg.Thresholds,
		Scale:      profile.ThresholdScale,
	}

	signals := features.Extract(fin)
	agg := aggregate(signals, e.cfg, profile.ScoreMultiplier)

	res.Score = agg.Score
	res.ActivePatterns = agg.Active
	res.StrongPatterns = agg.Strong
	for _, s := range signals {
		res.Signals[s.Key] = s.Score
		res.Details = append(res.Details, s.Detail)
	}
	if agg.Boost > 1 {
		res.Details = append([]string{boostDetail(agg.Boost)}, res.Details...)
	}
	if len(res.Details) == 0 {
		res.Details = append(res.Details, NoPatternsDetail)
	}
	res.Metrics = buildMetrics(seg, features.Measure(fin))
	return e.finish(res, start)
}

func (e *Engine) finish(res Result, start time.Time) Result {
	res.Score = safeScore(res.Score)
	res.Verdict = Verdict(res.Score)
	res.Confidence = ConfidenceLabel(res.ActivePatterns, res.StrongPatterns)
	e.log("ANALYSIS", "AI", "analysis completed", fmt.Sprintf("document_id=%s words=%d domain=%s score=%.3f active=%d strong=%d duration_ms=%d",
		defaultIfEmpty(res.DocumentID, "-"), res.Metrics.Words, res.Domain, res.Score, res.ActivePatterns, res.StrongPatterns, time.Since(start).Milliseconds()))
	return res
}

func (e *Engine) log(level, stage, message, detail string) {
	if e.logger != nil {
		e.logger.Log(level, stage, message, detail)
	}
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
