package domain

import (
	"strings"

	"prosescan/internal/segment"
)

type Label string

const (
	Academic Label = "academic"
	Business Label = "business"
	Creative Label = "creative"
	Casual   Label = "casual"
)

// Profile scales extractor thresholds and the aggregate score for a domain.
// Formal domains get a larger threshold scale and a smaller multiplier so
// jargon weighs less against them.
type Profile struct {
	ThresholdScale  float64 `yaml:"threshold_scale" json:"threshold_scale"`
	ScoreMultiplier float64 `yaml:"score_multiplier" json:"score_multiplier"`
}

func DefaultProfiles() map[Label]Profile {
	return map[Label]Profile{
		Academic: {ThresholdScale: 1.5, ScoreMultiplier: 0.6},
		Business: {ThresholdScale: 1.3, ScoreMultiplier: 0.75},
		Creative: {ThresholdScale: 1.0, ScoreMultiplier: 0.9},
		Casual:   {ThresholdScale: 1.0, ScoreMultiplier: 1.0},
	}
}

// ProfileFor returns the profile for label, falling back to a neutral one.
func ProfileFor(profiles map[Label]Profile, label Label) Profile {
	p, ok := profiles[label]
	if !ok {
		return Profile{ThresholdScale: 1, ScoreMultiplier: 1}
	}
	if p.ThresholdScale <= 0 {
		p.ThresholdScale = 1
	}
	if p.ScoreMultiplier < 0 || p.ScoreMultiplier > 1 {
		p.ScoreMultiplier = 1
	}
	return p
}

// Priority is the order in which domains are checked against the vote
// threshold.
var Priority = []Label{Academic, Business, Creative}

type Classifier struct {
	MinVotes int
	Keywords map[Label][]string
}

func DefaultClassifier() Classifier {
	return Classifier{
		MinVotes: 2,
		Keywords: map[Label][]string{
			Academic: {"research", "study", "studies", "methodology", "hypothesis", "empirical", "findings", "literature", "participants"},
			Business: {"strategy", "market", "markets", "revenue", "customers", "stakeholders", "quarterly", "roi", "sales"},
			Creative: {"story", "character", "characters", "plot", "protagonist", "chapter", "scene", "poem"},
		},
	}
}

// Classify labels text by keyword votes. The first domain in Priority whose
// vote count reaches MinVotes wins; otherwise the text is Casual.
func (c Classifier) Classify(text string) Label {
	return c.ClassifyWords(segment.Words(text))
}

func (c Classifier) ClassifyWords(words []string) Label {
	minVotes := c.MinVotes
	if minVotes <= 0 {
		minVotes = 1
	}
	lookup := map[string][]Label{}
	for label, kws := range c.Keywords {
		for _, kw := range kws {
			kw = strings.ToLower(strings.TrimSpace(kw))
			lookup[kw] = append(lookup[kw], label)
		}
	}
	votes := map[Label]int{}
	for _, w := range words {
		for _, label := range lookup[w] {
			votes[label]++
		}
	}
	for _, label := range Priority {
		if votes[label] >= minVotes {
			return label
		}
	}
	return Casual
}
