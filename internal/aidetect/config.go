package aidetect

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"prosescan/internal/corpus"
	"prosescan/internal/domain"
	"prosescan/internal/features"
)

// Boost multiplies the aggregate score when enough patterns converge.
type Boost struct {
	MinActive  int     `yaml:"min_active"`
	MinStrong  int     `yaml:"min_strong"`
	Multiplier float64 `yaml:"multiplier"`
}

type Config struct {
	MinWords       int                             `yaml:"min_words"`
	StrongSignal   float64                         `yaml:"strong_signal"`
	DefaultWeight  float64                         `yaml:"default_weight"`
	Weights        map[string]float64              `yaml:"weights,omitempty"`
	Boosts         []Boost                         `yaml:"boosts"`
	Thresholds     features.Thresholds             `yaml:"thresholds"`
	DomainMinVotes int                             `yaml:"domain_min_votes"`
	Domains        map[domain.Label]domain.Profile `yaml:"domains"`
	ExtraTerms     map[corpus.Category][]string    `yaml:"extra_terms,omitempty"`
}

// MinWordsFloor is the smallest word count the engine will score.
const MinWordsFloor = 50

func DefaultConfig() Config {
	return Config{
		MinWords:      getenvInt("AI_MIN_WORDS", MinWordsFloor),
		StrongSignal:  getenvFloat("AI_STRONG_SIGNAL", 0.5),
		DefaultWeight: getenvFloat("AI_DEFAULT_WEIGHT", corpus.DefaultWeight),
		Weights:       map[string]float64{},
		Boosts: []Boost{
			{MinActive: 6, MinStrong: 3, Multiplier: getenvFloat("AI_BOOST_HIGH", 1.4)},
			{MinActive: 4, MinStrong: 2, Multiplier: getenvFloat("AI_BOOST_MEDIUM", 1.2)},
		},
		Thresholds:     features.DefaultThresholds(),
		DomainMinVotes: getenvInt("AI_DOMAIN_MIN_VOTES", 2),
		Domains:        domain.DefaultProfiles(),
	}
}

// LoadConfig overlays the YAML tuning file at path on DefaultConfig. Map
// entries merge with the defaults; the boost list is replaced when present.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(raw)
}

func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.normalized(), nil
}

// Encode renders c as a YAML tuning file.
func (c Config) Encode() ([]byte, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return raw, nil
}

// normalized replaces out-of-range values with defaults and detaches the
// maps and slices from the caller.
func (c Config) normalized() Config {
	def := features.DefaultThresholds()
	if c.MinWords < MinWordsFloor {
		c.MinWords = MinWordsFloor
	}
	if c.StrongSignal <= 0 || c.StrongSignal >= 1 {
		c.StrongSignal = 0.5
	}
	if c.DefaultWeight <= 0 || c.DefaultWeight > 1 {
		c.DefaultWeight = corpus.DefaultWeight
	}
	if c.DomainMinVotes <= 0 {
		c.DomainMinVotes = 2
	}
	if c.Thresholds == (features.Thresholds{}) {
		c.Thresholds = def
	}
	c.Weights = maps.Clone(c.Weights)
	c.Domains = maps.Clone(c.Domains)
	if c.Domains == nil {
		c.Domains = domain.DefaultProfiles()
	}
	boosts := make([]Boost, 0, len(c.Boosts))
	for _, b := range c.Boosts {
		if b.Multiplier >= 1 {
			boosts = append(boosts, b)
		}
	}
	// strongest tier first so the first match wins
	slices.SortStableFunc(boosts, func(a, b Boost) int {
		switch {
		case a.Multiplier > b.Multiplier:
			return -1
		case a.Multiplier < b.Multiplier:
			return 1
		}
		return 0
	})
	c.Boosts = boosts
	if c.ExtraTerms != nil {
		extra := make(map[corpus.Category][]string, len(c.ExtraTerms))
		for cat, terms := range c.ExtraTerms {
			extra[cat] = slices.Clone(terms)
		}
		c.ExtraTerms = extra
	}
	return c
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
