package aidetect

import (
	"fmt"
	"math"

	"prosescan/internal/corpus"
	"prosescan/internal/features"
)

type aggregation struct {
	Score  float64
	Boost  float64
	Active int
	Strong int
}

// aggregate combines signals into one bounded score: weighted sum, domain
// multiplier, convergence boost, clamp.
func aggregate(signals []features.Signal, cfg Config, multiplier float64) aggregation {
	sum := 0.0
	strong := 0
	for _, s := range signals {
		if !finite(s.Score) {
			continue
		}
		sum += s.Score * corpus.Weight(s.Key, cfg.Weights, cfg.DefaultWeight)
		if s.Score > cfg.StrongSignal {
			strong++
		}
	}
	if !finite(multiplier) || multiplier < 0 {
		multiplier = 1
	}
	sum *= multiplier

	agg := aggregation{Boost: 1, Active: len(signals), Strong: strong}
	for _, b := range cfg.Boosts {
		if agg.Active >= b.MinActive && strong >= b.MinStrong {
			agg.Boost = b.Multiplier
			break
		}
	}
	agg.Score = safeScore(sum * agg.Boost)
	return agg
}

func boostDetail(boost float64) string {
	return fmt.Sprintf("Multiple AI patterns detected - confidence boost applied (%.1fx)", boost)
}

// safeScore clamps v to [0,1] and maps NaN and infinities to 0.
func safeScore(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return clamp01(v)
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
