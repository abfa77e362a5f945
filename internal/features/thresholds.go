package features

// Thresholds holds every tunable constant the extractors use. Density
// thresholds are multiplied by the domain threshold scale at run time.
type Thresholds struct {
	JargonClusterMin       float64 `yaml:"jargon_cluster_min"`
	JargonTermWeight       float64 `yaml:"jargon_term_weight"`
	JargonDensityScale     float64 `yaml:"jargon_density_scale"`
	BuzzwordScoreMin       float64 `yaml:"buzzword_score_min"`
	BuzzwordVerbWeight     float64 `yaml:"buzzword_verb_weight"`
	BuzzwordNounWeight     float64 `yaml:"buzzword_noun_weight"`
	BuzzwordAdjWeight      float64 `yaml:"buzzword_adjective_weight"`
	BuzzwordPer1000Scale   float64 `yaml:"buzzword_per_1000_scale"`
	OpenerPerHit           float64 `yaml:"opener_per_hit"`
	PseudoInsightPerHit    float64 `yaml:"pseudo_insight_per_hit"`
	PlatitudePerHit        float64 `yaml:"platitude_per_hit"`
	HedgingDensityMin      float64 `yaml:"hedging_density_min"`
	TransitionDensityMin   float64 `yaml:"transition_density_min"`
	DensitySignalScale     float64 `yaml:"density_signal_scale"`
	AbsenceMinWords        int     `yaml:"absence_min_words"`
	VoicePenalty           float64 `yaml:"voice_penalty"`
	ContractionPenalty     float64 `yaml:"contraction_penalty"`
	QuestionMinSentences   int     `yaml:"question_min_sentences"`
	QuestionPenalty        float64 `yaml:"question_penalty"`
	SentenceMinCount       int     `yaml:"sentence_min_count"`
	SentenceVarianceMax    float64 `yaml:"sentence_variance_max"`
	SentenceVarianceScale  float64 `yaml:"sentence_variance_scale"`
	SentenceLengthFloor    float64 `yaml:"sentence_length_floor"`
	SentenceSignalCap      float64 `yaml:"sentence_signal_cap"`
	ParagraphMinCount      int     `yaml:"paragraph_min_count"`
	ParagraphVarianceMax   float64 `yaml:"paragraph_variance_max"`
	ParagraphVarianceScale float64 `yaml:"paragraph_variance_scale"`
	ParagraphSignalCap     float64 `yaml:"paragraph_signal_cap"`
	StarterMinSentences    int     `yaml:"starter_min_sentences"`
	StarterPrefixWords     int     `yaml:"starter_prefix_words"`
	StarterMinRepeats      int     `yaml:"starter_min_repeats"`
	StarterFractionMin     float64 `yaml:"starter_fraction_min"`
	ListMinBlocks          int     `yaml:"list_min_blocks"`
	ListVarianceScale      float64 `yaml:"list_variance_scale"`
	ListTripletBoost       float64 `yaml:"list_triplet_boost"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		JargonClusterMin:       1,
		JargonTermWeight:       0.4,
		JargonDensityScale:     1.5,
		BuzzwordScoreMin:       2,
		BuzzwordVerbWeight:     0.5,
		BuzzwordNounWeight:     0.4,
		BuzzwordAdjWeight:      0.3,
		BuzzwordPer1000Scale:   6,
		OpenerPerHit:           0.6,
		PseudoInsightPerHit:    0.7,
		PlatitudePerHit:        0.5,
		HedgingDensityMin:      0.2,
		TransitionDensityMin:   0.2,
		DensitySignalScale:     3,
		AbsenceMinWords:        150,
		VoicePenalty:           0.9,
		ContractionPenalty:     0.8,
		QuestionMinSentences:   8,
		QuestionPenalty:        0.6,
		SentenceMinCount:       5,
		SentenceVarianceMax:    30,
		SentenceVarianceScale:  50,
		SentenceLengthFloor:    10,
		SentenceSignalCap:      0.8,
		ParagraphMinCount:      3,
		ParagraphVarianceMax:   1,
		ParagraphVarianceScale: 2,
		ParagraphSignalCap:     0.9,
		StarterMinSentences:    5,
		StarterPrefixWords:     3,
		StarterMinRepeats:      3,
		StarterFractionMin:     0.2,
		ListMinBlocks:          2,
		ListVarianceScale:      4,
		ListTripletBoost:       0.2,
	}
}
