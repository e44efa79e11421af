package engine

import (
	"github.com/yourusername/diamond-sim/internal/config"
)

// Params collects every hand-tuned constant used by the tiered
// prediction pipeline. They are configuration, not literals in
// simulation logic, so recalibration never touches the simulator.
//
// The baserunner-advancement rates (ProductiveOutRate, the single and
// extra-base conversion rates) are simplifying heuristics carried over
// for behavioral parity; see DESIGN.md for the calibration-review flag.
type Params struct {
	// Completeness assessment
	BattingSlots     int     // full batting slots across both teams
	PitchingSlots    int     // expected starting pitchers
	BattingWeight    float64 // weight of batting completeness in the score
	PitchingWeight   float64 // weight of pitching completeness in the score
	ProjectedPenalty float64 // multiplier when any lineup entry is projected

	// Tier thresholds on the completeness score
	MonteCarloThreshold float64
	EnhancedThreshold   float64

	// Plate-appearance model
	PitcherBaselineERA   float64 // league baseline ERA the effectiveness ratio is anchored to
	EffectivenessMin     float64
	EffectivenessMax     float64
	HotTempF             float64
	ColdTempF            float64
	HotTempBonus         float64
	ColdTempPenalty      float64
	WindyMPH             float64
	WindBonus            float64
	HomeFieldMultiplier  float64
	OnBaseScale          float64 // fraction of adjusted OBP that classifies as an on-base event
	OutThreshold         float64 // draw ceiling for an out once on-base is ruled out
	ProductiveOutRate    float64 // chance an out scores a runner when any are on
	ExtraBaseDivisor     float64 // (adjSLG - rawAVG) / divisor = extra-base probability
	ExtraBaseScoreRate   float64 // chance the batter comes all the way around on an extra-base hit
	SingleAdvanceRate    float64 // per-runner chance of scoring on a single
	DefaultHomeRunRate   float64 // HR/AB used when the batter has no at-bats on record
	ResidualRunnerRate   float64 // per-runner conversion once the order has been processed
	MaxBaserunners       int

	// Position-class default rates for batters with thin samples
	PowerClassAVG, PowerClassOBP, PowerClassSLG          float64 // 1B / DH
	GloveClassAVG, GloveClassOBP, GloveClassSLG          float64 // C / SS
	LeagueAverageAVG, LeagueAverageOBP, LeagueAverageSLG float64

	// Monte Carlo execution
	DefaultIterations int
	TrialWorkers      int // parallel trial workers; 1 means serial

	// Fallback models
	EnhancedHomeBonus  float64
	AdjustedHomeBonus  float64
	LineupQualityScale float64 // scales (completeness - 0.5) into the quality adjustment
	WinProbFloor       float64
	WinProbCeiling     float64

	// Confidence scoring
	MonteCarloBaseConfidence float64
	EnhancedBaseConfidence   float64
	AdjustedBaseConfidence   float64
	FullLineupBonus          float64
	StartersBonus            float64
	RealStatsBonus           float64 // maximum bonus at 100% non-default batters
	ConfidenceCap            float64

	// Result assembly
	OverProbability  float64 // fixed heuristic when mean total clears the line
	UnderProbability float64
}

// DefaultParams returns the calibrated production constants.
func DefaultParams() Params {
	return Params{
		BattingSlots:     18,
		PitchingSlots:    2,
		BattingWeight:    0.7,
		PitchingWeight:   0.3,
		ProjectedPenalty: 0.7,

		MonteCarloThreshold: 0.8,
		EnhancedThreshold:   0.5,

		PitcherBaselineERA:  4.50,
		EffectivenessMin:    0.7,
		EffectivenessMax:    1.3,
		HotTempF:            80,
		ColdTempF:           60,
		HotTempBonus:        0.02,
		ColdTempPenalty:     0.02,
		WindyMPH:            15,
		WindBonus:           0.01,
		HomeFieldMultiplier: 1.03,
		OnBaseScale:         0.8,
		OutThreshold:        0.70,
		ProductiveOutRate:   0.15,
		ExtraBaseDivisor:    3.0,
		ExtraBaseScoreRate:  0.30,
		SingleAdvanceRate:   0.40,
		DefaultHomeRunRate:  0.025,
		ResidualRunnerRate:  0.25,
		MaxBaserunners:      3,

		PowerClassAVG: 0.270, PowerClassOBP: 0.340, PowerClassSLG: 0.480,
		GloveClassAVG: 0.240, GloveClassOBP: 0.310, GloveClassSLG: 0.380,
		LeagueAverageAVG: 0.250, LeagueAverageOBP: 0.320, LeagueAverageSLG: 0.400,

		DefaultIterations: 10000,
		TrialWorkers:      4,

		EnhancedHomeBonus:  0.3,
		AdjustedHomeBonus:  0.2,
		LineupQualityScale: 0.1,
		WinProbFloor:       0.10,
		WinProbCeiling:     0.90,

		MonteCarloBaseConfidence: 0.7,
		EnhancedBaseConfidence:   0.6,
		AdjustedBaseConfidence:   0.3,
		FullLineupBonus:          0.1,
		StartersBonus:            0.05,
		RealStatsBonus:           0.1,
		ConfidenceCap:            0.95,

		OverProbability:  0.55,
		UnderProbability: 0.45,
	}
}

// FromConfig overlays configured overrides on the calibrated defaults.
// Zero values in the config leave the default in place.
func FromConfig(cfg *config.PredictionConfig) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}

	if cfg.Iterations > 0 {
		p.DefaultIterations = cfg.Iterations
	}
	if cfg.Workers > 0 {
		p.TrialWorkers = cfg.Workers
	}
	if cfg.HomeFieldMultiplier > 0 {
		p.HomeFieldMultiplier = cfg.HomeFieldMultiplier
	}
	if cfg.ProjectedLineupPenalty > 0 {
		p.ProjectedPenalty = cfg.ProjectedLineupPenalty
	}
	if cfg.WinProbFloor > 0 {
		p.WinProbFloor = cfg.WinProbFloor
	}
	if cfg.WinProbCeiling > 0 {
		p.WinProbCeiling = cfg.WinProbCeiling
	}
	return p
}
