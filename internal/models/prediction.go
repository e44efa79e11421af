package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PredictionMethod identifies which tier produced a prediction
type PredictionMethod string

const (
	MethodMonteCarlo        PredictionMethod = "monte_carlo"
	MethodEnhancedStats     PredictionMethod = "enhanced_stats"
	MethodAdjustedTeamStats PredictionMethod = "adjusted_team_stats"
)

// Prediction is the single normalized prediction record produced per
// game. Keyed by game id and upserted: at most one live prediction per
// game, re-running overwrites.
type Prediction struct {
	ID                 uuid.UUID        `db:"id" json:"id" validate:"required,uuid4"`
	GameID             int64            `db:"game_id" json:"game_id" validate:"required,gt=0"`
	Method             PredictionMethod `db:"method" json:"method" validate:"required,oneof=monte_carlo enhanced_stats adjusted_team_stats"`
	HomeWinProbability float64          `db:"home_win_probability" json:"home_win_probability" validate:"gt=0,lt=1"`
	AwayWinProbability float64          `db:"away_win_probability" json:"away_win_probability" validate:"gt=0,lt=1"`
	PredictedHomeScore int              `db:"predicted_home_score" json:"predicted_home_score" validate:"gte=0"`
	PredictedAwayScore int              `db:"predicted_away_score" json:"predicted_away_score" validate:"gte=0"`
	PredictedTotalRuns float64          `db:"predicted_total_runs" json:"predicted_total_runs" validate:"gte=0"`
	OverUnderLine      float64          `db:"over_under_line" json:"over_under_line" validate:"gte=0"`
	OverProbability    float64          `db:"over_probability" json:"over_probability" validate:"gte=0,lte=1"`
	UnderProbability   float64          `db:"under_probability" json:"under_probability" validate:"gte=0,lte=1"`
	ConfidenceScore    float64          `db:"confidence_score" json:"confidence_score" validate:"gte=0,lte=0.95"`
	SampleSize         int              `db:"sample_size" json:"sample_size" validate:"gte=0"`
	Factors            json.RawMessage  `db:"factors" json:"factors"`
	PredictedAt        time.Time        `db:"predicted_at" json:"predicted_at" validate:"required"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}

// KeyFactors is the diagnostic bag attached to every prediction. The
// numeric factors echo what was actually applied during evaluation;
// the rest describes data coverage so a reviewer can judge the result.
type KeyFactors struct {
	ParkFactor       float64  `json:"park_factor"`
	WeatherImpact    float64  `json:"weather_impact"`
	HomeAdvantage    float64  `json:"home_advantage"`
	PitcherFatigue   float64  `json:"pitcher_fatigue"`
	DataQualityScore float64  `json:"data_quality_score"`
	HomeLineupSize   int      `json:"home_lineup_size"`
	AwayLineupSize   int      `json:"away_lineup_size"`
	HomePitcherName  string   `json:"home_pitcher_name,omitempty"`
	AwayPitcherName  string   `json:"away_pitcher_name,omitempty"`
	DefaultedBatters int      `json:"defaulted_batters"`
	Notes            []string `json:"notes,omitempty"`
}

// GetFactor retrieves a factor value from the Factors JSON
func (p *Prediction) GetFactor(name string) (interface{}, error) {
	if p.Factors == nil {
		return nil, nil
	}

	var factors map[string]interface{}
	if err := json.Unmarshal(p.Factors, &factors); err != nil {
		return nil, err
	}

	return factors[name], nil
}

// DecodeFactors decodes the typed diagnostic bag from the Factors JSON
func (p *Prediction) DecodeFactors() (*KeyFactors, error) {
	if p.Factors == nil {
		return &KeyFactors{}, nil
	}
	kf := &KeyFactors{}
	if err := json.Unmarshal(p.Factors, kf); err != nil {
		return nil, err
	}
	return kf, nil
}

// EncodeFactors encodes the diagnostic bag into the Factors JSON
func (p *Prediction) EncodeFactors(kf *KeyFactors) error {
	data, err := json.Marshal(kf)
	if err != nil {
		return err
	}
	p.Factors = data
	return nil
}

// ImpliedFavorite returns the team id favored by the prediction
func (p *Prediction) ImpliedFavorite(homeTeamID, awayTeamID int64) int64 {
	if p.HomeWinProbability >= p.AwayWinProbability {
		return homeTeamID
	}
	return awayTeamID
}
