package models

import (
	"time"
)

// ParkFactors are venue multipliers relative to a neutral park (1.0)
type ParkFactors struct {
	Venue         string    `db:"venue" json:"venue" validate:"required"`
	RunFactor     float64   `db:"run_factor" json:"run_factor" validate:"gt=0"`
	HomeRunFactor float64   `db:"home_run_factor" json:"home_run_factor" validate:"gt=0"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// WeatherSnapshot is the ambient forecast taken at prediction time
type WeatherSnapshot struct {
	GameID        int64     `db:"game_id" json:"game_id" validate:"required,gt=0"`
	TemperatureF  float64   `db:"temperature_f" json:"temperature_f"`
	WindSpeedMPH  float64   `db:"wind_speed_mph" json:"wind_speed_mph" validate:"gte=0"`
	WindDirection string    `db:"wind_direction" json:"wind_direction"`
	Conditions    string    `db:"conditions" json:"conditions"`
	CapturedAt    time.Time `db:"captured_at" json:"captured_at"`
}

// Environment bundles the optional park and weather context for one
// game. Either part may be nil; absence means neutral factors.
type Environment struct {
	Park    *ParkFactors
	Weather *WeatherSnapshot
}

// NeutralParkFactors returns the 1.0-centered default for an unknown venue
func NeutralParkFactors(venue string) *ParkFactors {
	return &ParkFactors{Venue: venue, RunFactor: 1.0, HomeRunFactor: 1.0}
}

// RunFactor returns the park run multiplier, neutral when unknown
func (e *Environment) RunFactor() float64 {
	if e == nil || e.Park == nil {
		return 1.0
	}
	return e.Park.RunFactor
}

// HomeRunFactor returns the park home-run multiplier, neutral when unknown
func (e *Environment) HomeRunFactor() float64 {
	if e == nil || e.Park == nil {
		return 1.0
	}
	return e.Park.HomeRunFactor
}
