package engine

import (
	"github.com/yourusername/diamond-sim/internal/models"
)

// batterRates are the resolved per-batter inputs to a plate
// appearance. Defaulted marks that position-class rates were
// substituted for a thin or missing season sample.
type batterRates struct {
	avg       float64
	obp       float64
	slg       float64
	hrRate    float64
	defaulted bool
}

// resolveBatterRates picks season rates when the sample is reliable
// (over 50 at-bats) and position-class defaults otherwise. Missing
// player stats are never fatal; the substitution is recorded so the
// confidence scorer and diagnostics can see it.
func resolveBatterRates(profile *models.BatterProfile, position string, p Params) batterRates {
	if profile != nil && profile.HasReliableSample() {
		r := batterRates{
			avg:    profile.AVG,
			obp:    profile.OBP,
			slg:    profile.SLG,
			hrRate: profile.HomeRunRate(),
		}
		if r.hrRate == 0 {
			r.hrRate = p.DefaultHomeRunRate
		}
		return r
	}

	r := batterRates{defaulted: true, hrRate: p.DefaultHomeRunRate}
	switch position {
	case "1B", "DH":
		r.avg, r.obp, r.slg = p.PowerClassAVG, p.PowerClassOBP, p.PowerClassSLG
	case "C", "SS":
		r.avg, r.obp, r.slg = p.GloveClassAVG, p.GloveClassOBP, p.GloveClassSLG
	default:
		r.avg, r.obp, r.slg = p.LeagueAverageAVG, p.LeagueAverageOBP, p.LeagueAverageSLG
	}
	return r
}

// pitcherEffectiveness converts the opposing starter's ERA into a
// bounded multiplier around the league baseline. A low ERA yields a
// value below 1 which is applied inversely to the batter's on-base
// rate: harder to reach base against.
func pitcherEffectiveness(pitcher *models.PitcherProfile, p Params) float64 {
	era := models.LeagueAverageERA
	if pitcher != nil && pitcher.ERA > 0 {
		era = pitcher.ERA
	}
	eff := era / p.PitcherBaselineERA
	if eff < p.EffectivenessMin {
		eff = p.EffectivenessMin
	}
	if eff > p.EffectivenessMax {
		eff = p.EffectivenessMax
	}
	return eff
}

// weatherMultiplier folds temperature, wind and the fixed home-field
// edge into a single multiplier on offensive rates.
func weatherMultiplier(w *models.WeatherSnapshot, home bool, p Params) float64 {
	m := 1.0
	if w != nil {
		if w.TemperatureF > p.HotTempF {
			m += p.HotTempBonus
		} else if w.TemperatureF < p.ColdTempF {
			m -= p.ColdTempPenalty
		}
		if w.WindSpeedMPH > p.WindyMPH {
			m += p.WindBonus
		}
	}
	if home {
		m *= p.HomeFieldMultiplier
	}
	return m
}

// halfState is the transient baserunner/run tally for one team within
// one trial. Runners are a capped count, not individual bases.
type halfState struct {
	runners int
	runs    int
}

func (h *halfState) addRunner(cap int) {
	if h.runners < cap {
		h.runners++
	}
}

// simulatePlateAppearance runs one batter against the opposing
// starter, mutating the half state. Draw order is fixed so seeded
// runs are reproducible: classification draw, then the branch draws,
// then the independent home-run check.
func simulatePlateAppearance(rates batterRates, effectiveness float64, weather float64, env *models.Environment, state *halfState, src Source, p Params) {
	adjOBP := rates.obp * (1 / effectiveness) * weather
	adjSLG := rates.slg * env.RunFactor() * weather

	roll := src.Float64()
	switch {
	case roll < adjOBP*p.OnBaseScale:
		extraBaseProb := (adjSLG - rates.avg) / p.ExtraBaseDivisor
		if src.Float64() < extraBaseProb {
			// Extra-base hit clears the bases; the batter sometimes
			// comes all the way around, otherwise holds as a runner.
			state.runs += state.runners
			state.runners = 0
			if src.Float64() < p.ExtraBaseScoreRate {
				state.runs++
			} else {
				state.addRunner(p.MaxBaserunners)
			}
		} else {
			// Single: each runner converts independently, the rest
			// hold, the batter takes a base.
			remaining := 0
			for i := 0; i < state.runners; i++ {
				if src.Float64() < p.SingleAdvanceRate {
					state.runs++
				} else {
					remaining++
				}
			}
			state.runners = remaining
			state.addRunner(p.MaxBaserunners)
		}
	case roll < p.OutThreshold:
		// Out, with a chance of driving a runner in.
		if state.runners > 0 && src.Float64() < p.ProductiveOutRate {
			state.runs++
			state.runners--
		}
	default:
		// Plain out, no advancement.
	}

	// Home-run check is independent of the classification above.
	hrProb := rates.hrRate * env.HomeRunFactor() * weather
	if src.Float64() < hrProb {
		state.runs += state.runners + 1
		state.runners = 0
	}
}

// simulateTeamRuns processes a full batting order once and converts
// any stranded runners at the residual rate. Returns the integer run
// total for that team in one trial.
func simulateTeamRuns(batters []*models.LineupEntry, snap *Snapshot, opposingPitcher *models.PitcherProfile, home bool, src Source, p Params) int {
	effectiveness := pitcherEffectiveness(opposingPitcher, p)
	weather := weatherMultiplier(weatherOf(snap), home, p)

	state := &halfState{}
	for _, batter := range batters {
		rates := resolveBatterRates(snap.BatterProfile(batter.PlayerID), batter.Position, p)
		simulatePlateAppearance(rates, effectiveness, weather, snap.Env, state, src, p)
	}

	for i := 0; i < state.runners; i++ {
		if src.Float64() < p.ResidualRunnerRate {
			state.runs++
		}
	}

	return state.runs
}

// countDefaultedBatters reports how many lineup slots fall back to
// position-class rates. Static per snapshot, used for diagnostics and
// the confidence real-stats bonus.
func countDefaultedBatters(batters []*models.LineupEntry, snap *Snapshot, p Params) int {
	defaulted := 0
	for _, batter := range batters {
		if resolveBatterRates(snap.BatterProfile(batter.PlayerID), batter.Position, p).defaulted {
			defaulted++
		}
	}
	return defaulted
}

func weatherOf(snap *Snapshot) *models.WeatherSnapshot {
	if snap == nil || snap.Env == nil {
		return nil
	}
	return snap.Env.Weather
}
