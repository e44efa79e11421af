package engine

import (
	"sync"

	"github.com/yourusername/diamond-sim/internal/models"
)

// SimulationOutcome aggregates a full Monte Carlo run. Only sums and
// counts are accumulated, so partial results from parallel workers
// merge in any order.
type SimulationOutcome struct {
	Iterations   int
	HomeWins     int
	MeanHomeRuns float64
	MeanAwayRuns float64
}

// HomeWinProbability returns the trial win ratio for the home team.
func (o *SimulationOutcome) HomeWinProbability() float64 {
	return float64(o.HomeWins) / float64(o.Iterations)
}

// MeanTotalRuns returns the mean combined run total per trial.
func (o *SimulationOutcome) MeanTotalRuns() float64 {
	return o.MeanHomeRuns + o.MeanAwayRuns
}

// Simulator runs independent full-game trials, each pushing both
// lineups through the plate-appearance model against the opposing
// starter. Trials never share mutable state beyond their contribution
// to the accumulator; a requested iteration count always runs to
// completion — cost is bounded solely by the caller's count.
type Simulator struct {
	params Params
}

// NewSimulator creates a simulator with the given parameters.
func NewSimulator(params Params) *Simulator {
	return &Simulator{params: params}
}

// matchup is the validated, resolved input for one game's trials.
type matchup struct {
	homeBatters []*models.LineupEntry
	awayBatters []*models.LineupEntry
	homePitcher *models.PitcherProfile
	awayPitcher *models.PitcherProfile
}

// Simulate runs iterations trials for the snapshot using sources from
// the factory. It fails fast on a non-positive iteration count and
// surfaces InsufficientLineupError when either batting order is below
// the usable minimum — the tier selector should have routed such games
// to a fallback model already.
func (s *Simulator) Simulate(snap *Snapshot, iterations int, strictPitching bool, factory SourceFactory) (*SimulationOutcome, error) {
	if iterations <= 0 {
		return nil, ErrZeroIterations
	}

	m, err := s.resolveMatchup(snap, strictPitching)
	if err != nil {
		return nil, err
	}

	workers := s.params.TrialWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > iterations {
		workers = iterations
	}

	type partial struct {
		homeRuns, awayRuns, homeWins int
	}

	partials := make([]partial, workers)
	perWorker := iterations / workers
	remainder := iterations % workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		wg.Add(1)
		go func(worker, trials int) {
			defer wg.Done()
			src := factory.New(worker)
			acc := &partials[worker]
			for i := 0; i < trials; i++ {
				home := simulateTeamRuns(m.homeBatters, snap, m.awayPitcher, true, src, s.params)
				away := simulateTeamRuns(m.awayBatters, snap, m.homePitcher, false, src, s.params)
				acc.homeRuns += home
				acc.awayRuns += away
				if home > away {
					acc.homeWins++
				}
			}
		}(w, count)
	}
	wg.Wait()

	outcome := &SimulationOutcome{Iterations: iterations}
	totalHome, totalAway := 0, 0
	for _, p := range partials {
		totalHome += p.homeRuns
		totalAway += p.awayRuns
		outcome.HomeWins += p.homeWins
	}
	outcome.MeanHomeRuns = float64(totalHome) / float64(iterations)
	outcome.MeanAwayRuns = float64(totalAway) / float64(iterations)

	return outcome, nil
}

func (s *Simulator) resolveMatchup(snap *Snapshot, strictPitching bool) (*matchup, error) {
	game := snap.Game
	m := &matchup{
		homeBatters: snap.BattingOrder(game.HomeTeamID),
		awayBatters: snap.BattingOrder(game.AwayTeamID),
	}

	if len(m.homeBatters) < models.MinUsableLineup {
		return nil, &InsufficientLineupError{GameID: game.ID, TeamID: game.HomeTeamID, Batters: len(m.homeBatters)}
	}
	if len(m.awayBatters) < models.MinUsableLineup {
		return nil, &InsufficientLineupError{GameID: game.ID, TeamID: game.AwayTeamID, Batters: len(m.awayBatters)}
	}

	var err error
	m.homePitcher, err = s.resolvePitcher(snap, game.HomeTeamID, strictPitching)
	if err != nil {
		return nil, err
	}
	m.awayPitcher, err = s.resolvePitcher(snap, game.AwayTeamID, strictPitching)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// resolvePitcher finds the starter's season line. Without a starter
// the strict policy errors; otherwise a league-average default stands
// in, which diagnostics record as a defaulted input.
func (s *Simulator) resolvePitcher(snap *Snapshot, teamID int64, strict bool) (*models.PitcherProfile, error) {
	starter := snap.StartingPitcher(teamID)
	if starter == nil {
		if strict {
			return nil, &InsufficientLineupError{GameID: snap.Game.ID, TeamID: teamID, Reason: "no starting pitcher resolved"}
		}
		return models.DefaultPitcherProfile(0, snap.Game.ScheduledAt.Year()), nil
	}
	if profile := snap.PitcherProfile(starter.PlayerID); profile != nil {
		return profile, nil
	}
	return models.DefaultPitcherProfile(starter.PlayerID, snap.Game.ScheduledAt.Year()), nil
}
