// Package engine implements the tiered game prediction pipeline:
// completeness assessment, tier selection, Monte Carlo simulation or
// statistical fallback, confidence scoring and result assembly.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/diamond-sim/internal/logger"
	"github.com/yourusername/diamond-sim/internal/metrics"
	"github.com/yourusername/diamond-sim/internal/models"
	"github.com/yourusername/diamond-sim/internal/repository"
)

// PredictOptions control one prediction run.
type PredictOptions struct {
	// Iterations is the Monte Carlo trial count; 0 means the
	// configured default. Callers bound wall-clock cost purely through
	// this value — there is no timeout inside the engine.
	Iterations int
	// StrictPitching makes an unresolvable starting pitcher fatal for
	// the simulation tier instead of substituting league averages.
	StrictPitching bool
	// Seed makes trials reproducible; 0 seeds from the clock.
	Seed int64
}

// Engine routes each game through the completeness assessor and the
// tier dispatch table, then persists exactly one prediction per game.
type Engine struct {
	params      Params
	snapshots   SnapshotProvider
	predictions repository.PredictionRepository
	simulator   *Simulator
	logger      *logrus.Logger
	plog        *logger.PredictionLogger
	audit       *logger.AuditLogger
}

// NewEngine creates a prediction engine.
func NewEngine(params Params, snapshots SnapshotProvider, predictions repository.PredictionRepository, baseLogger *logrus.Logger) (*Engine, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot provider is required")
	}
	if predictions == nil {
		return nil, fmt.Errorf("prediction repository is required")
	}
	if baseLogger == nil {
		baseLogger = logrus.New()
	}

	return &Engine{
		params:      params,
		snapshots:   snapshots,
		predictions: predictions,
		simulator:   NewSimulator(params),
		logger:      baseLogger,
		plog:        logger.NewPredictionLogger(baseLogger),
		audit:       logger.NewAuditLogger(baseLogger),
	}, nil
}

// Params returns the engine's tuning constants.
func (e *Engine) Params() Params {
	return e.params
}

// PredictGame produces and upserts the prediction for one game.
func (e *Engine) PredictGame(ctx context.Context, gameID int64, opts PredictOptions) (*models.Prediction, error) {
	started := time.Now()

	snap, err := e.snapshots.Load(ctx, gameID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &GameNotFoundError{GameID: gameID}
		}
		return nil, fmt.Errorf("failed to load game snapshot: %w", err)
	}

	assess := Assess(snap.Game, snap.Lineups, e.params)
	tier := SelectTier(assess.Score, e.params)
	metrics.TierSelectionsTotal.WithLabelValues(tier.String()).Inc()
	e.plog.LogTierSelection(gameID, string(tier.Method()), assess.Score, assess.HomeBatters, assess.AwayBatters)
	if tier != TierMonteCarlo {
		e.plog.LogFallback(gameID, string(tier.Method()), fallbackReason(assess), assess.Score)
	}

	outcome, err := e.evaluate(ctx, tier, snap, assess, opts)
	if err != nil {
		metrics.PredictionErrorsTotal.Inc()
		return nil, err
	}

	defaulted := e.defaultedBatters(snap)
	if defaulted > 0 {
		e.plog.LogDefaultedBatters(gameID, defaulted, assess.HomeBatters+assess.AwayBatters)
	}
	confidence := ConfidenceScore(e.confidenceInputs(tier, snap, assess, defaulted), e.params)
	factors := e.keyFactors(snap, assess, outcome, defaulted)

	pred, err := assemble(gameID, tier.Method(), outcome, confidence, factors, time.Now().UTC(), e.params)
	if err != nil {
		return nil, err
	}

	prev, prevErr := e.predictions.GetByGameID(ctx, gameID)

	if err := e.predictions.Upsert(ctx, pred); err != nil {
		return nil, fmt.Errorf("failed to persist prediction: %w", err)
	}

	metrics.PredictionsTotal.WithLabelValues(string(pred.Method)).Inc()
	metrics.PredictionDuration.Observe(time.Since(started).Seconds())
	metrics.DataCompletenessScore.Set(assess.Score)

	if prevErr == nil {
		e.audit.LogPredictionOverwrite(gameID, string(prev.Method), string(pred.Method), prev.ConfidenceScore, pred.ConfidenceScore)
	} else {
		e.audit.LogPredictionStored(gameID, string(pred.Method), pred.HomeWinProbability, pred.ConfidenceScore, pred.SampleSize, pred.PredictedAt)
	}

	return pred, nil
}

// fallbackReason explains a drop below the simulation tier.
func fallbackReason(assess Assessment) string {
	if assess.HomeBatters+assess.AwayBatters == 0 {
		return "no lineups published"
	}
	if assess.Projected {
		return "projected lineup penalty"
	}
	return "incomplete lineup or pitching data"
}

// evaluate dispatches to the evaluator registered for the tier. One
// evaluator per tag; adding a tier extends the table without touching
// existing entries.
func (e *Engine) evaluate(ctx context.Context, tier Tier, snap *Snapshot, assess Assessment, opts PredictOptions) (*tierOutcome, error) {
	type evaluator func(context.Context, *Snapshot, Assessment, PredictOptions) (*tierOutcome, error)

	table := map[Tier]evaluator{
		TierMonteCarlo: e.evaluateMonteCarlo,
		TierEnhancedStats: func(_ context.Context, s *Snapshot, a Assessment, _ PredictOptions) (*tierOutcome, error) {
			return evaluateEnhanced(s, a, e.params)
		},
		TierAdjustedTeamStats: func(_ context.Context, s *Snapshot, _ Assessment, _ PredictOptions) (*tierOutcome, error) {
			return evaluateAdjusted(s, e.params)
		},
	}

	eval, ok := table[tier]
	if !ok {
		return nil, fmt.Errorf("no evaluator registered for tier %s", tier)
	}
	return eval(ctx, snap, assess, opts)
}

func (e *Engine) evaluateMonteCarlo(_ context.Context, snap *Snapshot, _ Assessment, opts PredictOptions) (*tierOutcome, error) {
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = e.params.DefaultIterations
	}

	factory := NewTimeFactory()
	if opts.Seed != 0 {
		factory = NewSeededFactory(opts.Seed)
	}

	started := time.Now()
	sim, err := e.simulator.Simulate(snap, iterations, opts.StrictPitching, factory)
	if err != nil {
		return nil, err
	}
	e.plog.LogSimulationRun(snap.Game.ID, sim.Iterations, e.params.TrialWorkers,
		sim.HomeWinProbability(), sim.MeanHomeRuns+sim.MeanAwayRuns,
		float64(time.Since(started).Microseconds())/1000.0)

	return &tierOutcome{
		homeWinProb: sim.HomeWinProbability(),
		homeRuns:    sim.MeanHomeRuns,
		awayRuns:    sim.MeanAwayRuns,
		sampleSize:  sim.Iterations,
		homeBonus:   e.params.HomeFieldMultiplier,
	}, nil
}

// defaultedBatters counts lineup slots across both teams that resolve
// to position-class default rates.
func (e *Engine) defaultedBatters(snap *Snapshot) int {
	home := snap.BattingOrder(snap.Game.HomeTeamID)
	away := snap.BattingOrder(snap.Game.AwayTeamID)
	return countDefaultedBatters(home, snap, e.params) + countDefaultedBatters(away, snap, e.params)
}

func (e *Engine) confidenceInputs(tier Tier, snap *Snapshot, assess Assessment, defaulted int) ConfidenceInputs {
	totalBatters := assess.HomeBatters + assess.AwayBatters
	realFraction := 0.0
	if totalBatters > 0 {
		realFraction = float64(totalBatters-defaulted) / float64(totalBatters)
	}

	return ConfidenceInputs{
		Tier:                 tier,
		HomeBatters:          assess.HomeBatters,
		AwayBatters:          assess.AwayBatters,
		BothStartersResolved: e.bothStartersResolved(snap),
		RealStatsFraction:    realFraction,
	}
}

func (e *Engine) bothStartersResolved(snap *Snapshot) bool {
	return snap.StartingPitcher(snap.Game.HomeTeamID) != nil &&
		snap.StartingPitcher(snap.Game.AwayTeamID) != nil
}

// keyFactors records what was actually applied during evaluation so a
// reviewer can judge the prediction. Pitcher fatigue is not modeled;
// the neutral multiplier makes that explicit in the output.
func (e *Engine) keyFactors(snap *Snapshot, assess Assessment, out *tierOutcome, defaulted int) *models.KeyFactors {
	kf := &models.KeyFactors{
		ParkFactor:       snap.Env.RunFactor(),
		WeatherImpact:    weatherMultiplier(weatherOf(snap), false, e.params),
		HomeAdvantage:    out.homeBonus,
		PitcherFatigue:   1.0,
		DataQualityScore: assess.Score,
		HomeLineupSize:   assess.HomeBatters,
		AwayLineupSize:   assess.AwayBatters,
		DefaultedBatters: defaulted,
	}

	if starter := snap.StartingPitcher(snap.Game.HomeTeamID); starter != nil {
		kf.HomePitcherName = starter.PlayerName
	}
	if starter := snap.StartingPitcher(snap.Game.AwayTeamID); starter != nil {
		kf.AwayPitcherName = starter.PlayerName
	}
	if assess.Projected {
		kf.Notes = append(kf.Notes, "projected lineup")
	}
	if defaulted > 0 {
		kf.Notes = append(kf.Notes, fmt.Sprintf("%d batters on default rates", defaulted))
	}

	return kf
}
