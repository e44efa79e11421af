package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/diamond-sim/internal/models"
)

// DataValidator validates game and lineup data before persistence
type DataValidator struct {
	logger *log.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *log.Logger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidateGame validates game data for required fields and constraints
func (v *DataValidator) ValidateGame(game *models.Game) []string {
	var errors []string

	if game.ID <= 0 {
		errors = append(errors, "game id is required")
	}

	if game.HomeTeamID <= 0 || game.AwayTeamID <= 0 {
		errors = append(errors, "both team ids are required")
	}

	if game.HomeTeamID == game.AwayTeamID {
		errors = append(errors, "home and away team must differ")
	}

	if game.ScheduledAt.IsZero() {
		errors = append(errors, "scheduled_at is required")
	}

	// Check scheduled start is not absurdly far out
	now := time.Now()
	if game.ScheduledAt.After(now.Add(365 * 24 * time.Hour)) {
		errors = append(errors, "game scheduled more than 1 year in future")
	}

	return errors
}

// ValidateLineupEntry validates a single lineup slot
func (v *DataValidator) ValidateLineupEntry(entry *models.LineupEntry) []string {
	var errors []string

	if entry.PlayerID <= 0 {
		errors = append(errors, "player id is required")
	}

	if entry.PlayerName == "" {
		errors = append(errors, "player name is required")
	}

	if entry.IsBatter() {
		if entry.BattingOrder == nil {
			errors = append(errors, "batting entries require a batting order slot")
		} else if *entry.BattingOrder < 1 || *entry.BattingOrder > models.FullLineupSize {
			errors = append(errors, fmt.Sprintf("batting_order must be 1-%d, got %d", models.FullLineupSize, *entry.BattingOrder))
		}
	}

	if entry.Role == models.LineupRolePitching && entry.BattingOrder != nil {
		errors = append(errors, "pitching entries must not carry a batting order")
	}

	return errors
}

// ValidateLineupDocument validates a team's full lineup card: batting
// order slots must be unique and at most one starting pitcher listed.
func (v *DataValidator) ValidateLineupDocument(entries []*models.LineupEntry) []string {
	var errors []string

	seenSlots := make(map[int]bool)
	starters := 0
	for _, entry := range entries {
		if entry.IsBatter() && entry.BattingOrder != nil {
			if seenSlots[*entry.BattingOrder] {
				errors = append(errors, fmt.Sprintf("duplicate batting order slot %d", *entry.BattingOrder))
			}
			seenSlots[*entry.BattingOrder] = true
		}
		if entry.IsStartingPitcher() {
			starters++
		}
	}

	if starters > 1 {
		errors = append(errors, fmt.Sprintf("expected at most one starting pitcher, got %d", starters))
	}

	return errors
}

// ValidateBatter validates a batter's season line for rate sanity
func (v *DataValidator) ValidateBatter(profile *models.BatterProfile) []string {
	var errors []string

	if profile.PlayerID <= 0 {
		errors = append(errors, "player id is required")
	}

	if profile.AtBats < 0 {
		errors = append(errors, "at_bats cannot be negative")
	}

	if profile.AVG < 0 || profile.AVG > 1 {
		errors = append(errors, fmt.Sprintf("avg out of range [0,1], got %.3f", profile.AVG))
	}

	if profile.OBP < 0 || profile.OBP > 1 {
		errors = append(errors, fmt.Sprintf("obp out of range [0,1], got %.3f", profile.OBP))
	}

	// SLG tops out at 4.0 (home run every at-bat)
	if profile.SLG < 0 || profile.SLG > 4 {
		errors = append(errors, fmt.Sprintf("slg out of range [0,4], got %.3f", profile.SLG))
	}

	if profile.OBP > 0 && profile.AVG > profile.OBP {
		errors = append(errors, fmt.Sprintf("avg %.3f exceeds obp %.3f", profile.AVG, profile.OBP))
	}

	return errors
}

// ValidatePitcher validates a pitcher's season line
func (v *DataValidator) ValidatePitcher(profile *models.PitcherProfile) []string {
	var errors []string

	if profile.PlayerID <= 0 {
		errors = append(errors, "player id is required")
	}

	if profile.ERA < 0 || profile.ERA > 30 {
		errors = append(errors, fmt.Sprintf("era out of range [0,30], got %.2f", profile.ERA))
	}

	if profile.WHIP < 0 || profile.WHIP > 5 {
		errors = append(errors, fmt.Sprintf("whip out of range [0,5], got %.2f", profile.WHIP))
	}

	if profile.InningsPitched < 0 {
		errors = append(errors, "innings_pitched cannot be negative")
	}

	return errors
}

// ValidateTeamStats validates a team's season aggregates
func (v *DataValidator) ValidateTeamStats(stats *models.TeamSeasonStats) []string {
	var errors []string

	if stats.TeamID <= 0 {
		errors = append(errors, "team id is required")
	}

	if stats.GamesPlayed < 0 || stats.RunsScored < 0 || stats.RunsAllowed < 0 {
		errors = append(errors, "season aggregates cannot be negative")
	}

	if stats.Wins+stats.Losses > stats.GamesPlayed {
		errors = append(errors, fmt.Sprintf("wins+losses %d exceeds games played %d", stats.Wins+stats.Losses, stats.GamesPlayed))
	}

	return errors
}
