package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/diamond-sim/internal/datasource"
	"github.com/yourusername/diamond-sim/internal/models"
)

// DataNormalizer normalizes data from various sources to standard format
type DataNormalizer struct {
	venueNameMap map[string]string // Maps provider venue names to canonical names
	logger       *log.Logger
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger *log.Logger) *DataNormalizer {
	return &DataNormalizer{
		venueNameMap: buildVenueNameMap(),
		logger:       logger,
	}
}

// NormalizeGame converts GameData from any source to the internal Game model
func (n *DataNormalizer) NormalizeGame(sourceGame *datasource.GameData) (*models.Game, error) {
	if sourceGame == nil {
		return nil, fmt.Errorf("source game is nil")
	}

	return &models.Game{
		ID:          sourceGame.SourceID,
		HomeTeamID:  sourceGame.HomeTeamID,
		AwayTeamID:  sourceGame.AwayTeamID,
		Venue:       n.normalizeVenueName(sourceGame.Venue),
		ScheduledAt: sourceGame.ScheduledAt.UTC(),
		Status:      normalizeGameStatus(sourceGame.Status),
		HomeScore:   sourceGame.HomeScore,
		AwayScore:   sourceGame.AwayScore,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// NormalizeLineupEntry converts LineupEntryData to the internal model
func (n *DataNormalizer) NormalizeLineupEntry(sourceEntry *datasource.LineupEntryData) (*models.LineupEntry, error) {
	if sourceEntry == nil {
		return nil, fmt.Errorf("source lineup entry is nil")
	}

	role := models.LineupRoleBatting
	if strings.EqualFold(sourceEntry.Role, "pitching") {
		role = models.LineupRolePitching
	}

	hand := models.HandRight
	if sourceEntry.Hand != nil {
		switch strings.ToUpper(*sourceEntry.Hand) {
		case "L":
			hand = models.HandLeft
		case "S":
			hand = models.HandSwitch
		}
	}

	return &models.LineupEntry{
		GameID:       sourceEntry.GameID,
		TeamID:       sourceEntry.TeamID,
		Role:         role,
		BattingOrder: sourceEntry.BattingOrder,
		PlayerID:     sourceEntry.PlayerID,
		PlayerName:   sanitizeName(sourceEntry.PlayerName),
		Position:     strings.ToUpper(strings.TrimSpace(sourceEntry.Position)),
		Hand:         hand,
		IsStarter:    sourceEntry.IsStarter,
		IsProjected:  sourceEntry.IsProjected,
		CreatedAt:    time.Now(),
	}, nil
}

// NormalizeBatter converts a feed batter line to the internal profile.
// Feed rates arrive as exact decimals; the stored profile uses float64.
func (n *DataNormalizer) NormalizeBatter(source *datasource.BatterStatsData) (*models.BatterProfile, error) {
	if source == nil {
		return nil, fmt.Errorf("source batter is nil")
	}

	profile := &models.BatterProfile{
		PlayerID:  source.PlayerID,
		Season:    source.Season,
		TeamID:    source.TeamID,
		AtBats:    source.AtBats,
		HomeRuns:  source.HomeRuns,
		WRCPlus:   source.WRCPlus,
		UpdatedAt: time.Now(),
	}

	if source.AVG != nil {
		profile.AVG = source.AVG.InexactFloat64()
	}
	if source.OBP != nil {
		profile.OBP = source.OBP.InexactFloat64()
	}
	if source.SLG != nil {
		profile.SLG = source.SLG.InexactFloat64()
	}

	return profile, nil
}

// NormalizePitcher converts a feed pitcher line to the internal profile.
// Missing ERA or WHIP fall back to league averages.
func (n *DataNormalizer) NormalizePitcher(source *datasource.PitcherStatsData) (*models.PitcherProfile, error) {
	if source == nil {
		return nil, fmt.Errorf("source pitcher is nil")
	}

	profile := models.DefaultPitcherProfile(source.PlayerID, source.Season)
	profile.TeamID = source.TeamID
	profile.UpdatedAt = time.Now()

	if source.ERA != nil {
		profile.ERA = source.ERA.InexactFloat64()
	}
	if source.WHIP != nil {
		profile.WHIP = source.WHIP.InexactFloat64()
	}
	if source.InningsPitched != nil {
		profile.InningsPitched = source.InningsPitched.InexactFloat64()
	}

	return profile, nil
}

// NormalizeTeamStats converts feed team aggregates to the internal model
func (n *DataNormalizer) NormalizeTeamStats(source *datasource.TeamStatsData) (*models.TeamSeasonStats, error) {
	if source == nil {
		return nil, fmt.Errorf("source team stats is nil")
	}

	return &models.TeamSeasonStats{
		TeamID:      source.TeamID,
		Season:      source.Season,
		GamesPlayed: source.GamesPlayed,
		RunsScored:  source.RunsScored,
		RunsAllowed: source.RunsAllowed,
		Wins:        source.Wins,
		Losses:      source.Losses,
		UpdatedAt:   time.Now(),
	}, nil
}

// NormalizeWeather converts a feed forecast to the internal snapshot
func (n *DataNormalizer) NormalizeWeather(source *datasource.WeatherData) (*models.WeatherSnapshot, error) {
	if source == nil {
		return nil, fmt.Errorf("source weather is nil")
	}

	return &models.WeatherSnapshot{
		GameID:        source.GameID,
		TemperatureF:  source.TemperatureF,
		WindSpeedMPH:  source.WindSpeedMPH,
		WindDirection: strings.ToUpper(strings.TrimSpace(source.WindDirection)),
		Conditions:    strings.ToLower(strings.TrimSpace(source.Conditions)),
		CapturedAt:    time.Now(),
	}, nil
}

// normalizeVenueName converts provider-specific venue names to canonical format
func (n *DataNormalizer) normalizeVenueName(venue string) string {
	if venue == "" {
		return ""
	}

	if canonical, ok := n.venueNameMap[strings.ToUpper(venue)]; ok {
		return canonical
	}

	return strings.TrimSpace(venue)
}

// normalizeGameStatus maps feed status strings onto the internal lifecycle
func normalizeGameStatus(status string) models.GameStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "scheduled", "pre-game", "warmup":
		return models.GameStatusScheduled
	case "postponed", "delayed":
		return models.GameStatusPostponed
	case "live", "in_progress", "in progress":
		return models.GameStatusInProgress
	case "final", "completed", "game over":
		return models.GameStatusFinal
	case "cancelled", "canceled":
		return models.GameStatusCancelled
	default:
		return models.GameStatusScheduled
	}
}

// sanitizeName removes extra whitespace from player names
func sanitizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// buildVenueNameMap returns mapping of venue name variations to canonical names
func buildVenueNameMap() map[string]string {
	return map[string]string{
		"FENWAY":                   "Fenway Park",
		"FENWAY PARK":              "Fenway Park",
		"YANKEE STADIUM":           "Yankee Stadium",
		"WRIGLEY":                  "Wrigley Field",
		"WRIGLEY FIELD":            "Wrigley Field",
		"DODGER STADIUM":           "Dodger Stadium",
		"ORACLE PARK":              "Oracle Park",
		"ORIOLE PARK":              "Oriole Park at Camden Yards",
		"CAMDEN YARDS":             "Oriole Park at Camden Yards",
		"COORS":                    "Coors Field",
		"COORS FIELD":              "Coors Field",
		"PETCO":                    "Petco Park",
		"PETCO PARK":               "Petco Park",
		"T-MOBILE PARK":            "T-Mobile Park",
		"TROPICANA FIELD":          "Tropicana Field",
		"MINUTE MAID PARK":         "Minute Maid Park",
		"GREAT AMERICAN BALLPARK":  "Great American Ball Park",
		"GREAT AMERICAN BALL PARK": "Great American Ball Park",
		"CITI FIELD":               "Citi Field",
		"CITIZENS BANK PARK":       "Citizens Bank Park",
		"BUSCH":                    "Busch Stadium",
		"BUSCH STADIUM":            "Busch Stadium",
		"KAUFFMAN":                 "Kauffman Stadium",
		"KAUFFMAN STADIUM":         "Kauffman Stadium",
		"PNC PARK":                 "PNC Park",
		"COMERICA PARK":            "Comerica Park",
		"TARGET FIELD":             "Target Field",
		"PROGRESSIVE FIELD":        "Progressive Field",
		"GUARANTEED RATE FIELD":    "Guaranteed Rate Field",
		"ROGERS CENTRE":            "Rogers Centre",
		"ROGERS CENTER":            "Rogers Centre",
		"CHASE FIELD":              "Chase Field",
		"GLOBE LIFE FIELD":         "Globe Life Field",
		"ANGEL STADIUM":            "Angel Stadium",
		"NATIONALS PARK":           "Nationals Park",
		"TRUIST PARK":              "Truist Park",
		"LOANDEPOT PARK":           "LoanDepot Park",
		"AMERICAN FAMILY FIELD":    "American Family Field",
	}
}
