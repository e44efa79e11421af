package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DataSource defines the interface for fetching baseball data from external providers
type DataSource interface {
	// FetchSchedule retrieves games scheduled within the specified date range
	FetchSchedule(ctx context.Context, startDate, endDate time.Time) ([]GameData, error)

	// FetchLineups retrieves the published or projected lineups for a game
	FetchLineups(ctx context.Context, gameID int64) ([]LineupEntryData, error)

	// FetchTeamStats retrieves season aggregates for every team
	FetchTeamStats(ctx context.Context, season int) ([]TeamStatsData, error)

	// FetchBatterStats retrieves season rate stats for a team's batters
	FetchBatterStats(ctx context.Context, teamID int64, season int) ([]BatterStatsData, error)

	// FetchPitcherStats retrieves season rate stats for a team's pitchers
	FetchPitcherStats(ctx context.Context, teamID int64, season int) ([]PitcherStatsData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// WeatherSource defines the interface for fetching game-day weather
type WeatherSource interface {
	FetchWeather(ctx context.Context, gameID int64, venue string) (*WeatherData, error)
	Name() string
	IsEnabled() bool
}

// GameData represents a normalized scheduled game from any data source
type GameData struct {
	SourceID    int64     `json:"source_id"`
	HomeTeamID  int64     `json:"home_team_id"`
	AwayTeamID  int64     `json:"away_team_id"`
	Venue       string    `json:"venue"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	HomeScore   *int      `json:"home_score"`
	AwayScore   *int      `json:"away_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// LineupEntryData represents a normalized lineup slot from any data source
type LineupEntryData struct {
	GameID       int64   `json:"game_id"`
	TeamID       int64   `json:"team_id"`
	Role         string  `json:"role"`
	BattingOrder *int    `json:"batting_order"`
	PlayerID     int64   `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	Position     string  `json:"position"`
	Hand         *string `json:"hand"`
	IsStarter    bool    `json:"is_starter"`
	IsProjected  bool    `json:"is_projected"`
}

// BatterStatsData represents a batter's season line as delivered by the
// feed. Rates arrive as decimal strings and are kept exact until the
// normalizer converts them.
type BatterStatsData struct {
	PlayerID int64            `json:"player_id"`
	TeamID   int64            `json:"team_id"`
	Season   int              `json:"season"`
	AtBats   int              `json:"at_bats"`
	AVG      *decimal.Decimal `json:"avg"`
	OBP      *decimal.Decimal `json:"obp"`
	SLG      *decimal.Decimal `json:"slg"`
	HomeRuns int              `json:"home_runs"`
	WRCPlus  *int             `json:"wrc_plus"`
}

// PitcherStatsData represents a pitcher's season line from the feed
type PitcherStatsData struct {
	PlayerID       int64            `json:"player_id"`
	TeamID         int64            `json:"team_id"`
	Season         int              `json:"season"`
	ERA            *decimal.Decimal `json:"era"`
	WHIP           *decimal.Decimal `json:"whip"`
	InningsPitched *decimal.Decimal `json:"innings_pitched"`
}

// TeamStatsData represents a team's season aggregates from the feed
type TeamStatsData struct {
	TeamID      int64 `json:"team_id"`
	Season      int   `json:"season"`
	GamesPlayed int   `json:"games_played"`
	RunsScored  int   `json:"runs_scored"`
	RunsAllowed int   `json:"runs_allowed"`
	Wins        int   `json:"wins"`
	Losses      int   `json:"losses"`
}

// WeatherData represents a normalized weather forecast for a game
type WeatherData struct {
	GameID        int64   `json:"game_id"`
	TemperatureF  float64 `json:"temperature_f"`
	WindSpeedMPH  float64 `json:"wind_speed_mph"`
	WindDirection string  `json:"wind_direction"`
	Conditions    string  `json:"conditions"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
