package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/diamond-sim/internal/metrics"
)

const (
	statsFeedSourceName   = "statsfeed"
	dataSourceDisabledMsg = "data source is disabled"
)

// StatsFeedClient implements DataSource for the league stats feed API
type StatsFeedClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// feedGame represents a scheduled game from the stats feed
type feedGame struct {
	ID          int64  `json:"gamePk"`
	HomeTeamID  int64  `json:"homeTeamId"`
	AwayTeamID  int64  `json:"awayTeamId"`
	Venue       string `json:"venueName"`
	GameDate    string `json:"gameDate"`
	Status      string `json:"status"`
	HomeScore   *int   `json:"homeScore"`
	AwayScore   *int   `json:"awayScore"`
}

// feedLineupEntry represents a lineup slot from the stats feed
type feedLineupEntry struct {
	TeamID       int64   `json:"teamId"`
	Role         string  `json:"role"`
	BattingOrder *int    `json:"battingOrder"`
	PlayerID     int64   `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	Position     string  `json:"position"`
	Hand         *string `json:"hand"`
	IsStarter    bool    `json:"isStarter"`
	IsProjected  bool    `json:"isProjected"`
}

// feedBatter represents a batter season line from the stats feed.
// Rate stats arrive as strings ("0.273") to avoid float drift in transit.
type feedBatter struct {
	PlayerID int64   `json:"playerId"`
	TeamID   int64   `json:"teamId"`
	AtBats   int     `json:"atBats"`
	AVG      *string `json:"avg"`
	OBP      *string `json:"obp"`
	SLG      *string `json:"slg"`
	HomeRuns int     `json:"homeRuns"`
	WRCPlus  *int    `json:"wrcPlus"`
}

// feedPitcher represents a pitcher season line from the stats feed
type feedPitcher struct {
	PlayerID       int64   `json:"playerId"`
	TeamID         int64   `json:"teamId"`
	ERA            *string `json:"era"`
	WHIP           *string `json:"whip"`
	InningsPitched *string `json:"inningsPitched"`
}

// feedTeamStats represents a team's season aggregates from the stats feed
type feedTeamStats struct {
	TeamID      int64 `json:"teamId"`
	GamesPlayed int   `json:"gamesPlayed"`
	RunsScored  int   `json:"runsScored"`
	RunsAllowed int   `json:"runsAllowed"`
	Wins        int   `json:"wins"`
	Losses      int   `json:"losses"`
}

// NewStatsFeedClient creates a new stats feed API client
func NewStatsFeedClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *StatsFeedClient {
	return &StatsFeedClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchSchedule retrieves games scheduled within the specified date range
func (c *StatsFeedClient) FetchSchedule(ctx context.Context, startDate, endDate time.Time) ([]GameData, error) {
	url := fmt.Sprintf("%s/schedule?from=%s&to=%s", c.baseURL, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var feedGames []feedGame
	if err := c.getJSON(ctx, "schedule", url, &feedGames); err != nil {
		return nil, err
	}

	games := make([]GameData, 0, len(feedGames))
	for _, fg := range feedGames {
		game, err := c.convertGame(&fg)
		if err != nil {
			c.logger.Printf("Failed to convert game %d: %v", fg.ID, err)
			continue
		}
		games = append(games, *game)
	}

	return games, nil
}

// FetchLineups retrieves the published or projected lineups for a game
func (c *StatsFeedClient) FetchLineups(ctx context.Context, gameID int64) ([]LineupEntryData, error) {
	url := fmt.Sprintf("%s/games/%d/lineups", c.baseURL, gameID)

	var feedEntries []feedLineupEntry
	if err := c.getJSON(ctx, "lineups", url, &feedEntries); err != nil {
		return nil, err
	}

	entries := make([]LineupEntryData, len(feedEntries))
	for i, fe := range feedEntries {
		entries[i] = LineupEntryData{
			GameID:       gameID,
			TeamID:       fe.TeamID,
			Role:         fe.Role,
			BattingOrder: fe.BattingOrder,
			PlayerID:     fe.PlayerID,
			PlayerName:   fe.PlayerName,
			Position:     fe.Position,
			Hand:         fe.Hand,
			IsStarter:    fe.IsStarter,
			IsProjected:  fe.IsProjected,
		}
	}

	return entries, nil
}

// FetchTeamStats retrieves season aggregates for every team
func (c *StatsFeedClient) FetchTeamStats(ctx context.Context, season int) ([]TeamStatsData, error) {
	url := fmt.Sprintf("%s/teams/stats?season=%d", c.baseURL, season)

	var feedStats []feedTeamStats
	if err := c.getJSON(ctx, "team_stats", url, &feedStats); err != nil {
		return nil, err
	}

	stats := make([]TeamStatsData, len(feedStats))
	for i, fs := range feedStats {
		stats[i] = TeamStatsData{
			TeamID:      fs.TeamID,
			Season:      season,
			GamesPlayed: fs.GamesPlayed,
			RunsScored:  fs.RunsScored,
			RunsAllowed: fs.RunsAllowed,
			Wins:        fs.Wins,
			Losses:      fs.Losses,
		}
	}

	return stats, nil
}

// FetchBatterStats retrieves season rate stats for a team's batters
func (c *StatsFeedClient) FetchBatterStats(ctx context.Context, teamID int64, season int) ([]BatterStatsData, error) {
	url := fmt.Sprintf("%s/teams/%d/batters?season=%d", c.baseURL, teamID, season)

	var feedBatters []feedBatter
	if err := c.getJSON(ctx, "batter_stats", url, &feedBatters); err != nil {
		return nil, err
	}

	batters := make([]BatterStatsData, len(feedBatters))
	for i, fb := range feedBatters {
		batters[i] = BatterStatsData{
			PlayerID: fb.PlayerID,
			TeamID:   fb.TeamID,
			Season:   season,
			AtBats:   fb.AtBats,
			AVG:      parseDecimal(fb.AVG),
			OBP:      parseDecimal(fb.OBP),
			SLG:      parseDecimal(fb.SLG),
			HomeRuns: fb.HomeRuns,
			WRCPlus:  fb.WRCPlus,
		}
	}

	return batters, nil
}

// FetchPitcherStats retrieves season rate stats for a team's pitchers
func (c *StatsFeedClient) FetchPitcherStats(ctx context.Context, teamID int64, season int) ([]PitcherStatsData, error) {
	url := fmt.Sprintf("%s/teams/%d/pitchers?season=%d", c.baseURL, teamID, season)

	var feedPitchers []feedPitcher
	if err := c.getJSON(ctx, "pitcher_stats", url, &feedPitchers); err != nil {
		return nil, err
	}

	pitchers := make([]PitcherStatsData, len(feedPitchers))
	for i, fp := range feedPitchers {
		pitchers[i] = PitcherStatsData{
			PlayerID:       fp.PlayerID,
			TeamID:         fp.TeamID,
			Season:         season,
			ERA:            parseDecimal(fp.ERA),
			WHIP:           parseDecimal(fp.WHIP),
			InningsPitched: parseDecimal(fp.InningsPitched),
		}
	}

	return pitchers, nil
}

// Name returns the data source name
func (c *StatsFeedClient) Name() string {
	return statsFeedSourceName
}

// IsEnabled returns whether this data source is enabled
func (c *StatsFeedClient) IsEnabled() bool {
	return c.enabled
}

// getJSON executes an authenticated GET and decodes the JSON body into out
func (c *StatsFeedClient) getJSON(ctx context.Context, endpoint, url string, out interface{}) error {
	if !c.enabled {
		return NewDataSourceError(statsFeedSourceName, ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewDataSourceError(statsFeedSourceName, ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(ctx, req)
	metrics.FeedRequestLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return NewDataSourceError(statsFeedSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return NewDataSourceError(statsFeedSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return NewDataSourceError(statsFeedSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode == http.StatusNotFound {
		return NewDataSourceError(statsFeedSourceName, ErrCodeNotFound, "resource not found", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return NewDataSourceError(statsFeedSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(statsFeedSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return nil
}

// convertGame converts stats feed game format to GameData
func (c *StatsFeedClient) convertGame(fg *feedGame) (*GameData, error) {
	scheduledAt, err := time.Parse(time.RFC3339, fg.GameDate)
	if err != nil {
		return nil, fmt.Errorf("invalid game date %q: %w", fg.GameDate, err)
	}

	return &GameData{
		SourceID:    fg.ID,
		HomeTeamID:  fg.HomeTeamID,
		AwayTeamID:  fg.AwayTeamID,
		Venue:       fg.Venue,
		ScheduledAt: scheduledAt,
		Status:      fg.Status,
		HomeScore:   fg.HomeScore,
		AwayScore:   fg.AwayScore,
		CreatedAt:   time.Now(),
	}, nil
}

// parseDecimal parses a string to decimal.Decimal, returning nil if invalid
func parseDecimal(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
