package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/yourusername/diamond-sim/internal/metrics"
)

const weatherSourceName = "weather"

// WeatherClient implements WeatherSource against a forecast API.
// Forecasts are keyed by venue; the game id is carried through so the
// snapshot can be stored per game.
type WeatherClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// weatherResponse represents the forecast API payload
type weatherResponse struct {
	TemperatureF  float64 `json:"tempF"`
	WindSpeedMPH  float64 `json:"windMph"`
	WindDirection string  `json:"windDir"`
	Conditions    string  `json:"conditions"`
}

// NewWeatherClient creates a new weather forecast client
func NewWeatherClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *WeatherClient {
	return &WeatherClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchWeather retrieves the current forecast for a venue
func (c *WeatherClient) FetchWeather(ctx context.Context, gameID int64, venue string) (*WeatherData, error) {
	if !c.enabled {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	reqURL := fmt.Sprintf("%s/forecast?venue=%s", c.baseURL, url.QueryEscape(venue))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(ctx, req)
	metrics.FeedRequestLatency.WithLabelValues("weather").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeNotFound, "venue not found", nil)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var wr weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, NewDataSourceError(weatherSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return &WeatherData{
		GameID:        gameID,
		TemperatureF:  wr.TemperatureF,
		WindSpeedMPH:  wr.WindSpeedMPH,
		WindDirection: wr.WindDirection,
		Conditions:    wr.Conditions,
	}, nil
}

// Name returns the data source name
func (c *WeatherClient) Name() string {
	return weatherSourceName
}

// IsEnabled returns whether this data source is enabled
func (c *WeatherClient) IsEnabled() bool {
	return c.enabled
}
