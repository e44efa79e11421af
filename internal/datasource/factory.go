package datasource

import (
	"fmt"
	"log"

	"github.com/yourusername/diamond-sim/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// StatsFeedSourceType is the league stats feed
	StatsFeedSourceType SourceType = "statsfeed"
	// WeatherSourceType is the forecast provider
	WeatherSourceType SourceType = "weather"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	switch cfg.Name {
	case string(StatsFeedSourceType):
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = f.config.Feed.APIKey
		}
		return NewStatsFeedClient(httpClient, f.config.Feed.APIURL, apiKey, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// NewWeatherSource creates the forecast client from configuration
func (f *Factory) NewWeatherSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (WeatherSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}
	if cfg.Name != string(WeatherSourceType) {
		return nil, fmt.Errorf("not a weather source: %s", cfg.Name)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("weather API key is required")
	}

	return NewWeatherClient(httpClient, f.config.Feed.APIURL, cfg.APIKey, cfg.Enabled, f.logger), nil
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources(dataCfg config.DataIngestionConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range dataCfg.Sources {
		if !srcCfg.Enabled {
			if f.logger != nil {
				f.logger.Printf("Skipping disabled data source: %s", srcCfg.Name)
			}
			continue
		}

		// The weather source has its own narrower interface
		if srcCfg.Name == string(WeatherSourceType) {
			continue
		}

		source, err := f.NewDataSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		if f.logger != nil {
			f.logger.Printf("Created data source: %s", srcCfg.Name)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}
