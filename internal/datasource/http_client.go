package datasource

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures that trip the breaker
}

// DefaultHTTPClientConfig returns defaults tuned for the stats feed
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           30 * time.Second,
		MaxRetries:        5,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         10.0,
		CircuitBreakerMax: 5,
	}
}

// RateLimitedHTTPClient enforces a request rate and a simple breaker on
// top of retryablehttp. The rate limiter is owned by the client, not
// process-global, so independent feeds never throttle each other.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *log.Logger

	mu       sync.Mutex
	tripAt   int
	failures int
	open     bool
	lastErr  error
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *log.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	inner := retryablehttp.NewClient()
	inner.HTTPClient.Timeout = cfg.Timeout
	inner.RetryMax = cfg.MaxRetries
	inner.RetryWaitMin = cfg.RetryWaitMin
	inner.RetryWaitMax = cfg.RetryWaitMax
	inner.CheckRetry = feedRetryPolicy
	inner.Logger = logger

	return &RateLimitedHTTPClient{
		client:  inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger,
		tripAt:  cfg.CircuitBreakerMax,
	}
}

// Do executes an HTTP request, waiting for a rate-limiter slot first
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.breakerAllows(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap request: %w", err)
	}

	resp, err := c.client.Do(retryReq)
	c.recordResult(resp, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Close releases idle connections
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

func (c *RateLimitedHTTPClient) breakerAllows() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		return fmt.Errorf("circuit breaker open: %v", c.lastErr)
	}
	return nil
}

// recordResult counts consecutive transport failures; any response
// short of a 5xx closes the breaker again.
func (c *RateLimitedHTTPClient) recordResult(resp *http.Response, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.failures++
		c.lastErr = err
		if c.failures >= c.tripAt && !c.open {
			c.open = true
			c.logger.Printf("Circuit breaker opened after %d consecutive errors: %v", c.failures, err)
		}
		return
	}

	if resp.StatusCode < http.StatusInternalServerError {
		c.failures = 0
		c.open = false
	}
}

// feedRetryPolicy retries transport errors, 429 and 5xx; all other
// client errors are terminal.
func feedRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return true, nil
	}
	return false, nil
}
