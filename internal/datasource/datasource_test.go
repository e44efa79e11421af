package datasource

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	return NewRateLimitedHTTPClient(cfg, nil)
}

// TestStatsFeedFetchSchedule tests schedule fetching and conversion
func TestStatsFeedFetchSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		json.NewEncoder(w).Encode([]feedGame{
			{
				ID:         1001,
				HomeTeamID: 12,
				AwayTeamID: 7,
				Venue:      "Riverside Park",
				GameDate:   "2026-06-03T19:10:00Z",
				Status:     "scheduled",
			},
		})
	}))
	defer server.Close()

	client := NewStatsFeedClient(newTestHTTPClient(), server.URL, "test-key", true, log.Default())

	games, err := client.FetchSchedule(context.Background(), time.Now(), time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	if games[0].SourceID != 1001 {
		t.Errorf("expected game id 1001, got %d", games[0].SourceID)
	}

	if games[0].Venue != "Riverside Park" {
		t.Errorf("expected venue 'Riverside Park', got %q", games[0].Venue)
	}
}

// TestStatsFeedFetchBatterStats tests decimal rate parsing
func TestStatsFeedFetchBatterStats(t *testing.T) {
	avg, obp, slg := "0.273", "0.341", "0.455"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]feedBatter{
			{PlayerID: 501, TeamID: 12, AtBats: 320, AVG: &avg, OBP: &obp, SLG: &slg, HomeRuns: 14},
		})
	}))
	defer server.Close()

	client := NewStatsFeedClient(newTestHTTPClient(), server.URL, "test-key", true, log.Default())

	batters, err := client.FetchBatterStats(context.Background(), 12, 2026)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(batters) != 1 {
		t.Fatalf("expected 1 batter, got %d", len(batters))
	}

	if batters[0].OBP == nil || batters[0].OBP.String() != "0.341" {
		t.Errorf("expected OBP 0.341, got %v", batters[0].OBP)
	}
}

// TestStatsFeedDisabled tests that a disabled source refuses requests
func TestStatsFeedDisabled(t *testing.T) {
	client := NewStatsFeedClient(newTestHTTPClient(), "http://localhost:1", "key", false, log.Default())

	_, err := client.FetchSchedule(context.Background(), time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected error for disabled source")
	}
}

// TestStatsFeedAuthFailure tests 401 handling
func TestStatsFeedAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewStatsFeedClient(newTestHTTPClient(), server.URL, "bad-key", true, log.Default())

	_, err := client.FetchTeamStats(context.Background(), 2026)
	if err == nil {
		t.Fatal("expected error for auth failure")
	}

	dsErr, ok := err.(DataSourceError)
	if !ok {
		t.Fatalf("expected DataSourceError, got %T", err)
	}
	if dsErr.Code != ErrCodeAuthenticationFailed {
		t.Errorf("expected code %s, got %s", ErrCodeAuthenticationFailed, dsErr.Code)
	}
}

// TestStatsFeedBadGameDateSkipped tests that unparseable games are skipped
func TestStatsFeedBadGameDateSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]feedGame{
			{ID: 1, GameDate: "not-a-date"},
			{ID: 2, GameDate: "2026-06-03T19:10:00Z"},
		})
	}))
	defer server.Close()

	client := NewStatsFeedClient(newTestHTTPClient(), server.URL, "key", true, log.Default())

	games, err := client.FetchSchedule(context.Background(), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(games) != 1 || games[0].SourceID != 2 {
		t.Errorf("expected only the parseable game, got %v", games)
	}
}

// TestParseDecimal tests decimal string parsing
func TestParseDecimal(t *testing.T) {
	valid := "4.50"
	if d := parseDecimal(&valid); d == nil || d.String() != "4.5" {
		t.Errorf("expected 4.5, got %v", d)
	}

	empty := ""
	if d := parseDecimal(&empty); d != nil {
		t.Errorf("expected nil for empty string, got %v", d)
	}

	garbage := "x"
	if d := parseDecimal(&garbage); d != nil {
		t.Errorf("expected nil for garbage, got %v", d)
	}

	if d := parseDecimal(nil); d != nil {
		t.Errorf("expected nil for nil input, got %v", d)
	}
}

// TestHTTPClientRateLimit tests rate limiting functionality
func TestHTTPClientRateLimit(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 10
	client := NewRateLimitedHTTPClient(cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Measure time for 10 sequential waits at 10 req/s
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := client.limiter.Wait(ctx); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// Burst of 1, so roughly 0.9s of waiting expected
	if elapsed < 700*time.Millisecond || elapsed > 1500*time.Millisecond {
		t.Errorf("expected ~0.9s of rate limiting, got %v", elapsed)
	}
}

// TestHTTPClientCircuitBreaker tests the breaker opens after repeated failures
func TestHTTPClientCircuitBreaker(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	cfg.Timeout = 500 * time.Millisecond
	client := NewRateLimitedHTTPClient(cfg, nil)

	ctx := context.Background()
	// Unroutable target: each call fails and counts toward the breaker
	for i := 0; i < 2; i++ {
		_, _ = client.Get(ctx, "http://127.0.0.1:1")
	}

	if !client.open {
		t.Fatal("expected circuit breaker to be open")
	}

	_, err := client.Get(ctx, "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error from open circuit breaker")
	}
}
