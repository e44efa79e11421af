package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yourusername/diamond-sim/internal/metrics"
)

// LineupStreamClient handles the WebSocket connection to the feed's
// live lineup channel. Lineup cards change right up to first pitch;
// the stream delivers each revision as a complete document.
type LineupStreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	streamURL       string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []LineupHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	logger          *log.Logger
}

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// LineupHandler is called for every lineup revision received from the stream
type LineupHandler func(update *LineupUpdate) error

// LineupUpdate is a full lineup revision for one team in one game
type LineupUpdate struct {
	Op        string            `json:"op"`
	GameID    int64             `json:"gameId"`
	TeamID    int64             `json:"teamId"`
	Projected bool              `json:"projected"`
	Entries   []LineupEntryData `json:"entries"`
	Timestamp int64             `json:"timestamp"`
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// NewLineupStreamClient creates a new lineup stream client
func NewLineupStreamClient(streamURL, apiKey string, logger *log.Logger) *LineupStreamClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &LineupStreamClient{
		apiKey:          apiKey,
		streamURL:       streamURL,
		handlers:        make([]LineupHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop
func (s *LineupStreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.Printf("Connecting to lineup stream: %s", s.streamURL)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	s.logger.Printf("Connected to lineup stream successfully")

	go s.readMessages()

	return nil
}

// Authenticate sends the authentication message
func (s *LineupStreamClient) Authenticate(ctx context.Context) error {
	return s.sendMessage(map[string]interface{}{
		"op":     "auth",
		"apiKey": s.apiKey,
	})
}

// SubscribeToGames subscribes to lineup revisions for specific games
func (s *LineupStreamClient) SubscribeToGames(ctx context.Context, gameIDs []int64) error {
	s.logger.Printf("Subscribing to lineups for %d games", len(gameIDs))
	return s.sendMessage(map[string]interface{}{
		"op":        "subscribe",
		"channel":   "lineups",
		"gameIds":   gameIDs,
		"heartbeat": true,
	})
}

// AddHandler registers a lineup update handler
func (s *LineupStreamClient) AddHandler(handler LineupHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the WebSocket connection
func (s *LineupStreamClient) readMessages() {
	defer s.Close()

	for {
		var raw json.RawMessage
		err := s.conn.ReadJSON(&raw)
		if err != nil {
			s.logger.Printf("Error reading message: %v", err)
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		update := &LineupUpdate{}
		if err := json.Unmarshal(raw, update); err != nil {
			s.logger.Printf("Malformed stream message: %v", err)
			continue
		}

		// Heartbeats and acks carry no lineup payload
		if update.Op != "lineup" {
			continue
		}

		metrics.LineupStreamEventsTotal.Inc()

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(update); err != nil {
				s.logger.Printf("Handler error: %v", err)
			}
		}
	}
}

// sendMessage sends a JSON message to the stream
func (s *LineupStreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *LineupStreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *LineupStreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection
func (s *LineupStreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	return s.conn.Close()
}

// Ping sends a ping message to keep the connection alive
func (s *LineupStreamClient) Ping() error {
	return s.sendMessage(map[string]interface{}{
		"op": "ping",
	})
}
