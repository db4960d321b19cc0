package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// ErrEngineUnavailable is returned while the circuit breaker is open.
	ErrEngineUnavailable = errors.New("query engine unavailable")
	// ErrEngineFailure is returned when the engine answers with an error.
	ErrEngineFailure = errors.New("query engine request failed")
)

const resultCacheTTL = 5 * time.Minute

// EngineClient proxies build requests to the query engine service. Responses
// are passed through untouched; this service owns no execution semantics.
type EngineClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	cache      *CacheService
	logger     *logrus.Logger
}

func NewEngineClient(baseURL string, timeout time.Duration, cache *CacheService, logger *logrus.Logger) *EngineClient {
	settings := gobreaker.Settings{
		Name:    "query-engine",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &EngineClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		cache:      cache,
		logger:     logger,
	}
}

// Run executes a build against historical games.
func (c *EngineClient) Run(ctx context.Context, req interface{}) (json.RawMessage, error) {
	return c.post(ctx, "/api/query-engine", req, true)
}

// Upcoming matches a build against this week's slate.
func (c *EngineClient) Upcoming(ctx context.Context, req interface{}) (json.RawMessage, error) {
	return c.post(ctx, "/api/query-engine/upcoming", req, false)
}

// UpcomingProps matches a prop build against this week's player lines.
func (c *EngineClient) UpcomingProps(ctx context.Context, req interface{}) (json.RawMessage, error) {
	return c.post(ctx, "/api/query-engine/upcoming-props", req, false)
}

func (c *EngineClient) post(ctx context.Context, path string, req interface{}, cacheable bool) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal engine request: %w", err)
	}

	var cacheKey string
	if cacheable && c.cache != nil {
		sum := sha256.Sum256(append([]byte(path), body...))
		cacheKey = QueryResultCacheKey(hex.EncodeToString(sum[:16]))

		var cached json.RawMessage
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrEngineUnavailable
		}
		return nil, err
	}

	raw := result.(json.RawMessage)
	if cacheKey != "" {
		if err := c.cache.Set(ctx, cacheKey, raw, resultCacheTTL); err != nil {
			c.logger.Warnf("Failed to cache query result: %v", err)
		}
	}
	return raw, nil
}

func (c *EngineClient) do(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build engine request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrEngineFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"component": "engine_client",
			"path":      path,
			"status":    resp.StatusCode,
		}).Warn("Query engine returned an error")
		return nil, fmt.Errorf("%w: status %d", ErrEngineFailure, resp.StatusCode)
	}

	return json.RawMessage(data), nil
}
