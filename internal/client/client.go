// Package client is a small HTTP client for the recommender API
package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bookwise/recommender/internal/handlers"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/telemetry"
	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const userAgent = "bookwise-cli/1.0"

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 404
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to a running recommender
type Client struct {
	http *resty.Client
}

// New creates a client for the API at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetJSONUnmarshaler(jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal).
		SetTransport(telemetry.NewHTTPTransport(nil))

	http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.Log.Debug("HTTP Request", zap.String("method", req.Method), zap.String("url", req.URL))
		return nil
	})
	http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Log.Debug("HTTP Response", zap.Int("status", resp.StatusCode()), zap.Duration("time", resp.Time()))
		return nil
	})

	return &Client{http: http}
}

// Recommendations fetches recommendations for a book. A limit of zero lets
// the server pick its default.
func (c *Client) Recommendations(ctx context.Context, bookID string, limit int) (*handlers.RecommendationsResponse, error) {
	var out handlers.RecommendationsResponse
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("bookId", bookID).
		SetResult(&out).
		SetError(&errorBody{})
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/recommendations/{bookId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the server's health report
func (c *Client) Health(ctx context.Context) (*handlers.HealthResponse, error) {
	var out handlers.HealthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&errorBody{}).
		Get("/api/health")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Genres lists the catalogue's genres
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var out struct {
		Genres []string `json:"genres"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&errorBody{}).
		Get("/api/genres")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	message := strings.TrimSpace(string(resp.Body()))
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		message = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}
