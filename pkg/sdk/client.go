// Package sdk is an HTTP client for a hosted vibescout API.
package sdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultTimeout = 15 * time.Second

// Client talks to a vibescout server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// MatchRequest mirrors the POST /v1/matches body.
type MatchRequest struct {
	Intent         string   `json:"intent,omitempty"`
	DiscoveryLevel int      `json:"discovery_level,omitempty"`
	Budget         string   `json:"budget,omitempty"`
	LikedTags      []string `json:"liked_tags,omitempty"`
	AvoidedTags    []string `json:"avoided_tags,omitempty"`
	MinPercent     int      `json:"min_percent,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
}

// SurpriseRequest mirrors the POST /v1/surprise body.
type SurpriseRequest struct {
	Count          int    `json:"count,omitempty"`
	Intent         string `json:"intent,omitempty"`
	DiscoveryLevel int    `json:"discovery_level,omitempty"`
	Budget         string `json:"budget,omitempty"`
}

// Venue is a catalog entry as returned by the API.
type Venue struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	Vibes          []string `json:"vibes,omitempty"`
	PriceTier      string   `json:"price_tier"`
	NumericalPrice string   `json:"numerical_price,omitempty"`
	TouristLevel   int      `json:"tourist_level"`
	Rating         float64  `json:"rating,omitempty"`
}

// Match is a single ranked recommendation.
type Match struct {
	Venue        Venue `json:"venue"`
	MatchPercent int   `json:"match_percent"`
	KeywordHits  int   `json:"keyword_hits,omitempty"`
}

// MatchResponse is the response of the match and surprise endpoints.
type MatchResponse struct {
	Matches     []Match  `json:"matches"`
	UnknownTags []string `json:"unknown_tags,omitempty"`
}

// HealthStatus is the response of GET /health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Venues int               `json:"venues"`
	Tags   int               `json:"tags"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vibescout api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// FindMatches requests a ranked recommendation list.
func (c *Client) FindMatches(ctx context.Context, req MatchRequest) (MatchResponse, error) {
	var resp MatchResponse
	if err := c.post(ctx, "/v1/matches", req, &resp); err != nil {
		return MatchResponse{}, err
	}
	return resp, nil
}

// SurpriseMe requests a diversity-sampled random draw.
func (c *Client) SurpriseMe(ctx context.Context, req SurpriseRequest) ([]Match, error) {
	var resp MatchResponse
	if err := c.post(ctx, "/v1/surprise", req, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// Health reports the server's component health. A degraded server
// returns the status with a nil error; transport failures return an
// error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	defer res.Body.Close()

	var status HealthStatus
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}
	return status, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return parseAPIError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}
	data, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil || json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
		apiErr.Code = "unknown"
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = res.Status
		}
	}
	return apiErr
}
