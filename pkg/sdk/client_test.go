package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/matches" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req MatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.LikedTags) != 1 || req.LikedTags[0] != "Romantic" {
			t.Errorf("liked_tags = %v, want [Romantic]", req.LikedTags)
		}

		json.NewEncoder(w).Encode(MatchResponse{
			Matches: []Match{{
				Venue:        Venue{ID: "harbour-house", Name: "Harbour House"},
				MatchPercent: 92,
				KeywordHits:  1,
			}},
			UnknownTags: []string{"Gloomy"},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithAPIKey("test-key"))
	resp, err := c.FindMatches(context.Background(), MatchRequest{
		LikedTags:   []string{"Romantic"},
		AvoidedTags: []string{"Gloomy"},
	})
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].Venue.ID != "harbour-house" {
		t.Errorf("unexpected matches: %+v", resp.Matches)
	}
	if resp.Matches[0].MatchPercent != 92 {
		t.Errorf("percent = %d, want 92", resp.Matches[0].MatchPercent)
	}
	if len(resp.UnknownTags) != 1 || resp.UnknownTags[0] != "Gloomy" {
		t.Errorf("unknown_tags = %v, want [Gloomy]", resp.UnknownTags)
	}
}

func TestSurpriseMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/surprise" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(MatchResponse{
			Matches: []Match{
				{Venue: Venue{ID: "a"}, MatchPercent: 50},
				{Venue: Venue{ID: "b"}, MatchPercent: 50},
			},
		})
	}))
	defer server.Close()

	matches, err := New(server.URL).SurpriseMe(context.Background(), SurpriseRequest{Count: 2})
	if err != nil {
		t.Fatalf("SurpriseMe failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}

func TestFindMatches_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "invalid_query",
			"message": "unknown intent",
		})
	}))
	defer server.Close()

	_, err := New(server.URL).FindMatches(context.Background(), MatchRequest{Intent: "nope"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "invalid_query" {
		t.Errorf("unexpected api error: %+v", apiErr)
	}
}

func TestFindMatches_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := New(server.URL).FindMatches(context.Background(), MatchRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("message = %q, want raw body", apiErr.Message)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthStatus{
			Status: "degraded",
			Checks: map[string]string{"source": "error", "catalog": "ok"},
			Venues: 120,
			Tags:   40,
		})
	}))
	defer server.Close()

	status, err := New(server.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status.Status != "degraded" || status.Checks["source"] != "error" {
		t.Errorf("unexpected status: %+v", status)
	}
}
