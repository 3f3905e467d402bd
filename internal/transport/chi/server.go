// Package chi exposes the recommendation engine over HTTP.
package chi

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/citymood/vibescout/internal/domain"
	dommatch "github.com/citymood/vibescout/internal/domain/match"
	"github.com/citymood/vibescout/internal/domain/query"
	"github.com/citymood/vibescout/internal/metrics"
	healthuc "github.com/citymood/vibescout/internal/usecase/health"
	matchuc "github.com/citymood/vibescout/internal/usecase/match"
)

// Server handles the HTTP API.
type Server struct {
	engine *matchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(engine *matchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{engine: engine, health: health, logger: logger}
}

// Routes mounts all handlers on a fresh router. Middleware is the
// caller's concern; the composition root stacks recovery, request IDs,
// auth, and metrics around this.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/v1/matches", s.handleMatches)
	r.Post("/v1/surprise", s.handleSurprise)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}

// matchRequest is the wire form of a match query.
type matchRequest struct {
	Intent         string   `json:"intent,omitempty"`
	DiscoveryLevel int      `json:"discovery_level,omitempty"`
	Budget         string   `json:"budget,omitempty"`
	LikedTags      []string `json:"liked_tags,omitempty"`
	AvoidedTags    []string `json:"avoided_tags,omitempty"`
	MinPercent     int      `json:"min_percent,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
}

type surpriseRequest struct {
	Count          int    `json:"count,omitempty"`
	Intent         string `json:"intent,omitempty"`
	DiscoveryLevel int    `json:"discovery_level,omitempty"`
	Budget         string `json:"budget,omitempty"`
}

type venueResponse struct {
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

type matchItem struct {
	Venue        venueResponse `json:"venue"`
	MatchPercent int           `json:"match_percent"`
	KeywordHits  int           `json:"keyword_hits,omitempty"`
}

type matchResponse struct {
	Matches     []matchItem `json:"matches"`
	UnknownTags []string    `json:"unknown_tags,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("matches", "error").Inc()
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(query.Intent(req.Intent), req.DiscoveryLevel,
		query.Budget(req.Budget), req.LikedTags, req.AvoidedTags)
	if err != nil {
		s.handleDomainError(w, "matches", err)
		return
	}
	opts, err := query.NewOptions(req.MinPercent, req.MaxResults)
	if err != nil {
		s.handleDomainError(w, "matches", err)
		return
	}

	ranking, err := s.engine.FindMatches(r.Context(), q, opts)
	if err != nil {
		s.handleDomainError(w, "matches", err)
		return
	}

	outcome := "ok"
	if len(q.LikedTags()) == 0 {
		outcome = "fallback"
	}
	metrics.MatchRequestsTotal.WithLabelValues("matches", outcome).Inc()
	metrics.MatchDuration.WithLabelValues("matches").Observe(time.Since(start).Seconds())
	metrics.MatchResultsReturned.WithLabelValues("matches").Observe(float64(len(ranking.Results())))

	writeJSON(w, http.StatusOK, matchResponse{
		Matches:     itemsFromResults(ranking.Results()),
		UnknownTags: ranking.UnknownTags(),
	})
}

func (s *Server) handleSurprise(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req surpriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("surprise", "error").Inc()
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(query.Intent(req.Intent), req.DiscoveryLevel,
		query.Budget(req.Budget), nil, nil)
	if err != nil {
		s.handleDomainError(w, "surprise", err)
		return
	}

	results, err := s.engine.SurpriseMe(r.Context(), req.Count, q)
	if err != nil {
		s.handleDomainError(w, "surprise", err)
		return
	}

	metrics.MatchRequestsTotal.WithLabelValues("surprise", "ok").Inc()
	metrics.MatchDuration.WithLabelValues("surprise").Observe(time.Since(start).Seconds())
	metrics.MatchResultsReturned.WithLabelValues("surprise").Observe(float64(len(results)))

	writeJSON(w, http.StatusOK, matchResponse{Matches: itemsFromResults(results)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": string(report.Status),
		"checks": checks,
		"venues": report.Venues,
		"tags":   report.Tags,
	})
}

func itemsFromResults(results []dommatch.Result) []matchItem {
	items := make([]matchItem, len(results))
	for i := range results {
		v := results[i].Venue()
		items[i] = matchItem{
			Venue: venueResponse{
				ID:             v.ID(),
				Name:           v.Name(),
				Category:       string(v.Category()),
				Description:    v.Description(),
				Vibes:          v.Vibes(),
				PriceTier:      string(v.PriceTier()),
				NumericalPrice: v.NumericalPrice(),
				TouristLevel:   v.TouristLevel(),
				Rating:         v.Rating(),
			},
			MatchPercent: results[i].Percent(),
			KeywordHits:  results[i].KeywordHits(),
		}
	}
	return items
}

func (s *Server) handleDomainError(w http.ResponseWriter, mode string, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	metrics.MatchRequestsTotal.WithLabelValues(mode, "error").Inc()

	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
	case errors.Is(err, domain.ErrCatalogNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "catalog_not_loaded", domain.ErrCatalogNotLoaded.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
