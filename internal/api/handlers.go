package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-analytics/internal/analytics"
	"github.com/trogers1052/portfolio-analytics/internal/metrics"
	"github.com/trogers1052/portfolio-analytics/internal/provider"
	"github.com/trogers1052/portfolio-analytics/internal/redis"
)

const defaultTopPerformersLimit = 5

// ViewCache stores rendered response bodies per dataset fingerprint
type ViewCache interface {
	GetView(ctx context.Context, fingerprint, name string) ([]byte, error)
	SetView(ctx context.Context, fingerprint, name string, body []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    *provider.Store
	db       Pinger
	cache    ViewCache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewHandler creates a new Handler. cache and m may be nil.
func NewHandler(store *provider.Store, cache ViewCache, cacheTTL time.Duration, m *metrics.Metrics, log zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// SetDatabase registers the database the dataset was loaded from so the
// health check can report on it
func (h *Handler) SetDatabase(db Pinger) {
	h.db = db
}

// GetHoldings handles GET /holdings
func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "holdings", func() (interface{}, error) {
		holdings, err := h.store.Holdings()
		if err != nil {
			return nil, err
		}
		return newHoldingResponses(analytics.ComputeHoldingMetrics(holdings)), nil
	})
}

// GetAllocation handles GET /allocation
func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "allocation", func() (interface{}, error) {
		holdings, err := h.store.Holdings()
		if err != nil {
			return nil, err
		}
		return AllocationResponse{
			BySector:    analytics.ComputeAllocation(holdings, analytics.BySector),
			ByMarketCap: analytics.ComputeAllocation(holdings, analytics.ByMarketCap),
		}, nil
	})
}

// GetPerformance handles GET /performance
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "performance", func() (interface{}, error) {
		points, err := h.store.Performance()
		if err != nil {
			return nil, err
		}
		return newPerformanceResponse(analytics.ComputePerformanceSeries(points)), nil
	})
}

// GetPerformanceStats handles GET /performance/stats
func (h *Handler) GetPerformanceStats(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "performance-stats", func() (interface{}, error) {
		points, err := h.store.Performance()
		if err != nil {
			return nil, err
		}
		return newStatsResponse(analytics.ComputeSeriesStats(points)), nil
	})
}

// GetSummary handles GET /summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "summary", func() (interface{}, error) {
		holdings, err := h.store.Holdings()
		if err != nil {
			return nil, err
		}
		facts, err := h.store.SummaryFacts()
		if err != nil {
			return nil, err
		}
		return newSummaryResponse(analytics.ComputePortfolioSummary(holdings, facts)), nil
	})
}

// GetTopPerformers handles GET /top-performers?limit=N
func (h *Handler) GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopPerformersLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	// Limits past the holding count render the same view
	if holdings, err := h.store.Holdings(); err == nil && limit > len(holdings) {
		limit = len(holdings)
	}

	h.serveView(w, r, "top-performers:"+strconv.Itoa(limit), func() (interface{}, error) {
		holdings, err := h.store.Holdings()
		if err != nil {
			return nil, err
		}
		gainers, losers := analytics.RankHoldings(holdings, limit)
		return TopPerformersResponse{
			Gainers: newPerformerResponses(gainers),
			Losers:  newPerformerResponses(losers),
		}, nil
	})
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Portfolio Analytics API",
		"source":  h.store.Source(),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  map[string]string{},
	}
	services := health["services"].(map[string]string)
	allHealthy := true

	// Check dataset sections
	services["dataset"] = "loaded from " + h.store.Source()
	for section, err := range h.store.Errors() {
		services["dataset."+section] = "invalid: " + err.Error()
		allHealthy = false
	}

	// Check database
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			services["postgres"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			services["postgres"] = "healthy"
		}
	} else {
		services["postgres"] = "not configured"
	}

	// Check Redis
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			services["redis"] = "unhealthy: " + err.Error()
		} else {
			services["redis"] = "healthy"
		}
	} else {
		services["redis"] = "not configured"
	}

	if !allHealthy {
		health["status"] = "degraded"
	}

	respondJSON(w, http.StatusOK, health)
}

// serveView renders a view, consulting the cache first when one is
// configured. Cache failures never fail the request.
func (h *Handler) serveView(w http.ResponseWriter, r *http.Request, name string, build func() (interface{}, error)) {
	fingerprint := h.store.Fingerprint()

	if h.cache != nil {
		body, err := h.cache.GetView(r.Context(), fingerprint, name)
		if err == nil {
			h.observeCache(name, true)
			respondRaw(w, http.StatusOK, body)
			return
		}
		if !errors.Is(err, redis.ErrMiss) {
			h.log.Warn().Err(err).Str("view", name).Msg("View cache lookup failed")
		}
		h.observeCache(name, false)
	}

	data, err := build()
	if err != nil {
		h.log.Error().Err(err).Str("view", name).Msg("Failed to build view")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Str("view", name).Msg("Failed to encode view")
		respondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	if h.cache != nil {
		if err := h.cache.SetView(r.Context(), fingerprint, name, body, h.cacheTTL); err != nil {
			h.log.Warn().Err(err).Str("view", name).Msg("Failed to cache view")
		}
	}

	respondRaw(w, http.StatusOK, body)
}

// observeCache records a lookup under the view name without its parameters
func (h *Handler) observeCache(name string, hit bool) {
	if h.metrics != nil {
		view, _, _ := strings.Cut(name, ":")
		h.metrics.ObserveCache(view, hit)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
