package api

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// PortfolioPrefix is the path prefix the portfolio routes are also served
// under
const PortfolioPrefix = "/api/portfolio"

// SetupRoutes configures all API routes and wraps them in CORS handling
func SetupRoutes(handler *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(routeLabelMiddleware)

	r.HandleFunc("/", handler.Root).Methods("GET")

	// Health check and metrics
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	if handler.metrics != nil {
		r.Handle("/metrics", handler.metrics.Handler()).Methods("GET")
	}

	// Portfolio routes
	portfolioRoutes(r, handler)
	portfolioRoutes(r.PathPrefix(PortfolioPrefix).Subrouter(), handler)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
	return corsHandler(requestIDMiddleware(handler.instrumentMiddleware(r)))
}

func portfolioRoutes(r *mux.Router, handler *Handler) {
	r.HandleFunc("/holdings", handler.GetHoldings).Methods("GET")
	r.HandleFunc("/allocation", handler.GetAllocation).Methods("GET")
	r.HandleFunc("/performance", handler.GetPerformance).Methods("GET")
	r.HandleFunc("/performance/stats", handler.GetPerformanceStats).Methods("GET")
	r.HandleFunc("/summary", handler.GetSummary).Methods("GET")
	r.HandleFunc("/top-performers", handler.GetTopPerformers).Methods("GET")
}
