package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	routeLabelKey
)

// RequestID returns the request ID stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware reuses an incoming X-Request-ID or generates one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// unmatchedRoute labels requests no route matched, keeping metric
// cardinality independent of the paths callers send
const unmatchedRoute = "unmatched"

type routeLabel struct {
	template string
}

// routeLabelMiddleware runs inside the router and records the matched
// route template for instrumentMiddleware
func routeLabelMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if label, ok := r.Context().Value(routeLabelKey).(*routeLabel); ok {
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					label.template = tpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// instrumentMiddleware wraps the whole router, so requests that match no
// route (404) or no method (405) are logged and counted as well
func (h *Handler) instrumentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		label := &routeLabel{template: unmatchedRoute}

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), routeLabelKey, label)))

		elapsed := time.Since(start)
		if h.metrics != nil {
			h.metrics.ObserveRequest(label.template, r.Method, rec.status, elapsed)
		}

		event := h.log.Info()
		if rec.status >= http.StatusInternalServerError {
			event = h.log.Error()
		}
		event.
			Str("request_id", RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", label.template).
			Int("status", rec.status).
			Dur("duration", elapsed).
			Msg("HTTP request")
	})
}
