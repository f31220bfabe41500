// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/pkg/types"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// withRequestID reuses an incoming X-Request-ID or assigns a new UUID, and
// echoes it on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("request_id", requestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// requireAPIKey accepts the key from "Authorization: Bearer <key>", a bare
// Authorization value, or X-API-Key. It is a no-op when no key is configured.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	if s.cfg.APIKey == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("X-API-Key")
		if auth := r.Header.Get("Authorization"); auth != "" {
			parts := strings.Fields(auth)
			switch {
			case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
				provided = parts[1]
			case len(parts) == 1:
				provided = parts[0]
			}
		}

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.APIKey)) != 1 {
			s.logger.Warn("unauthorized request",
				zap.String("request_id", requestID(r.Context())),
				zap.String("path", r.URL.Path))
			writeJSON(w, http.StatusUnauthorized, types.SearchResponse{
				Status:  types.StatusError,
				Message: "A valid API key is required.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
