// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the search core over HTTP. POST /search takes a
// JSON SearchRequest and answers with a SearchResponse envelope.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ps-search/internal/corpus"
	"github.com/pdiddy/ps-search/internal/search"
	"github.com/pdiddy/ps-search/pkg/types"
)

const (
	defaultAddr            = ":5000"
	defaultReadTimeout     = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	maxBodyBytes           = 1 << 20
)

// Server serves search requests over a shared, read-only corpus.
type Server struct {
	cache  *corpus.Cache
	cfg    types.ServerConfig
	search types.SearchConfig
	logger *zap.Logger
}

// New returns a Server. Zero config fields take their defaults.
func New(cache *corpus.Cache, cfg types.ServerConfig, searchCfg types.SearchConfig, logger *zap.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cache: cache, cfg: cfg, search: searchCfg, logger: logger}
}

// Handler returns the routed handler with request-ID, logging, and (when an
// API key is configured) authentication middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /search", s.requireAPIKey(http.HandlerFunc(s.handleSearch)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return withRequestID(s.logRequests(mux))
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     s.Handler(),
		ReadTimeout: s.cfg.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logger.Warn("invalid request payload", zap.String("request_id", requestID(r.Context())), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, types.SearchResponse{
			Status:  types.StatusError,
			Message: "Invalid request payload.",
		})
		return
	}

	records, err := s.cache.Records(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, types.SearchResponse{
			Status:  types.StatusError,
			Message: "Problem statements are unavailable.",
		})
		return
	}

	opts := s.options(req)
	results := search.Search(req.InputText, records, opts)

	s.logger.Info("search",
		zap.String("request_id", requestID(r.Context())),
		zap.Int("input_keywords", len(search.ExtractKeywords(req.InputText))),
		zap.Float64("min_percentage", opts.MinPercentage),
		zap.Int("results", len(results)))
	for i, res := range results {
		s.logger.Debug("match",
			zap.Int("rank", i+1),
			zap.String("title", res.Title),
			zap.String("author", res.Author),
			zap.String("problem_statement", res.ProblemStatement),
			zap.String("contributor", res.Contributor),
			zap.Float64("percentage", res.Percentage))
	}

	if len(results) == 0 {
		writeJSON(w, http.StatusOK, types.SearchResponse{
			Status:  types.StatusError,
			Message: types.NoMatchesMessage,
		})
		return
	}
	writeJSON(w, http.StatusOK, types.SearchResponse{
		Status:  types.StatusSuccess,
		Results: results,
	})
}

// options applies request values over the configured defaults. The
// configured threshold is used as given, zero included.
func (s *Server) options(req types.SearchRequest) search.Options {
	opts := search.DefaultOptions()
	opts.MinPercentage = s.search.MinPercentage
	if req.MinPercentage != nil {
		opts.MinPercentage = *req.MinPercentage
	}
	if req.Page != nil {
		opts.Page = *req.Page
	}
	if req.ResultsPerPage != nil {
		opts.ResultsPerPage = *req.ResultsPerPage
	}
	return opts
}

type healthResponse struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"loaded"`
	Records int    `json:"records"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	loaded, n := s.cache.Loaded()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Loaded: loaded, Records: n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encode failure can only be dropped.
	_ = json.NewEncoder(w).Encode(v)
}
