// Package server exposes the auditor over a JSON HTTP API: full
// audits, quick reachability checks and the scan history.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"seoaudit/internal/audit"
	"seoaudit/internal/history"
	"seoaudit/internal/logging"
	"seoaudit/internal/page"
	"seoaudit/internal/report"
)

const (
	maxRequestBody = 1 << 20 // 1 MiB
	analyzeTimeout = 60 * time.Second
	probeTimeout   = 15 * time.Second
)

// Server handles the API routes. The history store is optional; without
// one the history endpoints answer 503 and analyze skips persistence.
type Server struct {
	auditor *audit.Auditor
	store   history.Store
	version string
	logger  *slog.Logger
}

// New builds a Server. store may be nil.
func New(auditor *audit.Auditor, store history.Store, version string) *Server {
	return &Server{
		auditor: auditor,
		store:   store,
		version: version,
		logger:  logging.New("server"),
	}
}

// Handler returns the routed handler with request logging attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/quick-check", s.handleQuickCheck)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/trend", s.handleTrend)
	return s.logRequest(mux)
}

// ListenAndServe runs the API until ctx is cancelled, then drains
// in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: analyzeTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type analyzeRequest struct {
	URL     string `json:"url"`
	Keyword string `json:"keyword"`
}

type analyzeMeta struct {
	Keyword    string `json:"keyword,omitempty"`
	Version    string `json:"version"`
	DurationMs int64  `json:"duration_ms"`
	Saved      bool   `json:"saved"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	*report.Report
	Meta analyzeMeta `json:"meta"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	start := time.Now()
	rep, err := s.auditor.Run(ctx, req.URL, audit.Options{Keyword: req.Keyword})
	if errors.Is(err, page.ErrInvalidURL) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success: true,
		Report:  rep,
		Meta: analyzeMeta{
			Keyword:    req.Keyword,
			Version:    s.version,
			DurationMs: time.Since(start).Milliseconds(),
			Saved:      s.saveScan(rep),
		},
	})
}

// saveScan persists the report best-effort: a failing store is a logged
// warning, never an analyze failure.
func (s *Server) saveScan(rep *report.Report) bool {
	if s.store == nil {
		return false
	}
	_, err := s.store.SaveScan(&history.Scan{
		URL:            rep.URL,
		Score:          rep.OverallScore,
		Grade:          rep.Grade,
		CategoryScores: rep.Summary.CategoryScores,
		CreatedAt:      rep.GeneratedAt,
	})
	if err != nil {
		s.logger.Warn("history save failed", "url", rep.URL, "error", err)
		return false
	}
	return true
}

type quickCheckRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleQuickCheck(w http.ResponseWriter, r *http.Request) {
	var req quickCheckRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	qc, err := s.auditor.QuickCheckURL(ctx, req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"url":         qc.URL,
		"reachable":   qc.Reachable,
		"status_code": qc.StatusCode,
		"status":      qc.Status,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}

	scans, err := s.store.ListScans(r.URL.Query().Get("url"), queryLimit(r, 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scans == nil {
		scans = []*history.Scan{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(scans),
		"scans":   scans,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	points, err := s.store.Trend(url, queryLimit(r, 10))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []history.TrendPoint{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
		"points":  points,
	})
}

// decodePost enforces POST with a size-capped JSON body. Returns false
// after writing the error response.
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return false
	}
	return true
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}
