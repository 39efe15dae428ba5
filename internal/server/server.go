// Package server serves the signal analyzer over HTTP.
//
//	POST /calculate-metrics        {"func_str": "..."}     → Result
//	POST /calculate-metrics/batch  {"functions": [...]}    → {"results": [...]}
//	POST /tool                     agent tool call
//	GET  /schema                   agent tool schema
//	GET  /health                   liveness check
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/njchilds90/gosignal/internal/config"
	"github.com/njchilds90/gosignal/internal/mcptool"
	"github.com/njchilds90/gosignal/signal"
)

const shutdownGrace = 5 * time.Second

type Server struct {
	analyzer *signal.Analyzer
	log      logrus.FieldLogger
	cfg      config.ServerConfig
}

func New(a *signal.Analyzer, cfg config.ServerConfig, log logrus.FieldLogger) *Server {
	return &Server{analyzer: a, log: log, cfg: cfg}
}

// MetricsRequest is the body of POST /calculate-metrics.
type MetricsRequest struct {
	FuncStr string `json:"func_str"`
}

// BatchRequest is the body of POST /calculate-metrics/batch.
type BatchRequest struct {
	Functions []string `json:"functions"`
}

// Handler returns the routed handler with request ids, recovery and CORS.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRequestID, s.withRecover, s.corsHandler())

	r.Route("/calculate-metrics", func(r chi.Router) {
		r.Post("/", s.handleMetrics())
		r.Post("/batch", s.handleBatch())
	})
	r.Post("/tool", s.handleTool())
	r.Get("/schema", s.handleSchema())
	r.Get("/health", s.handleHealth())
	return r
}

// Run serves on cfg.Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("gosignal server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleMetrics() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MetricsRequest
		if !s.decode(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, s.analyzer.Analyze(r.Context(), req.FuncStr))
	}
}

func (s *Server) handleBatch() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		if !s.decode(w, r, &req) {
			return
		}
		if req.Functions == nil {
			writeError(w, http.StatusBadRequest, "missing field: functions")
			return
		}
		writeJSON(w, http.StatusOK, mcptool.BatchResult{Results: s.analyzer.AnalyzeBatch(r.Context(), req.Functions)})
	}
}

func (s *Server) handleTool() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mcptool.ToolRequest
		if !s.decode(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, mcptool.HandleToolCall(r.Context(), s.analyzer, req))
	}
}

func (s *Server) handleSchema() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, mcptool.ToolSpec())
	}
}

func (s *Server) handleHealth() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// decode reads exactly one JSON object into dst. On failure it writes a 400
// and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
