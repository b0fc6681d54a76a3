// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transporthttp exposes the pipeline over HTTP.
package transporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// requestTimeout bounds one pipeline run. The pipeline has no internal
// cancellation, so this is the sum-of-stage-timeouts ceiling.
const requestTimeout = 90 * time.Second

// Finder runs one reviewer query. Satisfied by pipeline.Pipeline.
type Finder interface {
	FindReviewers(ctx context.Context, q types.ManuscriptQuery) (*types.ResultSet, error)
}

// Server serves the reviewer-finding API.
type Server struct {
	pipeline Finder
	logger   *slog.Logger
}

// NewServer wraps a constructed pipeline.
func NewServer(p Finder) *Server {
	return &Server{
		pipeline: p,
		logger:   slog.Default().With("component", "http"),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Get("/healthz", s.health)
	r.Post("/api/find", s.handleFind)
	return r
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request's correlation ID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var q types.ManuscriptQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	set, err := s.pipeline.FindReviewers(ctx, q)
	if err != nil {
		// FindReviewers fails only on invalid input.
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("query served",
		"request_id", RequestIDFrom(ctx),
		"retrieved", set.Metadata.CandidatesRetrieved,
		"returned", set.Metadata.ReviewersReturned)
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
