// Package api provides the HTTP server for TimeScore.
// It exposes the scoring engine and the store over a small JSON API for
// dashboards and local integrations.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timescore-labs/timescore/internal/app/tracker"
	"github.com/timescore-labs/timescore/internal/app/wish"
	"github.com/timescore-labs/timescore/internal/domain"
)

// Server is the TimeScore HTTP API server.
type Server struct {
	tracker        *tracker.Service
	wishes         *wish.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(t *tracker.Service, w *wish.Service) *Server {
	return &Server{tracker: t, wishes: w}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/behaviors", s.handleRecordBehavior)
		r.Get("/behaviors/today", s.handleToday)
		r.Get("/energy", s.handleEnergy)
		r.Post("/energy/recover", s.handlePassiveRecovery)
		r.Post("/energy/reset", s.handleDailyReset)
		r.Get("/summary", s.handleSummary)
		r.Get("/wishes", s.handleListWishes)
		r.Post("/wishes", s.handleAddWish)
		r.Post("/wishes/{id}/redeem", s.handleRedeemWish)
		r.Post("/wishes/{id}/archive", s.handleArchiveWish)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Behavior Handlers ──────────────────────────────────────────────────────

type recordRequest struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Duration int    `json:"duration"`
	Mood     int    `json:"mood"`
	Start    int64  `json:"start,omitempty"` // unix seconds
	End      int64  `json:"end,omitempty"`
}

func (s *Server) handleRecordBehavior(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Duration <= 0 {
		writeError(w, http.StatusBadRequest, "duration must be a positive number of minutes")
		return
	}
	if req.Mood == 0 {
		req.Mood = 3
	}
	if req.Mood < 1 || req.Mood > 5 {
		writeError(w, http.StatusBadRequest, "mood must be 1-5")
		return
	}

	level, err := domain.ParseLevel(req.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := tracker.Input{
		Name:     req.Name,
		Level:    level,
		Duration: req.Duration,
		Mood:     req.Mood,
	}
	if req.Start > 0 {
		in.Start = time.Unix(req.Start, 0)
	}
	if req.End > 0 {
		in.End = time.Unix(req.End, 0)
	}

	b, err := s.tracker.Record(in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	behaviors, err := s.tracker.Today()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if behaviors == nil {
		behaviors = []domain.Behavior{}
	}
	writeJSON(w, http.StatusOK, behaviors)
}

// ─── Energy Handlers ────────────────────────────────────────────────────────

func (s *Server) handleEnergy(w http.ResponseWriter, r *http.Request) {
	energy, status, err := s.tracker.EnergyStatus()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current_energy": energy,
		"status":         status,
	})
}

func (s *Server) handlePassiveRecovery(w http.ResponseWriter, r *http.Request) {
	energy, err := s.tracker.ApplyPassiveRecovery()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"current_energy": energy})
}

func (s *Server) handleDailyReset(w http.ResponseWriter, r *http.Request) {
	energy, err := s.tracker.DailyReset()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"current_energy": energy})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.tracker.Summarize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ─── Wish Handlers ──────────────────────────────────────────────────────────

type addWishRequest struct {
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

func (s *Server) handleListWishes(w http.ResponseWriter, r *http.Request) {
	wishes, err := s.wishes.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if wishes == nil {
		wishes = []domain.Wish{}
	}
	writeJSON(w, http.StatusOK, wishes)
}

func (s *Server) handleAddWish(w http.ResponseWriter, r *http.Request) {
	var req addWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.wishes.Add(req.Name, req.Cost)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRedeemWish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	redeemed, err := s.wishes.Redeem(id)
	switch {
	case errors.Is(err, domain.ErrWishNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrWishRedeemed), errors.Is(err, domain.ErrWishArchived),
		errors.Is(err, domain.ErrInsufficientScore):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, redeemed)
}

func (s *Server) handleArchiveWish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	archived, err := s.wishes.Archive(id)
	switch {
	case errors.Is(err, domain.ErrWishNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrWishRedeemed):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, archived)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
