// Package handlers provides HTTP handlers for risk assessment.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/agentchopra/chopra/internal/modules/assessment"
)

// Handler handles assessment HTTP requests
type Handler struct {
	service *assessment.Service
	repo    *assessment.Repository
	log     zerolog.Logger
}

// NewHandler creates a new assessment handler
func NewHandler(service *assessment.Service, repo *assessment.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "assessment").Logger(),
	}
}

// HandleSubmit scores a questionnaire submission, persists the result and
// returns the resolved risk profile.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req assessment.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, profile := h.service.Assess(req)

	rec, err := h.repo.Save(req, score, profile)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save assessment")
		h.writeError(w, http.StatusInternalServerError, "failed to save assessment")
		return
	}

	h.log.Info().
		Str("assessment_id", rec.ID).
		Int("score", score).
		Str("level", profile.Level.Name()).
		Msg("Assessment completed")

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      rec.ID,
		"score":   score,
		"profile": profile,
	})
}

// HandleQuestions returns the questionnaire definition.
func (h *Handler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": assessment.Questions(),
	})
}

// HandleStrategies returns the available trading strategy presets.
func (h *Handler) HandleStrategies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": assessment.TradingStrategies(),
	})
}

// HandleLatest returns the most recent stored assessment with its profile
// re-derived from the current profile table.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.repo.Latest()
	if errors.Is(err, sql.ErrNoRows) {
		h.writeError(w, http.StatusNotFound, "no assessments found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load latest assessment")
		h.writeError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}

	h.writeJSON(w, http.StatusOK, h.recordResponse(rec))
}

// HandleGetByID returns a stored assessment by id.
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		h.writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("assessment_id", id).Msg("Failed to load assessment")
		h.writeError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}

	h.writeJSON(w, http.StatusOK, h.recordResponse(rec))
}

// recordResponse pairs a stored record with its re-derived profile.
func (h *Handler) recordResponse(rec assessment.Record) map[string]interface{} {
	profile := assessment.ProfileForScore(rec.Score)
	profile.FirstName = rec.FirstName
	profile.LastName = rec.LastName
	profile.TradingStrategy = rec.TradingStrategy
	profile.AutomatedTrading = rec.AutomatedTrading
	profile.MaxDailyTrades = rec.MaxDailyTrades
	profile.StopLossPercentage = rec.StopLossPercentage

	return map[string]interface{}{
		"record":  rec,
		"profile": profile,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
