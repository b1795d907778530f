// Package handlers provides HTTP handlers for stock recommendations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/assessment"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	engine *recommendation.Engine
	log    zerolog.Logger
}

// NewHandler creates a new recommendation handler
func NewHandler(engine *recommendation.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "recommendation").Logger(),
	}
}

// recommendRequest carries either a full risk profile or a bare score from
// which the profile is re-derived.
type recommendRequest struct {
	Score    int                 `json:"score,omitempty"`
	Profile  *assessment.Profile `json:"profile,omitempty"`
	Holdings []domain.Holding    `json:"holdings,omitempty"`
	Limit    int                 `json:"limit,omitempty"`
}

// HandleRecommend returns ranked stock recommendations for a risk profile.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var profile assessment.Profile
	switch {
	case req.Profile != nil:
		profile = *req.Profile
	case req.Score >= 1 && req.Score <= 10:
		profile = assessment.ProfileForScore(req.Score)
	default:
		h.writeError(w, http.StatusBadRequest, "either profile or score (1-10) is required")
		return
	}

	recs := h.engine.Recommend(r.Context(), profile, req.Holdings, req.Limit)

	h.log.Info().
		Int("score", profile.Score).
		Int("holdings", len(req.Holdings)).
		Int("recommendations", len(recs)).
		Msg("Recommendations generated")

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":           profile.Score,
		"recommendations": recs,
	})
}

// HandleUniverse returns the investment universe the engine selects from.
func (h *Handler) HandleUniverse(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"universe": h.engine.Universe(),
	})
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
