package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all assessment routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assessment", func(r chi.Router) {
		r.Post("/", h.HandleSubmit)               // Submit questionnaire, get profile
		r.Get("/questions", h.HandleQuestions)    // Questionnaire definition
		r.Get("/strategies", h.HandleStrategies)  // Trading strategy presets
		r.Get("/latest", h.HandleLatest)          // Most recent assessment
		r.Get("/{id}", h.HandleGetByID)           // Stored assessment by id
	})
}
