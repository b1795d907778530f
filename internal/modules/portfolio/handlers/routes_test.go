package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentchopra/chopra/internal/modules/portfolio"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
)

func setupRouter(t *testing.T) chi.Router {
	service := portfolio.NewService(recommendation.DefaultUniverse(), zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestHandleRisk(t *testing.T) {
	router := setupRouter(t)

	body, err := json.Marshal(map[string]interface{}{
		"holdings": []map[string]interface{}{
			{"symbol": "AAPL", "quantity": 10, "market_value": 1800},
			{"symbol": "JNJ", "quantity": 20, "market_value": 3200},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/portfolio/risk", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report portfolio.RiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Greater(t, report.Score, 0.0)
	assert.LessOrEqual(t, report.Score, 10.0)
	assert.NotEmpty(t, report.SectorAllocation)
}

func TestHandleRisk_EmptyPortfolio(t *testing.T) {
	router := setupRouter(t)

	body := []byte(`{"holdings": []}`)
	req := httptest.NewRequest(http.MethodPost, "/portfolio/risk", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report portfolio.RiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 0.0, report.Score)
	assert.Equal(t, "No Portfolio", report.Level)
}

func TestHandleRisk_InvalidBody(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/portfolio/risk", bytes.NewBufferString("nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
