package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentchopra/chopra/internal/config"
	"github.com/agentchopra/chopra/internal/database"
	assessmenthandlers "github.com/agentchopra/chopra/internal/modules/assessment/handlers"
	"github.com/agentchopra/chopra/internal/modules/assessment"
	"github.com/agentchopra/chopra/internal/modules/portfolio"
	portfoliohandlers "github.com/agentchopra/chopra/internal/modules/portfolio/handlers"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
	recommendationhandlers "github.com/agentchopra/chopra/internal/modules/recommendation/handlers"
)

func setupServer(t *testing.T) *Server {
	dir := t.TempDir()

	assessmentsDB, err := database.New(database.Config{
		Path:    filepath.Join(dir, "assessments.db"),
		Profile: database.ProfileStandard,
		Name:    "assessments",
	})
	require.NoError(t, err)
	t.Cleanup(func() { assessmentsDB.Close() })
	require.NoError(t, assessmentsDB.Migrate())

	clientDataDB, err := database.New(database.Config{
		Path:    filepath.Join(dir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	require.NoError(t, err)
	t.Cleanup(func() { clientDataDB.Close() })
	require.NoError(t, clientDataDB.Migrate())

	log := zerolog.Nop()
	universe := recommendation.DefaultUniverse()

	assessmentService := assessment.NewService(config.SchemeWeightedThree, log)
	assessmentRepo := assessment.NewRepository(assessmentsDB.Conn())
	engine := recommendation.NewEngine(universe, nil, log)
	portfolioService := portfolio.NewService(universe, log)

	return New(Config{
		Log:                    log,
		Config:                 &config.Config{Port: 0, DevMode: true},
		AssessmentsDB:          assessmentsDB,
		ClientDataDB:           clientDataDB,
		AssessmentHandlers:     assessmenthandlers.NewHandler(assessmentService, assessmentRepo, log),
		RecommendationHandlers: recommendationhandlers.NewHandler(engine, log),
		PortfolioHandlers:      portfoliohandlers.NewHandler(portfolioService, log),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "chopra", response["service"])
}

func TestRoutesRegistered(t *testing.T) {
	srv := setupServer(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/assessment/questions"},
		{"GET", "/api/assessment/strategies"},
		{"GET", "/api/recommendations/universe"},
		{"GET", "/api/system/status"},
		{"GET", "/api/system/database/stats"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route should be registered")
		})
	}
}

func TestSystemStatus(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Status    string            `json:"status"`
		Databases map[string]string `json:"databases"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "ok", response.Databases["assessments"])
	assert.Equal(t, "ok", response.Databases["client_data"])
}
