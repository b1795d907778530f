package portfolio

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
)

func newService() *Service {
	return NewService(recommendation.DefaultUniverse(), zerolog.Nop())
}

func TestRiskReport_EmptyPortfolio(t *testing.T) {
	svc := newService()

	report := svc.RiskReport(nil)
	assert.Equal(t, 0.0, report.Score)
	assert.Equal(t, "No Portfolio", report.Level)
	assert.Equal(t, 0.0, report.Diversification)
}

func TestRiskReport_ZeroValue(t *testing.T) {
	svc := newService()

	report := svc.RiskReport([]domain.Holding{
		{Symbol: "AAPL", Quantity: 10, MarketValue: 0},
	})
	assert.Equal(t, 0.0, report.Score)
	assert.Equal(t, "No Value", report.Level)
}

func TestRiskReport_SingleHolding(t *testing.T) {
	svc := newService()

	// AAPL has universe risk 5 in the Technology sector
	report := svc.RiskReport([]domain.Holding{
		{Symbol: "AAPL", Quantity: 10, MarketValue: 1800},
	})

	assert.InDelta(t, 5.0, report.Score, 1e-9)
	assert.Equal(t, "Moderate-High Risk", report.Level)
	assert.Equal(t, 0.0, report.Diversification, "single sector means zero diversification")
	assert.InDelta(t, 1.0, report.SectorAllocation["Technology"], 1e-9)
	assert.Contains(t, report.Suggestions, "Consider diversifying across more sectors")
	assert.Contains(t, report.Suggestions, "High concentration in Technology (100.0%) - consider reducing")
}

func TestRiskReport_WeightedByValue(t *testing.T) {
	svc := newService()

	// AAPL risk 5 (36% of value), JNJ risk 2 (64% of value)
	report := svc.RiskReport([]domain.Holding{
		{Symbol: "AAPL", Quantity: 10, MarketValue: 1800},
		{Symbol: "JNJ", Quantity: 20, MarketValue: 3200},
	})

	// 5*0.36 + 2*0.64 = 3.08, rounded to one decimal
	assert.InDelta(t, 3.1, report.Score, 1e-9)
	assert.Equal(t, "Low-Moderate Risk", report.Level)
	assert.InDelta(t, 0.36, report.SectorAllocation["Technology"], 1e-9)
	assert.InDelta(t, 0.64, report.SectorAllocation["Healthcare"], 1e-9)
	assert.Contains(t, report.Suggestions, "High concentration in Healthcare (64.0%) - consider reducing")
}

func TestRiskReport_UnknownSymbolDefaults(t *testing.T) {
	svc := newService()

	report := svc.RiskReport([]domain.Holding{
		{Symbol: "ZZZZ", Quantity: 1, MarketValue: 1000},
	})

	// Unknown symbols assume risk 5 in Technology
	assert.InDelta(t, 5.0, report.Score, 1e-9)
	assert.InDelta(t, 1.0, report.SectorAllocation["Technology"], 1e-9)
}

func TestRiskReport_VeryHighRiskSuggestion(t *testing.T) {
	svc := newService()

	report := svc.RiskReport([]domain.Holding{
		{Symbol: "COIN", Quantity: 5, MarketValue: 1000},
		{Symbol: "RIVN", Quantity: 50, MarketValue: 1000},
	})

	assert.Greater(t, report.Score, 8.0)
	assert.Contains(t, report.Suggestions, "Portfolio risk is very high - consider adding defensive positions")
}

func TestRiskReport_VeryLowRiskSuggestion(t *testing.T) {
	svc := newService()

	report := svc.RiskReport([]domain.Holding{
		{Symbol: "JNJ", Quantity: 10, MarketValue: 1000},
		{Symbol: "PG", Quantity: 10, MarketValue: 1000},
	})

	assert.Less(t, report.Score, 3.0)
	assert.Contains(t, report.Suggestions, "Portfolio is very conservative - consider adding growth positions")
}

func TestRiskReport_DiversificationImprovesWithSpread(t *testing.T) {
	svc := newService()

	concentrated := svc.RiskReport([]domain.Holding{
		{Symbol: "AAPL", MarketValue: 1000},
		{Symbol: "MSFT", MarketValue: 1000},
	})

	spread := svc.RiskReport([]domain.Holding{
		{Symbol: "AAPL", MarketValue: 1000}, // Technology
		{Symbol: "JNJ", MarketValue: 1000},  // Healthcare
		{Symbol: "JPM", MarketValue: 1000},  // Financials
		{Symbol: "NEE", MarketValue: 1000},  // Utilities
		{Symbol: "WMT", MarketValue: 1000},  // Consumer Staples
	})

	require.Greater(t, spread.Diversification, concentrated.Diversification)
	assert.GreaterOrEqual(t, spread.Diversification, 0.0)
	assert.LessOrEqual(t, spread.Diversification, 1.0)
}
