// Package portfolio computes portfolio-level risk metrics from a brokerage
// account snapshot.
package portfolio

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
)

const (
	// Symbols outside the universe get neutral assumptions.
	unknownSymbolRisk = 5

	// Suggestion thresholds.
	lowDiversification  = 0.3
	sectorConcentration = 0.4
	veryHighRisk        = 8.0
	veryLowRisk         = 3.0
)

// RiskReport summarizes the risk characteristics of a holdings list.
type RiskReport struct {
	Score            float64            `json:"score"`           // value-weighted universe risk, 1 decimal
	Level            string             `json:"level"`           // display name for the rounded score
	Diversification  float64            `json:"diversification"` // [0,1], 1 = evenly spread across all sectors
	SectorAllocation map[string]float64 `json:"sector_allocation,omitempty"`
	Suggestions      []string           `json:"suggestions,omitempty"`
}

// Service computes portfolio risk metrics. Pure aggregation over the
// read-only universe table; safe for concurrent use.
type Service struct {
	bySymbol map[string]recommendation.Stock
	log      zerolog.Logger
}

// NewService creates a portfolio service over the given stock universe.
func NewService(universe []recommendation.Stock, log zerolog.Logger) *Service {
	bySymbol := make(map[string]recommendation.Stock, len(universe))
	for _, s := range universe {
		bySymbol[s.Symbol] = s
	}
	return &Service{
		bySymbol: bySymbol,
		log:      log.With().Str("service", "portfolio").Logger(),
	}
}

// RiskReport computes the market-value-weighted risk score, sector
// allocation, diversification score, and improvement suggestions for a
// holdings list.
//
// Empty or zero-value portfolios return a well-defined zero report rather
// than an error: "no portfolio" is a valid state for a fresh account.
func (s *Service) RiskReport(holdings []domain.Holding) RiskReport {
	if len(holdings) == 0 {
		return RiskReport{Score: 0, Level: "No Portfolio", Diversification: 0}
	}

	totalValue := 0.0
	for _, h := range holdings {
		totalValue += h.MarketValue
	}
	if totalValue == 0 {
		return RiskReport{Score: 0, Level: "No Value", Diversification: 0}
	}

	risks := make([]float64, 0, len(holdings))
	weights := make([]float64, 0, len(holdings))
	sectorWeights := make(map[string]float64)

	for _, h := range holdings {
		weight := h.MarketValue / totalValue

		// Unknown symbols get neutral assumptions instead of failing the
		// whole report.
		risk := float64(unknownSymbolRisk)
		sector := domain.SectorTechnology
		if stock, ok := s.bySymbol[h.Symbol]; ok {
			risk = float64(stock.Risk)
			sector = stock.Sector
		}

		risks = append(risks, risk)
		weights = append(weights, weight)
		sectorWeights[string(sector)] += weight
	}

	weightedRisk := stat.Mean(risks, weights)
	diversification := diversificationScore(sectorWeights)
	level := domain.RiskLevelForScore(int(math.Round(weightedRisk))).String()

	return RiskReport{
		Score:            round1(weightedRisk),
		Level:            level,
		Diversification:  round2(diversification),
		SectorAllocation: sectorWeights,
		Suggestions:      suggestions(weightedRisk, diversification, sectorWeights),
	}
}

// diversificationScore derives a [0,1] score from a Herfindahl-Hirschman
// index over sector weights. 1 means evenly spread across every known
// sector, 0 means fully concentrated in one.
func diversificationScore(sectorWeights map[string]float64) float64 {
	if len(sectorWeights) == 0 {
		return 0
	}

	hhi := 0.0
	for _, w := range sectorWeights {
		hhi += w * w
	}

	minHHI := 1.0 / float64(len(domain.AllSectors)) // perfect spread
	maxHHI := 1.0                                   // single sector

	diversification := 1 - (hhi-minHHI)/(maxHHI-minHHI)
	if diversification < 0 {
		return 0
	}
	if diversification > 1 {
		return 1
	}
	return diversification
}

// suggestions produces portfolio improvement hints. Sector warnings are
// emitted in sorted sector order so output is deterministic.
func suggestions(riskScore, diversification float64, sectorWeights map[string]float64) []string {
	var out []string

	if diversification < lowDiversification {
		out = append(out, "Consider diversifying across more sectors")
	}

	sectors := make([]string, 0, len(sectorWeights))
	for sector := range sectorWeights {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		if weight := sectorWeights[sector]; weight > sectorConcentration {
			out = append(out, "High concentration in "+sector+" ("+formatPct(weight)+") - consider reducing")
		}
	}

	if riskScore > veryHighRisk {
		out = append(out, "Portfolio risk is very high - consider adding defensive positions")
	} else if riskScore < veryLowRisk {
		out = append(out, "Portfolio is very conservative - consider adding growth positions")
	}

	return out
}

func formatPct(w float64) string {
	return fmt.Sprintf("%.1f%%", w*100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
