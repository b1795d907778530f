package recommendation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/assessment"
)

const (
	// DefaultLimit bounds the result set when the caller does not ask for
	// a specific count. The dashboard commonly requests 5.
	DefaultLimit = 10

	// riskWindow is the maximum |universe risk - profile score| allowed
	// through the filter. Ties at exactly the window are included.
	riskWindow = 2

	// Strength scoring: base plus additive bonuses, clamped to [0,1].
	strengthBase        = 0.5
	strengthExactMatch  = 0.2
	strengthNearMatch   = 0.1
	strengthSectorMatch = 0.2

	// Target allocation ramp: 5%-20% of portfolio depending on strength,
	// always capped by the profile's max position size.
	allocationBase  = 0.05
	allocationSlope = 0.15

	// enrichTimeout bounds each per-symbol price lookup. A slow or failed
	// lookup degrades that one recommendation to placeholder pricing and
	// must never stall the ranking of the others.
	enrichTimeout = 2 * time.Second

	// targetUpsideFallback is applied when no better estimate exists.
	targetUpsideFallback = 1.1
)

// Recommendation is a single ranked entry produced by the engine.
// Constructed fresh on every call and never cached; ordering within a
// result set is the rank.
type Recommendation struct {
	Symbol           string        `json:"symbol"`
	Name             string        `json:"name"`
	Sector           domain.Sector `json:"sector"`
	RiskRating       int           `json:"risk_rating"`
	Strength         float64       `json:"recommendation_strength"`
	TargetAllocation float64       `json:"target_allocation"`
	Reasoning        string        `json:"reasoning"`
	CurrentPrice     float64       `json:"current_price,omitempty"`
	TargetPrice      float64       `json:"target_price,omitempty"`
}

// Engine filters and ranks the stock universe against a risk profile.
// The universe is read-only after construction, so any number of callers
// may invoke Recommend concurrently.
type Engine struct {
	universe []Stock
	prices   domain.PriceProvider // optional, nil disables enrichment
	log      zerolog.Logger
}

// NewEngine creates a recommendation engine over the given universe.
// prices may be nil, in which case recommendations carry placeholder
// (zero) prices.
func NewEngine(universe []Stock, prices domain.PriceProvider, log zerolog.Logger) *Engine {
	return &Engine{
		universe: universe,
		prices:   prices,
		log:      log.With().Str("service", "recommendation").Logger(),
	}
}

// Universe returns the engine's stock universe (shared read-only slice).
func (e *Engine) Universe() []Stock {
	return e.universe
}

// Recommend produces up to limit recommendations for the profile, ranked
// by descending strength. Symbols already held are excluded, as are
// symbols outside the risk compatibility window or in an avoided sector.
//
// An empty result is a valid terminal state, not an error: it means no
// universe entry suits the profile and remaining capacity.
func (e *Engine) Recommend(ctx context.Context, profile assessment.Profile, holdings []domain.Holding, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}

	owned := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		owned[strings.ToUpper(h.Symbol)] = true
	}

	recs := make([]Recommendation, 0, len(e.universe))
	for _, stock := range e.universe {
		if owned[stock.Symbol] {
			continue
		}

		riskDiff := absInt(stock.Risk - profile.Score)
		if riskDiff > riskWindow {
			continue
		}

		if profile.AvoidsSector(stock.Sector) {
			continue
		}

		strength := strengthBase
		if riskDiff == 0 {
			strength += strengthExactMatch
		} else if riskDiff == 1 {
			strength += strengthNearMatch
		}
		if profile.RecommendsSector(stock.Sector) {
			strength += strengthSectorMatch
		}
		strength = clamp01(strength)

		targetAllocation := allocationBase + strength*allocationSlope
		if targetAllocation > profile.MaxPositionSize {
			targetAllocation = profile.MaxPositionSize
		}

		recs = append(recs, Recommendation{
			Symbol:           stock.Symbol,
			Name:             stock.Name,
			Sector:           stock.Sector,
			RiskRating:       stock.Risk,
			Strength:         strength,
			TargetAllocation: targetAllocation,
			Reasoning:        buildReasoning(stock, profile, strength, riskDiff),
		})
	}

	// Stable sort keeps universe order on equal strength, which makes
	// result ordering reproducible across calls.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Strength > recs[j].Strength
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}

	e.enrich(ctx, recs)

	return recs
}

// enrich populates current and target prices from the price provider.
// Strictly best-effort: each symbol gets its own bounded lookup, and a
// failure leaves that entry with placeholder pricing.
func (e *Engine) enrich(ctx context.Context, recs []Recommendation) {
	if e.prices == nil {
		return
	}

	for i := range recs {
		quoteCtx, cancel := context.WithTimeout(ctx, enrichTimeout)
		quote, err := e.prices.GetQuote(quoteCtx, recs[i].Symbol)
		cancel()
		if err != nil {
			e.log.Warn().
				Err(err).
				Str("symbol", recs[i].Symbol).
				Msg("Price enrichment failed, keeping placeholder pricing")
			continue
		}

		recs[i].CurrentPrice = quote.Price

		targetCtx, cancel := context.WithTimeout(ctx, enrichTimeout)
		target, err := e.prices.EstimateTargetPrice(targetCtx, recs[i].Symbol, quote.Price)
		cancel()
		if err != nil {
			target = quote.Price * targetUpsideFallback
		}
		recs[i].TargetPrice = target
	}
}

// buildReasoning assembles the human-readable explanation from the factors
// that actually fired. Deterministic for identical inputs.
func buildReasoning(stock Stock, profile assessment.Profile, strength float64, riskDiff int) string {
	var reasons []string

	if riskDiff <= 1 {
		reasons = append(reasons, fmt.Sprintf("Risk level (%d/10) aligns well with your profile", stock.Risk))
	}

	if profile.RecommendsSector(stock.Sector) {
		reasons = append(reasons, fmt.Sprintf("%s sector matches your preferences", stock.Sector))
	}

	switch {
	case strength > 0.7:
		reasons = append(reasons, "Strong match across risk and sector criteria")
	case strength > 0.5:
		reasons = append(reasons, "Solid fit for your risk profile")
	default:
		reasons = append(reasons, "Acceptable fit with growth potential")
	}

	return strings.Join(reasons, ". ")
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
