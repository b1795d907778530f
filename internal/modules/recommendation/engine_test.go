package recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/assessment"
)

func newEngine() *Engine {
	return NewEngine(DefaultUniverse(), nil, zerolog.Nop())
}

func profileFor(score int) assessment.Profile {
	return assessment.ProfileForScore(score)
}

func TestRecommend_RiskWindow(t *testing.T) {
	engine := newEngine()

	for _, score := range []int{1, 5, 10} {
		recs := engine.Recommend(context.Background(), profileFor(score), nil, 100)
		require.NotEmpty(t, recs, "score %d should have candidates", score)
		for _, r := range recs {
			diff := r.RiskRating - score
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, 2, "symbol %s outside risk window for score %d", r.Symbol, score)
		}
	}
}

func TestRecommend_ExcludesHeldSymbols(t *testing.T) {
	engine := newEngine()

	holdings := []domain.Holding{
		{Symbol: "aapl", Quantity: 10, MarketValue: 1800}, // case-insensitive
		{Symbol: "MSFT", Quantity: 5, MarketValue: 2000},
	}

	recs := engine.Recommend(context.Background(), profileFor(5), holdings, 100)
	for _, r := range recs {
		assert.NotEqual(t, "AAPL", r.Symbol)
		assert.NotEqual(t, "MSFT", r.Symbol)
	}
}

func TestRecommend_AvoidSectorFilter(t *testing.T) {
	engine := newEngine()

	// Score 1 avoids Technology, Energy and Consumer Discretionary
	profile := profileFor(1)
	recs := engine.Recommend(context.Background(), profile, nil, 100)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.False(t, profile.AvoidsSector(r.Sector), "%s is in avoided sector %s", r.Symbol, r.Sector)
	}
}

func TestRecommend_StrengthBounds(t *testing.T) {
	engine := newEngine()

	for score := 1; score <= 10; score++ {
		profile := profileFor(score)
		recs := engine.Recommend(context.Background(), profile, nil, 100)
		for _, r := range recs {
			assert.GreaterOrEqual(t, r.Strength, 0.0)
			assert.LessOrEqual(t, r.Strength, 1.0)
			assert.LessOrEqual(t, r.TargetAllocation, profile.MaxPositionSize+1e-9)
			assert.NotEmpty(t, r.Reasoning)
		}
	}
}

func TestRecommend_StrengthComposition(t *testing.T) {
	universe := []Stock{
		{Symbol: "EXACT", Name: "Exact", Sector: domain.SectorHealthcare, Risk: 5},
		{Symbol: "NEAR", Name: "Near", Sector: domain.SectorHealthcare, Risk: 6},
		{Symbol: "EDGE", Name: "Edge", Sector: domain.SectorHealthcare, Risk: 7},
	}
	engine := NewEngine(universe, nil, zerolog.Nop())

	profile := assessment.Profile{Score: 5, MaxPositionSize: 1.0}
	recs := engine.Recommend(context.Background(), profile, nil, 10)
	require.Len(t, recs, 3)

	bysym := map[string]Recommendation{}
	for _, r := range recs {
		bysym[r.Symbol] = r
	}

	assert.InDelta(t, 0.7, bysym["EXACT"].Strength, 1e-9) // base + exact match
	assert.InDelta(t, 0.6, bysym["NEAR"].Strength, 1e-9)  // base + near match
	assert.InDelta(t, 0.5, bysym["EDGE"].Strength, 1e-9)  // base only

	// target allocation = 0.05 + 0.15 * strength, uncapped here
	assert.InDelta(t, 0.05+0.15*0.7, bysym["EXACT"].TargetAllocation, 1e-9)
}

func TestRecommend_SectorBonus(t *testing.T) {
	universe := []Stock{
		{Symbol: "UTIL", Name: "Utility", Sector: domain.SectorUtilities, Risk: 2},
		{Symbol: "FIN", Name: "Financial", Sector: domain.SectorFinancials, Risk: 2},
	}
	engine := NewEngine(universe, nil, zerolog.Nop())

	// Score 2 recommends Utilities (among others), not Financials
	recs := engine.Recommend(context.Background(), profileFor(2), nil, 10)
	require.Len(t, recs, 2)

	assert.Equal(t, "UTIL", recs[0].Symbol)
	assert.InDelta(t, 0.9, recs[0].Strength, 1e-9) // base + exact + sector
	assert.InDelta(t, 0.7, recs[1].Strength, 1e-9)
	assert.Contains(t, recs[0].Reasoning, "Utilities sector matches your preferences")
}

func TestRecommend_SortedAndLimited(t *testing.T) {
	engine := newEngine()

	recs := engine.Recommend(context.Background(), profileFor(5), nil, 5)
	assert.LessOrEqual(t, len(recs), 5)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Strength, recs[i].Strength, "results must be sorted by descending strength")
	}
}

func TestRecommend_DefaultLimit(t *testing.T) {
	engine := newEngine()

	recs := engine.Recommend(context.Background(), profileFor(5), nil, 0)
	assert.LessOrEqual(t, len(recs), DefaultLimit)
}

func TestRecommend_TiePreservesUniverseOrder(t *testing.T) {
	universe := []Stock{
		{Symbol: "AAA", Name: "First", Sector: domain.SectorHealthcare, Risk: 5},
		{Symbol: "BBB", Name: "Second", Sector: domain.SectorHealthcare, Risk: 5},
		{Symbol: "CCC", Name: "Third", Sector: domain.SectorHealthcare, Risk: 5},
	}
	engine := NewEngine(universe, nil, zerolog.Nop())

	profile := assessment.Profile{Score: 5, MaxPositionSize: 1.0}
	recs := engine.Recommend(context.Background(), profile, nil, 10)
	require.Len(t, recs, 3)
	assert.Equal(t, "AAA", recs[0].Symbol)
	assert.Equal(t, "BBB", recs[1].Symbol)
	assert.Equal(t, "CCC", recs[2].Symbol)
}

func TestRecommend_EmptyResult(t *testing.T) {
	universe := []Stock{
		{Symbol: "WILD", Name: "Wild", Sector: domain.SectorTechnology, Risk: 10},
	}
	engine := NewEngine(universe, nil, zerolog.Nop())

	recs := engine.Recommend(context.Background(), profileFor(1), nil, 10)
	assert.Empty(t, recs)
	assert.NotNil(t, recs, "empty result should be a slice, not nil")
}

func TestRecommend_ReasoningDeterministic(t *testing.T) {
	engine := newEngine()

	first := engine.Recommend(context.Background(), profileFor(5), nil, 10)
	second := engine.Recommend(context.Background(), profileFor(5), nil, 10)
	assert.Equal(t, first, second)
}

type fakeProvider struct {
	quotes map[string]float64
	fail   map[string]bool
}

func (p *fakeProvider) GetQuote(_ context.Context, symbol string) (domain.Quote, error) {
	if p.fail[symbol] {
		return domain.Quote{}, errors.New("quote unavailable")
	}
	return domain.Quote{Symbol: symbol, Price: p.quotes[symbol]}, nil
}

func (p *fakeProvider) EstimateTargetPrice(_ context.Context, _ string, currentPrice float64) (float64, error) {
	return currentPrice * 1.2, nil
}

func TestRecommend_Enrichment(t *testing.T) {
	universe := []Stock{
		{Symbol: "GOOD", Name: "Good", Sector: domain.SectorHealthcare, Risk: 5},
		{Symbol: "BAD", Name: "Bad", Sector: domain.SectorHealthcare, Risk: 5},
	}
	provider := &fakeProvider{
		quotes: map[string]float64{"GOOD": 100},
		fail:   map[string]bool{"BAD": true},
	}
	engine := NewEngine(universe, provider, zerolog.Nop())

	profile := assessment.Profile{Score: 5, MaxPositionSize: 1.0}
	recs := engine.Recommend(context.Background(), profile, nil, 10)
	require.Len(t, recs, 2)

	bysym := map[string]Recommendation{}
	for _, r := range recs {
		bysym[r.Symbol] = r
	}

	assert.InDelta(t, 100.0, bysym["GOOD"].CurrentPrice, 1e-9)
	assert.InDelta(t, 120.0, bysym["GOOD"].TargetPrice, 1e-9)

	// Failed lookups keep placeholder pricing, never abort the ranking
	assert.Zero(t, bysym["BAD"].CurrentPrice)
	assert.Zero(t, bysym["BAD"].TargetPrice)
}
