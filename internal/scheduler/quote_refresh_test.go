package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
)

type stubProvider struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]bool
}

func (p *stubProvider) GetQuote(_ context.Context, symbol string) (domain.Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, symbol)
	if p.failOn[symbol] {
		return domain.Quote{}, errors.New("provider unavailable")
	}
	return domain.Quote{Symbol: symbol, Price: 100}, nil
}

func (p *stubProvider) EstimateTargetPrice(_ context.Context, _ string, currentPrice float64) (float64, error) {
	return currentPrice * 1.1, nil
}

func TestQuoteRefreshJob(t *testing.T) {
	universe := []recommendation.Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: domain.SectorTechnology, Risk: 5},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: domain.SectorHealthcare, Risk: 2},
		{Symbol: "TSLA", Name: "Tesla Inc.", Sector: domain.SectorConsumerDiscretionary, Risk: 8},
	}
	provider := &stubProvider{failOn: map[string]bool{"JNJ": true}}

	job := NewQuoteRefreshJob(universe, provider, zerolog.Nop())
	assert.Equal(t, "quote_refresh", job.Name())

	err := job.Run()
	require.NoError(t, err, "per-symbol failures should not fail the job")
	assert.Equal(t, []string{"AAPL", "JNJ", "TSLA"}, provider.calls)
}

func TestSchedulerAddJob(t *testing.T) {
	s := New(zerolog.Nop())

	job := NewQuoteRefreshJob(nil, &stubProvider{}, zerolog.Nop())

	err := s.AddJob("@every 10m", job)
	require.NoError(t, err)

	err = s.AddJob("not a schedule", job)
	require.Error(t, err)
}

func TestSchedulerRunNow(t *testing.T) {
	s := New(zerolog.Nop())
	provider := &stubProvider{}
	universe := []recommendation.Stock{{Symbol: "SPY", Sector: domain.SectorFinancials, Risk: 5}}

	err := s.RunNow(NewQuoteRefreshJob(universe, provider, zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY"}, provider.calls)
}
