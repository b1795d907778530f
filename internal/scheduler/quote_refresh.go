package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
)

// quoteRefreshTimeout bounds a full warm-up pass across the universe.
// The free API tier is slow, so this is generous.
const quoteRefreshTimeout = 10 * time.Minute

// QuoteRefreshJob warms the quote cache for every symbol in the
// investment universe so that recommendation requests are served from
// cache instead of hitting the API inline.
type QuoteRefreshJob struct {
	universe []recommendation.Stock
	prices   domain.PriceProvider
	log      zerolog.Logger
}

// NewQuoteRefreshJob creates a quote refresh job.
func NewQuoteRefreshJob(universe []recommendation.Stock, prices domain.PriceProvider, log zerolog.Logger) *QuoteRefreshJob {
	return &QuoteRefreshJob{
		universe: universe,
		prices:   prices,
		log:      log.With().Str("job", "quote_refresh").Logger(),
	}
}

// Run fetches a quote for every universe symbol. Individual failures are
// logged and skipped; the job itself only fails on a cancelled context.
func (j *QuoteRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), quoteRefreshTimeout)
	defer cancel()

	start := time.Now()
	var refreshed, failed int

	for _, stock := range j.universe {
		if ctx.Err() != nil {
			j.log.Warn().
				Int("refreshed", refreshed).
				Int("failed", failed).
				Msg("Quote refresh timed out before completing")
			return ctx.Err()
		}

		if _, err := j.prices.GetQuote(ctx, stock.Symbol); err != nil {
			j.log.Debug().Err(err).Str("symbol", stock.Symbol).Msg("Quote refresh failed for symbol")
			failed++
			continue
		}
		refreshed++
	}

	j.log.Info().
		Int("refreshed", refreshed).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Quote refresh completed")

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *QuoteRefreshJob) Name() string {
	return "quote_refresh"
}
