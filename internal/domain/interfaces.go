package domain

import "context"

// Quote is a point-in-time price for a symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// PriceProvider supplies current and target prices for recommendation
// enrichment. Implementations must respect the context deadline; callers
// treat every failure as a degraded (placeholder-priced) result, never as
// a failure of the recommendation itself.
type PriceProvider interface {
	GetQuote(ctx context.Context, symbol string) (Quote, error)
	EstimateTargetPrice(ctx context.Context, symbol string, currentPrice float64) (float64, error)
}
