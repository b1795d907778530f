package clientdata

import "time"

// TTL values per data type. Quotes move fast, daily series are stable
// for a trading day.
const (
	TTLQuote       = 10 * time.Minute
	TTLDailySeries = 24 * time.Hour
)

// Table names for each cached data type.
const (
	TableQuotes      = "quotes"
	TableDailySeries = "daily_series"
)
