// Package marketdata provides a client for the Alpha Vantage market data
// API with persistent caching and free-tier rate limiting.
//
// All reads are cache-first: fresh cache hits never touch the network,
// and stale cache entries are served as a fallback when the API fails.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agentchopra/chopra/internal/clientdata"
	"github.com/agentchopra/chopra/internal/domain"
)

const (
	// DefaultBaseURL is the Alpha Vantage query endpoint.
	DefaultBaseURL = "https://www.alphavantage.co/query"

	// Free tier allows 5 requests per minute.
	requestsPerMinute = 5

	requestTimeout = 10 * time.Second

	// resistanceLookback is the rolling window used when estimating a
	// target price from recent closes.
	resistanceLookback = 20

	// targetUpsideFallback is applied when no resistance level above the
	// current price can be found.
	targetUpsideFallback = 1.1
)

// cachedQuote is the persisted form of a quote.
type cachedQuote struct {
	Symbol    string  `msgpack:"symbol"`
	Price     float64 `msgpack:"price"`
	FetchedAt int64   `msgpack:"fetched_at"`
}

// cachedSeries is the persisted form of a daily close series, oldest first.
type cachedSeries struct {
	Symbol string    `msgpack:"symbol"`
	Closes []float64 `msgpack:"closes"`
}

// Client fetches quotes and daily series from Alpha Vantage.
// It implements domain.PriceProvider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *clientdata.Repository
	log        zerolog.Logger
}

// NewClient creates a market data client. The cache repository may be nil,
// in which case every call goes to the API.
func NewClient(apiKey, baseURL string, cache *clientdata.Repository, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), 1),
		cache:      cache,
		log:        log.With().Str("client", "marketdata").Logger(),
	}
}

// GetQuote returns the latest price for a symbol. Fresh cache entries are
// served directly; on API failure a stale cached quote is returned rather
// than an error.
func (c *Client) GetQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.Quote{}, fmt.Errorf("empty symbol")
	}

	if c.cache != nil {
		var cached cachedQuote
		found, err := c.cache.GetIfFresh(clientdata.TableQuotes, symbol, &cached)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote cache read failed")
		}
		if found {
			return domain.Quote{Symbol: cached.Symbol, Price: cached.Price}, nil
		}
	}

	price, err := c.fetchGlobalQuote(ctx, symbol)
	if err != nil {
		// Stale data beats no data when the API is down.
		if c.cache != nil {
			var stale cachedQuote
			found, cacheErr := c.cache.Get(clientdata.TableQuotes, symbol, &stale)
			if cacheErr == nil && found {
				c.log.Warn().Err(err).Str("symbol", symbol).Msg("Serving stale quote after API failure")
				return domain.Quote{Symbol: stale.Symbol, Price: stale.Price}, nil
			}
		}
		return domain.Quote{}, err
	}

	if c.cache != nil {
		entry := cachedQuote{Symbol: symbol, Price: price, FetchedAt: time.Now().Unix()}
		if err := c.cache.Store(clientdata.TableQuotes, symbol, entry, clientdata.TTLQuote); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache quote")
		}
	}

	return domain.Quote{Symbol: symbol, Price: price}, nil
}

// EstimateTargetPrice derives a price target for a symbol from its recent
// daily closes: the rolling resistance level over the last lookback days.
// When no history is available or no resistance sits above the current
// price, the target falls back to a fixed upside on the current price.
func (c *Client) EstimateTargetPrice(ctx context.Context, symbol string, currentPrice float64) (float64, error) {
	closes, err := c.dailyCloses(ctx, symbol)
	if err != nil || len(closes) < resistanceLookback {
		return currentPrice * targetUpsideFallback, nil
	}

	rollingMax := talib.Max(closes, resistanceLookback)
	resistance := rollingMax[len(rollingMax)-1]
	if resistance > currentPrice {
		return resistance, nil
	}

	return currentPrice * targetUpsideFallback, nil
}

// dailyCloses returns the close series for a symbol, oldest first,
// cache-first with stale fallback.
func (c *Client) dailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if c.cache != nil {
		var cached cachedSeries
		found, err := c.cache.GetIfFresh(clientdata.TableDailySeries, symbol, &cached)
		if err == nil && found {
			return cached.Closes, nil
		}
	}

	closes, err := c.fetchDailySeries(ctx, symbol)
	if err != nil {
		if c.cache != nil {
			var stale cachedSeries
			found, cacheErr := c.cache.Get(clientdata.TableDailySeries, symbol, &stale)
			if cacheErr == nil && found {
				c.log.Warn().Err(err).Str("symbol", symbol).Msg("Serving stale daily series after API failure")
				return stale.Closes, nil
			}
		}
		return nil, err
	}

	if c.cache != nil {
		entry := cachedSeries{Symbol: symbol, Closes: closes}
		if err := c.cache.Store(clientdata.TableDailySeries, symbol, entry, clientdata.TTLDailySeries); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache daily series")
		}
	}

	return closes, nil
}

// fetchGlobalQuote performs a GLOBAL_QUOTE request.
func (c *Client) fetchGlobalQuote(ctx context.Context, symbol string) (float64, error) {
	body, err := c.request(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	})
	if err != nil {
		return 0, err
	}

	var response struct {
		GlobalQuote  map[string]string `json:"Global Quote"`
		ErrorMessage string            `json:"Error Message"`
		Information  string            `json:"Information"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("failed to parse quote response for %s: %w", symbol, err)
	}
	if response.ErrorMessage != "" {
		return 0, fmt.Errorf("quote request for %s failed: %s", symbol, response.ErrorMessage)
	}
	if response.Information != "" {
		// Usually an API call frequency message.
		return 0, fmt.Errorf("quote request for %s throttled: %s", symbol, response.Information)
	}
	if len(response.GlobalQuote) == 0 {
		return 0, fmt.Errorf("no quote data returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(response.GlobalQuote["05. price"], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price for %s: %w", symbol, err)
	}

	return price, nil
}

// fetchDailySeries performs a TIME_SERIES_DAILY request and returns the
// close series, oldest first.
func (c *Client) fetchDailySeries(ctx context.Context, symbol string) ([]float64, error) {
	body, err := c.request(ctx, url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"outputsize": {"compact"},
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Series       map[string]map[string]string `json:"Time Series (Daily)"`
		ErrorMessage string                       `json:"Error Message"`
		Information  string                       `json:"Information"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse daily series for %s: %w", symbol, err)
	}
	if response.ErrorMessage != "" {
		return nil, fmt.Errorf("daily series request for %s failed: %s", symbol, response.ErrorMessage)
	}
	if response.Information != "" {
		return nil, fmt.Errorf("daily series request for %s throttled: %s", symbol, response.Information)
	}
	if len(response.Series) == 0 {
		return nil, fmt.Errorf("no daily series returned for %s", symbol)
	}

	dates := make([]string, 0, len(response.Series))
	for date := range response.Series {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	closes := make([]float64, 0, len(dates))
	for _, date := range dates {
		closePrice, err := strconv.ParseFloat(response.Series[date]["4. close"], 64)
		if err != nil {
			continue
		}
		closes = append(closes, closePrice)
	}

	return closes, nil
}

// request performs a rate-limited GET against the API and returns the body.
func (c *Client) request(ctx context.Context, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	params.Set("apikey", c.apiKey)
	requestURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
