package recommendation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agentchopra/chopra/internal/domain"
)

// Stock is a single entry in the recommendation universe: a tradable symbol
// with pre-assigned sector and risk-rating metadata.
type Stock struct {
	Symbol string        `json:"symbol" yaml:"symbol"`
	Name   string        `json:"name" yaml:"name"`
	Sector domain.Sector `json:"sector" yaml:"sector"`
	Risk   int           `json:"risk" yaml:"risk"` // 1-10
}

// defaultUniverse is the built-in stock universe. Order is significant:
// ties in recommendation strength preserve this iteration order, so the
// list must stay a slice rather than a map.
var defaultUniverse = []Stock{
	// Conservative (risk 1-3)
	{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: domain.SectorHealthcare, Risk: 2},
	{Symbol: "PG", Name: "Procter & Gamble", Sector: domain.SectorConsumerStaples, Risk: 2},
	{Symbol: "KO", Name: "Coca-Cola", Sector: domain.SectorConsumerStaples, Risk: 2},
	{Symbol: "NEE", Name: "NextEra Energy", Sector: domain.SectorUtilities, Risk: 3},
	{Symbol: "SO", Name: "Southern Company", Sector: domain.SectorUtilities, Risk: 2},

	// Moderate (risk 4-6)
	{Symbol: "MSFT", Name: "Microsoft", Sector: domain.SectorTechnology, Risk: 4},
	{Symbol: "AAPL", Name: "Apple", Sector: domain.SectorTechnology, Risk: 5},
	{Symbol: "JPM", Name: "JPMorgan Chase", Sector: domain.SectorFinancials, Risk: 5},
	{Symbol: "V", Name: "Visa", Sector: domain.SectorFinancials, Risk: 4},
	{Symbol: "UNH", Name: "UnitedHealth", Sector: domain.SectorHealthcare, Risk: 4},
	{Symbol: "HD", Name: "Home Depot", Sector: domain.SectorConsumerDiscretionary, Risk: 5},
	{Symbol: "WMT", Name: "Walmart", Sector: domain.SectorConsumerStaples, Risk: 3},

	// Growth (risk 6-8)
	{Symbol: "GOOGL", Name: "Alphabet", Sector: domain.SectorTechnology, Risk: 6},
	{Symbol: "AMZN", Name: "Amazon", Sector: domain.SectorConsumerDiscretionary, Risk: 7},
	{Symbol: "TSLA", Name: "Tesla", Sector: domain.SectorConsumerDiscretionary, Risk: 8},
	{Symbol: "NVDA", Name: "NVIDIA", Sector: domain.SectorTechnology, Risk: 8},
	{Symbol: "META", Name: "Meta Platforms", Sector: domain.SectorTechnology, Risk: 7},
	{Symbol: "NFLX", Name: "Netflix", Sector: domain.SectorConsumerDiscretionary, Risk: 7},

	// Speculative (risk 9-10)
	{Symbol: "ARKK", Name: "ARK Innovation ETF", Sector: domain.SectorTechnology, Risk: 9},
	{Symbol: "COIN", Name: "Coinbase", Sector: domain.SectorFinancials, Risk: 10},
	{Symbol: "RIVN", Name: "Rivian", Sector: domain.SectorConsumerDiscretionary, Risk: 10},
	{Symbol: "PLTR", Name: "Palantir", Sector: domain.SectorTechnology, Risk: 9},

	// ETFs for diversification
	{Symbol: "SPY", Name: "SPDR S&P 500", Sector: domain.SectorFinancials, Risk: 5},
	{Symbol: "QQQ", Name: "Invesco QQQ", Sector: domain.SectorTechnology, Risk: 6},
	{Symbol: "VTI", Name: "Vanguard Total Stock", Sector: domain.SectorFinancials, Risk: 5},
	{Symbol: "TLT", Name: "iShares 20+ Year Treasury", Sector: domain.SectorFinancials, Risk: 3},
	{Symbol: "GLD", Name: "SPDR Gold Shares", Sector: domain.SectorMaterials, Risk: 4},
}

// DefaultUniverse returns a copy of the built-in universe.
func DefaultUniverse() []Stock {
	return append([]Stock(nil), defaultUniverse...)
}

// universeFile is the YAML shape of a universe override file.
type universeFile struct {
	Stocks []Stock `yaml:"stocks"`
}

// LoadUniverse reads a universe override from a YAML file, preserving file
// order. Entries are validated; an invalid file is rejected as a whole so a
// partial universe never silently replaces the built-in one.
func LoadUniverse(path string) ([]Stock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}

	var file universeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse universe file: %w", err)
	}

	if len(file.Stocks) == 0 {
		return nil, fmt.Errorf("universe file %s contains no stocks", path)
	}

	seen := make(map[string]bool, len(file.Stocks))
	for i, s := range file.Stocks {
		if s.Symbol == "" {
			return nil, fmt.Errorf("universe entry %d has empty symbol", i)
		}
		if s.Risk < 1 || s.Risk > 10 {
			return nil, fmt.Errorf("universe entry %s has risk %d outside [1,10]", s.Symbol, s.Risk)
		}
		if seen[s.Symbol] {
			return nil, fmt.Errorf("universe entry %s is duplicated", s.Symbol)
		}
		seen[s.Symbol] = true
	}

	return file.Stocks, nil
}
