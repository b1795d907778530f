// Package domain contains shared domain types used across modules.
// Types here are pure values with no infrastructure dependencies; every
// hand-off between modules is by value so concurrent callers never share
// mutable state.
package domain

import (
	"fmt"
	"strings"
)

// RiskLevel is the ten-step investor risk classification, one level per
// score value 1-10.
type RiskLevel int

const (
	RiskVeryLow RiskLevel = iota + 1
	RiskLow
	RiskLowModerate
	RiskModerate
	RiskModerateHigh
	RiskHigh
	RiskHighAggressive
	RiskAggressive
	RiskVeryAggressive
	RiskExtreme
)

var riskLevelNames = map[RiskLevel]string{
	RiskVeryLow:        "VERY_LOW",
	RiskLow:            "LOW",
	RiskLowModerate:    "LOW_MODERATE",
	RiskModerate:       "MODERATE",
	RiskModerateHigh:   "MODERATE_HIGH",
	RiskHigh:           "HIGH",
	RiskHighAggressive: "HIGH_AGGRESSIVE",
	RiskAggressive:     "AGGRESSIVE",
	RiskVeryAggressive: "VERY_AGGRESSIVE",
	RiskExtreme:        "EXTREME",
}

var riskLevelDisplay = map[RiskLevel]string{
	RiskVeryLow:        "Very Low Risk",
	RiskLow:            "Low Risk",
	RiskLowModerate:    "Low-Moderate Risk",
	RiskModerate:       "Moderate Risk",
	RiskModerateHigh:   "Moderate-High Risk",
	RiskHigh:           "High Risk",
	RiskHighAggressive: "High-Aggressive Risk",
	RiskAggressive:     "Aggressive Risk",
	RiskVeryAggressive: "Very Aggressive Risk",
	RiskExtreme:        "Extreme Risk",
}

// Name returns the stable enum-style name (e.g. "VERY_AGGRESSIVE").
func (l RiskLevel) Name() string {
	if name, ok := riskLevelNames[l]; ok {
		return name
	}
	return "MODERATE"
}

// String returns the display name (e.g. "Very Aggressive Risk").
func (l RiskLevel) String() string {
	if name, ok := riskLevelDisplay[l]; ok {
		return name
	}
	return "Moderate Risk"
}

// MarshalJSON serializes the level as its stable enum name. Clients key
// display logic off this name, so it must never vary with locale or score.
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.Name() + `"`), nil
}

// UnmarshalJSON accepts the stable enum name.
func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	for level, n := range riskLevelNames {
		if n == name {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown risk level: %s", name)
}

// RiskLevelForScore maps an integer score to its risk level. Scores are
// clamped to [1,10] so the mapping is total.
func RiskLevelForScore(score int) RiskLevel {
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return RiskLevel(score)
}

// Sector identifies a market sector in the stock universe.
type Sector string

const (
	SectorTechnology            Sector = "Technology"
	SectorHealthcare            Sector = "Healthcare"
	SectorFinancials            Sector = "Financials"
	SectorConsumerDiscretionary Sector = "Consumer Discretionary"
	SectorConsumerStaples       Sector = "Consumer Staples"
	SectorEnergy                Sector = "Energy"
	SectorUtilities             Sector = "Utilities"
	SectorMaterials             Sector = "Materials"
	SectorIndustrials           Sector = "Industrials"
	SectorRealEstate            Sector = "Real Estate"
	SectorCommunication         Sector = "Communication Services"
)

// AllSectors lists every known sector. Diversification scoring normalizes
// against this count.
var AllSectors = []Sector{
	SectorTechnology,
	SectorHealthcare,
	SectorFinancials,
	SectorConsumerDiscretionary,
	SectorConsumerStaples,
	SectorEnergy,
	SectorUtilities,
	SectorMaterials,
	SectorIndustrials,
	SectorRealEstate,
	SectorCommunication,
}

// Holding is a single position from a brokerage account snapshot.
// Supplied by the caller and never mutated.
type Holding struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	MarketValue float64 `json:"market_value"`
	CostBasis   float64 `json:"cost_basis,omitempty"`
}
