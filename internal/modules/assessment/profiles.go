package assessment

import (
	"github.com/agentchopra/chopra/internal/domain"
)

// riskProfiles is the static ten-entry profile table, one template per
// score value. Invariants maintained by construction:
//   - allocation percentages sum to 100 for every entry
//   - MaxPositionSize is monotonically non-decreasing in score
//   - recommended and avoid sector sets are disjoint per entry
//
// The table is read-only after init; Assess hands out deep copies.
var riskProfiles = map[int]Profile{
	1: {
		Score:           1,
		Level:           domain.RiskVeryLow,
		Description:     "Ultra-conservative investor seeking capital preservation",
		Allocation:      map[string]int{"bonds": 70, "cash": 20, "stocks": 10},
		MaxPositionSize: 0.05,
		RecommendedSectors: []domain.Sector{
			domain.SectorUtilities, domain.SectorConsumerStaples,
		},
		AvoidSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorEnergy, domain.SectorConsumerDiscretionary,
		},
	},
	2: {
		Score:           2,
		Level:           domain.RiskLow,
		Description:     "Conservative investor with minimal risk tolerance",
		Allocation:      map[string]int{"bonds": 60, "stocks": 30, "cash": 10},
		MaxPositionSize: 0.08,
		RecommendedSectors: []domain.Sector{
			domain.SectorUtilities, domain.SectorConsumerStaples, domain.SectorHealthcare,
		},
		AvoidSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorEnergy,
		},
	},
	3: {
		Score:           3,
		Level:           domain.RiskLowModerate,
		Description:     "Cautious investor with slight growth orientation",
		Allocation:      map[string]int{"stocks": 40, "bonds": 50, "cash": 10},
		MaxPositionSize: 0.10,
		RecommendedSectors: []domain.Sector{
			domain.SectorHealthcare, domain.SectorConsumerStaples,
			domain.SectorUtilities, domain.SectorFinancials,
		},
		AvoidSectors: []domain.Sector{
			domain.SectorEnergy, domain.SectorMaterials,
		},
	},
	4: {
		Score:           4,
		Level:           domain.RiskModerate,
		Description:     "Balanced investor seeking steady growth",
		Allocation:      map[string]int{"stocks": 50, "bonds": 40, "cash": 10},
		MaxPositionSize: 0.12,
		RecommendedSectors: []domain.Sector{
			domain.SectorHealthcare, domain.SectorFinancials,
			domain.SectorConsumerStaples, domain.SectorIndustrials,
		},
		AvoidSectors: []domain.Sector{domain.SectorEnergy},
	},
	5: {
		Score:           5,
		Level:           domain.RiskModerateHigh,
		Description:     "Growth-oriented investor with moderate risk tolerance",
		Allocation:      map[string]int{"stocks": 60, "bonds": 30, "cash": 10},
		MaxPositionSize: 0.15,
		RecommendedSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorHealthcare,
			domain.SectorFinancials, domain.SectorIndustrials,
		},
		AvoidSectors: []domain.Sector{},
	},
	6: {
		Score:           6,
		Level:           domain.RiskHigh,
		Description:     "Growth investor comfortable with market volatility",
		Allocation:      map[string]int{"stocks": 70, "bonds": 20, "cash": 10},
		MaxPositionSize: 0.18,
		RecommendedSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorHealthcare,
			domain.SectorConsumerDiscretionary, domain.SectorFinancials,
		},
		AvoidSectors: []domain.Sector{},
	},
	7: {
		Score:           7,
		Level:           domain.RiskHighAggressive,
		Description:     "Aggressive growth investor",
		Allocation:      map[string]int{"stocks": 80, "bonds": 15, "cash": 5},
		MaxPositionSize: 0.20,
		RecommendedSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorConsumerDiscretionary,
			domain.SectorHealthcare, domain.SectorIndustrials,
		},
		AvoidSectors: []domain.Sector{},
	},
	8: {
		Score:           8,
		Level:           domain.RiskAggressive,
		Description:     "High-risk investor seeking maximum growth",
		Allocation:      map[string]int{"stocks": 90, "bonds": 5, "cash": 5},
		MaxPositionSize: 0.25,
		RecommendedSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorConsumerDiscretionary,
			domain.SectorEnergy, domain.SectorMaterials,
		},
		AvoidSectors: []domain.Sector{},
	},
	9: {
		Score:           9,
		Level:           domain.RiskVeryAggressive,
		Description:     "Very high-risk investor with growth focus",
		Allocation:      map[string]int{"stocks": 95, "bonds": 0, "cash": 5},
		MaxPositionSize: 0.30,
		RecommendedSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorEnergy,
			domain.SectorMaterials, domain.SectorConsumerDiscretionary,
		},
		AvoidSectors: []domain.Sector{},
	},
	10: {
		Score:           10,
		Level:           domain.RiskExtreme,
		Description:     "Maximum risk tolerance, speculative investor",
		Allocation:      map[string]int{"stocks": 100, "bonds": 0, "cash": 0},
		MaxPositionSize: 0.35,
		RecommendedSectors: []domain.Sector{
			domain.SectorTechnology, domain.SectorEnergy,
			domain.SectorMaterials, domain.SectorConsumerDiscretionary,
		},
		AvoidSectors: []domain.Sector{},
	},
}

// ProfileForScore returns a copy of the static template for a score.
// Out-of-range scores are clamped to [1,10] so the lookup is total.
func ProfileForScore(score int) Profile {
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return riskProfiles[score].clone()
}
