package assessment

import (
	"github.com/agentchopra/chopra/internal/domain"
)

// Answers holds questionnaire responses. Each answer is an integer in
// [1,10]; a zero value means the question was not answered and defaults to
// the midpoint (5). Values outside the range are clamped, never rejected.
//
// The canonical form uses the three weighted questions. Q1-Q5 feed the
// equal-weight legacy scheme and are ignored by the weighted scheme.
type Answers struct {
	RiskTolerance        int `json:"risk_tolerance"`
	InvestmentExperience int `json:"investment_experience"`
	TimeHorizon          int `json:"time_horizon"`

	Q1 int `json:"q1,omitempty"`
	Q2 int `json:"q2,omitempty"`
	Q3 int `json:"q3,omitempty"`
	Q4 int `json:"q4,omitempty"`
	Q5 int `json:"q5,omitempty"`
}

// Request is a full assessment submission: questionnaire answers plus the
// identity and automation fields overlaid onto the resolved profile.
type Request struct {
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Answers            Answers `json:"answers"`
	TradingStrategy    string  `json:"trading_strategy,omitempty"`
	AutomatedTrading   bool    `json:"automated_trading,omitempty"`
	MaxDailyTrades     int     `json:"max_daily_trades,omitempty"`
	StopLossPercentage float64 `json:"stop_loss_percentage,omitempty"`
}

// Profile is the resolved risk profile for a score of 1-10. Profiles are
// built by copying a static template and overlaying caller identity; the
// templates themselves are never mutated, which keeps Assess safe for
// concurrent callers.
type Profile struct {
	FirstName          string           `json:"first_name,omitempty"`
	LastName           string           `json:"last_name,omitempty"`
	Score              int              `json:"score"`
	Level              domain.RiskLevel `json:"level"`
	Description        string           `json:"description"`
	Allocation         map[string]int   `json:"allocation"`
	MaxPositionSize    float64          `json:"max_position_size"`
	RecommendedSectors []domain.Sector  `json:"recommended_sectors"`
	AvoidSectors       []domain.Sector  `json:"avoid_sectors"`
	TradingStrategy    string           `json:"trading_strategy"`
	AutomatedTrading   bool             `json:"automated_trading"`
	MaxDailyTrades     int              `json:"max_daily_trades"`
	StopLossPercentage float64          `json:"stop_loss_percentage"`
}

// clone returns a deep copy so overlays never touch the static template.
func (p Profile) clone() Profile {
	out := p

	out.Allocation = make(map[string]int, len(p.Allocation))
	for k, v := range p.Allocation {
		out.Allocation[k] = v
	}

	out.RecommendedSectors = append([]domain.Sector(nil), p.RecommendedSectors...)
	out.AvoidSectors = append([]domain.Sector(nil), p.AvoidSectors...)

	return out
}

// RecommendsSector reports whether the sector is in the profile's
// recommended set.
func (p Profile) RecommendsSector(s domain.Sector) bool {
	for _, sector := range p.RecommendedSectors {
		if sector == s {
			return true
		}
	}
	return false
}

// AvoidsSector reports whether the sector is in the profile's avoid set.
func (p Profile) AvoidsSector(s domain.Sector) bool {
	for _, sector := range p.AvoidSectors {
		if sector == s {
			return true
		}
	}
	return false
}
