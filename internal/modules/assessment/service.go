package assessment

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/agentchopra/chopra/internal/config"
)

const (
	// midpointAnswer substitutes for unanswered questions. The silent
	// default mirrors the questionnaire's historical behavior; see
	// DESIGN.md for the open question around rejecting instead.
	midpointAnswer = 5

	defaultTradingStrategy = "Conservative"
	defaultMaxDailyTrades  = 3
	defaultStopLossPct     = 5.0
)

// Question weights for the canonical 3-question scheme. Risk tolerance
// dominates; experience and horizon refine.
const (
	weightRiskTolerance = 0.5
	weightExperience    = 0.3
	weightTimeHorizon   = 0.2
)

// Service converts questionnaire answers into a risk score and resolved
// profile. It is a pure computation over the static profile table and is
// safe for concurrent use.
type Service struct {
	scheme string
	log    zerolog.Logger
}

// NewService creates a new assessment service. scheme selects the answer
// weighting variant (config.SchemeWeightedThree or config.SchemeEqualFive).
func NewService(scheme string, log zerolog.Logger) *Service {
	if scheme == "" {
		scheme = config.SchemeWeightedThree
	}
	return &Service{
		scheme: scheme,
		log:    log.With().Str("service", "assessment").Logger(),
	}
}

// Assess computes the 1-10 risk score for a submission and resolves it
// against the profile table, overlaying identity and automation fields
// onto a copy of the matching template.
//
// The function is total: missing answers default to the midpoint,
// out-of-range answers are clamped, and the weighted result is clamped to
// [1,10] after rounding (half away from zero, i.e. round-half-up on this
// positive domain).
func (s *Service) Assess(req Request) (int, Profile) {
	var weighted float64
	switch s.scheme {
	case config.SchemeEqualFive:
		weighted = equalFiveScore(req.Answers)
	default:
		weighted = weightedThreeScore(req.Answers)
	}

	score := clampScore(int(math.Round(weighted)))
	profile := ProfileForScore(score)

	// Overlay caller-supplied identity and automation parameters.
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName

	profile.TradingStrategy = req.TradingStrategy
	if profile.TradingStrategy == "" {
		profile.TradingStrategy = defaultTradingStrategy
	}
	profile.AutomatedTrading = req.AutomatedTrading
	profile.MaxDailyTrades = req.MaxDailyTrades
	if profile.MaxDailyTrades <= 0 {
		profile.MaxDailyTrades = defaultMaxDailyTrades
	}
	profile.StopLossPercentage = req.StopLossPercentage
	if profile.StopLossPercentage <= 0 {
		profile.StopLossPercentage = defaultStopLossPct
	}

	s.log.Debug().
		Float64("weighted", weighted).
		Int("score", score).
		Str("level", profile.Level.Name()).
		Msg("Assessed risk profile")

	return score, profile
}

// weightedThreeScore computes the canonical weighted average.
func weightedThreeScore(a Answers) float64 {
	tolerance := normalizeAnswer(a.RiskTolerance)
	experience := normalizeAnswer(a.InvestmentExperience)
	horizon := normalizeAnswer(a.TimeHorizon)

	return float64(tolerance)*weightRiskTolerance +
		float64(experience)*weightExperience +
		float64(horizon)*weightTimeHorizon
}

// equalFiveScore computes the legacy equal-weight mean over five answers.
func equalFiveScore(a Answers) float64 {
	sum := normalizeAnswer(a.Q1) +
		normalizeAnswer(a.Q2) +
		normalizeAnswer(a.Q3) +
		normalizeAnswer(a.Q4) +
		normalizeAnswer(a.Q5)
	return float64(sum) / 5.0
}

// normalizeAnswer applies the missing-answer default and range clamp.
// Zero means unanswered (JSON omission) and defaults to the midpoint.
func normalizeAnswer(v int) int {
	if v == 0 {
		return midpointAnswer
	}
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
