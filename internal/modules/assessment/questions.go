package assessment

// Question describes a questionnaire entry shown by the UI. The ID matches
// the corresponding Answers field's JSON name.
type Question struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Description string `json:"description"`
	ScaleLow    string `json:"scale_low"`
	ScaleHigh   string `json:"scale_high"`
}

// Strategy describes an automated-trading strategy preset.
type Strategy struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	RiskLevel      string `json:"risk_level"`
	ExpectedReturn string `json:"expected_return"`
}

// Questions returns the three risk assessment questions in display order.
func Questions() []Question {
	return []Question{
		{
			ID:          "risk_tolerance",
			Question:    "What is your overall risk tolerance for investments?",
			Description: "Consider how much portfolio volatility and potential loss you can handle.",
			ScaleLow:    "1 - Very Conservative (Capital preservation is key)",
			ScaleHigh:   "10 - Very Aggressive (High risk for high returns)",
		},
		{
			ID:          "investment_experience",
			Question:    "What is your investment and trading experience level?",
			Description: "Your knowledge of markets, financial instruments, and trading strategies.",
			ScaleLow:    "1 - Beginner (New to investing)",
			ScaleHigh:   "10 - Expert (Extensive trading experience)",
		},
		{
			ID:          "time_horizon",
			Question:    "What is your investment time horizon and liquidity needs?",
			Description: "How long can you keep money invested before needing access to it.",
			ScaleLow:    "1 - Short-term (Less than 2 years)",
			ScaleHigh:   "10 - Long-term (10+ years)",
		},
	}
}

// TradingStrategies returns the automated-trading strategy presets.
func TradingStrategies() []Strategy {
	return []Strategy{
		{
			Name:           "Conservative",
			Description:    "Focus on dividend stocks and blue-chip companies with low volatility",
			RiskLevel:      "Low",
			ExpectedReturn: "5-8%",
		},
		{
			Name:           "Balanced Growth",
			Description:    "Mix of growth and value stocks with moderate risk",
			RiskLevel:      "Medium",
			ExpectedReturn: "8-12%",
		},
		{
			Name:           "Aggressive Growth",
			Description:    "High-growth stocks and emerging sectors with higher volatility",
			RiskLevel:      "High",
			ExpectedReturn: "12-20%",
		},
		{
			Name:           "Tech Focus",
			Description:    "Technology sector concentration with innovation focus",
			RiskLevel:      "High",
			ExpectedReturn: "10-25%",
		},
		{
			Name:           "Momentum Trading",
			Description:    "Follow market trends and momentum indicators",
			RiskLevel:      "Very High",
			ExpectedReturn: "15-30%",
		},
	}
}
