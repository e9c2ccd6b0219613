package models

// Investment is a user's holding in a product. Product fields are denormalized by the API.
type Investment struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	ProductID      string         `json:"product_id"`
	ProductName    string         `json:"product_name"`
	InvestmentType InvestmentType `json:"investment_type"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Amount         float64        `json:"amount"`
	InvestedAt     Timestamp      `json:"invested_at"`
}

// PortfolioSummary is the server-computed aggregate over a user's investments.
type PortfolioSummary struct {
	TotalInvested       float64 `json:"total_invested"`
	TotalExpectedReturn float64 `json:"total_expected_return"`
	TotalGain           float64 `json:"total_gain"`
	ActiveInvestments   int     `json:"active_investments"`
}
