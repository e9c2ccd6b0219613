package models

import "strings"

// InvestmentType is the product category.
type InvestmentType string

const (
	TypeBond InvestmentType = "bond"
	TypeFD   InvestmentType = "fd"
	TypeMF   InvestmentType = "mf"
	TypeETF  InvestmentType = "etf"
)

// InvestmentTypes lists the known categories in display order.
var InvestmentTypes = []InvestmentType{TypeBond, TypeFD, TypeMF, TypeETF}

// RiskLevel is the product risk band, also used for a user's risk appetite.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// RiskLevels lists the known risk bands in display order.
var RiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh}

// IsValidRiskLevel reports whether s names a known risk band (case-insensitive).
func IsValidRiskLevel(s string) bool {
	for _, r := range RiskLevels {
		if strings.EqualFold(string(r), s) {
			return true
		}
	}
	return false
}

// InvestmentProduct is a product offered by the platform.
// min_investment <= max_investment is expected but not checked here.
type InvestmentProduct struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	InvestmentType InvestmentType `json:"investment_type"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	AnnualYield    float64        `json:"annual_yield"`
	TenureMonths   int            `json:"tenure_months"`
	MinInvestment  float64        `json:"min_investment"`
	MaxInvestment  *float64       `json:"max_investment,omitempty"`
	CreatedAt      Timestamp      `json:"created_at"`
}
