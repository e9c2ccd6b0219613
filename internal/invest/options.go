package invest

// Option is one entry of a page selector.
type Option struct {
	Value string
	Label string
}

// TypeOptions feeds the product type selector.
var TypeOptions = []Option{
	{"", "All Types"},
	{"bond", "Bonds"},
	{"fd", "Fixed Deposits"},
	{"mf", "Mutual Funds"},
	{"etf", "ETFs"},
}

// RiskOptions feeds the risk level selector.
var RiskOptions = []Option{
	{"", "All Risk Levels"},
	{"low", "Low Risk"},
	{"moderate", "Moderate Risk"},
	{"high", "High Risk"},
}

// SortOptions feeds the sort selector.
var SortOptions = []Option{
	{string(SortByYield), "Sort by Yield"},
	{string(SortByTenure), "Sort by Tenure"},
	{string(SortByMinInvestment), "Sort by Min Investment"},
	{string(SortByLatest), "Sort by Latest"},
}

// RiskAppetiteOptions feeds the signup risk appetite selector.
var RiskAppetiteOptions = []Option{
	{"low", "Low - Conservative investments"},
	{"moderate", "Moderate - Balanced approach"},
	{"high", "High - Aggressive growth"},
}
