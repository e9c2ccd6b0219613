package invest

// SortKey is the product ordering requested from the API. The portal
// never re-sorts locally.
type SortKey string

const (
	SortByYield         SortKey = "annual_yield"
	SortByTenure        SortKey = "tenure_months"
	SortByMinInvestment SortKey = "min_investment"
	SortByLatest        SortKey = "created_at"

	DefaultSortKey = SortByYield
)

// SortKeys lists the supported keys in selector order.
var SortKeys = []SortKey{SortByYield, SortByTenure, SortByMinInvestment, SortByLatest}

// ParseSortKey maps s to a known key, falling back to DefaultSortKey.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return DefaultSortKey
}
