package invest

import (
	"net/url"
	"strings"

	"github.com/bobmcallan/investx-portal/internal/models"
)

// ProductFilter holds the three product list criteria. Empty fields match everything.
type ProductFilter struct {
	Search string
	Type   string
	Risk   string
}

// IsEmpty reports whether the filter passes every product.
func (f ProductFilter) IsEmpty() bool {
	return f.Search == "" && f.Type == "" && f.Risk == ""
}

// Matches reports whether p satisfies all criteria of f.
func (f ProductFilter) Matches(p models.InvestmentProduct) bool {
	return matchesSearch(p, f.Search) && matchesType(p, f.Type) && matchesRisk(p, f.Risk)
}

// Apply returns the products that match f, in their original order.
// The input slice is not modified and the result never aliases it.
func Apply(products []models.InvestmentProduct, f ProductFilter) []models.InvestmentProduct {
	out := make([]models.InvestmentProduct, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSearch(p models.InvestmentProduct, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func matchesType(p models.InvestmentProduct, t string) bool {
	return t == "" || string(p.InvestmentType) == t
}

func matchesRisk(p models.InvestmentProduct, r string) bool {
	return r == "" || string(p.RiskLevel) == r
}

// ProductQuery is the full state of the products page controls.
type ProductQuery struct {
	Filter ProductFilter
	SortBy SortKey
}

// QueryFromValues reads q, type, risk and sort_by from a query string.
// The search term is used as typed; surrounding spaces are part of it.
func QueryFromValues(v url.Values) ProductQuery {
	return ProductQuery{
		Filter: ProductFilter{
			Search: v.Get("q"),
			Type:   v.Get("type"),
			Risk:   v.Get("risk"),
		},
		SortBy: ParseSortKey(v.Get("sort_by")),
	}
}
