// Package format renders amounts, dates and category badges for display.
package format

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Grouping selects the digit grouping used for amounts.
type Grouping string

const (
	// GroupingIndian groups as 1,00,00,000 (en-IN).
	GroupingIndian Grouping = "indian"
	// GroupingWestern groups as 10,000,000.
	GroupingWestern Grouping = "western"
)

// DefaultCurrency is used when no currency, or an unknown one, is configured.
const DefaultCurrency = money.INR

// NotAvailable is rendered for NaN and infinite values.
const NotAvailable = "-"

// Formatter formats amounts in one currency with whole-unit display.
type Formatter struct {
	currency *money.Currency
	grouping Grouping
}

// New creates a Formatter. Unknown currency codes fall back to INR and
// unknown groupings to GroupingIndian.
func New(currencyCode string, grouping string) *Formatter {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(currencyCode)))
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	g := Grouping(strings.ToLower(grouping))
	if g != GroupingWestern {
		g = GroupingIndian
	}
	return &Formatter{currency: cur, grouping: g}
}

var defaultFormatter = New(DefaultCurrency, string(GroupingIndian))

// Currency formats amount with the default INR formatter, e.g. ₹1,00,000.
func Currency(amount float64) string {
	return defaultFormatter.Currency(amount)
}

// Number formats n with the default en-IN grouping.
func Number(n float64) string {
	return defaultFormatter.Number(n)
}

// CurrencyCode returns the ISO code in use.
func (f *Formatter) CurrencyCode() string {
	return f.currency.Code
}

// Currency formats amount with zero decimal places. Rounding is half away
// from zero and happens only here. Every digit of the rounded amount is
// kept, whatever its magnitude.
func (f *Formatter) Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotAvailable
	}
	whole := decimal.NewFromFloat(amount).Round(0)

	s := strings.Replace(f.currency.Template, "1", f.group(whole.Abs().String()), 1)
	s = strings.Replace(s, "$", f.currency.Grapheme, 1)
	if whole.IsNegative() {
		s = "-" + s
	}
	return s
}

// Number formats n with up to three fraction digits and the configured grouping.
func (f *Formatter) Number(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(n).Round(3)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	s := d.String()
	intPart, frac, _ := strings.Cut(s, ".")
	out := f.group(intPart)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func (f *Formatter) group(digits string) string {
	sep := f.currency.Thousand
	if sep == "" {
		sep = ","
	}
	if f.grouping == GroupingWestern {
		return groupEvery(digits, 3, 3, sep)
	}
	return groupEvery(digits, 3, 2, sep)
}

// groupEvery inserts sep after the last `first` digits and then every `rest` digits.
func groupEvery(digits string, first, rest int, sep string) string {
	if len(digits) <= first {
		return digits
	}
	head := digits[:len(digits)-first]
	tail := digits[len(digits)-first:]
	var parts []string
	for len(head) > rest {
		parts = append([]string{head[len(head)-rest:]}, parts...)
		head = head[:len(head)-rest]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, sep) + sep + tail
}
