package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BadgeStyle is the CSS class list of a category badge.
type BadgeStyle string

// NeutralStyle is used for any category not listed below.
const NeutralStyle BadgeStyle = "bg-gray-100 text-gray-800"

var investmentTypeStyles = map[string]BadgeStyle{
	"bond": "bg-blue-100 text-blue-800",
	"fd":   "bg-green-100 text-green-800",
	"mf":   "bg-purple-100 text-purple-800",
	"etf":  "bg-orange-100 text-orange-800",
}

var riskLevelStyles = map[string]BadgeStyle{
	"low":      "bg-green-100 text-green-800",
	"moderate": "bg-yellow-100 text-yellow-800",
	"high":     "bg-red-100 text-red-800",
}

// InvestmentTypeStyle maps an investment type to its badge style. Unknown types get NeutralStyle.
func InvestmentTypeStyle(t string) BadgeStyle {
	return lookupStyle(investmentTypeStyles, t)
}

// RiskLevelStyle maps a risk level to its badge style. Unknown levels get NeutralStyle.
func RiskLevelStyle(r string) BadgeStyle {
	return lookupStyle(riskLevelStyles, r)
}

func lookupStyle(styles map[string]BadgeStyle, key string) BadgeStyle {
	if s, ok := styles[strings.ToLower(key)]; ok {
		return s
	}
	return NeutralStyle
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TypeLabel is the badge text for an investment type.
func TypeLabel(t string) string {
	return strings.ToUpper(t)
}

// GainPercent renders gain/invested as a one-decimal percentage.
// Returns "0" when nothing is invested.
func GainPercent(gain, invested float64) string {
	if invested <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", gain/invested*100)
}
