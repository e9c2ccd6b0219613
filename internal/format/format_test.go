package format

import (
	"math"
	"testing"
	"time"
)

func TestCurrency_DefaultIndianGrouping(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{100000, "₹1,00,000"},
		{12345678, "₹1,23,45,678"},
		{1120, "₹1,120"},
		{-500, "-₹500"},
	}
	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrency_RoundsToWholeUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1000.4, "₹1,000"},
		{1000.5, "₹1,001"},
		{1999.99, "₹2,000"},
		{-2.5, "-₹3"},
	}
	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrency_LargeAmountsKeepEveryDigit(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e19, "₹1,00,00,00,00,00,00,00,00,000"},
		{1e20, "₹10,00,00,00,00,00,00,00,00,000"},
		{-1e20, "-₹10,00,00,00,00,00,00,00,00,000"},
	}
	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}

	f := New("INR", "western")
	if got := f.Currency(1e20); got != "₹100,000,000,000,000,000,000" {
		t.Errorf("western Currency(1e20) = %q", got)
	}
}

func TestCurrency_NonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if got := Currency(v); got != NotAvailable {
			t.Errorf("Currency(%v) = %q, expected %q", v, got, NotAvailable)
		}
		if got := Number(v); got != NotAvailable {
			t.Errorf("Number(%v) = %q, expected %q", v, got, NotAvailable)
		}
	}
}

func TestFormatter_WesternGrouping(t *testing.T) {
	f := New("INR", "western")
	if got := f.Currency(1234567); got != "₹1,234,567" {
		t.Errorf("expected ₹1,234,567, got %q", got)
	}
	if got := f.Number(1234567.25); got != "1,234,567.25" {
		t.Errorf("expected 1,234,567.25, got %q", got)
	}
}

func TestFormatter_UnknownCurrencyFallsBackToINR(t *testing.T) {
	f := New("XXX-not-a-code", "")
	if f.CurrencyCode() != "INR" {
		t.Errorf("expected INR fallback, got %s", f.CurrencyCode())
	}
	if got := f.Currency(100000); got != "₹1,00,000" {
		t.Errorf("expected ₹1,00,000, got %q", got)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{100000, "1,00,000"},
		{1234.5, "1,234.5"},
		{1.23456, "1.235"},
		{-250000, "-2,50,000"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2024, time.January, 5, 14, 30, 0, 0, time.UTC)
	if got := Date(d); got != "5 Jan 2024" {
		t.Errorf("expected 5 Jan 2024, got %q", got)
	}
	if got := Date(time.Time{}); got != "" {
		t.Errorf("expected empty string for zero time, got %q", got)
	}
}

func TestDateString(t *testing.T) {
	if got := DateString("2026-10-19T08:00:00Z"); got != "19 Oct 2026" {
		t.Errorf("expected 19 Oct 2026, got %q", got)
	}
	if got := DateString("2026-10-19"); got != "19 Oct 2026" {
		t.Errorf("expected 19 Oct 2026, got %q", got)
	}
	if got := DateString("not a date"); got != "not a date" {
		t.Errorf("expected input back unchanged, got %q", got)
	}
}

func TestInvestmentTypeStyle(t *testing.T) {
	tests := map[string]BadgeStyle{
		"bond":   "bg-blue-100 text-blue-800",
		"FD":     "bg-green-100 text-green-800",
		"Mf":     "bg-purple-100 text-purple-800",
		"etf":    "bg-orange-100 text-orange-800",
		"crypto": NeutralStyle,
		"":       NeutralStyle,
	}
	for in, want := range tests {
		if got := InvestmentTypeStyle(in); got != want {
			t.Errorf("InvestmentTypeStyle(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestRiskLevelStyle(t *testing.T) {
	tests := map[string]BadgeStyle{
		"low":      "bg-green-100 text-green-800",
		"MODERATE": "bg-yellow-100 text-yellow-800",
		"High":     "bg-red-100 text-red-800",
		"extreme":  NeutralStyle,
		"  low ":   NeutralStyle,
	}
	for in, want := range tests {
		if got := RiskLevelStyle(in); got != want {
			t.Errorf("RiskLevelStyle(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"moderate": "Moderate",
		"":         "",
		"x":        "X",
		"High":     "High",
		"éclair":   "Éclair",
		"ñandu":    "Ñandu",
		"₹ amount": "₹ amount",
		"\xffbad":  "\xffbad",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	if got := TypeLabel("etf"); got != "ETF" {
		t.Errorf("expected ETF, got %q", got)
	}
}

func TestGainPercent(t *testing.T) {
	tests := []struct {
		gain, invested float64
		want           string
	}{
		{120, 1000, "12.0"},
		{1, 3, "33.3"},
		{50, 0, "0"},
		{-25, 500, "-5.0"},
	}
	for _, tt := range tests {
		if got := GainPercent(tt.gain, tt.invested); got != tt.want {
			t.Errorf("GainPercent(%v, %v) = %q, expected %q", tt.gain, tt.invested, got, tt.want)
		}
	}
}
