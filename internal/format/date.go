package format

import (
	"time"

	"github.com/bobmcallan/investx-portal/internal/models"
)

// shortDateLayout is day, abbreviated month, year in en-IN order.
const shortDateLayout = "2 Jan 2006"

// Date formats t as a short date such as "19 Oct 2026". The zero time renders as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(shortDateLayout)
}

// DateString parses an API timestamp and formats it with Date. Unparsable
// input is returned unchanged.
func DateString(s string) string {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return s
	}
	return Date(t)
}
