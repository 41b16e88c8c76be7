// Package format converts dates, money, and strings into display text.
package format

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Placeholder is rendered for missing values.
const Placeholder = "—"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// RelativeTime renders t relative to now, e.g. "3 days ago".
// A zero time renders as "never".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Date renders t as "Jan 2, 2006", or Placeholder for a zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("Jan 2, 2006")
}

// currency renders amount with thousands separators and two decimals.
// Known codes get their symbol as a prefix; anything else gets the code
// as a suffix.
func currency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := humanize.CommafWithDigits(math.Round(amount*100)/100, 2)
	if i := strings.IndexByte(s, '.'); i < 0 {
		s += ".00"
	} else if len(s)-i == 2 {
		s += "0"
	}

	if sym, ok := currencySymbols[code]; ok {
		s = sym + s
	} else if code != "" {
		s = s + " " + code
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Truncate shortens s to at most width terminal cells, ending in "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
