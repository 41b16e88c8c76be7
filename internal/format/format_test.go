package format

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"days ago", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"hours ago", now.Add(-2 * time.Hour), "2 hours ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.t, now); got != tt.want {
				t.Errorf("RelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	if got := Date(time.Time{}); got != Placeholder {
		t.Errorf("Date(zero) = %q, want %q", got, Placeholder)
	}
	if got := Date(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)); got != "Jan 5, 2026" {
		t.Errorf("Date() = %q, want %q", got, "Jan 5, 2026")
	}
}

func TestCurrencyFormatting(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{1234.5, "USD", "$1,234.50"},
		{1234, "usd", "$1,234.00"},
		{0.1, "EUR", "€0.10"},
		{1999999.999, "GBP", "£2,000,000.00"},
		{-42.25, "USD", "-$42.25"},
		{500, "CHF", "500.00 CHF"},
		{7, "", "7.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := currency(tt.amount, tt.code); got != tt.want {
				t.Errorf("currency(%v, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer label", 8, "a longe…"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
