package recipients

import (
	"strings"

	"github.com/samber/lo"

	"github.com/leadline/crmdesk/internal/contact"
)

// DefaultLimit is the number of suggestions shown at once.
const DefaultLimit = 10

// NoHighlight is the highlighted index when no suggestion is selected.
const NoHighlight = -1

// Filter returns the suggestions for draft. An empty draft yields the first
// limit contacts unchanged (the directory order is treated as recency
// order). Otherwise it keeps the first limit contacts whose address or
// display name contains draft, ignoring case, in their original order.
func Filter(contacts []contact.Contact, draft string, limit int) []contact.Contact {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if draft == "" {
		return lo.Slice(contacts, 0, limit)
	}

	query := strings.ToLower(draft)
	out := make([]contact.Contact, 0, min(limit, len(contacts)))
	for _, c := range contacts {
		if c.Matches(query) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Add appends addr to selection when it is a valid address that is not
// already selected. It returns the new selection and whether it changed.
// The input slice is never modified.
func Add(selection []string, addr string) ([]string, bool) {
	addr = strings.TrimSpace(addr)
	if !contact.IsValidAddress(addr) || Contains(selection, addr) {
		return selection, false
	}
	next := make([]string, len(selection), len(selection)+1)
	copy(next, selection)
	return append(next, addr), true
}

// Remove drops every entry equal to addr, keeping the order of the rest.
func Remove(selection []string, addr string) ([]string, bool) {
	next := lo.Without(selection, addr)
	return next, len(next) != len(selection)
}

// RemoveLast drops the most recently added entry.
func RemoveLast(selection []string) ([]string, bool) {
	if len(selection) == 0 {
		return selection, false
	}
	return lo.DropRight(selection, 1), true
}

// Contains reports whether selection already holds addr, ignoring case.
func Contains(selection []string, addr string) bool {
	return lo.ContainsBy(selection, func(s string) bool {
		return contact.SameAddress(s, addr)
	})
}

// Cycle moves a highlighted index by delta over n items, wrapping at both
// ends. From NoHighlight, moving forward lands on the first item and moving
// backward on the last. With n == 0 the index stays NoHighlight.
func Cycle(index, n, delta int) int {
	if n <= 0 {
		return NoHighlight
	}
	if index < 0 {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return ((index+delta)%n + n) % n
}
