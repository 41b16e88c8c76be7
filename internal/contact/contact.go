// Package contact defines the contact record shared by the directory, the
// recipient selector, and the CLI, together with address validation and the
// display helpers used to render a contact.
package contact

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Contact is a read-only directory entry eligible for suggestion.
type Contact struct {
	Address         string    `json:"address" yaml:"address" toml:"address"`
	DisplayName     string    `json:"display_name,omitempty" yaml:"display_name,omitempty" toml:"display_name,omitempty"`
	LastInteraction time.Time `json:"last_interaction,omitempty" yaml:"last_interaction,omitempty" toml:"last_interaction,omitempty"`
}

// addressPattern accepts local@domain.tld with no whitespace and no extra @.
// It is intentionally permissive and does not check the domain.
var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidAddress reports whether s has the local@domain.tld shape.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Label renders the contact as "Display Name <address>", or the bare
// address when no display name is set.
func (c Contact) Label() string {
	if c.DisplayName == "" {
		return c.Address
	}
	return c.DisplayName + " <" + c.Address + ">"
}

// Initials returns up to two uppercase letters for the avatar glyph.
func (c Contact) Initials() string {
	if fields := strings.Fields(c.DisplayName); len(fields) > 0 {
		var b strings.Builder
		for _, f := range lo.Slice(fields, 0, 2) {
			r, _ := utf8.DecodeRuneInString(f)
			b.WriteRune(unicode.ToUpper(r))
		}
		return b.String()
	}
	if c.Address == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(c.Address)
	return string(unicode.ToUpper(r))
}

// Matches reports whether query is a case-insensitive substring of the
// address or display name. The caller is expected to pass a lowercased query.
func (c Contact) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(c.Address), lowerQuery) ||
		strings.Contains(strings.ToLower(c.DisplayName), lowerQuery)
}

// SameAddress compares two addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Normalize trims addresses and display names and drops later entries whose
// address repeats an earlier one. The first entry in list order wins.
func Normalize(contacts []Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	seen := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		c.Address = strings.TrimSpace(c.Address)
		c.DisplayName = strings.TrimSpace(c.DisplayName)
		if c.Address == "" {
			continue
		}
		key := strings.ToLower(c.Address)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Lookup returns the first contact whose address matches addr.
func Lookup(contacts []Contact, addr string) (Contact, bool) {
	return lo.Find(contacts, func(c Contact) bool {
		return SameAddress(c.Address, addr)
	})
}

// ByRecency orders contacts by most recent interaction first. Contacts with
// no recorded interaction keep their relative order after the rest.
func ByRecency(contacts []Contact) []Contact {
	known, unknown := lo.FilterReject(contacts, func(c Contact, _ int) bool {
		return !c.LastInteraction.IsZero()
	})
	sorted := slices.Clone(known)
	slices.SortStableFunc(sorted, func(a, b Contact) int {
		return b.LastInteraction.Compare(a.LastInteraction)
	})
	return append(sorted, unknown...)
}
