package contact

import (
	"testing"
	"time"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@x.com", true},
		{"first.last@sub.example.co.uk", true},
		{"odd+tag@x.y", true},
		{"not-an-email", false},
		{"", false},
		{"@x.com", false},
		{"a@.com", false},
		{"a@.x.com", true}, // permissive: dots in the domain are not checked
		{"a@x", false},
		{"a@x.", false},
		{"a b@x.com", false},
		{"a@@x.com", false},
		{"a@x@y.com", false},
		{" a@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidAddress(tt.in); got != tt.want {
				t.Errorf("IsValidAddress(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := (Contact{Address: "bob@x.com", DisplayName: "Bob"}).Label(); got != "Bob <bob@x.com>" {
		t.Errorf("Label() = %q, want %q", got, "Bob <bob@x.com>")
	}
	if got := (Contact{Address: "bob@x.com"}).Label(); got != "bob@x.com" {
		t.Errorf("Label() = %q, want %q", got, "bob@x.com")
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		c    Contact
		want string
	}{
		{"two tokens", Contact{Address: "a@x.com", DisplayName: "ada lovelace"}, "AL"},
		{"three tokens capped at two", Contact{Address: "a@x.com", DisplayName: "Mary Ann Evans"}, "MA"},
		{"single token", Contact{Address: "a@x.com", DisplayName: "Bob"}, "B"},
		{"extra whitespace", Contact{Address: "a@x.com", DisplayName: "  jo   doe "}, "JD"},
		{"address fallback", Contact{Address: "zed@x.com"}, "Z"},
		{"unicode", Contact{Address: "e@x.com", DisplayName: "élodie ünger"}, "ÉÜ"},
		{"empty", Contact{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Initials(); got != tt.want {
				t.Errorf("Initials() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	c := Contact{Address: "Bob@Example.com", DisplayName: "Robert Smith"}

	for _, q := range []string{"bob", "example", "robert", "smith", "t s"} {
		if !c.Matches(q) {
			t.Errorf("Matches(%q) = false, want true", q)
		}
	}
	if c.Matches("alice") {
		t.Error("Matches(\"alice\") = true, want false")
	}
}

func TestNormalize(t *testing.T) {
	in := []Contact{
		{Address: " a@x.com ", DisplayName: " First "},
		{Address: "b@x.com"},
		{Address: "A@X.com", DisplayName: "Second"},
		{Address: "   "},
	}

	got := Normalize(in)
	if len(got) != 2 {
		t.Fatalf("len(Normalize()) = %d, want 2", len(got))
	}
	if got[0].Address != "a@x.com" || got[0].DisplayName != "First" {
		t.Errorf("got[0] = %+v, want first entry trimmed", got[0])
	}
	if got[1].Address != "b@x.com" {
		t.Errorf("got[1].Address = %q, want %q", got[1].Address, "b@x.com")
	}
}

func TestLookup(t *testing.T) {
	contacts := []Contact{
		{Address: "a@x.com", DisplayName: "First"},
		{Address: "A@x.com", DisplayName: "Second"},
	}

	c, ok := Lookup(contacts, "A@X.COM")
	if !ok {
		t.Fatal("Lookup should find the address case-insensitively")
	}
	if c.DisplayName != "First" {
		t.Errorf("DisplayName = %q, want first entry in list order", c.DisplayName)
	}

	if _, ok := Lookup(contacts, "z@x.com"); ok {
		t.Error("Lookup should not find an unknown address")
	}
}

func TestByRecency(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []Contact{
		{Address: "never1@x.com"},
		{Address: "old@x.com", LastInteraction: now.Add(-48 * time.Hour)},
		{Address: "never2@x.com"},
		{Address: "new@x.com", LastInteraction: now},
	}

	got := ByRecency(in)
	want := []string{"new@x.com", "old@x.com", "never1@x.com", "never2@x.com"}
	for i, addr := range want {
		if got[i].Address != addr {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Address, addr)
		}
	}
	if in[0].Address != "never1@x.com" {
		t.Error("ByRecency must not reorder its input")
	}
}
