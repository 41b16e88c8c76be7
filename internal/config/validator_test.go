package config

import (
	"strings"
	"testing"
)

func findError(errs []ValidationError, field string) *ValidationError {
	for i := range errs {
		if errs[i].Field == field {
			return &errs[i]
		}
	}
	return nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing source",
			mutate:    func(c *Config) { c.Directory.Source = "" },
			wantField: "directory.source",
			wantMsg:   "is required",
		},
		{
			name:      "unsupported source extension",
			mutate:    func(c *Config) { c.Directory.Source = "contacts.csv" },
			wantField: "directory.source",
			wantMsg:   "must end in one of",
		},
		{
			name:      "zero suggestions",
			mutate:    func(c *Config) { c.Picker.MaxSuggestions = 0 },
			wantField: "picker.max_suggestions",
			wantMsg:   "must be at least 1",
		},
		{
			name:      "too many suggestions",
			mutate:    func(c *Config) { c.Picker.MaxSuggestions = 51 },
			wantField: "picker.max_suggestions",
			wantMsg:   "must be at most 50",
		},
		{
			name:      "long placeholder",
			mutate:    func(c *Config) { c.Picker.Placeholder = strings.Repeat("x", 81) },
			wantField: "picker.placeholder",
			wantMsg:   "exceeds maximum length",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
			wantMsg:   "must be one of: debug, info, warn, error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			got := findError(errs, tt.wantField)
			if got == nil {
				t.Fatalf("Validate() = %v, want an error for %s", errs, tt.wantField)
			}
			if !strings.Contains(got.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidate_AcceptsVariants(t *testing.T) {
	for _, source := range []string{"a.json", "a.YAML", "a.yml", "a.toml", "crm.db", "crm.sqlite", "crm.sqlite3"} {
		cfg := Default()
		cfg.Directory.Source = source
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("source %q: unexpected errors %v", source, errs)
		}
	}

	cfg := Default()
	cfg.Logging.Level = "WARN"
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("upper-case level rejected: %v", errs)
	}

	cfg = Default()
	cfg.Logging.Level = ""
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("empty level rejected: %v", errs)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Directory.Source = ""
	cfg.Picker.MaxSuggestions = 100
	cfg.Logging.Level = "loud"

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Fatalf("len(Validate()) = %d, want 3: %v", len(errs), errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	if got := ValidationErrors(nil).Error(); got != "" {
		t.Errorf("empty Error() = %q", got)
	}

	one := ValidationErrors{{Field: "picker.max_suggestions", Value: 0, Message: "must be at least 1"}}
	if got, want := one.Error(), "picker.max_suggestions: must be at least 1 (got: 0)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	two := append(one, ValidationError{Field: "logging.level", Value: "x", Message: "bad"})
	got := two.Error()
	if !strings.HasPrefix(got, "2 validation errors:") {
		t.Errorf("Error() = %q, want a count prefix", got)
	}
	if !strings.Contains(got, "  2. logging.level: bad (got: x)") {
		t.Errorf("Error() = %q, want numbered entries", got)
	}
}
