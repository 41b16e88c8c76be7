package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "picker.max_suggestions")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidSourceExtensions returns the file extensions accepted for
// directory.source.
func ValidSourceExtensions() []string {
	return []string{".json", ".yaml", ".yml", ".toml", ".db", ".sqlite", ".sqlite3"}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their config key rather than the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
		return slices.Contains(ValidLogLevels(), strings.ToLower(fl.Field().String()))
	})
	_ = v.RegisterValidation("contact_source", func(fl validator.FieldLevel) bool {
		ext := strings.ToLower(filepath.Ext(fl.Field().String()))
		return slices.Contains(ValidSourceExtensions(), ext)
	})

	return v
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !asValidationErrors(err, &fieldErrs) {
		return []ValidationError{{Field: "config", Value: nil, Message: err.Error()}}
	}

	errors := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errors = append(errors, ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Value:   fe.Value(),
			Message: message(fe),
		})
	}
	return errors
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// fieldPath turns "Config.picker.max_suggestions" into "picker.max_suggestions".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("exceeds maximum length of %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "log_level":
		return fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", "))
	case "contact_source":
		return fmt.Sprintf("must end in one of: %s", strings.Join(ValidSourceExtensions(), ", "))
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
