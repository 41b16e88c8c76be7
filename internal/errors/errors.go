// Package errors provides centralized error definitions for crmdesk.
//
// It defines sentinel errors for the contact directory and the CLI, a
// DirectoryError type that carries the source path and operation, and a
// NotFoundError for address lookups.
//
// # Usage
//
//	err := errors.NewDirectoryError("parse contacts", errors.ErrMalformedDirectory).
//		WithSource("/home/me/contacts.yaml")
//
//	if errors.Is(err, errors.ErrMalformedDirectory) { ... }
//
//	var dirErr *errors.DirectoryError
//	if errors.As(err, &dirErr) { fmt.Println(dirErr.Source) }
//
// Validation rejections inside the recipient selector never surface as
// errors. These types are for the directory and CLI layers only.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Directory-related sentinel errors
var (
	// ErrUnsupportedFormat indicates a directory source with an unknown extension.
	ErrUnsupportedFormat = New("unsupported directory format")
	// ErrMalformedDirectory indicates a directory file that could not be decoded.
	ErrMalformedDirectory = New("malformed directory")
	// ErrReadOnlyDirectory indicates a write against a file-backed directory.
	ErrReadOnlyDirectory = New("directory is read-only")
	// ErrDirectoryClosed indicates use of a directory after Close.
	ErrDirectoryClosed = New("directory is closed")
	// ErrContactNotFound indicates that no contact has the given address.
	ErrContactNotFound = New("contact not found")
)

// Input-related sentinel errors
var (
	// ErrInvalidAddress indicates a string that is not address-shaped.
	ErrInvalidAddress = New("invalid email address")
	// ErrCanceled indicates the user dismissed the compose page.
	ErrCanceled = New("compose canceled")
)

// -----------------------------------------------------------------------------
// DirectoryError
// -----------------------------------------------------------------------------

// DirectoryError represents errors from loading or writing a contact directory.
//
// Example:
//
//	err := errors.NewDirectoryError("open", cause).WithSource("contacts.db")
//	fmt.Println(err) // "directory error [source=contacts.db]: open: <cause>"
type DirectoryError struct {
	Op     string
	Source string
	cause  error
}

// NewDirectoryError creates a new DirectoryError.
func NewDirectoryError(op string, cause error) *DirectoryError {
	return &DirectoryError{Op: op, cause: cause}
}

// WithSource adds the directory path to the error context.
func (e *DirectoryError) WithSource(source string) *DirectoryError {
	e.Source = source
	return e
}

// Error returns the formatted error message.
func (e *DirectoryError) Error() string {
	prefix := "directory error"
	if e.Source != "" {
		prefix = fmt.Sprintf("directory error [source=%s]", e.Source)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Op, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Op)
}

// Unwrap returns the underlying error.
func (e *DirectoryError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError indicates that a resource could not be found.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Is lets NotFoundError match ErrContactNotFound for contact lookups.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrContactNotFound && e.Resource == "contact"
}

// InvalidAddressError lists the inputs that failed address validation.
type InvalidAddressError struct {
	Values []string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidAddress, strings.Join(e.Values, ", "))
}

// Is lets InvalidAddressError match ErrInvalidAddress.
func (e *InvalidAddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}
