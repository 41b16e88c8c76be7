// Package directory loads the contact directory that feeds recipient
// suggestions.
//
// A directory is either a flat file (JSON, YAML, or TOML) or a SQLite
// database. Both return contacts in recency order: most recently contacted
// first, then contacts with no recorded interaction in source order. The
// recipient selector relies on that order for its "recent contacts" list.
//
// File-backed directories are read-only and can be watched for changes with
// a [Watcher]. SQLite directories also implement [Writer].
package directory

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/errors"
	"github.com/leadline/crmdesk/internal/logging"
)

// Directory supplies candidate contacts.
type Directory interface {
	// List returns every contact in recency order.
	List(ctx context.Context) ([]contact.Contact, error)
	Close() error
}

// Writer is implemented by directories that accept updates.
type Writer interface {
	// Upsert inserts c or updates the display name of an existing contact
	// with the same address.
	Upsert(ctx context.Context, c contact.Contact) error
	// Touch records an interaction with addr at t.
	Touch(ctx context.Context, addr string, t time.Time) error
}

// Format identifies a directory source type.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks the directory format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", errors.NewDirectoryError("detect format", errors.ErrUnsupportedFormat).WithSource(path)
	}
}

// Open returns the directory stored at path. A nil logger disables logging.
func Open(path string, logger *logging.Logger) (Directory, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if f == FormatSQLite {
		return OpenSQLite(path, logger)
	}
	return NewFileDirectory(path, f, logger), nil
}
