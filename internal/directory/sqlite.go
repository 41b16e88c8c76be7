package directory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/errors"
	"github.com/leadline/crmdesk/internal/logging"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteDirectory stores contacts in a SQLite database.
type SQLiteDirectory struct {
	db     *sql.DB
	path   string
	logger *logging.Logger

	mu     sync.RWMutex
	closed bool
}

var _ Writer = (*SQLiteDirectory)(nil)

// OpenSQLite opens (creating if needed) the database at path.
// The schema is created automatically and parent directories are created
// if they don't exist.
func OpenSQLite(path string, logger *logging.Logger) (*SQLiteDirectory, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("directory").With("source", path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewDirectoryError("create database directory", err).WithSource(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewDirectoryError("open database", err).WithSource(path)
	}

	// Enable WAL mode so the CLI can write while a compose session reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.NewDirectoryError("enable WAL mode", err).WithSource(path)
	}

	d := &SQLiteDirectory{db: db, path: path, logger: logger}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, errors.NewDirectoryError("create schema", err).WithSource(path)
	}

	logger.Debug("sqlite directory opened")
	return d, nil
}

func (d *SQLiteDirectory) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL,
			address_key TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL DEFAULT '',
			last_interaction TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_last_interaction
			ON contacts(last_interaction);
	`
	_, err := d.db.Exec(schema)
	return err
}

// List returns contacts ordered by most recent interaction, then by
// address for contacts never reached.
func (d *SQLiteDirectory) List(ctx context.Context) ([]contact.Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, errors.ErrDirectoryClosed
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT address, display_name, last_interaction
		FROM contacts
		ORDER BY last_interaction IS NULL, last_interaction DESC, address_key
	`)
	if err != nil {
		return nil, errors.NewDirectoryError("list contacts", err).WithSource(d.path)
	}
	defer rows.Close()

	var out []contact.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, errors.NewDirectoryError("scan contact", err).WithSource(d.path)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDirectoryError("list contacts", err).WithSource(d.path)
	}
	return out, nil
}

// Get returns the contact with the given address.
func (d *SQLiteDirectory) Get(ctx context.Context, addr string) (contact.Contact, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return contact.Contact{}, errors.ErrDirectoryClosed
	}

	row := d.db.QueryRowContext(ctx, `
		SELECT address, display_name, last_interaction
		FROM contacts WHERE address_key = ?
	`, addressKey(addr))
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return contact.Contact{}, errors.NewNotFoundError("contact", addr)
	}
	if err != nil {
		return contact.Contact{}, errors.NewDirectoryError("get contact", err).WithSource(d.path)
	}
	return c, nil
}

// Upsert inserts c, or updates the stored address spelling and display
// name when the address already exists. A zero LastInteraction keeps the
// stored value.
func (d *SQLiteDirectory) Upsert(ctx context.Context, c contact.Contact) error {
	c.Address = strings.TrimSpace(c.Address)
	c.DisplayName = strings.TrimSpace(c.DisplayName)
	if !contact.IsValidAddress(c.Address) {
		return &errors.InvalidAddressError{Values: []string{c.Address}}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return errors.ErrDirectoryClosed
	}

	now := time.Now().UTC().Format(timeLayout)
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO contacts (id, address, address_key, display_name, last_interaction, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(address_key) DO UPDATE SET
			address = excluded.address,
			display_name = excluded.display_name,
			last_interaction = COALESCE(excluded.last_interaction, contacts.last_interaction),
			updated_at = excluded.updated_at
	`, uuid.NewString(), c.Address, addressKey(c.Address), c.DisplayName, formatTime(c.LastInteraction), now, now)
	if err != nil {
		return errors.NewDirectoryError("upsert contact", err).WithSource(d.path)
	}

	d.logger.Debug("contact upserted", "address", c.Address)
	return nil
}

// Touch records an interaction with addr at t.
func (d *SQLiteDirectory) Touch(ctx context.Context, addr string, t time.Time) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return errors.ErrDirectoryClosed
	}

	res, err := d.db.ExecContext(ctx, `
		UPDATE contacts SET last_interaction = ?, updated_at = ?
		WHERE address_key = ?
	`, formatTime(t), time.Now().UTC().Format(timeLayout), addressKey(addr))
	if err != nil {
		return errors.NewDirectoryError("touch contact", err).WithSource(d.path)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewDirectoryError("touch contact", err).WithSource(d.path)
	}
	if n == 0 {
		return errors.NewNotFoundError("contact", addr)
	}
	return nil
}

// Close closes the database. Further calls return ErrDirectoryClosed.
func (d *SQLiteDirectory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (contact.Contact, error) {
	var c contact.Contact
	var last sql.NullString
	if err := s.Scan(&c.Address, &c.DisplayName, &last); err != nil {
		return contact.Contact{}, err
	}
	if last.Valid && last.String != "" {
		t, err := time.Parse(timeLayout, last.String)
		if err != nil {
			return contact.Contact{}, fmt.Errorf("parsing last_interaction %q: %w", last.String, err)
		}
		c.LastInteraction = t
	}
	return c, nil
}

func addressKey(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func formatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}
