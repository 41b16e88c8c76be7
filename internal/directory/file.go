package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/errors"
	"github.com/leadline/crmdesk/internal/logging"
)

// fileContents is the on-disk shape shared by every file format:
//
//	contacts:
//	  - address: ada@lovelace.org
//	    display_name: Ada Lovelace
//	    last_interaction: 2026-10-01T09:30:00Z
type fileContents struct {
	Contacts []contact.Contact `json:"contacts" yaml:"contacts" toml:"contacts"`
}

// FileDirectory reads contacts from a JSON, YAML, or TOML file on every
// List call.
type FileDirectory struct {
	path   string
	format Format
	logger *logging.Logger
}

// NewFileDirectory creates a directory backed by the file at path.
func NewFileDirectory(path string, format Format, logger *logging.Logger) *FileDirectory {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &FileDirectory{
		path:   path,
		format: format,
		logger: logger.WithComponent("directory").With("source", path),
	}
}

// Path returns the backing file path.
func (d *FileDirectory) Path() string {
	return d.path
}

// List reads and decodes the file. A missing file is an empty directory.
func (d *FileDirectory) List(ctx context.Context) ([]contact.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		d.logger.Debug("directory file missing, using empty directory")
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDirectoryError("read", err).WithSource(d.path)
	}

	contents, err := decode(d.format, data)
	if err != nil {
		return nil, errors.NewDirectoryError("decode", errors.Join(errors.ErrMalformedDirectory, err)).WithSource(d.path)
	}

	contacts := contact.ByRecency(contact.Normalize(contents.Contacts))
	d.logger.Debug("directory loaded", "count", len(contacts))
	return contacts, nil
}

// Close is a no-op for file directories.
func (d *FileDirectory) Close() error {
	return nil
}

func decode(format Format, data []byte) (fileContents, error) {
	var contents fileContents
	if len(bytes.TrimSpace(data)) == 0 {
		return contents, nil
	}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &contents)
	case FormatYAML:
		err = yaml.Unmarshal(data, &contents)
	case FormatTOML:
		_, err = toml.Decode(string(data), &contents)
	default:
		err = errors.ErrUnsupportedFormat
	}
	return contents, err
}

// Encode renders contacts in the given file format. It is the inverse of
// what FileDirectory reads and is used by the export command.
func Encode(format Format, contacts []contact.Contact) ([]byte, error) {
	contents := fileContents{Contacts: contacts}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(contents, "", "  ")
	case FormatYAML:
		return yaml.Marshal(contents)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(contents); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.ErrUnsupportedFormat
	}
}
