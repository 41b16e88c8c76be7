package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	appconfig "github.com/leadline/crmdesk/internal/config"
	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/directory"
	"github.com/leadline/crmdesk/internal/errors"
	"github.com/leadline/crmdesk/internal/format"
	"github.com/leadline/crmdesk/internal/tui/recipients"
	"github.com/leadline/crmdesk/internal/tui/styles"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List and manage directory contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts, most recent first",
	Long: `List contacts in recency order, matching them the same way the
recipient picker does.

Examples:
  # The ten most recent contacts
  crmdesk contacts list

  # Contacts whose name or address contains "acme"
  crmdesk contacts list --filter acme --limit 50`,
	Args: cobra.NoArgs,
	RunE: runContactsList,
}

var contactsAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Add or rename a contact (SQLite directories only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsAdd,
}

var contactsTouchCmd = &cobra.Command{
	Use:   "touch <address>",
	Short: "Record an interaction with a contact now (SQLite directories only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsTouch,
}

var contactsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the directory as JSON, YAML, or TOML",
	Long: `Write every contact in the directory to stdout or a file.

Examples:
  # Migrate a SQLite directory to YAML
  crmdesk contacts export --format yaml --output contacts.yaml`,
	Args: cobra.NoArgs,
	RunE: runContactsExport,
}

var (
	contactsFilter string
	contactsLimit  int
	contactsName   string
	exportFormat   string
	exportOutput   string
)

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsTouchCmd)
	contactsCmd.AddCommand(contactsExportCmd)

	contactsListCmd.Flags().StringVarP(&contactsFilter, "filter", "f", "", "Only contacts whose name or address contains this text")
	contactsListCmd.Flags().IntVarP(&contactsLimit, "limit", "n", recipients.DefaultLimit, "Maximum number of contacts to show")

	contactsAddCmd.Flags().StringVar(&contactsName, "name", "", "Display name")

	contactsExportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "Output format: json, yaml, or toml")
	contactsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// openDirectory loads the config and opens the configured directory.
func openDirectory() (directory.Directory, func(), error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)
	dir, err := directory.Open(cfg.Directory.ResolveSource(), logger)
	if err != nil {
		_ = logger.Close()
		return nil, nil, err
	}
	return dir, func() {
		_ = dir.Close()
		_ = logger.Close()
	}, nil
}

func openWriter() (directory.Writer, func(), error) {
	dir, closeFn, err := openDirectory()
	if err != nil {
		return nil, nil, err
	}
	w, ok := dir.(directory.Writer)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("%w: use a .db or .sqlite source to add contacts", errors.ErrReadOnlyDirectory)
	}
	return w, closeFn, nil
}

func runContactsList(cmd *cobra.Command, args []string) error {
	if contactsLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", contactsLimit)
	}

	dir, closeFn, err := openDirectory()
	if err != nil {
		return err
	}
	defer closeFn()

	contacts, err := dir.List(cmd.Context())
	if err != nil {
		return err
	}

	matches := recipients.Filter(contacts, contactsFilter, contactsLimit)
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matching contacts.")
		return nil
	}
	renderContactTable(out, matches, time.Now())
	return nil
}

func renderContactTable(out io.Writer, contacts []contact.Contact, now time.Time) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
		Headers("NAME", "EMAIL", "LAST CONTACT", "DATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, c := range contacts {
		name := c.DisplayName
		if name == "" {
			name = format.Placeholder
		}
		t.Row(name, c.Address, format.RelativeTime(c.LastInteraction, now), format.Date(c.LastInteraction))
	}
	fmt.Fprintln(out, t.Render())
}

func runContactsAdd(cmd *cobra.Command, args []string) error {
	w, closeFn, err := openWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	c := contact.Contact{Address: strings.TrimSpace(args[0]), DisplayName: contactsName}
	if err := w.Upsert(cmd.Context(), c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", c.Label())
	return nil
}

func runContactsTouch(cmd *cobra.Command, args []string) error {
	w, closeFn, err := openWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := w.Touch(cmd.Context(), args[0], time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded interaction with %s\n", args[0])
	return nil
}

func runContactsExport(cmd *cobra.Command, args []string) error {
	f := directory.Format(strings.ToLower(exportFormat))
	if f == directory.FormatSQLite {
		return fmt.Errorf("%w: export writes json, yaml, or toml", errors.ErrUnsupportedFormat)
	}

	dir, closeFn, err := openDirectory()
	if err != nil {
		return err
	}
	defer closeFn()

	contacts, err := dir.List(cmd.Context())
	if err != nil {
		return err
	}

	data, err := directory.Encode(f, contacts)
	if err != nil {
		return fmt.Errorf("export as %q: %w", exportFormat, err)
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contacts to %s\n", len(contacts), exportOutput)
	return nil
}
