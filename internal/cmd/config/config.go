// Package config provides CLI commands for managing crmdesk configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/leadline/crmdesk/internal/config"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify crmdesk configuration",
	Long: `View or modify crmdesk configuration.

Use 'config show' to display the effective configuration and the
subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  crmdesk config set directory.source ~/crm/contacts.db
  crmdesk config set picker.max_suggestions 20

Valid keys:
  directory.source        - Contacts file (.json/.yaml/.toml) or database (.db/.sqlite)
  directory.watch         - Reload the contacts file when it changes (true/false)
  picker.max_suggestions  - Suggestions shown at once (1-50)
  picker.placeholder      - Placeholder text in empty recipient fields
  logging.enabled         - Write a log file (true/false)
  logging.level           - Log level: debug, info, warn, error
  logging.dir             - Log directory (default: <config dir>/logs)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/crmdesk/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKinds lists the settable keys and how their values are parsed.
var keyKinds = map[string]string{
	"directory.source":       "string",
	"directory.watch":        "bool",
	"picker.max_suggestions": "int",
	"picker.placeholder":     "string",
	"logging.enabled":        "bool",
	"logging.level":          "string",
	"logging.dir":            "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(out, "Configuration is invalid, showing defaults:\n%v\n\n", err)
		cfg = appconfig.Default()
	}

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	writeConfig(out, cfg)
	return nil
}

func writeConfig(out io.Writer, cfg *appconfig.Config) {
	fmt.Fprintln(out, "directory:")
	fmt.Fprintf(out, "  source: %s\n", cfg.Directory.Source)
	fmt.Fprintf(out, "  watch: %v\n", cfg.Directory.Watch)

	fmt.Fprintln(out, "picker:")
	fmt.Fprintf(out, "  max_suggestions: %d\n", cfg.Picker.MaxSuggestions)
	fmt.Fprintf(out, "  placeholder: %q\n", cfg.Picker.Placeholder)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.ResolveDir())
}

// parseValue converts a command-line value to the key's type.
func parseValue(key, value string) (any, error) {
	kind, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'crmdesk config set --help' to see valid keys", key)
	}

	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, typed)

	// Reject values that would leave the config invalid
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typed)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// defaultConfigContent is the commented file written by 'config init'.
const defaultConfigContent = `# crmdesk configuration

# Where contacts come from
directory:
  # Contacts file (.json, .yaml, .yml, .toml) or SQLite database (.db, .sqlite)
  source: ~/.config/crmdesk/contacts.yaml
  # Reload the contacts file while the compose page is open
  watch: true

# Recipient picker
picker:
  # Suggestions shown at once (1-50)
  max_suggestions: 10
  # Placeholder text in empty recipient fields
  placeholder: Type a name or email

# Debug logging
logging:
  enabled: true
  # debug, info, warn, or error
  level: info
  # Log directory; empty means <config dir>/logs
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'crmdesk config set' to modify values", configFile)
	}

	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize crmdesk.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintf(out, "  2. $HOME/.config/crmdesk/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: CRMDESK_* (e.g., CRMDESK_DIRECTORY_SOURCE)")
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

// findEditor picks $EDITOR, then $VISUAL, then the first common editor on
// the PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "nano", "vi"} {
		if _, err := execLookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found. Set $EDITOR environment variable")
}
