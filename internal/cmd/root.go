package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leadline/crmdesk/internal/cmd/config"
	appconfig "github.com/leadline/crmdesk/internal/config"
	"github.com/leadline/crmdesk/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "crmdesk",
	Short: "Terminal companion for the CRM desk",
	Long: `crmdesk picks message recipients from your contact directory and
manages the directory from the command line.

Contacts are read from a JSON, YAML, or TOML file, or from a SQLite
database, configured with directory.source.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/crmdesk/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().String("source", "", "contact directory (overrides directory.source)")
	_ = viper.BindPFlag("directory.source", rootCmd.PersistentFlags().Lookup("source"))

	config.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath("$HOME/.config/crmdesk")
		viper.AddConfigPath(".")
	}

	// A .env file in the working directory may carry CRMDESK_* overrides
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CRMDESK")
	// Replace dots with underscores for nested keys in env vars
	// e.g., CRMDESK_DIRECTORY_SOURCE for directory.source
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger returns the file logger configured by cfg. Logs never go to the
// terminal, since the compose page owns it.
func newLogger(cfg *appconfig.Config) *logging.Logger {
	dir := cfg.Logging.ResolveDir()
	if dir == "" {
		return logging.NopLogger()
	}
	logger, err := logging.NewLogger(dir, cfg.Logging.Level)
	if err != nil {
		return logging.NopLogger()
	}
	return logger
}
