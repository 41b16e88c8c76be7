package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "~/.config/crmdesk/contacts.yaml", cfg.Directory.Source)
	assert.True(t, cfg.Directory.Watch)
	assert.Equal(t, 10, cfg.Picker.MaxSuggestions)
	assert.Equal(t, "Type a name or email", cfg.Picker.Placeholder)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.Empty(t, cfg.Validate(), "defaults must validate")
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/crmdesk", ConfigDir())
		assert.Equal(t, "/custom/config/crmdesk/config.yaml", ConfigFile())
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, ".config", "crmdesk"), ConfigDir())
	})
}

func TestResolveSource(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		source string
		want   string
	}{
		{"~/contacts.yaml", filepath.Join(home, "contacts.yaml")},
		{"/abs/crm.db", "/abs/crm.db"},
		{"relative.json", "relative.json"},
		{"~notme/x.json", "~notme/x.json"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			d := DirectoryConfig{Source: tt.source}
			assert.Equal(t, tt.want, d.ResolveSource())
		})
	}
}

func TestLoggingResolveDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	l := LoggingConfig{Enabled: false, Dir: "/var/log/crmdesk"}
	assert.Empty(t, l.ResolveDir(), "disabled logging has no directory")

	l = LoggingConfig{Enabled: true}
	assert.Equal(t, "/custom/config/crmdesk/logs", l.ResolveDir())

	l = LoggingConfig{Enabled: true, Dir: "/var/log/crmdesk"}
	assert.Equal(t, "/var/log/crmdesk", l.ResolveDir())
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
directory:
  source: /data/crm.db
  watch: false
picker:
  max_suggestions: 25
`), 0644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/crm.db", cfg.Directory.Source)
	assert.False(t, cfg.Directory.Watch)
	assert.Equal(t, 25, cfg.Picker.MaxSuggestions)
	assert.Equal(t, "Type a name or email", cfg.Picker.Placeholder, "unset keys keep defaults")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("picker.max_suggestions", 0)

	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "picker.max_suggestions"), "error = %v", err)

	// Get falls back to defaults
	assert.Equal(t, 10, Get().Picker.MaxSuggestions)
}
