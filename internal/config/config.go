// Package config loads application configuration from environment
// variables. Every value has a default: the planner must start with no
// configuration at all.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the planner.
type Config struct {
	// DataPath is the SQLite database file holding the persisted
	// reservation and apartment blobs.
	DataPath string

	// LogPath is the file structured logs are written to. The TUI owns
	// the terminal, so logs never go to stdout.
	LogPath string

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string

	// ExportDir is the directory CSV exports are written into.
	ExportDir string
}

// Load reads configuration from RESAPP_-prefixed environment variables,
// falling back to per-user defaults under the home directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RESAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.path", filepath.Join(dataHome(), "resapp.db"))
	v.SetDefault("log.path", filepath.Join(dataHome(), "resapp.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("export.dir", defaultExportDir())

	_ = v.BindEnv("data.path", "RESAPP_DATA_PATH")
	_ = v.BindEnv("log.path", "RESAPP_LOG_PATH")
	_ = v.BindEnv("log.level", "RESAPP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("export.dir", "RESAPP_EXPORT_DIR")

	return Config{
		DataPath:  v.GetString("data.path"),
		LogPath:   v.GetString("log.path"),
		LogLevel:  v.GetString("log.level"),
		ExportDir: v.GetString("export.dir"),
	}, nil
}

// dataHome returns the per-user state directory for the planner.
func dataHome() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".resapp")
	}
	return ".resapp"
}

// defaultExportDir prefers the working directory so exports land
// somewhere the user will find them.
func defaultExportDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
