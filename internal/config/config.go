// Package config loads csvdescribe settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/spf13/viper"
)

// AppName names the config directory and environment prefix.
const AppName = "csvdescribe"

// Viper keys.
const (
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyDelimiter      = "csv.delimiter"
	KeySkipEmpty      = "csv.skip_empty"
	KeyOutputFile     = "output.file"
	KeyOutputFormat   = "output.format"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryPath    = "history.path"
	KeyWorkers        = "analysis.workers"
	KeyWatchDebounce  = "watch.debounce"
)

// Settings are the resolved options shared by the commands.
type Settings struct {
	Delimiter      string
	OutputFile     string
	OutputFormat   string
	HistoryPath    string
	Workers        int
	WatchDebounce  time.Duration
	SkipEmpty      bool
	HistoryEnabled bool
}

// Dir returns the configuration directory, ~/.config/csvdescribe.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDelimiter, ",")
	v.SetDefault(KeySkipEmpty, false)
	v.SetDefault(KeyOutputFile, "output.txt")
	v.SetDefault(KeyOutputFormat, "table")
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryPath, filepath.Join("~", ".config", AppName, "history.db"))
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyWatchDebounce, 250*time.Millisecond)
	v.SetDefault("sheets.sheet_name", "Headers")
	v.SetDefault("sheets.spreadsheet_name", "CSV Header Descriptions")
	v.SetDefault("sheets.retry_attempts", 3)
	v.SetDefault("sheets.retry_delay", time.Second)
}

// Load resolves Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Delimiter:      v.GetString(KeyDelimiter),
		SkipEmpty:      v.GetBool(KeySkipEmpty),
		OutputFile:     ExpandPath(v.GetString(KeyOutputFile)),
		OutputFormat:   v.GetString(KeyOutputFormat),
		HistoryEnabled: v.GetBool(KeyHistoryEnabled),
		HistoryPath:    ExpandPath(v.GetString(KeyHistoryPath)),
		Workers:        v.GetInt(KeyWorkers),
		WatchDebounce:  v.GetDuration(KeyWatchDebounce),
	}

	if s.Workers < 0 {
		return Settings{}, fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, KeyWorkers)
	}
	if s.WatchDebounce < 0 {
		return Settings{}, fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, KeyWatchDebounce)
	}
	if s.HistoryEnabled && s.HistoryPath == "" {
		return Settings{}, fmt.Errorf("%w: %s is required when history is enabled", common.ErrMissingConfig, KeyHistoryPath)
	}

	return s, nil
}
