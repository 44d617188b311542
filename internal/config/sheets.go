package config

import (
	"github.com/Veraticus/csvdescribe/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig builds the Sheets export configuration.
// Precedence: viper (config file, CSVDESCRIBE_ env, flags), then GOOGLE_SHEETS_* env, then defaults.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	config.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	config.ClientID = v.GetString("sheets.client_id")
	config.ClientSecret = v.GetString("sheets.client_secret")
	config.RefreshToken = v.GetString("sheets.refresh_token")
	config.SpreadsheetID = v.GetString("sheets.spreadsheet_id")

	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		config.SpreadsheetName = name
	}
	if name := v.GetString("sheets.sheet_name"); name != "" {
		config.SheetName = name
	}
	if v.IsSet("sheets.retry_attempts") {
		config.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}
	if v.IsSet("sheets.retry_delay") {
		config.RetryDelay = v.GetDuration("sheets.retry_delay")
	}
	if v.IsSet("sheets.retry_max_delay") {
		config.RetryMaxDelay = v.GetDuration("sheets.retry_max_delay")
	}

	config.LoadFromEnv()
	config.ServiceAccountPath = ExpandPath(config.ServiceAccountPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
