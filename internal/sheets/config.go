// Package sheets exports header analysis results to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/csvdescribe/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	SheetName          string
	RetryAttempts      int
	RetryDelay         time.Duration
	RetryMaxDelay      time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "CSV Header Descriptions",
		SheetName:       "Headers",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// LoadFromEnv fills unset fields from GOOGLE_SHEETS_* environment variables.
func (c *Config) LoadFromEnv() {
	setIfEmpty(&c.ClientID, "GOOGLE_SHEETS_CLIENT_ID")
	setIfEmpty(&c.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET")
	setIfEmpty(&c.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN")
	setIfEmpty(&c.ServiceAccountPath, "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")
	setIfEmpty(&c.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setIfEmpty(&c.SpreadsheetName, "GOOGLE_SHEETS_SPREADSHEET_NAME")
}

func setIfEmpty(field *string, env string) {
	if *field == "" {
		*field = os.Getenv(env)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
		return fmt.Errorf("%w: spreadsheet id or name is required", common.ErrInvalidConfig)
	}

	if c.SheetName == "" {
		return fmt.Errorf("%w: sheet name is required", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryMaxDelay != 0 && c.RetryMaxDelay < c.RetryDelay {
		return fmt.Errorf("%w: retry max delay %s is shorter than retry delay %s",
			common.ErrInvalidConfig, c.RetryMaxDelay, c.RetryDelay)
	}

	return nil
}

// RetryOptions returns the backoff policy for one Sheets API call. Without a
// RetryMaxDelay the wait is capped at eight times RetryDelay.
func (c *Config) RetryOptions(operation string) common.RetryOptions {
	maxDelay := c.RetryMaxDelay
	if maxDelay == 0 {
		maxDelay = c.RetryDelay * 8
	}
	return common.RetryOptions{
		Operation:    operation,
		MaxAttempts:  c.RetryAttempts,
		InitialDelay: c.RetryDelay,
		MaxDelay:     maxDelay,
		Multiplier:   2.0,
	}
}
