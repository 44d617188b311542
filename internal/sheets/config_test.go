package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/csvdescribe/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		c := DefaultConfig()
		c.ServiceAccountPath = "/path/to/key.json"
		return c
	}

	tests := []struct {
		wantErr error
		name    string
		errMsg  string
		mutate  func(*Config)
	}{
		{
			name:   "service account",
			mutate: func(*Config) {},
		},
		{
			name: "oauth credentials",
			mutate: func(c *Config) {
				c.ServiceAccountPath = ""
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name: "partial oauth credentials",
			mutate: func(c *Config) {
				c.ServiceAccountPath = ""
				c.ClientID = "id"
				c.RefreshToken = "token"
			},
			wantErr: common.ErrMissingConfig,
			errMsg:  "no authentication method configured",
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
			wantErr: common.ErrInvalidConfig,
			errMsg:  "multiple authentication methods",
		},
		{
			name: "no spreadsheet target",
			mutate: func(c *Config) {
				c.SpreadsheetName = ""
			},
			wantErr: common.ErrInvalidConfig,
			errMsg:  "spreadsheet id or name",
		},
		{
			name:    "no sheet name",
			mutate:  func(c *Config) { c.SheetName = "" },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "negative retry attempts",
			mutate:  func(c *Config) { c.RetryAttempts = -1 },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.RetryDelay = -time.Second },
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry delay cannot be negative",
		},
		{
			name:    "max delay below delay",
			mutate:  func(c *Config) { c.RetryMaxDelay = time.Millisecond },
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry max delay",
		},
		{
			name:   "max delay set",
			mutate: func(c *Config) { c.RetryMaxDelay = time.Minute },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/env/key.json")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "env-sheet")

	c := DefaultConfig()
	c.SpreadsheetID = "configured"
	c.LoadFromEnv()

	assert.Equal(t, "/env/key.json", c.ServiceAccountPath)
	assert.Equal(t, "configured", c.SpreadsheetID)
}

func TestConfig_RetryOptions(t *testing.T) {
	c := DefaultConfig()
	c.RetryAttempts = 5
	c.RetryDelay = 200 * time.Millisecond

	opts := c.RetryOptions("update values")
	assert.Equal(t, "update values", opts.Operation)
	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, opts.InitialDelay)
	assert.Equal(t, 1600*time.Millisecond, opts.MaxDelay)

	c.RetryMaxDelay = 3 * time.Second
	assert.Equal(t, 3*time.Second, c.RetryOptions("get spreadsheet").MaxDelay)
}
