package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				DatabaseURL:  "postgres://localhost/offers",
				BotToken:     "test-token",
				SuperadminID: 42,
			},
			wantErr: false,
		},
		{
			name: "missing database url",
			config: &Config{
				BotToken:     "test-token",
				SuperadminID: 42,
			},
			wantErr: true,
		},
		{
			name: "missing bot token",
			config: &Config{
				DatabaseURL:  "postgres://localhost/offers",
				SuperadminID: 42,
			},
			wantErr: true,
		},
		{
			name: "missing superadmin id",
			config: &Config{
				DatabaseURL: "postgres://localhost/offers",
				BotToken:    "test-token",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/offers")
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("SUPERADMIN_ID", "12345")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/offers", cfg.DatabaseURL)
	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, int64(12345), cfg.SuperadminID)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_InvalidSuperadminID(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/offers")
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("SUPERADMIN_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
