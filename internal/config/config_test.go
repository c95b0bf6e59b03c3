package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// saveEnv snapshots the given variables and restores them on cleanup
func saveEnv(t *testing.T, keys ...string) {
	t.Helper()
	saved := make(map[string]string, len(keys))
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		value, ok := os.LookupEnv(key)
		saved[key] = value
		set[key] = ok
	}
	t.Cleanup(func() {
		for _, key := range keys {
			if set[key] {
				os.Setenv(key, saved[key])
			} else {
				os.Unsetenv(key)
			}
		}
	})
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	saveEnv(t, "BOT_TOKEN", "BOT_PASSWORD", "CLC_API_KEY", "DB_PASSWORD")

	tests := []struct {
		name    string
		env     map[string]string
		missing string
	}{
		{
			name:    "missing BOT_TOKEN",
			env:     map[string]string{"BOT_PASSWORD": "pw", "CLC_API_KEY": "key", "DB_PASSWORD": "dbpw"},
			missing: "BOT_TOKEN",
		},
		{
			name:    "missing BOT_PASSWORD",
			env:     map[string]string{"BOT_TOKEN": "token", "CLC_API_KEY": "key", "DB_PASSWORD": "dbpw"},
			missing: "BOT_PASSWORD",
		},
		{
			name:    "missing CLC_API_KEY",
			env:     map[string]string{"BOT_TOKEN": "token", "BOT_PASSWORD": "pw", "DB_PASSWORD": "dbpw"},
			missing: "CLC_API_KEY",
		},
		{
			name:    "missing DB_PASSWORD",
			env:     map[string]string{"BOT_TOKEN": "token", "BOT_PASSWORD": "pw", "CLC_API_KEY": "key"},
			missing: "DB_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("BOT_TOKEN")
			os.Unsetenv("BOT_PASSWORD")
			os.Unsetenv("CLC_API_KEY")
			os.Unsetenv("DB_PASSWORD")
			for key, value := range tt.env {
				os.Setenv(key, value)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	saveEnv(t,
		"BOT_TOKEN", "BOT_PASSWORD", "CLC_API_KEY", "DB_PASSWORD",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "CATALOG_PATH",
	)

	// Set required fields
	os.Setenv("BOT_TOKEN", "test_token")
	os.Setenv("BOT_PASSWORD", "test_password")
	os.Setenv("CLC_API_KEY", "test_key")
	os.Setenv("DB_PASSWORD", "test_db_password")

	// Unset optional fields to test defaults
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("DB_USER")
	os.Unsetenv("CATALOG_PATH")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "test_password", cfg.BotPassword)
	assert.Equal(t, "test_key", cfg.CLCAPIKey)
	assert.Equal(t, "data/utm_catalog.json", cfg.CatalogPath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "utmbot", cfg.Database.Name)
	assert.Equal(t, "utmbot", cfg.Database.User)
}
