package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv entfernt Variablen für die Dauer des Tests.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "HTTP_PORT", "MAX_BODY_BYTES", "DATE_LOCALE", "DURATION_ANCHOR",
		"DATE_RECOGNIZER", "DATE_RECOGNIZER_TIMEOUT", "BATCH_ENABLED", "XML_ROW_PATH")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, "ru", cfg.DateLocale)
	assert.Equal(t, AnchorFirst, cfg.DurationAnchor)
	assert.Equal(t, "local", cfg.DateRecognizer)
	assert.Equal(t, 10*time.Second, cfg.DateRecognizerTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"root", "row"}, cfg.RowPath())
	assert.False(t, cfg.BatchEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	unsetEnv(t, "DATE_RECOGNIZER", "BATCH_ENABLED")
	t.Setenv("DATE_LOCALE", "en")
	t.Setenv("DURATION_ANCHOR", "days")
	t.Setenv("XML_ROW_PATH", "doc. records .record")
	t.Setenv("DATE_RECOGNIZER_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.DateLocale)
	assert.Equal(t, AnchorDays, cfg.DurationAnchor)
	assert.Equal(t, []string{"doc", "records", "record"}, cfg.RowPath())
	assert.Equal(t, 2*time.Second, cfg.DateRecognizerTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DateLocale:     "ru",
			DurationAnchor: AnchorFirst,
			DateRecognizer: "local",
			XMLRowPath:     "root.row",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad locale", func(c *Config) { c.DateLocale = "not a locale" }, "DATE_LOCALE"},
		{"bad anchor", func(c *Config) { c.DurationAnchor = "last" }, "DURATION_ANCHOR"},
		{"unknown recognizer", func(c *Config) { c.DateRecognizer = "magic" }, "DATE_RECOGNIZER"},
		{"remote without url", func(c *Config) { c.DateRecognizer = "remote" }, "DATE_RECOGNIZER_URL"},
		{"remote with url", func(c *Config) {
			c.DateRecognizer = "remote"
			c.DateRecognizerURL = "http://dates.local/recognize"
		}, ""},
		{"empty row path", func(c *Config) { c.XMLRowPath = " . " }, "XML_ROW_PATH"},
		{"batch without s3", func(c *Config) { c.BatchEnabled = true }, "S3_URL"},
		{"batch with s3", func(c *Config) {
			c.BatchEnabled = true
			c.S3URL = "http://minio:9000"
			c.S3Bucket = "legal"
			c.S3Key = "key"
			c.S3Secret = "secret"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
