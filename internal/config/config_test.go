package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Scoring.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Scoring.RequestTimeout)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.NotEmpty(t, cfg.Auth.CredentialsFile)
	assert.Equal(t, "0.0.0.0:5000", cfg.DevServer.ServerAddress())
	assert.Equal(t, 10, cfg.DevServer.RatePerSecond)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
scoring:
  base_url: https://scoring.internal:8443
  request_timeout: 5s
ocr:
  languages: [eng, deu]
devserver:
  port: "9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://scoring.internal:8443", cfg.Scoring.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Scoring.RequestTimeout)
	assert.Equal(t, []string{"eng", "deu"}, cfg.OCR.Languages)
	assert.Equal(t, "9090", cfg.DevServer.Port)
	// Unset sections keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.DevServer.Host)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NUTRISCAN_SCORING_BASE_URL", "http://10.0.0.5:5000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:5000", cfg.Scoring.BaseURL)
}

func TestLoadCorruptFileOnSearchPath(t *testing.T) {
	// A malformed config.yaml discovered via the default search path must
	// fail loudly instead of silently falling back to defaults.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("scoring: [::not yaml"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"relative base url", "scoring:\n  base_url: not-a-url\n"},
		{"zero timeout", "scoring:\n  request_timeout: 0s\n"},
		{"empty languages", "ocr:\n  languages: []\n"},
		{"bad port", "devserver:\n  port: \"70000\"\n"},
		{"zero body size", "devserver:\n  max_request_body_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
