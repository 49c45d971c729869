package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResolved() *Resolved {
	return &Resolved{
		SiteURL:      "https://contoso.sharepoint.com/sites/dev",
		ClientID:     "id",
		ClientSecret: "secret",
		ChunkSize:    defaultChunkSize,
		Logging:      LoggingConfig{LogLevel: "info", LogFormat: "auto"},
	}
}

func TestValidateResolved_OK(t *testing.T) {
	assert.NoError(t, ValidateResolved(validResolved()))
}

func TestValidateResolved_SiteURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"http scheme", "http://contoso.sharepoint.com/sites/dev"},
		{"relative", "/sites/dev"},
		{"bare host", "contoso.sharepoint.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResolved()
			r.SiteURL = tt.url
			assert.Error(t, ValidateResolved(r))
		})
	}
}

func TestValidateResolved_MissingSecret(t *testing.T) {
	r := validResolved()
	r.ClientSecret = ""

	err := ValidateResolved(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvClientSecret)
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.LogLevel = "chatty"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.LogFormat = "xml"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.LogLevel = "DEBUG"

	assert.NoError(t, Validate(cfg))
}

func TestValidate_EmptySiteURLAllowedPreResolve(t *testing.T) {
	// Credentials may arrive via environment or flags, so a config file
	// without a [site] section is valid on its own.
	assert.NoError(t, Validate(DefaultConfig()))
}
