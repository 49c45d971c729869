package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig       = "SHAREPOINT_GO_CONFIG"
	EnvSiteURL      = "SHAREPOINT_GO_SITE_URL"
	EnvClientID     = "SHAREPOINT_GO_CLIENT_ID"
	EnvClientSecret = "SHAREPOINT_GO_CLIENT_SECRET"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath   string // SHAREPOINT_GO_CONFIG: override config file path
	SiteURL      string // SHAREPOINT_GO_SITE_URL: target site
	ClientID     string // SHAREPOINT_GO_CLIENT_ID: app-only client id
	ClientSecret string // SHAREPOINT_GO_CLIENT_SECRET: app-only secret
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify the Config; callers apply the relevant
// fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath:   os.Getenv(EnvConfig),
		SiteURL:      os.Getenv(EnvSiteURL),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}
}
