// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for sharepoint-go. It supports a
// four-layer override chain (defaults -> config file -> environment ->
// CLI flags).
package config

// Config is the top-level configuration structure parsed from a TOML file.
type Config struct {
	Site      SiteConfig      `toml:"site"`
	Transfers TransfersConfig `toml:"transfers"`
	Logging   LoggingConfig   `toml:"logging"`
}

// SiteConfig identifies the target site and the app-only credential used
// to reach it. The secret can be kept out of the file entirely and
// supplied via SHAREPOINT_GO_CLIENT_SECRET instead.
type SiteConfig struct {
	URL          string `toml:"url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// TransfersConfig controls upload behavior: chunk size for large files
// and whether uploads replace existing remote files.
type TransfersConfig struct {
	ChunkSize string `toml:"chunk_size"`
	Overwrite bool   `toml:"overwrite"`
}

// LoggingConfig controls log output behavior.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. Empty string means "not specified" — none of
// these flags have a meaningful empty value.
type CLIOverrides struct {
	ConfigPath   string // --config flag
	SiteURL      string // --site flag
	ClientID     string // --client-id flag
	ClientSecret string // --client-secret flag
	ChunkSize    string // --chunk-size flag
}

// Resolved is the final configuration after the override chain has been
// applied and validated. ChunkSizeBytes is the parsed form of
// Transfers.ChunkSize.
type Resolved struct {
	SiteURL        string
	ClientID       string
	ClientSecret   string
	ChunkSize      string
	ChunkSizeBytes int64
	Overwrite      bool
	Logging        LoggingConfig
}
