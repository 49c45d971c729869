package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are treated as fatal errors with "did
// you mean?" suggestions.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// a Config populated with all default values. Credentials can then come
// entirely from the environment or flags, so no config file is required.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the four-layer override chain:
// defaults -> config file -> environment variables -> CLI flags.
// The precedence order ensures CLI flags always win, matching user
// expectations for one-off overrides without editing the config file.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	// 1. Resolve config path: CLI > env > default
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	// 2. Load config file (returns defaults if no file exists)
	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{
		SiteURL:      cfg.Site.URL,
		ClientID:     cfg.Site.ClientID,
		ClientSecret: cfg.Site.ClientSecret,
		ChunkSize:    cfg.Transfers.ChunkSize,
		Overwrite:    cfg.Transfers.Overwrite,
		Logging:      cfg.Logging,
	}

	// 3. Apply env overrides
	if env.SiteURL != "" {
		resolved.SiteURL = env.SiteURL
	}

	if env.ClientID != "" {
		resolved.ClientID = env.ClientID
	}

	if env.ClientSecret != "" {
		resolved.ClientSecret = env.ClientSecret
	}

	// 4. Apply CLI overrides
	if cli.SiteURL != "" {
		resolved.SiteURL = cli.SiteURL
	}

	if cli.ClientID != "" {
		resolved.ClientID = cli.ClientID
	}

	if cli.ClientSecret != "" {
		resolved.ClientSecret = cli.ClientSecret
	}

	if cli.ChunkSize != "" {
		resolved.ChunkSize = cli.ChunkSize
	}

	// 5. Validate the final resolved configuration
	if err := ValidateResolved(resolved); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	if err := validateChunkSize(resolved.ChunkSize); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	resolved.ChunkSizeBytes, err = parseSize(resolved.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return resolved, nil
}
