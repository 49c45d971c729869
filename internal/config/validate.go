package config

import (
	"fmt"
	"net/url"
	"strings"
)

// maxChunkSize is the service-side ceiling for a single upload request:
// 262,144,000 bytes (250 MiB). Larger chunk sizes are rejected here so
// the failure surfaces at config time instead of mid-transfer.
const maxChunkSize = 250 * 1024 * 1024

// validLogLevels are the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// validLogFormats are the accepted log_format values.
var validLogFormats = map[string]bool{
	"auto": true, "text": true, "json": true,
}

// Validate checks a parsed Config for invalid values. Site fields are
// not required here — they may still arrive via environment or flags —
// but anything present must be well-formed.
func Validate(cfg *Config) error {
	if cfg.Site.URL != "" {
		if err := validateSiteURL(cfg.Site.URL); err != nil {
			return err
		}
	}

	if err := validateChunkSize(cfg.Transfers.ChunkSize); err != nil {
		return err
	}

	return validateLogging(cfg.Logging)
}

// ValidateResolved checks the final resolved configuration. Credentials
// are mandatory at this point: every command needs a site and an
// app-only credential pair.
func ValidateResolved(r *Resolved) error {
	if r.SiteURL == "" {
		return fmt.Errorf("site url is required (set site.url, %s, or --site)", EnvSiteURL)
	}

	if err := validateSiteURL(r.SiteURL); err != nil {
		return err
	}

	if r.ClientID == "" {
		return fmt.Errorf("client id is required (set site.client_id, %s, or --client-id)", EnvClientID)
	}

	if r.ClientSecret == "" {
		return fmt.Errorf("client secret is required (set site.client_secret, %s, or --client-secret)", EnvClientSecret)
	}

	return validateLogging(r.Logging)
}

func validateSiteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid site url %q: %w", raw, err)
	}

	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid site url %q: must be an absolute https URL", raw)
	}

	return nil
}

func validateChunkSize(s string) error {
	n, err := parseSize(s)
	if err != nil {
		return fmt.Errorf("invalid chunk_size: %w", err)
	}

	if n > maxChunkSize {
		return fmt.Errorf("chunk_size %s exceeds the 250MiB request limit", s)
	}

	return nil
}

func validateLogging(l LoggingConfig) error {
	if l.LogLevel != "" && !validLogLevels[strings.ToLower(l.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn, or error", l.LogLevel)
	}

	if l.LogFormat != "" && !validLogFormats[strings.ToLower(l.LogFormat)] {
		return fmt.Errorf("invalid log_format %q: must be auto, text, or json", l.LogFormat)
	}

	return nil
}
