package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	switch cfg.Oracle.Provider {
	case "gemini":
		if strings.TrimSpace(cfg.Oracle.Gemini.APIKeyEnv) == "" {
			return errors.New("oracle.gemini.api_key_env must be set for the gemini provider")
		}
		if err := validateBaseURL("oracle.gemini.base_url", cfg.Oracle.Gemini.BaseURL); err != nil {
			return err
		}
	case "ollama":
		if err := validateBaseURL("oracle.ollama.base_url", cfg.Oracle.Ollama.BaseURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("oracle.provider must be \"gemini\" or \"ollama\", got %q", cfg.Oracle.Provider)
	}

	if cfg.Oracle.Timeout <= 0 {
		return errors.New("oracle.timeout must be positive")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}

	return nil
}

// validateBaseURL accepts an empty URL (the backend default applies) but
// rejects unparseable or non-HTTP ones.
func validateBaseURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be http or https, got %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host", field)
	}
	return nil
}
