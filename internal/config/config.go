// Package config loads and validates the service configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Oracle  OracleConfig  `yaml:"oracle"`
	Gates   GatesConfig   `yaml:"gates"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

// OracleConfig selects and tunes the text-completion backend.
type OracleConfig struct {
	Provider         string        `yaml:"provider"` // "gemini" | "ollama"
	Timeout          time.Duration `yaml:"timeout"`
	MaxResponseBytes int64         `yaml:"max_response_bytes"`
	Gemini           GeminiConfig  `yaml:"gemini"`
	Ollama           OllamaConfig  `yaml:"ollama"`
}

type GeminiConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"` // e.g. "GOOGLE_API_KEY"
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// GatesConfig toggles the optional pre-classification oracle gates.
type GatesConfig struct {
	TranslateInput bool `yaml:"translate_input"`
	RelevanceGate  bool `yaml:"relevance_gate"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Oracle: OracleConfig{
			Provider:         "gemini",
			Timeout:          60 * time.Second,
			MaxResponseBytes: 4 * 1024 * 1024,
			Gemini: GeminiConfig{
				Model:     "gemini-1.5-flash",
				APIKeyEnv: "GOOGLE_API_KEY",
			},
			Ollama: OllamaConfig{
				BaseURL: "http://localhost:11434",
				Model:   "phi4:14b",
			},
		},
		Gates: GatesConfig{
			TranslateInput: true,
			RelevanceGate:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config) {
	def := defaultConfig()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Oracle.Provider == "" {
		cfg.Oracle.Provider = def.Oracle.Provider
	}
	if cfg.Oracle.Timeout <= 0 {
		cfg.Oracle.Timeout = def.Oracle.Timeout
	}
	if cfg.Oracle.MaxResponseBytes <= 0 {
		cfg.Oracle.MaxResponseBytes = def.Oracle.MaxResponseBytes
	}
	if cfg.Oracle.Gemini.Model == "" {
		cfg.Oracle.Gemini.Model = def.Oracle.Gemini.Model
	}
	if cfg.Oracle.Gemini.APIKeyEnv == "" {
		cfg.Oracle.Gemini.APIKeyEnv = def.Oracle.Gemini.APIKeyEnv
	}
	if cfg.Oracle.Ollama.BaseURL == "" {
		cfg.Oracle.Ollama.BaseURL = def.Oracle.Ollama.BaseURL
	}
	if cfg.Oracle.Ollama.Model == "" {
		cfg.Oracle.Ollama.Model = def.Oracle.Ollama.Model
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}
