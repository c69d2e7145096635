// Package config provides run configuration loading and validation for the
// CLI. A configuration is an immutable snapshot for the duration of one run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// Backend names for the similarity engine.
const (
	BackendTokenSet  = "token-set"
	BackendEmbedding = "embedding"
)

// Config is the recognized option set, loadable from a JSON file with CLI
// flags and environment variables layered on top.
type Config struct {
	UserName            string  `json:"user_name"`
	ServiceURL          string  `json:"service_url" validate:"required,url"`
	LoginEmail          string  `json:"login_email"`
	LoginPassword       string  `json:"login_password,omitempty"`
	MaxPages            int     `json:"max_pages" validate:"gt=0"`
	DelayMin            float64 `json:"delay_min" validate:"gte=0"`
	DelayMax            float64 `json:"delay_max" validate:"gte=0,gtefield=DelayMin"`
	Headless            bool    `json:"headless"`
	LedgerPath          string  `json:"ledger_path" validate:"required"`
	MessageTemplate     string  `json:"message_template" validate:"required"`
	SimilarityThreshold float64 `json:"similarity_threshold" validate:"gte=0,lte=1"`
	SimilarityBackend   string  `json:"similarity_backend" validate:"oneof=token-set embedding"`
	APIKey              string  `json:"api_key,omitempty"`
	Verbose             bool    `json:"verbose,omitempty"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		UserName:            "Your Name",
		ServiceURL:          "https://simbi.com/requests",
		MaxPages:            150,
		DelayMin:            2,
		DelayMax:            5,
		Headless:            false,
		LedgerPath:          "inbox.csv",
		MessageTemplate:     "Hi {user_name}, I saw your request for {request_title}. I'd be happy to help! Let me know if you're interested.",
		SimilarityThreshold: 0.7,
		SimilarityBackend:   BackendTokenSet,
	}
}

// Load reads configuration from a JSON file, with file values overriding
// defaults key by key. A missing file yields the defaults; a file that exists
// but cannot be parsed is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config JSON %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays credential values from the environment. Secrets belong in
// the environment (or a .env file) rather than the config file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SIMBI_EMAIL"); v != "" {
		c.LoginEmail = v
	}
	if v := os.Getenv("SIMBI_PASSWORD"); v != "" {
		c.LoginPassword = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// DelayRange returns the pacing bounds as durations.
func (c *Config) DelayRange() (time.Duration, time.Duration) {
	return time.Duration(c.DelayMin * float64(time.Second)),
		time.Duration(c.DelayMax * float64(time.Second))
}
