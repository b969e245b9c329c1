package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Categorizer providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config represents the statement-points.yaml configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Categorizer CategorizerConfig `yaml:"categorizer"`
	PDF         PDFConfig         `yaml:"pdf"`
	Rewards     RewardsConfig     `yaml:"rewards"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}

// CategorizerConfig selects and tunes the AI categorization backend.
type CategorizerConfig struct {
	Provider  string       `yaml:"provider"` // "openai", "gemini" or "none"
	BatchSize int          `yaml:"batch_size"`
	OpenAI    OpenAIConfig `yaml:"openai"`
	Gemini    GeminiConfig `yaml:"gemini"`
}

// OpenAIConfig holds OpenAI chat completion settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// GeminiConfig holds Gemini settings.
type GeminiConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model"`
}

// PDFConfig tunes PDF line reconstruction.
type PDFConfig struct {
	LineTolerance float64 `yaml:"line_tolerance"`
}

// RewardsConfig holds the defaults for rewards projections.
type RewardsConfig struct {
	MonthlyRent    float64  `yaml:"monthly_rent"`
	EcosystemSpend float64  `yaml:"ecosystem_spend"` // monthly Bilt Cash redemptions outside rent
	BiltCash       bool     `yaml:"bilt_cash"`
	Cards          []string `yaml:"cards,omitempty"`
	CardA          string   `yaml:"card_a"`
	CardB          string   `yaml:"card_b"`
}

// Load reads a statement-points.yaml file from disk. Fields missing from
// the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			BodyLimitMB: 50,
		},
		Categorizer: CategorizerConfig{
			Provider:  ProviderOpenAI,
			BatchSize: 100,
			OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
			Gemini:    GeminiConfig{Model: "gemini-2.5-flash"},
		},
		PDF: PDFConfig{
			LineTolerance: 3,
		},
		Rewards: RewardsConfig{
			BiltCash: true,
			CardA:    "bilt",
			CardB:    "csr",
		},
	}
}

// ApplyEnv overlays environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Categorizer.OpenAI.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Categorizer.Gemini.APIKey = v
	}
	if v := os.Getenv("CATEGORIZER"); v != "" {
		c.Categorizer.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	var errs []error
	switch c.Categorizer.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("categorizer.provider: unknown provider %q", c.Categorizer.Provider))
	}
	if c.Categorizer.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("categorizer.batch_size must be positive, got %d", c.Categorizer.BatchSize))
	}
	if c.PDF.LineTolerance <= 0 {
		errs = append(errs, fmt.Errorf("pdf.line_tolerance must be positive, got %g", c.PDF.LineTolerance))
	}
	if c.Rewards.MonthlyRent < 0 || c.Rewards.EcosystemSpend < 0 {
		errs = append(errs, errors.New("rewards amounts must not be negative"))
	}
	return errors.Join(errs...)
}
