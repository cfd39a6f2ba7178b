package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at a project root.
const FileName = "billdoc.yaml"

// Config represents the top-level billdoc.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Payment  PaymentConfig  `yaml:"payment"`
	Tax      TaxConfig      `yaml:"tax"`
	Output   OutputConfig   `yaml:"output"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the issuer printed on every document.
type BusinessConfig struct {
	Name    string `yaml:"name"`
	TaxID   string `yaml:"tax_id,omitempty"`
	Address string `yaml:"address,omitempty"`
	Phone   string `yaml:"phone,omitempty"`
	Email   string `yaml:"email,omitempty"`
}

// PaymentConfig is the bank account printed under the totals.
type PaymentConfig struct {
	Bank          string `yaml:"bank,omitempty"`
	AccountName   string `yaml:"account_name,omitempty"`
	AccountNumber string `yaml:"account_number,omitempty"`
}

// TaxConfig holds the single-rate defaults used when a document names neither
// tax_rate/tax_type nor tax_config.
type TaxConfig struct {
	Rate float64 `yaml:"rate"`
	Kind string  `yaml:"kind"` // "withholding" or "vat"
}

// OutputConfig controls where and how documents are rendered.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	FontPath string `yaml:"font_path,omitempty"` // UTF-8 TTF with Thai glyphs
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a billdoc.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project: 3%
// withholding, the usual rate for freelance services.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Tax: TaxConfig{
			Rate: 0.03,
			Kind: "withholding",
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "billdoc",
			AuthorEmail: "billdoc@localhost",
		},
	}
}
