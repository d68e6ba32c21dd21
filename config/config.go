// Package config loads the reporter configuration file and applies
// defaults and validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the reporter configuration surface.
type Config struct {
	Output      Output      `yaml:"output"`
	Attachments Attachments `yaml:"attachments"`
	History     History     `yaml:"history"`
	// Maximum concurrent attachment materializations
	Workers int `yaml:"workers"`
}

// Output controls where the report and its blobs are written.
type Output struct {
	// Report output directory
	Dir string `yaml:"dir"`
}

// Attachments controls attachment materialization.
type Attachments struct {
	// "inline" embeds attachments as data URIs, "stored" writes blobs
	Mode string `yaml:"mode"`
	// Re-encode images (except GIF) to JPEG
	CompressImages bool `yaml:"compress_images"`
	// JPEG quality in [1,100]
	ImageQuality int `yaml:"image_quality"`
}

// History controls the cross-run trend ledger.
type History struct {
	// Ledger file path; defaults to <output.dir>/history.json
	Path string `yaml:"path"`
	// Retention window: maximum entries kept
	Window int `yaml:"window"`
	// Discard the persisted ledger before this run
	Reset bool `yaml:"reset"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate reads a configuration file, applies defaults,
// validates, and returns any warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)
	warnings := Validate(cfg)
	return cfg, warnings, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "runledger-report"
	}
	if cfg.Attachments.Mode == "" {
		cfg.Attachments.Mode = "inline"
	}
	if cfg.Attachments.ImageQuality == 0 {
		cfg.Attachments.ImageQuality = 80
	}
	if cfg.History.Window == 0 {
		cfg.History.Window = 10
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
}

// Validate checks the configuration, fixing up out-of-range values and
// returning a warning for each fixup.
func Validate(cfg *Config) []string {
	var warnings []string

	if cfg.Attachments.Mode != "inline" && cfg.Attachments.Mode != "stored" {
		warnings = append(warnings, fmt.Sprintf("unknown attachments.mode %q, using \"inline\"", cfg.Attachments.Mode))
		cfg.Attachments.Mode = "inline"
	}
	if cfg.Attachments.ImageQuality < 1 {
		warnings = append(warnings, fmt.Sprintf("attachments.image_quality %d below 1, using 1", cfg.Attachments.ImageQuality))
		cfg.Attachments.ImageQuality = 1
	} else if cfg.Attachments.ImageQuality > 100 {
		warnings = append(warnings, fmt.Sprintf("attachments.image_quality %d above 100, using 100", cfg.Attachments.ImageQuality))
		cfg.Attachments.ImageQuality = 100
	}
	if cfg.History.Window < 1 {
		warnings = append(warnings, fmt.Sprintf("history.window %d is not positive, using %d", cfg.History.Window, 10))
		cfg.History.Window = 10
	}
	if cfg.Workers < 1 {
		warnings = append(warnings, fmt.Sprintf("workers %d is not positive, using 4", cfg.Workers))
		cfg.Workers = 4
	}

	return warnings
}
