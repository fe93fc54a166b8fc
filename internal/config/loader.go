package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the project file names Find looks for, in order.
var FileNames = []string{"holda.yaml", "holda.yml", "holda.toml"}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid holda config")

// Find returns the first project file found in dir or any of its parents.
// It returns an empty path and no error when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}

// LoadFile loads and parses a project file. The format is chosen by
// extension: .toml is TOML, anything else YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return finish(&cfg)
}

// ParseTOML parses TOML data into a Config.
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config

	_, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = DefaultSuffix
	}

	if cfg.Output.Header == "" {
		cfg.Output.Header = DefaultHeader
	}

	if !strings.HasPrefix(cfg.Output.Header, "//") {
		cfg.Output.Header = "// " + cfg.Output.Header
	}

	if len(cfg.Serde.Formats) == 0 {
		cfg.Serde.Formats = []Format{FormatJSON}
	}

	formats := make([]Format, 0, len(cfg.Serde.Formats))
	for _, f := range cfg.Serde.Formats {
		f = Format(strings.ToLower(string(f)))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}

	cfg.Serde.Formats = formats
}

// Validate checks a Config after defaults have been applied.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("%w: unsupported version %q", ErrInvalid, cfg.Version))
	}

	if !strings.HasSuffix(cfg.Output.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("%w: output suffix %q must end in .go", ErrInvalid, cfg.Output.Suffix))
	}

	if strings.HasSuffix(cfg.Output.Suffix, "_test.go") {
		errs = append(errs, fmt.Errorf("%w: output suffix %q would produce test files", ErrInvalid, cfg.Output.Suffix))
	}

	if strings.ContainsAny(cfg.Serde.BuildTag, " \t\n") {
		errs = append(errs, fmt.Errorf("%w: build tag %q contains whitespace", ErrInvalid, cfg.Serde.BuildTag))
	}

	for _, f := range cfg.Serde.Formats {
		if !f.Valid() {
			errs = append(errs, fmt.Errorf("%w: unknown serde format %q", ErrInvalid, f))
		}
	}

	return errors.Join(errs...)
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path as YAML.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
