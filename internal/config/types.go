package config

import "holda/internal/capability"

// DefaultSuffix is appended to the snake_case wrapper name to form the
// generated file name.
const DefaultSuffix = "_holda.go"

// DefaultHeader is the first line of every generated file.
const DefaultHeader = "// Code generated by holda. DO NOT EDIT."

// Format names a serialization format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMsgpack:
		return true
	default:
		return false
	}
}

// Config is the root structure of a holda project file.
type Config struct {
	// Version of the file format.
	Version string `yaml:"version" toml:"version"`
	// Output controls generated file naming.
	Output Output `yaml:"output" toml:"output"`
	// Serde controls the serialization capability.
	Serde Serde `yaml:"serde" toml:"serde"`
	// Types holds per-type settings keyed by wrapper name.
	Types map[string]TypeConfig `yaml:"types,omitempty" toml:"types"`
}

// Output controls generated file naming.
type Output struct {
	Suffix string `yaml:"suffix" toml:"suffix"`
	Header string `yaml:"header" toml:"header"`
}

// Serde controls the serialization capability.
type Serde struct {
	// Enabled is nil when unset, which means enabled.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled"`
	// BuildTag, when set, moves serialization methods into a separate file
	// guarded by //go:build BuildTag.
	BuildTag string   `yaml:"build_tag,omitempty" toml:"build_tag"`
	Formats  []Format `yaml:"formats" toml:"formats"`
}

// TypeConfig holds settings for a single wrapper.
type TypeConfig struct {
	Options []string `yaml:"options" toml:"options"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// SerdeEnabled reports whether serialization methods are generated at all.
func (c *Config) SerdeEnabled() bool {
	return c.Serde.Enabled == nil || *c.Serde.Enabled
}

// OptionsFor returns the options configured for the wrapper named name.
// Unrecognized names are returned in ignored.
func (c *Config) OptionsFor(name string) (opts capability.Options, ignored []string) {
	tc, ok := c.Types[name]
	if !ok {
		return capability.Options{}, nil
	}

	return capability.ParseOptions(tc.Options)
}
