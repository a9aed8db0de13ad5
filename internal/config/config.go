// Package config loads codec settings for the tinycsv command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oleg578/tinycsv"
)

// ErrInvalidComma indicates a separator that is not a single usable ASCII byte.
var ErrInvalidComma = errors.New("separator must be one ASCII character other than a quote or newline")

// Config holds codec settings. Zero values are replaced by Default.
type Config struct {
	// Comma is the field separator, written as a one-character string. "\t" is accepted for tab.
	Comma string `yaml:"comma"`
	// Newline is "platform", "lf" or "crlf".
	Newline string `yaml:"newline"`
	// Multiline enables quoted cells that span lines. If nil, defaults to true.
	Multiline *bool `yaml:"multiline"`
	// HeaderRows is the number of leading header rows.
	HeaderRows int `yaml:"header_rows"`
	// Encoding names the input character set, e.g. "shift_jis" or "gbk". Empty means UTF-8.
	Encoding string `yaml:"encoding"`
	// Strict quotes every cell that contains a quote when writing.
	Strict bool `yaml:"strict"`
	// Workers decodes rows in parallel when greater than one.
	Workers int `yaml:"workers"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Comma:      ",",
		Newline:    tinycsv.NewlinePlatform.String(),
		HeaderRows: 1,
	}
}

// Load reads path and merges it over Default. An empty path returns Default. The result is not
// validated so callers can apply overrides first; call Validate before use.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the separator, newline name and counts.
func (c Config) Validate() error {
	if _, err := ParseComma(c.Comma); err != nil {
		return err
	}
	if _, err := tinycsv.ParseNewlineStyle(c.Newline); err != nil {
		return err
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative, got %d", c.HeaderRows)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// IsMultiline reports whether multi-line cells are enabled.
func (c Config) IsMultiline() bool {
	if c.Multiline != nil {
		return *c.Multiline
	}
	return true
}

// CommaByte returns the separator byte. Call Validate first.
func (c Config) CommaByte() byte {
	b, _ := ParseComma(c.Comma)
	return b
}

// NewlineStyle returns the configured newline style. Call Validate first.
func (c Config) NewlineStyle() tinycsv.NewlineStyle {
	s, _ := tinycsv.ParseNewlineStyle(c.Newline)
	return s
}

// TableOptions maps the settings onto tinycsv.TableOptions.
func (c Config) TableOptions() tinycsv.TableOptions {
	return tinycsv.TableOptions{
		Comma:      c.CommaByte(),
		Multiline:  c.IsMultiline(),
		Newline:    c.NewlineStyle(),
		HeaderRows: c.HeaderRows,
		Workers:    c.Workers,
	}
}

// ParseComma converts a separator setting into a byte.
func ParseComma(s string) (byte, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidComma, s)
	}
	b := s[0]
	if b >= 0x80 || b == tinycsv.Quote || b == '\n' || b == '\r' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidComma, s)
	}
	return b, nil
}
