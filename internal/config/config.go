// Package config holds runtime configuration: defaults, CLI flag parsing,
// an optional YAML config file, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/tabconv/output"
	"github.com/vegasq/tabconv/progress"
)

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all runtime settings. It is populated by DefaultConfig, then
// by the config file, then by command-line flags.
type Config struct {
	Debug        bool     `yaml:"debug"`
	HeaderOnly   bool     `yaml:"header"`
	Delimiter    string   `yaml:"delimiter"`      // Default: ",". Also accepts "tab" and `\t`.
	ProgressStep int64    `yaml:"progress_step"`  // Default: 100000.
	Format       string   `yaml:"format"`         // csv | jsonl | frame. Default: csv.
	SourceExts   []string `yaml:"source_exts"`    // Default: .sas7bdat, .parquet.
	TextExt      string   `yaml:"text_ext"`       // Default: derived from Format.
	Sanitize     bool     `yaml:"sanitize"`       // Prefix formula-like string cells.
	MaxCellWidth int      `yaml:"max_cell_width"` // Frame cell truncation. Default: 40.

	// Set from the command line only.
	ConfigFile string   `yaml:"-"`
	Args       []string `yaml:"-"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		Delimiter:    ",",
		ProgressStep: progress.DefaultStep,
		Format:       string(output.FormatCSV),
		SourceExts:   []string{".sas7bdat", ".parquet"},
		MaxCellWidth: 40,
	}
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a single rune.
func (c *Config) DelimiterRune() (rune, error) {
	d := c.Delimiter
	switch strings.ToLower(d) {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidConfig, d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: delimiter %q is not allowed", ErrInvalidConfig, d)
	}
	return r, nil
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() (output.Format, error) {
	f, err := output.ParseFormat(c.Format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return f, nil
}

// OutputExt returns the extension given to derived output paths.
func (c *Config) OutputExt() string {
	if c.TextExt != "" {
		if !strings.HasPrefix(c.TextExt, ".") {
			return "." + c.TextExt
		}
		return c.TextExt
	}
	if c.Format == string(output.FormatJSONL) {
		return ".jsonl"
	}
	return ".csv"
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.ProgressStep <= 0 {
		return fmt.Errorf("%w: progress step must be a positive integer, got %d", ErrInvalidConfig, c.ProgressStep)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if len(c.SourceExts) == 0 {
		return fmt.Errorf("%w: at least one source extension is required", ErrInvalidConfig)
	}
	if c.MaxCellWidth < 0 {
		return fmt.Errorf("%w: max cell width must not be negative", ErrInvalidConfig)
	}
	return nil
}
