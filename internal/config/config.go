// Package config provides configuration loading and validation for the
// server and CLI. Values come from an optional JSON file merged over
// defaults, with environment variables taking final precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration. All fields are optional;
// missing values fall back to defaults.
type Config struct {
	// Env selects the logger encoder ("production" or "development").
	Env string `json:"env,omitempty"`
	// Addr is the server listen address, e.g. ":8080".
	Addr string `json:"addr,omitempty"`
	// AllowedOrigin is echoed in CORS headers; "*" by default.
	AllowedOrigin string `json:"allowed_origin,omitempty"`
	// Verbose enables the box-printed summaries in CLI mode.
	Verbose bool `json:"verbose,omitempty"`

	Extraction ExtractionConfig `json:"extraction,omitempty"`
	History    HistoryConfig    `json:"history,omitempty"`
}

// ExtractionConfig exposes the PDF layout heuristics as tunables.
type ExtractionConfig struct {
	// ColumnMarginRatio is the half-width of the dead band around the page
	// midpoint, as a fraction of page width.
	ColumnMarginRatio float64 `json:"column_margin_ratio,omitempty"`
	// MinColumnFragments is the per-side fragment count required to call a
	// page two-column.
	MinColumnFragments int `json:"min_column_fragments,omitempty"`
	// RowTolerance is the Y distance within which fragments sort as one row.
	RowTolerance float64 `json:"row_tolerance,omitempty"`
	// LinkYTolerance is the vertical window for link context attribution.
	LinkYTolerance float64 `json:"link_y_tolerance,omitempty"`
	// LinkContextSize is the number of nearest fragments joined as context.
	LinkContextSize int `json:"link_context_size,omitempty"`
}

// HistoryConfig tunes the edit store.
type HistoryConfig struct {
	// Capacity bounds the undo and redo stacks.
	Capacity int `json:"capacity,omitempty"`
	// DebounceMS is the text-edit quiet period in milliseconds.
	DebounceMS int `json:"debounce_ms,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Env:           "development",
		Addr:          ":8080",
		AllowedOrigin: "*",
		Extraction: ExtractionConfig{
			ColumnMarginRatio:  0.10,
			MinColumnFragments: 10,
			RowTolerance:       5,
			LinkYTolerance:     15,
			LinkContextSize:    5,
		},
		History: HistoryConfig{
			Capacity:   50,
			DebounceMS: 1000,
		},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Env = env
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		c.Addr = addr
	}
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		c.AllowedOrigin = origin
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Extraction.ColumnMarginRatio < 0 || c.Extraction.ColumnMarginRatio >= 0.5 {
		return fmt.Errorf("config error: 'column_margin_ratio' must be in [0, 0.5)")
	}
	if c.Extraction.MinColumnFragments < 0 {
		return fmt.Errorf("config error: 'min_column_fragments' must be non-negative")
	}
	if c.Extraction.RowTolerance < 0 || c.Extraction.LinkYTolerance < 0 {
		return fmt.Errorf("config error: tolerances must be non-negative")
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("config error: 'capacity' must be non-negative")
	}
	if c.History.DebounceMS < 0 {
		return fmt.Errorf("config error: 'debounce_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Env == "" {
		result.Env = defaults.Env
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.AllowedOrigin == "" {
		result.AllowedOrigin = defaults.AllowedOrigin
	}

	if result.Extraction.ColumnMarginRatio == 0 {
		result.Extraction.ColumnMarginRatio = defaults.Extraction.ColumnMarginRatio
	}
	if result.Extraction.MinColumnFragments == 0 {
		result.Extraction.MinColumnFragments = defaults.Extraction.MinColumnFragments
	}
	if result.Extraction.RowTolerance == 0 {
		result.Extraction.RowTolerance = defaults.Extraction.RowTolerance
	}
	if result.Extraction.LinkYTolerance == 0 {
		result.Extraction.LinkYTolerance = defaults.Extraction.LinkYTolerance
	}
	if result.Extraction.LinkContextSize == 0 {
		result.Extraction.LinkContextSize = defaults.Extraction.LinkContextSize
	}

	if result.History.Capacity == 0 {
		result.History.Capacity = defaults.History.Capacity
	}
	if result.History.DebounceMS == 0 {
		result.History.DebounceMS = defaults.History.DebounceMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
