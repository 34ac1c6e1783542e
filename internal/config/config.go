// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// MinCacheSizeMB is the smallest report cache that still holds an athlete card.
const MinCacheSizeMB = 8

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, receives a rotated copy of the log output.
	LogFile      string `koanf:"log_file"`
	LogMaxSizeMB int    `koanf:"log_max_size_mb"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CurrentPath and HistoryPath point at JSON workbook snapshots loaded
	// on start and reloaded once RefreshIntervalSeconds elapses.
	// Both empty disables file loading.
	CurrentPath            string `koanf:"current_path"`
	HistoryPath            string `koanf:"history_path"`
	RefreshIntervalSeconds int    `koanf:"refresh_interval_seconds"`

	// CacheSizeMB and CacheTTLSeconds size the report cache. The cache drops
	// entries above 1/1024 of its size, so athlete cards need MinCacheSizeMB.
	CacheSizeMB     int `koanf:"cache_size_mb"`
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// MaxUploadBytes caps PUT /workbooks bodies.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// NameColumns lists the headers that may hold athlete names. Empty keeps
	// the built-in list.
	NameColumns []string `koanf:"name_columns"`

	// WeekMarker prefixes the weekly columns of history sheets.
	WeekMarker string `koanf:"week_marker"`

	// SheetMatchMaxStray bounds the fuzzy sheet-name fallback; 0 disables it.
	SheetMatchMaxStray int `koanf:"sheet_match_max_stray"`

	// MetricOverrides renames columns, history sheets or labels per metric key.
	MetricOverrides map[string]MetricOverride `koanf:"metric_overrides"`
}

// MetricOverride replaces the non-empty fields of one metric definition.
type MetricOverride struct {
	Column     string `koanf:"column"`
	HistoryKey string `koanf:"history_key"`
	Label      string `koanf:"label"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogMaxSizeMB:           50,
		Addr:                   ":9080",
		RefreshIntervalSeconds: 600,
		CacheSizeMB:            32,
		CacheTTLSeconds:        600,
		MaxUploadBytes:         8 << 20,
		WeekMarker:             "sem",
		SheetMatchMaxStray:     1,
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !validLevel(c.LogLevel):
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	case c.LogMaxSizeMB < 0:
		return fmt.Errorf("%w: log_max_size_mb must not be negative", ErrInvalidConfig)
	case c.RefreshIntervalSeconds < 0:
		return fmt.Errorf("%w: refresh_interval_seconds must not be negative", ErrInvalidConfig)
	case c.CacheSizeMB < MinCacheSizeMB:
		return fmt.Errorf("%w: cache_size_mb must be at least %d", ErrInvalidConfig, MinCacheSizeMB)
	case c.CacheTTLSeconds < 1:
		return fmt.Errorf("%w: cache_ttl_seconds must be at least 1", ErrInvalidConfig)
	case c.MaxUploadBytes < 1:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.SheetMatchMaxStray < 0:
		return fmt.Errorf("%w: sheet_match_max_stray must not be negative", ErrInvalidConfig)
	case (c.CurrentPath == "") != (c.HistoryPath == ""):
		return fmt.Errorf("%w: current_path and history_path must be set together", ErrInvalidConfig)
	}
	if _, err := c.MetricTable(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func validLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// RefreshInterval is RefreshIntervalSeconds as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// CacheTTL is CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CacheSizeBytes is CacheSizeMB in bytes.
func (c *Config) CacheSizeBytes() int {
	return c.CacheSizeMB << 20
}

// MetricTable returns the default metric table with the overrides applied.
func (c *Config) MetricTable() (*metric.Table, error) {
	if len(c.MetricOverrides) == 0 {
		return metric.Defaults(), nil
	}
	overrides := make(map[string]metric.Override, len(c.MetricOverrides))
	for key, o := range c.MetricOverrides {
		overrides[key] = metric.Override{Column: o.Column, HistoryKey: o.HistoryKey, Label: o.Label}
	}
	return metric.Defaults().WithOverrides(overrides)
}

// ResolverOptions returns the workbook lookup settings.
func (c *Config) ResolverOptions() []workbook.ResolverOption {
	opts := []workbook.ResolverOption{
		workbook.WithWeekMarker(c.WeekMarker),
		workbook.WithMaxStray(c.SheetMatchMaxStray),
	}
	if len(c.NameColumns) > 0 {
		opts = append(opts, workbook.WithNameColumns(c.NameColumns...))
	}
	return opts
}
