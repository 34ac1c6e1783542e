package sampledata

import (
	"fmt"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
)

// Default generation settings.
const (
	DefaultAthletes    = 12
	DefaultWeeks       = 8
	DefaultNewAthletes = 2
	DefaultSeed        = 360
)

// Config controls workbook generation.
type Config struct {
	Athletes int   // Athletes in the current week
	Weeks    int   // Weeks of history
	Seed     int64 // Zero seeds from crypto/rand
	// NewAthletes of the roster have no history rows.
	NewAthletes int
	// Table names the columns and history sheets; defaults to metric.Defaults().
	Table *metric.Table
}

// DefaultConfig returns a reproducible configuration.
func DefaultConfig() Config {
	return Config{
		Athletes:    DefaultAthletes,
		Weeks:       DefaultWeeks,
		Seed:        DefaultSeed,
		NewAthletes: DefaultNewAthletes,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Athletes < 1:
		return fmt.Errorf("%w: athletes must be at least 1", ErrInvalidConfig)
	case c.Weeks < 1:
		return fmt.Errorf("%w: weeks must be at least 1", ErrInvalidConfig)
	case c.NewAthletes < 0 || c.NewAthletes > c.Athletes:
		return fmt.Errorf("%w: new athletes must be between 0 and %d", ErrInvalidConfig, c.Athletes)
	}
	return nil
}
