// Package config reads the TOML configuration of the ratcalc command.
package config

import (
	"fmt"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/pelletier/go-toml"
)

// Output modes of the calculator.
const (
	ModeFraction = "fraction"
	ModeFloat    = "float"
	ModeDecimal  = "decimal"
)

const (
	// DefaultScale is the number of digits after the decimal point in
	// decimal mode when the file does not set one.
	DefaultScale = 6
	// DefaultLogLevel is used when the file does not set a log level.
	DefaultLogLevel = "info"
	// MaxScale is the largest scale accepted by [Custom.Validate].
	MaxScale = 1000
)

// Custom is the calculator configuration, read from the "output" and "log"
// tables of a TOML file.
type Custom struct {
	Output struct {
		Mode  string `toml:"mode"`
		Scale int    `toml:"scale"`
	} `toml:"output"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Custom {
	var config Custom
	config.fill()
	return &config
}

// Initialize reads a TOML file, fills in missing values and validates the
// result.
func Initialize(file string) (*Custom, error) {
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

// Parse is like [Initialize] but reads the configuration from memory.
func Parse(data []byte) (*Custom, error) {
	var config Custom
	err := toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	config.fill()
	err = config.Validate()
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Custom) fill() {
	if c.Output.Mode == "" {
		c.Output.Mode = ModeFraction
	}
	if c.Output.Scale == 0 {
		c.Output.Scale = DefaultScale
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate returns an error if a value is out of range.
func (c *Custom) Validate() error {
	switch c.Output.Mode {
	case ModeFraction, ModeFloat, ModeDecimal:
	default:
		return fmt.Errorf("invalid output mode %q", c.Output.Mode)
	}
	if c.Output.Scale < 0 || c.Output.Scale > MaxScale {
		return fmt.Errorf("output scale %v out of range [0, %v]", c.Output.Scale, MaxScale)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the configured log level.
// The configuration must have been validated.
func (c *Custom) LogLevel() logiface.Level {
	level, _ := ParseLevel(c.Log.Level)
	return level
}

// ParseLevel converts a level keyword such as "info" or "err" to a level.
func ParseLevel(s string) (logiface.Level, error) {
	switch s {
	case "disabled", "off":
		return logiface.LevelDisabled, nil
	case "err", "error":
		return logiface.LevelError, nil
	case "warning", "warn":
		return logiface.LevelWarning, nil
	case "notice":
		return logiface.LevelNotice, nil
	case "info":
		return logiface.LevelInformational, nil
	case "debug":
		return logiface.LevelDebug, nil
	case "trace":
		return logiface.LevelTrace, nil
	}
	return logiface.LevelDisabled, fmt.Errorf("invalid log level %q", s)
}
