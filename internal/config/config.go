package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/qmlab/internal/units"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTopic     = "debroglie"
	DefaultPrecision = 6
	DefaultPoints    = 100
	DefaultTheme     = "science"
	MaxPrecision     = 16
)

// ErrInvalidConfig indicates a config value outside its valid range.
var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Topic     string `yaml:"topic"`
	Target    string `yaml:"target,omitempty"`
	Precision int    `yaml:"precision"`
	Points    int    `yaml:"points"`
	Theme     string `yaml:"theme"`
	// Units maps an input field to the display unit its editor starts in.
	Units map[string]string `yaml:"units,omitempty"`
	// Inputs maps an input field to its starting value in SI units.
	Inputs map[string]float64 `yaml:"inputs,omitempty"`
	// ExtraUnits adds to or overrides the built-in conversion table.
	ExtraUnits map[units.Kind][]units.Unit `yaml:"extra_units,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Topic:     DefaultTopic,
		Precision: DefaultPrecision,
		Points:    DefaultPoints,
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Precision < 1 || c.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d not in [1, %d]", ErrInvalidConfig, c.Precision, MaxPrecision)
	}
	if c.Points < 2 {
		return fmt.Errorf("%w: points %d below 2", ErrInvalidConfig, c.Points)
	}
	if _, err := c.Table(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Table returns the built-in conversion table merged with ExtraUnits.
func (c *Config) Table() (units.Table, error) {
	if len(c.ExtraUnits) == 0 {
		return units.Default(), nil
	}
	return units.Default().Merge(units.Table(c.ExtraUnits))
}

// Apply overlays the non-zero fields of other onto c.
func (c *Config) Apply(other *Config) {
	if other == nil {
		return
	}
	if other.Topic != "" {
		c.Topic = other.Topic
	}
	if other.Target != "" {
		c.Target = other.Target
	}
	if other.Precision != 0 {
		c.Precision = other.Precision
	}
	if other.Points != 0 {
		c.Points = other.Points
	}
	if other.Theme != "" {
		c.Theme = other.Theme
	}
	for k, v := range other.Units {
		if c.Units == nil {
			c.Units = make(map[string]string)
		}
		c.Units[k] = v
	}
	for k, v := range other.Inputs {
		if c.Inputs == nil {
			c.Inputs = make(map[string]float64)
		}
		c.Inputs[k] = v
	}
	for k, v := range other.ExtraUnits {
		if c.ExtraUnits == nil {
			c.ExtraUnits = make(map[units.Kind][]units.Unit)
		}
		c.ExtraUnits[k] = append(c.ExtraUnits[k], v...)
	}
}
