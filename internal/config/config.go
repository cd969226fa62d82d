// Package config loads sirsim settings from YAML or TOML files and named
// presets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sirsim/internal/epidemic"
)

const (
	DefaultIntegrator  = "rk45"
	DefaultView        = "series"
	DefaultHorizon     = 200.0
	DefaultRtol        = 1e-6
	DefaultAtol        = 1e-9
	DefaultBetaStep    = 0.01
	DefaultPercentStep = 1.0
)

var (
	Integrators = []string{"euler", "rk4", "rk45"}
	Views       = []string{"series", "phase"}
)

type Config struct {
	Integrator string              `yaml:"integrator" toml:"integrator"`
	View       string              `yaml:"view" toml:"view"`
	Samples    int                 `yaml:"samples" toml:"samples"`
	Horizon    float64             `yaml:"horizon" toml:"horizon"`
	Tolerance  ToleranceConfig     `yaml:"tolerance" toml:"tolerance"`
	Params     epidemic.Parameters `yaml:"params" toml:"params"`
	Steps      StepConfig          `yaml:"steps" toml:"steps"`
}

type ToleranceConfig struct {
	Rtol float64 `yaml:"rtol" toml:"rtol"`
	Atol float64 `yaml:"atol" toml:"atol"`
}

// StepConfig holds slider increments.
type StepConfig struct {
	Beta    float64 `yaml:"beta" toml:"beta"`
	Percent float64 `yaml:"percent" toml:"percent"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		View:       DefaultView,
		Horizon:    DefaultHorizon,
		Tolerance: ToleranceConfig{
			Rtol: DefaultRtol,
			Atol: DefaultAtol,
		},
		Params: epidemic.DefaultParameters(),
		Steps: StepConfig{
			Beta:    DefaultBetaStep,
			Percent: DefaultPercentStep,
		},
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver decodes path on top of a copy of base. Keys absent from the file
// keep the base value. Files ending in .toml are read as TOML, anything else
// as YAML.
func LoadOver(path string, base *Config) (*Config, error) {
	cfg := base.Clone()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultOver reads the file at DefaultPath over base. A missing file is
// not an error.
func LoadDefaultOver(base *Config) (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base.Clone(), nil
		}
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}
	return LoadOver(path, base)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

func DefaultPath() string {
	return filepath.Join(XDGConfigHome(), "sirsim", "config.yaml")
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if !contains(Integrators, c.Integrator) {
		return fmt.Errorf("unknown integrator %q (want one of %s)", c.Integrator, strings.Join(Integrators, ", "))
	}
	if !contains(Views, c.View) {
		return fmt.Errorf("unknown view %q (want one of %s)", c.View, strings.Join(Views, ", "))
	}
	if c.Samples < 0 || c.Samples == 1 {
		return fmt.Errorf("samples must be 0 (strategy default) or at least 2, got %d", c.Samples)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %g", c.Horizon)
	}
	if c.Tolerance.Rtol <= 0 || c.Tolerance.Atol <= 0 {
		return fmt.Errorf("tolerances must be positive, got rtol=%g atol=%g", c.Tolerance.Rtol, c.Tolerance.Atol)
	}
	if c.Steps.Beta <= 0 || c.Steps.Percent <= 0 {
		return fmt.Errorf("slider steps must be positive, got beta=%g percent=%g", c.Steps.Beta, c.Steps.Percent)
	}
	// Params go through the same normalization as slider input.
	if err := c.Params.Normalize().Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
