package config

import (
	"sort"

	"github.com/san-kum/sirsim/internal/epidemic"
)

// Preset is a named starting scenario.
type Preset struct {
	Description string
	Config      *Config
}

func preset(desc string, p epidemic.Parameters, tweak func(*Config)) Preset {
	cfg := DefaultConfig()
	cfg.Params = p
	if tweak != nil {
		tweak(cfg)
	}
	return Preset{Description: desc, Config: cfg}
}

var Presets = map[string]Preset{
	"default": preset("β=0.25, 10% infected, 90% susceptible",
		epidemic.DefaultParameters(), nil),
	"fast": preset("aggressive spread, R0=6",
		epidemic.Parameters{Beta: 0.6, I0: 1, S0: 99}, nil),
	"slow": preset("slow spread, R0=1.5",
		epidemic.Parameters{Beta: 0.15, I0: 5, S0: 95}, nil),
	"contained": preset("R0 below one, the outbreak dies out",
		epidemic.Parameters{Beta: 0.08, I0: 20, S0: 80}, nil),
	"herd": preset("60% already immune",
		epidemic.Parameters{Beta: 0.3, I0: 2, S0: 38}, nil),
	"legacy": preset("unit-step Euler on days 0..200",
		epidemic.DefaultParameters(), func(c *Config) { c.Integrator = "euler" }),
}

// GetPreset returns a copy of the named preset's config, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Config.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
