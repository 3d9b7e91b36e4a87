package config

import (
	"errors"
	"sort"

	"github.com/san-kum/particlefield/internal/linked"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Presets tweak DefaultConfig; GetPreset always returns a fresh copy.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"calm": func(c *Config) {
		c.FPS = 30
		c.Field.Opacity = 0.3
	},
	"ember": func(c *Config) {
		c.Field.Fill = "#ff8844"
		c.Field.Opacity = 0.6
		c.Theme = "sunset"
	},
	"constellation": func(c *Config) {
		c.Effect = EffectLinked
	},
	"dense-links": func(c *Config) {
		c.Effect = EffectLinked
		c.Linked.Particles.Number.Value = 90
		c.Linked.Particles.Size.Value = 2
		c.Linked.Particles.LineLinked.Distance = 110
		c.Linked.Interactivity.Events.OnHover.Mode = linked.ModeGrab
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
