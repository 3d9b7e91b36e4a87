package config

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlefield/internal/linked"
)

const (
	EffectField  = "field"
	EffectLinked = "linked"

	DefaultFPS     = 60
	DefaultFill    = "#ffffff"
	DefaultOpacity = 0.5
	DefaultTheme   = "night"
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultTitle   = "particlefield"
)

type Config struct {
	Effect        string        `yaml:"effect"`
	FPS           int           `yaml:"fps"`
	Seed          int64         `yaml:"seed"`
	Theme         string        `yaml:"theme"`
	ReducedMotion bool          `yaml:"reduced_motion"`
	Field         FieldConfig   `yaml:"field"`
	Linked        linked.Config `yaml:"linked"`
	Window        WindowConfig  `yaml:"window"`
}

type FieldConfig struct {
	Fill    string  `yaml:"fill"`
	Opacity float64 `yaml:"opacity"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect: EffectField,
		FPS:    DefaultFPS,
		Theme:  DefaultTheme,
		Field: FieldConfig{
			Fill:    DefaultFill,
			Opacity: DefaultOpacity,
		},
		Linked: linked.DefaultConfig(),
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg; keys absent from the file
// keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Effect {
	case EffectField:
		if _, err := c.FillColor(); err != nil {
			return err
		}
	case EffectLinked:
		if err := c.Linked.Validate(); err != nil {
			return fmt.Errorf("linked: %w", err)
		}
	default:
		return fmt.Errorf("unknown effect: %s (available: %v)", c.Effect, Effects())
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// FillColor is the classic field's particle colour with its opacity applied.
func (c *Config) FillColor() (color.NRGBA, error) {
	col, err := colorful.Hex(c.Field.Fill)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("field.fill: %w", err)
	}
	if c.Field.Opacity < 0 || c.Field.Opacity > 1 {
		return color.NRGBA{}, fmt.Errorf("field.opacity must be within [0, 1], got %g", c.Field.Opacity)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.Field.Opacity * 255))}, nil
}

func Effects() []string {
	return []string{EffectField, EffectLinked}
}
