package linked

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Config follows the layout of a particles.js configuration object so
// existing configs can be pasted into YAML unchanged.
type Config struct {
	Particles     ParticlesConfig     `yaml:"particles"`
	Interactivity InteractivityConfig `yaml:"interactivity"`
	RetinaDetect  bool                `yaml:"retina_detect"`
}

type ParticlesConfig struct {
	Number     IntValue    `yaml:"number"`
	Color      StringValue `yaml:"color"`
	Shape      ShapeConfig `yaml:"shape"`
	Opacity    FloatValue  `yaml:"opacity"`
	Size       FloatValue  `yaml:"size"`
	LineLinked LineConfig  `yaml:"line_linked"`
	Move       MoveConfig  `yaml:"move"`
}

type IntValue struct {
	Value int `yaml:"value"`
}

type FloatValue struct {
	Value float64 `yaml:"value"`
}

type StringValue struct {
	Value string `yaml:"value"`
}

type ShapeConfig struct {
	Type string `yaml:"type"`
}

type LineConfig struct {
	Enable   bool    `yaml:"enable"`
	Distance float64 `yaml:"distance"`
	Color    string  `yaml:"color"`
	Opacity  float64 `yaml:"opacity"`
	Width    float64 `yaml:"width"`
}

type MoveConfig struct {
	Enable bool    `yaml:"enable"`
	Speed  float64 `yaml:"speed"`
}

type InteractivityConfig struct {
	DetectOn string       `yaml:"detect_on"`
	Events   EventsConfig `yaml:"events"`
	Modes    ModesConfig  `yaml:"modes"`
}

type EventsConfig struct {
	OnHover EventConfig `yaml:"onhover"`
	OnClick EventConfig `yaml:"onclick"`
}

type EventConfig struct {
	Enable bool   `yaml:"enable"`
	Mode   string `yaml:"mode"`
}

type ModesConfig struct {
	Repulse DistanceMode `yaml:"repulse"`
	Grab    GrabMode     `yaml:"grab"`
	Push    CountMode    `yaml:"push"`
	Remove  CountMode    `yaml:"remove"`
}

type DistanceMode struct {
	Distance float64 `yaml:"distance"`
}

type GrabMode struct {
	Distance   float64 `yaml:"distance"`
	LineLinked struct {
		Opacity float64 `yaml:"opacity"`
	} `yaml:"line_linked"`
}

type CountMode struct {
	ParticlesNb int `yaml:"particles_nb"`
}

const (
	ShapeCircle = "circle"

	ModeRepulse = "repulse"
	ModeGrab    = "grab"
	ModePush    = "push"
	ModeRemove  = "remove"

	DetectCanvas = "canvas"
	DetectWindow = "window"
)

func DefaultConfig() Config {
	cfg := Config{
		Particles: ParticlesConfig{
			Number:  IntValue{Value: 50},
			Color:   StringValue{Value: "#00acc1"},
			Shape:   ShapeConfig{Type: ShapeCircle},
			Opacity: FloatValue{Value: 0.5},
			Size:    FloatValue{Value: 3},
			LineLinked: LineConfig{
				Enable:   true,
				Distance: 150,
				Color:    "#00acc1",
				Opacity:  0.4,
				Width:    1,
			},
			Move: MoveConfig{Enable: true, Speed: 2},
		},
		Interactivity: InteractivityConfig{
			DetectOn: DetectCanvas,
			Events: EventsConfig{
				OnHover: EventConfig{Enable: true, Mode: ModeRepulse},
				OnClick: EventConfig{Enable: true, Mode: ModePush},
			},
			Modes: ModesConfig{
				Repulse: DistanceMode{Distance: 100},
				Grab:    GrabMode{Distance: 140},
				Push:    CountMode{ParticlesNb: 4},
				Remove:  CountMode{ParticlesNb: 2},
			},
		},
		RetinaDetect: true,
	}
	cfg.Interactivity.Modes.Grab.LineLinked.Opacity = 1
	return cfg
}

func (c Config) Validate() error {
	p := c.Particles
	if p.Number.Value <= 0 {
		return fmt.Errorf("particles.number.value must be positive, got %d", p.Number.Value)
	}
	if p.Shape.Type != ShapeCircle {
		return fmt.Errorf("unsupported shape: %q", p.Shape.Type)
	}
	if p.Size.Value <= 0 {
		return fmt.Errorf("particles.size.value must be positive, got %g", p.Size.Value)
	}
	if p.Opacity.Value < 0 || p.Opacity.Value > 1 {
		return fmt.Errorf("particles.opacity.value must be within [0, 1], got %g", p.Opacity.Value)
	}
	if _, err := colorful.Hex(p.Color.Value); err != nil {
		return fmt.Errorf("particles.color.value: %w", err)
	}
	if p.LineLinked.Enable {
		if _, err := colorful.Hex(p.LineLinked.Color); err != nil {
			return fmt.Errorf("particles.line_linked.color: %w", err)
		}
		if p.LineLinked.Distance <= 0 {
			return fmt.Errorf("particles.line_linked.distance must be positive, got %g", p.LineLinked.Distance)
		}
	}

	in := c.Interactivity
	switch in.DetectOn {
	case DetectCanvas, DetectWindow:
	default:
		return fmt.Errorf("unsupported interactivity.detect_on: %q", in.DetectOn)
	}
	if in.Events.OnHover.Enable {
		switch in.Events.OnHover.Mode {
		case ModeRepulse:
			if in.Modes.Repulse.Distance <= 0 {
				return fmt.Errorf("interactivity.modes.repulse.distance must be positive, got %g", in.Modes.Repulse.Distance)
			}
		case ModeGrab:
			if in.Modes.Grab.Distance <= 0 {
				return fmt.Errorf("interactivity.modes.grab.distance must be positive, got %g", in.Modes.Grab.Distance)
			}
		default:
			return fmt.Errorf("unsupported onhover mode: %q", in.Events.OnHover.Mode)
		}
	}
	if in.Events.OnClick.Enable {
		switch in.Events.OnClick.Mode {
		case ModePush, ModeRemove:
		default:
			return fmt.Errorf("unsupported onclick mode: %q", in.Events.OnClick.Mode)
		}
	}
	return nil
}
