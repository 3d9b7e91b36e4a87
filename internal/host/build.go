package host

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/linked"
)

// Interactive effects react to the pointer.
type Interactive interface {
	Pointer(x, y float64)
	PointerLeave()
	Click(x, y float64)
}

// EffectBuilder returns a Builder for the effect selected in cfg. ratio is
// the device pixel ratio, used by the linked effect's retina_detect.
func EffectBuilder(cfg *config.Config, ratio float64) Builder {
	return func(s field.Surface) (field.Effect, error) {
		rng := rand.New(rand.NewSource(Seed(cfg)))
		switch cfg.Effect {
		case config.EffectField:
			fill, err := cfg.FillColor()
			if err != nil {
				return nil, err
			}
			return field.New(s, rng, field.WithFill(fill)), nil
		case config.EffectLinked:
			f, err := linked.New(s, cfg.Linked, rng, linked.WithFPS(cfg.FPS))
			if err != nil {
				return nil, err
			}
			f.SetPixelRatio(ratio)
			return f, nil
		default:
			return nil, fmt.Errorf("unknown effect: %s", cfg.Effect)
		}
	}
}

// Seed is the configured seed, or the current time when unset.
func Seed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}
