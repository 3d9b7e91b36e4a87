// Package host wires an effect to its environment: viewport size,
// visibility, the reduced-motion preference and the frame scheduler.
//
// Startup never fails. A missing surface or a reduced-motion preference
// leaves the background inactive, and every handler becomes a no-op.
package host

import (
	"errors"
	"log"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/loop"
)

var ErrNoSurface = errors.New("render surface unavailable")

// Env is what a host platform provides to the background.
type Env interface {
	Viewport() (width, height int)
	PrefersReducedMotion() bool
	AcquireSurface() (field.Surface, error)
	Scheduler() loop.Scheduler
}

// Hideable surfaces can be taken off screen entirely.
type Hideable interface {
	SetVisible(visible bool)
}

// Builder creates the effect that will draw on the acquired surface.
type Builder func(field.Surface) (field.Effect, error)

type Background struct {
	effect field.Effect
	loop   *loop.Loop
}

// Mount runs the one-time startup sequence and returns the background.
func Mount(env Env, build Builder) *Background {
	if env.PrefersReducedMotion() {
		if s, err := env.AcquireSurface(); err == nil {
			if h, ok := s.(Hideable); ok {
				h.SetVisible(false)
			}
		}
		log.Println("host: reduced motion preferred, background disabled")
		return &Background{}
	}

	s, err := env.AcquireSurface()
	if err != nil {
		log.Printf("host: %v, background disabled", err)
		return &Background{}
	}

	effect, err := build(s)
	if err != nil {
		log.Printf("host: build effect: %v, background disabled", err)
		return &Background{}
	}

	w, h := env.Viewport()
	effect.Resize(w, h)
	effect.Init()

	b := &Background{
		effect: effect,
		loop:   loop.New(env.Scheduler(), effect.Frame),
	}
	b.loop.Start()
	return b
}

func (b *Background) Active() bool { return b.effect != nil }

// Effect returns the running effect, or nil when inactive.
func (b *Background) Effect() field.Effect { return b.effect }

// Resize matches the surface to the new viewport and regenerates particles.
func (b *Background) Resize(width, height int) {
	if b.effect == nil {
		return
	}
	b.effect.Resize(width, height)
	b.effect.Init()
}

// SetHidden pauses drawing while the page is hidden. Frames keep being
// scheduled either way.
func (b *Background) SetHidden(hidden bool) {
	if b.effect == nil {
		return
	}
	b.effect.SetPaused(hidden)
}

func (b *Background) Stop() {
	if b.loop != nil {
		b.loop.Stop()
	}
}

// Frames reports how many frames the loop has run.
func (b *Background) Frames() uint64 {
	if b.loop == nil {
		return 0
	}
	return b.loop.Frames()
}
