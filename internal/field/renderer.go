package field

import (
	"image/color"
	"math/rand"
)

// DefaultFill is white at half opacity, non-premultiplied.
var DefaultFill = color.NRGBA{R: 255, G: 255, B: 255, A: 128}

type Option func(*Renderer)

func WithFill(c color.Color) Option {
	return func(r *Renderer) { r.fill = c }
}

// Renderer keeps the particle collection in step with the surface size.
type Renderer struct {
	surface       Surface
	rng           *rand.Rand
	fill          color.Color
	particles     []Particle
	width, height int
	paused        bool
}

func New(surface Surface, rng *rand.Rand, opts ...Option) *Renderer {
	r := &Renderer{
		surface: surface,
		rng:     rng,
		fill:    DefaultFill,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resize changes the surface dimensions. Callers follow up with Init to
// repopulate for the new bounds.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.surface.SetSize(width, height)
}

// Init discards the current particles and generates CountFor(width) new ones.
func (r *Renderer) Init() {
	n := CountFor(r.width)
	w, h := float64(r.width), float64(r.height)
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = NewParticle(w, h, r.rng)
	}
	r.particles = particles
}

// Update moves p by its velocity and wraps it to the opposite edge when it
// leaves the surface.
func (r *Renderer) Update(p *Particle) {
	p.X = Wrap(p.X+p.SpeedX, float64(r.width))
	p.Y = Wrap(p.Y+p.SpeedY, float64(r.height))
}

func (r *Renderer) Draw(p *Particle) {
	r.surface.FillCircle(p.X, p.Y, p.Size, r.fill)
}

// Frame renders one frame. While paused it does nothing.
func (r *Renderer) Frame() {
	if r.paused {
		return
	}
	r.surface.Clear()
	for i := range r.particles {
		r.Update(&r.particles[i])
		r.Draw(&r.particles[i])
	}
}

func (r *Renderer) SetPaused(paused bool) { r.paused = paused }
func (r *Renderer) Paused() bool          { return r.paused }

func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Particles exposes the live collection; callers must not retain it across Init.
func (r *Renderer) Particles() []Particle { return r.particles }
