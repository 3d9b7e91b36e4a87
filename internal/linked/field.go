// Package linked is the constellation variant of the background: larger
// particles joined by fading lines, with pointer interaction. It is
// configured declaratively with a particles.js style Config.
package linked

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/particlefield/internal/field"
)

const (
	defaultFPS = 60

	// repulse strength as in particles.js
	repulseVelocity = 100.0
	repulseMax      = 50.0

	springFrequency = 6.0
	springDamping   = 0.9
)

type particle struct {
	field.Particle
	// display offset eased by the spring, e.g. while repulsed
	ox, oy   float64
	vox, voy float64
}

type pointer struct {
	x, y   float64
	inside bool
}

// Field implements field.Effect.
type Field struct {
	cfg     Config
	surface field.Surface
	lines   field.LineSurface
	rng     *rand.Rand
	spring  harmonica.Spring

	fill     color.Color
	lineBase colorful.Color

	particles     []particle
	width, height int
	ratio         float64
	paused        bool
	pointer       pointer
}

type Option func(*Field)

// WithFPS sets the frame rate the easing spring is tuned for.
func WithFPS(fps int) Option {
	return func(f *Field) {
		if fps > 0 {
			f.spring = harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)
		}
	}
}

func New(surface field.Surface, cfg Config, rng *rand.Rand, opts ...Option) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("linked config: %w", err)
	}
	base, _ := colorful.Hex(cfg.Particles.Color.Value)
	f := &Field{
		cfg:     cfg,
		surface: surface,
		rng:     rng,
		spring:  harmonica.NewSpring(harmonica.FPS(defaultFPS), springFrequency, springDamping),
		fill:    withAlpha(base, cfg.Particles.Opacity.Value),
		ratio:   1,
	}
	f.lineBase = base
	if c, err := colorful.Hex(cfg.Particles.LineLinked.Color); err == nil {
		f.lineBase = c
	}
	if ls, ok := surface.(field.LineSurface); ok {
		f.lines = ls
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// SetPixelRatio scales sizes, speeds and distances when retina_detect is on.
// Takes effect on the next Init.
func (f *Field) SetPixelRatio(r float64) {
	if !f.cfg.RetinaDetect || r <= 0 {
		return
	}
	f.ratio = r
}

func (f *Field) Resize(width, height int) {
	f.width, f.height = width, height
	f.surface.SetSize(width, height)
}

func (f *Field) Init() {
	n := f.cfg.Particles.Number.Value
	f.particles = make([]particle, 0, n)
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, f.newParticle(
			f.rng.Float64()*float64(f.width),
			f.rng.Float64()*float64(f.height),
		))
	}
}

func (f *Field) newParticle(x, y float64) particle {
	// particles.js: velocity component in [-0.5, 0.5), scaled by speed/2
	speed := f.cfg.Particles.Move.Speed * f.ratio / 2
	return particle{Particle: field.Particle{
		X:      x,
		Y:      y,
		Size:   f.cfg.Particles.Size.Value * f.ratio,
		SpeedX: (f.rng.Float64() - 0.5) * speed,
		SpeedY: (f.rng.Float64() - 0.5) * speed,
	}}
}

func (f *Field) SetPaused(paused bool) { f.paused = paused }
func (f *Field) Paused() bool          { return f.paused }

// Len reports the current particle count, which changes with push/remove.
func (f *Field) Len() int { return len(f.particles) }

// positions returns the drawn position of every particle.
func (f *Field) positions() [][2]float64 {
	out := make([][2]float64, len(f.particles))
	for i, p := range f.particles {
		out[i] = [2]float64{p.X + p.ox, p.Y + p.oy}
	}
	return out
}

// Pointer reports the pointer position in surface coordinates. With
// detect_on canvas a position off the surface counts as leaving it.
func (f *Field) Pointer(x, y float64) {
	if !f.detects(x, y) {
		f.PointerLeave()
		return
	}
	f.pointer = pointer{x: x, y: y, inside: true}
}

func (f *Field) PointerLeave() {
	f.pointer.inside = false
}

// Click applies the configured click mode at (x, y).
func (f *Field) Click(x, y float64) {
	ev := f.cfg.Interactivity.Events.OnClick
	if !ev.Enable || !f.detects(x, y) {
		return
	}
	switch ev.Mode {
	case ModePush:
		x, y = field.Wrap(x, float64(f.width)), field.Wrap(y, float64(f.height))
		for i := 0; i < f.cfg.Interactivity.Modes.Push.ParticlesNb; i++ {
			f.particles = append(f.particles, f.newParticle(x, y))
		}
	case ModeRemove:
		n := f.cfg.Interactivity.Modes.Remove.ParticlesNb
		if n > len(f.particles) {
			n = len(f.particles)
		}
		f.particles = f.particles[n:]
	}
}

// detects reports whether an event at (x, y) reaches the field.
func (f *Field) detects(x, y float64) bool {
	if f.cfg.Interactivity.DetectOn != DetectCanvas {
		return true
	}
	return x >= 0 && y >= 0 && x < float64(f.width) && y < float64(f.height)
}

func (f *Field) Frame() {
	if f.paused {
		return
	}
	f.surface.Clear()

	w, h := float64(f.width), float64(f.height)
	move := f.cfg.Particles.Move.Enable
	for i := range f.particles {
		p := &f.particles[i]
		if move {
			p.X = field.Wrap(p.X+p.SpeedX, w)
			p.Y = field.Wrap(p.Y+p.SpeedY, h)
		}
		tx, ty := f.repulse(p)
		p.ox, p.vox = f.spring.Update(p.ox, p.vox, tx)
		p.oy, p.voy = f.spring.Update(p.oy, p.voy, ty)
	}

	if f.lines != nil && f.cfg.Particles.LineLinked.Enable {
		f.link()
	}
	if f.lines != nil && f.hovering(ModeGrab) {
		f.grab()
	}
	for _, p := range f.particles {
		f.surface.FillCircle(p.X+p.ox, p.Y+p.oy, p.Size, f.fill)
	}
}

func (f *Field) hovering(mode string) bool {
	ev := f.cfg.Interactivity.Events.OnHover
	return f.pointer.inside && ev.Enable && ev.Mode == mode
}

// repulse returns the target display offset pushing p away from the pointer.
func (f *Field) repulse(p *particle) (float64, float64) {
	if !f.hovering(ModeRepulse) {
		return 0, 0
	}
	radius := f.cfg.Interactivity.Modes.Repulse.Distance * f.ratio
	dx, dy := p.X-f.pointer.x, p.Y-f.pointer.y
	dist := math.Hypot(dx, dy)
	if dist >= radius || dist == 0 {
		return 0, 0
	}
	d := dist / radius
	factor := math.Min(math.Max((1-d*d)*repulseVelocity, 0), repulseMax)
	return dx / dist * factor, dy / dist * factor
}

func (f *Field) link() {
	ll := f.cfg.Particles.LineLinked
	maxDist := ll.Distance * f.ratio
	for i := range f.particles {
		a := &f.particles[i]
		ax, ay := a.X+a.ox, a.Y+a.oy
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			bx, by := b.X+b.ox, b.Y+b.oy
			dist := math.Hypot(ax-bx, ay-by)
			if dist > maxDist {
				continue
			}
			alpha := ll.Opacity * (1 - dist/maxDist)
			if alpha <= 0 {
				continue
			}
			f.lines.StrokeLine(ax, ay, bx, by, ll.Width*f.ratio, withAlpha(f.lineBase, alpha))
		}
	}
}

func (f *Field) grab() {
	g := f.cfg.Interactivity.Modes.Grab
	maxDist := g.Distance * f.ratio
	for _, p := range f.particles {
		px, py := p.X+p.ox, p.Y+p.oy
		dist := math.Hypot(px-f.pointer.x, py-f.pointer.y)
		if dist > maxDist {
			continue
		}
		alpha := g.LineLinked.Opacity * (1 - dist/maxDist)
		f.lines.StrokeLine(f.pointer.x, f.pointer.y, px, py, f.cfg.Particles.LineLinked.Width*f.ratio, withAlpha(f.lineBase, alpha))
	}
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))}
}
