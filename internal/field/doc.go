// Package field implements the drifting particle background.
//
// A [Renderer] owns a fixed set of [Particle] values sized to the viewport
// and paints them onto a [Surface] once per frame:
//
//   - [CountFor]: viewport width tiers (30, 60, 100 particles)
//   - [NewParticle]: random position, size and velocity from an injected source
//   - [Renderer.Frame]: clear, advance and draw unless paused
//
// Particles wrap around the surface edges instead of bouncing, so every
// coordinate stays inside [0, width) × [0, height).
//
// The renderer never schedules itself. Drive it with a loop.Loop:
//
//	r := field.New(surface, rand.New(rand.NewSource(seed)))
//	r.Resize(w, h)
//	r.Init()
//	l := loop.New(sched, r.Frame)
//	l.Start()
package field
