package host

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/loop"
	"github.com/san-kum/particlefield/internal/surface"
)

var (
	_ field.LineSurface = (*surface.Recorder)(nil)
	_ Hideable          = (*surface.Recorder)(nil)
)

type fakeEnv struct {
	width, height int
	reduced       bool
	surface       *surface.Recorder
	queue         *loop.Queue
}

func (e *fakeEnv) Viewport() (int, int)       { return e.width, e.height }
func (e *fakeEnv) PrefersReducedMotion() bool { return e.reduced }
func (e *fakeEnv) Scheduler() loop.Scheduler  { return e.queue }

func (e *fakeEnv) AcquireSurface() (field.Surface, error) {
	if e.surface == nil {
		return nil, ErrNoSurface
	}
	return e.surface, nil
}

// spyEffect records lifecycle calls on top of a real renderer.
type spyEffect struct {
	*field.Renderer
	inits, frames int
}

func (s *spyEffect) Init()  { s.inits++; s.Renderer.Init() }
func (s *spyEffect) Frame() { s.frames++; s.Renderer.Frame() }

var _ = Describe("Mount", func() {
	var (
		env    *fakeEnv
		spy    *spyEffect
		builds int
		build  Builder
	)

	BeforeEach(func() {
		env = &fakeEnv{
			width:   500,
			height:  500,
			surface: surface.NewRecorder(),
			queue:   loop.NewQueue(),
		}
		spy = nil
		builds = 0
		build = func(s field.Surface) (field.Effect, error) {
			builds++
			spy = &spyEffect{Renderer: field.New(s, rand.New(rand.NewSource(3)))}
			return spy, nil
		}
	})

	It("sizes the surface, populates particles and starts the loop", func() {
		b := Mount(env, build)

		Expect(b.Active()).To(BeTrue())
		Expect(env.surface.Width).To(Equal(500))
		Expect(env.surface.Height).To(Equal(500))
		Expect(spy.Particles()).To(HaveLen(30))
		Expect(spy.inits).To(Equal(1))
		Expect(env.queue.Len()).To(Equal(1))

		env.queue.Flush()
		Expect(spy.frames).To(Equal(1))
		Expect(env.surface.Circles).To(HaveLen(30))
	})

	Context("when reduced motion is preferred", func() {
		BeforeEach(func() {
			env.reduced = true
		})

		It("hides the surface and never initializes or animates", func() {
			b := Mount(env, build)

			Expect(b.Active()).To(BeFalse())
			Expect(b.Effect()).To(BeNil())
			Expect(env.surface.Visible).To(BeFalse())
			Expect(builds).To(BeZero())
			Expect(env.queue.Len()).To(BeZero())
			Expect(env.surface.Resizes).To(BeZero())
		})

		It("ignores later resize and visibility signals", func() {
			b := Mount(env, build)
			b.Resize(1200, 800)
			b.SetHidden(false)
			b.Stop()

			Expect(builds).To(BeZero())
			Expect(b.Frames()).To(BeZero())
		})
	})

	Context("when the surface is missing", func() {
		BeforeEach(func() {
			env.surface = nil
		})

		It("degrades to a no-op", func() {
			b := Mount(env, build)

			Expect(b.Active()).To(BeFalse())
			Expect(builds).To(BeZero())
			Expect(env.queue.Len()).To(BeZero())
			Expect(func() {
				b.Resize(100, 100)
				b.SetHidden(true)
				b.Stop()
			}).NotTo(Panic())
		})
	})

	It("stays inactive when the effect cannot be built", func() {
		b := Mount(env, func(field.Surface) (field.Effect, error) {
			return nil, ErrNoSurface
		})
		Expect(b.Active()).To(BeFalse())
		Expect(env.queue.Len()).To(BeZero())
	})

	Describe("Resize", func() {
		It("regenerates particles for the new viewport", func() {
			b := Mount(env, build)
			env.queue.Flush()

			b.Resize(1200, 800)

			Expect(spy.Particles()).To(HaveLen(100))
			Expect(env.surface.Width).To(Equal(1200))
			Expect(env.surface.Height).To(Equal(800))
			for _, p := range spy.Particles() {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<", 1200))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<", 800))
			}

			env.queue.Flush()
			Expect(env.surface.Circles).To(HaveLen(100))
		})
	})

	Describe("SetHidden", func() {
		It("skips drawing while hidden but keeps scheduling", func() {
			b := Mount(env, build)
			env.queue.Flush()
			clears := env.surface.Clears

			b.SetHidden(true)
			env.queue.Flush()
			env.queue.Flush()

			Expect(env.surface.Clears).To(Equal(clears))
			Expect(spy.frames).To(Equal(3))
			Expect(env.queue.Len()).To(Equal(1))

			b.SetHidden(false)
			env.queue.Flush()
			Expect(env.surface.Clears).To(Equal(clears + 1))
		})
	})

	Describe("Stop", func() {
		It("ends the frame chain", func() {
			b := Mount(env, build)
			env.queue.Flush()
			b.Stop()

			Expect(env.queue.Flush()).To(BeZero())
			Expect(b.Frames()).To(Equal(uint64(1)))
		})
	})
})

var _ = Describe("ReducedMotion", func() {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		}
	}

	It("honours the explicit flag", func() {
		Expect(ReducedMotion(true, nil)).To(BeTrue())
	})

	It("reads truthy environment values", func() {
		Expect(ReducedMotion(false, env(map[string]string{"PREFERS_REDUCED_MOTION": "reduce"}))).To(BeTrue())
		Expect(ReducedMotion(false, env(map[string]string{"REDUCED_MOTION": " TRUE "}))).To(BeTrue())
	})

	It("ignores unset or falsy values", func() {
		Expect(ReducedMotion(false, nil)).To(BeFalse())
		Expect(ReducedMotion(false, env(nil))).To(BeFalse())
		Expect(ReducedMotion(false, env(map[string]string{"REDUCED_MOTION": "0"}))).To(BeFalse())
		Expect(ReducedMotion(false, env(map[string]string{"PREFERS_REDUCED_MOTION": "no-preference"}))).To(BeFalse())
	})
})
