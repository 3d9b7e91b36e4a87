// Package window hosts the particle background in a desktop window using
// raylib. Each loop iteration is one display frame: pending frame requests
// are flushed between BeginDrawing and EndDrawing.
package window

import (
	"context"
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/host"
	"github.com/san-kum/particlefield/internal/loop"
)

var (
	ColBg      = rl.NewColor(10, 10, 18, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// Surface draws straight into the current raylib frame.
type Surface struct {
	Width, Height int
}

func (s *Surface) SetSize(width, height int) { s.Width, s.Height = width, height }

func (s *Surface) Clear() { rl.ClearBackground(ColBg) }

func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toRL(c))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), toRL(c))
}

func toRL(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

// Env opens the window lazily, on the first surface request.
type Env struct {
	cfg     *config.Config
	reduced bool
	surface *Surface
	queue   *loop.Queue
	opened  bool
}

func NewEnv(cfg *config.Config, reduced bool) *Env {
	return &Env{cfg: cfg, reduced: reduced, queue: loop.NewQueue()}
}

func (e *Env) Viewport() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (e *Env) PrefersReducedMotion() bool { return e.reduced }

func (e *Env) AcquireSurface() (field.Surface, error) {
	// a window that was never opened is already hidden
	if e.reduced {
		return nil, host.ErrNoSurface
	}
	if !e.opened {
		initWindow(e.cfg)
		e.opened = true
	}
	if !rl.IsWindowReady() {
		return nil, host.ErrNoSurface
	}
	if e.surface == nil {
		e.surface = &Surface{}
	}
	return e.surface, nil
}

func (e *Env) Scheduler() loop.Scheduler { return e.queue }

// initWindow opens a resizable window and sets the target frame rate.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// effectBuilder builds the effect at a pixel ratio of 1: with
// FlagWindowHighdpi raylib already works in logical coordinates.
func effectBuilder(cfg *config.Config) host.Builder {
	return host.EffectBuilder(cfg, 1)
}

type App struct {
	env     *Env
	bg      *host.Background
	hidden  bool
	showFPS bool
	quit    bool
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg *config.Config, reduced bool) error {
	env := NewEnv(cfg, reduced)
	bg := host.Mount(env, effectBuilder(cfg))
	if env.opened {
		defer rl.CloseWindow()
	}
	if !bg.Active() {
		return nil
	}
	defer bg.Stop()

	app := &App{env: env, bg: bg}
	app.RunLoop(ctx)
	return nil
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && !a.quit && ctx.Err() == nil {
		a.Update()
		a.Draw()
	}
}

// Update forwards window events to the background.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.showFPS = !a.showFPS
	}

	if rl.IsWindowResized() {
		a.bg.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	hidden := rl.IsWindowMinimized() || rl.IsWindowHidden()
	if hidden != a.hidden {
		a.hidden = hidden
		a.bg.SetHidden(hidden)
	}

	in, ok := a.bg.Effect().(host.Interactive)
	if !ok {
		return
	}
	if !rl.IsCursorOnScreen() {
		in.PointerLeave()
		return
	}
	pos := rl.GetMousePosition()
	in.Pointer(float64(pos.X), float64(pos.Y))
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		in.Click(float64(pos.X), float64(pos.Y))
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.env.queue.Flush()
	if a.showFPS {
		rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, 10, 14, ColTextDim)
	}
	rl.EndDrawing()
}
