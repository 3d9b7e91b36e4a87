package term

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/host"
	"github.com/san-kum/particlefield/internal/loop"
)

const (
	defaultCols = 80
	defaultRows = 24
)

// Env is the terminal as seen by host.Mount. The real size arrives later
// through the first tea.WindowSizeMsg.
type Env struct {
	Canvas  *Canvas
	Queue   *loop.Queue
	Reduced bool

	// IsTerminal reports whether output goes to a terminal; defaults to stdout.
	IsTerminal func() bool
}

func NewEnv(canvas *Canvas, reduced bool) *Env {
	return &Env{
		Canvas:     canvas,
		Queue:      loop.NewQueue(),
		Reduced:    reduced,
		IsTerminal: stdoutIsTerminal,
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (e *Env) Viewport() (int, int) {
	if e.Canvas != nil && e.Canvas.Cols > 0 && e.Canvas.Rows > 0 {
		return e.Canvas.Cols * 2, e.Canvas.Rows * 4
	}
	return defaultCols * 2, defaultRows * 4
}

func (e *Env) PrefersReducedMotion() bool { return e.Reduced }

func (e *Env) AcquireSurface() (field.Surface, error) {
	if e.Canvas == nil || (e.IsTerminal != nil && !e.IsTerminal()) {
		return nil, host.ErrNoSurface
	}
	return e.Canvas, nil
}

func (e *Env) Scheduler() loop.Scheduler { return e.Queue }
