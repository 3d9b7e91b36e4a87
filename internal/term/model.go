package term

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/host"
)

// frameMsg is the terminal's repaint signal.
type frameMsg time.Time

var (
	statusRunning = lipgloss.NewStyle().Bold(true)
	statusPaused  = lipgloss.NewStyle().Bold(true)
	keyHint       = lipgloss.NewStyle().Italic(true)
)

// Model hosts a background in a bubbletea program.
type Model struct {
	env      *Env
	bg       *host.Background
	interval time.Duration
	name     string

	cols, rows int
	showHelp   bool
}

func NewModel(env *Env, bg *host.Background, fps int, name string) Model {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return Model{
		env:      env,
		bg:       bg,
		interval: time.Second / time.Duration(fps),
		name:     name,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.bg.Active() {
		return nil
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles viewport, visibility and pointer events and runs frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.bg.Stop()
			return m, tea.Quit
		case "t":
			m.env.Canvas.SetTheme(NextTheme(m.env.Canvas.Theme()))
		case "?":
			m.showHelp = !m.showHelp
			m.resize()
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.resize()
	case tea.FocusMsg:
		m.bg.SetHidden(false)
	case tea.BlurMsg:
		m.bg.SetHidden(true)
		if in, ok := m.bg.Effect().(host.Interactive); ok {
			in.PointerLeave()
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case frameMsg:
		m.env.Queue.Flush()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize() {
	rows := m.rows
	if m.showHelp {
		rows--
	}
	if rows < 0 {
		rows = 0
	}
	m.bg.Resize(m.cols*2, rows*4)
}

func (m *Model) mouse(msg tea.MouseMsg) {
	in, ok := m.bg.Effect().(host.Interactive)
	if !ok {
		return
	}
	// centre of the cell in sub-pixels
	x, y := float64(msg.X*2+1), float64(msg.Y*4+2)
	switch msg.Action {
	case tea.MouseActionMotion:
		in.Pointer(x, y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			in.Click(x, y)
		}
	}
}

func (m Model) View() string {
	if !m.bg.Active() || !m.env.Canvas.Visible() {
		return ""
	}
	view := m.env.Canvas.String()
	if !m.showHelp {
		return view
	}
	return view + "\n" + m.status()
}

func (m Model) status() string {
	theme := m.env.Canvas.Theme()
	state := statusRunning.Foreground(theme.Accent).Render("RUNNING")
	if e := m.bg.Effect(); e != nil && e.Paused() {
		state = statusPaused.Foreground(theme.Warning).Render("PAUSED")
	}
	var s strings.Builder
	s.WriteString(fmt.Sprintf("%s  %s  frame %d  ", strings.ToUpper(m.name), state, m.bg.Frames()))
	s.WriteString(keyHint.Foreground(theme.Muted).Render("[t] theme  [?] help  [q] quit"))
	return s.String()
}

// Run mounts the configured effect on the terminal and blocks until the
// user quits or ctx is done. An inactive background returns immediately.
func Run(ctx context.Context, cfg *config.Config, reduced bool) error {
	canvas := NewCanvas(defaultCols, defaultRows, GetTheme(cfg.Theme))
	env := NewEnv(canvas, reduced)
	bg := host.Mount(env, host.EffectBuilder(cfg, 1))
	if !bg.Active() {
		return nil
	}
	defer bg.Stop()

	p := tea.NewProgram(
		NewModel(env, bg, cfg.FPS, cfg.Effect),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}
