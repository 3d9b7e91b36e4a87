package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/host"
	"github.com/san-kum/particlefield/internal/linked"
	"github.com/san-kum/particlefield/internal/loop"
	"github.com/san-kum/particlefield/internal/report"
	"github.com/san-kum/particlefield/internal/surface"
)

// viewport widths covering each particle count tier
var benchTiers = [][2]int{{480, 320}, {800, 600}, {1920, 1080}}

// benchEnv is an offscreen host: a recording surface and a scheduler
// driven by the benchmark instead of a display.
type benchEnv struct {
	width, height int
	surface       *surface.Recorder
	sched         loop.Scheduler
}

func (e *benchEnv) Viewport() (int, int)       { return e.width, e.height }
func (e *benchEnv) PrefersReducedMotion() bool { return false }
func (e *benchEnv) Scheduler() loop.Scheduler  { return e.sched }
func (e *benchEnv) AcquireSurface() (field.Surface, error) {
	return e.surface, nil
}

// timedEffect records how long each Frame call takes, in microseconds.
type timedEffect struct {
	field.Effect

	mu      sync.Mutex
	samples []float64
}

func (t *timedEffect) Frame() {
	t0 := time.Now()
	t.Effect.Frame()
	us := float64(time.Since(t0).Nanoseconds()) / 1e3

	t.mu.Lock()
	t.samples = append(t.samples, us)
	t.mu.Unlock()
}

func (t *timedEffect) perFrame(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.samples) > n {
		return append([]float64(nil), t.samples[:n]...)
	}
	return append([]float64(nil), t.samples...)
}

func particleCount(e field.Effect) int {
	switch e := e.(type) {
	case *field.Renderer:
		return len(e.Particles())
	case *linked.Field:
		return e.Len()
	}
	return 0
}

// mountBench mounts the configured effect on an offscreen env using sched.
func mountBench(cfg *config.Config, width, height int, sched loop.Scheduler) (*host.Background, *timedEffect, error) {
	env := &benchEnv{width: width, height: height, surface: surface.NewRecorder(), sched: sched}
	timed := &timedEffect{}
	build := host.EffectBuilder(cfg, 1)
	bg := host.Mount(env, func(s field.Surface) (field.Effect, error) {
		e, err := build(s)
		if err != nil {
			return nil, err
		}
		timed.Effect = e
		return timed, nil
	})
	if !bg.Active() {
		return nil, nil, errors.New("background did not start")
	}
	return bg, timed, nil
}

// benchTier flushes frames back to back as fast as they run.
func benchTier(cfg *config.Config, width, height, frames int) (report.Tier, error) {
	queue := loop.NewQueue()
	bg, timed, err := mountBench(cfg, width, height, queue)
	if err != nil {
		return report.Tier{}, err
	}
	defer bg.Stop()

	res := report.Tier{Width: width, Height: height, Frames: frames, Particles: particleCount(timed.Effect)}
	start := time.Now()
	for i := 0; i < frames; i++ {
		if queue.Flush() != 1 {
			return res, fmt.Errorf("frame %d: loop stopped rescheduling", i)
		}
	}
	elapsed := time.Since(start)
	res.Elapsed = elapsed.Seconds()
	if elapsed > 0 {
		res.FPS = float64(frames) / elapsed.Seconds()
	}
	res.PerFrame = timed.perFrame(frames)
	return res, nil
}

// benchRealtimeTier lets a loop.Ticker pace the frames at cfg.FPS, the way a
// display would, and reports the rate actually achieved.
func benchRealtimeTier(cfg *config.Config, width, height, frames int) (report.Tier, error) {
	ticker := loop.NewTicker(cfg.FPS)
	defer ticker.Close()

	bg, timed, err := mountBench(cfg, width, height, ticker)
	if err != nil {
		return report.Tier{}, err
	}
	defer bg.Stop()

	res := report.Tier{Width: width, Height: height, Frames: frames, Particles: particleCount(timed.Effect)}
	budget := time.Duration(frames)*time.Second/time.Duration(cfg.FPS)*2 + time.Second
	deadline := time.NewTimer(budget)
	defer deadline.Stop()
	poll := time.NewTicker(time.Millisecond)
	defer poll.Stop()

	start := time.Now()
	for bg.Frames() < uint64(frames) {
		select {
		case <-deadline.C:
			return res, fmt.Errorf("only %d of %d frames within %s", bg.Frames(), frames, budget)
		case <-poll.C:
		}
	}
	elapsed := time.Since(start)
	bg.Stop()
	ticker.Close()

	res.Elapsed = elapsed.Seconds()
	if elapsed > 0 {
		res.FPS = float64(frames) / elapsed.Seconds()
	}
	res.PerFrame = timed.perFrame(frames)
	return res, nil
}

// printComparison lists the frame rate change of every tier present in both
// reports.
func printComparison(out io.Writer, base, cur *report.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tBASE FPS\tFPS\tCHANGE")
	for _, t := range cur.Tiers {
		b, ok := base.Tier(t.Width, t.Height)
		if !ok {
			fmt.Fprintf(w, "%dx%d\t-\t%.0f\t-\n", t.Width, t.Height, t.FPS)
			continue
		}
		change := "-"
		if b.FPS > 0 {
			change = fmt.Sprintf("%+.1f%%", (t.FPS-b.FPS)/b.FPS*100)
		}
		fmt.Fprintf(w, "%dx%d\t%.0f\t%.0f\t%s\n", t.Width, t.Height, b.FPS, t.FPS, change)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if benchFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", benchFrames)
	}
	var base *report.Report
	if benchCompare != "" {
		base, err = report.Load(benchCompare)
		if err != nil {
			return fmt.Errorf("failed to load baseline: %w", err)
		}
	}
	closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	run := benchTier
	mode := "unpaced"
	if benchRealtime {
		run = benchRealtimeTier
		mode = fmt.Sprintf("realtime at %d fps", cfg.FPS)
	}

	fmt.Printf("effect: %s\n", cfg.Effect)
	fmt.Printf("frames: %d (%s)\n\n", benchFrames, mode)

	rep := &report.Report{Effect: cfg.Effect, Seed: cfg.Seed, Timestamp: time.Now()}
	for _, tier := range benchTiers {
		res, err := run(cfg, tier[0], tier[1], benchFrames)
		if err != nil {
			return fmt.Errorf("bench %dx%d: %w", tier[0], tier[1], err)
		}
		rep.Tiers = append(rep.Tiers, res)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC")
	for _, r := range rep.Tiers {
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%.3fs\t%.0f\n",
			r.Width, r.Height, r.Particles, r.Frames, r.Elapsed, r.FPS)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	// realtime pacing jitters a little below the target
	if slowest, ok := rep.Slowest(); ok && slowest.FPS < 0.95*float64(cfg.FPS) {
		fmt.Printf("\nwarning: %dx%d runs below %d fps\n", slowest.Width, slowest.Height, cfg.FPS)
	}

	if base != nil {
		fmt.Printf("\ncompared with %s:\n", benchCompare)
		if err := printComparison(os.Stdout, base, rep); err != nil {
			return err
		}
	}

	if benchOut != "" {
		if err := report.WriteFile(benchOut, rep); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("\nreport written to %s\n", benchOut)
	}

	if benchPlot {
		series := make([][]float64, len(rep.Tiers))
		for i, r := range rep.Tiers {
			series[i] = r.PerFrame
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("frame cost (µs) per viewport tier"),
		))
	}
	return nil
}
