package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/host"
	"github.com/san-kum/particlefield/internal/term"
	"github.com/san-kum/particlefield/internal/window"
)

var (
	configFile    string
	preset        string
	effect        string
	fps           int
	seed          int64
	theme         string
	reducedMotion bool
	debug         bool
	// window size
	winWidth  int
	winHeight int
	// bench
	benchFrames   int
	benchPlot     bool
	benchOut      string
	benchCompare  string
	benchRealtime bool
)

// main registers the commands and flags, runs the terminal background when
// no subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "particlefield",
		Short: "drifting particle background",
		RunE:  runTerminal,
	}
	addEffectFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to "+logFileName)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the background in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}
	addEffectFlags(runCmd)

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the background in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addEffectFlags(windowCmd)
	windowCmd.Flags().IntVar(&winWidth, "width", config.DefaultWidth, "window width")
	windowCmd.Flags().IntVar(&winHeight, "height", config.DefaultHeight, "window height")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame cost per viewport tier",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addEffectFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per tier")
	benchCmd.Flags().BoolVar(&benchPlot, "plot", true, "plot per-frame cost")
	benchCmd.Flags().StringVar(&benchOut, "out", "", "write a json report")
	benchCmd.Flags().StringVar(&benchCompare, "compare", "", "compare with a previous json report")
	benchCmd.Flags().BoolVar(&benchRealtime, "realtime", false, "pace frames at --fps instead of running them back to back")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s (%s)\n", name, config.GetPreset(name).Effect)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, windowCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEffectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&effect, "effect", config.EffectField, "effect: "+strings.Join(config.Effects(), ", "))
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "terminal theme: "+strings.Join(term.ThemeNames(), ", "))
	cmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "disable the animation")
}

// resolveConfig applies preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("effect") || (preset == "" && configFile == "") {
		cfg.Effect = effect
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("width") {
		cfg.Window.Width = winWidth
	}
	if flags.Changed("height") {
		cfg.Window.Height = winHeight
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.Run(ctx, cfg, host.ReducedMotion(cfg.ReducedMotion, os.LookupEnv))
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return window.Run(ctx, cfg, host.ReducedMotion(cfg.ReducedMotion, os.LookupEnv))
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
