// Package main provides the entry point for the keyboard backlight daemon.
package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shini4i/kbd-backlight-daemon/internal/backlight"
	"github.com/shini4i/kbd-backlight-daemon/internal/config"
	"github.com/shini4i/kbd-backlight-daemon/internal/daemon"
	"github.com/shini4i/kbd-backlight-daemon/internal/input"
)

var (
	cfgPath    string
	foreground bool
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "kbd-backlight-daemon",
		Short: "Activity-driven keyboard backlight controller",
		Long: `kbd-backlight-daemon watches the keyboard, mouse and touchpad event
devices and keeps the keyboard backlight on while the machine is in use,
fading it out after a period of inactivity and back in on the next input.

Brightness changes made outside the daemon (e.g. the Fn+Space hotkey) are
adopted: a new level becomes the new target, and turning the backlight off
keeps it off until it is turned back on the same way.`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the configuration file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&foreground, "foreground", "f", false, "Run in the foreground (do not daemonize)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func run() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Msg("Starting kbd-backlight-daemon")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	bl, err := backlight.Open(cfg.BrightnessPath, cfg.MaxBrightnessPath,
		backlight.WithFade(cfg.FadeSteps, cfg.FadeInterval()))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open backlight")
	}

	target := deriveTarget(cfg.TargetBrightness, bl.Current(), bl.Max())

	log.Info().
		Int("max", bl.Max()).
		Int("target", target).
		Dur("timeout", cfg.Timeout()).
		Msg("Backlight opened")

	registry := input.NewRegistry(cfg.InputDir, cfg.MaxDevices)
	if err := registry.Scan(); err != nil {
		log.Fatal().Err(err).Msg("Failed to find input devices")
	}
	defer registry.Close()

	log.Info().Int("count", registry.Count()).Msg("Monitoring input devices")

	// Startup problems above are reported on the attached stderr; only a
	// validated setup is sent to the background.
	if !foreground {
		if err := detach(); err != nil {
			log.Fatal().Err(err).Msg("Failed to daemonize")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	daemon.New(bl, registry, target, cfg.DimBrightness, cfg.Timeout()).Run(ctx)
}

// deriveTarget picks the restore level when none is configured: the level
// found at startup, or half the ceiling if the backlight was off.
func deriveTarget(configured, current, max int) int {
	if configured >= 0 {
		return configured
	}
	if current > 0 {
		return current
	}
	return max / 2
}

// detach re-executes the daemon with --foreground appended, in a new session
// with no stdio. The caller exits once the child is started.
func detach() error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}

	args := append(os.Args[1:], "--foreground")
	cmd := exec.Command(executable, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	return cmd.Start()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}
