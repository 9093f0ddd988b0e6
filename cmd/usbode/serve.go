package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/usbode/usbode/cdrom"
	"github.com/usbode/usbode/internal/config"
	"github.com/usbode/usbode/internal/testmedia"
	"github.com/usbode/usbode/pkg"
	"github.com/usbode/usbode/pkg/prof"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the emulator against the built-in demo disc",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	configureLogging(cfg)

	if profileFlag {
		pkg.LogInfo(pkg.ComponentCLI, "pprof handlers registered at localhost:6060 when built with the profile tag")
	}
	if cpuProfilePath != "" {
		if err := prof.StartCPU(cpuProfilePath); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer prof.StopCPU()
	}

	disc, media, err := buildDemoDisc()
	if err != nil {
		return err
	}

	dispatcher := cdrom.NewDispatcher(cfg.VendorString, cfg.ProductString, cfg.RevisionString, cfg.Serial())
	dispatcher.AttachMedia(media, disc)
	dispatcher.AttachAudio(testmedia.NewAudioPlayer())
	dispatcher.AttachCatalog(testmedia.NewCatalog(testmedia.NewEntry("USBODE", nil)))

	pkg.LogInfo(pkg.ComponentCLI, "dispatcher ready",
		"serial", cfg.Serial(), "blocks", disc.LeadoutLBA())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pkg.LogWarn(pkg.ComponentCLI, "no USB controller endpoint is wired in this build; the dispatcher is idle until an Endpoint implementation submits transfers")
	<-ctx.Done()
	pkg.LogInfo(pkg.ComponentCLI, "shutting down")
	return nil
}

func configureLogging(cfg *config.Config) {
	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		pkg.SetLogLevel(level)
	}
	if cfg.LogFormat == "json" {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	} else {
		pkg.SetLogFormat(pkg.LogFormatText)
	}
}
