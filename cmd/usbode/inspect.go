package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usbode/usbode/internal/config"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the track table of the built-in demo disc",
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	configureLogging(cfg)

	disc, _, err := buildDemoDisc()
	if err != nil {
		return err
	}

	fmt.Printf("serial:      %s\n", cfg.Serial())
	fmt.Printf("medium type: 0x%02X\n", disc.MediumType())
	fmt.Printf("last track:  %d\n", disc.LastTrack())
	fmt.Printf("leadout LBA: %d\n\n", disc.LeadoutLBA())
	fmt.Println("track  start LBA  mode")
	for _, t := range disc.Tracks() {
		fmt.Printf("%5d  %9d  %v\n", t.Number, t.StartLBA, t.Mode)
	}
	return nil
}
