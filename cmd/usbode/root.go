// Command usbode emulates a USB CD-ROM/CD-DA drive over the Bulk-Only Mass
// Storage transport, serving reads and vendor toolbox commands from a
// backing disc image.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	profileFlag    bool
	cpuProfilePath string
	logLevelFlag   string
	logFormatFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "usbode",
	Short: "USB optical disc emulator",
	Long: `usbode presents a virtual CD-ROM/CD-DA drive to a USB host, backed by a
disc image, by implementing the Bulk-Only Mass Storage transport and the
SCSI Multimedia Command set in software.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&profileFlag, "profile", false, "log where pprof handlers are served (a profile-tagged build serves them on localhost:6060 with or without this flag)")
	rootCmd.PersistentFlags().StringVar(&cpuProfilePath, "cpuprofile", "", "write a CPU profile to this path on exit")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "override the configured log format (text, json)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd, inspectCmd)
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "usbode: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
