package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "mpplug",
	Short: "CLI client for the mpplugd plugin host",
	Long: `mpplug - CLI client for the mpplugd plugin host

Manage the subscribegroup and audiobook plugins, feed downloads and
subscriptions to the host, and inspect the event log.

Run 'mpplugd' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8484", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mpplug {{.Version}}\n")
}
