package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the server is up",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	color := shouldColorize(os.Stdout)
	health, err := NewClient(serverURL).Health()
	if err != nil {
		if !jsonOutput {
			fmt.Printf("  %-10s %s\n", "Server:", colorize("unreachable", ansiRed, color))
		}
		return err
	}
	if jsonOutput {
		printJSON(health)
		return nil
	}
	fmt.Printf("  %-10s %s (%s)\n", "Server:", colorize(health.Status, ansiGreen, color), serverURL)
	fmt.Printf("  %-10s %d\n", "Plugins:", health.Plugins)
	return nil
}
