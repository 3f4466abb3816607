package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var abCmd = &cobra.Command{
	Use:   "ab <book> <episode>",
	Short: "Organize an Emby audiobook",
	Long: `Copy the album of the given episode to every episode of the book and
number the episodes. Runs on the server and waits for the result.

Example:
  mpplug ab 三体 3`,
	Args: cobra.ExactArgs(2),
	RunE: runABCmd,
}

func init() {
	rootCmd.AddCommand(abCmd)
	abCmd.Flags().String("user", "", "User notifications are addressed to")
	abCmd.Flags().Bool("async", false, "Send as a command and return immediately")
}

func runABCmd(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	async, _ := cmd.Flags().GetBool("async")
	client := NewClient(serverURL)
	argText := strings.Join(args, " ")

	if async {
		resp, err := client.SendCommand("/ab "+argText, "cli", user)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		fmt.Println("Queued")
		return nil
	}

	report, err := client.RunAudiobook(argText, user)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(report)
		return nil
	}

	color := shouldColorize(os.Stdout)
	fmt.Printf("%s (%s)\n", report.Book, report.BookID)
	fmt.Printf("  Updated: %s\n", colorize(fmt.Sprint(report.Updated), ansiGreen, color))
	fmt.Printf("  Skipped: %d\n", report.Skipped)
	failed := fmt.Sprint(report.Failed)
	if report.Failed > 0 {
		failed = colorize(failed, ansiRed, color)
	}
	fmt.Printf("  Failed:  %s\n", failed)
	return nil
}
