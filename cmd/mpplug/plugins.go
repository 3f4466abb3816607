package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List plugins and their commands",
	RunE:  runPluginsCmd,
}

var sendCmd = &cobra.Command{
	Use:   "send <command text>",
	Short: "Send a chat command to the plugins",
	Long: `Send command text exactly as a chat user would type it.

Example:
  mpplug send /ab 三体 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSendCmd,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("user", "", "User the command is sent as")
	sendCmd.Flags().String("channel", "cli", "Channel replies are addressed to")
}

func runPluginsCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL)
	plugins, err := client.Plugins()
	if err != nil {
		return fmt.Errorf("failed to fetch plugins: %w", err)
	}
	cmds, err := client.Commands()
	if err != nil {
		return fmt.Errorf("failed to fetch commands: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{"plugins": plugins.Items, "commands": cmds.Items})
		return nil
	}

	color := shouldColorize(os.Stdout)
	rows := make([][]string, 0, len(plugins.Items))
	for _, p := range plugins.Items {
		state := colorize("disabled", ansiYellow, color)
		if p.Enabled {
			state = colorize("enabled", ansiGreen, color)
		}
		var own []string
		for _, c := range cmds.Items {
			if c.Category == p.ID {
				own = append(own, c.Cmd)
			}
		}
		rows = append(rows, []string{p.ID, p.Version, state, strings.Join(own, " "), p.Name})
	}
	fmt.Println(renderTable([]string{"ID", "VERSION", "STATE", "COMMANDS", "NAME"}, rows))
	return nil
}

func runSendCmd(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	channel, _ := cmd.Flags().GetString("channel")

	resp, err := NewClient(serverURL).SendCommand(strings.Join(args, " "), channel, user)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Printf("Sent to %s\n", resp.Action)
	return nil
}
