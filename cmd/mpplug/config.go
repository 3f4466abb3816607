package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mpplugins/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

// resolveConfigPath returns args[0] or the discovered config path.
func resolveConfigPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return config.Discover()
}

func runConfigTest(_ *cobra.Command, args []string) error {
	path, err := resolveConfigPath(args)
	if err != nil {
		return err
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	for _, s := range e.Sections() {
		fmt.Printf("[%s]\n", s.Table)
		for _, m := range s.Messages {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server:     %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Printf("  Database:   %s\n", cfg.Database.Path)
	if cfg.Emby.URL != "" {
		fmt.Printf("  Emby:       %s\n", cfg.Emby.URL)
	}

	sg := cfg.Plugins.SubscribeGroup
	fmt.Printf("  subscribegroup: %s", enabledText(sg.Enabled))
	if sg.Enabled {
		fmt.Printf(" (%s)", strings.Join(sg.UpdateDetails, ", "))
	}
	fmt.Println()

	ab := cfg.Plugins.Audiobook
	fmt.Printf("  audiobook:      %s", enabledText(ab.Enabled))
	if ab.Enabled {
		fmt.Printf(" (library %s, rename %s, notify %s)", ab.LibraryID, yesNo(ab.Rename), yesNo(ab.Notify))
	}
	fmt.Println()
}

func enabledText(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set EMBY_API_KEY or edit [emby] before enabling the audiobook plugin.")
	return nil
}
