package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwheeler/stalesweep/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration resolution",
	Long: `Shows what config.yaml itself says (before env overrides) and whether
the resolved configuration is complete enough to start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := configDir
		if dir == "" {
			dir = "."
		}

		local, err := config.LoadLocal(dir)
		if err != nil {
			fmt.Printf("config.yaml: %v\n", err)
		} else {
			fmt.Printf("config.yaml in %s:\n", dir)
			fmt.Printf("  instance:          %s\n", orUnset(local.Instance))
			fmt.Printf("  backups_location:  %s\n", orUnset(local.BackupsLocation))
			fmt.Printf("  deletion_location: %s\n", orUnset(local.DeletionLocation))
			fmt.Printf("  get_size:          %v\n", local.GetSize)
			fmt.Printf("  log_dir:           %s\n", orUnset(local.LogDir))
		}

		if used := config.ConfigFileUsed(); used != "" {
			fmt.Printf("resolved from: %s\n", used)
		}

		cfg, err := config.Load()
		if err != nil {
			color.Red("✗ %v", err)
			os.Exit(1)
		}
		color.Green("✓ configuration complete (instance %s)", cfg.Instance)

		if _, err := os.Stat(cfg.BackupsLocation); err != nil {
			color.Yellow("⚠ backups_location: %v", err)
		}
		if _, err := os.Stat(cfg.DeletionLocation); err != nil {
			color.Yellow("⚠ deletion_location: %v", err)
		}
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
