/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/config"
)

// configCmd groups configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the lsbmp configuration file",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with a generated API key",
	Long: `Write a default configuration file with a freshly generated API key.

The file is written to --config, or to ~/.config/lsbmp/config.yaml. A path
ending in .toml selects TOML.

Examples:
  lsbmp config init
  lsbmp config init --config ./lsbmp.toml --archive-dir ./archive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		archiveDir, _ := cmd.Flags().GetString("archive-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, archiveDir)
		if err != nil {
			return err
		}

		cmd.Printf("✅ Configuration written to %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.Server.APIKey)
		if cfg.Archive.Enabled {
			cmd.Printf("Carrier archive: %s\n", cfg.Archive.Dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().String("archive-dir", "", "Enable the carrier archive in this directory")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
