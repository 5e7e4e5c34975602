/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/config"
	"github.com/ssargent/lsbmp/pkg/di"
	"github.com/ssargent/lsbmp/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container. When set, the root command
// does not build one from the configuration file.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lsbmp",
	Short: "lsbmp - hide files in BMP images",
	Long: `lsbmp hides an arbitrary file in the least significant bits of a BMP image
and recovers it again. The file's extension travels with it, so a decoded
file gets its original type back.

Run without a subcommand, or with "shell", for the interactive prompt.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container != nil {
			return nil
		}
		c, err := buildContainer(cmd)
		if err != nil {
			return err
		}
		container = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), container.StegService(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// buildContainer loads the configuration named by --config, or the default
// one when it exists, and builds the logger from it.
func buildContainer(cmd *cobra.Command) (*di.Container, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else if explicit && cmd.Name() != configInitCmd.Name() {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		opts.Level, _ = cmd.Flags().GetString("log-level")
	}
	opts.JSON = cfg.Logging.JSON
	opts.NoColor = cfg.Logging.NoColor
	opts.Output = cmd.ErrOrStderr()

	return di.NewContainer(cfg, logging.New(opts)), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (YAML, or TOML with a .toml extension)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
}
