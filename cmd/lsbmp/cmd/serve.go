/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/api"
	"github.com/ssargent/lsbmp/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the lsbmp REST API server. Every route under /api/v1 requires the
X-API-Key header. With the archive enabled, encoded carriers can be stored
and fetched by id.

Examples:
  lsbmp serve
  lsbmp serve --port 8080 --api-key mysecretkey
  lsbmp serve --archive-dir ./archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := container.Config()
		serverConfig := container.ServerConfig()

		if cmd.Flags().Changed("port") {
			serverConfig.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			serverConfig.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			serverConfig.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("archive-dir") {
			cfg.Archive.Enabled = true
			cfg.Archive.Dir, _ = cmd.Flags().GetString("archive-dir")
		}

		if serverConfig.APIKey == "" || serverConfig.APIKey == "auto" {
			key, err := config.GenerateSecureKey(32)
			if err != nil {
				return err
			}
			serverConfig.APIKey = key
			cmd.Printf("Generated API key for this run: %s\n", key)
		}

		store, err := container.OpenArchive()
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}

		var archive api.CarrierArchive
		if store != nil {
			defer store.Close()
			archive = store
			cmd.Printf("Carrier archive: %s\n", cfg.Archive.Dir)
		}

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(cmd.Context(), container.StegService(), archive, serverConfig, container.Logger())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 9200, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication (generated when empty)")
	serveCmd.Flags().String("archive-dir", "", "Enable the carrier archive in this directory")
}
