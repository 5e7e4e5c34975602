/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/carrier"
	"github.com/ssargent/lsbmp/pkg/fileio"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Show bitmap details and capacity of an image",
	Long: `Read the bitmap headers of <image> and report its dimensions, where its pixel
data starts and how many payload bytes it can hold.

Examples:
  lsbmp inspect cover.bmp
  lsbmp inspect cover.bmp --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		data, err := fileio.ReadAll(args[0])
		if err != nil {
			return err
		}
		info, err := carrier.Inspect(data, container.Codec().Layout())
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		cmd.Printf("File:           %s\n", args[0])
		cmd.Printf("Dimensions:     %dx%d\n", info.Width, info.Height)
		cmd.Printf("Bits per pixel: %d\n", info.BitsPerPixel)
		cmd.Printf("Pixel offset:   %d\n", info.PixelOffset)
		cmd.Printf("File size:      %d bytes\n", info.FileSize)
		cmd.Printf("Capacity:       %d bytes\n", info.CapacityBytes)
		if !info.HeaderMatchesLayout {
			cmd.Printf("Warning: pixel data does not start at byte %d; header bytes may be rewritten\n",
				container.Codec().Layout().HeaderSkip)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Print the result as JSON")
}
