/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/carrier"
	"github.com/ssargent/lsbmp/pkg/fileio"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <image>",
	Short: "Create a blank 24-bit BMP carrier",
	Long: `Create a 24-bit BMP with a 54-byte header, suitable as a carrier.

Size it explicitly with --width/--height, or with --fit to the smallest square
that holds a file of that many bytes.

Examples:
  lsbmp generate cover.bmp --width 640 --height 480 --noise
  lsbmp generate cover.bmp --fit 4096`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		fit, _ := cmd.Flags().GetInt("fit")
		noise, _ := cmd.Flags().GetBool("noise")

		if fit > 0 {
			width, height = carrier.SizeFor(fit, container.Codec().Layout())
		}

		var r *rand.Rand
		if noise {
			r = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
		}
		data, err := carrier.Generate(width, height, r)
		if err != nil {
			return err
		}

		path := fileio.EncodedOutputPath(args[0])
		mode := os.FileMode(container.Config().Carrier.FileMode)
		if err := fileio.WriteNew(path, data, mode); err != nil {
			return fmt.Errorf("failed to write carrier: %w", err)
		}
		cmd.Printf("Wrote %s (%dx%d, capacity %d bytes)\n",
			path, width, height, container.Codec().Capacity(len(data)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int("width", 256, "Image width in pixels")
	generateCmd.Flags().Int("height", 256, "Image height in pixels")
	generateCmd.Flags().Int("fit", 0, "Size the image to hold this many payload bytes")
	generateCmd.Flags().Bool("noise", false, "Fill the image with random pixels")
}
