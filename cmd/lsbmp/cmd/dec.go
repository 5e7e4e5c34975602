/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/steg"
)

// decCmd represents the dec command
var decCmd = &cobra.Command{
	Use:   "dec <image> <new_file>",
	Short: "Recover a file hidden in a BMP image",
	Long: `Recover the file hidden in <image> and write it to <new_file>.<ext>, where
<ext> is the extension stored in the image.

Examples:
  lsbmp dec out.bmp recovered`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := container.StegService().Reveal(cmd.Context(), steg.RevealRequest{
			CarrierPath: args[0],
			OutputPath:  args[1],
		})
		if err != nil {
			return err
		}
		cmd.Println("File decoding is successful!")
		cmd.Printf("Wrote %s (%d bytes)\n", res.OutputPath, res.PayloadSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decCmd)
}
