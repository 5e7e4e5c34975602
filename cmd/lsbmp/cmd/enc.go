/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/steg"
)

// encCmd represents the enc command
var encCmd = &cobra.Command{
	Use:   "enc <file> <image> <new_file>",
	Short: "Hide a file in a BMP image",
	Long: `Hide <file> in the low bits of <image> and write the result to <new_file>.
".bmp" is appended to <new_file> when it has no extension. Existing files are
never overwritten.

Examples:
  lsbmp enc secret.txt cover.bmp out.bmp
  lsbmp enc archive.zip cover.bmp out`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := container.StegService().Hide(cmd.Context(), steg.HideRequest{
			PayloadPath: args[0],
			CarrierPath: args[1],
			OutputPath:  args[2],
		})
		if err != nil {
			return err
		}
		cmd.Println("File encoding is successful!")
		cmd.Printf("Wrote %s (%d of %d bytes used)\n", res.OutputPath, res.PayloadSize, res.CapacityBytes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encCmd)
}
