/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/lsbmp/pkg/steg"
)

const (
	shellEncodeUsage = `"enc <file_path> <image_path> <new_file_path>" should have three parameters`
	shellDecodeUsage = `"dec <image_path> <new_file_path>" should have two parameters`
	shellSeparator   = "********************************************************************"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive prompt",
	Long: `Start an interactive prompt that accepts enc, dec, help and exit.

The prompt reads one command per line until "exit" or end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), container.StegService(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, `Use "enc <file_path>.<extension> <image_path>.<extension> <new_file_path>" for encoding`)
	fmt.Fprintln(out, `Use "dec <image_path>.<extension> <new_file_path>" for decoding`)
	fmt.Fprintln(out, `Use "help" to display commands list`)
	fmt.Fprintln(out, `Use "exit" to exit application`)
	fmt.Fprintln(out, shellSeparator)
}

// runShell reads commands from in until "exit", end of input or ctx is done.
// Command failures are printed and never end the loop.
func runShell(ctx context.Context, svc *steg.Service, in io.Reader, out io.Writer) error {
	printShellHelp(out)

	scanner := bufio.NewScanner(in)
	for {
		if wd, err := os.Getwd(); err == nil {
			fmt.Fprintln(out, wd)
		}
		fmt.Fprint(out, "$ ")

		if err := ctx.Err(); err != nil {
			return nil
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		if exit := runShellLine(ctx, svc, scanner.Text(), out); exit {
			return nil
		}
		fmt.Fprintln(out)
	}
}

// runShellLine executes one line and reports whether the shell should exit.
func runShellLine(ctx context.Context, svc *steg.Service, line string, out io.Writer) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}

	switch tokens[0] {
	case "enc":
		if len(tokens) != 4 {
			fmt.Fprintln(out, shellEncodeUsage)
			return false
		}
		_, err := svc.Hide(ctx, steg.HideRequest{
			PayloadPath: tokens[1],
			CarrierPath: tokens[2],
			OutputPath:  tokens[3],
		})
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		fmt.Fprintln(out, "File encoding is successful!")
	case "dec":
		if len(tokens) != 3 {
			fmt.Fprintln(out, shellDecodeUsage)
			return false
		}
		_, err := svc.Reveal(ctx, steg.RevealRequest{
			CarrierPath: tokens[1],
			OutputPath:  tokens[2],
		})
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		fmt.Fprintln(out, "File decoding is successful!")
	case "help":
		printShellHelp(out)
	case "exit":
		fmt.Fprintln(out, "Exiting..")
		return true
	default:
		fmt.Fprintln(out, "Command not found!")
	}
	return false
}
