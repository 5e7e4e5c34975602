package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/lsbmp/pkg/codec"
	"github.com/ssargent/lsbmp/pkg/logging"
	"github.com/ssargent/lsbmp/pkg/steg"
)

func newShellService() *steg.Service {
	return steg.NewService(codec.NewCodec(), steg.DefaultOptions(), logging.Nop())
}

func TestShellCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown command", "launch\nexit\n", "Command not found!"},
		{"enc with too few parameters", "enc a b\nexit\n", shellEncodeUsage},
		{"dec with too many parameters", "dec a b c\nexit\n", shellDecodeUsage},
		{"help", "help\nexit\n", `Use "help" to display commands list`},
		{"extra whitespace", "   exit   \n", "Exiting.."},
		{"failure keeps running", "enc a.txt b.bmp c\nlaunch\nexit\n", "Command not found!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runShell(context.Background(), newShellService(), strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.want)
			assert.Contains(t, out.String(), "$ ")
		})
	}
}

func TestShellBlankLineDoesNothing(t *testing.T) {
	var out bytes.Buffer
	err := runShell(context.Background(), newShellService(), strings.NewReader("\n\nexit\n"), &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Command not found!")
	assert.Equal(t, 3, strings.Count(out.String(), "$ "))
}

func TestShellEndOfInput(t *testing.T) {
	var out bytes.Buffer
	err := runShell(context.Background(), newShellService(), strings.NewReader("help\n"), &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Exiting..")
}

func TestShellCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runShell(ctx, newShellService(), strings.NewReader("launch\n"), &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Command not found!")
}

func TestShellEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	cover := writeCarrier(t, dir)
	secret := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(secret, []byte("# hidden"), 0644))

	stego := filepath.Join(dir, "stego.bmp")
	recovered := filepath.Join(dir, "back")
	script := strings.Join([]string{
		"enc " + secret + " " + cover + " " + stego,
		"enc " + secret + " " + cover + " " + stego,
		"dec " + stego + " " + recovered,
		"exit",
	}, "\n")

	var out bytes.Buffer
	err := runShell(context.Background(), newShellService(), strings.NewReader(script), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "File encoding is successful!")
	assert.Contains(t, text, steg.ErrOutputExists.Error())
	assert.Contains(t, text, "File decoding is successful!")

	got, err := os.ReadFile(recovered + ".md")
	require.NoError(t, err)
	assert.Equal(t, "# hidden", string(got))
}
