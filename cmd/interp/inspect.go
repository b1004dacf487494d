package interp

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/Manu343726/brainfuck/pkg/inspect"
	"github.com/Manu343726/brainfuck/pkg/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InspectCmd runs a program and browses the resulting tape
var InspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Run a Brainfuck program and browse the resulting tape",
	Long: `Runs the program file once, capturing its output, then opens a terminal view
of the tape centered on the cell pointer, together with the captured output.

Keys:
  left/right, up/down   scroll one cell
  page up/page down     scroll half a window
  home                  back to the cell pointer
  q, esc                quit`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		Exit(runInspect(cmd.Context(), viper.GetViper(), args[0], os.Stdin, os.Stderr, showViewer))
	},
}

// viewerFunc displays the inspected tape
type viewerFunc func(viewer *inspect.Viewer) error

func showViewer(viewer *inspect.Viewer) error {
	return viewer.Run()
}

func runInspect(ctx context.Context, v *viper.Viper, path string, stdin io.Reader, stderr io.Writer, show viewerFunc) int {
	var output bytes.Buffer
	env, err := newEnvironment(v, stdin, &output, stderr)
	if err != nil {
		return reportError(stderr, err)
	}

	ctx, stop := withInterrupt(ctx)
	defer stop()

	result, err := repl.RunFile(ctx, env.session, path)
	closeErr := env.close()
	if result == nil {
		return reportError(stderr, err)
	}
	if err != nil {
		// The tape is still worth a look after a failed run
		colorError.Fprintf(stderr, "Error: %v\n", err)
	}

	if viewErr := show(inspect.NewViewer(env.session, filepath.Base(path), output.Bytes(), result)); viewErr != nil {
		return reportError(stderr, viewErr)
	}

	if err != nil {
		return ExitCode(err)
	}
	return ExitCode(closeErr)
}
