package interp

import (
	"context"
	"io"
	"os"

	"github.com/Manu343726/brainfuck/pkg/brainfuck"
	"github.com/Manu343726/brainfuck/pkg/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunCmd runs a program file once
var RunCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Brainfuck program file",
	Long: `Reads the whole file and runs it once on a fresh tape (or on the tape saved
in --state-file). Use - to read the program from standard input.

The program reads its ',' input from standard input and writes '.' output to
standard output. Unbalanced brackets are reported before anything runs.

Exit codes:
  1  invalid configuration
  2  the program could not be read
  3  unbalanced brackets
  4  input/output failure
  5  interrupted or step limit reached

Example:
  bf run hello.bf
  cat hello.bf | bf run -`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		Exit(RunFile(cmd.Context(), args[0]))
	},
}

// RunFile runs path in file mode with the global configuration and returns
// the process exit code
func RunFile(ctx context.Context, path string) int {
	return runFile(ctx, viper.GetViper(), path, os.Stdin, os.Stdout, os.Stderr)
}

func runFile(ctx context.Context, v *viper.Viper, path string, stdin io.Reader, stdout, stderr io.Writer) int {
	env, err := newEnvironment(v, stdin, stdout, stderr)
	if err != nil {
		return reportError(stderr, err)
	}

	ctx, stop := withInterrupt(ctx)
	defer stop()

	var result *brainfuck.Result
	if path == "-" {
		result, err = repl.RunReader(ctx, env.session, stdin)
	} else {
		result, err = repl.RunFile(ctx, env.session, path)
	}

	if result != nil {
		env.logger.Debug("program finished", "file", path, "steps", result.Steps, "reason", result.StopReason.String())
		env.afterTurn(result, err)
	}

	closeErr := env.close()
	if err != nil {
		return reportError(stderr, err)
	}
	if closeErr != nil {
		return reportError(stderr, closeErr)
	}
	return ExitOK
}
