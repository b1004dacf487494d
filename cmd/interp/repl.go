package interp

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/Manu343726/brainfuck/pkg/repl"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// ReplCmd starts the interactive loop
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Brainfuck session",
	Long: `Prompts for lines of Brainfuck and runs each one as soon as it is submitted.
The tape and the cell pointer are shared by all the lines of the session.

A line with unbalanced brackets is rejected without running any of it. Ctrl+C
interrupts the running line and returns to the prompt. An empty line ends the
session.

Example:
  $ bf repl
  bf> +++
  bf> ++++++++[>++++++++<-]>+.
  A
  bf>`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		Exit(RunRepl(cmd.Context()))
	},
}

// RunRepl runs the interactive loop with the global configuration and
// returns the process exit code
func RunRepl(ctx context.Context) int {
	return runRepl(ctx, viper.GetViper(), os.Stdin, os.Stdout, os.Stderr)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) && liner.TerminalSupported()
}

func runRepl(ctx context.Context, v *viper.Viper, stdin io.Reader, stdout, stderr io.Writer) int {
	interactive := isTerminal(stdin)

	// Lines and ',' bytes must come from the same buffered stream when not on
	// a terminal, otherwise the line reader would swallow program input
	var input io.Reader = stdin
	var reader *bufio.Reader
	if !interactive {
		reader = bufio.NewReader(stdin)
		input = reader
	}

	env, err := newEnvironment(v, input, stdout, stderr)
	if err != nil {
		return reportError(stderr, err)
	}

	var source repl.LineSource
	greeting := ""
	if interactive {
		historyFile := v.GetString(KeyHistoryFile)
		if historyFile == "" {
			historyFile = repl.DefaultHistoryFile()
		}
		source = repl.NewLinerSource(historyFile)
		greeting = "Brainfuck session. Submit an empty line to leave."
	} else {
		// No prompts on pipes: they would be mixed with the program output
		source = repl.NewReaderSource(reader, nil)
	}

	loop := repl.NewLoop(env.session, source, repl.Config{
		Prompt:      v.GetString(KeyPrompt),
		Greeting:    greeting,
		Messages:    stderr,
		TurnContext: withInterrupt,
		AfterTurn:   env.afterTurn,
		Logger:      env.logger,
	})

	loopErr := loop.Run(ctx)
	if err := source.Close(); err != nil {
		env.logger.Warn("closing line source", "error", err)
	}

	closeErr := env.close()
	if loopErr != nil {
		return reportError(stderr, loopErr)
	}
	if closeErr != nil {
		return reportError(stderr, closeErr)
	}

	if interactive {
		colorInfo.Fprintf(stderr, "Session ended after %d turns.\n", env.session.Turns())
	}
	return ExitOK
}
