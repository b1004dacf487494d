// Package repl drives a brainfuck.Session either once over a source file or
// interactively, one turn per submitted line.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Manu343726/brainfuck/pkg/brainfuck"
	"github.com/fatih/color"
)

// DefaultPrompt is shown before each interactive turn
const DefaultPrompt = "bf> "

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow)
	colorInfo    = color.New(color.FgHiBlack)
)

// TurnContext derives the context of one turn from the session context. The
// CLI uses it to cancel a running turn on Ctrl+C without ending the session.
type TurnContext func(parent context.Context) (context.Context, context.CancelFunc)

// Config configures an interactive loop
type Config struct {
	// Prompt is shown before each line. Defaults to DefaultPrompt
	Prompt string
	// Greeting is printed once before the first prompt, if not empty
	Greeting string
	// Messages receives errors and notices. Defaults to os.Stderr
	Messages io.Writer
	// TurnContext defaults to context.WithCancel
	TurnContext TurnContext
	// AfterTurn, if set, is called after every executed turn
	AfterTurn func(result *brainfuck.Result, err error)
	Logger    *slog.Logger
}

// Loop is the interactive session loop
type Loop struct {
	session *brainfuck.Session
	source  LineSource
	config  Config
	logger  *slog.Logger
}

// NewLoop creates a loop reading turns from source
func NewLoop(session *brainfuck.Session, source LineSource, config Config) *Loop {
	if config.Prompt == "" {
		config.Prompt = DefaultPrompt
	}
	if config.Messages == nil {
		config.Messages = os.Stderr
	}
	if config.TurnContext == nil {
		config.TurnContext = context.WithCancel
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Loop{
		session: session,
		source:  source,
		config:  config,
		logger:  logger,
	}
}

// Run prompts for lines until an empty line, the end of the line source or
// the cancellation of ctx. Failed turns are reported and the loop keeps
// prompting: the tape keeps whatever the failed turn did before stopping.
// Only line source failures are returned.
func (l *Loop) Run(ctx context.Context) error {
	if l.config.Greeting != "" {
		colorInfo.Fprintln(l.config.Messages, l.config.Greeting)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := l.source.ReadLine(l.config.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.logger.Debug("line source exhausted", "turns", l.session.Turns())
				return nil
			}
			if errors.Is(err, ErrAborted) {
				fmt.Fprintln(l.config.Messages)
				colorWarning.Fprintln(l.config.Messages, "Submit an empty line to leave the session.")
				continue
			}
			return fmt.Errorf("reading command: %w", err)
		}

		if line == "" {
			l.logger.Debug("empty command, ending session", "turns", l.session.Turns())
			return nil
		}

		l.turn(ctx, line)
	}
}

func (l *Loop) turn(ctx context.Context, line string) {
	turnCtx, cancel := l.config.TurnContext(ctx)
	defer cancel()

	result, err := l.session.Turn(turnCtx, []byte(line))
	if err != nil {
		colorError.Fprintf(l.config.Messages, "Error: %v\n", err)
	}

	if l.config.AfterTurn != nil {
		l.config.AfterTurn(result, err)
	}
}

// RunFile reads the whole file at path and runs it as a single turn
func RunFile(ctx context.Context, session *brainfuck.Session, path string) (*brainfuck.Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	return session.Turn(ctx, source)
}

// RunReader reads r to the end and runs it as a single turn
func RunReader(ctx context.Context, session *brainfuck.Session, r io.Reader) (*brainfuck.Result, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return session.Turn(ctx, source)
}
