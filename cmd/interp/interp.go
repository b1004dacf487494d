// Package interp holds the commands that run Brainfuck programs: file mode,
// the interactive loop and the tape inspector.
package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Manu343726/brainfuck/pkg/brainfuck"
	"github.com/Manu343726/brainfuck/pkg/logging"
	"github.com/fatih/color"
	"github.com/spf13/viper"
)

// Configuration keys, shared by flags, config file and BF_* environment variables
const (
	KeyTapeSize    = "tape-size"
	KeyCellWidth   = "cell-width"
	KeyEOF         = "eof"
	KeyMaxSteps    = "max-steps"
	KeyPrompt      = "prompt"
	KeyHistoryFile = "history-file"
	KeyDumpState   = "dump-state"
	KeyStateFile   = "state-file"
	KeyLogLevel    = "log-level"
	KeyLogFile     = "log-file"
)

// ConfigKeys lists every configuration key
var ConfigKeys = []string{
	KeyTapeSize, KeyCellWidth, KeyEOF, KeyMaxSteps, KeyPrompt, KeyHistoryFile,
	KeyDumpState, KeyStateFile, KeyLogLevel, KeyLogFile,
}

// Process exit codes
const (
	ExitOK = iota
	ExitUsage
	ExitLoad
	ExitBrackets
	ExitIO
	ExitStopped
)

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorInfo  = color.New(color.FgHiBlack)
)

// Exit terminates the process with code, returning normally for ExitOK
func Exit(code int) {
	if code != ExitOK {
		os.Exit(code)
	}
}

// ExitCode maps a turn or loading error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, brainfuck.ErrInvalidOptions):
		return ExitUsage
	case errors.Is(err, brainfuck.ErrUnbalancedBrackets):
		return ExitBrackets
	case errors.Is(err, brainfuck.ErrIO):
		return ExitIO
	case errors.Is(err, brainfuck.ErrInterrupted), errors.Is(err, brainfuck.ErrStepLimit):
		return ExitStopped
	default:
		return ExitLoad
	}
}

// OptionsFromConfig builds the session options from the viper configuration
func OptionsFromConfig(v *viper.Viper) (brainfuck.Options, error) {
	eof, err := brainfuck.ParseEOFPolicy(v.GetString(KeyEOF))
	if err != nil {
		return brainfuck.Options{}, err
	}

	options := brainfuck.Options{
		TapeSize:  v.GetInt(KeyTapeSize),
		CellWidth: v.GetInt(KeyCellWidth),
		EOF:       eof,
		MaxSteps:  v.GetInt(KeyMaxSteps),
	}
	return options, options.Validate()
}

// environment is everything a command needs to run turns
type environment struct {
	session   *brainfuck.Session
	logger    *slog.Logger
	closeLog  func() error
	stateFile string
	dumpState bool
	messages  io.Writer
}

func newEnvironment(v *viper.Viper, input io.Reader, output io.Writer, messages io.Writer) (*environment, error) {
	logger, closeLog, err := logging.New(logging.Config{
		Level: v.GetString(KeyLogLevel),
		File:  v.GetString(KeyLogFile),
	}, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", brainfuck.ErrInvalidOptions, err)
	}

	options, err := OptionsFromConfig(v)
	if err != nil {
		closeLog()
		return nil, err
	}

	session, err := brainfuck.NewSession(options, input, output, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	env := &environment{
		session:   session,
		logger:    logger,
		closeLog:  closeLog,
		stateFile: v.GetString(KeyStateFile),
		dumpState: v.GetBool(KeyDumpState),
		messages:  messages,
	}

	if err := env.loadState(); err != nil {
		closeLog()
		return nil, err
	}

	logger.Debug("session ready", "tape_size", options.TapeSize, "cell_width", options.CellWidth, "eof", options.EOF.String(), "max_steps", options.MaxSteps)
	return env, nil
}

func (env *environment) loadState() error {
	if env.stateFile == "" {
		return nil
	}

	data, err := os.ReadFile(env.stateFile)
	if errors.Is(err, fs.ErrNotExist) {
		env.logger.Debug("no saved state", "file", env.stateFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading state file: %w", err)
	}

	state, err := brainfuck.ParseState(data)
	if err != nil {
		return fmt.Errorf("parsing state file %s: %w", env.stateFile, err)
	}
	if err := env.session.Restore(state); err != nil {
		return err
	}

	env.logger.Info("state restored", "file", env.stateFile, "pointer", state.Pointer, "turns", state.Turns)
	return nil
}

func (env *environment) saveState() error {
	if env.stateFile == "" {
		return nil
	}

	data, err := env.session.Snapshot().YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(env.stateFile, data, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}

	env.logger.Info("state saved", "file", env.stateFile)
	return nil
}

func (env *environment) afterTurn(result *brainfuck.Result, err error) {
	if !env.dumpState {
		return
	}

	data, marshalErr := env.session.Snapshot().YAML()
	if marshalErr != nil {
		colorError.Fprintf(env.messages, "Error dumping state: %v\n", marshalErr)
		return
	}
	fmt.Fprintf(env.messages, "---\n%s", data)
}

// close saves the state and releases the log file
func (env *environment) close() error {
	saveErr := env.saveState()
	if err := env.closeLog(); err != nil && saveErr == nil {
		return err
	}
	return saveErr
}

func reportError(w io.Writer, err error) int {
	colorError.Fprintf(w, "Error: %v\n", err)
	return ExitCode(err)
}

// withInterrupt cancels the returned context on Ctrl+C
func withInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
