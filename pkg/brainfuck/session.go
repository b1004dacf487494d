// Package brainfuck implements a Brainfuck interpreter whose tape outlives a
// single program run.
//
// A Session owns the cell store. Each call to Session.Turn resolves the loop
// brackets of the submitted source and then executes it against the same
// tape, so state accumulates across turns:
//
//	session, err := brainfuck.NewSession(brainfuck.DefaultOptions(), os.Stdin, os.Stdout, nil)
//	session.Turn(ctx, []byte("+++"))
//	session.Turn(ctx, []byte(".")) // writes the byte 3
//
// Bytes other than the eight instructions are no-ops.
package brainfuck

import (
	"context"
	"io"
	"log/slog"
)

// Session is the long lived interpreter state: one tape and the collaborators
// used for ',' and '.'
type Session struct {
	options Options
	store   CellStore
	engine  *Engine
	input   io.Reader
	output  io.Writer
	logger  *slog.Logger
	turns   int
}

// NewSession creates a session with a zeroed tape. A nil logger discards logs
func NewSession(options Options, input io.Reader, output io.Writer, logger *slog.Logger) (*Session, error) {
	store, err := NewCellStore(options)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Session{
		options: options,
		store:   store,
		engine:  NewEngine(store, options, logger),
		input:   input,
		output:  output,
		logger:  logger,
	}, nil
}

// Turn runs one program against the session tape. Brackets are resolved
// before anything executes: an unbalanced program fails with
// ErrUnbalancedBrackets and leaves the tape untouched.
func (s *Session) Turn(ctx context.Context, source []byte) (*Result, error) {
	s.turns++
	s.logger.Debug("turn started", "turn", s.turns, "bytes", len(source), "pointer", s.store.Pointer())

	jumps, err := Resolve(source)
	if err != nil {
		s.logger.Debug("turn rejected", "turn", s.turns, "error", err)
		return &Result{StopReason: StopError}, err
	}
	if s.logger.Enabled(ctx, slog.LevelDebug) {
		s.logger.Debug("turn resolved", "turn", s.turns, "instructions", countInstructions(source), "loops", jumps.Len(), "pairs", jumps.Pairs())
	}

	result, err := s.engine.Execute(ctx, source, jumps, s.input, s.output)
	if err != nil {
		s.logger.Debug("turn failed", "turn", s.turns, "reason", result.StopReason.String(), "error", err)
	}
	return result, err
}

func countInstructions(source []byte) int {
	count := 0
	for _, b := range source {
		if IsInstruction(b) {
			count++
		}
	}
	return count
}

// Store returns the session tape
func (s *Session) Store() CellStore {
	return s.store
}

// Options returns the options the session was created with
func (s *Session) Options() Options {
	return s.options
}

// Turns returns the number of turns submitted so far, rejected ones included
func (s *Session) Turns() int {
	return s.turns
}

// Reset zeroes the tape and the turn counter
func (s *Session) Reset() {
	s.store.Reset()
	s.turns = 0
}
