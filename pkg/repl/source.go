package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by a LineSource when the user aborts the current
// prompt (Ctrl+C) without ending the session
var ErrAborted = errors.New("prompt aborted")

// LineSource yields the instruction buffer of each interactive turn.
// ReadLine returns the line without its trailing newline, and io.EOF once no
// more lines are available.
type LineSource interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ReaderSource reads lines from a buffered reader and echoes the prompt to a
// writer. It is used when standard input is not a terminal.
type ReaderSource struct {
	reader *bufio.Reader
	prompt io.Writer
}

// NewReaderSource creates a line source over reader. prompt may be nil to
// suppress prompts.
func NewReaderSource(reader *bufio.Reader, prompt io.Writer) *ReaderSource {
	return &ReaderSource{reader: reader, prompt: prompt}
}

func (s *ReaderSource) ReadLine(prompt string) (string, error) {
	if s.prompt != nil && prompt != "" {
		fmt.Fprint(s.prompt, prompt)
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// Last line without a trailing newline
			return trimNewline(line), nil
		}
		return "", err
	}

	return trimNewline(line), nil
}

func (s *ReaderSource) Close() error {
	return nil
}

func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// LinerSource reads lines with line editing and persistent history
type LinerSource struct {
	state       *liner.State
	historyFile string
}

// NewLinerSource takes over the terminal. historyFile may be empty to disable
// history persistence.
func NewLinerSource(historyFile string) *LinerSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(false)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}

	return &LinerSource{state: state, historyFile: historyFile}
}

func (s *LinerSource) ReadLine(prompt string) (string, error) {
	line, err := s.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", err
	}

	if line != "" {
		s.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves the history and gives the terminal back
func (s *LinerSource) Close() error {
	var saveErr error
	if s.historyFile != "" {
		if f, err := os.Create(s.historyFile); err == nil {
			_, saveErr = s.state.WriteHistory(f)
			f.Close()
		} else {
			saveErr = err
		}
	}

	if err := s.state.Close(); err != nil {
		return err
	}
	return saveErr
}

// DefaultHistoryFile returns the path of the REPL history file
func DefaultHistoryFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".bf_history"
	}
	return filepath.Join(homeDir, ".bf_history")
}
