package brainfuck

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Manu343726/brainfuck/pkg/utils"
)

// interruptCheckInterval is the number of steps between context checks
const interruptCheckInterval = 4096

// StopReason indicates why a turn stopped
type StopReason int

const (
	// StopEnd indicates the instruction pointer reached the end of the program
	StopEnd StopReason = iota
	// StopError indicates an I/O or bracket error
	StopError
	// StopInterrupted indicates the turn context was cancelled
	StopInterrupted
	// StopStepLimit indicates the configured step limit was reached
	StopStepLimit
)

// String returns the string representation of a StopReason
func (r StopReason) String() string {
	switch r {
	case StopEnd:
		return "end"
	case StopError:
		return "error"
	case StopInterrupted:
		return "interrupted"
	case StopStepLimit:
		return "step_limit"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Result summarizes one execution turn
type Result struct {
	// Steps is the number of instructions executed, no-ops included
	Steps int
	// BytesRead is the number of bytes consumed by ','
	BytesRead int
	// BytesWritten is the number of bytes emitted by '.'
	BytesWritten int
	// StopReason tells why execution stopped
	StopReason StopReason
}

// Engine executes programs against a cell store
type Engine struct {
	store   CellStore
	options Options
	logger  *slog.Logger
	loops   *utils.Stack[int]
}

// NewEngine creates an engine mutating the given store
func NewEngine(store CellStore, options Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		store:   store,
		options: options,
		logger:  logger,
		loops:   utils.NewStack[int](16),
	}
}

// Execute walks program from its first byte to its end. jumps must be the
// table returned by Resolve for the same program. Output is buffered and
// flushed before every input read and before returning.
func (e *Engine) Execute(ctx context.Context, program []byte, jumps JumpTable, input io.Reader, output io.Writer) (*Result, error) {
	if output == nil {
		output = io.Discard
	}
	out := bufio.NewWriter(output)
	in := byteReader(input)
	loops := e.loops
	loops.Clear()
	result := &Result{}

	fail := func(reason StopReason, err error) (*Result, error) {
		result.StopReason = reason
		if flushErr := out.Flush(); flushErr != nil && !errors.Is(err, ErrIO) {
			err = errors.Join(err, utils.MakeError(ErrIO, "flushing output: %v", flushErr))
		}
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return fail(StopInterrupted, utils.MakeError(ErrInterrupted, "%v", err))
	}

	for ip := 0; ip < len(program); {
		if e.options.MaxSteps > 0 && result.Steps >= e.options.MaxSteps {
			return fail(StopStepLimit, utils.MakeError(ErrStepLimit, "%d steps executed, stopped at offset %d", result.Steps, ip))
		}
		result.Steps++
		if result.Steps%interruptCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fail(StopInterrupted, utils.MakeError(ErrInterrupted, "after %d steps at offset %d", result.Steps, ip))
			}
		}

		switch program[ip] {
		case '>':
			e.store.IncrementPointer()
		case '<':
			e.store.DecrementPointer()
		case '+':
			e.store.IncrementCell()
		case '-':
			e.store.DecrementCell()
		case '.':
			if err := out.WriteByte(e.store.Byte()); err != nil {
				return fail(StopError, utils.MakeError(ErrIO, "writing output at offset %d: %v", ip, err))
			}
			result.BytesWritten++
		case ',':
			if err := out.Flush(); err != nil {
				return fail(StopError, utils.MakeError(ErrIO, "flushing output at offset %d: %v", ip, err))
			}
			b, err := readByte(in)
			switch {
			case err == nil:
				e.store.SetByte(b)
				result.BytesRead++
			case errors.Is(err, io.EOF):
				e.applyEOF()
			default:
				return fail(StopError, utils.MakeError(ErrIO, "reading input at offset %d: %v", ip, err))
			}
		case '[':
			if e.store.IsZero() {
				end, ok := jumps.Match(ip)
				if !ok {
					return fail(StopError, utils.MakeError(ErrUnbalancedBrackets, "no ']' recorded for '[' at offset %d", ip))
				}
				ip = end
			} else {
				loops.Push(ip)
			}
		case ']':
			start, ok := loops.Pop()
			if !ok {
				return fail(StopError, utils.MakeError(ErrUnbalancedBrackets, "']' at offset %d closes no open loop", ip))
			}
			if !e.store.IsZero() {
				// Back to the '[' itself, which pushes its index again
				ip = start
				continue
			}
		}

		ip++
	}

	if err := out.Flush(); err != nil {
		result.StopReason = StopError
		return result, utils.MakeError(ErrIO, "flushing output: %v", err)
	}

	e.logger.Debug("turn finished", "steps", result.Steps, "read", result.BytesRead, "written", result.BytesWritten, "pointer", e.store.Pointer())
	return result, nil
}

func (e *Engine) applyEOF() {
	switch e.options.EOF {
	case EOFZero:
		e.store.SetByte(0)
	case EOFMax:
		e.store.SetMax()
	}
}

type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	for {
		n, err := s.r.Read(s.buf[:])
		if n == 1 {
			return s.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// byteReader adapts input so ',' consumes exactly one byte per read. Readers
// that already implement io.ByteReader are used as they are, so a buffered
// reader shared with a line source stays consistent.
func byteReader(input io.Reader) io.ByteReader {
	if input == nil {
		return nil
	}
	if br, ok := input.(io.ByteReader); ok {
		return br
	}
	return &singleByteReader{r: input}
}

func readByte(in io.ByteReader) (byte, error) {
	if in == nil {
		return 0, io.EOF
	}
	return in.ReadByte()
}
