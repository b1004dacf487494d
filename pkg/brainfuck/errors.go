package brainfuck

import "errors"

var (
	// ErrUnbalancedBrackets is returned when a '[' or ']' has no partner in the program
	ErrUnbalancedBrackets = errors.New("unbalanced brackets")
	// ErrIO wraps failures of the input or output collaborators
	ErrIO = errors.New("i/o error")
	// ErrStepLimit is returned when a turn executes more instructions than allowed
	ErrStepLimit = errors.New("step limit exceeded")
	// ErrInterrupted is returned when a turn is cancelled through its context
	ErrInterrupted = errors.New("interrupted")
	// ErrInvalidOptions is returned by Options.Validate
	ErrInvalidOptions = errors.New("invalid options")
)
