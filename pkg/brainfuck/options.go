package brainfuck

import (
	"fmt"
	"strings"

	"github.com/Manu343726/brainfuck/pkg/utils"
)

// DefaultTapeSize matches the 16-bit cell pointer of the reference machine
const DefaultTapeSize = 65536

// MaxTapeSize bounds the tape allocation
const MaxTapeSize = 1 << 24

// DefaultCellWidth is the width in bits of a tape cell
const DefaultCellWidth = 8

// EOFPolicy decides what lands in the current cell when ',' finds the input exhausted
type EOFPolicy int

const (
	// EOFUnchanged leaves the cell as it was
	EOFUnchanged EOFPolicy = iota
	// EOFZero stores 0
	EOFZero
	// EOFMax stores the all-ones cell value (255 for 8-bit cells, i.e. -1)
	EOFMax
)

var eofPolicyNames = map[EOFPolicy]string{
	EOFUnchanged: "unchanged",
	EOFZero:      "zero",
	EOFMax:       "max",
}

// String returns the configuration name of the policy
func (p EOFPolicy) String() string {
	if name, ok := eofPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// ParseEOFPolicy parses a policy from its configuration name
func ParseEOFPolicy(name string) (EOFPolicy, error) {
	for policy, policyName := range eofPolicyNames {
		if strings.EqualFold(name, policyName) {
			return policy, nil
		}
	}
	return EOFUnchanged, utils.MakeError(ErrInvalidOptions, "unknown eof policy '%s' (expected one of: unchanged, zero, max)", name)
}

// Options configures a Session
type Options struct {
	// TapeSize is the number of cells. The cell pointer wraps modulo TapeSize
	TapeSize int
	// CellWidth is the cell width in bits, 8 or 16
	CellWidth int
	// EOF is the input exhaustion policy for ','
	EOF EOFPolicy
	// MaxSteps limits the instructions executed per turn. 0 means unlimited
	MaxSteps int
}

// DefaultOptions returns the reference machine configuration
func DefaultOptions() Options {
	return Options{
		TapeSize:  DefaultTapeSize,
		CellWidth: DefaultCellWidth,
		EOF:       EOFUnchanged,
	}
}

// Validate checks the options are usable to build a session
func (o Options) Validate() error {
	if o.TapeSize <= 0 {
		return utils.MakeError(ErrInvalidOptions, "tape size must be positive, got %d", o.TapeSize)
	}
	if o.TapeSize > MaxTapeSize {
		return utils.MakeError(ErrInvalidOptions, "tape size cannot exceed %d cells, got %d", MaxTapeSize, o.TapeSize)
	}
	if o.CellWidth != 8 && o.CellWidth != 16 {
		return utils.MakeError(ErrInvalidOptions, "cell width must be 8 or 16 bits, got %d", o.CellWidth)
	}
	if _, ok := eofPolicyNames[o.EOF]; !ok {
		return utils.MakeError(ErrInvalidOptions, "unknown eof policy %v", o.EOF)
	}
	if o.MaxSteps < 0 {
		return utils.MakeError(ErrInvalidOptions, "max steps cannot be negative, got %d", o.MaxSteps)
	}
	return nil
}
