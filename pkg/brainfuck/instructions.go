package brainfuck

import (
	"fmt"
	"strings"
)

// Instruction describes one of the eight Brainfuck instructions
type Instruction struct {
	Symbol      byte
	Name        string
	Description string
}

// Instructions lists the instruction set in documentation order
var Instructions = []Instruction{
	{'>', "right", "Move the cell pointer one cell right, wrapping to cell 0 after the last cell"},
	{'<', "left", "Move the cell pointer one cell left, wrapping to the last cell before cell 0"},
	{'+', "increment", "Add 1 to the current cell, wrapping to 0 past the maximum cell value"},
	{'-', "decrement", "Subtract 1 from the current cell, wrapping to the maximum cell value below 0"},
	{'.', "output", "Write the low byte of the current cell to the output"},
	{',', "input", "Read one byte into the current cell. On end of input the eof policy applies"},
	{'[', "loop", "If the current cell is 0, jump past the matching ']'"},
	{']', "end loop", "If the current cell is not 0, jump back to the matching '['"},
}

// IsInstruction reports whether b is one of the eight instructions
func IsInstruction(b byte) bool {
	switch b {
	case '>', '<', '+', '-', '.', ',', '[', ']':
		return true
	}
	return false
}

// DocString returns the instruction set reference as text
func DocString() string {
	var builder strings.Builder

	builder.WriteString("Brainfuck instruction set\n\n")
	for _, instruction := range Instructions {
		fmt.Fprintf(&builder, "  %c  %-10s %s\n", instruction.Symbol, instruction.Name, instruction.Description)
	}
	builder.WriteString("\nAny other byte is a no-op.\n")

	return builder.String()
}
