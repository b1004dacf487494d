package brainfuck

import (
	"github.com/Manu343726/brainfuck/pkg/utils"
	"golang.org/x/exp/constraints"
)

// CellStore is the width independent view of a tape used by the engine
type CellStore interface {
	IncrementPointer()
	DecrementPointer()
	IncrementCell()
	DecrementCell()
	// IsZero reports whether the current cell is 0
	IsZero() bool
	// Byte returns the low byte of the current cell
	Byte() byte
	// SetByte stores b, zero extended, into the current cell
	SetByte(b byte)
	// SetMax stores the all-ones value into the current cell
	SetMax()
	// Pointer returns the current cell index
	Pointer() int
	// Len returns the number of cells
	Len() int
	// Width returns the cell width in bits
	Width() int
	// ValueAt returns the value of the cell at index i, wrapped into the tape
	ValueAt(i int) uint64
	// Seek moves the pointer to index i, wrapped into the tape
	Seek(i int)
	// SetValue stores value, truncated to the cell width, into the current cell
	SetValue(value uint64)
	// Reset zeroes every cell and moves the pointer back to 0
	Reset()
}

// Tape is a fixed capacity array of cells plus a cell pointer. All arithmetic
// is modular: the pointer wraps modulo the tape length and cells wrap at
// their native width.
type Tape[Cell constraints.Unsigned] struct {
	cells   []Cell
	pointer int
}

// NewTape returns a zero initialized tape of size cells
func NewTape[Cell constraints.Unsigned](size int) *Tape[Cell] {
	return &Tape[Cell]{
		cells: make([]Cell, size),
	}
}

func (t *Tape[Cell]) IncrementPointer() {
	t.pointer++
	if t.pointer == len(t.cells) {
		t.pointer = 0
	}
}

func (t *Tape[Cell]) DecrementPointer() {
	if t.pointer == 0 {
		t.pointer = len(t.cells)
	}
	t.pointer--
}

func (t *Tape[Cell]) IncrementCell() {
	t.cells[t.pointer]++
}

func (t *Tape[Cell]) DecrementCell() {
	t.cells[t.pointer]--
}

// Cell returns the value of the current cell
func (t *Tape[Cell]) Cell() Cell {
	return t.cells[t.pointer]
}

// SetCell replaces the value of the current cell
func (t *Tape[Cell]) SetCell(value Cell) {
	t.cells[t.pointer] = value
}

func (t *Tape[Cell]) IsZero() bool {
	return t.Cell() == 0
}

func (t *Tape[Cell]) Byte() byte {
	return byte(t.Cell())
}

func (t *Tape[Cell]) SetByte(b byte) {
	t.SetCell(Cell(b))
}

func (t *Tape[Cell]) SetMax() {
	t.SetCell(^Cell(0))
}

func (t *Tape[Cell]) Pointer() int {
	return t.pointer
}

func (t *Tape[Cell]) Len() int {
	return len(t.cells)
}

func (t *Tape[Cell]) Width() int {
	return utils.SizeofBits[Cell]()
}

// At returns the cell at index i. Negative and out of range indices wrap
func (t *Tape[Cell]) At(i int) Cell {
	return t.cells[wrapIndex(i, len(t.cells))]
}

func (t *Tape[Cell]) ValueAt(i int) uint64 {
	return uint64(t.At(i))
}

func (t *Tape[Cell]) Seek(i int) {
	t.pointer = wrapIndex(i, len(t.cells))
}

func (t *Tape[Cell]) SetValue(value uint64) {
	t.SetCell(Cell(value))
}

func (t *Tape[Cell]) Reset() {
	clear(t.cells)
	t.pointer = 0
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// NewCellStore builds the tape described by the options
func NewCellStore(options Options) (CellStore, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	switch options.CellWidth {
	case 16:
		return NewTape[uint16](options.TapeSize), nil
	default:
		return NewTape[uint8](options.TapeSize), nil
	}
}
