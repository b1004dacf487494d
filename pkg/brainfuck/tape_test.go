package brainfuck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTape(t *testing.T) {
	tape := NewTape[uint8](DefaultTapeSize)

	assert.Equal(t, DefaultTapeSize, tape.Len())
	assert.Equal(t, 0, tape.Pointer())
	assert.Equal(t, 8, tape.Width())
	assert.True(t, tape.IsZero())
}

func TestTape_PointerWraparound(t *testing.T) {
	t.Run("left from zero", func(t *testing.T) {
		tape := NewTape[uint8](DefaultTapeSize)
		tape.DecrementPointer()
		assert.Equal(t, DefaultTapeSize-1, tape.Pointer())
	})

	t.Run("right from last", func(t *testing.T) {
		tape := NewTape[uint8](DefaultTapeSize)
		tape.Seek(DefaultTapeSize - 1)
		tape.IncrementPointer()
		assert.Equal(t, 0, tape.Pointer())
	})

	t.Run("full lap is identity", func(t *testing.T) {
		for _, size := range []int{1, 7, 30000, DefaultTapeSize} {
			tape := NewTape[uint8](size)
			tape.Seek(size / 2)
			for i := 0; i < size; i++ {
				tape.IncrementPointer()
			}
			assert.Equal(t, size/2, tape.Pointer(), "size %d", size)
		}
	})
}

func TestTape_CellWraparound(t *testing.T) {
	t.Run("8 bit", func(t *testing.T) {
		tape := NewTape[uint8](4)
		tape.DecrementCell()
		assert.Equal(t, uint8(255), tape.Cell())
		tape.IncrementCell()
		assert.Equal(t, uint8(0), tape.Cell())

		for i := 0; i < 256; i++ {
			tape.IncrementCell()
		}
		assert.True(t, tape.IsZero())
	})

	t.Run("16 bit", func(t *testing.T) {
		tape := NewTape[uint16](4)
		tape.DecrementCell()
		assert.Equal(t, uint16(0xFFFF), tape.Cell())
		assert.Equal(t, byte(0xFF), tape.Byte())
		assert.Equal(t, 16, tape.Width())
	})
}

func TestTape_Access(t *testing.T) {
	tape := NewTape[uint16](8)

	tape.SetByte('A')
	assert.Equal(t, uint16('A'), tape.Cell())

	tape.SetMax()
	assert.Equal(t, uint16(0xFFFF), tape.Cell())

	tape.SetCell(0x1234)
	assert.Equal(t, byte(0x34), tape.Byte())

	tape.DecrementPointer()
	tape.SetValue(0x10042)
	assert.Equal(t, uint16(0x0042), tape.At(-1))
	assert.Equal(t, uint64(0x0042), tape.ValueAt(7))
	assert.Equal(t, uint64(0x1234), tape.ValueAt(8))

	tape.Reset()
	assert.Equal(t, 0, tape.Pointer())
	for i := 0; i < tape.Len(); i++ {
		assert.Zero(t, tape.At(i))
	}
}

func TestNewCellStore(t *testing.T) {
	store, err := NewCellStore(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 8, store.Width())
	assert.Equal(t, DefaultTapeSize, store.Len())

	options := DefaultOptions()
	options.CellWidth = 16
	options.TapeSize = 100
	store, err = NewCellStore(options)
	require.NoError(t, err)
	assert.Equal(t, 16, store.Width())
	assert.Equal(t, 100, store.Len())

	options.CellWidth = 32
	_, err = NewCellStore(options)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
