package brainfuck

import (
	"github.com/Manu343726/brainfuck/pkg/utils"
	"gopkg.in/yaml.v3"
)

// State is a snapshot of a session tape
type State struct {
	TapeSize  int    `yaml:"tape_size"`
	CellWidth int    `yaml:"cell_width"`
	EOF       string `yaml:"eof"`
	Pointer   int    `yaml:"pointer"`
	Turns     int    `yaml:"turns"`
	// Cells holds the non-zero cells by index
	Cells map[int]uint64 `yaml:"cells,omitempty"`
}

// Snapshot captures the current session state
func (s *Session) Snapshot() State {
	state := State{
		TapeSize:  s.store.Len(),
		CellWidth: s.store.Width(),
		EOF:       s.options.EOF.String(),
		Pointer:   s.store.Pointer(),
		Turns:     s.turns,
		Cells:     make(map[int]uint64),
	}

	for i := 0; i < s.store.Len(); i++ {
		if value := s.store.ValueAt(i); value != 0 {
			state.Cells[i] = value
		}
	}

	return state
}

// YAML encodes the state as a YAML document
func (s State) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// ParseState decodes a state previously encoded with State.YAML
func ParseState(data []byte) (State, error) {
	var state State
	err := yaml.Unmarshal(data, &state)
	return state, err
}

// Restore replaces the session tape with a snapshot. The snapshot must come
// from a tape of the same size and cell width.
func (s *Session) Restore(state State) error {
	if state.TapeSize != s.store.Len() || state.CellWidth != s.store.Width() {
		return utils.MakeError(ErrInvalidOptions, "snapshot of a %d cells %d-bit tape cannot be restored into a %d cells %d-bit tape",
			state.TapeSize, state.CellWidth, s.store.Len(), s.store.Width())
	}
	if state.Pointer < 0 || state.Pointer >= s.store.Len() {
		return utils.MakeError(ErrInvalidOptions, "snapshot pointer %d out of range", state.Pointer)
	}

	limit := uint64(1)<<s.store.Width() - 1
	for i, value := range state.Cells {
		if i < 0 || i >= s.store.Len() {
			return utils.MakeError(ErrInvalidOptions, "snapshot cell %d out of range", i)
		}
		if value > limit {
			return utils.MakeError(ErrInvalidOptions, "snapshot cell %d value %d does not fit in %d bits", i, value, s.store.Width())
		}
	}

	s.Reset()
	for i, value := range state.Cells {
		s.store.Seek(i)
		s.store.SetValue(value)
	}
	s.store.Seek(state.Pointer)
	s.turns = state.Turns
	return nil
}
