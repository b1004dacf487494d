package brainfuck

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, input string) (*Session, *bytes.Buffer) {
	t.Helper()
	var output bytes.Buffer
	session, err := NewSession(DefaultOptions(), strings.NewReader(input), &output, nil)
	require.NoError(t, err)
	return session, &output
}

func TestSession_StatePersistsAcrossTurns(t *testing.T) {
	session, output := newTestSession(t, "")
	ctx := context.Background()

	_, err := session.Turn(ctx, []byte("+++"))
	require.NoError(t, err)
	_, err = session.Turn(ctx, []byte("."))
	require.NoError(t, err)

	assert.Equal(t, []byte{3}, output.Bytes())
	assert.Equal(t, 2, session.Turns())
}

func TestSession_PointerPersistsAcrossTurns(t *testing.T) {
	session, output := newTestSession(t, "")
	ctx := context.Background()

	for _, source := range []string{">>", "++", "<<", ">>."} {
		_, err := session.Turn(ctx, []byte(source))
		require.NoError(t, err)
	}

	assert.Equal(t, []byte{2}, output.Bytes())
	assert.Equal(t, 2, session.Store().Pointer())
}

func TestSession_UnbalancedTurnHasNoSideEffects(t *testing.T) {
	session, output := newTestSession(t, "")
	ctx := context.Background()

	_, err := session.Turn(ctx, []byte("++>+"))
	require.NoError(t, err)
	before := session.Snapshot()

	for _, source := range []string{"[+", "+.]", "+>[[-]"} {
		result, err := session.Turn(ctx, []byte(source))
		assert.ErrorIs(t, err, ErrUnbalancedBrackets)
		assert.Equal(t, StopError, result.StopReason)
		assert.Zero(t, result.Steps)
	}

	after := session.Snapshot()
	assert.Equal(t, before.Cells, after.Cells)
	assert.Equal(t, before.Pointer, after.Pointer)
	assert.Empty(t, output.Bytes())
	assert.Equal(t, 4, session.Turns())
}

func TestSession_RecoversAfterFailedTurn(t *testing.T) {
	session, output := newTestSession(t, "")
	ctx := context.Background()

	_, err := session.Turn(ctx, []byte("]"))
	require.Error(t, err)

	_, err = session.Turn(ctx, []byte("+."))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, output.Bytes())
}

func TestSession_InputSharedAcrossTurns(t *testing.T) {
	session, output := newTestSession(t, "xy")
	ctx := context.Background()

	_, err := session.Turn(ctx, []byte(",."))
	require.NoError(t, err)
	_, err = session.Turn(ctx, []byte(",."))
	require.NoError(t, err)

	assert.Equal(t, "xy", output.String())
}

func TestSession_Reset(t *testing.T) {
	session, _ := newTestSession(t, "")
	_, err := session.Turn(context.Background(), []byte("+>+>+"))
	require.NoError(t, err)

	session.Reset()
	state := session.Snapshot()
	assert.Empty(t, state.Cells)
	assert.Zero(t, state.Pointer)
	assert.Zero(t, state.Turns)
}

func TestSession_LogsResolvedProgram(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	session, err := NewSession(DefaultOptions(), nil, nil, logger)
	require.NoError(t, err)

	_, err = session.Turn(context.Background(), []byte("+[-] [>] x"))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "instructions=7")
	assert.Contains(t, logs.String(), "loops=2")
}

func TestSession_RestoreResetsPreviousState(t *testing.T) {
	session, _ := newTestSession(t, "")
	_, err := session.Turn(context.Background(), []byte("+++>++"))
	require.NoError(t, err)

	require.NoError(t, session.Restore(State{TapeSize: DefaultTapeSize, CellWidth: DefaultCellWidth, Pointer: 3, Cells: map[int]uint64{3: 9}}))
	state := session.Snapshot()
	assert.Equal(t, map[int]uint64{3: 9}, state.Cells)
	assert.Equal(t, 3, state.Pointer)
	assert.Zero(t, state.Turns)
}

func TestNewSession_InvalidOptions(t *testing.T) {
	options := DefaultOptions()
	options.TapeSize = 0

	_, err := NewSession(options, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
