package cmd

import (
	"testing"

	"github.com/Manu343726/brainfuck/cmd/interp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, command := range RootCmd.Commands() {
		names = append(names, command.Name())
	}

	for _, expected := range []string{"run", "repl", "inspect", "tools"} {
		assert.Contains(t, names, expected)
	}
}

func TestRootCmd_FlagsBoundToConfig(t *testing.T) {
	for _, key := range interp.ConfigKeys {
		assert.NotNil(t, RootCmd.PersistentFlags().Lookup(key), key)
	}

	require.NoError(t, RootCmd.PersistentFlags().Set(interp.KeyTapeSize, "300"))
	assert.Equal(t, 300, viper.GetInt(interp.KeyTapeSize))

	require.NoError(t, RootCmd.PersistentFlags().Set(interp.KeyEOF, "zero"))
	options, err := interp.OptionsFromConfig(viper.GetViper())
	require.NoError(t, err)
	assert.Equal(t, 300, options.TapeSize)
	assert.Equal(t, "zero", options.EOF.String())
}
