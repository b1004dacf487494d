package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/brainfuck/cmd/interp"
	"github.com/Manu343726/brainfuck/cmd/tools"
	"github.com/Manu343726/brainfuck/pkg/brainfuck"
	"github.com/Manu343726/brainfuck/pkg/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bf [file]",
	Short: "An interactive Brainfuck interpreter",
	Long: `bf runs Brainfuck programs on a fixed size tape.

With a file argument the whole file is run once. Without arguments bf starts a
read-eval-print loop: every line is run as a separate program against the same
tape, so cell values and the cell pointer carry over from one line to the next.
Submit an empty line to leave the loop.

Example:
  bf hello.bf
  bf --eof zero --tape-size 30000`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			interp.Exit(interp.RunFile(cmd.Context(), args[0]))
			return
		}
		interp.Exit(interp.RunRepl(cmd.Context()))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(interp.ExitUsage)
	}
}

func init() {
	RootCmd.AddCommand(interp.RunCmd, interp.ReplCmd, interp.InspectCmd, tools.ToolsCmd)
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bf.yaml)")
	flags.Int(interp.KeyTapeSize, brainfuck.DefaultTapeSize, "Number of tape cells")
	flags.Int(interp.KeyCellWidth, brainfuck.DefaultCellWidth, "Cell width in bits (8 or 16)")
	flags.String(interp.KeyEOF, brainfuck.EOFUnchanged.String(), "Value stored by ',' on end of input: unchanged, zero or max")
	flags.IntP(interp.KeyMaxSteps, "n", 0, "Maximum number of instructions per turn (0 = unlimited)")
	flags.String(interp.KeyPrompt, repl.DefaultPrompt, "Interactive prompt")
	flags.String(interp.KeyHistoryFile, "", "Interactive history file (default is $HOME/.bf_history)")
	flags.Bool(interp.KeyDumpState, false, "Print the tape state as YAML to stderr after each turn")
	flags.String(interp.KeyStateFile, "", "Load the tape from this YAML file at start and save it back at exit")
	flags.String(interp.KeyLogLevel, "warn", "Log level: debug, info, warn, error")
	flags.String(interp.KeyLogFile, "", "Also write JSON logs to this file")

	for _, key := range interp.ConfigKeys {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(key)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".bf" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bf")
	}

	viper.SetEnvPrefix("BF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		os.Exit(interp.ExitUsage)
	}
}
