package tools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/brainfuck/cmd/interp"
	"github.com/Manu343726/brainfuck/pkg/brainfuck"
	"github.com/Manu343726/brainfuck/pkg/utils"
	"github.com/spf13/cobra"
)

var supportedModules = map[string]func() string{
	"instructions": brainfuck.DocString,
	"config":       configDocString,
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show interpreter documentation",
	Long: `Dumps the documentation of the specified module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(utils.SortedKeys(supportedModules), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: utils.SortedKeys(supportedModules),
	Run: func(cmd *cobra.Command, args []string) {
		outputFile, _ := cmd.Flags().GetString("output")
		if err := writeDocs(args[0], outputFile, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing documentation:", err)
			os.Exit(interp.ExitLoad)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}

func writeDocs(module string, outputFile string, stdout io.Writer) error {
	docs, ok := supportedModules[module]
	if !ok {
		return fmt.Errorf("unknown module '%s'", module)
	}

	if outputFile == "" {
		_, err := fmt.Fprintln(stdout, docs())
		return err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = fmt.Fprintln(file, docs())
	return err
}

func configDocString() string {
	var builder strings.Builder

	builder.WriteString("Configuration keys\n\n")
	builder.WriteString("Every key can be set as a flag (--key), in $HOME/.bf.yaml or through the\n")
	builder.WriteString("BF_KEY environment variable (dashes become underscores).\n\n")
	for _, key := range interp.ConfigKeys {
		fmt.Fprintf(&builder, "  %-14s BF_%s\n", key, strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	}

	return builder.String()
}
