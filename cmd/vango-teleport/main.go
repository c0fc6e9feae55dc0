package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/teleport/internal/errors"
	"golang.org/x/term"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !term.IsTerminal(int(os.Stderr.Fd())) {
			errors.DisableColors()
		}
		format, _ := rootCmd.PersistentFlags().GetString("error-format")
		printError(os.Stderr, err, format)
		os.Exit(1)
	}
}

// printError writes err in format: pretty, compact or json. Errors without
// a code are always printed plainly.
func printError(w io.Writer, err error, format string) {
	var ve *errors.VangoError
	if !stderrors.As(err, &ve) {
		errors.Fprint(w, err)
		return
	}
	switch format {
	case "compact":
		fmt.Fprintln(w, ve.FormatCompact())
	case "json":
		fmt.Fprintln(w, ve.FormatJSON())
	default:
		errors.Fprint(w, err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vango-teleport",
		Short: "Render and inspect teleported component trees",
		Long: `vango-teleport mounts components that render part of their tree
into another container of the document, and prints the result.

  • render a demo dialog into any target of an HTML page
  • redirect custom events from the dialog back to its owner
  • load, show and validate teleport configuration files`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./teleport.{json,yaml,yml,toml})")
	rootCmd.PersistentFlags().String("error-format", "pretty", "Error output: pretty, compact or json")

	rootCmd.AddCommand(
		renderCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}

// execute runs the root command with args and captured output.
func execute(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}
