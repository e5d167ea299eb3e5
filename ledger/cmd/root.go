// Package cmd implements the ledgerbin command-line tool: a cobra
// application wrapping the journal codec, the textual parser, and the
// CSV/QIF importers in a single binary.
package cmd

import (
	"os"

	"github.com/ivanpirog/coloredcobra"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	ledgerFilePath string
	colorMode      string
)

var rootCmd = &cobra.Command{
	Use:   "ledgerbin",
	Short: "A double-entry accounting ledger with a binary cache format",
	Long: `ledgerbin reads plain-text ledger files, balances and prints
them, imports transactions from CSV/QIF, and can read and write a
binary cache of the parsed journal so repeat runs skip re-parsing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, styling help output with coloredcobra
// when stdout is a terminal and leaving it plain otherwise so piped
// output stays free of escape sequences.
func Execute() error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		coloredcobra.Init(&coloredcobra.Config{
			RootCmd:  rootCmd,
			Headings: coloredcobra.HiCyan + coloredcobra.Bold + coloredcobra.Underline,
			Commands: coloredcobra.HiYellow + coloredcobra.Bold,
			Example:  coloredcobra.Italic,
			ExecName: coloredcobra.Bold,
			Flags:    coloredcobra.HiGreen,
		})
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&ledgerFilePath, "file", "f", "", "Ledger file to read (- for stdin).")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "Color mode for print/balance/register output: auto, always, or never (default auto).")
}

// colorEnabled resolves colorMode (set by --color or the rc file's
// color setting) against whether stdout is actually a terminal.
func colorEnabled() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}
