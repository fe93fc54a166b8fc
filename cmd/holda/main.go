// Command holda generates methods for single-field wrapper types.
//
// Mark a struct with //holda:wrapper or //holda:string and run
//
//	holda gen ./...
//
// or add a go:generate line to the package:
//
//	//go:generate go run holda/cmd/holda gen .
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:           "holda",
	Short:         "Newtype wrapper generator",
	Long:          `holda expands single-field wrapper structs into constructors, accessors, comparison, hashing, cloning and serialization methods that delegate to the wrapped value.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = versionString()

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug information")
	rootCmd.PersistentFlags().String("config", "", "path to holda.yaml or holda.toml (default: searched upwards)")
	rootCmd.PersistentFlags().StringSlice("tags", nil, "build tags used when loading packages")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(exitCode(err))
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
