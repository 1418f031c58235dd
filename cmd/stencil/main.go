package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// logger reports notices and diagnostics to stderr; declarations go to the
// output sink, never here.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "stencil",
	Short:         "Extract the public surface of compiled metadata modules",
	Long:          "Stencil resolves metadata containers from a search path and re-emits their externally visible declarations as minimal, deterministic source with all bodies stripped.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run; prints help by default.
}

func init() {
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(packCmd)
}
