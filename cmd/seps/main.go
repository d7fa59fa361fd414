// Command seps converts raster artwork into halftoned print
// separations: one bitmap per ink channel plus an optional colorized
// preview. The engine itself never touches disk; this command plays
// the collaborator roles around it: image codecs, YAML templates and
// flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goseps/seps"
)

var rootCmd = &cobra.Command{
	Use:     "seps",
	Short:   "Generate halftoned print separations from raster images",
	Version: seps.Version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
