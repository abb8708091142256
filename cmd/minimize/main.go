// Command minimize is the CLI entry point: it binds the engine's
// configuration fields to flags/env/a config file and drives the core
// engine (internal/scheduler) against a directory of Go source files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Noratrieb/go-minimize/internal/diagnostics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minimize",
		Short: "Minimize a Go source regression to the smallest reproducing program",
		Long: `minimize repeatedly narrows visibility, stubs bodies, and deletes
dead imports and declarations from a tree of Go files, keeping only the
changes an external oracle (go vet, staticcheck, or a user script)
confirms still reproduce the regression.`,
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		reportFatal(err)
		os.Exit(1)
	}
}

// reportFatal prints a top-level fatal error the way a compiler
// diagnostic would be shown: no source position is available at this
// level, so the Reporter falls back to a bare colored header.
func reportFatal(err error) {
	r := diagnostics.NewReporter("", "")
	fmt.Fprint(os.Stderr, r.Format(diagnostics.ToolError{
		Level:   diagnostics.Error,
		Message: err.Error(),
	}))
}
