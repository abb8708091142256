package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the minimize version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("minimize %s (%s)\n", Version, GitCommit)
		return nil
	},
}
