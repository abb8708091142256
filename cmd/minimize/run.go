package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Noratrieb/go-minimize/internal/interrupt"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/scheduler"
	"github.com/Noratrieb/go-minimize/internal/workspace"
)

var runVerbose bool

func init() {
	bindConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "enable development-mode logging")
}

var runCmd = &cobra.Command{
	Use:   "run <dir>",
	Short: "Minimize every .go file under dir",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		files, err := discoverGoFiles(root)
		if err != nil {
			return fmt.Errorf("discover source files under %s: %w", root, err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .go files found under %s", root)
		}

		log, err := newLogger(runVerbose)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		ws := workspace.New(root, files)
		o := oracle.New(cfg)
		guard := interrupt.New()
		guard.Install()
		defer guard.Uninstall()

		sched := scheduler.New(ws, o, log, guard)

		bold := color.New(color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d file(s) under %s\n", bold("minimizing"), len(files), root)

		results, err := sched.Run(context.Background())
		if err != nil {
			return fmt.Errorf("minimize: %w", err)
		}

		total := 0
		for _, r := range results {
			if r.Accepted == 0 {
				continue
			}
			fmt.Printf("  %s %s: %d candidate(s) removed or narrowed\n", green("✓"), r.Path, r.Accepted)
			total += r.Accepted
		}
		fmt.Printf("%s %d total candidate(s) folded in\n", bold("done:"), total)

		return nil
	},
}

// discoverGoFiles walks root and returns every *.go file's path relative
// to root, skipping hidden directories (e.g. .git) and vendor trees.
func discoverGoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
