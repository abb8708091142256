// Package scheduler implements a sweep loop over every (file, pass)
// pair, in a fixed order, run to fixpoint — a sweep that commits zero
// changes across every pair terminates the loop.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Noratrieb/go-minimize/internal/bisect"
	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/diagnostics"
	"github.com/Noratrieb/go-minimize/internal/interrupt"
	"github.com/Noratrieb/go-minimize/internal/markers"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/passes"
	"github.com/Noratrieb/go-minimize/internal/tree"
	"github.com/Noratrieb/go-minimize/internal/workspace"
)

// Scheduler drives the sweep-to-fixpoint minimization loop.
type Scheduler struct {
	ws     *workspace.Workspace
	o      oracle.Oracle
	log    *zap.Logger
	guard  *interrupt.Guard
	passes []passes.Pass
	diag   io.Writer
}

// New builds a Scheduler over ws, consulting o for every probe and
// logging progress to log. guard may be nil, in which case interrupts
// are never observed. Unparseable files are reported to stderr as a
// compiler-style diagnostic in addition to being logged.
func New(ws *workspace.Workspace, o oracle.Oracle, log *zap.Logger, guard *interrupt.Guard) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{ws: ws, o: o, log: log, guard: guard, passes: passes.All(), diag: os.Stderr}
}

// SetDiagnosticsWriter redirects parse-error diagnostic output from its
// os.Stderr default to w. Passing nil suppresses it entirely.
func (s *Scheduler) SetDiagnosticsWriter(w io.Writer) {
	s.diag = w
}

// FileResult summarizes one file's final state after the scheduler
// stops touching it (either fixpoint or interrupt).
type FileResult struct {
	Path     string
	Accepted int // total candidates folded in across every pass and sweep
}

// Run sweeps every tracked file through every pass, in the order
// visibility-narrowing -> body-stubbing -> lint-refresh ->
// unused-import-deletion -> lint-refresh -> dead-item-deletion, until a
// full sweep changes nothing or an interrupt is observed between files.
func (s *Scheduler) Run(ctx context.Context) ([]FileResult, error) {
	totals := make(map[string]int)
	for _, f := range s.ws.Files() {
		totals[f] = 0
	}

	for sweep := 1; ; sweep++ {
		s.log.Info("starting sweep", zap.Int("sweep", sweep))
		sweepChanged := false

		for _, path := range s.ws.Files() {
			if s.guard != nil && s.guard.Requested() {
				s.log.Warn("interrupt observed, stopping before next file", zap.String("file", path))
				return resultsFrom(totals), nil
			}

			changed, err := s.sweepFile(ctx, path, totals)
			if err != nil {
				return resultsFrom(totals), err
			}
			sweepChanged = sweepChanged || changed
		}

		if !sweepChanged {
			s.log.Info("fixpoint reached", zap.Int("sweeps", sweep))
			return resultsFrom(totals), nil
		}
	}
}

func (s *Scheduler) sweepFile(ctx context.Context, path string, totals map[string]int) (bool, error) {
	log := s.log.With(zap.String("file", path))

	src, err := s.ws.Read(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := tree.Parse(path, src)
	if err != nil {
		log.Warn("skipping file: parse error", zap.Error(err))
		s.reportParseError(path, src, err)
		return false, nil
	}

	fileChanged := false
	required := markers.RequiredKept(t)

	for _, p := range s.passes {
		var lints []oracle.LintRecord
		if p.Kind() == passes.LintDriven {
			// Fresh lints refer to the file as it is on disk now; re-parse
			// it so line spans and marker IDs match what they point at.
			src, err = s.ws.Read(path)
			if err != nil {
				return false, fmt.Errorf("read %s: %w", path, err)
			}
			t, err = tree.Parse(path, src)
			if err != nil {
				log.Warn("stopping file: committed text does not re-parse", zap.Error(err))
				return fileChanged, nil
			}
			required = markers.RequiredKept(t)
			lints, err = s.o.CollectLints(s.ws.Root())
			if err != nil {
				return false, fmt.Errorf("collect lints for %s: %w", path, err)
			}
		}

		ids := p.Enumerate(t, required, lints)
		if len(ids) == 0 {
			continue
		}
		set := candidate.NewSet(ids, required)

		result, err := bisect.Run(ctx, s.ws, path, s.o, p, t, set)
		if err != nil {
			return false, fmt.Errorf("%s on %s: %w", p.Name(), path, err)
		}
		if result.Changed {
			log.Info("pass accepted candidates",
				zap.String("pass", p.Name()),
				zap.Int("accepted", len(result.Accepted)))
			t = result.Tree
			totals[path] += len(result.Accepted)
			fileChanged = true
		}
	}

	return fileChanged, nil
}

// reportParseError prints a skipped file's syntax errors the way a
// compiler would, with a source excerpt when tree.Parse recovered
// positions for them. A file whose error carries no position (e.g. a
// read failure surfaced as a ParseError) still gets a bare header.
func (s *Scheduler) reportParseError(path string, src []byte, err error) {
	if s.diag == nil {
		return
	}
	pe, ok := err.(*tree.ParseError)
	if !ok {
		return
	}

	r := diagnostics.NewReporter(path, string(src))
	positions := pe.Positions()
	if len(positions) == 0 {
		fmt.Fprint(s.diag, r.Format(diagnostics.ToolError{
			Level:   diagnostics.Error,
			Code:    "E-PARSE",
			Message: pe.Error(),
		}))
		return
	}

	for _, pos := range positions {
		fmt.Fprint(s.diag, r.Format(diagnostics.ToolError{
			Level:    diagnostics.Error,
			Code:     "E-PARSE",
			Message:  "syntax error, skipping file for this run",
			Position: pos,
		}))
	}
}

func resultsFrom(totals map[string]int) []FileResult {
	out := make([]FileResult, 0, len(totals))
	for path, n := range totals {
		out = append(out, FileResult{Path: path, Accepted: n})
	}
	return out
}
