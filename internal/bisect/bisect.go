// Package bisect implements recursive-halving search over one pass's
// candidate set for one file, folding successful halves into an
// accepted set, permanently rejecting failing singletons.
package bisect

import (
	"context"
	"fmt"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/measure"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/passes"
	"github.com/Noratrieb/go-minimize/internal/tree"
	"github.com/Noratrieb/go-minimize/internal/workspace"
)

// Result reports what the driver did to a (file, pass) episode.
type Result struct {
	// Tree is the resulting, possibly-mutated tree: either the original
	// (if nothing was accepted) or a new tree reflecting every accepted
	// transformation.
	Tree *tree.Tree
	// Accepted is the final, folded-in candidate subset.
	Accepted candidate.Subset
	// Changed reports whether anything was actually accepted.
	Changed bool
}

// TransportError wraps an oracle-transport failure, treated as fatal:
// the caller must abort rather than continue probing.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return fmt.Sprintf("oracle transport failure: %v", e.Err) }
func (e *TransportError) Unwrap() error  { return e.Err }

// SizeIncreaseError means an accepted trial grew the tree instead of
// shrinking or preserving it, violating the monotone-reduction
// invariant the scheduler's fixpoint argument depends on. This points
// at a bug in the pass that produced the trial, not at the oracle.
type SizeIncreaseError struct {
	Pass   string
	Before int
	After  int
}

func (e *SizeIncreaseError) Error() string {
	return fmt.Sprintf("%s: accepted trial increased size from %d to %d", e.Pass, e.Before, e.After)
}

// Run bisects the transformable members of candidates for pass p
// against t, writing trial states to path within ws and consulting o to
// decide whether each trial still reproduces. It never re-enumerates
// mid-pass: every trial applies the accepted candidates plus the batch
// under test to a fresh clone of t, the tree the candidates were
// enumerated against, so an ID is never resolved against a tree that an
// earlier acceptance has already changed.
func Run(ctx context.Context, ws *workspace.Workspace, path string, o oracle.Oracle, p passes.Pass, t *tree.Tree, candidates candidate.Set) (Result, error) {
	committed := t
	committedText, err := tree.Print(committed)
	if err != nil {
		return Result{}, fmt.Errorf("print initial state: %w", err)
	}
	committedSize := measure.Size(committed)

	accepted := candidate.NewSubset(nil)
	queue := []candidate.Subset{candidate.NewSubset(candidates.Transformable())}

	for len(queue) > 0 {
		batch := queue[0]
		queue = queue[1:]
		if len(batch) == 0 {
			continue
		}

		trial := candidate.Union(accepted, batch)
		clone := t.Clone()
		changed := p.Apply(clone, trial)
		if !changed {
			continue
		}

		text, printErr := tree.Print(clone)
		ok := printErr == nil
		if ok {
			if writeErr := ws.Write(path, text); writeErr != nil {
				return Result{}, fmt.Errorf("write trial: %w", writeErr)
			}
			result, probeErr := o.Reproduce(ws.Root())
			if probeErr != nil {
				_ = ws.Write(path, committedText)
				return Result{}, &TransportError{Err: probeErr}
			}
			ok = result == oracle.Yes
		}

		if ok {
			newSize := measure.Size(clone)
			if newSize > committedSize {
				_ = ws.Write(path, committedText)
				return Result{}, &SizeIncreaseError{Pass: p.Name(), Before: committedSize, After: newSize}
			}
			accepted = trial
			committed = clone
			committedText = text
			committedSize = newSize
			ws.Commit()
			continue
		}

		// Restore the last known-reproducing state before deciding what
		// to do with this batch: the oracle never observes a state worse
		// than the last accepted one for longer than a single probe.
		if writeErr := ws.Write(path, committedText); writeErr != nil {
			return Result{}, fmt.Errorf("rollback trial: %w", writeErr)
		}

		if len(batch) <= 1 {
			// Permanently rejected: do not requeue.
			continue
		}
		left, right := split(batch)
		queue = append(queue, left, right)
	}

	return Result{Tree: committed, Accepted: accepted, Changed: len(accepted) > 0}, nil
}

// split partitions batch into two halves by the stable candidate order,
// so that repeated bisection of the same set is deterministic.
func split(batch candidate.Subset) (candidate.Subset, candidate.Subset) {
	ids := batch.Sorted()
	mid := len(ids) / 2
	return candidate.NewSubset(ids[:mid]), candidate.NewSubset(ids[mid:])
}
