// Package passes implements the four transformation passes: visibility
// narrowing, body stubbing, unused-import deletion, and dead-item
// deletion. Each Pass enumerates its own candidate set from a Tree
// (and, for the lint-driven pair, from the prior oracle probe's lint
// records) and knows how to delete or rewrite a chosen subset.
package passes

import (
	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

// Kind distinguishes the two enumeration strategies a pass can use.
type Kind int

const (
	// Syntactic passes derive their candidate set from the tree alone.
	Syntactic Kind = iota
	// LintDriven passes derive their candidate set from the most recent
	// oracle.CollectLints call.
	LintDriven
)

// Pass is one of the four transformations this package implements.
type Pass interface {
	// Name identifies the pass for logging and scheduling order.
	Name() string

	// Kind reports whether this pass is syntactic or lint-driven.
	Kind() Kind

	// Enumerate returns the full candidate set for this pass against t,
	// excluding anything already required-kept. For a LintDriven pass,
	// lints holds the records from the most recent CollectLints call;
	// Syntactic passes ignore it.
	Enumerate(t *tree.Tree, required map[candidate.ID]bool, lints []oracle.LintRecord) []candidate.ID

	// Apply mutates t in place, applying the transformation to every id
	// in ids that still resolves against t. It reports whether anything
	// was actually changed (an empty or fully-stale ids set is a no-op
	// reported as false, which the bisection driver treats the same way
	// as "nothing left to probe").
	Apply(t *tree.Tree, ids candidate.Subset) bool
}

// All returns the four passes in sweep order: visibility narrowing,
// body stubbing, unused-import deletion, dead-item deletion.
func All() []Pass {
	return []Pass{
		&VisibilityNarrowing{},
		&BodyStubbing{},
		&UnusedImportDeletion{},
		&DeadItemDeletion{},
	}
}
