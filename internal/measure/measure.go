// Package measure computes a well-founded size measure: a strictly
// positive, integer-valued quantity that every successful probe must
// not increase, which is what guarantees the scheduler's fixpoint
// terminates.
package measure

import (
	"github.com/dave/dst"

	"github.com/Noratrieb/go-minimize/internal/tree"
)

// Size counts the file node and every declaration, spec, and statement
// node in it (a block counts as one statement): count of items plus the
// sum of body sizes, where a body's size is its statement count.
// Expressions are not counted.
func Size(t *tree.Tree) int {
	n := 0
	dst.Inspect(t.File(), func(node dst.Node) bool {
		switch node.(type) {
		case nil:
			return false
		case *dst.File, dst.Decl, dst.Spec, dst.Stmt:
			n++
		}
		return true
	})
	return n
}
