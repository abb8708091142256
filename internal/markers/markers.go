// Package markers parses declaration-level markers out of source
// comments: `// minimize-root` and `// require-deleted`, attached to a
// declaration the same way a doc comment would be.
package markers

import (
	"strings"

	"github.com/dave/dst"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

const (
	rootMarker    = "minimize-root"
	deletedMarker = "require-deleted"
)

// RequiredKept returns the set of CandidateIds carrying `// minimize-root`,
// immune to every pass.
func RequiredKept(t *tree.Tree) map[candidate.ID]bool {
	required := make(map[candidate.ID]bool)
	for _, id := range t.DeclIDs() {
		node := t.NodeFor(id)
		if node == nil {
			continue
		}
		if hasMarker(node, rootMarker) {
			required[id] = true
		}
		// A comment above an ungrouped var/const/type declaration belongs
		// to its GenDecl, not to the spec, so check the enclosing decl too.
		if id.Spec >= 0 && hasMarker(t.Decl(id.Decl), rootMarker) {
			required[id] = true
			required[candidate.DeclID(id.Decl)] = true
		}
	}
	return required
}

// RequireDeleted returns the CandidateIds carrying `// require-deleted`.
// The core never reads this itself; it is exposed so an external
// verification harness can be built against this package instead of
// re-parsing comments.
func RequireDeleted(t *tree.Tree) []candidate.ID {
	var ids []candidate.ID
	for _, id := range t.DeclIDs() {
		node := t.NodeFor(id)
		if node == nil {
			continue
		}
		if hasMarker(node, deletedMarker) || (id.Spec >= 0 && hasMarker(t.Decl(id.Decl), deletedMarker)) {
			ids = append(ids, id)
		}
	}
	return ids
}

func hasMarker(node dst.Node, marker string) bool {
	decs := node.Decorations()
	if decs == nil {
		return false
	}
	for _, line := range decs.Start {
		if containsMarker(line, marker) {
			return true
		}
	}
	for _, line := range decs.End {
		if containsMarker(line, marker) {
			return true
		}
	}
	return false
}

func containsMarker(comment, marker string) bool {
	c := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.EqualFold(c, marker) || strings.Contains(strings.ToLower(comment), marker)
}
