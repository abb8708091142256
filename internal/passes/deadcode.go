package passes

import (
	"github.com/dave/dst"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

// DeadItemDeletion consumes LintRecord{Kind: DeadCode} (staticcheck's
// U1000/unused analyzer, or go vet's unreachable/unused diagnostics) and
// deletes the whole top-level declaration at the reported span.
type DeadItemDeletion struct{}

func (*DeadItemDeletion) Name() string { return "dead-item-deletion" }
func (*DeadItemDeletion) Kind() Kind   { return LintDriven }

func (*DeadItemDeletion) Enumerate(t *tree.Tree, required map[candidate.ID]bool, lints []oracle.LintRecord) []candidate.ID {
	var ids []candidate.ID
	seen := map[candidate.ID]bool{}
	for _, lint := range lints {
		if lint.Kind != oracle.DeadCode || !sameFile(lint.File, t.Path) {
			continue
		}
		di := t.DeclAtLine(lint.Line)
		if di < 0 {
			continue
		}
		id := candidate.DeclID(di)
		if required[id] || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (*DeadItemDeletion) Apply(t *tree.Tree, ids candidate.Subset) bool {
	toDelete := map[int]bool{}
	for id := range ids {
		if id.Spec < 0 {
			toDelete[id.Decl] = true
		}
	}
	if len(toDelete) == 0 {
		return false
	}

	changed := false
	var newDecls []dst.Decl
	for di, decl := range t.File().Decls {
		if toDelete[di] {
			changed = true
			continue
		}
		newDecls = append(newDecls, decl)
	}
	t.File().Decls = newDecls
	return changed
}
