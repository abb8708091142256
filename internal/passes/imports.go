package passes

import (
	"go/token"

	"github.com/dave/dst"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

// UnusedImportDeletion consumes LintRecord{Kind: UnusedImport} and
// deletes the import spec at the reported line.
type UnusedImportDeletion struct{}

func (*UnusedImportDeletion) Name() string { return "unused-import-deletion" }
func (*UnusedImportDeletion) Kind() Kind   { return LintDriven }

func (*UnusedImportDeletion) Enumerate(t *tree.Tree, required map[candidate.ID]bool, lints []oracle.LintRecord) []candidate.ID {
	var ids []candidate.ID
	seen := map[candidate.ID]bool{}
	for _, lint := range lints {
		if lint.Kind != oracle.UnusedImport || !sameFile(lint.File, t.Path) {
			continue
		}
		di := t.DeclAtLine(lint.Line)
		if di < 0 {
			continue
		}
		gd, ok := t.Decl(di).(*dst.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		si := t.SpecAtLine(di, lint.Line)
		if si < 0 {
			continue
		}
		id := candidate.SpecID(di, si)
		if required[id] || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (*UnusedImportDeletion) Apply(t *tree.Tree, ids candidate.Subset) bool {
	toDelete := map[int]map[int]bool{} // declIndex -> specIndex set
	for id := range ids {
		if toDelete[id.Decl] == nil {
			toDelete[id.Decl] = map[int]bool{}
		}
		toDelete[id.Decl][id.Spec] = true
	}
	if len(toDelete) == 0 {
		return false
	}

	changed := false
	var newDecls []dst.Decl
	for di, decl := range t.File().Decls {
		gd, ok := decl.(*dst.GenDecl)
		specsToDelete := toDelete[di]
		if !ok || specsToDelete == nil {
			newDecls = append(newDecls, decl)
			continue
		}
		var kept []dst.Spec
		for si, spec := range gd.Specs {
			if specsToDelete[si] {
				changed = true
				continue
			}
			kept = append(kept, spec)
		}
		if len(kept) == 0 {
			// Every import in the block was deleted: drop the whole decl.
			continue
		}
		gd.Specs = kept
		newDecls = append(newDecls, gd)
	}
	t.File().Decls = newDecls
	return changed
}
