package passes

import (
	"go/token"
	"unicode"

	"github.com/dave/dst"
	"github.com/dave/dst/dstutil"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

// VisibilityNarrowing rewrites an exported top-level identifier to its
// unexported form at the declaration site and every same-file
// reference. It does not change behavior; it only enables the
// dead-code analysis the later passes depend on.
type VisibilityNarrowing struct{}

func (*VisibilityNarrowing) Name() string { return "visibility-narrowing" }
func (*VisibilityNarrowing) Kind() Kind   { return Syntactic }

func (*VisibilityNarrowing) Enumerate(t *tree.Tree, required map[candidate.ID]bool, _ []oracle.LintRecord) []candidate.ID {
	var ids []candidate.ID
	for di, decl := range t.File().Decls {
		switch d := decl.(type) {
		case *dst.FuncDecl:
			if !isExported(d.Name.Name) || isExemptFuncName(d.Name.Name) {
				continue
			}
			id := candidate.DeclID(di)
			if !required[id] {
				ids = append(ids, id)
			}
		case *dst.GenDecl:
			if d.Tok != token.VAR && d.Tok != token.CONST && d.Tok != token.TYPE {
				continue
			}
			for si, spec := range d.Specs {
				if !specHasExportedName(spec) {
					continue
				}
				id := candidate.SpecID(di, si)
				if !required[id] {
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

func (*VisibilityNarrowing) Apply(t *tree.Tree, ids candidate.Subset) bool {
	renames := map[string]string{}
	changed := false

	for _, id := range ids.Sorted() {
		node := t.NodeFor(id)
		if node == nil {
			continue
		}
		switch n := node.(type) {
		case *dst.FuncDecl:
			if old, new, ok := lowercased(n.Name.Name); ok {
				n.Name.Name = new
				renames[old] = new
				changed = true
			}
		case *dst.ValueSpec:
			for i, name := range n.Names {
				if old, new, ok := lowercased(name.Name); ok {
					n.Names[i].Name = new
					renames[old] = new
					changed = true
				}
			}
		case *dst.TypeSpec:
			if old, new, ok := lowercased(n.Name.Name); ok {
				n.Name.Name = new
				renames[old] = new
				changed = true
			}
		}
	}

	if len(renames) == 0 {
		return false
	}

	dstutil.Apply(t.File(), func(c *dstutil.Cursor) bool {
		ident, ok := c.Node().(*dst.Ident)
		if !ok {
			return true
		}
		if new, ok := renames[ident.Name]; ok {
			ident.Name = new
		}
		return true
	}, nil)

	return changed
}

func isExported(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return unicode.IsUpper(r)
}

func isExemptFuncName(name string) bool {
	return name == "main" || name == "init"
}

func specHasExportedName(spec dst.Spec) bool {
	switch s := spec.(type) {
	case *dst.ValueSpec:
		for _, n := range s.Names {
			if isExported(n.Name) && n.Name != "_" {
				return true
			}
		}
	case *dst.TypeSpec:
		return isExported(s.Name.Name)
	}
	return false
}

// lowercased returns the unexported form of an exported identifier. The
// rename is purely syntactic — a single-file search and replace — so a
// collision with an existing unexported identifier of the same lowered
// name is possible; that simply makes the probe fail to build, which the
// oracle reports as No and the bisection driver rolls back.
func lowercased(name string) (old, new string, ok bool) {
	if !isExported(name) || name == "_" {
		return "", "", false
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	new = string(r)
	if new == name {
		return "", "", false
	}
	return name, new, true
}
