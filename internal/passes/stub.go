package passes

import (
	"go/token"

	"github.com/dave/dst"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

// BodyStubbing replaces a function or method body with
// `panic("cargo-minimize: stubbed")` — the Go idiom for "never
// returns", letting a function's actual logic be deleted without
// breaking callers that need its type to still exist.
type BodyStubbing struct{}

func (*BodyStubbing) Name() string { return "body-stubbing" }
func (*BodyStubbing) Kind() Kind   { return Syntactic }

func (*BodyStubbing) Enumerate(t *tree.Tree, required map[candidate.ID]bool, _ []oracle.LintRecord) []candidate.ID {
	var ids []candidate.ID
	for di, decl := range t.File().Decls {
		switch d := decl.(type) {
		case *dst.FuncDecl:
			if d.Body == nil || alreadyStubbed(d.Body) {
				continue
			}
			id := candidate.DeclID(di)
			if !required[id] {
				ids = append(ids, id)
			}
		case *dst.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for si, spec := range d.Specs {
				vs, ok := spec.(*dst.ValueSpec)
				if !ok || len(vs.Values) != 1 {
					continue
				}
				lit, ok := vs.Values[0].(*dst.FuncLit)
				if !ok || alreadyStubbed(lit.Body) {
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

func (*BodyStubbing) Apply(t *tree.Tree, ids candidate.Subset) bool {
	changed := false
	for _, id := range ids.Sorted() {
		node := t.NodeFor(id)
		if node == nil {
			continue
		}
		switch n := node.(type) {
		case *dst.FuncDecl:
			if n.Body == nil || alreadyStubbed(n.Body) {
				continue
			}
			n.Body = stubBody()
			changed = true
		case *dst.ValueSpec:
			if len(n.Values) != 1 {
				continue
			}
			lit, ok := n.Values[0].(*dst.FuncLit)
			if !ok || alreadyStubbed(lit.Body) {
				continue
			}
			lit.Body = stubBody()
			changed = true
		}
	}
	return changed
}

const stubMessage = "cargo-minimize: stubbed"

func stubBody() *dst.BlockStmt {
	return &dst.BlockStmt{
		List: []dst.Stmt{
			&dst.ExprStmt{
				X: &dst.CallExpr{
					Fun: dst.NewIdent("panic"),
					Args: []dst.Expr{
						&dst.BasicLit{Kind: token.STRING, Value: `"` + stubMessage + `"`},
					},
				},
			},
		},
	}
}

// alreadyStubbed reports whether body is already exactly the stub
// statement, so a re-sweep doesn't re-enumerate it as a fresh candidate.
func alreadyStubbed(body *dst.BlockStmt) bool {
	if body == nil || len(body.List) != 1 {
		return false
	}
	exprStmt, ok := body.List[0].(*dst.ExprStmt)
	if !ok {
		return false
	}
	call, ok := exprStmt.X.(*dst.CallExpr)
	if !ok || len(call.Args) != 1 {
		return false
	}
	fun, ok := call.Fun.(*dst.Ident)
	if !ok || fun.Name != "panic" {
		return false
	}
	lit, ok := call.Args[0].(*dst.BasicLit)
	if !ok {
		return false
	}
	return lit.Value == `"`+stubMessage+`"`
}
