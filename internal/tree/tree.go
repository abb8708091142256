// Package tree converts a Go source file between text and a mutable
// syntax tree, round-trips faithfully for unmodified spans, and exposes
// the file's top-level declarations as addressable sites, using the
// same decorate -> mutate -> restore cycle dst is built for.
package tree

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	"github.com/Noratrieb/go-minimize/internal/candidate"
)

// Position mirrors the line/column granularity the oracle's lint
// records use.
type Position struct {
	Line   int
	Column int
}

// ParseError means the input was not well-formed Go. The caller should
// skip the file for every pass, not abort the whole run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Positions returns the line/column of every syntax error go/parser
// recorded, in source order. It returns nil if the underlying error
// isn't a scanner.ErrorList (e.g. DecorateFile failing on an already
// ast.Valid file), in which case the caller has no better location
// than the file as a whole.
func (e *ParseError) Positions() []Position {
	list, ok := e.Err.(scanner.ErrorList)
	if !ok {
		return nil
	}
	out := make([]Position, len(list))
	for i, se := range list {
		out[i] = Position{Line: se.Pos.Line, Column: se.Pos.Column}
	}
	return out
}

// Tree is the parsed, mutable representation of one file.
type Tree struct {
	Path string
	file *dst.File
	fset *token.FileSet
	dec  *decorator.Decorator
	// astDecls holds the original go/ast declarations in the same order
	// as file.Decls, used only to recover line/column spans (dst nodes
	// are intentionally position-free so they can be freely mutated).
	astDecls []ast.Decl
}

// Parse builds a Tree from source text. A syntax error here is fatal for
// the file: the caller should skip the file for all passes.
func Parse(path string, src []byte) (*Tree, error) {
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	dec := decorator.NewDecorator(fset)
	dstFile, err := dec.DecorateFile(astFile)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Tree{
		Path:     path,
		file:     dstFile,
		fset:     fset,
		dec:      dec,
		astDecls: astFile.Decls,
	}, nil
}

// Print renders the tree back to source text. Exact whitespace/comment
// fidelity in untouched regions is best-effort, not a hard requirement;
// dst's decoration-based restorer gets it right for every span this
// tool's passes don't touch.
func Print(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := decorator.NewRestorer().Fprint(&buf, t.file); err != nil {
		return nil, fmt.Errorf("print %s: %w", t.Path, err)
	}
	return buf.Bytes(), nil
}

// DeclCount returns the number of top-level declarations, the basis for
// DeclIndex in candidate.ID.
func (t *Tree) DeclCount() int { return len(t.file.Decls) }

// Decl returns the dst declaration at index i, or nil if i is out of
// range (the declaration was deleted by an earlier, already-committed
// transformation and the index space has shrunk since).
func (t *Tree) Decl(i int) dst.Decl {
	if i < 0 || i >= len(t.file.Decls) {
		return nil
	}
	return t.file.Decls[i]
}

// PositionOf returns the start line/column of declaration i, using the
// go/ast parse performed alongside the dst decoration (dst nodes carry no
// position information by design).
func (t *Tree) PositionOf(i int) (Position, bool) {
	if i < 0 || i >= len(t.astDecls) {
		return Position{}, false
	}
	p := t.fset.Position(t.astDecls[i].Pos())
	return Position{Line: p.Line, Column: p.Column}, true
}

// EndPositionOf returns the end line/column of declaration i.
func (t *Tree) EndPositionOf(i int) (Position, bool) {
	if i < 0 || i >= len(t.astDecls) {
		return Position{}, false
	}
	p := t.fset.Position(t.astDecls[i].End())
	return Position{Line: p.Line, Column: p.Column}, true
}

// DeclAtLine returns the DeclIndex of the smallest top-level declaration
// whose span covers the given line, used to translate a lint's (file,
// line) span into a CandidateID. Returns -1 if no declaration covers
// the line (e.g. the lint pointed at blank space or a file-level
// comment).
func (t *Tree) DeclAtLine(line int) int {
	best := -1
	bestSpan := -1
	for i := range t.astDecls {
		start := t.fset.Position(t.astDecls[i].Pos()).Line
		end := t.fset.Position(t.astDecls[i].End()).Line
		if line < start || line > end {
			continue
		}
		span := end - start
		if best == -1 || span < bestSpan {
			best = i
			bestSpan = span
		}
	}
	return best
}

// SpecAtLine returns the index of the spec within the GenDecl at
// declIndex whose span covers the given line, or -1 if declIndex is not
// a GenDecl or no spec covers the line. Used to translate a lint's
// (file, line) span into a per-spec CandidateID for grouped
// declarations (import blocks, var/const groups) where DeclAtLine alone
// is too coarse.
func (t *Tree) SpecAtLine(declIndex, line int) int {
	if declIndex < 0 || declIndex >= len(t.astDecls) {
		return -1
	}
	gd, ok := t.astDecls[declIndex].(*ast.GenDecl)
	if !ok {
		return -1
	}
	for si, spec := range gd.Specs {
		start := t.fset.Position(spec.Pos()).Line
		end := t.fset.Position(spec.End()).Line
		if line >= start && line <= end {
			return si
		}
	}
	return -1
}

// File exposes the underlying dst file for passes that need to walk or
// mutate it directly.
func (t *Tree) File() *dst.File { return t.file }

// Clone returns a deep, independent copy so a pass can probe a mutation
// without corrupting the tree other probes still reference.
func (t *Tree) Clone() *Tree {
	clone := dst.Clone(t.file).(*dst.File)
	return &Tree{
		Path:     t.Path,
		file:     clone,
		fset:     t.fset,
		dec:      t.dec,
		astDecls: t.astDecls,
	}
}

// NodeFor resolves a CandidateID to its dst.Node within this tree, or
// nil if the id no longer addresses anything (e.g. its enclosing decl
// was deleted by an earlier accepted transformation — the bisection
// driver treats this as "silently dropped" rather than an error).
func (t *Tree) NodeFor(id candidate.ID) dst.Node {
	decl := t.Decl(id.Decl)
	if decl == nil {
		return nil
	}
	if id.Spec < 0 {
		return decl
	}
	gd, ok := decl.(*dst.GenDecl)
	if !ok || id.Spec >= len(gd.Specs) {
		return nil
	}
	spec := gd.Specs[id.Spec]
	if id.Field < 0 {
		return spec
	}
	ts, ok := spec.(*dst.TypeSpec)
	if !ok {
		return nil
	}
	st, ok := ts.Type.(*dst.StructType)
	if !ok || id.Field >= len(st.Fields.List) {
		return nil
	}
	return st.Fields.List[id.Field]
}

// DeclIDs returns the CandidateIDs for every declaration, spec, and
// struct field in the file, in stable structural order.
func (t *Tree) DeclIDs() []candidate.ID {
	var ids []candidate.ID
	for di, decl := range t.file.Decls {
		switch d := decl.(type) {
		case *dst.FuncDecl:
			ids = append(ids, candidate.DeclID(di))
		case *dst.GenDecl:
			for si, spec := range d.Specs {
				ids = append(ids, candidate.SpecID(di, si))
				if ts, ok := spec.(*dst.TypeSpec); ok {
					if st, ok := ts.Type.(*dst.StructType); ok {
						for fi := range st.Fields.List {
							ids = append(ids, candidate.FieldID(di, si, fi))
						}
					}
				}
			}
		}
	}
	return ids
}
