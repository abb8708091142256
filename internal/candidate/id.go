// Package candidate defines the stable addressing scheme for syntactic
// transformation sites.
package candidate

import "fmt"

// ID is a stable structural path to a site within a file's declaration
// list: {DeclIndex} for a standalone top-level declaration,
// {DeclIndex, SpecIndex} for one spec inside a grouped var/const/type/
// import block, {DeclIndex, SpecIndex, FieldIndex} for a struct field.
//
// The same path refers to the same semantic site across re-parses of the
// same (unmodified-up-to-that-point) text, because it is derived purely
// from declaration order, never from a pointer or byte offset.
type ID struct {
	Decl  int
	Spec  int // -1 when not applicable
	Field int // -1 when not applicable
}

// DeclID builds an ID addressing a whole top-level declaration.
func DeclID(decl int) ID { return ID{Decl: decl, Spec: -1, Field: -1} }

// SpecID builds an ID addressing one spec within a grouped declaration.
func SpecID(decl, spec int) ID { return ID{Decl: decl, Spec: spec, Field: -1} }

// FieldID builds an ID addressing one struct field within a type spec.
func FieldID(decl, spec, field int) ID { return ID{Decl: decl, Spec: spec, Field: field} }

// Less gives the stable total order bisection uses to pick split midpoints.
func (id ID) Less(other ID) bool {
	if id.Decl != other.Decl {
		return id.Decl < other.Decl
	}
	if id.Spec != other.Spec {
		return id.Spec < other.Spec
	}
	return id.Field < other.Field
}

func (id ID) String() string {
	switch {
	case id.Spec < 0:
		return fmt.Sprintf("decl[%d]", id.Decl)
	case id.Field < 0:
		return fmt.Sprintf("decl[%d].spec[%d]", id.Decl, id.Spec)
	default:
		return fmt.Sprintf("decl[%d].spec[%d].field[%d]", id.Decl, id.Spec, id.Field)
	}
}
