package candidate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Noratrieb/go-minimize/internal/candidate"
)

func TestIDConstructors(t *testing.T) {
	decl := candidate.DeclID(3)
	assert.Equal(t, candidate.ID{Decl: 3, Spec: -1, Field: -1}, decl)

	spec := candidate.SpecID(3, 1)
	assert.Equal(t, candidate.ID{Decl: 3, Spec: 1, Field: -1}, spec)

	field := candidate.FieldID(3, 1, 2)
	assert.Equal(t, candidate.ID{Decl: 3, Spec: 1, Field: 2}, field)
}

func TestIDLessOrdersByDeclThenSpecThenField(t *testing.T) {
	a := candidate.DeclID(1)
	b := candidate.DeclID(2)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	c := candidate.SpecID(2, 0)
	d := candidate.SpecID(2, 1)
	assert.True(t, c.Less(d))

	e := candidate.FieldID(2, 1, 0)
	f := candidate.FieldID(2, 1, 1)
	assert.True(t, e.Less(f))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "decl[0]", candidate.DeclID(0).String())
	assert.Equal(t, "decl[0].spec[1]", candidate.SpecID(0, 1).String())
	assert.Equal(t, "decl[0].spec[1].field[2]", candidate.FieldID(0, 1, 2).String())
}
