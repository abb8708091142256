package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/passes"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

const stubSource = `package sample

func Compute(x int) int {
	y := x * 2
	return y + 1
}

var Handler = func() {
	doSomething()
}
`

func TestBodyStubbingEnumerateFindsFuncsAndTopLevelFuncLits(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(stubSource))
	require.NoError(t, err)

	p := &passes.BodyStubbing{}
	ids := p.Enumerate(tr, nil, nil)

	assert.Contains(t, ids, candidate.DeclID(0))
	assert.Contains(t, ids, candidate.SpecID(1, 0))
}

func TestBodyStubbingApplyReplacesBody(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(stubSource))
	require.NoError(t, err)

	p := &passes.BodyStubbing{}
	sub := candidate.NewSubset([]candidate.ID{candidate.DeclID(0)})
	changed := p.Apply(tr, sub)
	require.True(t, changed)

	out, err := tree.Print(tr)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, `panic("cargo-minimize: stubbed")`)
	assert.NotContains(t, text, "y := x * 2")
}

func TestBodyStubbingEnumerateSkipsAlreadyStubbed(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(stubSource))
	require.NoError(t, err)

	p := &passes.BodyStubbing{}
	sub := candidate.NewSubset([]candidate.ID{candidate.DeclID(0)})
	require.True(t, p.Apply(tr, sub))

	ids := p.Enumerate(tr, nil, nil)
	assert.NotContains(t, ids, candidate.DeclID(0))
}
