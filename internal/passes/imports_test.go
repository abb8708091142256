package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/oracle"
	"github.com/Noratrieb/go-minimize/internal/passes"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

const importsSource = `package sample

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("hi")
}
`

func TestUnusedImportDeletionEnumerateMapsLintToSpec(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(importsSource))
	require.NoError(t, err)

	lints := []oracle.LintRecord{
		{File: "sample.go", Line: 5, Kind: oracle.UnusedImport}, // "os"
	}

	p := &passes.UnusedImportDeletion{}
	ids := p.Enumerate(tr, nil, lints)

	require.Len(t, ids, 1)
	assert.Equal(t, candidate.SpecID(0, 1), ids[0])
}

func TestUnusedImportDeletionEnumerateIgnoresOtherFilesLints(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(importsSource))
	require.NoError(t, err)

	lints := []oracle.LintRecord{
		{File: "other.go", Line: 5, Kind: oracle.UnusedImport},
		{File: "sub/other.go", Line: 5, Kind: oracle.UnusedImport},
	}

	p := &passes.UnusedImportDeletion{}
	ids := p.Enumerate(tr, nil, lints)

	assert.Empty(t, ids)
}

func TestUnusedImportDeletionApplyRemovesOnlyThatSpec(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(importsSource))
	require.NoError(t, err)

	p := &passes.UnusedImportDeletion{}
	sub := candidate.NewSubset([]candidate.ID{candidate.SpecID(0, 1)})
	changed := p.Apply(tr, sub)
	require.True(t, changed)

	out, err := tree.Print(tr)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, `"fmt"`)
	assert.NotContains(t, text, `"os"`)
}

func TestUnusedImportDeletionDropsWholeBlockWhenEmptied(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(importsSource))
	require.NoError(t, err)

	p := &passes.UnusedImportDeletion{}
	sub := candidate.NewSubset([]candidate.ID{candidate.SpecID(0, 0), candidate.SpecID(0, 1)})
	require.True(t, p.Apply(tr, sub))

	assert.Equal(t, 1, tr.DeclCount()) // only func main remains
}
