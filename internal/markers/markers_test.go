package markers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noratrieb/go-minimize/internal/candidate"
	"github.com/Noratrieb/go-minimize/internal/markers"
	"github.com/Noratrieb/go-minimize/internal/tree"
)

const markedSource = `package sample

// minimize-root
func Keep() int {
	return 1
}

func Drop() int {
	return 2
}

// require-deleted
func Gone() int {
	return 3
}
`

func TestRequiredKeptFindsMarkedDecl(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(markedSource))
	require.NoError(t, err)

	required := markers.RequiredKept(tr)
	assert.True(t, required[candidate.DeclID(0)]) // Keep
	assert.False(t, required[candidate.DeclID(1)]) // Drop
	assert.False(t, required[candidate.DeclID(2)]) // Gone
}

func TestRequireDeletedFindsLeadingMarker(t *testing.T) {
	tr, err := tree.Parse("sample.go", []byte(markedSource))
	require.NoError(t, err)

	deleted := markers.RequireDeleted(tr)
	require.Len(t, deleted, 1)
	assert.Equal(t, candidate.DeclID(2), deleted[0])
}
