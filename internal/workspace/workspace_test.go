package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noratrieb/go-minimize/internal/workspace"
)

func newTestWorkspace(t *testing.T) (*workspace.Workspace, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0o644))
	return workspace.New(dir, []string{"a.go", "b.go"}), dir
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	require.NoError(t, ws.Write("a.go", []byte("package a\n\nfunc F() {}\n")))

	got, err := ws.Read("a.go")
	require.NoError(t, err)
	assert.Equal(t, "package a\n\nfunc F() {}\n", string(got))
}

// TestRollbackIsTotal exercises the rollback guarantee: every tracked
// file present in the anchor is restored, not just the one that
// changed.
func TestRollbackIsTotal(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	anchor, err := ws.Snapshot()
	require.NoError(t, err)

	require.NoError(t, ws.Write("a.go", []byte("package a // mutated\n")))
	require.NoError(t, ws.Write("b.go", []byte("package b // mutated\n")))

	require.NoError(t, ws.Rollback(anchor))

	a, err := ws.Read("a.go")
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(a))

	b, err := ws.Read("b.go")
	require.NoError(t, err)
	assert.Equal(t, "package b\n", string(b))
}

func TestWriteIsAtomicReplace(t *testing.T) {
	ws, dir := newTestWorkspace(t)

	require.NoError(t, ws.Write("a.go", []byte("package a\n\n// replaced\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".minimize-tmp-")
	}
}

func TestFilesReturnsACopy(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	files := ws.Files()
	files[0] = "mutated.go"

	assert.Equal(t, []string{"a.go", "b.go"}, ws.Files())
}
