package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("#"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFiles(t, root, "a.hcl", "nested/b.toml", "nested/c.txt", "z.hcl")

	// --- Act ---
	files, err := FindFilesByExtension([]string{root, filepath.Join(root, "a.hcl")}, ".hcl", ".toml")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "nested", "b.toml"),
		filepath.Join(root, "z.hcl"),
	}, files)
}

func TestFindFilesByExtension_SingleFileWithOtherExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "notes.md")

	files, err := FindFilesByExtension([]string{filepath.Join(root, "notes.md")}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtension_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	require.ErrorIs(t, err, os.ErrNotExist)
}
