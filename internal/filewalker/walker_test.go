package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"gettext-extractor/internal/extract"
	"gettext-extractor/internal/gettext"
	"gettext-extractor/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("gettext('x');\n"), 0o644))
	return path
}

func newWalker() *Walker {
	return NewWalker(parser.NewJSParser(extract.New(gettext.Binding()), "gettext", 0))
}

func TestWalker_Walk(t *testing.T) {
	root := t.TempDir()
	b := touch(t, root, "src/b.js")
	a := touch(t, root, "src/a.ts")
	touch(t, root, "src/readme.md")
	touch(t, root, "node_modules/lib/index.js")
	touch(t, root, ".git/hooks/x.js")

	entries, err := newWalker().Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, a, entries[0].Path)
	assert.Equal(t, ".ts", entries[0].Ext)
	assert.Equal(t, b, entries[1].Path)
	assert.NotNil(t, entries[1].Parser)
}

func TestWalker_FileRootsAndDedup(t *testing.T) {
	root := t.TempDir()
	a := touch(t, root, "a.js")
	touch(t, root, "notes.txt")

	entries, err := newWalker().Walk(a, root, filepath.Join(root, "notes.txt"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, a, entries[0].Path)
}

func TestWalker_MissingRoot(t *testing.T) {
	_, err := newWalker().Walk(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "stat root")
}
