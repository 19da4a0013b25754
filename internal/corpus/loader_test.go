package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestBuiltIn(t *testing.T) {
	docs := BuiltIn()
	require.Len(t, docs, 5)
	assert.Contains(t, docs[0], "Quicksort")
	assert.Contains(t, docs[3], "stack")
	assert.Contains(t, docs[4], "queue")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "A binary tree is a hierarchical data structure.")
	writeFile(t, dir, "a.md", "# Heaps\nA heap is a complete binary tree.")
	writeFile(t, dir, "c.html", "<html><head><style>p{}</style></head><body><p>Hash   tables map\nkeys to values.</p><script>x()</script></body></html>")
	writeFile(t, dir, "ignored.pdf", "binary junk")
	writeFile(t, dir, "empty.txt", "   \n")

	passages, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, passages, 3)

	// Lexical filename order.
	assert.Contains(t, passages[0], "heap")
	assert.Contains(t, passages[1], "binary tree")
	// HTML text extracted, whitespace collapsed, script/style dropped.
	assert.Equal(t, "Hash tables map keys to values.", passages[2])
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
