package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wedit/internal/doc"
)

func TestLoadAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"doc.html", `<article><section><h2>Title</h2><p>body</p></section></article>`},
		{"doc.yaml", "- section: Title\n  content:\n    - paragraph: body\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			tree, err := loadDocument(path)
			require.NoError(t, err)
			require.NoError(t, doc.Validate(tree))

			tree.SetText(tree.Leaves()[1], "edited")
			require.NoError(t, saverFor(path)(tree))

			again, err := loadDocument(path)
			require.NoError(t, err)
			assert.Equal(t, "Title", again.Text(again.Leaves()[0]))
			assert.Equal(t, "edited", again.Text(again.Leaves()[1]))
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := loadDocument("notes.txt")
	assert.ErrorIs(t, err, errFormat)
	assert.ErrorIs(t, saverFor("notes.txt")(doc.NewTree()), errFormat)
}
