package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/htmldoc"
	"github.com/dshills/wedit/internal/outline"
)

// errFormat indicates a document extension wedit cannot read.
var errFormat = errors.New("unsupported document format (want .html, .htm, .yaml or .yml)")

type format int

const (
	formatUnknown format = iota
	formatHTML
	formatOutline
)

func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return formatHTML
	case ".yaml", ".yml":
		return formatOutline
	default:
		return formatUnknown
	}
}

// loadDocument reads the document at path in the format its extension names.
func loadDocument(path string) (*doc.Tree, error) {
	switch formatOf(path) {
	case formatHTML:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		tree, err := htmldoc.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return tree, nil
	case formatOutline:
		return outline.Load(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, errFormat)
	}
}

// saverFor returns a function that writes a tree back to path in the same
// format it was read from.
func saverFor(path string) func(*doc.Tree) error {
	return func(tree *doc.Tree) error {
		var buf bytes.Buffer
		switch formatOf(path) {
		case formatHTML:
			if err := htmldoc.Render(&buf, tree); err != nil {
				return err
			}
			buf.WriteByte('\n')
		case formatOutline:
			if err := outline.Encode(&buf, tree); err != nil {
				return err
			}
		default:
			return errFormat
		}
		return os.WriteFile(path, buf.Bytes(), 0o644)
	}
}
