// Package outline reads and writes documents as YAML outlines.
//
// An outline is a sequence of entries, each naming exactly one kind:
//
//	- paragraph: Opening words
//	- section: Intro
//	  content:
//	    - paragraph: First
//	    - list: [one, two]
//	    - ordered: [first, second]
//
// Heading levels follow from section nesting.
package outline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/wedit/internal/doc"
)

// Outline errors.
var (
	ErrEntryKind = errors.New("outline: entry must name exactly one of paragraph, section, list, ordered")
	ErrContent   = errors.New("outline: content is only allowed on sections")
)

// Entry is one content item of an outline.
type Entry struct {
	Paragraph *string  `yaml:"paragraph,omitempty"`
	Section   *string  `yaml:"section,omitempty"`
	Content   []Entry  `yaml:"content,omitempty"`
	List      []string `yaml:"list,omitempty"`
	Ordered   []string `yaml:"ordered,omitempty"`
}

// Load reads the outline file at path.
func Load(path string) (*doc.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline %s: %w", path, err)
	}
	return Unmarshal(data)
}

// Decode reads an outline from r.
func Decode(r io.Reader) (*doc.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal builds a tree from outline data. The result is not validated.
func Unmarshal(data []byte) (*doc.Tree, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing outline: %w", err)
	}

	tree := doc.NewTree()
	if err := build(tree, tree.Root(), entries, "outline"); err != nil {
		return nil, err
	}
	return tree, nil
}

func build(tree *doc.Tree, parent doc.Handle, entries []Entry, path string) error {
	for i, e := range entries {
		at := fmt.Sprintf("%s[%d]", path, i)
		if e.kinds() != 1 {
			return fmt.Errorf("%w (at %s)", ErrEntryKind, at)
		}
		if e.Section == nil && e.Content != nil {
			return fmt.Errorf("%w (at %s)", ErrContent, at)
		}

		switch {
		case e.Paragraph != nil:
			tree.AddParagraph(parent, *e.Paragraph)
		case e.Section != nil:
			s := tree.AddSection(parent, *e.Section)
			if err := build(tree, s, e.Content, at); err != nil {
				return err
			}
		case e.List != nil:
			addList(tree, parent, false, e.List)
		case e.Ordered != nil:
			addList(tree, parent, true, e.Ordered)
		}
	}
	return nil
}

func addList(tree *doc.Tree, parent doc.Handle, ordered bool, items []string) {
	l := tree.AddList(parent, ordered)
	for _, text := range items {
		tree.AddItem(l, text)
	}
}

func (e Entry) kinds() int {
	n := 0
	for _, set := range []bool{e.Paragraph != nil, e.Section != nil, e.List != nil, e.Ordered != nil} {
		if set {
			n++
		}
	}
	return n
}

// Marshal writes the attached part of tree as an outline.
func Marshal(tree *doc.Tree) ([]byte, error) {
	return yaml.Marshal(entries(tree, tree.Root()))
}

// Encode writes tree to w as an outline.
func Encode(w io.Writer, tree *doc.Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries(tree, tree.Root())); err != nil {
		return err
	}
	return enc.Close()
}

func entries(tree *doc.Tree, container doc.Handle) []Entry {
	var out []Entry
	for _, h := range tree.Children(container) {
		switch tree.Kind(h) {
		case doc.KindParagraph:
			text := tree.Text(h)
			out = append(out, Entry{Paragraph: &text})
		case doc.KindSection:
			title := tree.Text(tree.Heading(h))
			out = append(out, Entry{Section: &title, Content: entries(tree, h)})
		case doc.KindList:
			items := make([]string, 0, tree.NumChildren(h))
			for _, item := range tree.Children(h) {
				items = append(items, tree.Text(item))
			}
			if tree.Node(h).Ordered {
				out = append(out, Entry{Ordered: items})
			} else {
				out = append(out, Entry{List: items})
			}
		}
	}
	return out
}
