package doc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormed() *Tree {
	t := NewTree()
	intro := t.AddSection(t.Root(), "Intro")
	t.AddParagraph(intro, "a")
	nested := t.AddSection(intro, "Nested")
	list := t.AddList(nested, true)
	t.AddItem(list, "one")
	t.AddItem(list, "two")
	t.AddParagraph(t.Root(), "tail")
	return t
}

func TestValidateWellFormed(t *testing.T) {
	require.NoError(t, Validate(wellFormed()))
}

func TestValidateSingleParagraph(t *testing.T) {
	tree := NewTree()
	tree.AddParagraph(tree.Root(), "")
	require.NoError(t, Validate(tree))
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name     string
		build    func(t *Tree) Handle
		wantErr  error
		wantKind Kind
	}{
		{
			name:     "empty root",
			build:    func(t *Tree) Handle { return t.Root() },
			wantErr:  ErrEmptyRoot,
			wantKind: KindArticle,
		},
		{
			name: "list item under article",
			build: func(t *Tree) Handle {
				t.AddParagraph(t.Root(), "ok")
				return t.addLeaf(t.Root(), KindListItem, "stray")
			},
			wantErr:  ErrInvalidChildKind,
			wantKind: KindListItem,
		},
		{
			name: "heading under article",
			build: func(t *Tree) Handle {
				return t.addLeaf(t.Root(), KindHeading, "stray")
			},
			wantErr:  ErrInvalidChildKind,
			wantKind: KindHeading,
		},
		{
			name: "section without children",
			build: func(t *Tree) Handle {
				s := t.NewNode(KindSection)
				_ = t.Append(t.Root(), s)
				return s
			},
			wantErr:  ErrMissingHeading,
			wantKind: KindSection,
		},
		{
			name: "section starting with paragraph",
			build: func(t *Tree) Handle {
				s := t.NewNode(KindSection)
				_ = t.Append(t.Root(), s)
				t.AddParagraph(s, "no heading")
				return s
			},
			wantErr:  ErrMissingHeading,
			wantKind: KindSection,
		},
		{
			name: "second heading in section",
			build: func(t *Tree) Handle {
				s := t.AddSection(t.Root(), "one")
				return t.addLeaf(s, KindHeading, "two")
			},
			wantErr:  ErrInvalidChildKind,
			wantKind: KindHeading,
		},
		{
			name: "top-level heading at level 3",
			build: func(t *Tree) Handle {
				s := t.AddSection(t.Root(), "x")
				h := t.Heading(s)
				t.Node(h).Level = 3
				return h
			},
			wantErr:  ErrWrongHeadingLevel,
			wantKind: KindHeading,
		},
		{
			name: "nested heading at level 2",
			build: func(t *Tree) Handle {
				outer := t.AddSection(t.Root(), "outer")
				inner := t.AddSection(outer, "inner")
				h := t.Heading(inner)
				t.Node(h).Level = 2
				return h
			},
			wantErr:  ErrWrongHeadingLevel,
			wantKind: KindHeading,
		},
		{
			name: "empty list",
			build: func(t *Tree) Handle {
				return t.AddList(t.Root(), false)
			},
			wantErr:  ErrEmptyList,
			wantKind: KindList,
		},
		{
			name: "paragraph inside list",
			build: func(t *Tree) Handle {
				l := t.AddList(t.Root(), false)
				t.AddItem(l, "ok")
				return t.AddParagraph(l, "bad")
			},
			wantErr:  ErrInvalidListChild,
			wantKind: KindParagraph,
		},
		{
			name: "list inside list",
			build: func(t *Tree) Handle {
				l := t.AddList(t.Root(), false)
				inner := t.AddList(l, true)
				t.AddItem(inner, "x")
				return inner
			},
			wantErr:  ErrInvalidListChild,
			wantKind: KindList,
		},
		{
			name: "paragraph with children",
			build: func(t *Tree) Handle {
				p := t.AddParagraph(t.Root(), "p")
				return t.AddParagraph(p, "child")
			},
			wantErr:  ErrInvalidChildKind,
			wantKind: KindParagraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree()
			bad := tt.build(tree)

			err := Validate(tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, bad, verr.Node)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Equal(t, tree.Path(bad), verr.Path)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	tree := NewTree()
	l := tree.AddList(tree.Root(), false)

	err := Validate(tree)
	require.Error(t, err)
	assert.Equal(t, "doc: list has no items (at article/list[0])", err.Error())
	assert.Equal(t, l, err.(*ValidationError).Node)
}
