// Package nav computes the linear reading order of editable leaves across
// a nested document tree.
//
// The order visits a Section's Heading before its content, a List's items
// in sequence, and crosses Section and List boundaries in both directions.
// Prev and Next are exact inverses for any two adjacent leaves.
package nav

import "github.com/dshills/wedit/internal/doc"

// Prev returns the editable leaf before leaf, or false at the first leaf of
// the document or when leaf is not an attached editable leaf.
func Prev(t *doc.Tree, leaf doc.Handle) (doc.Handle, bool) {
	kind := t.Kind(leaf)
	if !kind.IsEditableLeaf() {
		return doc.Nil, false
	}
	if kind == doc.KindListItem {
		if p := t.PrevSibling(leaf); p != doc.Nil {
			return p, true
		}
		return prevFrom(t, t.Parent(leaf))
	}
	return prevFrom(t, leaf)
}

// Next returns the editable leaf after leaf, or false at the last leaf of
// the document or when leaf is not an attached editable leaf.
func Next(t *doc.Tree, leaf doc.Handle) (doc.Handle, bool) {
	kind := t.Kind(leaf)
	if !kind.IsEditableLeaf() {
		return doc.Nil, false
	}
	if kind == doc.KindListItem {
		if n := t.NextSibling(leaf); n != doc.Nil {
			return n, true
		}
		return nextFrom(t, t.Parent(leaf))
	}
	return nextFrom(t, leaf)
}

// First returns the first editable leaf of the document.
func First(t *doc.Tree) (doc.Handle, bool) {
	return FirstEditable(t, t.FirstChild(t.Root()))
}

// Last returns the last editable leaf of the document.
func Last(t *doc.Tree) (doc.Handle, bool) {
	return LastEditable(t, t.LastChild(t.Root()))
}

// FirstEditable returns the first editable leaf at or below h: the Heading
// of a Section, the first item of a List, or h itself for a leaf.
func FirstEditable(t *doc.Tree, h doc.Handle) (doc.Handle, bool) {
	for {
		switch t.Kind(h) {
		case doc.KindHeading, doc.KindParagraph, doc.KindListItem:
			return h, true
		case doc.KindArticle, doc.KindSection, doc.KindList:
			h = t.FirstChild(h)
		default:
			return doc.Nil, false
		}
	}
}

// LastEditable returns the last editable leaf at or below h, descending
// through trailing Sections down to the last item of a trailing List.
func LastEditable(t *doc.Tree, h doc.Handle) (doc.Handle, bool) {
	for {
		switch t.Kind(h) {
		case doc.KindHeading, doc.KindParagraph, doc.KindListItem:
			return h, true
		case doc.KindArticle, doc.KindSection, doc.KindList:
			h = t.LastChild(h)
		default:
			return doc.Nil, false
		}
	}
}

// prevFrom steps backwards from a Content Item (or a Heading) to the
// nearest preceding leaf, climbing out of enclosing Sections as needed.
func prevFrom(t *doc.Tree, x doc.Handle) (doc.Handle, bool) {
	for t.Valid(x) {
		if s := t.PrevSibling(x); s != doc.Nil {
			return LastEditable(t, s)
		}
		parent := t.Parent(x)
		if !t.Kind(t.Parent(parent)).IsContainer() {
			return doc.Nil, false
		}
		x = parent
	}
	return doc.Nil, false
}

// nextFrom is the forward counterpart of prevFrom.
func nextFrom(t *doc.Tree, x doc.Handle) (doc.Handle, bool) {
	for t.Valid(x) {
		if s := t.NextSibling(x); s != doc.Nil {
			return FirstEditable(t, s)
		}
		parent := t.Parent(x)
		if !t.Kind(t.Parent(parent)).IsContainer() {
			return doc.Nil, false
		}
		x = parent
	}
	return doc.Nil, false
}
