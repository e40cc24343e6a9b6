// Package host defines the narrow surface the editing core needs from the
// application that paints the document: a cursor and a viewport.
//
// The core never talks to a concrete UI toolkit. A browser bridge, the
// terminal host in internal/term, or a test fake all implement these
// interfaces.
package host

import "github.com/dshills/wedit/internal/doc"

// Range is a selection range inside the focused leaf, in rune offsets.
type Range struct {
	Start int
	End   int
}

// Collapsed returns true if the range is a caret.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// Selection is the host's current cursor/selection state.
type Selection struct {
	// Ranges holds the active ranges. More than one range is reported by
	// hosts that support multi-range selection; the core treats it as
	// an anomaly.
	Ranges []Range
}

// Caret returns a selection holding a single collapsed range at offset.
func Caret(offset int) Selection {
	return Selection{Ranges: []Range{{Start: offset, End: offset}}}
}

// RangeCount returns the number of active ranges.
func (s Selection) RangeCount() int {
	return len(s.Ranges)
}

// Rect is the vertical extent of a node relative to the top of the viewport.
type Rect struct {
	Top    int
	Bottom int
}

// CursorController places and reports the caret.
type CursorController interface {
	// PlaceCursor moves the caret into node at the given rune offset.
	// Offset 0 on an empty leaf positions the caret on the leaf itself.
	PlaceCursor(node doc.Handle, offset int)

	// Selection returns the current selection inside the focused leaf.
	Selection() Selection
}

// ViewportController reports geometry and scrolls.
type ViewportController interface {
	// Bounds returns the extent of node relative to the viewport top.
	Bounds(node doc.Handle) Rect

	// ViewportHeight returns the visible height.
	ViewportHeight() int

	// ScrollIntoView scrolls until node is visible.
	ScrollIntoView(node doc.Handle)
}

// OutOfView returns true if r is not fully inside a viewport of the given height.
func OutOfView(r Rect, height int) bool {
	return r.Top < 0 || r.Bottom > height
}
