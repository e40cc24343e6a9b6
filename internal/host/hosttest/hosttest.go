// Package hosttest provides an in-memory host for tests.
package hosttest

import (
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/host"
)

// Placement records one PlaceCursor call.
type Placement struct {
	Node   doc.Handle
	Offset int
}

// Host implements host.CursorController and host.ViewportController.
// Every leaf is one line tall and lines are laid out from Rows.
type Host struct {
	// Sel is returned by Selection.
	Sel host.Selection

	// Rows maps a node to its line number relative to the viewport top.
	Rows map[doc.Handle]int

	// Height is the viewport height.
	Height int

	// Placements records every PlaceCursor call in order.
	Placements []Placement

	// Scrolled records every ScrollIntoView call in order.
	Scrolled []doc.Handle
}

// New returns a host with a caret at offset 0 and a tall viewport.
func New() *Host {
	return &Host{
		Sel:    host.Caret(0),
		Rows:   make(map[doc.Handle]int),
		Height: 1000,
	}
}

// PlaceCursor implements host.CursorController.
func (h *Host) PlaceCursor(node doc.Handle, offset int) {
	h.Placements = append(h.Placements, Placement{Node: node, Offset: offset})
	h.Sel = host.Caret(offset)
}

// Selection implements host.CursorController.
func (h *Host) Selection() host.Selection {
	return h.Sel
}

// Bounds implements host.ViewportController.
func (h *Host) Bounds(node doc.Handle) host.Rect {
	row := h.Rows[node]
	return host.Rect{Top: row, Bottom: row + 1}
}

// ViewportHeight implements host.ViewportController.
func (h *Host) ViewportHeight() int {
	return h.Height
}

// ScrollIntoView implements host.ViewportController.
func (h *Host) ScrollIntoView(node doc.Handle) {
	h.Scrolled = append(h.Scrolled, node)
}

// Last returns the most recent placement, or false if there was none.
func (h *Host) Last() (Placement, bool) {
	if len(h.Placements) == 0 {
		return Placement{}, false
	}
	return h.Placements[len(h.Placements)-1], true
}
