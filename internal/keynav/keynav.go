// Package keynav moves the caret between editable leaves on vertical arrow
// keys and reserves Tab for list indentation.
package keynav

import (
	"unicode/utf8"

	"github.com/dshills/wedit/internal/dispatcher/handler"
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/host"
	"github.com/dshills/wedit/internal/input/key"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/nav"
	"github.com/dshills/wedit/internal/session"
)

// Handler resolves key events against a session's document.
type Handler struct {
	tree     *doc.Tree
	cursor   host.CursorController
	viewport host.ViewportController
	logger   *logging.Logger
}

// New creates a handler that reads the caret from cursor and geometry from
// viewport.
func New(s *session.Session, cursor host.CursorController, viewport host.ViewportController) *Handler {
	return &Handler{
		tree:     s.Tree(),
		cursor:   cursor,
		viewport: viewport,
		logger:   s.Logger().WithComponent("keynav"),
	}
}

// Handle processes ev for the focused leaf target.
func (h *Handler) Handle(ev key.Event, target doc.Handle) handler.Result {
	if !h.tree.Kind(target).IsEditableLeaf() {
		return handler.NoOpWithMessage("target is not an editable leaf")
	}

	switch ev.Key {
	case key.KeyUp:
		if !AtStart(h.tree.Text(target), h.cursor.Selection(), h.logger) {
			return handler.NoOp()
		}
		prev, ok := nav.Prev(h.tree, target)
		if !ok {
			return handler.NoOpWithMessage("start of document")
		}
		return h.moveTo(prev, utf8.RuneCountInString(h.tree.Text(prev)))

	case key.KeyDown:
		if !AtEnd(h.tree.Text(target), h.cursor.Selection(), h.logger) {
			return handler.NoOp()
		}
		next, ok := nav.Next(h.tree, target)
		if !ok {
			return handler.NoOpWithMessage("end of document")
		}
		return h.moveTo(next, 0)

	case key.KeyTab:
		// TODO: indent and dedent list items once nested lists are part of
		// the document grammar.
		if ev.Modifiers.HasShift() {
			return handler.Success().WithMessage("dedent reserved")
		}
		return handler.Success().WithMessage("indent reserved")
	}

	return handler.NoOp()
}

func (h *Handler) moveTo(leaf doc.Handle, offset int) handler.Result {
	result := handler.Success().WithCursor(leaf, offset)
	if host.OutOfView(h.viewport.Bounds(leaf), h.viewport.ViewportHeight()) {
		result = result.WithScroll(leaf)
	}
	h.logger.Debug("caret to %s", h.tree.Path(leaf))
	return result
}
