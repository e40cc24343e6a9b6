package input

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/wedit/internal/dispatcher/handler"
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/nav"
	"github.com/dshills/wedit/internal/session"
)

// Text patterns that convert a paragraph when followed by a space.
const (
	unorderedListMarker = "*"
	orderedListMarker   = "1."
	headingMarker       = "#"
)

// Engine applies structural input events to a session's document.
type Engine struct {
	session *session.Session
	tree    *doc.Tree
	logger  *logging.Logger
}

// NewEngine creates an engine bound to s.
func NewEngine(s *session.Session) *Engine {
	return &Engine{
		session: s,
		tree:    s.Tree(),
		logger:  s.Logger().WithComponent("input"),
	}
}

// Handle applies ev. The result is handled when a rule claimed the event.
func (e *Engine) Handle(ev Event) handler.Result {
	kind := e.tree.Kind(ev.Target)
	if !kind.IsEditableLeaf() || !e.tree.Attached(ev.Target) {
		return handler.NoOpWithMessage("target is not an editable leaf")
	}

	// The host owns text editing; keep the tree's copy current.
	e.tree.SetText(ev.Target, ev.Text)

	var result handler.Result
	switch ev.Kind {
	case KindInsertParagraph:
		result = e.insertParagraph(ev.Target, kind, ev.Text)
	case KindDeleteContentBackward:
		result = e.deleteBackward(ev.Target, kind, ev.Text)
	case KindInsertText:
		result = e.insertText(ev.Target, kind, ev.Text, ev.Data)
	default:
		result = handler.NoOp()
	}

	if result.IsError() {
		e.logger.Error("%s on %s: %v", ev.Kind, e.tree.Path(ev.Target), result.Error)
	} else if result.Handled() {
		e.logger.Debug("%s on %s: %s", ev.Kind, e.tree.Path(ev.Target), result.Message)
	}
	return result
}

func (e *Engine) insertParagraph(target doc.Handle, kind doc.Kind, text string) handler.Result {
	switch kind {
	case doc.KindListItem:
		if text == "" {
			return e.splitList(target)
		}
		return e.insertSibling(target, doc.KindListItem)
	case doc.KindHeading:
		return e.insertSibling(target, doc.KindParagraph)
	default:
		return e.insertSibling(target, kind)
	}
}

// insertSibling puts a new empty node of the given kind right after target.
func (e *Engine) insertSibling(target doc.Handle, kind doc.Kind) handler.Result {
	n := e.session.NewNode(kind)
	if err := e.tree.InsertAfter(target, n); err != nil {
		return handler.Errorf("insert %s: %w", kind, err)
	}
	return handler.Success().
		WithCursor(n, 0).
		WithCreated(n).
		WithMessage(fmt.Sprintf("new %s", kind))
}

// splitList removes the empty item and splits its list around a new
// paragraph. Items after the removed one move, in order, to a new list of
// the same kind placed after the paragraph. A list left without items is
// removed instead of being kept empty.
func (e *Engine) splitList(item doc.Handle) handler.Result {
	list := e.tree.Parent(item)
	idx := e.tree.Index(item)
	tail := e.tree.Children(list)[idx+1:]

	result := handler.Success()
	for _, h := range append([]doc.Handle{item}, tail...) {
		if err := e.tree.Remove(h); err != nil {
			return handler.Errorf("split list: %w", err)
		}
	}
	result = result.WithRemoved(item)

	p := e.session.NewNode(doc.KindParagraph)
	var err error
	if e.tree.NumChildren(list) == 0 {
		err = e.tree.Replace(list, p)
		result = result.WithRemoved(list)
	} else {
		err = e.tree.InsertAfter(list, p)
	}
	if err != nil {
		return handler.Errorf("split list: %w", err)
	}
	result = result.WithCreated(p)

	if len(tail) > 0 {
		rest := e.session.NewNode(doc.KindList)
		e.tree.Node(rest).Ordered = e.tree.Node(list).Ordered
		for _, h := range tail {
			if err := e.tree.Append(rest, h); err != nil {
				return handler.Errorf("split list: %w", err)
			}
		}
		if err := e.tree.InsertAfter(p, rest); err != nil {
			return handler.Errorf("split list: %w", err)
		}
		result = result.WithCreated(rest)
	}

	return result.WithCursor(p, 0).WithMessage(fmt.Sprintf("split list, %d items moved", len(tail)))
}

// deleteBackward removes an empty leaf and moves the caret to the end of
// the previous leaf. Headings are never removed and the first leaf of the
// document stays, so the grammar holds.
func (e *Engine) deleteBackward(target doc.Handle, kind doc.Kind, text string) handler.Result {
	if text != "" {
		return handler.NoOp()
	}
	if kind == doc.KindHeading {
		return handler.NoOpWithMessage("heading is required by its section")
	}
	prev, ok := nav.Prev(e.tree, target)
	if !ok {
		return handler.NoOpWithMessage("no previous leaf")
	}

	victim := target
	if kind == doc.KindListItem && e.tree.NumChildren(e.tree.Parent(target)) == 1 {
		victim = e.tree.Parent(target)
	}
	if err := e.tree.Remove(victim); err != nil {
		return handler.Errorf("delete %s: %w", e.tree.Kind(victim), err)
	}

	return handler.Success().
		WithCursor(prev, utf8.RuneCountInString(e.tree.Text(prev))).
		WithRemoved(victim).
		WithMessage(fmt.Sprintf("removed %s", e.tree.Kind(victim)))
}

func (e *Engine) insertText(target doc.Handle, kind doc.Kind, text, data string) handler.Result {
	if kind != doc.KindParagraph || data != " " {
		return handler.NoOp()
	}
	switch text {
	case unorderedListMarker:
		return e.transmute(target, false)
	case orderedListMarker:
		return e.transmute(target, true)
	case headingMarker:
		// TODO: convert to a section once sections can be created from
		// inside a container without breaking heading levels.
		return handler.NoOpWithMessage("heading shortcut not supported")
	}
	return handler.NoOp()
}

// transmute replaces the paragraph with a list holding one empty item.
func (e *Engine) transmute(p doc.Handle, ordered bool) handler.Result {
	list := e.session.NewNode(doc.KindList)
	e.tree.Node(list).Ordered = ordered
	item := e.session.NewNode(doc.KindListItem)
	if err := e.tree.Append(list, item); err != nil {
		return handler.Errorf("transmute: %w", err)
	}
	if err := e.tree.Replace(p, list); err != nil {
		return handler.Errorf("transmute: %w", err)
	}

	return handler.Success().
		WithCursor(item, 0).
		WithCreated(list, item).
		WithRemoved(p).
		WithMessage("paragraph to list")
}
