// Package term is a terminal host for the editing core.
//
// It draws the document one leaf per line, keeps a caret, forwards keys to
// the dispatcher and applies plain text editing whenever the core leaves an
// event unhandled, the same contract a browser host follows.
package term

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wedit/internal/dispatcher"
	"github.com/dshills/wedit/internal/dispatcher/handler"
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/host"
	"github.com/dshills/wedit/internal/input"
	"github.com/dshills/wedit/internal/input/key"
	"github.com/dshills/wedit/internal/input/keymap"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/nav"
	"github.com/dshills/wedit/internal/session"
)

// Editor draws a session's document on a tcell screen and edits it.
// It implements host.CursorController and host.ViewportController.
type Editor struct {
	screen     tcell.Screen
	tree       *doc.Tree
	dispatcher *dispatcher.Dispatcher
	logger     *logging.Logger

	title  string
	save   func(*doc.Tree) error
	keymap *keymap.Registry

	lines  []line
	focus  doc.Handle
	offset int
	top    int
	status string
}

// Option configures an Editor.
type Option func(*Editor)

// WithTitle sets the name shown in the status line.
func WithTitle(title string) Option {
	return func(e *Editor) {
		e.title = title
	}
}

// WithSaver sets the function called by the save action.
func WithSaver(save func(*doc.Tree) error) Option {
	return func(e *Editor) {
		e.save = save
	}
}

// WithKeymap sets the registry that resolves editor commands. The default
// holds the built-in bindings only.
func WithKeymap(r *keymap.Registry) Option {
	return func(e *Editor) {
		e.keymap = r
	}
}

var (
	_ host.CursorController   = (*Editor)(nil)
	_ host.ViewportController = (*Editor)(nil)
)

// New creates an editor for s on an initialized screen.
func New(screen tcell.Screen, s *session.Session, config dispatcher.Config, opts ...Option) (*Editor, error) {
	e := &Editor{
		screen: screen,
		tree:   s.Tree(),
		logger: s.Logger().WithComponent("term"),
		title:  "wedit",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.keymap == nil {
		r, err := keymap.NewDefaultRegistry(nil)
		if err != nil {
			return nil, err
		}
		e.keymap = r
	}

	d, err := dispatcher.New(s, e, e, config, dispatcher.WithPostHook(dispatcher.PostDispatchFunc(e.recordResult)))
	if err != nil {
		return nil, err
	}
	e.dispatcher = d

	e.lines = layout(e.tree)
	if first, ok := nav.First(e.tree); ok {
		e.focus = first
	}
	return e, nil
}

// Dispatcher returns the editor's dispatcher.
func (e *Editor) Dispatcher() *dispatcher.Dispatcher {
	return e.dispatcher
}

// Focus returns the leaf holding the caret and the caret's rune offset.
func (e *Editor) Focus() (doc.Handle, int) {
	return e.focus, e.offset
}

// Status returns the text of the status line.
func (e *Editor) Status() string {
	return e.status
}

// Run draws the document and processes screen events until the user quits
// or the screen is finalized.
func (e *Editor) Run() {
	e.Draw()
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}
		if !e.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent processes one screen event and redraws.
// Returns false when the user asked to quit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		k, ok := convertKey(ev)
		if !ok {
			break
		}
		if b := e.keymap.Lookup(k); b != nil {
			if !e.runAction(b.Action) {
				return false
			}
			break
		}
		e.handleKey(k)
	}

	e.lines = layout(e.tree)
	if !e.tree.Attached(e.focus) {
		e.focus, _ = nav.First(e.tree)
		e.offset = 0
	}
	e.ScrollIntoView(e.focus)
	e.Draw()
	return true
}

func (e *Editor) handleKey(k key.Event) {
	text := e.tree.Text(e.focus)
	length := utf8.RuneCountInString(text)

	switch k.Key {
	case key.KeyUp, key.KeyDown, key.KeyTab:
		if e.dispatcher.DispatchKey(k, e.focus).Handled() {
			return
		}
		switch k.Key {
		case key.KeyUp:
			e.offset = 0
		case key.KeyDown:
			e.offset = length
		}

	case key.KeyEnter:
		e.dispatchInput(input.KindInsertParagraph, text, "")

	case key.KeyBackspace:
		if e.dispatchInput(input.KindDeleteContentBackward, text, "") || e.offset == 0 {
			return
		}
		e.setText(deleteRune(text, e.offset-1))
		e.offset--

	case key.KeyDelete:
		if e.offset < length {
			e.setText(deleteRune(text, e.offset))
		}

	case key.KeyLeft:
		e.offset = max(e.offset-1, 0)
	case key.KeyRight:
		e.offset = min(e.offset+1, length)
	case key.KeyHome:
		e.offset = 0
	case key.KeyEnd:
		e.offset = length

	case key.KeyRune:
		if !k.IsChar() {
			return
		}
		if e.dispatchInput(input.KindInsertText, text, string(k.Rune)) {
			return
		}
		e.setText(insertRune(text, e.offset, k.Rune))
		e.offset++
	}
}

// dispatchInput sends a structural input event for the focused leaf and
// reports whether the core handled it.
func (e *Editor) dispatchInput(kind input.Kind, text, data string) bool {
	res := e.dispatcher.DispatchInput(input.Event{
		Kind:   kind,
		Target: e.focus,
		Text:   text,
		Data:   data,
	})
	return res.Handled()
}

func (e *Editor) setText(text string) {
	e.tree.SetText(e.focus, text)
}

// runAction executes an editor command. Returns false to quit.
func (e *Editor) runAction(action string) bool {
	switch action {
	case keymap.ActionQuit:
		return false
	case keymap.ActionSave:
		e.saveDocument()
	default:
		e.logger.Warn("unknown action %q", action)
		e.status = "unknown action " + action
	}
	return true
}

func (e *Editor) saveDocument() {
	if e.save == nil {
		e.status = "no save target"
		return
	}
	if err := e.save(e.tree); err != nil {
		e.logger.Error("save failed: %v", err)
		e.status = "save failed: " + err.Error()
		return
	}
	e.status = "saved"
}

func (e *Editor) recordResult(name string, res handler.Result) {
	switch {
	case res.IsError():
		e.status = fmt.Sprintf("%s: %v", name, res.Error)
	case res.Handled() && res.Message != "":
		e.status = fmt.Sprintf("%s: %s", name, res.Message)
	case res.Handled():
		e.status = name
	}
}

// PlaceCursor implements host.CursorController.
func (e *Editor) PlaceCursor(node doc.Handle, offset int) {
	e.focus = node
	e.offset = min(max(offset, 0), utf8.RuneCountInString(e.tree.Text(node)))
}

// Selection implements host.CursorController.
func (e *Editor) Selection() host.Selection {
	return host.Caret(e.offset)
}

// Bounds implements host.ViewportController.
func (e *Editor) Bounds(node doc.Handle) host.Rect {
	row := e.row(node)
	if row < 0 {
		return host.Rect{Top: -1, Bottom: 0}
	}
	return host.Rect{Top: row - e.top, Bottom: row - e.top + 1}
}

// ViewportHeight implements host.ViewportController. The last screen row
// holds the status line.
func (e *Editor) ViewportHeight() int {
	_, h := e.screen.Size()
	return max(h-1, 0)
}

// ScrollIntoView implements host.ViewportController.
func (e *Editor) ScrollIntoView(node doc.Handle) {
	row := e.row(node)
	if row < 0 {
		return
	}
	height := max(e.ViewportHeight(), 1)
	switch {
	case row < e.top:
		e.top = row
	case row >= e.top+height:
		e.top = row - height + 1
	}
}

func (e *Editor) row(node doc.Handle) int {
	for i, l := range e.lines {
		if l.node == node {
			return i
		}
	}
	return -1
}

// Top returns the index of the first visible line.
func (e *Editor) Top() int {
	return e.top
}

func insertRune(text string, at int, r rune) string {
	runes := []rune(text)
	at = min(max(at, 0), len(runes))
	return string(runes[:at]) + string(r) + string(runes[at:])
}

func deleteRune(text string, at int) string {
	runes := []rune(text)
	if at < 0 || at >= len(runes) {
		return text
	}
	return string(runes[:at]) + string(runes[at+1:])
}
