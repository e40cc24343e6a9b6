package term

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wedit/internal/dispatcher"
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/input/keymap"
	"github.com/dshills/wedit/internal/session"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func newEditor(t *testing.T, tree *doc.Tree, height int, opts ...Option) (*Editor, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t, 40, height)
	s, err := session.New(tree)
	require.NoError(t, err)
	e, err := New(screen, s, dispatcher.DefaultConfig().WithVerify(true), opts...)
	require.NoError(t, err)
	e.Draw()
	return e, screen
}

func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func press(e *Editor, k tcell.Key) bool {
	return e.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func sampleTree() *doc.Tree {
	tree := doc.NewTree()
	s := tree.AddSection(tree.Root(), "Title")
	tree.AddParagraph(s, "body")
	l := tree.AddList(s, true)
	tree.AddItem(l, "one")
	tree.AddItem(l, "two")
	tree.AddParagraph(tree.Root(), "end")
	return tree
}

func TestDrawLayout(t *testing.T) {
	_, screen := newEditor(t, sampleTree(), 10, WithTitle("doc.yaml"))

	assert.Equal(t, "## Title", row(screen, 0))
	assert.Equal(t, "  body", row(screen, 1))
	assert.Equal(t, "  1. one", row(screen, 2))
	assert.Equal(t, "  2. two", row(screen, 3))
	assert.Equal(t, "end", row(screen, 4))
	assert.Equal(t, " doc.yaml |", row(screen, 9))
}

func TestEnterCreatesParagraph(t *testing.T) {
	tree := doc.NewTree()
	p := tree.AddParagraph(tree.Root(), "first")
	e, screen := newEditor(t, tree, 10)

	press(e, tcell.KeyEnd)
	press(e, tcell.KeyEnter)
	typeText(e, "second")

	focus, offset := e.Focus()
	assert.NotEqual(t, p, focus)
	assert.Equal(t, "second", tree.Text(focus))
	assert.Equal(t, 6, offset)
	assert.Equal(t, "second", row(screen, 1))
	assert.NoError(t, doc.Validate(tree))
}

func TestStarSpaceMakesList(t *testing.T) {
	tree := doc.NewTree()
	tree.AddParagraph(tree.Root(), "")
	e, screen := newEditor(t, tree, 10)

	typeText(e, "* item")

	assert.Equal(t, "• item", row(screen, 0))
	focus, _ := e.Focus()
	assert.Equal(t, doc.KindListItem, tree.Kind(focus))
	assert.Contains(t, e.Status(), "paragraph to list")
}

func TestBackspace(t *testing.T) {
	tree := doc.NewTree()
	first := tree.AddParagraph(tree.Root(), "ab")
	tree.AddParagraph(tree.Root(), "c")
	e, _ := newEditor(t, tree, 10)

	press(e, tcell.KeyDown)
	press(e, tcell.KeyDown)
	press(e, tcell.KeyEnd)
	press(e, tcell.KeyBackspace2)
	focus, _ := e.Focus()
	assert.Equal(t, "", tree.Text(focus))

	// The empty leaf is removed and the caret lands at the end of "ab".
	press(e, tcell.KeyBackspace2)
	focus, offset := e.Focus()
	assert.Equal(t, first, focus)
	assert.Equal(t, 2, offset)
	assert.Len(t, tree.Leaves(), 1)

	press(e, tcell.KeyBackspace)
	assert.Equal(t, "a", tree.Text(first))
}

func TestArrowNavigation(t *testing.T) {
	tree := sampleTree()
	e, _ := newEditor(t, tree, 10)
	leaves := tree.Leaves()

	// Down inside text moves to the end first, then to the next leaf.
	press(e, tcell.KeyDown)
	focus, offset := e.Focus()
	assert.Equal(t, leaves[0], focus)
	assert.Equal(t, len("Title"), offset)

	press(e, tcell.KeyDown)
	focus, offset = e.Focus()
	assert.Equal(t, leaves[1], focus)
	assert.Equal(t, 0, offset)

	press(e, tcell.KeyUp)
	focus, offset = e.Focus()
	assert.Equal(t, leaves[0], focus)
	assert.Equal(t, len("Title"), offset)
}

func TestArrowDownAtDocumentEnd(t *testing.T) {
	tree := doc.NewTree()
	p := tree.AddParagraph(tree.Root(), "only")
	e, _ := newEditor(t, tree, 10)

	press(e, tcell.KeyEnd)
	press(e, tcell.KeyDown)
	focus, offset := e.Focus()
	assert.Equal(t, p, focus)
	assert.Equal(t, 4, offset)
}

func TestScrollFollowsCaret(t *testing.T) {
	tree := sampleTree()
	e, screen := newEditor(t, tree, 3)
	require.Equal(t, 2, e.ViewportHeight())

	for i := 0; i < 8; i++ {
		press(e, tcell.KeyDown)
	}
	focus, _ := e.Focus()
	assert.Equal(t, tree.Leaves()[4], focus)
	assert.Equal(t, 3, e.Top())
	assert.Equal(t, "end", row(screen, 1))

	for i := 0; i < 8; i++ {
		press(e, tcell.KeyUp)
	}
	assert.Equal(t, 0, e.Top())
	assert.Equal(t, "## Title", row(screen, 0))
}

func TestTabIsSwallowed(t *testing.T) {
	tree := doc.NewTree()
	p := tree.AddParagraph(tree.Root(), "x")
	e, _ := newEditor(t, tree, 10)

	press(e, tcell.KeyTab)
	press(e, tcell.KeyBacktab)
	assert.Equal(t, "x", tree.Text(p))
	assert.Contains(t, e.Status(), "key.Shift+Tab")
}

func TestSaveAndQuit(t *testing.T) {
	var saved *doc.Tree
	tree := sampleTree()
	e, _ := newEditor(t, tree, 10, WithSaver(func(t *doc.Tree) error {
		saved = t
		return nil
	}))

	assert.True(t, press(e, tcell.KeyCtrlS))
	assert.Same(t, tree, saved)
	assert.Equal(t, "saved", e.Status())

	assert.False(t, press(e, tcell.KeyCtrlQ))
}

func TestSaveFailure(t *testing.T) {
	e, _ := newEditor(t, sampleTree(), 10, WithSaver(func(*doc.Tree) error {
		return errors.New("disk full")
	}))
	press(e, tcell.KeyCtrlS)
	assert.Equal(t, "save failed: disk full", e.Status())

	e2, _ := newEditor(t, sampleTree(), 10)
	press(e2, tcell.KeyCtrlS)
	assert.Equal(t, "no save target", e2.Status())
}

func TestUserKeymap(t *testing.T) {
	saves := 0
	user := keymap.FromActions("user", map[string][]string{
		keymap.ActionSave: {"Ctrl+W"},
		"editor.spell":    {"Ctrl+E"},
	})
	r, err := keymap.NewDefaultRegistry(user)
	require.NoError(t, err)

	e, _ := newEditor(t, sampleTree(), 10, WithKeymap(r), WithSaver(func(*doc.Tree) error {
		saves++
		return nil
	}))

	assert.True(t, press(e, tcell.KeyCtrlW))
	assert.Equal(t, 1, saves)

	assert.True(t, press(e, tcell.KeyCtrlE))
	assert.Equal(t, "unknown action editor.spell", e.Status())

	assert.True(t, press(e, tcell.KeyCtrlB), "unbound chords are ignored")
	assert.False(t, press(e, tcell.KeyCtrlC))
}

func TestRuneHelpers(t *testing.T) {
	assert.Equal(t, "héllo", insertRune("hllo", 1, 'é'))
	assert.Equal(t, "hllo", deleteRune("héllo", 1))
	assert.Equal(t, "abc", deleteRune("abc", 3))
	assert.Equal(t, "abcd", insertRune("abc", 10, 'd'))
}
