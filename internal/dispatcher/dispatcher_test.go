package dispatcher

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wedit/internal/dispatcher/handler"
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/host"
	"github.com/dshills/wedit/internal/host/hosttest"
	"github.com/dshills/wedit/internal/input"
	"github.com/dshills/wedit/internal/input/key"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/session"
)

type fixture struct {
	tree    *doc.Tree
	log     *bytes.Buffer
	host    *hosttest.Host
	d       *Dispatcher
	section doc.Handle
	intro   doc.Handle
	outro   doc.Handle
}

func newFixture(t *testing.T, config Config, opts ...Option) *fixture {
	t.Helper()
	tree := doc.NewTree()
	section := tree.AddSection(tree.Root(), "title")
	intro := tree.AddParagraph(section, "intro")
	outro := tree.AddParagraph(tree.Root(), "outro")

	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	s, err := session.New(tree, session.WithLogger(logger))
	require.NoError(t, err)
	h := hosttest.New()
	d, err := New(s, h, h, config, opts...)
	require.NoError(t, err)
	return &fixture{tree: tree, log: &buf, host: h, d: d, section: section, intro: intro, outro: outro}
}

func TestNewRequiresHost(t *testing.T) {
	tree := doc.NewTree()
	tree.AddParagraph(tree.Root(), "p")
	s, err := session.New(tree)
	require.NoError(t, err)

	_, err = New(s, nil, hosttest.New(), DefaultConfig())
	assert.ErrorIs(t, err, ErrNoHost)
	_, err = New(s, hosttest.New(), nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoHost)
}

func TestDispatchInputPlacesCursor(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	res := f.d.DispatchInput(input.Event{Kind: input.KindInsertParagraph, Target: f.outro, Text: "outro"})
	require.True(t, res.Handled())
	require.Len(t, res.Created, 1)

	last, ok := f.host.Last()
	require.True(t, ok)
	assert.Equal(t, res.Created[0], last.Node)
	assert.Equal(t, 0, last.Offset)
	assert.Equal(t, f.outro, f.tree.PrevSibling(last.Node))
}

func TestDispatchInputUnhandledLeavesHostAlone(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	res := f.d.DispatchInput(input.Event{Kind: input.KindInsertText, Target: f.outro, Text: "outr", Data: "o"})
	assert.False(t, res.Handled())
	assert.Empty(t, f.host.Placements)
}

func TestDispatchKeyAppliesScroll(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.host.Height = 1
	f.host.Rows[f.intro] = -3
	f.host.Sel = host.Caret(0)

	res := f.d.DispatchKey(key.NewSpecialEvent(key.KeyUp, key.ModNone), f.outro)
	require.True(t, res.Handled())

	last, ok := f.host.Last()
	require.True(t, ok)
	assert.Equal(t, f.intro, last.Node)
	assert.Equal(t, len("intro"), last.Offset)
	assert.Equal(t, []doc.Handle{f.intro}, f.host.Scrolled)
}

func TestDispatchKeyAtDocumentEnd(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.host.Sel = host.Caret(len("outro"))

	res := f.d.DispatchKey(key.NewSpecialEvent(key.KeyDown, key.ModNone), f.outro)
	assert.False(t, res.Handled())
	assert.Empty(t, f.host.Placements)
	assert.Empty(t, f.host.Scrolled)
}

func TestVerifyAfterMutation(t *testing.T) {
	f := newFixture(t, DefaultConfig().WithVerify(true))

	// Break the grammar behind the session's back.
	require.NoError(t, f.tree.Remove(f.tree.Heading(f.section)))

	res := f.d.DispatchInput(input.Event{Kind: input.KindInsertParagraph, Target: f.outro, Text: "outro"})
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Error, ErrGrammarViolation))
	assert.True(t, errors.Is(res.Error, doc.ErrMissingHeading))
	assert.Empty(t, f.host.Placements)
	assert.Contains(t, f.log.String(), "left the document invalid")
}

func TestVerifySkipsUnchangedTree(t *testing.T) {
	f := newFixture(t, DefaultConfig().WithVerify(true))
	require.NoError(t, f.tree.Remove(f.tree.Heading(f.section)))

	res := f.d.DispatchInput(input.Event{Kind: input.KindInsertText, Target: f.outro, Text: "x", Data: "y"})
	assert.False(t, res.IsError())
}

type panicHost struct {
	*hosttest.Host
}

func (panicHost) Selection() host.Selection {
	panic("selection unavailable")
}

func TestPanicRecovery(t *testing.T) {
	tree := doc.NewTree()
	p := tree.AddParagraph(tree.Root(), "p")
	s, err := session.New(tree, session.WithLogger(logging.Null()))
	require.NoError(t, err)

	h := panicHost{hosttest.New()}
	d, err := New(s, h, h, DefaultConfig().WithMetrics())
	require.NoError(t, err)

	res := d.DispatchKey(key.NewSpecialEvent(key.KeyUp, key.ModNone), p)
	require.True(t, res.IsError())
	assert.ErrorIs(t, res.Error, ErrPanic)
	assert.Equal(t, uint64(1), d.Metrics().TotalPanics())
}

func TestPostHooksSeeFinalResult(t *testing.T) {
	var names []string
	var statuses []handler.ResultStatus
	hook := PostDispatchFunc(func(name string, res handler.Result) {
		names = append(names, name)
		statuses = append(statuses, res.Status)
	})
	f := newFixture(t, DefaultConfig(), WithPostHook(hook))

	f.d.DispatchInput(input.Event{Kind: input.KindInsertParagraph, Target: f.outro, Text: "outro"})
	f.d.DispatchKey(key.NewSpecialEvent(key.KeyTab, key.ModShift), f.outro)
	f.d.DispatchInput(input.Event{Kind: input.KindOther, Target: f.outro, Text: "outro"})

	assert.Equal(t, []string{"input.insertParagraph", "key.Shift+Tab", "input.other"}, names)
	assert.Equal(t, []handler.ResultStatus{handler.StatusOK, handler.StatusOK, handler.StatusNoOp}, statuses)
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, DefaultConfig().WithMetrics())
	f.host.Sel = host.Caret(2)

	f.d.DispatchKey(key.NewSpecialEvent(key.KeyUp, key.ModNone), f.outro)
	f.d.DispatchKey(key.NewSpecialEvent(key.KeyUp, key.ModNone), f.outro)
	f.host.Sel = host.Caret(0)
	f.d.DispatchKey(key.NewSpecialEvent(key.KeyUp, key.ModNone), f.outro)
	f.d.DispatchInput(input.Event{Kind: input.KindInsertParagraph, Target: f.outro, Text: "outro"})

	m := f.d.Metrics()
	require.NotNil(t, m)
	assert.Equal(t, uint64(4), m.TotalDispatches())
	assert.Equal(t, uint64(2), m.TotalHandled())
	assert.Equal(t, uint64(0), m.TotalErrors())

	up := m.EventStats("key.Up")
	require.NotNil(t, up)
	assert.Equal(t, uint64(3), up.DispatchCount)
	assert.Equal(t, uint64(1), up.HandledCount)
	assert.Equal(t, uint64(2), up.NoOpCount)
	assert.InDelta(t, 33.3, up.HandledRate(), 0.1)
	assert.Nil(t, m.EventStats("key.Down"))

	top := m.TopEvents(5)
	require.Len(t, top, 2)
	assert.Equal(t, "key.Up", top[0].Name)

	snap := m.Snapshot()
	assert.Equal(t, 2, snap.EventCount)

	m.Reset()
	assert.Equal(t, uint64(0), m.TotalDispatches())
}

func TestMetricsDisabled(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	assert.Nil(t, f.d.Metrics())
}

func TestConcurrentDispatchIsSerialized(t *testing.T) {
	f := newFixture(t, DefaultConfig().WithMetrics().WithVerify(true))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.d.DispatchInput(input.Event{Kind: input.KindInsertParagraph, Target: f.outro, Text: "outro"})
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(8), f.d.Metrics().TotalHandled())
	assert.NoError(t, doc.Validate(f.tree))
	assert.Len(t, f.tree.Children(f.tree.Root()), 10)
}
