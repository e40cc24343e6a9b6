package session

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/logging"
)

func sampleTree() *doc.Tree {
	t := doc.NewTree()
	intro := t.AddSection(t.Root(), "intro")
	t.AddParagraph(intro, "a")
	list := t.AddList(intro, false)
	t.AddItem(list, "x")
	t.AddItem(list, "y")
	t.AddParagraph(t.Root(), "b")
	return t
}

func TestNewAssignsIDsInDocumentOrder(t *testing.T) {
	tree := sampleTree()
	s, err := New(tree, WithIDPrefix("doc-"))
	require.NoError(t, err)

	var order []doc.Handle
	tree.Walk(tree.Root(), func(h doc.Handle) bool {
		if h != tree.Root() {
			order = append(order, h)
		}
		return true
	})
	require.Len(t, order, 7)
	assert.Equal(t, 7, s.Allocated())

	seen := make(map[string]bool)
	for i, h := range order {
		id := tree.Node(h).ID
		assert.Equal(t, "doc-"+strconv.Itoa(i), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Empty(t, tree.Node(tree.Root()).ID)
}

func TestNewMarksEditableLeaves(t *testing.T) {
	tree := sampleTree()
	_, err := New(tree, WithSpellcheck(false))
	require.NoError(t, err)

	tree.Walk(tree.Root(), func(h doc.Handle) bool {
		n := tree.Node(h)
		assert.Equal(t, n.Kind.IsEditableLeaf(), n.Editable, "kind %s", n.Kind)
		assert.False(t, n.Spellcheck)
		return true
	})

	tree2 := sampleTree()
	_, err = New(tree2)
	require.NoError(t, err)
	for _, leaf := range tree2.Leaves() {
		assert.True(t, tree2.Node(leaf).Spellcheck)
	}
}

func TestNewRejectsInvalidDocument(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	tree := doc.NewTree()
	s, err := New(tree, WithLogger(logger))
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, doc.ErrEmptyRoot))

	var verr *doc.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, buf.String(), "document rejected")
	assert.Empty(t, tree.Leaves())
}

func TestNewNilTree(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilTree)
}

func TestAllocateIDIsMonotonic(t *testing.T) {
	s, err := New(sampleTree())
	require.NoError(t, err)

	first := s.AllocateID()
	second := s.AllocateID()
	assert.Equal(t, DefaultIDPrefix+"7", first)
	assert.Equal(t, DefaultIDPrefix+"8", second)
}

func TestNewNodeIsInitializedOnce(t *testing.T) {
	s, err := New(sampleTree())
	require.NoError(t, err)

	p := s.NewNode(doc.KindParagraph)
	n := s.Tree().Node(p)
	assert.Equal(t, DefaultIDPrefix+"7", n.ID)
	assert.True(t, n.Editable)
	assert.True(t, n.Spellcheck)

	require.NoError(t, s.InitializeNode(p))
	assert.Equal(t, DefaultIDPrefix+"7", n.ID)
	assert.Equal(t, 8, s.Allocated())

	list := s.NewNode(doc.KindList)
	assert.Equal(t, DefaultIDPrefix+"8", s.Tree().Node(list).ID)
	assert.False(t, s.Tree().Node(list).Editable)
}

func TestInitializeNodeErrors(t *testing.T) {
	s, err := New(sampleTree())
	require.NoError(t, err)

	assert.ErrorIs(t, s.InitializeNode(s.Tree().Root()), ErrNotInitializable)
	assert.ErrorIs(t, s.InitializeNode(doc.Handle(999)), doc.ErrInvalidHandle)
}

func TestSessionsAreIndependent(t *testing.T) {
	a, err := New(sampleTree())
	require.NoError(t, err)
	b, err := New(sampleTree())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.Equal(t, a.AllocateID(), b.AllocateID())
}

func TestSessionLogsIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})

	s, err := New(sampleTree(), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "initialized 7 nodes")
	assert.True(t, strings.Contains(out, "session="+s.ID().String()), out)
	assert.Equal(t, "wedit-", s.Prefix())
}
