// Package session holds the per-document editing state: the validated tree,
// the identifier allocator and the leaf initialization policy.
//
// A Session is created when a document is opened and discarded when it is
// closed. There is no shared state between sessions.
package session

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/logging"
)

// Session owns one open document.
type Session struct {
	tree       *doc.Tree
	id         uuid.UUID
	prefix     string
	next       int
	spellcheck bool
	logger     *logging.Logger

	initialized map[doc.Handle]struct{}
}

// New validates tree and initializes every node in document order.
// A grammar violation aborts the session; the returned error wraps the
// *doc.ValidationError.
func New(tree *doc.Tree, opts ...Option) (*Session, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	s := &Session{
		tree:        tree,
		id:          uuid.New(),
		prefix:      DefaultIDPrefix,
		spellcheck:  true,
		logger:      logging.Null(),
		initialized: make(map[doc.Handle]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("session").WithField("session", s.id)

	if err := doc.Validate(tree); err != nil {
		s.logger.Error("document rejected: %v", err)
		return nil, fmt.Errorf("session: initialize: %w", err)
	}

	tree.Walk(tree.Root(), func(h doc.Handle) bool {
		_ = s.InitializeNode(h)
		return true
	})
	s.logger.Info("initialized %d nodes", s.next)

	return s, nil
}

// Tree returns the session's document.
func (s *Session) Tree() *doc.Tree {
	return s.tree
}

// ID returns the unique identity of this session.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Prefix returns the identifier namespace.
func (s *Session) Prefix() string {
	return s.prefix
}

// Allocated returns how many identifiers have been handed out.
func (s *Session) Allocated() int {
	return s.next
}

// Logger returns the session logger.
func (s *Session) Logger() *logging.Logger {
	return s.logger
}

// AllocateID returns the next identifier and advances the counter.
func (s *Session) AllocateID() string {
	id := s.prefix + strconv.Itoa(s.next)
	s.next++
	return id
}

// InitializeNode assigns an identifier to h and marks editable leaves as
// editable and spell-checkable. A node is initialized at most once; later
// calls leave its identifier unchanged. The Article is never initialized.
func (s *Session) InitializeNode(h doc.Handle) error {
	n := s.tree.Node(h)
	if n == nil {
		return doc.ErrInvalidHandle
	}
	if !n.Kind.CarriesID() {
		return ErrNotInitializable
	}
	if _, done := s.initialized[h]; done {
		return nil
	}
	s.initialized[h] = struct{}{}

	n.ID = s.AllocateID()
	if n.Kind.IsEditableLeaf() {
		n.Editable = true
		n.Spellcheck = s.spellcheck
	}
	return nil
}

// NewNode creates a detached, initialized node of the given kind.
func (s *Session) NewNode(kind doc.Kind) doc.Handle {
	h := s.tree.NewNode(kind)
	if err := s.InitializeNode(h); err != nil {
		s.logger.Warn("new %s node not initialized: %v", kind, err)
	}
	return h
}

// Verify re-runs grammar validation over the current tree.
func (s *Session) Verify() error {
	return doc.Validate(s.tree)
}
