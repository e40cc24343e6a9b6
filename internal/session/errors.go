package session

import "errors"

// Errors returned by session operations.
var (
	// ErrNilTree indicates a session was opened without a document.
	ErrNilTree = errors.New("session: nil document tree")

	// ErrNotInitializable indicates a node kind that never carries an identifier.
	ErrNotInitializable = errors.New("session: node kind cannot be initialized")
)
