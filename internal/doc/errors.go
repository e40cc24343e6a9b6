package doc

import (
	"errors"
	"fmt"
)

// Grammar errors reported by Validate.
var (
	// ErrEmptyRoot indicates the Article has no children.
	ErrEmptyRoot = errors.New("doc: article has no content")

	// ErrInvalidChildKind indicates a node kind that is not allowed under its parent.
	ErrInvalidChildKind = errors.New("doc: invalid child kind")

	// ErrMissingHeading indicates a Section whose first child is absent or not a Heading.
	ErrMissingHeading = errors.New("doc: section does not start with a heading")

	// ErrWrongHeadingLevel indicates a Heading whose level does not match its Section depth.
	ErrWrongHeadingLevel = errors.New("doc: heading level does not match section depth")

	// ErrEmptyList indicates a List with no items.
	ErrEmptyList = errors.New("doc: list has no items")

	// ErrInvalidListChild indicates a List child that is not a List Item.
	ErrInvalidListChild = errors.New("doc: list contains a non-item child")
)

// Tree mutation errors.
var (
	// ErrInvalidHandle indicates a handle that does not name a node in the tree.
	ErrInvalidHandle = errors.New("doc: invalid handle")

	// ErrAttached indicates an insertion of a node that already has a parent.
	ErrAttached = errors.New("doc: node is already attached")

	// ErrDetached indicates a sibling operation relative to a node without a parent.
	ErrDetached = errors.New("doc: node is not attached")

	// ErrRoot indicates an operation that would move or remove the Article.
	ErrRoot = errors.New("doc: operation not allowed on the root")

	// ErrCycle indicates an insertion that would make a node its own ancestor.
	ErrCycle = errors.New("doc: insertion would create a cycle")
)

// ValidationError identifies the node that violates the document grammar.
type ValidationError struct {
	// Err is one of the grammar sentinel errors.
	Err error

	// Node is the offending node.
	Node Handle

	// Kind is the kind of the offending node.
	Kind Kind

	// Path locates the node from the root, e.g. "article/section[1]/list[0]".
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Err.Error(), e.Path)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(t *Tree, err error, h Handle) *ValidationError {
	return &ValidationError{
		Err:  err,
		Node: h,
		Kind: t.Kind(h),
		Path: t.Path(h),
	}
}
