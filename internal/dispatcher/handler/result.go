// Package handler provides the result type returned by every event handler.
package handler

import (
	"fmt"

	"github.com/dshills/wedit/internal/doc"
)

// ResultStatus indicates the outcome of an event.
type ResultStatus uint8

const (
	// StatusOK indicates the event was handled; the host must suppress its
	// default behavior.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the event was not claimed; the host applies its
	// default behavior.
	StatusNoOp
	// StatusError indicates a handler claimed the event but failed.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Placement is a cursor-placement directive.
type Placement struct {
	// Node is the leaf that receives the caret.
	Node doc.Handle
	// Offset is the rune offset inside the leaf.
	Offset int
}

// Result represents the outcome of handling an event.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional note for logs.
	Message string

	// Cursor is where the caret goes next, if anywhere.
	Cursor *Placement

	// Scroll names a node the host must scroll into view.
	Scroll doc.Handle

	// Created lists nodes inserted into the tree, in insertion order.
	Created []doc.Handle

	// Removed lists nodes detached from the tree.
	Removed []doc.Handle
}

// Handled returns true if the host must suppress its default behavior.
func (r Result) Handled() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a handled result.
func Success() Result {
	return Result{Status: StatusOK}
}

// NoOp creates an unhandled result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates an unhandled result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithCursor returns a copy of the result that places the caret.
func (r Result) WithCursor(node doc.Handle, offset int) Result {
	r.Cursor = &Placement{Node: node, Offset: offset}
	return r
}

// WithScroll returns a copy of the result that scrolls node into view.
func (r Result) WithScroll(node doc.Handle) Result {
	r.Scroll = node
	return r
}

// WithCreated returns a copy of the result recording inserted nodes.
func (r Result) WithCreated(nodes ...doc.Handle) Result {
	r.Created = append(r.Created[:len(r.Created):len(r.Created)], nodes...)
	return r
}

// WithRemoved returns a copy of the result recording detached nodes.
func (r Result) WithRemoved(nodes ...doc.Handle) Result {
	r.Removed = append(r.Removed[:len(r.Removed):len(r.Removed)], nodes...)
	return r
}
