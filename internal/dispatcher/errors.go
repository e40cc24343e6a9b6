package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrGrammarViolation indicates a handler left the document invalid.
	ErrGrammarViolation = errors.New("dispatcher: document grammar violated")

	// ErrNoHost indicates the dispatcher was created without a host.
	ErrNoHost = errors.New("dispatcher: cursor and viewport controllers are required")
)
