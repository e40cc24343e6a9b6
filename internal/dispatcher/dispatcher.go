package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/wedit/internal/dispatcher/handler"
	"github.com/dshills/wedit/internal/doc"
	"github.com/dshills/wedit/internal/host"
	"github.com/dshills/wedit/internal/input"
	"github.com/dshills/wedit/internal/input/key"
	"github.com/dshills/wedit/internal/keynav"
	"github.com/dshills/wedit/internal/logging"
	"github.com/dshills/wedit/internal/session"
)

// Event name prefixes used for metrics and logs.
const (
	inputPrefix = "input."
	keyPrefix   = "key."
)

// Dispatcher routes host events to the editing core.
type Dispatcher struct {
	mu sync.Mutex

	session  *session.Session
	engine   *input.Engine
	keys     *keynav.Handler
	cursor   host.CursorController
	viewport host.ViewportController
	logger   *logging.Logger

	config    Config
	metrics   *Metrics
	postHooks []PostDispatchHook
}

// New creates a dispatcher for s that applies results to the given host.
func New(s *session.Session, cursor host.CursorController, viewport host.ViewportController, config Config, opts ...Option) (*Dispatcher, error) {
	if cursor == nil || viewport == nil {
		return nil, ErrNoHost
	}

	d := &Dispatcher{
		session:  s,
		engine:   input.NewEngine(s),
		keys:     keynav.New(s, cursor, viewport),
		cursor:   cursor,
		viewport: viewport,
		logger:   s.Logger().WithComponent("dispatcher"),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// DispatchInput handles a structural input event.
func (d *Dispatcher) DispatchInput(ev input.Event) handler.Result {
	return d.dispatch(inputPrefix+ev.Kind.String(), func() handler.Result {
		return d.engine.Handle(ev)
	})
}

// DispatchKey handles a key event for the focused leaf target.
func (d *Dispatcher) DispatchKey(ev key.Event, target doc.Handle) handler.Result {
	return d.dispatch(keyPrefix+ev.String(), func() handler.Result {
		return d.keys.Handle(ev, target)
	})
}

// dispatch is the core dispatch logic.
func (d *Dispatcher) dispatch(name string, run func() handler.Result) handler.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	startTime := time.Now()

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(name, run)
	} else {
		result = run()
	}

	if d.config.VerifyAfterMutation && result.Handled() && mutated(result) {
		if err := d.session.Verify(); err != nil {
			d.logger.Error("%s left the document invalid: %v", name, err)
			result = handler.Error(fmt.Errorf("%w: %w", ErrGrammarViolation, err))
		}
	}

	d.processResult(result)

	for _, h := range d.postHooks {
		h.PostDispatch(name, result)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(startTime), result.Status)
	}

	return result
}

// executeWithRecovery runs a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(name string, run func() handler.Result) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, name, r))
			d.logger.Error("panic in %s: %v\n%s", name, r, string(stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(name)
			}
		}
	}()

	return run()
}

// processResult applies cursor and scroll directives to the host.
func (d *Dispatcher) processResult(result handler.Result) {
	if !result.Handled() {
		return
	}
	if result.Cursor != nil {
		d.cursor.PlaceCursor(result.Cursor.Node, result.Cursor.Offset)
	}
	if result.Scroll != doc.Nil {
		d.viewport.ScrollIntoView(result.Scroll)
	}
}

func mutated(result handler.Result) bool {
	return len(result.Created) > 0 || len(result.Removed) > 0
}

// Session returns the session the dispatcher edits.
func (d *Dispatcher) Session() *session.Session {
	return d.session
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
