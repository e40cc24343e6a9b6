package dispatcher

import "github.com/dshills/wedit/internal/dispatcher/handler"

// PostDispatchHook is called after an event is dispatched and its result
// applied to the host.
type PostDispatchHook interface {
	// PostDispatch receives the event name and the final result.
	PostDispatch(name string, result handler.Result)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(name string, result handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(name string, result handler.Result) {
	f(name, result)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPostHook registers a post-dispatch hook.
func WithPostHook(h PostDispatchHook) Option {
	return func(d *Dispatcher) {
		d.postHooks = append(d.postHooks, h)
	}
}
