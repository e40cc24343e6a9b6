// Package dispatcher routes host events to the editing core and applies
// the results back to the host.
//
// A host hands the dispatcher two kinds of events:
//
//   - structural input events (input.Event), handled by input.Engine
//   - key events (key.Event), handled by keynav.Handler
//
// # Dispatch
//
// When an event is dispatched:
//
//  1. The dispatcher lock is taken; events never interleave
//  2. The handler runs (with optional panic recovery)
//  3. If the handler changed the tree and VerifyAfterMutation is set, the
//     document is validated; a violation turns the result into an error
//  4. The cursor placement and scroll request are applied to the host
//  5. Post-dispatch hooks are called
//  6. Metrics are recorded (if enabled)
//
// The returned Result tells the host whether to suppress its own default
// behavior:
//
//	res := d.DispatchInput(ev)
//	if !res.Handled() {
//	    // apply the keystroke normally
//	}
package dispatcher
