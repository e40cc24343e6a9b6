// Package key provides the keyboard events the editor reacts to.
//
// Hosts report keys either as typed Events (the terminal host converts
// tcell events) or as DOM key names, which ParseDOM understands:
//
//	ev, err := key.ParseDOM("ArrowUp", false)  // Up
//	ev, err := key.ParseDOM("Tab", true)       // Shift+Tab
//
// Parse accepts the editor's own notation for configuration and tests:
//
//	key.Parse("Up")
//	key.Parse("Shift+Tab")
//	key.Parse("<S-Tab>")
package key
