// Package keymap maps key chords to editor commands.
//
// The structural editing keys (Enter, Backspace, arrows, Tab) belong to the
// editing core and are never looked up here. A keymap only covers commands
// that act on the editor itself, such as saving or quitting.
//
// # Key Concepts
//
// Keymap: A named collection of bindings with a priority.
//
// Binding: Maps one key chord to an action name.
//
// Registry: Holds every keymap and resolves a chord to its binding.
//
// # Binding Precedence
//
// When several keymaps bind the same chord, the keymap with the higher
// Priority wins. Between keymaps of equal priority the one registered last
// wins, so user keymaps registered after the defaults override them.
//
// # Key Formats
//
//	"Ctrl+S"   - readable notation
//	"<C-s>"    - angle bracket notation
//	"Escape"   - special key
//
// Letters combined with Ctrl, Alt or Meta are case-insensitive: "Ctrl+S" and
// "Ctrl+s" are the same chord.
package keymap
