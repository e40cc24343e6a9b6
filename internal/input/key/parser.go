package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
	ErrUnknownDOM  = errors.New("unknown DOM key")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "*", "1"
//   - Special keys: "Enter", "Tab", "Up", "Backspace", "Space"
//   - With modifiers: "Shift+Tab", "Ctrl+C"
//   - Vim-style: "<S-Tab>", "<C-c>", "<CR>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var sep string
	switch {
	case strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2:
		spec, sep = spec[1:len(spec)-1], "-"
	case len(spec) > 1 && strings.Contains(spec, "+"):
		sep = "+"
	}
	if sep == "" {
		return parseKey(spec, ModNone)
	}

	parts := strings.Split(spec, sep)
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

// parseKey parses a key name or single character.
func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if strings.EqualFold(name, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	if k := FromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, name)
}

// ParseDOM converts a DOM KeyboardEvent.key value and its shift flag into
// an Event. Printable single characters become rune events.
func ParseDOM(name string, shift bool) (Event, error) {
	var mods Modifier
	if shift {
		mods = ModShift
	}
	if k, ok := domKeyMap[name]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownDOM, name)
}
