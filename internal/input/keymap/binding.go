package keymap

import (
	"unicode"

	"github.com/dshills/wedit/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the chord that triggers this binding.
	// Formats: "Ctrl+S", "<C-s>", "Escape"
	Keys string

	// Action is the command to execute.
	// Examples: "editor.save", "editor.quit"
	Action string

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// ParsedBinding is a binding with its chord parsed.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Match checks if ev triggers this binding.
func (pb *ParsedBinding) Match(ev key.Event) bool {
	if pb == nil {
		return false
	}
	return pb.Event == normalize(ev)
}

// parseChord parses a chord and normalizes it for lookup.
func parseChord(keys string) (key.Event, error) {
	ev, err := key.Parse(keys)
	if err != nil {
		return key.Event{}, err
	}
	return normalize(ev), nil
}

// normalize folds letter case for chords that carry Ctrl, Alt or Meta.
// Terminals report Ctrl+S and Ctrl+Shift+S alike, so Shift is dropped too.
func normalize(ev key.Event) key.Event {
	if ev.IsRune() && ev.Modifiers.Has(key.ModCtrl|key.ModAlt|key.ModMeta) && unicode.IsLetter(ev.Rune) {
		ev.Rune = unicode.ToLower(ev.Rune)
		ev.Modifiers &^= key.ModShift
	}
	return ev
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
