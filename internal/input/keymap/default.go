package keymap

// Editor actions.
const (
	ActionSave = "editor.save"
	ActionQuit = "editor.quit"
)

// Keymap priorities.
const (
	PriorityDefault = 0
	PriorityUser    = 100
)

// DefaultKeymap returns the built-in editor bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:     "default",
		Priority: PriorityDefault,
		Source:   "default",
		Bindings: []Binding{
			{Keys: "Ctrl+S", Action: ActionSave, Description: "Save the document", Category: "File"},
			{Keys: "Ctrl+Q", Action: ActionQuit, Description: "Quit", Category: "Editor"},
			{Keys: "Ctrl+C", Action: ActionQuit, Description: "Quit", Category: "Editor"},
		},
	}
}

// LoadDefaults registers the built-in keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}

// NewDefaultRegistry returns a registry holding the built-in keymap and,
// when user is non-nil, the user's keymap on top of it.
func NewDefaultRegistry(user *Keymap) (*Registry, error) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		return nil, err
	}
	if user == nil {
		return r, nil
	}
	user = user.Clone()
	if user.Source == "" {
		user.Source = "user"
	}
	if user.Priority < PriorityUser {
		user.Priority = PriorityUser
	}
	if err := r.Register(user); err != nil {
		return nil, err
	}
	return r, nil
}
