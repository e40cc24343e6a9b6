package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wedit/internal/input/key"
)

func ctrl(r rune) key.Event {
	return key.NewRuneEvent(r, key.ModCtrl)
}

func TestParseNormalizesChords(t *testing.T) {
	tests := []struct {
		keys string
		want key.Event
	}{
		{"Ctrl+S", ctrl('s')},
		{"Ctrl+s", ctrl('s')},
		{"<C-s>", ctrl('s')},
		{"Ctrl+Shift+S", ctrl('s')},
		{"Escape", key.NewSpecialEvent(key.KeyEscape, key.ModNone)},
		{"Alt+x", key.NewRuneEvent('x', key.ModAlt)},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			parsed, err := NewKeymap("t").Add(tt.keys, "a").Parse()
			require.NoError(t, err)
			require.Len(t, parsed.ParsedBindings, 1)
			assert.Equal(t, tt.want, parsed.ParsedBindings[0].Event)
			assert.True(t, parsed.ParsedBindings[0].Match(tt.want))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		km   *Keymap
		ok   bool
	}{
		{"valid", NewKeymap("ok").Add("Ctrl+S", ActionSave), true},
		{"empty keys", NewKeymap("k").Add("", ActionSave), false},
		{"empty action", NewKeymap("a").Add("Ctrl+S", ""), false},
		{"bad chord", NewKeymap("c").Add("Hyper+S", ActionSave), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.km.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry(nil)
	require.NoError(t, err)

	tests := []struct {
		ev     key.Event
		action string
	}{
		{ctrl('s'), ActionSave},
		{ctrl('S'), ActionSave},
		{ctrl('q'), ActionQuit},
		{ctrl('c'), ActionQuit},
	}
	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			b := r.Lookup(tt.ev)
			require.NotNil(t, b)
			assert.Equal(t, tt.action, b.Action)
		})
	}

	assert.Nil(t, r.Lookup(key.NewRuneEvent('s', key.ModNone)))
	assert.Nil(t, r.Lookup(key.NewSpecialEvent(key.KeyEnter, key.ModNone)))
}

func TestUserKeymapOverridesDefaults(t *testing.T) {
	user := FromActions("user", map[string][]string{
		ActionQuit: {"Ctrl+S"},
		ActionSave: {"Ctrl+W"},
	})
	r, err := NewDefaultRegistry(user)
	require.NoError(t, err)

	assert.Equal(t, ActionQuit, r.Lookup(ctrl('s')).Action)
	assert.Equal(t, ActionSave, r.Lookup(ctrl('w')).Action)
	assert.Equal(t, ActionQuit, r.Lookup(ctrl('q')).Action)

	all := r.LookupAll(ctrl('s'))
	require.Len(t, all, 2)
	assert.Equal(t, "user", all[0].Keymap.Source)
	assert.Equal(t, "default", all[1].Keymap.Source)

	assert.Equal(t, 0, user.Priority, "caller's keymap is not modified")
}

func TestEqualPriorityLaterWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewKeymap("first").Add("Ctrl+K", "one")))
	require.NoError(t, r.Register(NewKeymap("second").Add("Ctrl+K", "two")))
	assert.Equal(t, "two", r.Lookup(ctrl('k')).Action)

	require.NoError(t, r.Register(NewKeymap("first").Add("Ctrl+K", "three")))
	assert.Equal(t, "three", r.Lookup(ctrl('k')).Action)
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewKeymap("a").Add("Ctrl+K", "one")))
	require.NotNil(t, r.Get("a"))

	r.Unregister("a")
	assert.Nil(t, r.Get("a"))
	assert.Nil(t, r.Lookup(ctrl('k')))
	assert.Empty(t, r.Keymaps())

	r.Unregister("missing")
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Register(nil), ErrNilKeymap)
	assert.Error(t, r.Register(NewKeymap("bad").Add("", "x")))
	assert.Empty(t, r.Keymaps())
}

func TestBindingsAndCategories(t *testing.T) {
	user := NewKeymap("user").AddBinding(NewBinding("Ctrl+C", "editor.copy").WithCategory("Edit").WithDescription("Copy"))
	r, err := NewDefaultRegistry(user)
	require.NoError(t, err)

	got := r.Bindings()
	var summary []string
	for _, b := range got {
		summary = append(summary, b.Action+" "+b.Keys)
	}
	assert.Equal(t, []string{"editor.copy Ctrl+C", "editor.quit Ctrl+Q", "editor.save Ctrl+S"}, summary)

	groups := GroupByCategory(got)
	require.Len(t, groups, 3)
	assert.Equal(t, "Edit", groups[0].Name)
	assert.Equal(t, "Editor", groups[1].Name)
	assert.Equal(t, "File", groups[2].Name)

	names := []string{}
	for _, km := range r.Keymaps() {
		names = append(names, km.Name)
	}
	assert.Equal(t, []string{"default", "user"}, names)
}

func TestFromActionsOrder(t *testing.T) {
	km := FromActions("user", map[string][]string{
		"b": {"Ctrl+B"},
		"a": {"Ctrl+A", "Ctrl+Z"},
	})
	require.Len(t, km.Bindings, 3)
	assert.Equal(t, NewBinding("Ctrl+A", "a"), km.Bindings[0])
	assert.Equal(t, NewBinding("Ctrl+Z", "a"), km.Bindings[1])
	assert.Equal(t, NewBinding("Ctrl+B", "b"), km.Bindings[2])
}
