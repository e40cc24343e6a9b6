package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/wedit/internal/input/key"
)

// ErrNilKeymap is returned when registering a nil keymap.
var ErrNilKeymap = errors.New("cannot register nil keymap")

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*registered

	// index maps a chord to every binding for it.
	index map[key.Event][]BindingMatch

	// seq orders registrations.
	seq int
}

type registered struct {
	parsed *ParsedKeymap
	seq    int
}

// BindingMatch represents a matched binding with its keymap.
type BindingMatch struct {
	*ParsedBinding

	// Keymap is the keymap containing the binding.
	Keymap *Keymap

	seq int
}

// before returns true if this match takes precedence over other.
func (bm BindingMatch) before(other BindingMatch) bool {
	if bm.Keymap.Priority != other.Keymap.Priority {
		return bm.Keymap.Priority > other.Keymap.Priority
	}
	return bm.seq > other.seq
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*registered),
		index:   make(map[key.Event][]BindingMatch),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)

	r.seq++
	r.keymaps[km.Name] = &registered{parsed: parsed, seq: r.seq}
	for i := range parsed.ParsedBindings {
		pb := &parsed.ParsedBindings[i]
		r.index[pb.Event] = append(r.index[pb.Event], BindingMatch{
			ParsedBinding: pb,
			Keymap:        km,
			seq:           r.seq,
		})
	}

	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(name)
}

// unregisterLocked removes a keymap without acquiring the lock.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) {
	km, ok := r.keymaps[name]
	if !ok {
		return
	}
	delete(r.keymaps, name)

	for _, pb := range km.parsed.ParsedBindings {
		matches := r.index[pb.Event]
		kept := matches[:0]
		for _, m := range matches {
			if m.Keymap != km.parsed.Keymap {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			delete(r.index, pb.Event)
		} else {
			r.index[pb.Event] = kept
		}
	}
}

// Get returns a keymap by name, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if km, ok := r.keymaps[name]; ok {
		return km.parsed
	}
	return nil
}

// Lookup returns the winning binding for ev, or nil if the chord is unbound.
func (r *Registry) Lookup(ev key.Event) *Binding {
	matches := r.LookupAll(ev)
	if len(matches) == 0 {
		return nil
	}
	b := matches[0].Binding
	return &b
}

// LookupAll returns every binding for ev, best first.
func (r *Registry) LookupAll(ev key.Event) []BindingMatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := r.index[normalize(ev)]
	matches := make([]BindingMatch, len(found))
	copy(matches, found)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].before(matches[j])
	})
	return matches
}

// Keymaps returns all registered keymaps in registration order.
func (r *Registry) Keymaps() []*ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]*registered, 0, len(r.keymaps))
	for _, km := range r.keymaps {
		regs = append(regs, km)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].seq < regs[j].seq })

	result := make([]*ParsedKeymap, len(regs))
	for i, reg := range regs {
		result[i] = reg.parsed
	}
	return result
}

// Bindings returns the effective binding of every bound chord, ordered by
// action then keys. Overridden bindings are left out.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	events := make([]key.Event, 0, len(r.index))
	for ev := range r.index {
		events = append(events, ev)
	}
	r.mu.RUnlock()

	result := make([]Binding, 0, len(events))
	for _, ev := range events {
		if b := r.Lookup(ev); b != nil {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Action != result[j].Action {
			return result[i].Action < result[j].Action
		}
		return result[i].Keys < result[j].Keys
	})
	return result
}
