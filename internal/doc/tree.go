package doc

import (
	"fmt"
	"slices"
	"strings"
)

// Handle names a node in a Tree. The zero value, Nil, names no node.
type Handle uint32

// Nil is the handle that refers to no node.
const Nil Handle = 0

// Node is a single element of the document tree.
//
// Structural fields (parent and children) are private and only change
// through Tree methods. The remaining fields are plain data.
type Node struct {
	// Kind is the grammatical role of the node.
	Kind Kind

	// Text is the user text of an editable leaf.
	Text string

	// Level is the heading level (2 for top-level sections). Only meaningful for headings.
	Level int

	// Ordered marks an ordered (numbered) list. Only meaningful for lists.
	Ordered bool

	// ID is the session identifier, empty until the node is initialized.
	ID string

	// Editable marks a leaf the host should let the user type into.
	Editable bool

	// Spellcheck marks a leaf the host should spell-check.
	Spellcheck bool

	parent   Handle
	children []Handle
}

// Tree is an arena of nodes rooted at a single Article.
//
// Nodes are never freed: a removed node keeps its handle but is no longer
// reachable from the root. A Tree is not safe for concurrent mutation.
type Tree struct {
	nodes []*Node
	root  Handle
}

// NewTree creates a tree containing only an empty Article.
func NewTree() *Tree {
	t := &Tree{nodes: make([]*Node, 1, 64)}
	t.root = t.NewNode(KindArticle)
	return t
}

// Root returns the Article.
func (t *Tree) Root() Handle {
	return t.root
}

// Len returns the number of nodes ever allocated in the arena.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// NewNode allocates a detached node of the given kind.
func (t *Tree) NewNode(kind Kind) Handle {
	t.nodes = append(t.nodes, &Node{Kind: kind})
	return Handle(len(t.nodes) - 1)
}

// Valid returns true if h names a node in this tree.
func (t *Tree) Valid(h Handle) bool {
	return h != Nil && int(h) < len(t.nodes)
}

// Node returns the node named by h, or nil for an invalid handle.
func (t *Tree) Node(h Handle) *Node {
	if !t.Valid(h) {
		return nil
	}
	return t.nodes[h]
}

// Kind returns the kind of h, or KindInvalid for an invalid handle.
func (t *Tree) Kind(h Handle) Kind {
	if n := t.Node(h); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Text returns the text of h.
func (t *Tree) Text(h Handle) string {
	if n := t.Node(h); n != nil {
		return n.Text
	}
	return ""
}

// SetText replaces the text of h.
func (t *Tree) SetText(h Handle, text string) {
	if n := t.Node(h); n != nil {
		n.Text = text
	}
}

// Parent returns the parent of h, or Nil for the root and detached nodes.
func (t *Tree) Parent(h Handle) Handle {
	if n := t.Node(h); n != nil {
		return n.parent
	}
	return Nil
}

// Children returns a copy of the ordered children of h.
func (t *Tree) Children(h Handle) []Handle {
	if n := t.Node(h); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// NumChildren returns the number of children of h.
func (t *Tree) NumChildren(h Handle) int {
	if n := t.Node(h); n != nil {
		return len(n.children)
	}
	return 0
}

// Child returns the i-th child of h, or Nil when out of range.
func (t *Tree) Child(h Handle, i int) Handle {
	n := t.Node(h)
	if n == nil || i < 0 || i >= len(n.children) {
		return Nil
	}
	return n.children[i]
}

// FirstChild returns the first child of h.
func (t *Tree) FirstChild(h Handle) Handle {
	return t.Child(h, 0)
}

// LastChild returns the last child of h.
func (t *Tree) LastChild(h Handle) Handle {
	return t.Child(h, t.NumChildren(h)-1)
}

// Index returns the position of h among its siblings, or -1 if detached.
func (t *Tree) Index(h Handle) int {
	p := t.Node(t.Parent(h))
	if p == nil {
		return -1
	}
	return slices.Index(p.children, h)
}

// PrevSibling returns the sibling before h.
func (t *Tree) PrevSibling(h Handle) Handle {
	i := t.Index(h)
	if i < 0 {
		return Nil
	}
	return t.Child(t.Parent(h), i-1)
}

// NextSibling returns the sibling after h.
func (t *Tree) NextSibling(h Handle) Handle {
	i := t.Index(h)
	if i < 0 {
		return Nil
	}
	return t.Child(t.Parent(h), i+1)
}

// Attached returns true if h is reachable from the root.
func (t *Tree) Attached(h Handle) bool {
	for t.Valid(h) {
		if h == t.root {
			return true
		}
		h = t.Parent(h)
	}
	return false
}

// Depth returns the number of Section ancestors of h.
func (t *Tree) Depth(h Handle) int {
	depth := 0
	for p := t.Parent(h); t.Valid(p); p = t.Parent(p) {
		if t.Kind(p) == KindSection {
			depth++
		}
	}
	return depth
}

// HeadingLevel returns the heading level required for a Section.
func (t *Tree) HeadingLevel(section Handle) int {
	return t.Depth(section) + 2
}

// Append adds child as the last child of parent.
func (t *Tree) Append(parent, child Handle) error {
	return t.InsertAt(parent, t.NumChildren(parent), child)
}

// InsertAt inserts child at position i among the children of parent.
func (t *Tree) InsertAt(parent Handle, i int, child Handle) error {
	if err := t.checkInsert(parent, child); err != nil {
		return err
	}
	p := t.nodes[parent]
	if i < 0 || i > len(p.children) {
		return fmt.Errorf("doc: insert index %d out of range [0,%d]", i, len(p.children))
	}
	p.children = slices.Insert(p.children, i, child)
	t.nodes[child].parent = parent
	return nil
}

// InsertAfter inserts child immediately after ref.
func (t *Tree) InsertAfter(ref, child Handle) error {
	i := t.Index(ref)
	if i < 0 {
		return fmt.Errorf("insert after %d: %w", ref, ErrDetached)
	}
	return t.InsertAt(t.Parent(ref), i+1, child)
}

// InsertBefore inserts child immediately before ref.
func (t *Tree) InsertBefore(ref, child Handle) error {
	i := t.Index(ref)
	if i < 0 {
		return fmt.Errorf("insert before %d: %w", ref, ErrDetached)
	}
	return t.InsertAt(t.Parent(ref), i, child)
}

// Remove detaches h and its subtree from the tree.
func (t *Tree) Remove(h Handle) error {
	if !t.Valid(h) {
		return ErrInvalidHandle
	}
	if h == t.root {
		return ErrRoot
	}
	i := t.Index(h)
	if i < 0 {
		return fmt.Errorf("remove %d: %w", h, ErrDetached)
	}
	p := t.nodes[t.nodes[h].parent]
	p.children = slices.Delete(p.children, i, i+1)
	t.nodes[h].parent = Nil
	return nil
}

// Replace puts replacement at the position of old and detaches old.
func (t *Tree) Replace(old, replacement Handle) error {
	i := t.Index(old)
	if i < 0 {
		return fmt.Errorf("replace %d: %w", old, ErrDetached)
	}
	parent := t.Parent(old)
	if err := t.Remove(old); err != nil {
		return err
	}
	return t.InsertAt(parent, i, replacement)
}

func (t *Tree) checkInsert(parent, child Handle) error {
	if !t.Valid(parent) || !t.Valid(child) {
		return ErrInvalidHandle
	}
	if child == t.root {
		return ErrRoot
	}
	if t.nodes[child].parent != Nil {
		return ErrAttached
	}
	for p := parent; t.Valid(p); p = t.Parent(p) {
		if p == child {
			return ErrCycle
		}
	}
	return nil
}

// Walk visits h and its descendants in document (pre-)order. Returning
// false from fn skips the children of the visited node.
func (t *Tree) Walk(h Handle, fn func(h Handle) bool) {
	if !t.Valid(h) {
		return
	}
	if !fn(h) {
		return
	}
	for _, c := range t.nodes[h].children {
		t.Walk(c, fn)
	}
}

// Leaves returns every attached editable leaf in document order.
func (t *Tree) Leaves() []Handle {
	var leaves []Handle
	t.Walk(t.root, func(h Handle) bool {
		if t.Kind(h).IsEditableLeaf() {
			leaves = append(leaves, h)
		}
		return true
	})
	return leaves
}

// Path returns a readable location of h, e.g. "article/section[1]/heading[0]".
func (t *Tree) Path(h Handle) string {
	if !t.Valid(h) {
		return "<invalid>"
	}
	var parts []string
	for n := h; t.Valid(n); n = t.Parent(n) {
		if n == t.root {
			parts = append(parts, t.Kind(n).String())
			break
		}
		idx := t.Index(n)
		if idx < 0 {
			parts = append(parts, fmt.Sprintf("%s(detached)", t.Kind(n)))
			break
		}
		parts = append(parts, fmt.Sprintf("%s[%d]", t.Kind(n), idx))
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}
