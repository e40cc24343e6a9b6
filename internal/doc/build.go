package doc

// The Add helpers attach new nodes without enforcing the grammar, so they
// can also build the malformed trees Validate must reject. Each returns
// Nil when the parent cannot be appended to.

// AddSection appends a Section with its Heading to parent. The heading
// level is derived from the section's position.
func (t *Tree) AddSection(parent Handle, title string) Handle {
	section := t.NewNode(KindSection)
	if err := t.Append(parent, section); err != nil {
		return Nil
	}
	heading := t.NewNode(KindHeading)
	t.nodes[heading].Text = title
	t.nodes[heading].Level = t.HeadingLevel(section)
	_ = t.Append(section, heading)
	return section
}

// AddParagraph appends a Paragraph with the given text to parent.
func (t *Tree) AddParagraph(parent Handle, text string) Handle {
	return t.addLeaf(parent, KindParagraph, text)
}

// AddList appends an empty List to parent.
func (t *Tree) AddList(parent Handle, ordered bool) Handle {
	list := t.NewNode(KindList)
	t.nodes[list].Ordered = ordered
	if err := t.Append(parent, list); err != nil {
		return Nil
	}
	return list
}

// AddItem appends a List Item with the given text to list.
func (t *Tree) AddItem(list Handle, text string) Handle {
	return t.addLeaf(list, KindListItem, text)
}

// Heading returns the Heading of a Section, or Nil if it has none.
func (t *Tree) Heading(section Handle) Handle {
	h := t.FirstChild(section)
	if t.Kind(h) != KindHeading {
		return Nil
	}
	return h
}

func (t *Tree) addLeaf(parent Handle, kind Kind, text string) Handle {
	h := t.NewNode(kind)
	t.nodes[h].Text = text
	if err := t.Append(parent, h); err != nil {
		return Nil
	}
	return h
}
