package doc

// Validate checks the document grammar:
//
//   - the Article has at least one child and every child is a Content Item;
//   - every Section starts with a Heading of level depth+2, followed by Content Items;
//   - every List has at least one child and every child is a List Item;
//   - editable leaves have no children.
//
// The first violation found in document order is returned as a *ValidationError.
func Validate(t *Tree) error {
	root := t.Root()
	if t.NumChildren(root) == 0 {
		return newValidationError(t, ErrEmptyRoot, root)
	}
	return validateContent(t, root, 0)
}

// validateContent checks the children of a container starting at index from.
func validateContent(t *Tree, container Handle, from int) error {
	for _, c := range t.Children(container)[from:] {
		var err error
		switch t.Kind(c) {
		case KindSection:
			err = validateSection(t, c)
		case KindList:
			err = validateList(t, c)
		case KindParagraph:
			err = validateLeaf(t, c)
		default:
			err = newValidationError(t, ErrInvalidChildKind, c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func validateSection(t *Tree, section Handle) error {
	heading := t.FirstChild(section)
	if t.Kind(heading) != KindHeading {
		return newValidationError(t, ErrMissingHeading, section)
	}
	if t.Node(heading).Level != t.HeadingLevel(section) {
		return newValidationError(t, ErrWrongHeadingLevel, heading)
	}
	if err := validateLeaf(t, heading); err != nil {
		return err
	}
	return validateContent(t, section, 1)
}

func validateList(t *Tree, list Handle) error {
	if t.NumChildren(list) == 0 {
		return newValidationError(t, ErrEmptyList, list)
	}
	for _, item := range t.Children(list) {
		if t.Kind(item) != KindListItem {
			return newValidationError(t, ErrInvalidListChild, item)
		}
		if err := validateLeaf(t, item); err != nil {
			return err
		}
	}
	return nil
}

func validateLeaf(t *Tree, leaf Handle) error {
	if c := t.FirstChild(leaf); c != Nil {
		return newValidationError(t, ErrInvalidChildKind, c)
	}
	return nil
}
