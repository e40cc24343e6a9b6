package doc

// Kind identifies the grammatical role of a node in a document tree.
type Kind uint8

const (
	// KindInvalid is the zero value and never appears in a well-formed tree.
	KindInvalid Kind = iota

	// KindArticle is the document root container.
	KindArticle

	// KindSection is a container whose first child is its Heading.
	KindSection

	// KindHeading is the mandatory first child of a Section.
	KindHeading

	// KindParagraph is an editable text block.
	KindParagraph

	// KindList is an ordered or unordered list of List Items.
	KindList

	// KindListItem is an editable text leaf inside a List.
	KindListItem
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindArticle:
		return "article"
	case KindSection:
		return "section"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindListItem:
		return "item"
	default:
		return "invalid"
	}
}

// IsContainer returns true for kinds whose children are Content Items.
func (k Kind) IsContainer() bool {
	return k == KindArticle || k == KindSection
}

// IsContentItem returns true for kinds allowed directly under an Article,
// or under a Section after its Heading.
func (k Kind) IsContentItem() bool {
	switch k {
	case KindSection, KindParagraph, KindList:
		return true
	}
	return false
}

// IsEditableLeaf returns true for kinds that hold user text.
func (k Kind) IsEditableLeaf() bool {
	switch k {
	case KindHeading, KindParagraph, KindListItem:
		return true
	}
	return false
}

// CarriesID returns true for kinds that receive a session identifier.
func (k Kind) CarriesID() bool {
	return k != KindInvalid && k != KindArticle
}
