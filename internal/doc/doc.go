// Package doc provides the block-document tree and its grammar.
//
// A document is an arena of nodes addressed by Handle. The root is always an
// Article; below it the grammar allows:
//
//	Article   -> ContentItem+
//	Section   -> Heading ContentItem*
//	List      -> ListItem+
//	ContentItem = Section | Paragraph | List
//
// Headings, Paragraphs and List Items are editable leaves. A Section's
// Heading level is its depth (number of Section ancestors) plus two.
//
// # Basic Usage
//
//	t := doc.NewTree()
//	intro := t.AddSection(t.Root(), "Intro")
//	t.AddParagraph(intro, "hello")
//	list := t.AddList(intro, false)
//	t.AddItem(list, "first")
//
//	if err := doc.Validate(t); err != nil {
//	    var verr *doc.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Println(verr.Path)
//	    }
//	}
package doc
