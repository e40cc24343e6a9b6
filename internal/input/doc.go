// Package input turns structural input events from the host into document
// tree mutations and cursor-placement directives.
//
// The host reports an event before applying its own default behavior. The
// Engine either claims the event (the result is handled and carries a
// cursor placement) or leaves it to the host:
//
//	Event                   Condition                      Effect
//	insertParagraph         empty list item                split the list around a new paragraph
//	insertParagraph         heading                        new paragraph after the heading
//	insertParagraph         paragraph or list item         new sibling of the same kind
//	deleteContentBackward   empty leaf with a predecessor  remove the leaf (or its one-item list)
//	insertText " "          paragraph "*" / "1."           replace with an unordered / ordered list
//
// Every claimed event leaves the tree grammar-valid.
package input
