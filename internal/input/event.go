package input

import "github.com/dshills/wedit/internal/doc"

// Kind identifies a structural input event. Names follow the host's
// input-type vocabulary.
type Kind uint8

const (
	// KindOther is any input the engine does not inspect.
	KindOther Kind = iota
	// KindInsertParagraph is a paragraph break (Enter).
	KindInsertParagraph
	// KindDeleteContentBackward is a backward deletion (Backspace).
	KindDeleteContentBackward
	// KindInsertText is the insertion of typed characters.
	KindInsertText
)

// String returns the host name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsertParagraph:
		return "insertParagraph"
	case KindDeleteContentBackward:
		return "deleteContentBackward"
	case KindInsertText:
		return "insertText"
	default:
		return "other"
	}
}

// ParseKind maps a host input-type name to a Kind. Unknown names map to
// KindOther.
func ParseKind(name string) Kind {
	switch name {
	case "insertParagraph":
		return KindInsertParagraph
	case "deleteContentBackward":
		return KindDeleteContentBackward
	case "insertText":
		return KindInsertText
	default:
		return KindOther
	}
}

// Event is a structural input event targeting one editable leaf.
type Event struct {
	// Kind is the input type.
	Kind Kind

	// Target is the leaf receiving the input.
	Target doc.Handle

	// Text is the target's text content before the input is applied.
	Text string

	// Data holds the inserted characters of an insertText event.
	Data string
}
