package keynav

import (
	"unicode/utf8"

	"github.com/dshills/wedit/internal/host"
	"github.com/dshills/wedit/internal/logging"
)

// AtStart reports whether the caret is at the start of a leaf holding text.
// An empty leaf is always at its start. More than one active range is not
// supported and counts as not at the start.
func AtStart(text string, sel host.Selection, logger *logging.Logger) bool {
	if text == "" {
		return true
	}
	switch sel.RangeCount() {
	case 0:
		return false
	case 1:
		return sel.Ranges[0].Start == 0
	default:
		logger.Warn("multi-range selection (%d ranges) is not supported", sel.RangeCount())
		return false
	}
}

// AtEnd reports whether the caret is at the end of a leaf holding text.
func AtEnd(text string, sel host.Selection, logger *logging.Logger) bool {
	if text == "" {
		return true
	}
	switch sel.RangeCount() {
	case 0:
		return false
	case 1:
		return sel.Ranges[0].End == utf8.RuneCountInString(text)
	default:
		logger.Warn("multi-range selection (%d ranges) is not supported", sel.RangeCount())
		return false
	}
}
