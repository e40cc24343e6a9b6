package term

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/wedit/internal/doc"
)

// line is one rendered leaf.
type line struct {
	node   doc.Handle
	prefix string
}

// width returns the display width of the line's text up to offset runes.
func (l line) width(text string, offset int) int {
	r := []rune(text)
	offset = min(max(offset, 0), len(r))
	return uniseg.StringWidth(l.prefix) + uniseg.StringWidth(string(r[:offset]))
}

// layout lays out every attached leaf of tree, one per line, in reading order.
func layout(tree *doc.Tree) []line {
	var lines []line
	for _, leaf := range tree.Leaves() {
		lines = append(lines, line{node: leaf, prefix: prefix(tree, leaf)})
	}
	return lines
}

func prefix(tree *doc.Tree, leaf doc.Handle) string {
	depth := tree.Depth(leaf)
	switch tree.Kind(leaf) {
	case doc.KindHeading:
		level := tree.Node(leaf).Level
		if level <= 0 {
			level = depth + 1
		}
		return strings.Repeat("  ", max(depth-1, 0)) + strings.Repeat("#", level) + " "
	case doc.KindListItem:
		marker := "• "
		list := tree.Parent(leaf)
		if tree.Node(list).Ordered {
			marker = strconv.Itoa(tree.Index(leaf)+1) + ". "
		}
		return strings.Repeat("  ", depth) + marker
	default:
		return strings.Repeat("  ", depth)
	}
}
