package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/wedit/internal/doc"
)

// Render writes the attached part of tree as markup.
func Render(w io.Writer, tree *doc.Tree) error {
	return html.Render(w, build(tree, tree.Root()))
}

// RenderString renders tree into a string.
func RenderString(tree *doc.Tree) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, tree); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func build(tree *doc.Tree, h doc.Handle) *html.Node {
	n := tree.Node(h)
	el := element(tagFor(tree, h))

	if n.ID != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "id", Val: n.ID})
	}
	if n.Editable {
		el.Attr = append(el.Attr,
			html.Attribute{Key: "contenteditable", Val: "true"},
			html.Attribute{Key: "spellcheck", Val: strconv.FormatBool(n.Spellcheck)},
		)
	}

	if n.Kind.IsEditableLeaf() {
		if n.Text != "" {
			el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		}
		return el
	}
	for _, c := range tree.Children(h) {
		el.AppendChild(build(tree, c))
	}
	return el
}

func element(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func tagFor(tree *doc.Tree, h doc.Handle) string {
	n := tree.Node(h)
	switch n.Kind {
	case doc.KindArticle:
		return "article"
	case doc.KindSection:
		return "section"
	case doc.KindParagraph:
		return "p"
	case doc.KindListItem:
		return "li"
	case doc.KindList:
		if n.Ordered {
			return "ol"
		}
		return "ul"
	case doc.KindHeading:
		level := n.Level
		if level < 1 || level > 6 {
			level = min(max(tree.HeadingLevel(tree.Parent(h)), 1), 6)
		}
		return fmt.Sprintf("h%d", level)
	}
	return "div"
}
