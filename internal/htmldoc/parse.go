// Package htmldoc converts between host markup and document trees.
//
// The markup vocabulary is the one a browser host renders:
//
//	<article>
//	  <section><h2>Title</h2><p>text</p><ul><li>item</li></ul></section>
//	</article>
//
// Parse accepts any HTML document containing an article element. Render
// writes a tree back out with the id, contenteditable and spellcheck
// attributes a session assigned.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/wedit/internal/doc"
)

// Parse errors.
var (
	ErrNoArticle          = errors.New("htmldoc: no article element")
	ErrUnsupportedElement = errors.New("htmldoc: unsupported element")
	ErrStrayText          = errors.New("htmldoc: text outside a leaf")
)

// Parse reads markup and builds a tree from the first article element.
// The result is not validated; hand it to session.New for that.
func Parse(r io.Reader) (*doc.Tree, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	article := findElement(root, atom.Article)
	if article == nil {
		return nil, ErrNoArticle
	}

	tree := doc.NewTree()
	if err := parseChildren(tree, tree.Root(), article); err != nil {
		return nil, err
	}
	return tree, nil
}

func parseChildren(tree *doc.Tree, parent doc.Handle, el *html.Node) error {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return fmt.Errorf("%w: %q in <%s>", ErrStrayText, strings.TrimSpace(c.Data), el.Data)
			}
			continue
		default:
			continue
		}

		h, err := parseElement(tree, c)
		if err != nil {
			return err
		}
		if err := tree.Append(parent, h); err != nil {
			return err
		}
	}
	return nil
}

func parseElement(tree *doc.Tree, el *html.Node) (doc.Handle, error) {
	switch el.DataAtom {
	case atom.Section:
		h := tree.NewNode(doc.KindSection)
		return h, parseChildren(tree, h, el)

	case atom.Ul, atom.Ol:
		h := tree.NewNode(doc.KindList)
		tree.Node(h).Ordered = el.DataAtom == atom.Ol
		return h, parseChildren(tree, h, el)

	case atom.P:
		return leaf(tree, doc.KindParagraph, el), nil

	case atom.Li:
		return leaf(tree, doc.KindListItem, el), nil

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		h := leaf(tree, doc.KindHeading, el)
		tree.Node(h).Level = int(el.Data[1] - '0')
		return h, nil
	}

	return doc.Nil, fmt.Errorf("%w: <%s>", ErrUnsupportedElement, el.Data)
}

func leaf(tree *doc.Tree, kind doc.Kind, el *html.Node) doc.Handle {
	h := tree.NewNode(kind)
	tree.SetText(h, strings.TrimSpace(textContent(el)))
	return h
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
