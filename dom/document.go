// Package dom is a read-only, in-memory UI tree with lazy CSS locators. It is
// the offline counterpart of the chrome package: both provide handles that a
// collection.Collection can be rooted at.
package dom

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML snapshot. It is safe for concurrent reads.
type Document struct {
	*Node

	byRaw map[*html.Node]*Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	raw, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	return build(raw), nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses s as the contents of a context element such as "tr"
// or "body". The fragment's top-level nodes become children of the document.
func ParseFragment(r io.Reader, context string) (*Document, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     context,
		DataAtom: atom.Lookup([]byte(context)),
	}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fragment in <%s>", context)
	}
	raw := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		raw.AppendChild(n)
	}
	return build(raw), nil
}

func build(raw *html.Node) *Document {
	d := &Document{byRaw: make(map[*html.Node]*Node)}
	order := 0
	var walk func(raw *html.Node, parent *Node)
	walk = func(raw *html.Node, parent *Node) {
		n := newNode(d, raw)
		if n == nil {
			return
		}
		n.order = order
		order++
		d.byRaw[raw] = n
		if parent != nil {
			parent.appendChild(n)
		}
		for c := raw.FirstChild; c != nil; c = c.NextSibling {
			walk(c, n)
		}
	}
	walk(raw, nil)
	d.Node = d.byRaw[raw]

	logrus.WithField("nodes", order).Debug("built document")
	return d
}

// Locator returns a handle scoped to the whole document.
func (d *Document) Locator() *Locator {
	return &Locator{scope: d.Node}
}

func (d *Document) wrap(raw []*html.Node) NodeList {
	out := make(NodeList, 0, len(raw))
	for _, r := range raw {
		if n, ok := d.byRaw[r]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Title returns the text of the first <title> element.
func (d *Document) Title() string {
	l := d.GetElementsByTagName("title")
	if len(l) == 0 {
		return ""
	}
	return strings.TrimSpace(l[0].TextContent())
}
