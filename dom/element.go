package dom

import (
	"bytes"

	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// HTMLCollection is a live list in the DOM; here it is a snapshot.
// https://dom.spec.whatwg.org/#htmlcollection
type HTMLCollection = NodeList

// SelectorError reports a selector that failed to compile.
type SelectorError struct {
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return "invalid selector " + `"` + e.Selector + `": ` + e.Err.Error()
}

func (e *SelectorError) Unwrap() error { return e.Err }

func compile(selector string) (cascadia.SelectorGroup, error) {
	g, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Err: err}
	}
	return g, nil
}

func (n *Node) queryAll(m cascadia.Matcher) NodeList {
	return n.OwnerDocument.wrap(cascadia.QueryAll(n.raw, m))
}

// QuerySelectorAll returns every descendant matching selectors, in document
// order.
func (n *Node) QuerySelectorAll(selectors string) (NodeList, error) {
	g, err := compile(selectors)
	if err != nil {
		return nil, err
	}
	return n.queryAll(g), nil
}

// QuerySelector returns the first matching descendant or nil.
func (n *Node) QuerySelector(selectors string) (*Node, error) {
	l, err := n.QuerySelectorAll(selectors)
	if err != nil {
		return nil, err
	}
	return l.Item(0), nil
}

func (n *Node) Matches(selectors string) (bool, error) {
	g, err := compile(selectors)
	if err != nil {
		return false, err
	}
	return n.NodeType == ElementNode && g.Match(n.raw), nil
}

// Closest returns the nearest inclusive ancestor matching selectors.
func (n *Node) Closest(selectors string) (*Node, error) {
	g, err := compile(selectors)
	if err != nil {
		return nil, err
	}
	for e := n; e != nil; e = e.ParentNode {
		if e.NodeType == ElementNode && g.Match(e.raw) {
			return e, nil
		}
	}
	return nil, nil
}

func (n *Node) GetElementsByTagName(qualifiedName string) HTMLCollection {
	return n.filter(func(e *Node) bool {
		return qualifiedName == "*" || e.NodeName == qualifiedName
	})
}

// GetElementsByClassName matches elements carrying every class in names.
func (n *Node) GetElementsByClassName(names ...string) HTMLCollection {
	return n.filter(func(e *Node) bool {
		for _, c := range names {
			if !e.ClassList.Contains(c) {
				return false
			}
		}
		return len(names) > 0
	})
}

func (n *Node) filter(keep func(*Node) bool) HTMLCollection {
	var out HTMLCollection
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.ChildNodes {
			if c.NodeType == ElementNode && keep(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// OuterHTML renders the node and its subtree.
func (n *Node) OuterHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n.raw); err != nil {
		return "", errors.Wrap(err, "render html")
	}
	return buf.String(), nil
}

// InnerHTML renders the children of the node.
func (n *Node) InnerHTML() (string, error) {
	var buf bytes.Buffer
	for _, c := range n.ChildNodes {
		if err := html.Render(&buf, c.raw); err != nil {
			return "", errors.Wrap(err, "render html")
		}
	}
	return buf.String(), nil
}
