package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr is https://dom.spec.whatwg.org/#attr
type Attr struct {
	Namespace    string
	Name         string
	Value        string
	OwnerElement *Node
}

// NamedNodeMap keeps attributes in source order.
type NamedNodeMap struct {
	attrs             []*Attr
	AssociatedElement *Node
}

func newNamedNodeMap(raw []html.Attribute, oe *Node) *NamedNodeMap {
	m := &NamedNodeMap{
		attrs:             make([]*Attr, 0, len(raw)),
		AssociatedElement: oe,
	}
	for _, a := range raw {
		m.attrs = append(m.attrs, &Attr{
			Namespace:    a.Namespace,
			Name:         a.Key,
			Value:        a.Val,
			OwnerElement: oe,
		})
	}
	return m
}

func (n *NamedNodeMap) Length() int {
	return len(n.attrs)
}

func (n *NamedNodeMap) Items() []*Attr {
	return n.attrs
}

// GetNamedItem looks up an attribute by qualified name. Names of HTML
// elements are matched case-insensitively.
func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	if n.AssociatedElement != nil && n.AssociatedElement.Namespace == "" {
		qn = strings.ToLower(qn)
	}
	for _, a := range n.attrs {
		if a.Namespace == "" && a.Name == qn {
			return a
		}
	}
	return nil
}

func (n *NamedNodeMap) GetNamedItemNS(ns, ln string) *Attr {
	for _, a := range n.attrs {
		if a.Namespace == ns && a.Name == ln {
			return a
		}
	}
	return nil
}

// Value returns the value of the named attribute, or "" if it is absent.
func (n *NamedNodeMap) Value(qn string) string {
	if a := n.GetNamedItem(qn); a != nil {
		return a.Value
	}
	return ""
}

// DOMTokenList is the parsed form of a whitespace separated attribute such
// as class.
type DOMTokenList []string

func newDOMTokenList(value string) DOMTokenList {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	return DOMTokenList(fields)
}

func (l DOMTokenList) Contains(token string) bool {
	for _, t := range l {
		if t == token {
			return true
		}
	}
	return false
}

func (l DOMTokenList) Value() string {
	return strings.Join(l, " ")
}
