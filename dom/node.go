package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// https://dom.spec.whatwg.org/#node
type Node struct {
	NodeType  NodeType
	NodeName  string
	NodeValue string
	// Namespace is "" for HTML elements, otherwise "svg" or "math".
	Namespace  string
	Attributes *NamedNodeMap
	ClassList  DOMTokenList

	OwnerDocument                                                   *Document
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	// Only set on doctype nodes.
	PublicID, SystemID string

	order int
	raw   *html.Node
}

func newNode(od *Document, raw *html.Node) *Node {
	n := &Node{OwnerDocument: od, raw: raw}
	switch raw.Type {
	case html.DocumentNode:
		n.NodeType = DocumentNode
		n.NodeName = "#document"
	case html.ElementNode:
		n.NodeType = ElementNode
		n.NodeName = raw.Data
		n.Namespace = raw.Namespace
		n.Attributes = newNamedNodeMap(raw.Attr, n)
		n.ClassList = newDOMTokenList(n.Attributes.Value("class"))
	case html.TextNode:
		n.NodeType = TextNode
		n.NodeName = "#text"
		n.NodeValue = raw.Data
	case html.CommentNode:
		n.NodeType = CommentNode
		n.NodeName = "#comment"
		n.NodeValue = raw.Data
	case html.DoctypeNode:
		n.NodeType = DocumentTypeNode
		n.NodeName = raw.Data
		for _, a := range raw.Attr {
			switch a.Key {
			case "public":
				n.PublicID = a.Val
			case "system":
				n.SystemID = a.Val
			}
		}
	default:
		return nil
	}
	return n
}

// appendChild links on as the last child of n. Documents are read-only
// snapshots, so only the builder calls this.
func (n *Node) appendChild(on *Node) *Node {
	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// ParentElement returns the parent if it is an element.
func (n *Node) ParentElement() *Node {
	if n.ParentNode != nil && n.ParentNode.NodeType == ElementNode {
		return n.ParentNode
	}
	return nil
}

// Contains reports whether on is n or one of its descendants.
// https://dom.spec.whatwg.org/#dom-node-contains
func (n *Node) Contains(on *Node) bool {
	for i := on; i != nil; i = i.ParentNode {
		if i == n {
			return true
		}
	}
	return false
}

// TextContent concatenates the data of every descendant text node.
func (n *Node) TextContent() string {
	switch n.NodeType {
	case TextNode, CommentNode:
		return n.NodeValue
	case DocumentTypeNode:
		return ""
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(c *Node) {
		if c.NodeType == TextNode {
			b.WriteString(c.NodeValue)
			return
		}
		for _, child := range c.ChildNodes {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func (n *Node) ID() string {
	return n.GetAttribute("id")
}

func (n *Node) GetAttribute(name string) string {
	if n.Attributes == nil {
		return ""
	}
	return n.Attributes.Value(name)
}

func (n *Node) HasAttribute(name string) bool {
	return n.Attributes != nil && n.Attributes.GetNamedItem(name) != nil
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		if node.Namespace != "" {
			e += node.Namespace + " "
		}
		e += node.NodeName + ">"
		if node.Attributes == nil || node.Attributes.Length() == 0 {
			return e
		}
		attrs := append([]*Attr(nil), node.Attributes.Items()...)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		spaces := "| " + strings.Repeat("  ", ident-1)
		for _, attr := range attrs {
			var ns string
			if attr.Namespace != "" {
				ns = attr.Namespace + " "
			}
			e += "\n" + spaces + ns + attr.Name + "=\"" + attr.Value + "\""
		}
		return e
	case TextNode:
		return "\"" + node.NodeValue + "\""
	case CommentNode:
		return "<!-- " + node.NodeValue + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.NodeName
		if node.PublicID != "" || node.SystemID != "" {
			d += " \"" + node.PublicID + "\" \"" + node.SystemID + "\""
		}
		return d + ">"
	case DocumentNode:
		return "#document"
	default:
		return ""
	}
}

func (node *Node) serialize(b *strings.Builder, ident int) {
	if node.NodeType != DocumentNode || ident > 0 {
		b.WriteString("| ")
		b.WriteString(strings.Repeat("  ", ident-1))
	}
	b.WriteString(serializeNodeType(node, ident+1))
	b.WriteByte('\n')
	for _, child := range node.ChildNodes {
		child.serialize(b, ident+1)
	}
}

// String dumps the subtree in the html5lib tree-construction test format.
func (node *Node) String() string {
	var b strings.Builder
	ident := 0
	if node.NodeType != DocumentNode {
		ident = 1
	}
	node.serialize(&b, ident)
	return strings.TrimRight(b.String(), "\n")
}
