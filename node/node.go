// Package node provides the element tree that the simplifier walks.
//
// A Node is a read-only view of one XML element: its qualified name, its
// attributes, its ordered children and the character data it directly
// contains. Nodes know their parent and position, so the next sibling is a
// constant-time lookup.
package node

import "encoding/xml"

// Node is a single XML element.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node
	Text     string

	parent *Node
	index  int
}

// New creates a detached node.
func New(name xml.Name, attrs ...xml.Attr) *Node {
	return &Node{Name: name, Attr: attrs}
}

// Append adds child as the last child of n and returns child.
// Children must be added through Append so sibling links stay valid.
func (n *Node) Append(child *Node) *Node {
	child.parent = n
	child.index = len(n.Children)
	n.Children = append(n.Children, child)
	return child
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Next returns the following sibling, or nil.
func (n *Node) Next() *Node {
	if n.parent == nil {
		return nil
	}
	if i := n.index + 1; i < len(n.parent.Children) {
		return n.parent.Children[i]
	}
	return nil
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name xml.Name) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given name.
func (n *Node) ChildrenNamed(name xml.Name) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Path follows a chain of child names and returns the node at the end of
// it, or nil if any step is missing.
func (n *Node) Path(names ...xml.Name) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Attribute returns the value of the named attribute.
func (n *Node) Attribute(name xml.Name) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the value of the named attribute or "".
func (n *Node) AttrValue(name xml.Name) string {
	v, _ := n.Attribute(name)
	return v
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name xml.Name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Name == name {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xml.Attr{Name: name, Value: value})
}

// Prefixed returns the conventional prefixed form of the node's name,
// for example "w:p".
func (n *Node) Prefixed() string {
	return Prefixed(n.Name)
}
