// Package render projects dashboard state onto a host-neutral element tree.
//
// Hosts never patch a previous tree: each render produces a complete View that
// replaces whatever was shown before.
package render

import "strings"

// Node is one element of the render tree.
type Node struct {
	Tag      string            `json:"tag"`
	Class    string            `json:"class,omitempty"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// El builds an element with children.
func El(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

// TextEl builds an element holding only text.
func TextEl(tag, class, text string) *Node {
	return &Node{Tag: tag, Class: class, Text: text}
}

// Attr sets an attribute and returns n for chaining.
func (n *Node) Attr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) HasClass(class string) bool {
	if n == nil {
		return false
	}
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns the first node in depth-first order carrying class, or nil.
func (n *Node) Find(class string) *Node {
	if n == nil {
		return nil
	}
	if n.HasClass(class) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node carrying class in depth-first order.
func (n *Node) FindAll(class string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	if n.HasClass(class) {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(class)...)
	}
	return out
}

// FindID returns the node whose id attribute equals id, or nil.
func (n *Node) FindID(id string) *Node {
	if n == nil {
		return nil
	}
	if n.Attrs["id"] == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindID(id); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.writeText(b)
	}
}
