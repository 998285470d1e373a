// Package xmldom implements the small mutable DOM the loader parses scene
// documents into. Nodes carry the byte offset of their opening markup so
// diagnostics can name a line and column, and the tree supports the
// in-place rewrites performed by the version upgrader.
package xmldom

// NodeKind distinguishes the node types retained from the raw document.
type NodeKind int

const (
	ElementNode NodeKind = iota
	CommentNode
	DeclarationNode
	TextNode
)

// Attr is a single attribute. Order is preserved.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of the parsed document.
type Node struct {
	Kind     NodeKind
	Name     string // element name, empty otherwise
	Text     string // comment or text content
	Attrs    []Attr
	Children []*Node
	Offset   int64 // byte offset of the opening markup
}

// Document is a parsed scene document.
type Document struct {
	// Nodes holds the top-level nodes, including comments and the XML
	// declaration.
	Nodes []*Node
}

// Root returns the first top-level element, or nil.
func (d *Document) Root() *Node {
	for _, n := range d.Nodes {
		if n.Kind == ElementNode {
			return n
		}
	}
	return nil
}

// Walk visits every node of the document in document order.
func (d *Document) Walk(fn func(*Node)) {
	for _, n := range d.Nodes {
		n.WalkSubtree(fn)
	}
}

// WalkSubtree visits n and every descendant in document order.
func (n *Node) WalkSubtree(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.WalkSubtree(fn)
	}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr replaces the named attribute or appends it.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// PrependAttr inserts the attribute in first position, replacing any
// existing attribute of the same name.
func (n *Node) PrependAttr(name, value string) {
	n.RemoveAttr(name)
	n.Attrs = append([]Attr{{Name: name, Value: value}}, n.Attrs...)
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(name string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild adds c as the last child.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// RemoveChild deletes c from the children, if present.
func (n *Node) RemoveChild(c *Node) {
	for i, ch := range n.Children {
		if ch == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// Elements returns the element-kind children.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}
