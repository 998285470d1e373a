package xmldom

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "    "

// WriteTo serializes the document with four-space indentation, emitting an
// XML declaration first.
func (d *Document) WriteTo(w io.Writer) error {
	if _, err := io.WriteString(w, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"); err != nil {
		return err
	}
	for _, n := range d.Nodes {
		if n.Kind == DeclarationNode {
			continue
		}
		if err := writeNode(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat(indentUnit, depth)
	switch n.Kind {
	case CommentNode:
		_, err := fmt.Fprintf(w, "%s<!--%s-->\n", indent, n.Text)
		return err
	case TextNode:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, escapeText(n.Text))
		return err
	case DeclarationNode:
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s<%s", indent, n.Name); err != nil {
		return err
	}
	for _, a := range n.Attrs {
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", a.Name, escapeAttr(a.Value)); err != nil {
			return err
		}
	}
	if len(n.Children) == 0 {
		_, err := io.WriteString(w, "/>\n")
		return err
	}
	if _, err := io.WriteString(w, ">\n"); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeNode(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Name)
	return err
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func escapeText(s string) string { return textEscaper.Replace(s) }
