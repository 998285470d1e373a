package xmldom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseError reports an XML syntax error together with the byte offset the
// decoder had reached.
type ParseError struct {
	Offset int64
	Err    error
}

// Error returns the underlying decoder message.
func (e *ParseError) Error() string { return e.Err.Error() }

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse builds a Document from XML input. Comments and the XML declaration
// are retained as skippable nodes; whitespace-only character data is
// dropped.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}
	var stack []*Node

	appendNode := func(n *Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}
		top := stack[len(stack)-1]
		top.Children = append(top.Children, n)
	}

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: t.Name.Local, Offset: offset}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			appendNode(n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text != "" {
				appendNode(&Node{Kind: TextNode, Text: text, Offset: offset})
			}
		case xml.Comment:
			appendNode(&Node{Kind: CommentNode, Text: string(t), Offset: offset})
		case xml.ProcInst, xml.Directive:
			appendNode(&Node{Kind: DeclarationNode, Offset: offset})
		}
	}

	if doc.Root() == nil {
		return nil, &ParseError{Offset: dec.InputOffset(), Err: fmt.Errorf("document has no root element")}
	}
	return doc, nil
}
