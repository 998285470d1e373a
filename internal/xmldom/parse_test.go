package xmldom

import (
	"strings"
	"testing"
)

func TestParseStructure(t *testing.T) {
	doc, err := Parse(strings.NewReader(
		`<?xml version="1.0"?>
<scene version="2.0.0">
    <!-- a comment -->
    <integrator type="path">
        <integer name="max_depth" value="8"/>
    </integrator>
</scene>`))
	if err != nil {
		t.Fatal(err)
	}

	root := doc.Root()
	if root == nil || root.Name != "scene" {
		t.Fatalf("Root() = %v", root)
	}
	if v, ok := root.Attr("version"); !ok || v != "2.0.0" {
		t.Fatalf("version attr = %q, %v", v, ok)
	}

	elems := root.Elements()
	if len(elems) != 1 || elems[0].Name != "integrator" {
		t.Fatalf("Elements() = %v", elems)
	}
	// The comment is retained as a node but not as an element.
	var comments int
	for _, c := range root.Children {
		if c.Kind == CommentNode {
			comments++
		}
	}
	if comments != 1 {
		t.Fatalf("comments = %d", comments)
	}

	inner := elems[0].Elements()[0]
	if inner.Name != "integer" {
		t.Fatalf("inner = %v", inner)
	}
	if name, _ := inner.Attr("name"); name != "max_depth" {
		t.Fatalf("name attr = %q", name)
	}
}

func TestParseOffsets(t *testing.T) {
	text := `<scene version="2.0.0">
<shape type="sphere"/>
</scene>`
	doc, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	root := doc.Root()
	if root.Offset != 0 {
		t.Fatalf("root offset = %d", root.Offset)
	}
	shape := root.Elements()[0]
	if text[shape.Offset] != '<' || !strings.HasPrefix(text[shape.Offset:], "<shape") {
		t.Fatalf("shape offset %d points at %q", shape.Offset, text[shape.Offset:])
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"just text",
		"<a><b></a>",
		"<a attr=oops/>",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q): expected error", input)
		}
	}
}

func TestTextNodesRetained(t *testing.T) {
	doc, err := Parse(strings.NewReader("<a version=\"2.0.0\">stray</a>"))
	if err != nil {
		t.Fatal(err)
	}
	children := doc.Root().Children
	if len(children) != 1 || children[0].Kind != TextNode || children[0].Text != "stray" {
		t.Fatalf("children = %+v", children)
	}
}

func TestMutation(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<a x="1" y="2"/>`))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Root()

	n.SetAttr("x", "9")
	if v, _ := n.Attr("x"); v != "9" {
		t.Fatalf("x = %q", v)
	}
	n.RemoveAttr("y")
	if n.HasAttr("y") {
		t.Fatal("y not removed")
	}
	n.PrependAttr("version", "2.0.0")
	if n.Attrs[0].Name != "version" {
		t.Fatalf("attrs = %v", n.Attrs)
	}

	child := &Node{Kind: ElementNode, Name: "b"}
	n.AppendChild(child)
	if len(n.Elements()) != 1 {
		t.Fatal("child not appended")
	}
	n.RemoveChild(child)
	if len(n.Elements()) != 0 {
		t.Fatal("child not removed")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	doc, err := Parse(strings.NewReader(
		`<scene version="2.0.0"><shape type="sphere"><string name="a" value="x &amp; y"/></shape></scene>`))
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := doc.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Fatalf("missing declaration: %q", out)
	}
	if !strings.Contains(out, "    <shape type=\"sphere\">") {
		t.Fatalf("missing indented shape: %q", out)
	}

	again, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	str := again.Root().Elements()[0].Elements()[0]
	if v, _ := str.Attr("value"); v != "x & y" {
		t.Fatalf("escaped value round trip = %q", v)
	}
}
