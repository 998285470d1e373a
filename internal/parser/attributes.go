package parser

import (
	"strings"

	"github.com/prismforge/scenexml/internal/num"
	"github.com/prismforge/scenexml/internal/xmldom"
	"github.com/prismforge/scenexml/pkg/geom"
)

// checkAttributes validates the attribute set of an element against its
// allowlist. With expectAll, every allowed attribute must be present; the
// relaxed form (used by axis-style transform operations) only requires at
// least one.
func checkAttributes(src *Source, n *xmldom.Node, allowed []string, expectAll bool) error {
	remaining := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		remaining[a] = true
	}
	foundOne := false
	for _, a := range n.Attrs {
		if !remaining[a.Name] {
			return src.errorf(n, "unexpected attribute %q in element %q", a.Name, n.Name)
		}
		delete(remaining, a.Name)
		foundOne = true
	}
	if len(remaining) > 0 && (!foundOne || expectAll) {
		for _, a := range allowed {
			if remaining[a] {
				return src.errorf(n, "missing attribute %q in element %q", a, n.Name)
			}
		}
	}
	return nil
}

// expandValueToXYZ rewrites a "value" attribute into explicit x/y/z
// attributes: one token fills all three axes, three tokens fill them in
// order.
func expandValueToXYZ(src *Source, n *xmldom.Node) error {
	value, ok := n.Attr("value")
	if !ok {
		return nil
	}
	if n.HasAttr("x") || n.HasAttr("y") || n.HasAttr("z") {
		return src.errorf(n, "can't mix and match \"value\" and \"x\"/\"y\"/\"z\" attributes")
	}
	tokens := strings.Fields(value)
	switch len(tokens) {
	case 1:
		n.SetAttr("x", tokens[0])
		n.SetAttr("y", tokens[0])
		n.SetAttr("z", tokens[0])
	case 3:
		n.SetAttr("x", tokens[0])
		n.SetAttr("y", tokens[1])
		n.SetAttr("z", tokens[2])
	default:
		return src.errorf(n, "\"value\" attribute must have exactly 1 or 3 elements")
	}
	n.RemoveAttr("value")
	return nil
}

// parseVector reads the x/y/z attributes, substituting def for absent axes.
func parseVector(src *Source, n *xmldom.Node, def geom.Float) (geom.Vec3, error) {
	v := geom.Splat(def)
	for _, axis := range []struct {
		name string
		dst  *geom.Float
	}{{"x", &v.X}, {"y", &v.Y}, {"z", &v.Z}} {
		raw, ok := n.Attr(axis.name)
		if !ok || raw == "" {
			continue
		}
		f, err := num.ParseFloat(raw)
		if err != nil {
			return geom.Vec3{}, src.errorf(n, "could not parse floating point value %q", raw)
		}
		*axis.dst = f
	}
	return v, nil
}

// parseNamedVector reads a whitespace-separated 3-vector from the named
// attribute.
func parseNamedVector(src *Source, n *xmldom.Node, attrName string) (geom.Vec3, error) {
	raw, _ := n.Attr(attrName)
	tokens := strings.Fields(raw)
	if len(tokens) != 3 {
		return geom.Vec3{}, src.errorf(n, "%q attribute must have exactly 3 elements", attrName)
	}
	var out [3]geom.Float
	for i, tok := range tokens {
		f, err := num.ParseFloat(tok)
		if err != nil {
			return geom.Vec3{}, src.errorf(n, "could not parse floating point values in %q", raw)
		}
		out[i] = f
	}
	return geom.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
