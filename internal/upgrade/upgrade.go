// Package upgrade rewrites scene documents written against an older schema
// version into the current one, in place on the parsed DOM.
package upgrade

import (
	"log/slog"

	"github.com/prismforge/scenexml/internal/num"
	"github.com/prismforge/scenexml/internal/version"
	"github.com/prismforge/scenexml/internal/xmldom"
	"github.com/prismforge/scenexml/pkg/geom"
)

var v2 = mustParse("2.0.0")

func mustParse(s string) version.Version {
	v, err := version.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Apply upgrades the tree rooted at root when docVersion predates the
// current schema. It reports whether the document was modified.
func Apply(srcID string, root *xmldom.Node, docVersion version.Version) (bool, error) {
	if !docVersion.LessThan(version.Current()) {
		return false, nil
	}

	slog.Info("upgrading scene description",
		"source", srcID, "from", docVersion.String(), "to", version.CurrentString)

	if docVersion.LessThan(v2) {
		root.WalkSubtree(func(n *xmldom.Node) {
			if n.Kind != xmldom.ElementNode {
				return
			}
			if name, ok := n.Attr("name"); ok {
				n.SetAttr("name", snakeCase(name))
			}
			if n.Name == "lookAt" {
				n.Name = "lookat"
			}
		})
		if err := promoteUVTransforms(root); err != nil {
			return false, err
		}
	}
	return true, nil
}

// snakeCase rewrites camelCase runs: at each lower→upper boundary an
// underscore is inserted and the contiguous uppercase run that follows is
// lowercased.
func snakeCase(s string) string {
	out := make([]rune, 0, len(s)+4)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		out = append(out, runes[i])
		if i+1 < len(runes) && isLower(runes[i]) && isUpper(runes[i+1]) {
			out = append(out, '_')
			for i+1 < len(runes) && isUpper(runes[i+1]) {
				i++
				out = append(out, toLower(runes[i]))
			}
		}
	}
	return string(out)
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func toLower(r rune) rune { return r + ('a' - 'A') }

// promoteUVTransforms replaces legacy uoffset/voffset/uscale/vscale float
// children with an equivalent <transform name="to_uv"> block.
func promoteUVTransforms(root *xmldom.Node) error {
	var walkErr error
	root.WalkSubtree(func(n *xmldom.Node) {
		if walkErr != nil || n.Kind != xmldom.ElementNode {
			return
		}
		if err := promoteUV(n); err != nil {
			walkErr = err
		}
	})
	return walkErr
}

func promoteUV(n *xmldom.Node) error {
	offset := geom.Vec3{}
	scale := geom.Vec3{X: 1, Y: 1}
	found := false

	var remove []*xmldom.Node
	for _, c := range n.Elements() {
		if c.Name != "float" {
			continue
		}
		name, _ := c.Attr("name")
		// The casing pass has already run, so both legacy spellings occur.
		switch name {
		case "uoffset", "u_offset", "voffset", "v_offset",
			"uscale", "u_scale", "vscale", "v_scale":
		default:
			continue
		}
		raw, _ := c.Attr("value")
		v, err := num.ParseFloat(raw)
		if err != nil {
			return err
		}
		switch name {
		case "uoffset", "u_offset":
			offset.X = v
		case "voffset", "v_offset":
			offset.Y = v
		case "uscale", "u_scale":
			scale.X = v
		case "vscale", "v_scale":
			scale.Y = v
		}
		found = true
		remove = append(remove, c)
	}
	if !found {
		return nil
	}
	for _, c := range remove {
		n.RemoveChild(c)
	}

	trafo := &xmldom.Node{Kind: xmldom.ElementNode, Name: "transform"}
	trafo.SetAttr("name", "to_uv")

	if offset.X != 0 || offset.Y != 0 {
		translate := &xmldom.Node{Kind: xmldom.ElementNode, Name: "translate"}
		translate.SetAttr("x", num.FormatFloat(offset.X))
		translate.SetAttr("y", num.FormatFloat(offset.Y))
		trafo.AppendChild(translate)
	}
	if scale.X != 1 || scale.Y != 1 {
		sc := &xmldom.Node{Kind: xmldom.ElementNode, Name: "scale"}
		sc.SetAttr("x", num.FormatFloat(scale.X))
		sc.SetAttr("y", num.FormatFloat(scale.Y))
		trafo.AppendChild(sc)
	}
	n.AppendChild(trafo)
	return nil
}
