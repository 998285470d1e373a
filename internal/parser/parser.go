package parser

import (
	"fmt"
	"strings"

	"github.com/prismforge/scenexml/errors"
	"github.com/prismforge/scenexml/internal/num"
	"github.com/prismforge/scenexml/internal/upgrade"
	"github.com/prismforge/scenexml/internal/version"
	"github.com/prismforge/scenexml/internal/xmldom"
	"github.com/prismforge/scenexml/pkg/geom"
	"github.com/prismforge/scenexml/plugin"
	"github.com/prismforge/scenexml/properties"
)

// ParseDocument runs the staging phase over a parsed document and returns
// the root object id.
func ParseDocument(src *Source, doc *xmldom.Document, ctx *Context) (string, error) {
	props := properties.New("")
	argCounter := 0
	_, id, err := walk(src, ctx, doc.Root(), plugin.KindInvalid, props, &argCounter, 0, false)
	if err != nil {
		return "", err
	}
	return id, nil
}

// walk parses one node and its subtree. It returns a (name, id) pair when
// the node stages or references an object, so the caller can record a named
// reference. Errors leaving walk carry source context exactly once.
func walk(src *Source, ctx *Context, n *xmldom.Node, parentKind plugin.Kind,
	props *properties.Properties, argCounter *int, depth int, withinEmitter bool) (string, string, error) {

	name, id, err := walkNode(src, ctx, n, parentKind, props, argCounter, depth, withinEmitter)
	if err != nil {
		return "", "", errors.WrapAt(err, src.ID, src.Position(n.Offset))
	}
	return name, id, nil
}

func walkNode(src *Source, ctx *Context, n *xmldom.Node, parentKind plugin.Kind,
	props *properties.Properties, argCounter *int, depth int, withinEmitter bool) (string, string, error) {

	if n.Kind == xmldom.CommentNode || n.Kind == xmldom.DeclarationNode {
		return "", "", nil
	}
	if n.Kind != xmldom.ElementNode {
		return "", "", src.errorf(n, "unexpected content")
	}

	if len(*ctx.Params) > 0 {
		for i := range n.Attrs {
			n.Attrs[i].Value = ctx.Params.Substitute(n.Attrs[i].Value)
		}
	}

	tag, known := plugin.TagKind(n.Name)
	if !known {
		return "", "", src.errorf(n, "unexpected tag %q", n.Name)
	}

	if n.HasAttr("type") && tag != plugin.KindObject {
		if _, ok := plugin.ClassFor(n.Name, ctx.Variant); ok {
			tag = plugin.KindObject
		}
	}

	hasParent := parentKind != plugin.KindInvalid
	parentIsObject := hasParent && parentKind == plugin.KindObject
	currentIsObject := tag == plugin.KindObject
	parentIsTransform := parentKind == plugin.KindTransform
	currentIsTransformOp := tag.IsTransformOp()

	if !hasParent && !currentIsObject {
		return "", "", src.errorf(n, "root element %q must be an object", n.Name)
	}
	if parentIsTransform != currentIsTransformOp {
		if parentIsTransform {
			return "", "", src.errorf(n, "transform nodes can only contain transform operations")
		}
		return "", "", src.errorf(n, "transform operations can only occur in a transform node")
	}
	if hasParent && !parentIsObject && !(parentIsTransform && currentIsTransformOp) {
		return "", "", src.errorf(n, "node %q cannot occur as child of a property", n.Name)
	}

	versionAttr, hasVersion := n.Attr("version")
	if depth == 0 && !hasVersion {
		return "", "", src.errorf(n, "missing version attribute in root element %q", n.Name)
	}
	if hasVersion {
		v, err := version.Parse(versionAttr)
		if err != nil {
			return "", "", src.errorf(n, "could not parse version number %q", versionAttr)
		}
		modified, err := upgrade.Apply(src.ID, n, v)
		if err != nil {
			return "", "", err
		}
		if modified {
			src.Modified = true
		}
		n.RemoveAttr("version")
	}

	if n.Name == "scene" {
		n.SetAttr("type", "scene")
	} else if tag == plugin.KindTransform {
		ctx.Transform = geom.Identity()
	}

	if name, ok := n.Attr("name"); ok {
		if strings.HasPrefix(name, "_") {
			return "", "", src.errorf(n, "invalid parameter name %q in element %q: "+
				"leading underscores are reserved for internal identifiers", name, n.Name)
		}
	} else if currentIsObject || tag == plugin.KindNamedReference {
		n.SetAttr("name", fmt.Sprintf("_arg_%d", *argCounter))
		*argCounter++
	}

	if id, ok := n.Attr("id"); ok {
		if strings.HasPrefix(id, "_") {
			return "", "", src.errorf(n, "invalid id %q in element %q: "+
				"leading underscores are reserved for internal identifiers", id, n.Name)
		}
	} else if currentIsObject {
		n.SetAttr("id", ctx.nextAnonymousID())
	}

	switch tag {
	case plugin.KindObject:
		return stageObject(src, ctx, n, depth, withinEmitter)

	case plugin.KindNamedReference:
		if err := checkAttributes(src, n, []string{"name", "id"}, true); err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		id, _ := n.Attr("id")
		return name, id, nil

	case plugin.KindAlias:
		return "", "", stageAlias(src, ctx, n)

	case plugin.KindDefault:
		if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		value, _ := n.Attr("value")
		if name == "" {
			return "", "", src.errorf(n, "<default>: name must be nonempty")
		}
		if !ctx.Params.Has(name) {
			*ctx.Params = append(*ctx.Params, Parameter{Name: name, Value: value})
		}
		return "", "", nil

	case plugin.KindInclude:
		return parseInclude(src, ctx, n, parentKind, props, argCounter, withinEmitter)

	case plugin.KindString:
		if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		value, _ := n.Attr("value")
		props.SetString(name, value)

	case plugin.KindFloat:
		if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		value, _ := n.Attr("value")
		f, err := num.ParseFloat(value)
		if err != nil {
			return "", "", src.errorf(n, "could not parse floating point value %q", value)
		}
		props.SetFloat(name, f)

	case plugin.KindInteger:
		if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		value, _ := n.Attr("value")
		i, err := num.ParseInt(value)
		if err != nil {
			return "", "", src.errorf(n, "could not parse integer value %q", value)
		}
		props.SetInt(name, i)

	case plugin.KindBoolean:
		if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		value, _ := n.Attr("value")
		switch strings.ToLower(value) {
		case "true":
			props.SetBool(name, true)
		case "false":
			props.SetBool(name, false)
		default:
			return "", "", src.errorf(n,
				"could not parse boolean value %q -- must be \"true\" or \"false\"", value)
		}

	case plugin.KindVector, plugin.KindPoint:
		if err := expandValueToXYZ(src, n); err != nil {
			return "", "", err
		}
		if err := checkAttributes(src, n, []string{"name", "x", "y", "z"}, true); err != nil {
			return "", "", err
		}
		v, err := parseVector(src, n, 0)
		if err != nil {
			return "", "", err
		}
		name, _ := n.Attr("name")
		if tag == plugin.KindVector {
			props.SetVector3(name, v)
		} else {
			props.SetPoint3(name, v)
		}

	case plugin.KindColor:
		if err := parseColor(src, ctx, n, props); err != nil {
			return "", "", err
		}

	case plugin.KindRGB:
		if err := stageRGB(src, ctx, n, props, withinEmitter); err != nil {
			return "", "", err
		}

	case plugin.KindSpectrum:
		if err := stageSpectrum(src, ctx, n, props, withinEmitter); err != nil {
			return "", "", err
		}

	case plugin.KindTransform:
		if err := checkAttributes(src, n, []string{"name"}, true); err != nil {
			return "", "", err
		}
		ctx.Transform = geom.Identity()

	case plugin.KindTranslate:
		if err := applyAxisOp(src, ctx, n, []string{"x", "y", "z"}, 0, geom.Translate); err != nil {
			return "", "", err
		}

	case plugin.KindScale:
		if err := applyAxisOp(src, ctx, n, []string{"x", "y", "z"}, 1, geom.Scale); err != nil {
			return "", "", err
		}

	case plugin.KindRotate:
		if err := expandValueToXYZ(src, n); err != nil {
			return "", "", err
		}
		if err := checkAttributes(src, n, []string{"angle", "x", "y", "z"}, false); err != nil {
			return "", "", err
		}
		axis, err := parseVector(src, n, 0)
		if err != nil {
			return "", "", err
		}
		raw, _ := n.Attr("angle")
		angle, err := num.ParseFloat(raw)
		if err != nil {
			return "", "", src.errorf(n, "could not parse floating point value %q", raw)
		}
		ctx.Transform = geom.Mul(geom.Rotate(axis, angle), ctx.Transform)

	case plugin.KindLookAt:
		if err := checkAttributes(src, n, []string{"origin", "target", "up"}, true); err != nil {
			return "", "", err
		}
		origin, err := parseNamedVector(src, n, "origin")
		if err != nil {
			return "", "", err
		}
		target, err := parseNamedVector(src, n, "target")
		if err != nil {
			return "", "", err
		}
		up, err := parseNamedVector(src, n, "up")
		if err != nil {
			return "", "", err
		}
		m := geom.LookAt(origin, target, up)
		if m.HasNaN() {
			return "", "", src.errorf(n, "invalid lookat transformation")
		}
		ctx.Transform = geom.Mul(m, ctx.Transform)

	case plugin.KindMatrix:
		if err := checkAttributes(src, n, []string{"value"}, true); err != nil {
			return "", "", err
		}
		raw, _ := n.Attr("value")
		tokens := strings.Fields(raw)
		if len(tokens) != 16 {
			return "", "", src.errorf(n, "matrix: expected 16 values")
		}
		values := make([]geom.Float, 16)
		for i, tok := range tokens {
			f, err := num.ParseFloat(tok)
			if err != nil {
				return "", "", src.errorf(n, "could not parse floating point value %q", tok)
			}
			values[i] = f
		}
		ctx.Transform = geom.Mul(geom.FromSlice(values), ctx.Transform)

	default:
		return "", "", src.errorf(n, "unhandled element %q", n.Name)
	}

	for _, ch := range n.Children {
		if _, _, err := walk(src, ctx, ch, tag, props, argCounter, depth+1, withinEmitter); err != nil {
			return "", "", err
		}
	}

	if tag == plugin.KindTransform {
		name, _ := n.Attr("name")
		props.SetTransform(name, ctx.Transform)
	}
	return "", "", nil
}

// applyAxisOp handles translate and scale, which share the relaxed x/y/z
// attribute form.
func applyAxisOp(src *Source, ctx *Context, n *xmldom.Node,
	allowed []string, def geom.Float, op func(geom.Vec3) geom.Mat4) error {

	if err := expandValueToXYZ(src, n); err != nil {
		return err
	}
	if err := checkAttributes(src, n, allowed, false); err != nil {
		return err
	}
	v, err := parseVector(src, n, def)
	if err != nil {
		return err
	}
	ctx.Transform = geom.Mul(op(v), ctx.Transform)
	return nil
}

// stageObject materializes a plugin instance from an element, recursing
// into its children with a fresh property bag.
func stageObject(src *Source, ctx *Context, n *xmldom.Node, depth int, withinEmitter bool) (string, string, error) {
	if err := checkAttributes(src, n, []string{"type", "id", "name"}, true); err != nil {
		return "", "", err
	}
	id, _ := n.Attr("id")
	name, _ := n.Attr("name")
	typ, _ := n.Attr("type")
	nodeName := n.Name

	if prev, ok := ctx.Instances[id]; ok {
		return "", "", src.errorf(n, "%q has duplicate id %q (previous was at %s)",
			nodeName, id, prev.Position(prev.Offset))
	}

	class, ok := plugin.ClassFor(nodeName, ctx.Variant)
	if !ok {
		return "", "", src.errorf(n, "could not retrieve class object for tag %q", nodeName)
	}

	nested := properties.New(typ)
	nested.SetID(id)

	argCounter := 0
	for _, ch := range n.Children {
		childName, childID, err := walk(src, ctx, ch, plugin.KindObject, nested,
			&argCounter, depth+1, withinEmitter || nodeName == "emitter")
		if err != nil {
			return "", "", err
		}
		if childID != "" {
			nested.AddNamedReference(childName, childID)
		}
	}

	ctx.Instances[id] = &Staged{
		ID:       id,
		Props:    nested,
		Class:    class,
		SrcID:    src.ID,
		Offset:   n.Offset,
		Position: src.Position,
	}
	return name, id, nil
}

// stageAlias records a second id for an existing staged object.
func stageAlias(src *Source, ctx *Context, n *xmldom.Node) error {
	if err := checkAttributes(src, n, []string{"id", "as"}, true); err != nil {
		return err
	}
	aliasSrc, _ := n.Attr("id")
	aliasDst, _ := n.Attr("as")

	if prev, ok := ctx.Instances[aliasDst]; ok {
		return src.errorf(n, "%q has duplicate id %q (previous was at %s)",
			n.Name, aliasDst, prev.Position(prev.Offset))
	}
	if _, ok := ctx.Instances[aliasSrc]; !ok {
		return src.errorf(n, "referenced id %q not found", aliasSrc)
	}

	ctx.Instances[aliasDst] = &Staged{
		ID:       aliasDst,
		Alias:    aliasSrc,
		SrcID:    src.ID,
		Offset:   n.Offset,
		Position: src.Position,
	}
	return nil
}
