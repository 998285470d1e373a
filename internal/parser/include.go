package parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/prismforge/scenexml/internal/source"
	"github.com/prismforge/scenexml/internal/xmldom"
	"github.com/prismforge/scenexml/plugin"
	"github.com/prismforge/scenexml/properties"
)

// parseInclude inlines another document. A root named "scene" is spliced
// into the current parent as if its children appeared in place; any other
// root is parsed as a normal child element of its own document.
func parseInclude(src *Source, ctx *Context, n *xmldom.Node, parentKind plugin.Kind,
	props *properties.Properties, argCounter *int, withinEmitter bool) (string, string, error) {

	if err := checkAttributes(src, n, []string{"filename"}, true); err != nil {
		return "", "", err
	}
	filename, _ := n.Attr("filename")

	path, err := ctx.Resolver.Resolve(filename)
	if err != nil {
		return "", "", src.errorf(n, "included file %q not found", filename)
	}
	if _, err := os.Stat(path); err != nil {
		return "", "", src.errorf(n, "included file %q not found", path)
	}

	if src.Depth+1 > ctx.IncludeLimit {
		return "", "", fmt.Errorf("exceeded <include> recursion limit of %d", ctx.IncludeLimit)
	}

	slog.Info("loading included XML file", "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", src.errorf(n, "included file %q could not be read: %v", path, err)
	}
	pos := source.FromBytes(path, data)

	doc, err := xmldom.Parse(bytes.NewReader(data))
	if err != nil {
		if perr, ok := err.(*xmldom.ParseError); ok {
			return "", "", src.errorf(n, "error while loading %q (at %s): %v",
				path, pos.Position(perr.Offset), perr)
		}
		return "", "", src.errorf(n, "error while loading %q: %v", path, err)
	}

	nested := &Source{ID: path, Position: pos.Position, Depth: src.Depth + 1}

	root := doc.Root()
	if root.Name == "scene" {
		for _, ch := range root.Children {
			childName, childID, err := walk(nested, ctx, ch, parentKind, props, argCounter, 1, withinEmitter)
			if err != nil {
				return "", "", err
			}
			if childID != "" {
				props.AddNamedReference(childName, childID)
			}
		}
		return "", "", nil
	}
	return walk(nested, ctx, root, parentKind, props, argCounter, 0, withinEmitter)
}
