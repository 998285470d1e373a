// Package scenexml loads XML scene descriptions for a physically-based
// renderer. Loading runs in two phases: a single-threaded staging pass that
// validates the document against the scene grammar and materializes typed
// property bags, and a parallel instantiation pass that constructs the
// object graph bottom-up through the registered plugin classes.
package scenexml

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prismforge/scenexml/errors"
	"github.com/prismforge/scenexml/internal/instantiate"
	"github.com/prismforge/scenexml/internal/parser"
	"github.com/prismforge/scenexml/internal/source"
	"github.com/prismforge/scenexml/internal/version"
	"github.com/prismforge/scenexml/internal/xmldom"
	"github.com/prismforge/scenexml/plugin"
)

// Object is the interface satisfied by every constructed scene object.
type Object = plugin.Object

// Version is the schema version this loader targets.
const Version = version.CurrentString

// LoadString parses a scene description from text, runs both loading
// phases, and returns the root object.
func LoadString(text string, opts ...Option) (Object, error) {
	cfg := applyOptions(opts)
	if cfg.resolver == nil {
		cfg.resolver = NewDirectoryResolver(".")
	}

	pos := source.FromString("<string>", text)
	doc, err := parseDocument(pos, strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	ctx, src := newLoad(cfg, pos)
	rootID, err := parser.ParseDocument(src, doc, ctx)
	if err != nil {
		return nil, err
	}
	return instantiate.Root(ctx, rootID)
}

// LoadFile parses a scene description from disk. When the document was
// upgraded from an older schema version and WithWriteUpdate is set, the
// original file is kept as "<path>.bak" and the upgraded document is
// written in its place.
func LoadFile(path string, opts ...Option) (Object, error) {
	cfg := applyOptions(opts)
	if cfg.resolver == nil {
		cfg.resolver = NewDirectoryResolver(filepath.Dir(path), ".")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%q: file does not exist", path)
	}
	slog.Info("loading XML file", "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pos := source.FromBytes(path, data)
	doc, err := parseDocument(pos, strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}

	ctx, src := newLoad(cfg, pos)
	rootID, err := parser.ParseDocument(src, doc, ctx)
	if err != nil {
		return nil, err
	}

	if src.Modified && cfg.writeUpdate {
		if err := writeUpgraded(path, doc); err != nil {
			return nil, err
		}
	}
	return instantiate.Root(ctx, rootID)
}

func newLoad(cfg *loadOptions, pos *source.Source) (*parser.Context, *parser.Source) {
	params := make(parser.Parameters, 0, len(cfg.parameters))
	for _, p := range cfg.parameters {
		params = append(params, parser.Parameter{Name: p.Name, Value: p.Value})
	}
	ctx := parser.NewContext(cfg.variant, &params, cfg.resolver, cfg.includeLimit)
	src := &parser.Source{ID: pos.ID(), Position: pos.Position}
	return ctx, src
}

func parseDocument(pos *source.Source, r *strings.Reader) (*xmldom.Document, error) {
	doc, err := xmldom.Parse(r)
	if err != nil {
		if perr, ok := err.(*xmldom.ParseError); ok {
			return nil, errors.New(pos.ID(), pos.Position(perr.Offset), "%v", perr)
		}
		return nil, err
	}
	return doc, nil
}

// writeUpgraded stamps the current schema version, drops the synthesized
// scene type and anonymous identifiers, and writes the document back with a
// backup of the original.
func writeUpgraded(path string, doc *xmldom.Document) error {
	backup := path + ".bak"
	slog.Info("writing updated scene description", "file", path, "backup", backup)
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("unable to rename file %q to %q: %w", path, backup, err)
	}

	root := doc.Root()
	root.PrependAttr("version", version.CurrentString)
	if t, ok := root.Attr("type"); ok && t == "scene" {
		root.RemoveAttr("type")
	}
	doc.Walk(func(n *xmldom.Node) {
		if n.Kind != xmldom.ElementNode {
			return
		}
		if id, ok := n.Attr("id"); ok && strings.HasPrefix(id, "_unnamed_") {
			n.RemoveAttr("id")
		}
		if name, ok := n.Attr("name"); ok && strings.HasPrefix(name, "_arg_") {
			n.RemoveAttr("name")
		}
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
