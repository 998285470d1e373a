// Command sceneupgrade rewrites scene description files written against an
// older schema version to the current one.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/prismforge/scenexml/internal/source"
	"github.com/prismforge/scenexml/internal/upgrade"
	"github.com/prismforge/scenexml/internal/version"
	"github.com/prismforge/scenexml/internal/xmldom"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sceneupgrade", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.Bool("write", false, "rewrite the file in place, keeping a .bak copy")
	outPath := fs.String("o", "", "write the upgraded document to this path")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <scene.xml>\n\n", os.Args[0])
		fmt.Fprintln(stderr, "Upgrades a scene description to the current schema version.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "error: exactly one scene file argument is required")
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	failure := color.New(color.FgRed)
	success := color.New(color.FgGreen)

	doc, modified, err := upgradeFile(path)
	if err != nil {
		failure.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if !modified {
		success.Fprintf(stdout, "%s: already at schema version %s\n", path, version.CurrentString)
		return 0
	}

	switch {
	case *write:
		backup := path + ".bak"
		if err := os.Rename(path, backup); err != nil {
			failure.Fprintf(stderr, "error: unable to rename %q to %q: %v\n", path, backup, err)
			return 1
		}
		if err := writeFile(path, doc); err != nil {
			failure.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		success.Fprintf(stdout, "%s: upgraded to %s (backup at %s)\n", path, version.CurrentString, backup)
	case *outPath != "":
		if err := writeFile(*outPath, doc); err != nil {
			failure.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		success.Fprintf(stdout, "%s: upgraded to %s -> %s\n", path, version.CurrentString, *outPath)
	default:
		if err := doc.WriteTo(stdout); err != nil {
			failure.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	return 0
}

func upgradeFile(path string) (*xmldom.Document, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	pos := source.FromBytes(path, data)

	doc, err := xmldom.Parse(bytes.NewReader(data))
	if err != nil {
		if perr, ok := err.(*xmldom.ParseError); ok {
			return nil, false, fmt.Errorf("%s (at %s): %v", path, pos.Position(perr.Offset), perr)
		}
		return nil, false, err
	}

	root := doc.Root()
	raw, ok := root.Attr("version")
	if !ok {
		return nil, false, fmt.Errorf("%s (at %s): missing version attribute in root element %q",
			path, pos.Position(root.Offset), root.Name)
	}
	v, err := version.Parse(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%s (at %s): could not parse version number %q",
			path, pos.Position(root.Offset), raw)
	}

	modified, err := upgrade.Apply(path, root, v)
	if err != nil {
		return nil, false, err
	}
	if modified {
		root.PrependAttr("version", version.CurrentString)
	}
	return doc, modified, nil
}

func writeFile(path string, doc *xmldom.Document) error {
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
