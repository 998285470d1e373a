// Package source maps byte offsets in a scene document to human-readable
// positions for diagnostics. One Source exists per document, whether backed
// by a string or a file.
package source

import (
	"fmt"
	"os"
)

// Source holds a document id and its backing bytes.
type Source struct {
	id   string
	data []byte
}

// FromString builds a source backed by in-memory text.
func FromString(id, text string) *Source {
	return &Source{id: id, data: []byte(text)}
}

// FromBytes builds a source backed by raw bytes.
func FromBytes(id string, data []byte) *Source {
	return &Source{id: id, data: data}
}

// FromFile reads path and builds a source identified by it.
func FromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{id: path, data: data}, nil
}

// ID returns the document identifier ("<string>" or the file path).
func (s *Source) ID() string { return s.id }

// Position maps a byte offset to "line L, col C" by counting newlines. When
// the offset lies beyond the last newline it falls back to "byte offset P".
func (s *Source) Position(pos int64) string {
	line := 0
	lineStart := int64(0)
	for i, b := range s.data {
		if b != '\n' {
			continue
		}
		if int64(i) >= pos {
			return fmt.Sprintf("line %d, col %d", line+1, pos-lineStart)
		}
		line++
		lineStart = int64(i)
	}
	return fmt.Sprintf("byte offset %d", pos)
}
