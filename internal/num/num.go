// Package num parses numeric attribute values. Parsing is
// locale-insensitive; surrounding whitespace is tolerated and any trailing
// non-whitespace is an error.
package num

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prismforge/scenexml/pkg/geom"
)

// ParseFloat reads a floating point value.
func ParseFloat(s string) (geom.Float, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("could not parse floating point value %q", s)
	}
	return geom.Float(v), nil
}

// ParseInt reads a decimal integer value.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse integer value %q", s)
	}
	return v, nil
}

// FormatFloat renders a float for attribute values.
func FormatFloat(v geom.Float) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
