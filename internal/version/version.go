// Package version handles the schema version attribute carried by scene
// documents.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CurrentString is the schema version written by the upgrade path.
const CurrentString = "2.0.0"

// Version is a (major, minor, patch) triple with lexicographic ordering.
type Version struct {
	v *semver.Version
}

// Parse reads a version triple. All three period-separated parts are
// required.
func Parse(s string) (Version, error) {
	if len(strings.Split(strings.TrimSpace(s), ".")) != 3 {
		return Version{}, fmt.Errorf("version number must consist of three period-separated parts")
	}
	v, err := semver.StrictNewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, err
	}
	return Version{v: v}, nil
}

// Current returns the schema version this loader targets.
func Current() Version {
	return Version{v: semver.MustParse(CurrentString)}
}

// LessThan reports whether v orders before w.
func (v Version) LessThan(w Version) bool {
	return v.v.LessThan(w.v)
}

// Equal reports whether the triples match.
func (v Version) Equal(w Version) bool {
	return v.v.Equal(w.v)
}

// String formats the triple as "major.minor.patch".
func (v Version) String() string {
	if v.v == nil {
		return "0.0.0"
	}
	return fmt.Sprintf("%d.%d.%d", v.v.Major(), v.v.Minor(), v.v.Patch())
}
