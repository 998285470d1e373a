// Package plugin holds the process-wide registry that maps XML tag names to
// tag kinds and (alias, variant) pairs to plugin class descriptors. Plugins
// register their classes during program initialization; the registry is
// read-only once loading begins.
package plugin

import "github.com/prismforge/scenexml/properties"

// Object is the interface every constructed scene object satisfies.
type Object interface {
	// Expand gives the object a chance to replace itself with one or more
	// substitutes at install time. An empty result keeps the object itself.
	Expand() []Object
}

// Constructor builds a concrete object from a fully populated property bag.
type Constructor func(props *properties.Properties) (Object, error)

// Class describes a registered plugin class for one variant.
type Class struct {
	// Name is the interface name, e.g. "Integrator" or "BSDF".
	Name string
	// Alias is the XML tag the class binds, e.g. "integrator".
	Alias string
	// Variant selects the build flavor, e.g. "scalar_rgb".
	Variant string
	// Construct instantiates the class from a property bag.
	Construct Constructor
}
