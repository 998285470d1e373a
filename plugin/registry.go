package plugin

import (
	"fmt"
	"sync"
)

type registry struct {
	tags    map[string]Kind
	classes map[string]*Class
}

var (
	mu              sync.RWMutex
	defaultRegistry *registry
)

func classKey(alias, variant string) string {
	return alias + "." + variant
}

func ensureRegistry() *registry {
	if defaultRegistry == nil {
		defaultRegistry = &registry{
			tags:    fixedTags(),
			classes: make(map[string]*Class),
		}
	}
	return defaultRegistry
}

// Register binds a plugin class to its tag alias for one variant. The alias
// is recorded as an Object-kind tag. Registering a "spectrum" class also
// binds a synonymous "texture" tag, since textures refine continuous
// spectra.
func Register(c *Class) error {
	if c == nil {
		return fmt.Errorf("plugin: nil class")
	}
	if c.Alias == "" || c.Variant == "" {
		return fmt.Errorf("plugin: class %q requires an alias and a variant", c.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	r := ensureRegistry()

	kind, known := r.tags[c.Alias]
	if !known {
		r.tags[c.Alias] = KindObject
		r.classes[classKey(c.Alias, c.Variant)] = c
	} else if kind == KindObject || c.Alias == "spectrum" {
		// "spectrum" keeps its built-in value-tag kind; its class serves
		// <spectrum type="..."> elements and the staged spectrum objects.
		r.classes[classKey(c.Alias, c.Variant)] = c
	} else {
		return fmt.Errorf("plugin: alias %q collides with the built-in %s tag", c.Alias, kind)
	}

	if c.Alias == "spectrum" {
		r.tags["texture"] = KindObject
		r.classes[classKey("texture", c.Variant)] = c
	}
	return nil
}

// TagKind returns the kind registered for a tag name.
func TagKind(name string) (Kind, bool) {
	mu.RLock()
	defer mu.RUnlock()
	k, ok := ensureRegistry().tags[name]
	return k, ok
}

// ClassFor returns the class registered for (alias, variant).
func ClassFor(alias, variant string) (*Class, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := ensureRegistry().classes[classKey(alias, variant)]
	return c, ok
}

// Cleanup releases the registry. It is intended as a process shutdown hook
// and as test teardown; loads running concurrently with Cleanup are not
// supported.
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()
	defaultRegistry = nil
}
