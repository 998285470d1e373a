// Package properties implements the typed, insertion-ordered property bags
// that carry parsed scene parameters from the staging phase to plugin
// constructors.
package properties

import (
	"fmt"

	"github.com/prismforge/scenexml/pkg/geom"
)

// Type identifies the stored kind of a property value.
type Type int

const (
	TypeBool Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeVector3
	TypePoint3
	TypeColor3
	TypeTransform
	TypeObject
	TypePointer
)

var typeNames = [...]string{
	"bool", "integer", "float", "string", "vector3", "point3",
	"color3", "transform", "object", "pointer",
}

// String returns the lowercase property type name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// NamedReference is a pending edge to another staged object, resolved
// during instantiation.
type NamedReference struct {
	Name string
	ID   string
}

type entry struct {
	name    string
	typ     Type
	value   any
	queried bool
}

// Properties is an insertion-ordered mapping from parameter names to typed
// values. It additionally records the plugin name, an optional id, and the
// named references collected while parsing.
type Properties struct {
	pluginName string
	id         string
	entries    []entry
	index      map[string]int
	refs       []NamedReference
}

// New creates an empty bag for the given plugin name.
func New(pluginName string) *Properties {
	return &Properties{pluginName: pluginName, index: make(map[string]int)}
}

// PluginName returns the plugin name the bag targets.
func (p *Properties) PluginName() string { return p.pluginName }

// SetPluginName retargets the bag at a different plugin.
func (p *Properties) SetPluginName(name string) { p.pluginName = name }

// ID returns the bag id, or the empty string.
func (p *Properties) ID() string { return p.id }

// SetID sets the bag id.
func (p *Properties) SetID(id string) { p.id = id }

// Has reports whether a property with the given name exists.
func (p *Properties) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Type returns the stored type of a property.
func (p *Properties) Type(name string) (Type, bool) {
	i, ok := p.index[name]
	if !ok {
		return 0, false
	}
	return p.entries[i].typ, true
}

// Names returns the property names in insertion order.
func (p *Properties) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.name
	}
	return names
}

func (p *Properties) set(name string, typ Type, value any) {
	if i, ok := p.index[name]; ok {
		p.entries[i] = entry{name: name, typ: typ, value: value}
		return
	}
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, entry{name: name, typ: typ, value: value})
}

func (p *Properties) get(name string, typ Type) (any, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("property %q has not been specified", name)
	}
	e := &p.entries[i]
	if e.typ != typ {
		return nil, fmt.Errorf("property %q has type %s, expected %s", name, e.typ, typ)
	}
	e.queried = true
	return e.value, nil
}

// SetBool stores a boolean property.
func (p *Properties) SetBool(name string, v bool) { p.set(name, TypeBool, v) }

// Bool reads a boolean property and marks it queried.
func (p *Properties) Bool(name string) (bool, error) {
	v, err := p.get(name, TypeBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// SetInt stores an integer property.
func (p *Properties) SetInt(name string, v int64) { p.set(name, TypeInt, v) }

// Int reads an integer property and marks it queried.
func (p *Properties) Int(name string) (int64, error) {
	v, err := p.get(name, TypeInt)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// SetFloat stores a float property.
func (p *Properties) SetFloat(name string, v geom.Float) { p.set(name, TypeFloat, v) }

// Float reads a float property and marks it queried.
func (p *Properties) Float(name string) (geom.Float, error) {
	v, err := p.get(name, TypeFloat)
	if err != nil {
		return 0, err
	}
	return v.(geom.Float), nil
}

// SetString stores a string property.
func (p *Properties) SetString(name, v string) { p.set(name, TypeString, v) }

// String reads a string property and marks it queried.
func (p *Properties) String(name string) (string, error) {
	v, err := p.get(name, TypeString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SetVector3 stores a vector property.
func (p *Properties) SetVector3(name string, v geom.Vec3) { p.set(name, TypeVector3, v) }

// Vector3 reads a vector property and marks it queried.
func (p *Properties) Vector3(name string) (geom.Vec3, error) {
	v, err := p.get(name, TypeVector3)
	if err != nil {
		return geom.Vec3{}, err
	}
	return v.(geom.Vec3), nil
}

// SetPoint3 stores a point property.
func (p *Properties) SetPoint3(name string, v geom.Vec3) { p.set(name, TypePoint3, v) }

// Point3 reads a point property and marks it queried.
func (p *Properties) Point3(name string) (geom.Vec3, error) {
	v, err := p.get(name, TypePoint3)
	if err != nil {
		return geom.Vec3{}, err
	}
	return v.(geom.Vec3), nil
}

// SetColor3 stores a color property.
func (p *Properties) SetColor3(name string, v geom.Color3) { p.set(name, TypeColor3, v) }

// Color3 reads a color property and marks it queried.
func (p *Properties) Color3(name string) (geom.Color3, error) {
	v, err := p.get(name, TypeColor3)
	if err != nil {
		return geom.Color3{}, err
	}
	return v.(geom.Color3), nil
}

// SetTransform stores a 4×4 transform property.
func (p *Properties) SetTransform(name string, v geom.Mat4) { p.set(name, TypeTransform, v) }

// Transform reads a transform property and marks it queried.
func (p *Properties) Transform(name string) (geom.Mat4, error) {
	v, err := p.get(name, TypeTransform)
	if err != nil {
		return geom.Mat4{}, err
	}
	return v.(geom.Mat4), nil
}

// SetObject stores a constructed object. The stored value is opaque to this
// package; the instantiation phase installs objects here and the audit
// reports unqueried ones as unreferenced.
func (p *Properties) SetObject(name string, v any) { p.set(name, TypeObject, v) }

// Object reads an object property and marks it queried.
func (p *Properties) Object(name string) (any, error) {
	return p.get(name, TypeObject)
}

// SetPointer stores an arbitrary typed pointer, such as a sample table.
func (p *Properties) SetPointer(name string, v any) { p.set(name, TypePointer, v) }

// Pointer reads a pointer property and marks it queried.
func (p *Properties) Pointer(name string) (any, error) {
	return p.get(name, TypePointer)
}

// Get reads a property of any type and marks it queried. It is intended
// for generic consumers such as test factories.
func (p *Properties) Get(name string) (any, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	e := &p.entries[i]
	e.queried = true
	return e.value, true
}

// AddNamedReference appends a pending (name, id) edge.
func (p *Properties) AddNamedReference(name, id string) {
	p.refs = append(p.refs, NamedReference{Name: name, ID: id})
}

// NamedReferences returns the pending edges in insertion order.
func (p *Properties) NamedReferences() []NamedReference {
	return p.refs
}

// Unqueried returns the names of properties never read through a typed
// getter or Get, in insertion order.
func (p *Properties) Unqueried() []string {
	var names []string
	for _, e := range p.entries {
		if !e.queried {
			names = append(names, e.name)
		}
	}
	return names
}
