// Package instantiate implements the second loading phase: concrete objects
// are constructed bottom-up from the staged table, in parallel across a
// bag's named references, with at-most-once construction per id.
package instantiate

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/prismforge/scenexml/errors"
	"github.com/prismforge/scenexml/internal/parser"
	"github.com/prismforge/scenexml/plugin"
	"github.com/prismforge/scenexml/properties"
)

// Root constructs the object graph rooted at id and returns the root
// object.
func Root(ctx *parser.Context, id string) (plugin.Object, error) {
	return instantiate(ctx, id, nil)
}

// instantiate returns the memoized object for id, constructing it first if
// needed. trail holds the ids on the active construction path; re-entry on
// one of them is a dependency cycle, reported instead of deadlocking on the
// entry lock.
func instantiate(ctx *parser.Context, id string, trail map[string]bool) (plugin.Object, error) {
	hops := 0
	for {
		inst, ok := ctx.Instances[id]
		if !ok {
			return nil, fmt.Errorf("reference to unknown object %q", id)
		}
		if trail[id] {
			return nil, fmt.Errorf("circular dependency involving object %q", id)
		}

		inst.Lock()
		if obj := inst.Object(); obj != nil {
			inst.Unlock()
			return obj, nil
		}
		if inst.Alias != "" {
			// Release before descending so no two entry locks are held at
			// once.
			alias := inst.Alias
			inst.Unlock()
			hops++
			if hops > len(ctx.Instances) {
				return nil, fmt.Errorf("alias chain involving %q does not terminate", id)
			}
			id = alias
			continue
		}

		obj, err := construct(ctx, inst, trail)
		if err == nil {
			inst.SetObject(obj)
		}
		inst.Unlock()
		return obj, err
	}
}

func construct(ctx *parser.Context, inst *parser.Staged, trail map[string]bool) (plugin.Object, error) {
	sub := make(map[string]bool, len(trail)+1)
	for k := range trail {
		sub[k] = true
	}
	sub[inst.ID] = true

	refs := inst.Props.NamedReferences()
	children := make([]plugin.Object, len(refs))

	switch {
	case len(refs) == 1:
		obj, err := instantiate(ctx, refs[0].ID, sub)
		if err != nil {
			return nil, wrapNear(inst, err)
		}
		children[0] = obj
	case len(refs) > 1:
		// Each sub-instantiation runs in its own goroutine, so a nested
		// parallel section can never steal this call's continuation.
		g := new(errgroup.Group)
		for i, ref := range refs {
			i, ref := i, ref
			g.Go(func() error {
				obj, err := instantiate(ctx, ref.ID, sub)
				if err != nil {
					return err
				}
				children[i] = obj
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, wrapNear(inst, err)
		}
	}

	// Install in reference order so the factory sees properties in source
	// order regardless of construction interleaving.
	for i, ref := range refs {
		install(inst.Props, ref.Name, children[i])
	}

	obj, err := inst.Class.Construct(inst.Props)
	if err != nil {
		if errors.IsWrapped(err) {
			return nil, err
		}
		return nil, errors.NewNear(inst.SrcID, inst.Position(inst.Offset),
			"could not instantiate %s plugin of type %q: %v",
			strings.ToLower(inst.Class.Name), inst.Props.PluginName(), err)
	}

	if err := auditUnqueried(inst); err != nil {
		return nil, err
	}
	return obj, nil
}

// install gives obj a chance to expand into substitutes before it is stored
// on the parent bag.
func install(props *properties.Properties, name string, obj plugin.Object) {
	expanded := obj.Expand()
	switch len(expanded) {
	case 0:
		props.SetObject(name, obj)
	case 1:
		props.SetObject(name, expanded[0])
	default:
		for i, c := range expanded {
			props.SetObject(fmt.Sprintf("%s_%d", name, i), c)
		}
	}
}

// auditUnqueried rejects construction when the factory left properties
// unread: either a forgotten parameter or an unreferenced child object.
func auditUnqueried(inst *parser.Staged) error {
	unqueried := inst.Props.Unqueried()
	if len(unqueried) == 0 {
		return nil
	}

	className := strings.ToLower(inst.Class.Name)
	for _, name := range unqueried {
		if typ, ok := inst.Props.Type(name); ok && typ == properties.TypeObject {
			return errors.NewNear(inst.SrcID, inst.Position(inst.Offset),
				"unreferenced object %q (within %s of type %q)",
				name, className, inst.Props.PluginName())
		}
	}

	quoted := make([]string, len(unqueried))
	for i, name := range unqueried {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	noun := "property"
	if len(unqueried) > 1 {
		noun = "properties"
	}
	return errors.NewNear(inst.SrcID, inst.Position(inst.Offset),
		"unreferenced %s %s in %s plugin of type %q",
		noun, strings.Join(quoted, ", "), className, inst.Props.PluginName())
}

func wrapNear(inst *parser.Staged, err error) error {
	return errors.WrapNear(err, inst.SrcID, inst.Position(inst.Offset))
}
