package scenexml_test

import (
	"fmt"

	"github.com/prismforge/scenexml"
	"github.com/prismforge/scenexml/plugin"
	"github.com/prismforge/scenexml/properties"
)

type exampleObject struct {
	plugin string
}

func (o *exampleObject) Expand() []plugin.Object { return nil }

func Example() {
	plugin.Cleanup()
	defer plugin.Cleanup()

	for _, alias := range []string{"scene", "integrator"} {
		_ = plugin.Register(&plugin.Class{
			Name:    alias,
			Alias:   alias,
			Variant: "scalar_rgb",
			Construct: func(props *properties.Properties) (plugin.Object, error) {
				for _, name := range props.Names() {
					props.Get(name)
				}
				return &exampleObject{plugin: props.PluginName()}, nil
			},
		})
	}

	root, err := scenexml.LoadString(
		`<scene version="2.0.0"><integrator type="path"/></scene>`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(root.(*exampleObject).plugin)
	// Output: scene
}
