package scenexml_test

import (
	"strings"
	"testing"

	"github.com/prismforge/scenexml"
	"github.com/prismforge/scenexml/pkg/geom"
	"github.com/prismforge/scenexml/plugin"
	"github.com/prismforge/scenexml/properties"
)

type testObject struct {
	plugin string
	id     string
	values map[string]any
}

func (o *testObject) Expand() []plugin.Object { return nil }

func (o *testObject) child(name string) *testObject {
	v, ok := o.values[name]
	if !ok {
		return nil
	}
	obj, _ := v.(*testObject)
	return obj
}

func newTestObject(props *properties.Properties) (plugin.Object, error) {
	obj := &testObject{
		plugin: props.PluginName(),
		id:     props.ID(),
		values: make(map[string]any),
	}
	for _, name := range props.Names() {
		v, _ := props.Get(name)
		obj.values[name] = v
	}
	return obj, nil
}

func registerTestClasses(t *testing.T, variants ...string) {
	t.Helper()
	plugin.Cleanup()
	t.Cleanup(plugin.Cleanup)
	aliases := []string{"scene", "integrator", "bsdf", "shape", "emitter", "sensor", "spectrum"}
	for _, variant := range variants {
		for _, alias := range aliases {
			err := plugin.Register(&plugin.Class{
				Name:      strings.ToUpper(alias[:1]) + alias[1:],
				Alias:     alias,
				Variant:   variant,
				Construct: newTestObject,
			})
			if err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestLoadMinimalScene(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	root, err := scenexml.LoadString(`<scene version="2.0.0"><integrator type="path"/></scene>`)
	if err != nil {
		t.Fatal(err)
	}
	scene := root.(*testObject)
	if scene.plugin != "scene" {
		t.Fatalf("root plugin = %q", scene.plugin)
	}
	integrator := scene.child("_arg_0")
	if integrator == nil || integrator.plugin != "path" {
		t.Fatalf("integrator = %+v", integrator)
	}
}

func TestLoadParameterSubstitution(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	text := `<scene version="2.0.0">
  <default name="spp" value="16"/>
  <integrator type="path"><integer name="samples" value="$spp"/></integrator>
</scene>`

	root, err := scenexml.LoadString(text)
	if err != nil {
		t.Fatal(err)
	}
	integrator := root.(*testObject).child("_arg_0")
	if got := integrator.values["samples"]; got != int64(16) {
		t.Fatalf("samples = %v (%T)", got, got)
	}

	// A caller-supplied parameter wins over the document default.
	root, err = scenexml.LoadString(text, scenexml.WithParameter("spp", "64"))
	if err != nil {
		t.Fatal(err)
	}
	integrator = root.(*testObject).child("_arg_0")
	if got := integrator.values["samples"]; got != int64(64) {
		t.Fatalf("samples = %v", got)
	}
}

func TestLoadTransformComposition(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	root, err := scenexml.LoadString(`<scene version="2.0.0"><shape type="sphere">
<transform name="to_world"><translate x="1"/><scale value="2"/></transform>
</shape></scene>`)
	if err != nil {
		t.Fatal(err)
	}
	shape := root.(*testObject).child("_arg_0")
	m := shape.values["to_world"].(geom.Mat4)
	if p := m.TransformPoint(geom.Vec3{}); p != (geom.Vec3{X: 2}) {
		t.Fatalf("transformed origin = %v", p)
	}
}

func TestLoadRGBOutsideEmitter(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	_, err := scenexml.LoadString(
		`<scene version="2.0.0"><bsdf type="diffuse"><rgb name="reflectance" value="1.2 0 0"/></bsdf></scene>`)
	if err == nil || !strings.Contains(err.Error(), "invalid RGB reflectance value") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "Error while loading") {
		t.Fatalf("missing source context: %v", err)
	}
}

func TestLoadAlias(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	root, err := scenexml.LoadString(`<scene version="2.0.0">
<bsdf type="diffuse" id="a"/>
<alias id="a" as="b"/>
<shape type="sphere"><ref id="a" name="first"/><ref id="b" name="second"/></shape>
</scene>`)
	if err != nil {
		t.Fatal(err)
	}
	var shape *testObject
	for _, v := range root.(*testObject).values {
		if o, ok := v.(*testObject); ok && o.plugin == "sphere" {
			shape = o
		}
	}
	if shape == nil {
		t.Fatal("shape not found")
	}
	if shape.values["first"] != shape.values["second"] {
		t.Fatal("alias resolved to a distinct object")
	}
}

func TestLoadDuplicateID(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	_, err := scenexml.LoadString(`<scene version="2.0.0">
<bsdf type="diffuse" id="a"/>
<bsdf type="diffuse" id="a"/>
</scene>`)
	if err == nil || !strings.Contains(err.Error(), `duplicate id "a"`) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "previous was at") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadMonochromeRGB(t *testing.T) {
	registerTestClasses(t, "scalar_mono")

	root, err := scenexml.LoadString(
		`<scene version="2.0.0"><bsdf type="diffuse"><rgb name="reflectance" value="0 1 0"/></bsdf></scene>`,
		scenexml.WithVariant("scalar_mono"))
	if err != nil {
		t.Fatal(err)
	}
	bsdf := root.(*testObject).child("_arg_0")
	spectrum := bsdf.child("reflectance")
	if spectrum == nil || spectrum.plugin != "uniform" {
		t.Fatalf("spectrum = %+v", spectrum)
	}
	lum := spectrum.values["value"].(geom.Float)
	want := geom.Color3{G: 1}.Luminance()
	if diff := lum - want; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("luminance = %v, want %v", lum, want)
	}
}

func TestLoadTextureTag(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	root, err := scenexml.LoadString(`<scene version="2.0.0"><bsdf type="diffuse">
<texture type="checkerboard" name="reflectance"/>
</bsdf></scene>`)
	if err != nil {
		t.Fatal(err)
	}
	bsdf := root.(*testObject).child("_arg_0")
	tex := bsdf.child("reflectance")
	if tex == nil || tex.plugin != "checkerboard" {
		t.Fatalf("texture = %+v", tex)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	_, err := scenexml.LoadString("<scene version=\"2.0.0\">\n<bsdf></scene>")
	if err == nil || !strings.Contains(err.Error(), "Error while loading") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "<string>") {
		t.Fatalf("err = %v", err)
	}
}
