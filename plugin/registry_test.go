package plugin

import (
	"testing"

	"github.com/prismforge/scenexml/properties"
)

type stubObject struct{}

func (stubObject) Expand() []Object { return nil }

func stubConstructor(*properties.Properties) (Object, error) {
	return stubObject{}, nil
}

func register(t *testing.T, alias string) {
	t.Helper()
	err := Register(&Class{
		Name:      alias,
		Alias:     alias,
		Variant:   "scalar_rgb",
		Construct: stubConstructor,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", alias, err)
	}
}

func TestFixedTags(t *testing.T) {
	t.Cleanup(Cleanup)

	for name, want := range map[string]Kind{
		"boolean":   KindBoolean,
		"integer":   KindInteger,
		"float":     KindFloat,
		"string":    KindString,
		"point":     KindPoint,
		"vector":    KindVector,
		"transform": KindTransform,
		"translate": KindTranslate,
		"matrix":    KindMatrix,
		"rotate":    KindRotate,
		"scale":     KindScale,
		"lookat":    KindLookAt,
		"ref":       KindNamedReference,
		"spectrum":  KindSpectrum,
		"rgb":       KindRGB,
		"color":     KindColor,
		"include":   KindInclude,
		"alias":     KindAlias,
		"default":   KindDefault,
	} {
		got, ok := TagKind(name)
		if !ok || got != want {
			t.Errorf("TagKind(%s) = %v, %v; want %v", name, got, ok, want)
		}
	}

	if _, ok := TagKind("bsdf"); ok {
		t.Error("bsdf known before registration")
	}
}

func TestRegisterObjectTag(t *testing.T) {
	t.Cleanup(Cleanup)
	register(t, "bsdf")

	kind, ok := TagKind("bsdf")
	if !ok || kind != KindObject {
		t.Fatalf("TagKind(bsdf) = %v, %v", kind, ok)
	}
	if _, ok := ClassFor("bsdf", "scalar_rgb"); !ok {
		t.Fatal("ClassFor(bsdf, scalar_rgb) missing")
	}
	if _, ok := ClassFor("bsdf", "scalar_mono"); ok {
		t.Fatal("ClassFor(bsdf, scalar_mono) unexpectedly present")
	}
}

func TestSpectrumRegistersTexture(t *testing.T) {
	t.Cleanup(Cleanup)
	register(t, "spectrum")

	kind, ok := TagKind("texture")
	if !ok || kind != KindObject {
		t.Fatalf("TagKind(texture) = %v, %v", kind, ok)
	}
	spec, _ := ClassFor("spectrum", "scalar_rgb")
	tex, ok := ClassFor("texture", "scalar_rgb")
	if !ok || tex != spec {
		t.Fatal("texture not bound to the spectrum class")
	}
}

func TestRegisterCollision(t *testing.T) {
	t.Cleanup(Cleanup)
	err := Register(&Class{Name: "Float", Alias: "float", Variant: "scalar_rgb", Construct: stubConstructor})
	if err == nil {
		t.Fatal("expected collision with built-in float tag")
	}
}

func TestCleanup(t *testing.T) {
	register(t, "shape")
	Cleanup()
	if _, ok := TagKind("shape"); ok {
		t.Fatal("shape survived Cleanup")
	}
	if _, ok := TagKind("float"); !ok {
		t.Fatal("fixed tags missing after Cleanup")
	}
}

func TestTransformOpKinds(t *testing.T) {
	ops := []Kind{KindTranslate, KindRotate, KindScale, KindLookAt, KindMatrix}
	for _, k := range ops {
		if !k.IsTransformOp() {
			t.Errorf("%v not a transform op", k)
		}
	}
	for _, k := range []Kind{KindTransform, KindObject, KindFloat, KindInvalid} {
		if k.IsTransformOp() {
			t.Errorf("%v wrongly a transform op", k)
		}
	}
}
