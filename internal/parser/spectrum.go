package parser

import (
	"strings"

	"github.com/chewxy/math32"

	"github.com/prismforge/scenexml/internal/cie"
	"github.com/prismforge/scenexml/internal/num"
	"github.com/prismforge/scenexml/internal/xmldom"
	"github.com/prismforge/scenexml/pkg/geom"
	"github.com/prismforge/scenexml/plugin"
	"github.com/prismforge/scenexml/properties"
)

// regularityEpsilon bounds how far a sample interval may drift from the
// first interval before the spectrum counts as irregularly sampled.
const regularityEpsilon geom.Float = 1e-3

// parseColor handles <color>, which stores a plain Color3 property. In
// monochrome mode the color collapses to its luminance.
func parseColor(src *Source, ctx *Context, n *xmldom.Node, props *properties.Properties) error {
	if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
		return err
	}
	name, _ := n.Attr("name")
	raw, _ := n.Attr("value")
	tokens := strings.Fields(raw)
	if len(tokens) != 3 {
		return src.errorf(n, "'color' tag requires three values (got %q)", raw)
	}
	col, err := parseColorTokens(tokens)
	if err != nil {
		return src.errorf(n, "could not parse color %q", raw)
	}
	if ctx.Monochrome {
		col = geom.Color3{R: col.Luminance(), G: col.Luminance(), B: col.Luminance()}
	}
	props.SetColor3(name, col)
	return nil
}

// stageRGB lowers <rgb> into a staged spectrum object and records a named
// reference to it on the parent bag.
func stageRGB(src *Source, ctx *Context, n *xmldom.Node, props *properties.Properties, withinEmitter bool) error {
	if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
		return err
	}
	name, _ := n.Attr("name")
	raw, _ := n.Attr("value")
	tokens := strings.Fields(raw)
	if len(tokens) == 1 {
		tokens = []string{tokens[0], tokens[0], tokens[0]}
	}
	if len(tokens) != 3 {
		return src.errorf(n, "'rgb' tag requires one or three values (got %q)", raw)
	}
	col, err := parseColorTokens(tokens)
	if err != nil {
		return src.errorf(n, "could not parse RGB value %q", raw)
	}
	if !withinEmitter && (col.MinComponent() < 0 || col.MaxComponent() > 1) {
		return src.errorf(n, "invalid RGB reflectance value, must be in the range [0, 1]!")
	}

	var nested *properties.Properties
	if ctx.Monochrome {
		nested = properties.New("uniform")
		nested.SetFloat("value", col.Luminance())
	} else {
		pluginName := "srgb"
		if withinEmitter {
			pluginName = "srgb_d65"
		}
		nested = properties.New(pluginName)
		nested.SetColor3("color", col)
	}
	return stageSpectrumObject(src, ctx, n, props, name, nested)
}

// stageSpectrum lowers <spectrum>. A single token becomes a constant
// spectrum; multiple wavelength:value tokens become a regularly sampled
// interpolated spectrum.
func stageSpectrum(src *Source, ctx *Context, n *xmldom.Node, props *properties.Properties, withinEmitter bool) error {
	if err := checkAttributes(src, n, []string{"name", "value"}, true); err != nil {
		return err
	}
	name, _ := n.Attr("name")
	raw, _ := n.Attr("value")
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return src.errorf(n, "'spectrum' tag requires at least one value")
	}

	if len(tokens) == 1 {
		value, err := num.ParseFloat(tokens[0])
		if err != nil {
			return src.errorf(n, "could not parse constant spectrum %q", tokens[0])
		}
		pluginName := "uniform"
		if withinEmitter {
			pluginName = "d65"
		}
		if ctx.Monochrome {
			if withinEmitter {
				value /= cie.LambdaMax - cie.LambdaMin
			}
			pluginName = "uniform"
		}
		nested := properties.New(pluginName)
		nested.SetFloat("value", value)
		return stageSpectrumObject(src, ctx, n, props, name, nested)
	}

	unitConversion := geom.Float(1)
	if withinEmitter {
		unitConversion = cie.EmitterUnitConversion
	}

	wavelengths := make([]geom.Float, 0, len(tokens))
	values := make([]geom.Float, 0, len(tokens))
	isRegular := true
	var interval geom.Float

	for _, token := range tokens {
		pair := strings.Split(token, ":")
		if len(pair) != 2 {
			return src.errorf(n, "invalid spectrum (expected wavelength:value pairs)")
		}
		wavelength, werr := num.ParseFloat(pair[0])
		value, verr := num.ParseFloat(pair[1])
		if werr != nil || verr != nil {
			return src.errorf(n, "could not parse wavelength:value pair: %q", token)
		}

		wavelengths = append(wavelengths, wavelength)
		values = append(values, value*unitConversion)

		count := len(wavelengths)
		if count <= 1 {
			continue
		}
		distance := wavelengths[count-1] - wavelengths[count-2]
		if distance < 0 {
			return src.errorf(n, "wavelengths must be specified in increasing order")
		}
		if count == 2 {
			interval = distance
		} else if math32.Abs(distance-interval) > regularityEpsilon {
			isRegular = false
		}
	}
	if !isRegular {
		return src.errorf(n, "not implemented yet: irregularly sampled spectra")
	}

	var nested *properties.Properties
	if ctx.Monochrome {
		average := integrateAgainstCIEY(wavelengths, values)
		if withinEmitter {
			average /= cie.LambdaMax - cie.LambdaMin
		} else {
			average *= cie.YNormalization
		}
		nested = properties.New("uniform")
		nested.SetFloat("value", average)
	} else {
		nested = properties.New("interpolated")
		nested.SetFloat("lambda_min", wavelengths[0])
		nested.SetFloat("lambda_max", wavelengths[len(wavelengths)-1])
		nested.SetInt("size", int64(len(wavelengths)))
		nested.SetPointer("values", values)
	}
	return stageSpectrumObject(src, ctx, n, props, name, nested)
}

// stageSpectrumObject stages a spectrum property bag under a synthesized id
// and records the (name, id) reference on the parent.
func stageSpectrumObject(src *Source, ctx *Context, n *xmldom.Node,
	props *properties.Properties, name string, nested *properties.Properties) error {

	class, ok := plugin.ClassFor("spectrum", ctx.Variant)
	if !ok {
		return src.errorf(n, "could not retrieve class object for tag %q", "spectrum")
	}
	id := ctx.nextAnonymousID()
	nested.SetID(id)
	ctx.Instances[id] = &Staged{
		ID:       id,
		Props:    nested,
		Class:    class,
		SrcID:    src.ID,
		Offset:   n.Offset,
		Position: src.Position,
	}
	props.AddNamedReference(name, id)
	return nil
}

// integrateAgainstCIEY accumulates the sample table against the CIE Y
// matching curve at 1 nm increments across the visible range.
func integrateAgainstCIEY(wavelengths, values []geom.Float) geom.Float {
	lambdaMin := wavelengths[0]
	lambdaMax := wavelengths[len(wavelengths)-1]
	interval := geom.Float(0)
	if len(wavelengths) > 1 {
		interval = wavelengths[1] - wavelengths[0]
	}

	var sum geom.Float
	for wav := cie.LambdaMin; wav <= cie.LambdaMax; wav++ {
		sum += cie.Y(wav) * sampleRegular(wav, lambdaMin, lambdaMax, interval, values)
	}
	return sum
}

// sampleRegular linearly interpolates a regularly spaced sample table,
// returning 0 outside its range.
func sampleRegular(wav, lambdaMin, lambdaMax, interval geom.Float, values []geom.Float) geom.Float {
	if wav < lambdaMin || wav > lambdaMax || interval <= 0 {
		return 0
	}
	t := (wav - lambdaMin) / interval
	i := int(t)
	if i >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := t - geom.Float(i)
	return values[i]*(1-frac) + values[i+1]*frac
}

func parseColorTokens(tokens []string) (geom.Color3, error) {
	r, err := num.ParseFloat(tokens[0])
	if err != nil {
		return geom.Color3{}, err
	}
	g, err := num.ParseFloat(tokens[1])
	if err != nil {
		return geom.Color3{}, err
	}
	b, err := num.ParseFloat(tokens[2])
	if err != nil {
		return geom.Color3{}, err
	}
	return geom.Color3{R: r, G: g, B: b}, nil
}
