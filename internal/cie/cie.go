// Package cie provides the small slice of colorimetry the loader needs when
// collapsing spectra to scalars in monochrome variants.
package cie

import (
	"github.com/chewxy/math32"

	"github.com/prismforge/scenexml/pkg/geom"
)

const (
	// LambdaMin and LambdaMax bound the wavelength range in nanometers.
	LambdaMin geom.Float = 360
	LambdaMax geom.Float = 830

	// YNormalization is 1 over the integral of the CIE Y matching curve,
	// applied when pre-integrating reflectance spectra.
	YNormalization geom.Float = 0.0093583

	// EmitterUnitConversion scales emitter spectra so that integrating D65
	// against the CIE curves yields sRGB white.
	EmitterUnitConversion geom.Float = 100.0 / 10568.0
)

// Y samples the CIE 1931 Y (luminance) matching curve at a wavelength in
// nanometers, using the two-lobe piecewise-Gaussian fit.
func Y(lambda geom.Float) geom.Float {
	return 0.821*lobe(lambda, 568.8, 0.0213, 0.0247) +
		0.286*lobe(lambda, 530.9, 0.0613, 0.0322)
}

func lobe(x, mu, s1, s2 geom.Float) geom.Float {
	t := (x - mu) * s2
	if x < mu {
		t = (x - mu) * s1
	}
	return math32.Exp(-0.5 * t * t)
}
