package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeTranslateScale(t *testing.T) {
	// Source order translate-then-scale composes as Scale · Translate.
	m := Mul(Scale(Vec3{X: 2, Y: 2, Z: 2}), Translate(Vec3{X: 1}))
	p := m.TransformPoint(Vec3{})
	assert.InDelta(t, 2, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 0, p.Z, 1e-6)
}

func TestRotateAboutZ(t *testing.T) {
	m := Rotate(Vec3{Z: 1}, 90)
	p := m.TransformPoint(Vec3{X: 1})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 1, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)
}

func TestLookAtBasis(t *testing.T) {
	m := LookAt(Vec3{Z: -5}, Vec3{}, Vec3{Y: 1})
	require.False(t, m.HasNaN())

	// The view direction maps to +z of the camera frame.
	dir := m.TransformVector(Vec3{Z: 1})
	assert.InDelta(t, 0, dir.X, 1e-5)
	assert.InDelta(t, 0, dir.Y, 1e-5)
	assert.InDelta(t, 1, dir.Z, 1e-5)

	origin := m.TransformPoint(Vec3{})
	assert.InDelta(t, -5, origin.Z, 1e-5)
}

func TestLookAtDegenerate(t *testing.T) {
	// Up parallel to the view direction has no valid frame.
	m := LookAt(Vec3{}, Vec3{Y: 1}, Vec3{Y: 1})
	require.True(t, m.HasNaN())
}

func TestFromSlice(t *testing.T) {
	m := FromSlice([]Float{
		1, 0, 0, 4,
		0, 1, 0, 5,
		0, 0, 1, 6,
		0, 0, 0, 1,
	})
	p := m.TransformPoint(Vec3{})
	assert.Equal(t, Vec3{X: 4, Y: 5, Z: 6}, p)
}

func TestIdentity(t *testing.T) {
	p := Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, p, Identity().TransformPoint(p))
	assert.Equal(t, Identity(), Mul(Identity(), Identity()))
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1, Color3{R: 1, G: 1, B: 1}.Luminance(), 1e-5)
	assert.InDelta(t, 0.715160, Color3{G: 1}.Luminance(), 1e-6)
	assert.Equal(t, Float(0), Color3{}.Luminance())
}

func TestColorBounds(t *testing.T) {
	c := Color3{R: 1.2, G: -0.5, B: 0.3}
	assert.Equal(t, Float(-0.5), c.MinComponent())
	assert.Equal(t, Float(1.2), c.MaxComponent())
}

func TestSplatAndCross(t *testing.T) {
	assert.Equal(t, Vec3{X: 2, Y: 2, Z: 2}, Splat(2))
	z := Vec3{X: 1}.Cross(Vec3{Y: 1})
	assert.Equal(t, Vec3{Z: 1}, z)
}
