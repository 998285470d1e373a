// Package geom provides the small fixed-dimension vector and matrix types
// used by scene property bags and the transform evaluator.
package geom

import "github.com/chewxy/math32"

// Float is the scalar type used throughout the loader.
type Float = float32

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z Float
}

// Splat returns a vector with all components set to v.
func Splat(v Float) Vec3 {
	return Vec3{v, v, v}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean norm.
func (v Vec3) Length() Float {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns v scaled to unit length. A zero vector yields NaN
// components, which callers detect via HasNaN on the resulting matrix.
func (v Vec3) Normalized() Vec3 {
	n := 1 / v.Length()
	return Vec3{v.X * n, v.Y * n, v.Z * n}
}

// Color3 is a linear RGB triple.
type Color3 struct {
	R, G, B Float
}

// Luminance returns the ITU-R BT.709 luminance of c.
func (c Color3) Luminance() Float {
	return 0.212671*c.R + 0.715160*c.G + 0.072169*c.B
}

// MinComponent returns the smallest channel value.
func (c Color3) MinComponent() Float {
	return math32.Min(c.R, math32.Min(c.G, c.B))
}

// MaxComponent returns the largest channel value.
func (c Color3) MaxComponent() Float {
	return math32.Max(c.R, math32.Max(c.G, c.B))
}
