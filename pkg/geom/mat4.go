package geom

import "github.com/chewxy/math32"

// Mat4 is a row-major 4×4 transform matrix.
type Mat4 [4][4]Float

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// FromSlice builds a matrix from 16 row-major values.
func FromSlice(v []Float) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = v[i*4+j]
		}
	}
	return m
}

// Mul returns the matrix product a · b.
func Mul(a, b Mat4) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum Float
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			m[i][j] = sum
		}
	}
	return m
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// Scale returns a per-axis scale by v.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0][0] = v.X
	m[1][1] = v.Y
	m[2][2] = v.Z
	return m
}

// Rotate returns a rotation of angle degrees around axis. The axis is
// normalized before use.
func Rotate(axis Vec3, angleDeg Float) Mat4 {
	a := axis.Normalized()
	rad := angleDeg * math32.Pi / 180
	s, c := math32.Sincos(rad)
	t := 1 - c

	m := Identity()
	m[0][0] = t*a.X*a.X + c
	m[0][1] = t*a.X*a.Y - s*a.Z
	m[0][2] = t*a.X*a.Z + s*a.Y
	m[1][0] = t*a.X*a.Y + s*a.Z
	m[1][1] = t*a.Y*a.Y + c
	m[1][2] = t*a.Y*a.Z - s*a.X
	m[2][0] = t*a.X*a.Z - s*a.Y
	m[2][1] = t*a.Y*a.Z + s*a.X
	m[2][2] = t*a.Z*a.Z + c
	return m
}

// LookAt returns the camera-to-world transform with the camera at origin
// looking toward target, with the given up vector. The basis columns are
// (left, up', dir); a degenerate up/dir pair produces NaN entries, which
// callers reject via HasNaN.
func LookAt(origin, target, up Vec3) Mat4 {
	dir := target.Sub(origin).Normalized()
	left := up.Cross(dir).Normalized()
	newUp := dir.Cross(left)

	return Mat4{
		{left.X, newUp.X, dir.X, origin.X},
		{left.Y, newUp.Y, dir.Y, origin.Y},
		{left.Z, newUp.Z, dir.Z, origin.Z},
		{0, 0, 0, 1},
	}
}

// HasNaN reports whether any matrix entry is NaN.
func (m Mat4) HasNaN() bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.IsNaN(m[i][j]) {
				return true
			}
		}
	}
	return false
}

// TransformPoint applies m to a point (w = 1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		inv := 1 / w
		return Vec3{x * inv, y * inv, z * inv}
	}
	return Vec3{x, y, z}
}

// TransformVector applies m to a direction (w = 0).
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
