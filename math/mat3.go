package math

// Mat3 is stored column-major, m[col][row]. It carries the normal matrix
// derived from an Object's transform (inverse-transpose of the upper-left
// 3x3 block), so normals stay correct under non-uniform scale.
type Mat3 [3][3]float32

func Mat3Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z,
	}
}

func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			t[r][c] = m[c][r]
		}
	}
	return t
}

// Inverse computes the adjugate/determinant inverse of a 3x3 matrix.
// Reports false on a singular matrix instead of returning garbage.
func (m Mat3) Inverse() (Mat3, bool) {
	a00, a01, a02 := m[0][0], m[1][0], m[2][0]
	a10, a11, a12 := m[0][1], m[1][1], m[2][1]
	a20, a21, a22 := m[0][2], m[1][2], m[2][2]

	c00 := a11*a22 - a12*a21
	c01 := a12*a20 - a10*a22
	c02 := a10*a21 - a11*a20

	det := a00*c00 + a01*c01 + a02*c02
	if det == 0 {
		return Mat3{}, false
	}
	invDet := 1.0 / det

	c10 := a02*a21 - a01*a22
	c11 := a00*a22 - a02*a20
	c12 := a01*a20 - a00*a21

	c20 := a01*a12 - a02*a11
	c21 := a02*a10 - a00*a12
	c22 := a00*a11 - a01*a10

	return Mat3{
		{c00 * invDet, c01 * invDet, c02 * invDet},
		{c10 * invDet, c11 * invDet, c12 * invDet},
		{c20 * invDet, c21 * invDet, c22 * invDet},
	}, true
}

// NormalMatrix returns the inverse-transpose of m, the matrix that carries
// normals correctly under m's non-uniform scale. Falls back to m itself
// (uniform scale / pure rotation case) when m is singular, matching the
// teacher's "never return a zero matrix to the renderer" posture.
func (m Mat3) NormalMatrix() Mat3 {
	inv, ok := m.Inverse()
	if !ok {
		return m
	}
	return inv.Transpose()
}
