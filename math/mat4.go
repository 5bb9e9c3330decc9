package math

import "math"

// Mat4 is stored column-major, m[col][row]. This matches the scene
// document's wire format directly (a transform persists as 16 floats,
// column by column) instead of needing a transpose at the serialization
// boundary.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

// FromColumnMajor16 builds a Mat4 from 16 floats already in column-major
// order — the shape the scene document persists a transform as.
func FromColumnMajor16(f [16]float32) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c][r] = f[c*4+r]
		}
	}
	return m
}

func (m Mat4) ToColumnMajor16() [16]float32 {
	var f [16]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			f[c*4+r] = m[c][r]
		}
	}
	return f
}

// Mul returns m * other; other is applied first to a vector on the right.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k][r] * other[c][k]
			}
			result[c][r] = sum
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z + m[3][0]*v.W,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z + m[3][1]*v.W,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z + m[3][2]*v.W,
		W: m[0][3]*v.X + m[1][3]*v.Y + m[2][3]*v.Z + m[3][3]*v.W,
	}
}

// MulVec3 transforms a position (w=1 then divides back out).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(1)).ToVec3DivW()
}

// MulDirection transforms a direction (w=0); translation does not apply.
// Ray directions go through this, not MulVec3, per the object-space
// transform described in §4.6.
func (m Mat4) MulDirection(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(0)).ToVec3()
}

func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[r][c] = m[c][r]
		}
	}
	return t
}

// UpperLeft3x3 extracts the rotation/scale block, used to derive the
// normal matrix (inverse-transpose of this) in scene.Object.
func (m Mat4) UpperLeft3x3() Mat3 {
	return Mat3{
		{m[0][0], m[0][1], m[0][2]},
		{m[1][0], m[1][1], m[1][2]},
		{m[2][0], m[2][1], m[2][2]},
	}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationAxis(axis Vec3, angle float32) Mat4 {
	axis = axis.Normalize()
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0},
		{t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0},
		{t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Rotation(euler Vec3) Mat4 {
	return Mat4RotationY(euler.Y).Mul(Mat4RotationX(euler.X)).Mul(Mat4RotationZ(euler.Z))
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

func Mat4TRS(translation, eulerRadians, scale Vec3) Mat4 {
	t := Mat4Translation(translation)
	r := Mat4Rotation(eulerRadians)
	s := Mat4Scale(scale)
	return t.Mul(r).Mul(s)
}

// Inverse computes the full adjugate/determinant inverse and reports
// whether the matrix was invertible. A degenerate Object transform
// (zero scale on some axis, duplicate rows) must fail loudly rather
// than silently render as identity.
func (m Mat4) Inverse() (Mat4, bool) {
	// Row-major scratch so the classic cofactor-expansion reads the
	// same as any textbook derivation; m itself stays column-major.
	a := [4][4]float32{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}

	var cof [4][4]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			cof[i][j] = cofactor3x3(a, i, j)
		}
	}

	det := a[0][0]*cof[0][0] + a[0][1]*cof[0][1] + a[0][2]*cof[0][2] + a[0][3]*cof[0][3]
	if det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return Mat4{}, false
	}
	invDet := 1.0 / det

	// adjugate = transpose(cofactor matrix); row-major inv[row][col] is
	// cof[col][row]*invDet. Store it column-major: inv[col][row].
	var inv Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			inv[col][row] = cof[col][row] * invDet
		}
	}
	return inv, true
}

// cofactor3x3 is the signed determinant of the 3x3 minor of a (row-major)
// 4x4 matrix obtained by deleting row i and column j.
func cofactor3x3(a [4][4]float32, i, j int) float32 {
	var sub [3][3]float32
	sr := 0
	for r := 0; r < 4; r++ {
		if r == i {
			continue
		}
		sc := 0
		for c := 0; c < 4; c++ {
			if c == j {
				continue
			}
			sub[sr][sc] = a[r][c]
			sc++
		}
		sr++
	}
	det := sub[0][0]*(sub[1][1]*sub[2][2]-sub[1][2]*sub[2][1]) -
		sub[0][1]*(sub[1][0]*sub[2][2]-sub[1][2]*sub[2][0]) +
		sub[0][2]*(sub[1][0]*sub[2][1]-sub[1][1]*sub[2][0])
	if (i+j)%2 != 0 {
		det = -det
	}
	return det
}
