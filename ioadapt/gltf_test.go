package ioadapt

import (
	"math"
	"testing"

	pmath "pathtracer/math"
)

func TestQuaternionToMat4Identity(t *testing.T) {
	m := quaternionToMat4(0, 0, 0, 1)
	identity := pmath.Mat4Identity()
	if m != identity {
		t.Errorf("identity quaternion should produce the identity matrix, got %v", m)
	}
}

func TestQuaternionToMat4RotatesVector(t *testing.T) {
	// 90 degree rotation about Y: (x,y,z,w) = (0, sin(45deg), 0, cos(45deg))
	half := math.Pi / 4
	m := quaternionToMat4(0, float32(math.Sin(half)), 0, float32(math.Cos(half)))

	rotated := m.MulVec3(pmath.Vec3{X: 0, Y: 0, Z: 1})
	want := pmath.Vec3{X: 1, Y: 0, Z: 0}

	if rotated.Sub(want).Length() > 1e-4 {
		t.Errorf("expected +Z rotated 90deg about Y to land near +X, got %v", rotated)
	}
}
