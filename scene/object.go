package scene

import (
	"pathtracer/core"
	"pathtracer/math"
)

// MeshHandle and MaterialHandle are dense indices into a Scene's arenas,
// matching the donor's handle-based Object model — a JSON-serializable
// scene document can't carry raw pointers.
type MeshHandle int
type MaterialHandle int

// Object places a mesh in world space with a material. invTransform and
// normalMat are cached at construction time (and whenever Transform
// changes) so every ray hit against this object reuses them instead of
// re-inverting a 4x4 matrix per ray.
type Object struct {
	Transform    math.Mat4
	invTransform math.Mat4
	// normalMat is transpose(inverse(upper-left 3x3 of Transform)) —
	// the standard correction so normals survive non-uniform scale.
	// Since invTransform already holds inverse(Transform), this is just
	// one transpose of its upper-left block, not a second inversion.
	normalMat math.Mat3
	Mesh      MeshHandle
	Material  MaterialHandle
}

// NewObject builds an Object and fails loudly if transform is singular —
// a degenerate placement (zero scale on some axis) cannot be ray-traced.
func NewObject(mesh MeshHandle, transform math.Mat4, material MaterialHandle) (Object, error) {
	inv, ok := transform.Inverse()
	if !ok {
		return Object{}, core.NewGeometryError("object transform is not invertible")
	}
	return Object{
		Transform:    transform,
		invTransform: inv,
		normalMat:    inv.UpperLeft3x3().Transpose(),
		Mesh:         mesh,
		Material:     material,
	}, nil
}

// SetTransform replaces the object's transform, recomputing the cached
// inverse and normal matrix in the same step.
func (o *Object) SetTransform(transform math.Mat4) error {
	inv, ok := transform.Inverse()
	if !ok {
		return core.NewGeometryError("object transform is not invertible")
	}
	o.Transform = transform
	o.invTransform = inv
	o.normalMat = inv.UpperLeft3x3().Transpose()
	return nil
}

// ToLocal transforms ray into this object's local space.
func (o Object) ToLocal(origin, direction math.Vec3) (math.Vec3, math.Vec3) {
	return o.invTransform.MulVec3(origin), o.invTransform.MulDirection(direction)
}

// NormalToWorld carries a local-space shading normal back to world space
// using the inverse-transpose normal matrix, so non-uniform scale never
// skews the normal.
func (o Object) NormalToWorld(localNormal math.Vec3) math.Vec3 {
	return o.normalMat.MulVec3(localNormal).Normalize()
}

// PointToWorld carries a local-space hit point back to world space.
func (o Object) PointToWorld(localPoint math.Vec3) math.Vec3 {
	return o.Transform.MulVec3(localPoint)
}
