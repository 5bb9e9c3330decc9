package geom

import "pathtracer/math"

// Ray is an origin + direction; direction is not required to be normalized
// (the camera emits non-unit directions, per the teacher's own convention).
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
