package scene

import (
	stdmath "math"

	"pathtracer/geom"
	"pathtracer/math"
)

// Camera is a pinhole camera: an origin, a forward direction, an up hint
// (re-orthogonalized against direction by RayFor on each call), and a
// field of view.
type Camera struct {
	Origin    math.Vec3
	Direction math.Vec3
	Up        math.Vec3
	FOV       float32
}

func NewCamera(origin, direction, up math.Vec3, fov float32) Camera {
	return Camera{
		Origin:    origin,
		Direction: direction.Normalize(),
		Up:        up.Normalize(),
		FOV:       fov,
	}
}

// RayFor constructs a jittered primary ray through pixel (row, col) of a
// sourceWidth x sourceHeight frame (the full image; when rendering a
// tile, the caller has already offset row/col into that full frame).
//
// tanFOV uses tan(fov) rather than tan(fov/2): an intentionally
// preserved quirk of the reference renderer this engine's camera model
// was carried over from — halving the field of view produces a
// materially different image, so it is not "fixed" here.
func (c Camera) RayFor(row, col, sourceWidth, sourceHeight int, rng math.RandSource) geom.Ray {
	right := c.Direction.Cross(c.Up)
	up := right.Cross(c.Direction)

	tanFOV := float32(stdmath.Tan(float64(c.FOV)))
	aspectRatio := float32(sourceHeight) / float32(sourceWidth)

	relativeX := ((float32(col)+rng.Float32())/float32(sourceWidth) - 0.5) * tanFOV
	relativeY := (-(float32(row)+rng.Float32())/float32(sourceHeight) + 0.5) * tanFOV * aspectRatio

	pixelInPlane := right.Mul(relativeX).Add(up.Mul(relativeY))
	direction := c.Direction.Add(pixelInPlane)

	return geom.Ray{Origin: c.Origin, Direction: direction}
}
