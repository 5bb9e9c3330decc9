package geom

import (
	stdmath "math"

	"pathtracer/math"
)

// AABB is an axis-aligned bounding box. EMPTY and UNIVERSE are the two
// sentinel values a BVH builder needs: EMPTY is the identity for Union
// (nothing has been expanded into it yet), UNIVERSE never clips a ray.
type AABB struct {
	Min, Max math.Vec3
}

var (
	negInf = float32(stdmath.Inf(-1))
	posInf = float32(stdmath.Inf(1))
)

var EMPTY = AABB{
	Min: math.Vec3{X: posInf, Y: posInf, Z: posInf},
	Max: math.Vec3{X: negInf, Y: negInf, Z: negInf},
}

var UNIVERSE = AABB{
	Min: math.Vec3{X: negInf, Y: negInf, Z: negInf},
	Max: math.Vec3{X: posInf, Y: posInf, Z: posInf},
}

func NewAABB(c1, c2 math.Vec3) AABB {
	return AABB{Min: c1.Min(c2), Max: c1.Max(c2)}
}

func Union(left, right AABB) AABB {
	return AABB{Min: left.Min.Min(right.Min), Max: left.Max.Max(right.Max)}
}

func UnionMany(boxes []AABB) AABB {
	u := EMPTY
	for _, b := range boxes {
		u = Union(u, b)
	}
	return u
}

// Expand grows the box, in place, to enclose point.
func (a *AABB) Expand(point math.Vec3) {
	a.Min = a.Min.Min(point)
	a.Max = a.Max.Max(point)
}

// Pad nudges the box outward by one float32 epsilon on every axis, so a
// leaf AABB built from a single flat triangle still has a non-zero slab
// width along its normal direction.
func (a AABB) Pad() AABB {
	const eps = float32(1.1920929e-7) // float32 epsilon, matches f32::EPSILON
	e := math.Vec3{X: eps, Y: eps, Z: eps}
	return AABB{Min: a.Min.Sub(e), Max: a.Max.Add(e)}
}

// Intersects runs the slab test against ray restricted to [minT, maxT],
// returning the entry distance and whether the ray hits the box at all.
func (a AABB) Intersects(ray Ray, minT, maxT float32) (float32, bool) {
	invDir := ray.Direction.Reciprocal()
	t0s := a.Min.Sub(ray.Origin).MulVec(invDir)
	t1s := a.Max.Sub(ray.Origin).MulVec(invDir)

	tSmaller := t0s.Min(t1s)
	tBigger := t0s.Max(t1s)

	tmin := maxComponent(tSmaller)
	if minT > tmin {
		tmin = minT
	}
	tmax := minComponent(tBigger)
	if maxT < tmax {
		tmax = maxT
	}

	if tmin < tmax {
		return tmin, true
	}
	return 0, false
}

func maxComponent(v math.Vec3) float32 {
	m := v.X
	if v.Y > m {
		m = v.Y
	}
	if v.Z > m {
		m = v.Z
	}
	return m
}

func minComponent(v math.Vec3) float32 {
	m := v.X
	if v.Y < m {
		m = v.Y
	}
	if v.Z < m {
		m = v.Z
	}
	return m
}
