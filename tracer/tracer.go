package tracer

import (
	stdmath "math"

	"pathtracer/core"
	"pathtracer/geom"
	"pathtracer/materials"
	pmath "pathtracer/math"
	"pathtracer/scene"
)

// selfIntersectionEpsilon is the minimum hit distance a bounce ray is
// allowed to report, keeping a scattered ray from immediately
// re-striking the surface it just left due to floating point error.
const selfIntersectionEpsilon = 0.01

var farPlane = float32(stdmath.Inf(1))

// Stats accumulates BVH/triangle test counts across one full path,
// mirroring scene.Stats so a render driver can sum them across samples.
type Stats = scene.Stats

// Trace recursively estimates the radiance arriving along ray, bouncing
// up to maxDepth times before giving up and returning black. Each bounce
// asks the hit surface's material for a scattered ray, recurses on it,
// and combines the result as scattered*attenuation + emission; a miss
// samples the scene's environment instead.
func Trace(ray geom.Ray, sc *scene.Scene, depth, maxDepth int, rng pmath.RandSource) (core.Color, Stats) {
	if depth >= maxDepth {
		return core.ColorBlack, Stats{}
	}

	hit, ok, stats := sc.Hit(ray, selfIntersectionEpsilon, farPlane)
	if !ok {
		return sc.Environment.Sample(ray.Direction), stats
	}

	scatterHit := materials.HitInfo{
		Point:  hit.Point.Position,
		Normal: hit.Point.Normal,
		Inside: hit.Inside,
	}
	scatter := hit.Material.Scatter(ray.Direction, scatterHit, rng)

	nextRay := geom.Ray{Origin: scatter.Ray.Origin, Direction: scatter.Ray.Direction}
	scattered, childStats := Trace(nextRay, sc, depth+1, maxDepth, rng)

	stats.AABBTests += childStats.AABBTests
	stats.TriangleTests += childStats.TriangleTests

	color := scattered.MulElementWise(scatter.Attenuation).Add(scatter.Emission)
	return color, stats
}
