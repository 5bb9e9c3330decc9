package scene

import (
	"pathtracer/core"
	"pathtracer/math"
)

// Environment is the closed set of "miss shaders": what a ray that hits
// nothing contributes to the image.
type Environment interface {
	Sample(direction math.Vec3) core.Color
}

// Constant returns the same radiance regardless of direction — a flat
// ambient fill, useful for isolating geometry/material bugs from
// lighting bugs.
type Constant struct {
	Color core.Color
}

func (c Constant) Sample(_ math.Vec3) core.Color {
	return c.Color
}

// Sky is a simple procedural sky: a bright sun disc around -SunDirection
// (SunDirection is the direction sunlight travels), covering every
// direction whose cosine with it exceeds 1-SunSize, and a vertical
// gradient between UpColor and DownColor everywhere else.
type Sky struct {
	SunDirection math.Vec3
	SunColor     core.Color
	UpColor      core.Color
	DownColor    core.Color
	SunSize      float32
}

func (s Sky) Sample(direction math.Vec3) core.Color {
	v := -s.SunDirection.Dot(direction.Normalize())
	if v > 1-s.SunSize {
		return s.SunColor
	}
	u := direction.Y
	return s.UpColor.Mul(u).Add(s.DownColor.Mul(1 - u))
}
