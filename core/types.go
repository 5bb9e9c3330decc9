package core

import (
	"pathtracer/math"
)

// Color is a linear-light RGB radiance/reflectance value. No alpha channel:
// the renderer has no notion of transparency outside the Dielectric
// material's refraction, which is handled as a scatter direction, not a
// blend.
type Color struct {
	R, G, B float32
}

var (
	ColorWhite = Color{1, 1, 1}
	ColorBlack = Color{0, 0, 0}
)

func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

func (c Color) Mul(scalar float32) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MulElementWise is the per-channel attenuation product used when a path
// bounces off a surface: throughput = throughput * albedo.
func (c Color) MulElementWise(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

func (c Color) Div(n float32) Color {
	return Color{c.R / n, c.G / n, c.B / n}
}

// Vertex is a mesh vertex with the per-vertex attributes a path tracer
// needs — position, shading normal, and a UV slot reserved for future
// texture lookups. No tangent/bitangent: normal mapping is out of scope.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}
