package math

import (
	stdmath "math"
	"math/rand"
)

// RandSource returns the next value from rng in [0, 1). Kept as a
// standalone seam so callers don't need to know which *rand.Rand they hold.
type RandSource interface {
	Float32() float32
}

// goRand adapts *rand.Rand to RandSource. Each render worker gets its own
// instance — *rand.Rand is not safe for concurrent use.
type goRand struct{ r *rand.Rand }

// NewRand returns a RandSource seeded deterministically from seed, so a
// render of the same scene with the same seed reproduces the same image.
func NewRand(seed int64) RandSource {
	return goRand{r: rand.New(rand.NewSource(seed))}
}

func (g goRand) Float32() float32 { return g.r.Float32() }

// Reflect mirrors vec about normal: vec - 2*dot(normal,vec)*normal.
// Used by Metal scatter and by the dielectric's reflect branch (total
// internal reflection or a Schlick-sampled reflection).
func Reflect(vec, normal Vec3) Vec3 {
	return vec.Sub(normal.Mul(2 * normal.Dot(vec)))
}

// MulElementWise is the componentwise (Hadamard) product of two vectors.
// The path tracer's color attenuation uses core.Color.MulElementWise, not
// this.
func MulElementWise(a, b Vec3) Vec3 {
	return a.MulVec(b)
}

// RandomUniformUnitSphere draws a point uniformly distributed on the unit
// sphere via Archimedes' inversion method: a uniform z in [-1,1] and a
// uniform azimuth around the resulting ring have constant density over
// the whole sphere, with no rejection sampling needed.
func RandomUniformUnitSphere(rng RandSource) Vec3 {
	u := rng.Float32()*2 - 1
	theta := rng.Float32() * 2 * float32(stdmath.Pi)

	ringRadius := float32(stdmath.Sqrt(float64(1 - u*u)))

	return Vec3{
		X: ringRadius * float32(stdmath.Cos(float64(theta))),
		Y: ringRadius * float32(stdmath.Sin(float64(theta))),
		Z: u,
	}
}
