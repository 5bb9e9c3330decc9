package materials

import (
	"encoding/json"
	"fmt"
	stdmath "math"

	"pathtracer/core"
	"pathtracer/math"
)

// HitInfo is the subset of a surface hit a material needs to compute a
// scattered ray — the world-space point, the shading normal (flipped to
// face the incoming ray already), and whether the ray struck the
// triangle's back face.
type HitInfo struct {
	Point   math.Vec3
	Normal  math.Vec3
	Inside  bool
}

// ScatterInfo is what a material hands back to the path tracer: the next
// ray to trace, the attenuation to multiply the recursive result by, and
// any light this surface emits on its own.
type ScatterInfo struct {
	Ray         Ray
	Attenuation core.Color
	Emission    core.Color
}

// Ray mirrors geom.Ray; materials only need origin+direction, so a local
// type keeps this package from importing geom.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// Material is the closed set of BSDFs a surface can have. Scatter draws
// one Monte-Carlo sample of the material's scattering distribution;
// inDirection is the incoming ray direction, not required to be unit
// length.
type Material interface {
	Scatter(inDirection math.Vec3, hit HitInfo, rng math.RandSource) ScatterInfo
}

// Lambertian is a perfectly diffuse surface: the scatter direction is
// cosine-weighted by construction (a uniform point on the unit sphere,
// offset by the normal, then renormalized — the classic "random in
// sphere + normal" trick).
type Lambertian struct {
	Color    core.Color
	Emission core.Color
}

func (m Lambertian) Scatter(_ math.Vec3, hit HitInfo, rng math.RandSource) ScatterInfo {
	direction := math.RandomUniformUnitSphere(rng).Add(hit.Normal).Normalize()
	return ScatterInfo{
		Ray:         Ray{Origin: hit.Point, Direction: direction},
		Attenuation: m.Color,
		Emission:    m.Emission,
	}
}

// Dielectric is a transparent refractive surface (glass, water) whose
// reflect/refract choice is drawn stochastically per Schlick's
// approximation of the Fresnel reflectance, rather than splitting the
// ray into both a reflected and a refracted contribution.
type Dielectric struct {
	RefractionIndex float32
}

func (m Dielectric) Scatter(inDirection math.Vec3, hit HitInfo, rng math.RandSource) ScatterInfo {
	n := m.RefractionIndex
	if hit.Inside {
		n = 1.0 / n
	}
	in := inDirection.Normalize()
	normal := hit.Normal

	cos := -in.Dot(normal)

	outTangential := in.Add(normal.Mul(cos)).Div(n)
	a := 1 - outTangential.LengthSqr()

	var direction math.Vec3
	if a < 0 || dielectricReflectance(cos, n) > rng.Float32() {
		direction = math.Reflect(in, normal)
	} else {
		sqrtA := sqrtf(a)
		direction = outTangential.Sub(normal.Mul(sqrtA))
	}

	return ScatterInfo{
		Ray:         Ray{Origin: hit.Point, Direction: direction},
		Attenuation: core.ColorWhite,
		Emission:    core.ColorBlack,
	}
}

func dielectricReflectance(cosine, n float32) float32 {
	r0 := (1 - n) / (1 + n)
	r0 = r0 * r0
	return r0 + (1-r0)*powf(1-cosine, 5)
}

// Metal is a perfectly specular reflector perturbed by Roughness — 0 is
// a mirror, larger values blur the reflection by jittering the reflected
// direction with a scaled random unit vector.
type Metal struct {
	Color     core.Color
	Roughness float32
}

func (m Metal) Scatter(inDirection math.Vec3, hit HitInfo, rng math.RandSource) ScatterInfo {
	direction := math.Reflect(inDirection, hit.Normal).Add(math.RandomUniformUnitSphere(rng).Mul(m.Roughness))
	return ScatterInfo{
		Ray:         Ray{Origin: hit.Point, Direction: direction},
		Attenuation: m.Color,
		Emission:    core.ColorBlack,
	}
}

// ── JSON tagged union ───────────────────────────────────────────────────

type materialDoc struct {
	Type            string     `json:"type"`
	Color           *core.Color `json:"color,omitempty"`
	Emission        *core.Color `json:"emission,omitempty"`
	RefractionIndex float32    `json:"refraction_index,omitempty"`
	Roughness       float32    `json:"roughness,omitempty"`
}

// MarshalJSON encodes the concrete material under a "type" discriminator,
// the same closed-sum-type idiom the donor scene document uses for the
// rest of the persisted scene.
func MarshalJSON(m Material) ([]byte, error) {
	switch v := m.(type) {
	case Lambertian:
		return json.Marshal(materialDoc{Type: "Lambertian", Color: &v.Color, Emission: &v.Emission})
	case Dielectric:
		return json.Marshal(materialDoc{Type: "Dielectric", RefractionIndex: v.RefractionIndex})
	case Metal:
		return json.Marshal(materialDoc{Type: "Metal", Color: &v.Color, Roughness: v.Roughness})
	default:
		return nil, fmt.Errorf("materials: unknown material type %T", m)
	}
}

// UnmarshalJSON decodes a material document back into its concrete type
// based on the "type" discriminator.
func UnmarshalJSON(data []byte) (Material, error) {
	var doc materialDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("materials: decode: %w", err)
	}
	switch doc.Type {
	case "Lambertian":
		m := Lambertian{}
		if doc.Color != nil {
			m.Color = *doc.Color
		}
		if doc.Emission != nil {
			m.Emission = *doc.Emission
		}
		return m, nil
	case "Dielectric":
		return Dielectric{RefractionIndex: doc.RefractionIndex}, nil
	case "Metal":
		m := Metal{Roughness: doc.Roughness}
		if doc.Color != nil {
			m.Color = *doc.Color
		}
		return m, nil
	default:
		return nil, fmt.Errorf("materials: unknown material type %q", doc.Type)
	}
}

func sqrtf(x float32) float32 {
	return float32(stdmath.Sqrt(float64(x)))
}

func powf(x, p float32) float32 {
	return float32(stdmath.Pow(float64(x), float64(p)))
}
