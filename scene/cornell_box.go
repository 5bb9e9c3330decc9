package scene

import (
	"pathtracer/core"
	"pathtracer/materials"
	"pathtracer/math"
	"pathtracer/mesh"
)

const halfPi = float32(1.5707963)

// BuildCornellBox assembles the classic five-wall box test fixture (left
// wall red, right wall green, back/floor/ceiling white, a small emissive
// quad on the ceiling as the only light) out of the procedural quad
// generator, for property tests that need a scene heavier than a single
// primitive but still exactly reproducible.
func BuildCornellBox() (*Scene, error) {
	const half = float32(2.5)

	white := materials.Lambertian{Color: core.Color{R: 0.73, G: 0.73, B: 0.73}}
	red := materials.Lambertian{Color: core.Color{R: 0.65, G: 0.05, B: 0.05}}
	green := materials.Lambertian{Color: core.Color{R: 0.12, G: 0.45, B: 0.15}}
	light := materials.Lambertian{Emission: core.Color{R: 15, G: 15, B: 15}}

	camera := NewCamera(math.NewVec3(0, 0, half*2), math.Vec3Back, math.Vec3Up, 0.7)
	env := Constant{Color: core.ColorBlack}
	sc := NewScene(camera, env)

	// Quad() faces +Y by default, spanning X (width) and Z (depth).
	addWall := func(rotation math.Mat4, translation math.Vec3, size float32, mat materials.Material) error {
		verts, tris := mesh.Quad(size, size, 1)
		m, err := mesh.NewMesh(verts, tris)
		if err != nil {
			return err
		}
		meshHandle := sc.AddMesh(m)
		matHandle := sc.AddMaterial(mat)
		transform := math.Mat4Translation(translation).Mul(rotation)
		obj, err := NewObject(meshHandle, transform, matHandle)
		if err != nil {
			return err
		}
		return sc.AddObject(obj)
	}

	// Floor: already faces +Y (up, into the box) with no rotation.
	if err := addWall(math.Mat4Identity(), math.NewVec3(0, -half, 0), half*2, white); err != nil {
		return nil, err
	}
	// Ceiling: flip to face -Y (down, into the box).
	if err := addWall(math.Mat4RotationX(2*halfPi), math.NewVec3(0, half, 0), half*2, white); err != nil {
		return nil, err
	}
	// Back wall: rotate +Y normal to +Z.
	if err := addWall(math.Mat4RotationX(halfPi), math.NewVec3(0, 0, -half), half*2, white); err != nil {
		return nil, err
	}
	// Left wall: rotate +Y normal to +X.
	if err := addWall(math.Mat4RotationZ(-halfPi), math.NewVec3(-half, 0, 0), half*2, red); err != nil {
		return nil, err
	}
	// Right wall: rotate +Y normal to -X.
	if err := addWall(math.Mat4RotationZ(halfPi), math.NewVec3(half, 0, 0), half*2, green); err != nil {
		return nil, err
	}
	// Ceiling light: a small emissive quad just below the ceiling,
	// facing down like the ceiling itself.
	if err := addWall(math.Mat4RotationX(2*halfPi), math.NewVec3(0, half-0.01, 0), half, light); err != nil {
		return nil, err
	}

	return sc, nil
}
