package mesh

import (
	"pathtracer/bvh"
	"pathtracer/core"
	"pathtracer/math"
)

// Quad generates a single flat rectangle centered at the origin, facing
// +Y, subdivisions+1 vertices per edge. Ported from the donor codebase's
// plane generator; stripped of its GPU-buffer upload half and vertex
// color (a path-traced surface's color lives on its Material, not its
// vertices).
func Quad(width, depth float32, subdivisions int) ([]core.Vertex, []bvh.TriangleIndex) {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []bvh.TriangleIndex

	halfW := width / 2
	halfD := depth / 2

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)

			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: -halfW + u*width, Y: 0, Z: -halfD + v*depth},
				Normal:   math.Vec3Up,
				UV:       math.Vec2{X: u, Y: v},
			})
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := z*(subdivisions+1) + x
			topRight := topLeft + 1
			bottomLeft := topLeft + subdivisions + 1
			bottomRight := bottomLeft + 1

			indices = append(indices, bvh.TriangleIndex{topLeft, bottomLeft, topRight})
			indices = append(indices, bvh.TriangleIndex{topRight, bottomLeft, bottomRight})
		}
	}

	return vertices, indices
}

// Box generates an axis-aligned box of the given half-extents as six
// independent quads (one per face, each with its own vertices so the
// normals stay flat/unshared at edges) — the same per-face approach the
// donor's plane generator takes for a single face, composed six times.
func Box(halfExtent math.Vec3) ([]core.Vertex, []bvh.TriangleIndex) {
	var vertices []core.Vertex
	var indices []bvh.TriangleIndex

	addFace := func(center, normal, right, up math.Vec3) {
		base := len(vertices)
		corners := [4]math.Vec3{
			center.Sub(right).Sub(up),
			center.Add(right).Sub(up),
			center.Add(right).Add(up),
			center.Sub(right).Add(up),
		}
		uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
		for i, c := range corners {
			vertices = append(vertices, core.Vertex{Position: c, Normal: normal, UV: uvs[i]})
		}
		indices = append(indices,
			bvh.TriangleIndex{base, base + 1, base + 2},
			bvh.TriangleIndex{base, base + 2, base + 3},
		)
	}

	x, y, z := halfExtent.X, halfExtent.Y, halfExtent.Z
	addFace(math.NewVec3(0, 0, z), math.Vec3Front, math.NewVec3(x, 0, 0), math.NewVec3(0, y, 0))
	addFace(math.NewVec3(0, 0, -z), math.Vec3Back, math.NewVec3(-x, 0, 0), math.NewVec3(0, y, 0))
	addFace(math.NewVec3(x, 0, 0), math.Vec3Right, math.NewVec3(0, 0, -z), math.NewVec3(0, y, 0))
	addFace(math.NewVec3(-x, 0, 0), math.Vec3Left, math.NewVec3(0, 0, z), math.NewVec3(0, y, 0))
	addFace(math.NewVec3(0, y, 0), math.Vec3Up, math.NewVec3(x, 0, 0), math.NewVec3(0, 0, -z))
	addFace(math.NewVec3(0, -y, 0), math.Vec3Down, math.NewVec3(x, 0, 0), math.NewVec3(0, 0, z))

	return vertices, indices
}
