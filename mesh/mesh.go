package mesh

import (
	"pathtracer/bvh"
	"pathtracer/core"
	"pathtracer/geom"
	"pathtracer/math"
)

// TriangleIndex re-exports bvh.TriangleIndex so callers outside this
// package (serialization, tests) don't need to import bvh just to build
// a triangle list.
type TriangleIndex = bvh.TriangleIndex

// CollisionStats counts the AABB and triangle tests a single Collide call
// performed, for render diagnostics.
type CollisionStats struct {
	AABBTests     int
	TriangleTests int
}

// Hit describes where a ray struck a Mesh, in the mesh's own local space.
type Hit struct {
	Point  math.Vec3
	Normal math.Vec3
	UV     math.Vec2
	T      float32
	Inside bool
}

// Mesh is vertices + triangle indices + the BVH built over them. Immutable
// after NewMesh — the BVH assumes the triangle order it was built with
// never changes.
type Mesh struct {
	Vertices  []core.Vertex
	Triangles []bvh.TriangleIndex
	tree      *bvh.BVH
}

// NewMesh builds the BVH over triangles and takes ownership of both
// slices (Build reorders triangles in place). A mesh with zero triangles
// is valid: it builds a single leaf spanning the empty range [0,0).
func NewMesh(vertices []core.Vertex, triangles []bvh.TriangleIndex) (*Mesh, error) {
	positions := make([]math.Vec3, len(vertices))
	for i, v := range vertices {
		positions[i] = v.Position
	}
	tree := bvh.Build(positions, triangles)
	return &Mesh{Vertices: vertices, Triangles: triangles, tree: tree}, nil
}

// Collide finds the closest triangle hit along ray within [minT, maxT],
// walking the BVH leaf-by-leaf and narrowing maxT as closer hits are
// found so later leaves can be rejected by their AABB test alone.
func (m *Mesh) Collide(ray geom.Ray, minT, maxT float32) (Hit, bool, CollisionStats) {
	var stats CollisionStats
	closestT := maxT
	var closest Hit
	found := false

	it := m.tree.Intersects(ray)
	for {
		begin, end, aabbTests, ok := it.Next(minT, closestT)
		stats.AABBTests += aabbTests
		if !ok {
			break
		}
		stats.TriangleTests += end - begin

		for _, tri := range m.Triangles[begin:end] {
			i, j, k := tri[0], tri[1], tri[2]
			pi, pj, pk := m.Vertices[i].Position, m.Vertices[j].Position, m.Vertices[k].Position
			t := geom.Triangle{Origin: pi, Side1: pj.Sub(pi), Side2: pk.Sub(pi)}

			hit, ok := geom.IntersectTriangle(t, ray, minT, closestT)
			if !ok || hit.T >= closestT || hit.T <= minT {
				continue
			}

			closestT = hit.T
			u, v := hit.U, hit.V
			w := 1 - u - v

			uv := m.Vertices[i].UV.Mul(w).Add(m.Vertices[j].UV.Mul(u)).Add(m.Vertices[k].UV.Mul(v))
			normal := m.Vertices[i].Normal.Mul(w).Add(m.Vertices[j].Normal.Mul(u)).Add(m.Vertices[k].Normal.Mul(v)).Normalize()
			if hit.Inside {
				normal = normal.Negate()
			}

			closest = Hit{
				Point:  ray.At(hit.T),
				Normal: normal,
				UV:     uv,
				T:      hit.T,
				Inside: hit.Inside,
			}
			found = true
		}
	}

	return closest, found, stats
}
