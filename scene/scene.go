package scene

import (
	"pathtracer/core"
	"pathtracer/geom"
	"pathtracer/materials"
	"pathtracer/mesh"
)

// HitInfo is a world-space surface hit returned from Scene.Hit, ready for
// a material's Scatter call.
type HitInfo struct {
	Point    core.Vertex // Position/Normal carry the hit; UV unused here
	Material materials.Material
	T        float32
	Inside   bool
}

// Stats accumulates BVH/triangle test counts across everything a single
// Scene.Hit call touched, for render diagnostics.
type Stats struct {
	AABBTests     int
	TriangleTests int
}

// Scene is an arena of meshes and materials plus a flat list of placed
// Objects, a Camera, and an Environment. Meshes/materials are referenced
// by dense handle (index) rather than pointer so the whole scene can
// round-trip through a JSON document.
type Scene struct {
	meshes      []*mesh.Mesh
	materialSet []materials.Material
	Objects     []Object
	Camera      Camera
	Environment Environment
}

func NewScene(camera Camera, environment Environment) *Scene {
	return &Scene{Camera: camera, Environment: environment}
}

func (s *Scene) AddMesh(m *mesh.Mesh) MeshHandle {
	s.meshes = append(s.meshes, m)
	return MeshHandle(len(s.meshes) - 1)
}

func (s *Scene) AddMaterial(m materials.Material) MaterialHandle {
	s.materialSet = append(s.materialSet, m)
	return MaterialHandle(len(s.materialSet) - 1)
}

// AddObject appends an Object, after checking that its Mesh/Material
// handles actually resolve within this Scene's arenas. A handle read back
// from a corrupted or hand-edited scene document can point past the end of
// either arena; that's an IntegrityError, distinct from the GeometryError
// raised when an Object's own transform is malformed.
func (s *Scene) AddObject(o Object) error {
	if int(o.Mesh) < 0 || int(o.Mesh) >= len(s.meshes) {
		return core.NewIntegrityError("object references out-of-range mesh handle")
	}
	if int(o.Material) < 0 || int(o.Material) >= len(s.materialSet) {
		return core.NewIntegrityError("object references out-of-range material handle")
	}
	s.Objects = append(s.Objects, o)
	return nil
}

// Hit finds the closest surface hit across every Object in the scene,
// transforming each ray into object-local space to query its Mesh and
// transforming the result back out to world space. The local-space t is
// compared across objects as is, without rescaling by the length of the
// transformed direction, so the closest hit is only exact when every
// Object's transform has unit scale.
func (s *Scene) Hit(ray geom.Ray, minT, maxT float32) (HitInfo, bool, Stats) {
	var best HitInfo
	found := false
	var stats Stats

	closest := maxT
	for _, obj := range s.Objects {
		localOrigin, localDir := obj.ToLocal(ray.Origin, ray.Direction)
		localRay := geom.Ray{Origin: localOrigin, Direction: localDir}

		hit, ok, hitStats := s.meshes[obj.Mesh].Collide(localRay, minT, closest)
		stats.AABBTests += hitStats.AABBTests
		stats.TriangleTests += hitStats.TriangleTests
		if !ok || hit.T >= closest {
			continue
		}

		closest = hit.T
		worldPoint := obj.PointToWorld(hit.Point)
		worldNormal := obj.NormalToWorld(hit.Normal)

		best = HitInfo{
			Point:    core.Vertex{Position: worldPoint, Normal: worldNormal, UV: hit.UV},
			Material: s.materialSet[obj.Material],
			T:        hit.T,
			Inside:   hit.Inside,
		}
		found = true
	}

	return best, found, stats
}
