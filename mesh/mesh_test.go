package mesh

import (
	"math"
	"testing"

	gmath "pathtracer/geom"
	pmath "pathtracer/math"
)

func TestEmptyMeshBuildsAndMisses(t *testing.T) {
	m, err := NewMesh(nil, nil)
	if err != nil {
		t.Fatalf("expected an empty mesh to build without error, got %v", err)
	}

	ray := gmath.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 0, -1)}
	if _, ok, _ := m.Collide(ray, 0.001, 1e30); ok {
		t.Error("expected no hit against an empty mesh")
	}
}

func TestAxisAlignedCubeHitAtExpectedDistance(t *testing.T) {
	verts, tris := Box(pmath.NewVec3(1, 1, 1))
	m, err := NewMesh(verts, tris)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}

	ray := gmath.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 0, -1)}
	hit, ok, _ := m.Collide(ray, 0.001, 1e30)
	if !ok {
		t.Fatal("expected a hit on the +Z face")
	}
	if math.Abs(float64(hit.T-4)) > 1e-4 {
		t.Errorf("expected t=4 (cube face at z=1, ray from z=5), got %v", hit.T)
	}
	if hit.Normal != pmath.Vec3Front {
		t.Errorf("expected +Z face normal, got %v", hit.Normal)
	}
}

func TestMeshCollideMissesOutsideBounds(t *testing.T) {
	verts, tris := Box(pmath.NewVec3(1, 1, 1))
	m, err := NewMesh(verts, tris)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}

	ray := gmath.Ray{Origin: pmath.NewVec3(10, 10, 10), Direction: pmath.NewVec3(1, 0, 0)}
	if _, ok, _ := m.Collide(ray, 0.001, 1e30); ok {
		t.Error("expected no hit for a ray pointing away from the box")
	}
}
