package tracer

import (
	"math/rand"
	"testing"

	"pathtracer/core"
	"pathtracer/geom"
	"pathtracer/materials"
	pmath "pathtracer/math"
	"pathtracer/mesh"
	"pathtracer/scene"
)

type goRand struct{ r *rand.Rand }

func (g goRand) Float32() float32 { return g.r.Float32() }

func buildLitCubeScene(t *testing.T) *scene.Scene {
	t.Helper()
	verts, tris := mesh.Box(pmath.NewVec3(1, 1, 1))
	m, err := mesh.NewMesh(verts, tris)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}

	camera := scene.NewCamera(pmath.NewVec3(0, 0, 5), pmath.Vec3Back, pmath.Vec3Up, 0.9)
	sc := scene.NewScene(camera, scene.Constant{Color: core.Color{R: 0.4, G: 0.4, B: 0.4}})

	meshHandle := sc.AddMesh(m)
	matHandle := sc.AddMaterial(materials.Lambertian{Color: core.ColorWhite})
	obj, err := scene.NewObject(meshHandle, pmath.Mat4Identity(), matHandle)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	if err := sc.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	return sc
}

func TestTraceStopsAtMaxDepth(t *testing.T) {
	sc := buildLitCubeScene(t)
	rng := goRand{r: rand.New(rand.NewSource(1))}
	ray := geom.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 0, -1)}

	color, stats := Trace(ray, sc, 5, 5, rng)
	if color != core.ColorBlack {
		t.Errorf("expected black at max depth, got %v", color)
	}
	if stats != (Stats{}) {
		t.Errorf("expected zero stats at max depth, got %+v", stats)
	}
}

func TestTraceMissReturnsEnvironment(t *testing.T) {
	sc := buildLitCubeScene(t)
	rng := goRand{r: rand.New(rand.NewSource(1))}
	ray := geom.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 1, 0)}

	color, _ := Trace(ray, sc, 0, 8, rng)
	constantEnv := sc.Environment.(scene.Constant)
	if color != constantEnv.Color {
		t.Errorf("expected environment color %v on a miss, got %v", constantEnv.Color, color)
	}
}

func TestTraceHitProducesNonNegativeRadiance(t *testing.T) {
	sc := buildLitCubeScene(t)
	rng := goRand{r: rand.New(rand.NewSource(7))}
	ray := geom.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 0, -1)}

	color, stats := Trace(ray, sc, 0, 8, rng)
	if color.R < 0 || color.G < 0 || color.B < 0 {
		t.Errorf("expected non-negative radiance, got %v", color)
	}
	if stats.TriangleTests == 0 {
		t.Error("expected at least one triangle test along a ray that hits the cube")
	}
}
