package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pathtracer/core"
	"pathtracer/geom"
	"pathtracer/materials"
	pmath "pathtracer/math"
	"pathtracer/mesh"
)

func buildSingleCubeScene(t *testing.T) *Scene {
	t.Helper()
	verts, tris := mesh.Box(pmath.NewVec3(1, 1, 1))
	m, err := mesh.NewMesh(verts, tris)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}

	camera := NewCamera(pmath.NewVec3(0, 0, 5), pmath.Vec3Back, pmath.Vec3Up, 0.9)
	sc := NewScene(camera, Constant{Color: core.Color{R: 0.1, G: 0.1, B: 0.1}})

	meshHandle := sc.AddMesh(m)
	matHandle := sc.AddMaterial(materials.Lambertian{Color: core.ColorWhite})
	obj, err := NewObject(meshHandle, pmath.Mat4Identity(), matHandle)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	if err := sc.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	return sc
}

func TestSceneHitTransformsIntoWorldSpace(t *testing.T) {
	sc := buildSingleCubeScene(t)
	ray := geom.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 0, -1)}

	hit, ok, _ := sc.Hit(ray, 0.001, 1e30)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(float64(hit.T-4)) > 1e-4 {
		t.Errorf("expected t=4, got %v", hit.T)
	}
	if hit.Point.Normal != pmath.Vec3Front {
		t.Errorf("expected world-space normal +Z, got %v", hit.Point.Normal)
	}
}

func TestObjectRejectsSingularTransform(t *testing.T) {
	degenerate := pmath.Mat4Scale(pmath.NewVec3(1, 0, 1))
	_, err := NewObject(0, degenerate, 0)
	if err == nil {
		t.Fatal("expected an error for a non-invertible transform")
	}
	var geomErr *core.GeometryError
	if !errors.As(err, &geomErr) {
		t.Errorf("expected a *core.GeometryError, got %T (%v)", err, err)
	}
}

func TestAddObjectRejectsOutOfRangeHandles(t *testing.T) {
	camera := NewCamera(pmath.NewVec3(0, 0, 5), pmath.Vec3Back, pmath.Vec3Up, 0.9)
	sc := NewScene(camera, Constant{Color: core.ColorBlack})

	verts, tris := mesh.Box(pmath.NewVec3(1, 1, 1))
	m, err := mesh.NewMesh(verts, tris)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	meshHandle := sc.AddMesh(m)
	matHandle := sc.AddMaterial(materials.Lambertian{Color: core.ColorWhite})

	obj, err := NewObject(meshHandle+1, pmath.Mat4Identity(), matHandle)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	if err := sc.AddObject(obj); err == nil {
		t.Fatal("expected an error for an out-of-range mesh handle")
	} else {
		var integrityErr *core.IntegrityError
		if !errors.As(err, &integrityErr) {
			t.Errorf("expected a *core.IntegrityError, got %T (%v)", err, err)
		}
	}

	obj, err = NewObject(meshHandle, pmath.Mat4Identity(), matHandle+1)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	if err := sc.AddObject(obj); err == nil {
		t.Fatal("expected an error for an out-of-range material handle")
	} else {
		var integrityErr *core.IntegrityError
		if !errors.As(err, &integrityErr) {
			t.Errorf("expected a *core.IntegrityError, got %T (%v)", err, err)
		}
	}
}

func TestSceneSerializationRoundTrip(t *testing.T) {
	sc := buildSingleCubeScene(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := sc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved scene: %v", err)
	}
	if !strings.Contains(string(raw), `"ConstantEnvironment"`) {
		t.Errorf("expected the saved scene to use the %q wire discriminator, got:\n%s", "ConstantEnvironment", raw)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Objects) != len(sc.Objects) {
		t.Fatalf("expected %d objects, got %d", len(sc.Objects), len(loaded.Objects))
	}
	if loaded.Camera.FOV != sc.Camera.FOV {
		t.Errorf("camera FOV mismatch: want %v, got %v", sc.Camera.FOV, loaded.Camera.FOV)
	}

	ray := geom.Ray{Origin: pmath.NewVec3(0, 0, 5), Direction: pmath.NewVec3(0, 0, -1)}
	_, ok, _ := loaded.Hit(ray, 0.001, 1e30)
	if !ok {
		t.Error("expected a hit in the round-tripped scene")
	}
}

func TestConstantEnvironmentIsUniform(t *testing.T) {
	env := Constant{Color: core.Color{R: 0.5, G: 0.6, B: 0.7}}
	dirs := []pmath.Vec3{pmath.Vec3Up, pmath.Vec3Front, pmath.NewVec3(1, 1, 1).Normalize()}
	for _, d := range dirs {
		if env.Sample(d) != env.Color {
			t.Errorf("Constant.Sample(%v): expected uniform color %v, got %v", d, env.Color, env.Sample(d))
		}
	}
}

func TestSkySunDirectionHitsSunColorExactly(t *testing.T) {
	sky := DefaultSkyPresets()["noon"]
	got := sky.Sample(sky.SunDirection.Negate())
	if got != sky.SunColor {
		t.Errorf("expected looking straight at the sun to return SunColor exactly, got %v", got)
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
