package ioadapt

import (
	"os"
	"path/filepath"
	"testing"

	"pathtracer/materials"
)

const sampleOBJ = `
o triangle
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`

const sampleOBJWithQuad = `
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadOBJTriangulatesFace(t *testing.T) {
	path := writeTemp(t, "tri.obj", sampleOBJ)

	groups, mats, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Triangles) != 1 {
		t.Errorf("expected 1 triangle, got %d", len(groups[0].Triangles))
	}
	if len(mats) != 0 {
		t.Errorf("expected no materials without mtllib, got %d", len(mats))
	}
}

func TestLoadOBJFanTriangulatesQuad(t *testing.T) {
	path := writeTemp(t, "quad.obj", sampleOBJWithQuad)

	groups, _, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(groups[0].Triangles) != 2 {
		t.Errorf("expected a quad to fan-triangulate into 2 triangles, got %d", len(groups[0].Triangles))
	}
}

func TestLoadOBJEmptyFileErrors(t *testing.T) {
	path := writeTemp(t, "empty.obj", "# just a comment\n")
	if _, _, err := LoadOBJ(path); err == nil {
		t.Error("expected an error for an OBJ file with no geometry")
	}
}

const sampleMTL = `
newmtl glass
Kd 1 1 1
d 0.1

newmtl chrome
Kd 0.8 0.8 0.8
Ns 900

newmtl wall
Kd 0.5 0.5 0.5
`

func TestLoadMTLClassifiesMaterials(t *testing.T) {
	path := writeTemp(t, "mats.mtl", sampleMTL)

	mats, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL: %v", err)
	}
	if len(mats) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(mats))
	}
	if _, ok := mats["glass"].(materials.Dielectric); !ok {
		t.Errorf("expected glass (d<1) to become Dielectric, got %T", mats["glass"])
	}
	if _, ok := mats["chrome"].(materials.Metal); !ok {
		t.Errorf("expected chrome (high Ns) to become Metal, got %T", mats["chrome"])
	}
	if _, ok := mats["wall"].(materials.Lambertian); !ok {
		t.Errorf("expected wall (plain Kd) to become Lambertian, got %T", mats["wall"])
	}
}
