package ioadapt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pathtracer/core"
	pmath "pathtracer/math"
	"pathtracer/materials"
	"pathtracer/mesh"
)

// ObjectGroup is one "o"/"g" group parsed out of a Wavefront .obj file,
// already triangulated and ready to hand to mesh.NewMesh.
type ObjectGroup struct {
	Name      string
	Vertices  []core.Vertex
	Triangles []mesh.TriangleIndex
	Material  string // material name reference, resolved against LoadMTL's map
}

// LoadOBJ parses a Wavefront .obj file into one ObjectGroup per "o"/"g"
// group, fan-triangulating any n-gon faces, and returns any materials
// referenced via "mtllib" lines.
func LoadOBJ(path string) ([]ObjectGroup, map[string]materials.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, core.NewLoadError(path, err)
	}
	defer f.Close()

	matSet := make(map[string]materials.Material)

	var positions []pmath.Vec3
	var normals []pmath.Vec3
	var uvs []pmath.Vec2

	var groups []ObjectGroup
	current := ObjectGroup{Name: "default"}
	currentMaterial := ""
	vertexMap := make(map[string]int)

	flush := func() {
		if len(current.Vertices) > 0 {
			groups = append(groups, current)
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				positions = append(positions, parseVec3(parts[1:4]))
			}
		case "vn":
			if len(parts) >= 4 {
				normals = append(normals, parseVec3(parts[1:4]))
			}
		case "vt":
			if len(parts) >= 3 {
				u, _ := strconv.ParseFloat(parts[1], 32)
				v, _ := strconv.ParseFloat(parts[2], 32)
				uvs = append(uvs, pmath.Vec2{X: float32(u), Y: float32(v)})
			}
		case "f":
			faceVerts := make([]int, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				if idx, ok := vertexMap[faceStr]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				vertex := parseFaceVertex(faceStr, positions, normals, uvs)
				newIdx := len(current.Vertices)
				current.Vertices = append(current.Vertices, vertex)
				vertexMap[faceStr] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}
			for i := 2; i < len(faceVerts); i++ {
				current.Triangles = append(current.Triangles,
					mesh.TriangleIndex{faceVerts[0], faceVerts[i-1], faceVerts[i]})
			}

		case "o", "g":
			flush()
			name := "unnamed"
			if len(parts) > 1 {
				name = parts[1]
			}
			current = ObjectGroup{Name: name, Material: currentMaterial}
			vertexMap = make(map[string]int)

		case "usemtl":
			if len(parts) > 1 {
				currentMaterial = parts[1]
				current.Material = currentMaterial
			}

		case "mtllib":
			if len(parts) > 1 {
				mtlPath := filepath.Join(filepath.Dir(path), parts[1])
				mtls, err := LoadMTL(mtlPath)
				if err != nil {
					fmt.Printf("Warning: failed to load MTL file %s: %v\n", mtlPath, err)
				} else {
					for k, v := range mtls {
						matSet[k] = v
					}
				}
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, nil, core.NewLoadError(path, err)
	}
	if len(groups) == 0 {
		return nil, nil, core.NewGeometryError(fmt.Sprintf("no mesh data found in %s", path))
	}

	return groups, matSet, nil
}

// mtlRecord accumulates a single "newmtl" block before it's converted
// into a concrete materials.Material — the OBJ/MTL dialect doesn't carry
// enough information up front to know which of Lambertian/Dielectric/
// Metal a block describes until all of its fields have been read.
type mtlRecord struct {
	diffuse    core.Color
	shininess  float32
	opacity    float32
	hasOpacity bool
}

// LoadMTL parses a Wavefront .mtl file, mapping each block onto the
// closest of Lambertian/Dielectric/Metal: a block with opacity below 1
// becomes Dielectric (glass-like), a high-shininess opaque block becomes
// Metal with roughness derived from Ns, and everything else is
// Lambertian.
func LoadMTL(path string) (map[string]materials.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := make(map[string]*mtlRecord)
	order := make([]string, 0)
	var currentName string
	var current *mtlRecord

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "newmtl":
			if len(parts) > 1 {
				currentName = parts[1]
				current = &mtlRecord{diffuse: core.Color{R: 0.8, G: 0.8, B: 0.8}}
				records[currentName] = current
				order = append(order, currentName)
			}
		case "Kd":
			if current != nil && len(parts) >= 4 {
				current.diffuse = parseColor(parts[1:4])
			}
		case "Ns":
			if current != nil && len(parts) >= 2 {
				ns, _ := strconv.ParseFloat(parts[1], 32)
				current.shininess = float32(ns)
			}
		case "d":
			if current != nil && len(parts) >= 2 {
				d, _ := strconv.ParseFloat(parts[1], 32)
				current.opacity = float32(d)
				current.hasOpacity = true
			}
		case "Tr":
			if current != nil && len(parts) >= 2 {
				tr, _ := strconv.ParseFloat(parts[1], 32)
				current.opacity = 1 - float32(tr)
				current.hasOpacity = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	result := make(map[string]materials.Material, len(records))
	for _, name := range order {
		result[name] = toMaterial(records[name])
	}
	return result, nil
}

func toMaterial(r *mtlRecord) materials.Material {
	switch {
	case r.hasOpacity && r.opacity < 1:
		return materials.Dielectric{RefractionIndex: 1.5}
	case r.shininess > 500:
		roughness := 1 - r.shininess/1000
		if roughness < 0 {
			roughness = 0
		}
		return materials.Metal{Color: r.diffuse, Roughness: roughness}
	default:
		return materials.Lambertian{Color: r.diffuse}
	}
}

func parseVec3(fields []string) pmath.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return pmath.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

func parseColor(fields []string) core.Color {
	r, _ := strconv.ParseFloat(fields[0], 32)
	g, _ := strconv.ParseFloat(fields[1], 32)
	b, _ := strconv.ParseFloat(fields[2], 32)
	return core.Color{R: float32(r), G: float32(g), B: float32(b)}
}

// parseFaceVertex parses an OBJ face vertex spec like "v/vt/vn", resolving
// negative (relative-to-end) indices the same way the format allows.
func parseFaceVertex(spec string, positions []pmath.Vec3, normals []pmath.Vec3, uvs []pmath.Vec2) core.Vertex {
	v := core.Vertex{Normal: pmath.Vec3Up}

	parts := strings.Split(spec, "/")

	if len(parts) >= 1 && parts[0] != "" {
		idx, _ := strconv.Atoi(parts[0])
		if idx < 0 {
			idx = len(positions) + idx + 1
		}
		if idx > 0 && idx <= len(positions) {
			v.Position = positions[idx-1]
		}
	}

	if len(parts) >= 2 && parts[1] != "" {
		idx, _ := strconv.Atoi(parts[1])
		if idx < 0 {
			idx = len(uvs) + idx + 1
		}
		if idx > 0 && idx <= len(uvs) {
			v.UV = uvs[idx-1]
		}
	}

	if len(parts) >= 3 && parts[2] != "" {
		idx, _ := strconv.Atoi(parts[2])
		if idx < 0 {
			idx = len(normals) + idx + 1
		}
		if idx > 0 && idx <= len(normals) {
			v.Normal = normals[idx-1]
		}
	}

	return v
}
