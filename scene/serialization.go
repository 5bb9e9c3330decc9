package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"pathtracer/core"
	"pathtracer/materials"
	"pathtracer/math"
	"pathtracer/mesh"
)

// document is the top-level on-disk shape of a scene: meshes and
// materials as arenas, objects referencing them by index, plus camera
// and environment. A transform persists as 16 column-major floats, the
// same layout Mat4.ToColumnMajor16 produces.
type document struct {
	Meshes      []meshDoc       `json:"meshes"`
	Materials   []json.RawMessage `json:"materials"`
	Objects     []objectDoc     `json:"objects"`
	Camera      cameraDoc       `json:"camera"`
	Environment json.RawMessage `json:"environment"`
}

type vertexDoc struct {
	Position [3]float32 `json:"position"`
	Normal   [3]float32 `json:"normal"`
	UV       [2]float32 `json:"uv"`
}

type meshDoc struct {
	Vertices  []vertexDoc `json:"vertices"`
	Triangles [][3]int    `json:"triangles"`
}

type objectDoc struct {
	Mesh      int        `json:"mesh"`
	Material  int        `json:"material"`
	Transform [16]float32 `json:"transform"`
}

type cameraDoc struct {
	Origin    [3]float32 `json:"origin"`
	Direction [3]float32 `json:"direction"`
	Up        [3]float32 `json:"up"`
	FOV       float32    `json:"fov"`
}

type environmentDoc struct {
	Type         string     `json:"type"`
	Color        *[3]float32 `json:"color,omitempty"`
	SunDirection [3]float32 `json:"sun_direction,omitempty"`
	SunColor     [3]float32 `json:"sun_color,omitempty"`
	UpColor      [3]float32 `json:"up_color,omitempty"`
	DownColor    [3]float32 `json:"down_color,omitempty"`
	SunSize      float32    `json:"sun_size,omitempty"`
}

func vec3Array(v math.Vec3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }
func arrayVec3(a [3]float32) math.Vec3 { return math.Vec3{X: a[0], Y: a[1], Z: a[2]} }
func vec2Array(v math.Vec2) [2]float32 { return [2]float32{v.X, v.Y} }
func arrayVec2(a [2]float32) math.Vec2 { return math.Vec2{X: a[0], Y: a[1]} }
func colorArray(c core.Color) [3]float32 { return [3]float32{c.R, c.G, c.B} }
func arrayColor(a [3]float32) core.Color { return core.Color{R: a[0], G: a[1], B: a[2]} }

// Save writes the scene document to path as indented JSON, matching the
// donor's own SaveScene idiom.
func (s *Scene) Save(path string) error {
	doc := document{
		Camera: cameraDoc{
			Origin:    vec3Array(s.Camera.Origin),
			Direction: vec3Array(s.Camera.Direction),
			Up:        vec3Array(s.Camera.Up),
			FOV:       s.Camera.FOV,
		},
	}

	for _, m := range s.meshes {
		md := meshDoc{}
		for _, v := range m.Vertices {
			md.Vertices = append(md.Vertices, vertexDoc{
				Position: vec3Array(v.Position),
				Normal:   vec3Array(v.Normal),
				UV:       vec2Array(v.UV),
			})
		}
		for _, tri := range m.Triangles {
			md.Triangles = append(md.Triangles, [3]int{tri[0], tri[1], tri[2]})
		}
		doc.Meshes = append(doc.Meshes, md)
	}

	for _, mat := range s.materialSet {
		data, err := materials.MarshalJSON(mat)
		if err != nil {
			return core.NewIOError("marshal material", err)
		}
		doc.Materials = append(doc.Materials, data)
	}

	for _, obj := range s.Objects {
		doc.Objects = append(doc.Objects, objectDoc{
			Mesh:      int(obj.Mesh),
			Material:  int(obj.Material),
			Transform: obj.Transform.ToColumnMajor16(),
		})
	}

	envData, err := marshalEnvironment(s.Environment)
	if err != nil {
		return core.NewIOError("marshal environment", err)
	}
	doc.Environment = envData

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return core.NewIOError("marshal scene", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return core.NewIOError("write scene file", err)
	}
	return nil
}

// Load reads a scene document from path, rebuilding each mesh's BVH
// (the BVH itself is never persisted) and re-deriving each object's
// cached inverse/normal matrices.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, core.NewLoadError(path, fmt.Errorf("decode scene json: %w", err))
	}

	camera := NewCamera(
		arrayVec3(doc.Camera.Origin),
		arrayVec3(doc.Camera.Direction),
		arrayVec3(doc.Camera.Up),
		doc.Camera.FOV,
	)

	env, err := unmarshalEnvironment(doc.Environment)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	sc := NewScene(camera, env)

	for _, md := range doc.Meshes {
		vertices := make([]core.Vertex, len(md.Vertices))
		for i, vd := range md.Vertices {
			vertices[i] = core.Vertex{Position: arrayVec3(vd.Position), Normal: arrayVec3(vd.Normal), UV: arrayVec2(vd.UV)}
		}
		triangles := make([]mesh.TriangleIndex, len(md.Triangles))
		for i, t := range md.Triangles {
			triangles[i] = t
		}
		m, err := mesh.NewMesh(vertices, triangles)
		if err != nil {
			return nil, core.NewLoadError(path, err)
		}
		sc.AddMesh(m)
	}

	for _, raw := range doc.Materials {
		m, err := materials.UnmarshalJSON(raw)
		if err != nil {
			return nil, core.NewLoadError(path, err)
		}
		sc.AddMaterial(m)
	}

	for _, od := range doc.Objects {
		transform := math.FromColumnMajor16(od.Transform)
		obj, err := NewObject(MeshHandle(od.Mesh), transform, MaterialHandle(od.Material))
		if err != nil {
			return nil, core.NewLoadError(path, err)
		}
		if err := sc.AddObject(obj); err != nil {
			return nil, core.NewLoadError(path, err)
		}
	}

	return sc, nil
}

func marshalEnvironment(e Environment) (json.RawMessage, error) {
	switch v := e.(type) {
	case Constant:
		c := colorArray(v.Color)
		return json.Marshal(environmentDoc{Type: "ConstantEnvironment", Color: &c})
	case Sky:
		return json.Marshal(environmentDoc{
			Type:         "SkyEnvironment",
			SunDirection: vec3Array(v.SunDirection),
			SunColor:     colorArray(v.SunColor),
			UpColor:      colorArray(v.UpColor),
			DownColor:    colorArray(v.DownColor),
			SunSize:      v.SunSize,
		})
	default:
		return nil, fmt.Errorf("scene: unknown environment type %T", e)
	}
}

func unmarshalEnvironment(raw json.RawMessage) (Environment, error) {
	var doc environmentDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	switch doc.Type {
	case "ConstantEnvironment":
		c := core.ColorBlack
		if doc.Color != nil {
			c = arrayColor(*doc.Color)
		}
		return Constant{Color: c}, nil
	case "SkyEnvironment":
		return Sky{
			SunDirection: arrayVec3(doc.SunDirection),
			SunColor:     arrayColor(doc.SunColor),
			UpColor:      arrayColor(doc.UpColor),
			DownColor:    arrayColor(doc.DownColor),
			SunSize:      doc.SunSize,
		}, nil
	default:
		return nil, fmt.Errorf("unknown environment type %q", doc.Type)
	}
}
