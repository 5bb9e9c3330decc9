package ioadapt

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"pathtracer/core"
	pmath "pathtracer/math"
	"pathtracer/mesh"
)

// GLTFMeshInstance is one mesh primitive placed in world space — the
// node hierarchy has already been flattened into a single accumulated
// Transform, ready to become a scene.Object once a mesh/material handle
// has been registered for it.
type GLTFMeshInstance struct {
	Name      string
	Vertices  []core.Vertex
	Triangles []mesh.TriangleIndex
	Transform pmath.Mat4
}

// LoadGLTF opens a .glb/.gltf file and flattens its node hierarchy into a
// list of world-space mesh instances. PBR materials, textures, and
// animations are not carried over: this renderer places a mesh with one
// of Lambertian/Dielectric/Metal, not a glTF metallic-roughness graph, so
// a caller assigns the material handle itself after loading.
func LoadGLTF(path string) ([]GLTFMeshInstance, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	meshPrims := make([][]GLTFMeshInstance, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			inst, err := loadGLTFPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				fmt.Printf("Warning: gltf mesh %d prim %d: %v\n", mi, pi, err)
				continue
			}
			meshPrims[mi] = append(meshPrims[mi], inst)
		}
	}

	var instances []GLTFMeshInstance
	var walk func(nodeIdx uint32, parent pmath.Mat4)
	walk = func(nodeIdx uint32, parent pmath.Mat4) {
		if int(nodeIdx) >= len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[nodeIdx]
		world := parent.Mul(nodeLocalTransform(gn))

		if gn.Mesh != nil && int(*gn.Mesh) < len(meshPrims) {
			for _, inst := range meshPrims[*gn.Mesh] {
				instances = append(instances, GLTFMeshInstance{
					Name:      inst.Name,
					Vertices:  inst.Vertices,
					Triangles: inst.Triangles,
					Transform: world.Mul(inst.Transform),
				})
			}
		}
		for _, child := range gn.Children {
			walk(child, world)
		}
	}

	for _, root := range sceneRoots(doc) {
		walk(root, pmath.Mat4Identity())
	}

	if len(instances) == 0 {
		return nil, core.NewGeometryError(fmt.Sprintf("no mesh instances found in %s", path))
	}
	return instances, nil
}

// sceneRoots returns the root node indices of doc's default scene, or
// every parentless node if the file has no default scene set.
func sceneRoots(doc *gltf.Document) []uint32 {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []uint32
	for i, has := range hasParent {
		if !has {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

// nodeLocalTransform builds a node's local TRS transform, resolving its
// quaternion rotation into a matrix directly since nothing else in this
// renderer needs a standalone quaternion type.
func nodeLocalTransform(gn *gltf.Node) pmath.Mat4 {
	t := gn.TranslationOrDefault()
	s := gn.ScaleOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]

	translation := pmath.Mat4Translation(pmath.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
	rotation := quaternionToMat4(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
	scale := pmath.Mat4Scale(pmath.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])})

	return translation.Mul(rotation).Mul(scale)
}

// quaternionToMat4 converts a unit quaternion (x,y,z,w) into the
// equivalent column-major rotation matrix.
func quaternionToMat4(x, y, z, w float32) pmath.Mat4 {
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	m := pmath.Mat4Identity()
	m[0][0] = 1 - 2*(yy+zz)
	m[0][1] = 2 * (xy + wz)
	m[0][2] = 2 * (xz - wy)
	m[1][0] = 2 * (xy - wz)
	m[1][1] = 1 - 2*(xx+zz)
	m[1][2] = 2 * (yz + wx)
	m[2][0] = 2 * (xz + wy)
	m[2][1] = 2 * (yz - wx)
	m[2][2] = 1 - 2*(xx+yy)
	return m
}

// loadGLTFPrimitive converts one glTF mesh primitive into a
// GLTFMeshInstance with an identity transform (the node walk composes
// the real world transform on top of it).
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (GLTFMeshInstance, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return GLTFMeshInstance{}, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return GLTFMeshInstance{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	vertices := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: pmath.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   pmath.Vec3Up,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = pmath.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			v.UV = pmath.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		vertices[i] = v
	}

	var triangles []mesh.TriangleIndex
	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return GLTFMeshInstance{}, fmt.Errorf("indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			triangles = append(triangles, mesh.TriangleIndex{int(indices[i]), int(indices[i+1]), int(indices[i+2])})
		}
	}

	return GLTFMeshInstance{Name: name, Vertices: vertices, Triangles: triangles, Transform: pmath.Mat4Identity()}, nil
}
