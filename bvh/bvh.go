package bvh

import (
	stdmath "math"

	"pathtracer/geom"
	"pathtracer/math"
)

const (
	maxDepth = 32 // also the traversal stack's fixed capacity
	binCount = 100
)

// TriangleIndex is the vertex-index triple of one triangle in a mesh's
// flat vertex array.
type TriangleIndex [3]int

// NodeKind distinguishes an interior node (two children) from a leaf
// (a contiguous triangle range).
type NodeKind int

const (
	NodeLeaf NodeKind = iota
	NodeInterior
)

type Node struct {
	AABB geom.AABB
	Kind NodeKind

	// Interior: Left/Right are indices into BVH.nodes.
	Left, Right int

	// Leaf: triangles[Begin:End) belong to this node.
	Begin, End int
}

// BVH is a flat array of nodes; node 0 is the root. Built once per mesh
// and never mutated afterward — traversal only reads it.
type BVH struct {
	nodes []Node
}

func (b *BVH) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := b.nodes[i]
		if n.Kind == NodeLeaf {
			return 1
		}
		l, r := walk(n.Left), walk(n.Right)
		if l > r {
			return 1 + l
		}
		return 1 + r
	}
	return walk(0)
}

// Build constructs a BVH over triangles by binned-SAH splitting.
// The vertex positions are read-only; Build reorders triangles in place
// (see separate) so leaf ranges stay contiguous.
func Build(vertices []math.Vec3, triangles []TriangleIndex) *BVH {
	centroids := make([]math.Vec3, len(triangles))
	for i, tri := range triangles {
		v1, v2, v3 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		centroids[i] = v1.Add(v2).Add(v3).Div(3)
	}

	root := geom.EMPTY
	for _, v := range vertices {
		root.Expand(v)
	}

	nodes := []Node{{
		AABB:  root.Pad(),
		Kind:  NodeLeaf,
		Begin: 0,
		End:   len(triangles),
	}}

	b := &BVH{nodes: nodes}
	b.devide(0, vertices, triangles, centroids, 0)
	return b
}

func enclose(vertices []math.Vec3, triangles []TriangleIndex) geom.AABB {
	a := geom.EMPTY
	for _, tri := range triangles {
		a.Expand(vertices[tri[0]])
		a.Expand(vertices[tri[1]])
		a.Expand(vertices[tri[2]])
	}
	return a
}

func calcSAH(box geom.AABB, count int) float32 {
	d := box.Max.Sub(box.Min)
	const eps = float32(1.1920929e-7)
	return (float32(count) + eps) * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// binCentroids buckets triangles along dimension into binCount bins by
// centroid position, returning each bin's AABB, triangle count, bin
// width, and the centroid range's start.
func binCentroids(vertices []math.Vec3, centroids []math.Vec3, triangles []TriangleIndex, dimension int) (bins [binCount]geom.AABB, counts [binCount]int, step, start float32) {
	for i := range bins {
		bins[i] = geom.EMPTY
	}

	centroidBox := geom.EMPTY
	for _, c := range centroids {
		centroidBox.Expand(c)
	}

	length := centroidBox.Max.Component(dimension) - centroidBox.Min.Component(dimension)
	step = length / float32(binCount)
	start = centroidBox.Min.Component(dimension)

	const almostOne = 1 - 1.1920929e-7
	for i, c := range centroids {
		binIndex := int((c.Component(dimension) - start) / step * almostOne)
		if binIndex < 0 {
			binIndex = 0
		}
		if binIndex >= binCount {
			binIndex = binCount - 1
		}
		counts[binIndex]++
		tri := triangles[i]
		bins[binIndex].Expand(vertices[tri[0]])
		bins[binIndex].Expand(vertices[tri[1]])
		bins[binIndex].Expand(vertices[tri[2]])
	}
	return
}

// findBestSeparation sweeps all three axes through the same binned-SAH
// evaluation and returns the dimension/plane pair with the lowest cost.
func findBestSeparation(vertices []math.Vec3, triangles []TriangleIndex, centroids []math.Vec3) (dimension int, plane float32) {
	bestCost := float32(stdmath.Inf(1))
	bestDimension := 0
	bestPlane := float32(stdmath.Inf(1))

	for dim := 0; dim < 3; dim++ {
		bins, counts, step, start := binCentroids(vertices, centroids, triangles, dim)

		left := geom.EMPTY
		leftCount := 0

		for i := 0; i < binCount; i++ {
			left = geom.Union(left, bins[i])
			leftCount += counts[i]

			right := geom.UnionMany(bins[i+1:])

			cost := calcSAH(left, leftCount) + calcSAH(right, len(triangles)-leftCount)
			if cost < bestCost {
				bestCost = cost
				bestDimension = dim
				bestPlane = step*float32(i) + start
			}
		}
	}

	return bestDimension, bestPlane
}

// separate performs a stable-ish two-way partition of centroids/triangles
// in place: everything with centroid[dimension] < plane moves before the
// returned pivot index.
func separate(dimension int, plane float32, centroids []math.Vec3, triangles []TriangleIndex) int {
	pivot := 0
	for i := range centroids {
		if centroids[i].Component(dimension) < plane {
			centroids[i], centroids[pivot] = centroids[pivot], centroids[i]
			triangles[i], triangles[pivot] = triangles[pivot], triangles[i]
			pivot++
		}
	}
	return pivot
}

func (b *BVH) devide(nodeIndex int, vertices []math.Vec3, triangles []TriangleIndex, centroids []math.Vec3, depth int) {
	node := b.nodes[nodeIndex]
	if node.Kind != NodeLeaf {
		panic("bvh: attempt to devide an already-devided node")
	}
	if depth >= maxDepth {
		return
	}

	start, end := node.Begin, node.End
	subTriangles := triangles[start:end]
	subCentroids := centroids[start:end]

	dimension, plane := findBestSeparation(vertices, subTriangles, subCentroids)
	leftCount := separate(dimension, plane, subCentroids, subTriangles)

	if leftCount == 0 || leftCount == len(subTriangles) {
		return
	}

	leftAABB := enclose(vertices, triangles[start:start+leftCount]).Pad()
	rightAABB := enclose(vertices, triangles[start+leftCount:end]).Pad()

	devidedSAH := calcSAH(leftAABB, leftCount) + calcSAH(rightAABB, end-start-leftCount)
	selfSAH := calcSAH(node.AABB, end-start)
	if devidedSAH > selfSAH {
		return
	}

	leftIndex := len(b.nodes)
	rightIndex := leftIndex + 1
	b.nodes = append(b.nodes,
		Node{AABB: leftAABB, Kind: NodeLeaf, Begin: start, End: start + leftCount},
		Node{AABB: rightAABB, Kind: NodeLeaf, Begin: start + leftCount, End: end},
	)
	b.nodes[nodeIndex].Kind = NodeInterior
	b.nodes[nodeIndex].Left = leftIndex
	b.nodes[nodeIndex].Right = rightIndex

	b.devide(leftIndex, vertices, triangles, centroids, depth+1)
	b.devide(rightIndex, vertices, triangles, centroids, depth+1)
}
