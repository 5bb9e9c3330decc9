package bvh

import "pathtracer/geom"

// Iterator walks a BVH depth-first with an explicit fixed-size stack (no
// recursion, no heap allocation per step), yielding one leaf triangle
// range per call to Next. Next's aabbTests result counts the nodes it
// visited, for diagnostics.
type Iterator struct {
	bvh   *BVH
	ray   geom.Ray
	stack [maxDepth]int
	head  int
}

// Intersects starts a traversal of b along ray. The returned Iterator is
// only valid as long as b is not mutated (it never is, post-Build).
func (b *BVH) Intersects(ray geom.Ray) *Iterator {
	return &Iterator{bvh: b, ray: ray, head: 0}
}

// Next returns the next leaf range [begin, end) whose AABB the ray
// intersects within [minT, maxT], along with the number of AABB tests
// performed to find it. ok is false once the stack is exhausted.
func (it *Iterator) Next(minT, maxT float32) (begin, end int, aabbTests int, ok bool) {
	for it.head >= 0 {
		node := it.bvh.nodes[it.stack[it.head]]
		it.head--
		aabbTests++

		if _, hit := node.AABB.Intersects(it.ray, minT, maxT); !hit {
			continue
		}

		switch node.Kind {
		case NodeInterior:
			it.stack[it.head+1] = node.Left
			it.stack[it.head+2] = node.Right
			it.head += 2
		case NodeLeaf:
			return node.Begin, node.End, aabbTests, true
		}
	}
	return 0, 0, aabbTests, false
}
