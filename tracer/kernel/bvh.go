package kernel

// TraversalStackSize bounds the explicit node stack used while walking the
// BVH. The builder must guarantee tree depth <= this capacity; scene setup
// rejects trees that are too deep rather than silently dropping far nodes.
const TraversalStackSize = 32

// traverseBVH walks the flattened tree iteratively, visiting near children
// first and pruning subtrees whose bounding box lies beyond the best hit
// found so far. No recursion: every pixel worker owns one fixed-size stack.
func (s *Scene) traverseBVH(r Ray, tMin, tMax float32) HitRecord {
	var rec HitRecord
	nearest := tMax

	invDir := r.Direction.Recip()

	var stack [TraversalStackSize]uint32
	stackPtr := 0
	nodeIndex := uint32(0)

	for {
		node := &s.Nodes[nodeIndex]

		if node.TriangleCount > 0 {
			// Leaf: test every triangle in the index range and tighten the
			// nearest distance on improvement.
			first := node.LeftChildIndex
			for i := uint32(0); i < node.TriangleCount; i++ {
				triIndex := s.TriangleIndices[first+i]
				if hit := hitTriangle(&s.Triangles[triIndex], r, tMin, nearest); hit.Hit {
					nearest = hit.T
					rec = hit
				}
			}

			if stackPtr == 0 {
				return rec
			}
			stackPtr--
			nodeIndex = stack[stackPtr]
			continue
		}

		childIndex1 := node.LeftChildIndex
		childIndex2 := node.LeftChildIndex + 1
		distance1 := hitAABB(&s.Nodes[childIndex1], r, invDir)
		distance2 := hitAABB(&s.Nodes[childIndex2], r, invDir)

		// Visit the nearer child first; tightening nearest early lets us
		// prune the far branch more often.
		if distance1 > distance2 {
			childIndex1, childIndex2 = childIndex2, childIndex1
			distance1, distance2 = distance2, distance1
		}

		if distance1 > nearest {
			// Neither child can contain a closer hit.
			if stackPtr == 0 {
				return rec
			}
			stackPtr--
			nodeIndex = stack[stackPtr]
			continue
		}

		nodeIndex = childIndex1
		if distance2 < nearest && stackPtr < TraversalStackSize {
			stack[stackPtr] = childIndex2
			stackPtr++
		}
	}
}
