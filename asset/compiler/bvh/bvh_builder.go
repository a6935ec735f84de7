// Package bvh builds the flattened bounding-volume hierarchy consumed by
// the tracing kernel. Building happens offline, once per geometry change;
// the kernel never mutates the output.
package bvh

import (
	"time"

	"github.com/landris006/path-tracer/asset/scene"
	"github.com/landris006/path-tracer/log"
	"github.com/landris006/path-tracer/tracer/kernel"
	"github.com/landris006/path-tracer/types"
)

// Leaves are created once a partition holds this few triangles.
const minLeafItems = 2

var logger = log.New("bvh")

// Tree is the flattened build output: a node list with the root at index 0
// and the triangle index list leaf nodes point into.
type Tree struct {
	Nodes           []kernel.BVHNode
	TriangleIndices []uint32

	// Deepest node level produced. The renderer checks this against the
	// kernel's traversal stack capacity before accepting the scene.
	MaxDepth int
}

type builder struct {
	triangles []scene.Triangle
	nodes     []kernel.BVHNode
	indices   []uint32
	nodesUsed uint32
	maxDepth  int
}

// Build partitions the triangle list with midpoint splits along the longest
// bounding-box axis. The node array is laid out so an internal node's two
// children are always adjacent, matching the traversal's indexing scheme.
func Build(triangles []scene.Triangle) *Tree {
	if len(triangles) == 0 {
		return &Tree{}
	}

	start := time.Now()

	b := &builder{
		triangles: triangles,
		nodes:     make([]kernel.BVHNode, 2*len(triangles)-1),
		indices:   make([]uint32, len(triangles)),
	}
	for i := range b.indices {
		b.indices[i] = uint32(i)
	}

	root := &b.nodes[0]
	root.LeftChildIndex = 0
	root.TriangleCount = uint32(len(triangles))
	b.nodesUsed = 1

	b.updateBounds(0)
	b.subdivide(0, 1)

	tree := &Tree{
		Nodes:           b.nodes[:b.nodesUsed],
		TriangleIndices: b.indices,
		MaxDepth:        b.maxDepth,
	}

	logger.Infof(
		"built bvh for %d triangles: %d nodes, depth %d in %d ms",
		len(triangles), len(tree.Nodes), tree.MaxDepth, time.Since(start).Milliseconds(),
	)
	return tree
}

func (b *builder) updateBounds(nodeIndex uint32) {
	node := &b.nodes[nodeIndex]
	node.MinCorner = types.Vec3{1e30, 1e30, 1e30}
	node.MaxCorner = types.Vec3{-1e30, -1e30, -1e30}

	first := node.LeftChildIndex
	for i := uint32(0); i < node.TriangleCount; i++ {
		lo, hi := b.triangles[b.indices[first+i]].BBox()
		node.MinCorner = types.MinVec3(node.MinCorner, lo)
		node.MaxCorner = types.MaxVec3(node.MaxCorner, hi)
	}
}

func (b *builder) subdivide(nodeIndex uint32, depth int) {
	if depth > b.maxDepth {
		b.maxDepth = depth
	}

	node := b.nodes[nodeIndex]
	if node.TriangleCount <= minLeafItems {
		return
	}

	// Split at the midpoint of the longest bbox axis.
	extent := node.MaxCorner.Sub(node.MinCorner)
	axis := 0
	if extent[1] > extent[axis] {
		axis = 1
	}
	if extent[2] > extent[axis] {
		axis = 2
	}
	splitPos := node.MinCorner[axis] + extent[axis]*0.5

	// Partition the index range in place.
	i := node.LeftChildIndex
	j := node.LeftChildIndex + node.TriangleCount - 1
	for i < j {
		if b.triangles[b.indices[i]].Centroid()[axis] < splitPos {
			i++
		} else {
			b.indices[i], b.indices[j] = b.indices[j], b.indices[i]
			j--
		}
	}

	leftCount := i - node.LeftChildIndex
	if leftCount == 0 || leftCount == node.TriangleCount {
		// Degenerate split; keep the node as a leaf.
		return
	}

	leftChild := b.nodesUsed
	b.nodesUsed++
	rightChild := b.nodesUsed
	b.nodesUsed++

	b.nodes[leftChild].LeftChildIndex = node.LeftChildIndex
	b.nodes[leftChild].TriangleCount = leftCount
	b.nodes[rightChild].LeftChildIndex = i
	b.nodes[rightChild].TriangleCount = node.TriangleCount - leftCount

	b.nodes[nodeIndex].LeftChildIndex = leftChild
	b.nodes[nodeIndex].TriangleCount = 0

	b.updateBounds(leftChild)
	b.updateBounds(rightChild)
	b.subdivide(leftChild, depth+1)
	b.subdivide(rightChild, depth+1)
}
