// Package compiler flattens an editable scene into the immutable buffer set
// the tracing kernel consumes: sphere list, triangle list, BVH node list and
// the triangle index list the BVH leaves point into.
package compiler

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/landris006/path-tracer/asset/compiler/bvh"
	"github.com/landris006/path-tracer/asset/scene"
	"github.com/landris006/path-tracer/log"
	"github.com/landris006/path-tracer/tracer/kernel"
)

// MaxSpheres caps the sphere buffer. Scenes holding more are truncated with
// a warning rather than rejected so interactive editing cannot wedge the
// renderer.
const MaxSpheres = 256

var logger = log.New("compiler")

// Compile flattens the scene. It fails if the triangle BVH grows deeper than
// the kernel's fixed traversal stack; a deeper tree would silently drop hits
// at trace time, which is much harder to diagnose than a setup error.
func Compile(sc *scene.Scene) (*kernel.Scene, error) {
	if sc == nil {
		return nil, fmt.Errorf("compiler: nil scene")
	}

	spheres := sc.Spheres
	if len(spheres) > MaxSpheres {
		logger.Warningf("scene holds %d spheres; keeping the first %d", len(spheres), MaxSpheres)
		spheres = spheres[:MaxSpheres]
	}

	compiled := &kernel.Scene{
		Spheres:   make([]kernel.Sphere, len(spheres)),
		Triangles: make([]kernel.Triangle, len(sc.Triangles)),
		Env:       sc.Env,
	}
	for i, s := range spheres {
		compiled.Spheres[i] = kernel.Sphere{
			Center:   s.Center,
			Radius:   s.Radius,
			Albedo:   s.Albedo,
			Material: s.Material,
		}
	}
	for i, t := range sc.Triangles {
		compiled.Triangles[i] = t.Kernel()
	}

	if len(sc.Triangles) > 0 {
		tree := bvh.Build(sc.Triangles)
		if tree.MaxDepth > kernel.TraversalStackSize {
			return nil, fmt.Errorf(
				"compiler: bvh depth %d exceeds traversal stack capacity %d",
				tree.MaxDepth, kernel.TraversalStackSize,
			)
		}
		compiled.Nodes = tree.Nodes
		compiled.TriangleIndices = tree.TriangleIndices
	}

	return compiled, nil
}

// Stats builds a tabular representation of the compiled buffer sizes.
func Stats(sc *kernel.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Buffer", "Items", "Size"})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", len(sc.Spheres)), fmtSize(sc.Spheres)})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", len(sc.Triangles)), fmtSize(sc.Triangles)})
	table.Append([]string{"Triangle indices", fmt.Sprintf("%d", len(sc.TriangleIndices)), fmtSize(sc.TriangleIndices)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d", len(sc.Nodes)), fmtSize(sc.Nodes)})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(sc.Spheres, sc.Triangles, sc.TriangleIndices, sc.Nodes), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}

	return fmt.Sprintf("%3.1f mb", totalBytes/1e6)
}
