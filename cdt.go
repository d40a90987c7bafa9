// A constrained Delaunay triangulation package for Go.
//
// This package converts a set of 2D points and optional constraint edges
// into a triangulation that contains every constraint edge and is Delaunay
// everywhere the constraints allow. Constraint loops can describe outlines
// and holes; the triangulation can be clipped to them.
package cdt

import "github.com/osuushi/cdt/advanced"

// Point is a 2D position.
type Point = advanced.V2d[float64]

// Edge is an unordered pair of point indices.
type Edge = advanced.Edge

// NewEdge makes an edge between two point indices.
func NewEdge(v1, v2 int) Edge {
	return advanced.NewEdge(advanced.VertInd(v1), advanced.VertInd(v2))
}

// Mesh is a finished triangulation over the deduplicated input points.
type Mesh struct {
	Vertices  []Point
	Triangles [][3]int
	// FixedEdges holds the constraint edges, indexed into Vertices.
	FixedEdges map[Edge]struct{}
	// Duplicates reports which input points were dropped and how input
	// indices map onto Vertices.
	Duplicates advanced.DuplicatesInfo
}

// Triangulate builds a constrained Delaunay triangulation of the points
// with the given constraint edges, keeping everything inside the convex
// hull. Edge indices refer to the points as given; exact duplicate points
// are removed and edges remapped before triangulating.
func Triangulate(points []Point, edges []Edge) (*Mesh, error) {
	return run(points, edges, (*advanced.Triangulation[float64]).EraseSuperTriangle)
}

// TriangulateWithHoles is Triangulate, then removal of the triangles
// outside the outermost constraint boundary and inside holes. Boundaries
// are loops of constraint edges; nesting (holes, islands in holes) and
// overlapping boundaries are detected by layer depth.
func TriangulateWithHoles(points []Point, edges []Edge) (*Mesh, error) {
	return run(points, edges, (*advanced.Triangulation[float64]).EraseOuterTrianglesAndHoles)
}

func run(points []Point, edges []Edge, erase func(*advanced.Triangulation[float64])) (*Mesh, error) {
	points = append([]Point(nil), points...)
	edges = append([]Edge(nil), edges...)
	points, duplicates := advanced.RemoveDuplicatesAndRemapEdges(points, edges)

	g := advanced.NewTriangulation[float64](advanced.AsProvided)
	if err := g.InsertVertices(points); err != nil {
		return nil, err
	}
	if err := g.InsertEdges(edges); err != nil {
		return nil, err
	}
	erase(g)

	mesh := &Mesh{
		Vertices:   g.Vertices,
		Triangles:  make([][3]int, 0, len(g.Triangles)),
		FixedEdges: g.FixedEdges,
		Duplicates: duplicates,
	}
	for _, t := range g.Triangles {
		mesh.Triangles = append(mesh.Triangles, [3]int{
			int(t.Vertices[0]), int(t.Vertices[1]), int(t.Vertices[2]),
		})
	}
	return mesh, nil
}
