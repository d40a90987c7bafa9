// Package advanced is the low-level constrained Delaunay triangulation
// engine. It exposes the mesh directly: vertices, triangles with per-corner
// neighbors, the vertex adjacency index, and the fixed-edge set. Most users
// want the cdt package at the module root instead.
package advanced

import "golang.org/x/exp/constraints"

// The mesh is an index-based graph: triangles and vertices reference each
// other through integer handles into flat slices. Owning pointers would form
// cycles here; indices keep everything trivially copyable. VertInd and
// TriInd are distinct types so the two kinds of handle can't be mixed up.

// VertInd is a handle to a vertex of the triangulation.
type VertInd int

// TriInd is a handle to a triangle of the triangulation. Triangle handles
// are stable only between structural operations; eraseDummies and the
// erasure passes renumber them.
type TriInd int

// NoNeighbor marks an empty neighbor slot.
const NoNeighbor TriInd = -1

// V2d is a 2D position. The coordinate type is any floating point type;
// the predicates operate on it directly without exact-arithmetic filtering.
type V2d[T constraints.Float] struct {
	X, Y T
}

// Box2d is an axis-aligned bounding box.
type Box2d[T constraints.Float] struct {
	Min, Max V2d[T]
}

// Edge is an unordered pair of vertex indices. NewEdge canonicalizes the
// order, so edges compare equal regardless of direction and can key maps.
type Edge struct {
	a, b VertInd
}

// NewEdge makes an edge, putting the smaller vertex index first.
func NewEdge(iV1, iV2 VertInd) Edge {
	if iV1 > iV2 {
		iV1, iV2 = iV2, iV1
	}
	return Edge{iV1, iV2}
}

// V1 returns the smaller vertex index of the edge.
func (e Edge) V1() VertInd { return e.a }

// V2 returns the larger vertex index of the edge.
func (e Edge) V2() VertInd { return e.b }

// Triangle holds three vertex indices in counterclockwise order and three
// neighbor triangle indices. Neighbors[i] is the triangle sharing the edge
// opposite Vertices[i], that is the edge joining Vertices[ccw(i)] and
// Vertices[cw(i)].
type Triangle struct {
	Vertices  [3]VertInd
	Neighbors [3]TriInd
}

// ccw rotates a vertex or neighbor slot counterclockwise.
func ccw(i int) int { return (i + 1) % 3 }

// cw rotates a vertex or neighbor slot clockwise.
func cw(i int) int { return (i + 2) % 3 }

func (t Triangle) containsVertex(iV VertInd) bool {
	return t.Vertices[0] == iV || t.Vertices[1] == iV || t.Vertices[2] == iV
}

// vertexInd returns the slot holding vertex iV.
func (t Triangle) vertexInd(iV VertInd) int {
	for i, v := range t.Vertices {
		if v == iV {
			return i
		}
	}
	fatalf("vertex %d is not in triangle %v", iV, t.Vertices)
	return -1
}

// neighborInd returns the slot holding neighbor iT.
func (t Triangle) neighborInd(iT TriInd) int {
	for i, n := range t.Neighbors {
		if n == iT {
			return i
		}
	}
	fatalf("triangle %d is not a neighbor of %v", iT, t.Vertices)
	return -1
}

// edgeNeighborInd returns the neighbor slot across edge (iV1, iV2): the
// slot of the one vertex that is not an edge endpoint.
func (t Triangle) edgeNeighborInd(iV1, iV2 VertInd) int {
	for i, v := range t.Vertices {
		if v != iV1 && v != iV2 {
			return i
		}
	}
	fatalf("edge (%d, %d) is not an edge of triangle %v", iV1, iV2, t.Vertices)
	return -1
}

// opposedTriangle returns the neighbor across from vertex iV.
func (t Triangle) opposedTriangle(iV VertInd) TriInd {
	return t.Neighbors[t.vertexInd(iV)]
}

// opposedVertex returns the vertex across from neighbor iT.
func (t Triangle) opposedVertex(iT TriInd) VertInd {
	return t.Vertices[t.neighborInd(iT)]
}

// LayerDepth is the nesting level of a triangle inside constraint
// boundaries, counted from outside the outermost boundary.
type LayerDepth uint16

// BoundaryOverlapCount is one less than the number of constraints that
// coincide on a fixed edge.
type BoundaryOverlapCount = LayerDepth

// VertexInsertionOrder selects the order in which InsertVertices feeds
// vertices to the mesh. Randomized shuffles only the insertion schedule;
// vertex indices in the finished triangulation always match input order.
type VertexInsertionOrder int

const (
	AsProvided VertexInsertionOrder = iota
	Randomized
)

// SuperGeometryType records what the initial vertices are: a generated
// super-triangle, which the erasure passes may remove, or custom enclosing
// geometry supplied by the caller, which they never touch.
type SuperGeometryType int

const (
	SuperTriangle SuperGeometryType = iota
	CustomGeometry
)
