package advanced

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"
)

// requireValidTriangulation checks the invariants that must hold after
// every public operation: CCW triangles, reciprocal neighbor links, an
// exact adjacency index, fixed edges present in the mesh, and the Delaunay
// condition across every non-fixed shared edge.
func requireValidTriangulation[T constraints.Float](t *testing.T, g *Triangulation[T]) {
	t.Helper()

	for iT, tri := range g.Triangles {
		v1 := g.Vertices[tri.Vertices[0]]
		v2 := g.Vertices[tri.Vertices[1]]
		v3 := g.Vertices[tri.Vertices[2]]
		require.Greaterf(t, orient2d(v1, v2, v3), T(0), "triangle %d is not CCW", iT)

		for i := 0; i < 3; i++ {
			iN := tri.Neighbors[i]
			if iN == NoNeighbor {
				continue
			}
			e1, e2 := tri.Vertices[ccw(i)], tri.Vertices[cw(i)]
			n := g.Triangles[iN]
			require.Truef(t, n.containsVertex(e1) && n.containsVertex(e2),
				"neighbor %d of triangle %d does not share edge (%d, %d)", iN, iT, e1, e2)
			require.Equalf(t, TriInd(iT), n.Neighbors[n.edgeNeighborInd(e1, e2)],
				"neighbor link between triangles %d and %d is not reciprocal", iT, iN)
		}
	}

	// The adjacency index matches the triangles exactly.
	want := make(map[VertInd]map[TriInd]struct{})
	for iT, tri := range g.Triangles {
		for _, iV := range tri.Vertices {
			if want[iV] == nil {
				want[iV] = make(map[TriInd]struct{})
			}
			want[iV][TriInd(iT)] = struct{}{}
		}
	}
	for iV := range g.VertTris {
		got := make(map[TriInd]struct{})
		for _, iT := range g.VertTris[iV] {
			got[iT] = struct{}{}
		}
		require.Lenf(t, g.VertTris[iV], len(got),
			"vertex %d has duplicate adjacency entries", iV)
		if len(want[VertInd(iV)]) == 0 {
			require.Emptyf(t, got, "vertex %d is adjacent to no triangle", iV)
			continue
		}
		require.Equalf(t, want[VertInd(iV)], got, "adjacency index of vertex %d", iV)
	}

	// Fixed edges are edges of the mesh.
	edges := ExtractEdgesFromTriangles(g.Triangles)
	for e := range g.FixedEdges {
		require.Containsf(t, edges, e,
			"fixed edge (%d, %d) is missing from the mesh", e.V1(), e.V2())
	}

	// The Delaunay condition holds across every non-fixed shared edge.
	for iT, tri := range g.Triangles {
		v1 := g.Vertices[tri.Vertices[0]]
		v2 := g.Vertices[tri.Vertices[1]]
		v3 := g.Vertices[tri.Vertices[2]]
		for i := 0; i < 3; i++ {
			iN := tri.Neighbors[i]
			if iN == NoNeighbor {
				continue
			}
			e := NewEdge(tri.Vertices[ccw(i)], tri.Vertices[cw(i)])
			if _, fixed := g.FixedEdges[e]; fixed {
				continue
			}
			iVopo := g.Triangles[iN].opposedVertex(TriInd(iT))
			require.Falsef(t, isInCircumcircle(g.Vertices[iVopo], v1, v2, v3),
				"edge (%d, %d) between triangles %d and %d is not Delaunay",
				e.V1(), e.V2(), iT, iN)
		}
	}
}

func triangleArea[T constraints.Float](g *Triangulation[T], tri Triangle) T {
	a := g.Vertices[tri.Vertices[0]]
	b := g.Vertices[tri.Vertices[1]]
	c := g.Vertices[tri.Vertices[2]]
	return orient2d(a, b, c) / 2
}

func totalArea[T constraints.Float](g *Triangulation[T]) T {
	var area T
	for _, tri := range g.Triangles {
		area += triangleArea(g, tri)
	}
	return area
}

func centroid[T constraints.Float](g *Triangulation[T], tri Triangle) V2d[T] {
	a := g.Vertices[tri.Vertices[0]]
	b := g.Vertices[tri.Vertices[1]]
	c := g.Vertices[tri.Vertices[2]]
	return V2d[T]{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
}
