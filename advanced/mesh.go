package advanced

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Triangulation is a 2D constrained Delaunay triangulation under
// construction. The mesh state is exposed for reading; mutate it only
// through the insertion and erasure methods. A Triangulation is not safe
// for concurrent use; independent instances are.
type Triangulation[T constraints.Float] struct {
	// Vertices holds every vertex position, super-geometry first.
	Vertices []V2d[T]
	// Triangles holds the triangle records. Between structural operations
	// some slots may be on the internal free-list and must be ignored by
	// callers; the public insertion methods never leave such slots behind.
	Triangles []Triangle
	// FixedEdges is the set of constraint edges.
	FixedEdges map[Edge]struct{}
	// VertTris lists, for each vertex, the triangles incident to it.
	VertTris [][]TriInd
	// OverlapCount has an entry for a fixed edge only when more than one
	// constraint coincides on it; the count is one less than the number of
	// coinciding constraints.
	OverlapCount map[Edge]BoundaryOverlapCount

	dummyTris      []TriInd
	nearPtLocator  NearPointLocator[T]
	nTargetVerts   int
	superGeomType  SuperGeometryType
	insertionOrder VertexInsertionOrder
	rng            *rand.Rand
}

// Randomized insertion shuffles with a fixed seed so identical inputs give
// bitwise-identical triangulations. The generator is per-instance; two
// triangulations never share state.
const randSeed = 9001

// NewTriangulation makes an empty triangulation using the default k-d tree
// near-point locator.
func NewTriangulation[T constraints.Float](order VertexInsertionOrder) *Triangulation[T] {
	return NewTriangulationWithLocator[T](order, NewKDTree[T]())
}

// NewTriangulationWithLocator makes an empty triangulation seeding its
// point-location walks from the given locator.
func NewTriangulationWithLocator[T constraints.Float](order VertexInsertionOrder, locator NearPointLocator[T]) *Triangulation[T] {
	return &Triangulation[T]{
		FixedEdges:     make(map[Edge]struct{}),
		OverlapCount:   make(map[Edge]BoundaryOverlapCount),
		nearPtLocator:  locator,
		insertionOrder: order,
		rng:            rand.New(rand.NewSource(randSeed)),
	}
}

// InitializedWithCustomSuperGeometry declares that the caller prepopulated
// Vertices and Triangles with custom enclosing geometry instead of letting
// InsertVertices generate a super-triangle. The erasure passes will leave
// the custom geometry in place.
func (g *Triangulation[T]) InitializedWithCustomSuperGeometry() {
	for i, pos := range g.Vertices {
		g.nearPtLocator.AddPoint(pos, VertInd(i))
	}
	g.nTargetVerts = len(g.Vertices)
	g.superGeomType = CustomGeometry
}

func (g *Triangulation[T]) addSuperTriangle(box Box2d[T]) {
	g.nTargetVerts = 3
	g.superGeomType = SuperTriangle
	for i, pos := range superTriangleOf(box) {
		g.Vertices = append(g.Vertices, pos)
		g.VertTris = append(g.VertTris, []TriInd{0})
		g.nearPtLocator.AddPoint(pos, VertInd(i))
	}
	g.Triangles = append(g.Triangles, Triangle{
		Vertices:  [3]VertInd{0, 1, 2},
		Neighbors: [3]TriInd{NoNeighbor, NoNeighbor, NoNeighbor},
	})
}

func (g *Triangulation[T]) addNewVertex(pos V2d[T], tris []TriInd) VertInd {
	g.Vertices = append(g.Vertices, pos)
	g.VertTris = append(g.VertTris, tris)
	return VertInd(len(g.Vertices) - 1)
}

// addTriangle stores t, reusing a free-list slot when one is available.
func (g *Triangulation[T]) addTriangle(t Triangle) TriInd {
	if n := len(g.dummyTris); n > 0 {
		iT := g.dummyTris[n-1]
		g.dummyTris = g.dummyTris[:n-1]
		g.Triangles[iT] = t
		return iT
	}
	g.Triangles = append(g.Triangles, t)
	return TriInd(len(g.Triangles) - 1)
}

// reserveTriangle claims a slot whose contents will be filled in later.
func (g *Triangulation[T]) reserveTriangle() TriInd {
	return g.addTriangle(Triangle{Neighbors: [3]TriInd{NoNeighbor, NoNeighbor, NoNeighbor}})
}

// makeDummy releases iT to the free-list and unregisters it from its
// vertices' adjacency lists. The slot's contents stay in place until the
// slot is reused, so the caller must stop referencing it.
func (g *Triangulation[T]) makeDummy(iT TriInd) {
	for _, iV := range g.Triangles[iT].Vertices {
		g.removeAdjacentTriangle(iV, iT)
	}
	g.dummyTris = append(g.dummyTris, iT)
}

// eraseDummies compacts the triangle slice, dropping free-list slots and
// renumbering every triangle reference. Neighbor slots that pointed at an
// erased slot become NoNeighbor. All triangle indices held outside the
// mesh are invalidated.
func (g *Triangulation[T]) eraseDummies() {
	if len(g.dummyTris) == 0 {
		return
	}
	dummySet := make(map[TriInd]struct{}, len(g.dummyTris))
	for _, iT := range g.dummyTris {
		dummySet[iT] = struct{}{}
	}
	triIndMap := make(map[TriInd]TriInd, len(g.Triangles)+1)
	triIndMap[NoNeighbor] = NoNeighbor
	next := TriInd(0)
	for iT := range g.Triangles {
		if _, dummy := dummySet[TriInd(iT)]; dummy {
			triIndMap[TriInd(iT)] = NoNeighbor
			continue
		}
		g.Triangles[next] = g.Triangles[iT]
		triIndMap[TriInd(iT)] = next
		next++
	}
	g.Triangles = g.Triangles[:next]
	for i := range g.Triangles {
		t := &g.Triangles[i]
		for n := range t.Neighbors {
			t.Neighbors[n] = triIndMap[t.Neighbors[n]]
		}
	}
	for iV := range g.VertTris {
		tris := g.VertTris[iV][:0]
		for _, iT := range g.VertTris[iV] {
			if remapped := triIndMap[iT]; remapped != NoNeighbor {
				tris = append(tris, remapped)
			}
		}
		g.VertTris[iV] = tris
	}
	g.dummyTris = g.dummyTris[:0]
}

func (g *Triangulation[T]) addAdjacentTriangle(iV VertInd, iT TriInd) {
	g.VertTris[iV] = append(g.VertTris[iV], iT)
}

func (g *Triangulation[T]) addAdjacentTriangles(iV VertInd, tris ...TriInd) {
	g.VertTris[iV] = append(g.VertTris[iV], tris...)
}

func (g *Triangulation[T]) removeAdjacentTriangle(iV VertInd, iT TriInd) {
	tris := g.VertTris[iV]
	for i, adjacent := range tris {
		if adjacent == iT {
			tris[i] = tris[len(tris)-1]
			g.VertTris[iV] = tris[:len(tris)-1]
			return
		}
	}
}

// changeNeighbor rewrites the neighbor slot of iT holding oldN to newN.
func (g *Triangulation[T]) changeNeighbor(iT, oldN, newN TriInd) {
	if iT == NoNeighbor {
		return
	}
	t := &g.Triangles[iT]
	t.Neighbors[t.neighborInd(oldN)] = newN
}

// changeEdgeNeighbor sets the neighbor of iT across edge (iV1, iV2).
func (g *Triangulation[T]) changeEdgeNeighbor(iT TriInd, iV1, iV2 VertInd, newN TriInd) {
	if iT == NoNeighbor {
		return
	}
	t := &g.Triangles[iT]
	t.Neighbors[t.edgeNeighborInd(iV1, iV2)] = newN
}

// fixEdge marks e as a constraint. Marking an edge that is already fixed
// counts a boundary overlap instead.
func (g *Triangulation[T]) fixEdge(e Edge) {
	if _, fixed := g.FixedEdges[e]; fixed {
		g.OverlapCount[e]++
		return
	}
	g.FixedEdges[e] = struct{}{}
}
