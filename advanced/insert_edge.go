package advanced

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// InsertEdges inserts constraint edges between previously inserted
// vertices. Endpoints are indices into the vertices the caller supplied;
// the engine offsets them internally to skip the super-geometry vertices.
// Inserting an edge twice records a boundary overlap on it.
//
// An edge crossing an earlier fixed edge anywhere but at a shared vertex
// aborts the call with ErrConstraintsCross; edges inserted before the
// failing one stay in place.
func (g *Triangulation[T]) InsertEdges(edges []Edge) (err error) {
	defer func() { handlePanic(recover(), &err) }()
	defer g.eraseDummies()
	for _, e := range edges {
		if err := g.checkEdge(e); err != nil {
			return err
		}
		offset := VertInd(g.nTargetVerts)
		g.insertEdge(NewEdge(e.V1()+offset, e.V2()+offset))
	}
	return nil
}

// InsertEdgesBy inserts n constraint edges read through endpoint accessors,
// for callers whose edges live in their own edge type.
func (g *Triangulation[T]) InsertEdgesBy(n int, getStart, getEnd func(i int) int) error {
	edges := make([]Edge, n)
	for i := range edges {
		edges[i] = NewEdge(VertInd(getStart(i)), VertInd(getEnd(i)))
	}
	return g.InsertEdges(edges)
}

func (g *Triangulation[T]) checkEdge(e Edge) error {
	n := VertInd(len(g.Vertices) - g.nTargetVerts)
	if e.V1() < 0 || e.V2() >= n {
		return errors.Errorf("edge (%d, %d) references a vertex outside [0, %d)", e.V1(), e.V2(), n)
	}
	return nil
}

func (g *Triangulation[T]) insertEdge(e Edge) {
	iA, iB := e.V1(), e.V2()
	if iA == iB {
		return
	}
	if g.verticesShareEdge(iA, iB) {
		g.fixEdge(NewEdge(iA, iB))
		return
	}
	a := g.Vertices[iA]
	b := g.Vertices[iB]
	iT, iVleft, iVright := g.intersectedTriangle(iA, g.VertTris[iA], a, b)
	if iT == NoNeighbor {
		// The constraint leaves iA exactly through vertex iVleft: insert
		// the two sub-constraints instead.
		g.insertEdge(NewEdge(iA, iVleft))
		g.insertEdge(NewEdge(iVleft, iB))
		return
	}

	// Walk the strip of triangles crossed by a→b, collecting the chains of
	// vertices bounding it on either side.
	intersected := []TriInd{iT}
	ptsLeft := []VertInd{iVleft}
	ptsRight := []VertInd{iVright}
	iBOrig := iB
	iV := iA
	t := g.Triangles[iT]
	for !t.containsVertex(iB) {
		if _, fixed := g.FixedEdges[NewEdge(iVleft, iVright)]; fixed {
			throwf(ErrConstraintsCross,
				"edge (%d, %d) crosses fixed edge (%d, %d)", iA, iB, iVleft, iVright)
		}
		iTopo := t.opposedTriangle(iV)
		tOpo := g.Triangles[iTopo]
		iVopo := tOpo.opposedVertex(iT)
		intersected = append(intersected, iTopo)
		iT, t = iTopo, tOpo
		switch locatePointLine(g.Vertices[iVopo], a, b) {
		case leftOfLine:
			ptsLeft = append(ptsLeft, iVopo)
			iV, iVleft = iVleft, iVopo
		case rightOfLine:
			ptsRight = append(ptsRight, iVopo)
			iV, iVright = iVright, iVopo
		default:
			// The constraint passes exactly through iVopo. Close off this
			// part here; the remainder is inserted after retriangulation.
			iB = iVopo
		}
	}

	// Drop the strip and retriangulate the pseudopolygons on both sides.
	for _, iTi := range intersected {
		g.makeDummy(iTi)
	}
	iTleft := g.triangulatePseudopolygon(iA, iB, ptsLeft)
	reverse(ptsRight)
	iTright := g.triangulatePseudopolygon(iB, iA, ptsRight)
	g.changeNeighbor(iTleft, NoNeighbor, iTright)
	g.changeNeighbor(iTright, NoNeighbor, iTleft)
	g.fixEdge(NewEdge(iA, iB))

	if iB != iBOrig {
		g.insertEdge(NewEdge(iB, iBOrig))
	}
}

func (g *Triangulation[T]) verticesShareEdge(iA, iB VertInd) bool {
	for _, iT := range g.VertTris[iA] {
		if g.Triangles[iT].containsVertex(iB) {
			return true
		}
	}
	return false
}

// intersectedTriangle finds, among the triangles incident to iA, the one
// whose opposite edge is properly crossed by segment a→b, returning it
// together with the crossed edge's vertices on the left and right of the
// segment. When the segment leaves iA exactly through a vertex of a
// candidate the returned triangle is NoNeighbor and both vertex results
// name the collinear vertex.
func (g *Triangulation[T]) intersectedTriangle(iA VertInd, candidates []TriInd, a, b V2d[T]) (TriInd, VertInd, VertInd) {
	for _, iT := range candidates {
		t := g.Triangles[iT]
		i := t.vertexInd(iA)
		iP1 := t.Vertices[ccw(i)]
		iP2 := t.Vertices[cw(i)]
		// Counterclockwise around iA the opposite edge runs iP1→iP2, so a
		// proper crossing has iP1 on the right of a→b and iP2 on the left.
		locP1 := locatePointLine(g.Vertices[iP1], a, b)
		locP2 := locatePointLine(g.Vertices[iP2], a, b)
		if locP1 == onLine && isForwardOf(g.Vertices[iP1], a, b) {
			return NoNeighbor, iP1, iP1
		}
		if locP2 == onLine && isForwardOf(g.Vertices[iP2], a, b) {
			return NoNeighbor, iP2, iP2
		}
		if locP1 == rightOfLine && locP2 == leftOfLine {
			return iT, iP2, iP1
		}
	}
	fatalf("no triangle incident to vertex %d is crossed by the constraint", iA)
	return NoNeighbor, 0, 0
}

func isForwardOf[T constraints.Float](p, a, b V2d[T]) bool {
	return (p.X-a.X)*(b.X-a.X)+(p.Y-a.Y)*(b.Y-a.Y) > 0
}

// triangulatePseudopolygon recursively retriangulates the polygon bounded
// by edge (ia, ib) and the vertex chain points, left of ia→ib. It returns
// the triangle adjacent to edge (ia, ib); with an empty chain that is the
// surviving triangle already bordering the edge from outside.
func (g *Triangulation[T]) triangulatePseudopolygon(ia, ib VertInd, points []VertInd) TriInd {
	if len(points) == 0 {
		return g.pseudopolyOuterTriangle(ia, ib)
	}
	ic, i := g.findDelaunayPoint(ia, ib, points)
	iT := g.reserveTriangle()
	iTleft := g.triangulatePseudopolygon(ia, ic, points[:i])
	iTright := g.triangulatePseudopolygon(ic, ib, points[i+1:])
	g.Triangles[iT] = Triangle{
		Vertices:  [3]VertInd{ia, ib, ic},
		Neighbors: [3]TriInd{iTright, iTleft, NoNeighbor},
	}
	g.changeEdgeNeighbor(iTleft, ia, ic, iT)
	g.changeEdgeNeighbor(iTright, ic, ib, iT)
	g.addAdjacentTriangle(ia, iT)
	g.addAdjacentTriangle(ib, iT)
	g.addAdjacentTriangle(ic, iT)
	return iT
}

// findDelaunayPoint picks the chain vertex whose circumcircle with (ia, ib)
// contains no other chain vertex, returning it with its chain position.
func (g *Triangulation[T]) findDelaunayPoint(ia, ib VertInd, points []VertInd) (VertInd, int) {
	a := g.Vertices[ia]
	b := g.Vertices[ib]
	ic, at := points[0], 0
	for i, iP := range points[1:] {
		if isInCircumcircle(g.Vertices[iP], a, b, g.Vertices[ic]) {
			ic, at = iP, i+1
		}
	}
	return ic, at
}

// pseudopolyOuterTriangle finds the surviving triangle bordering edge
// (ia, ib) from outside the pseudopolygon.
func (g *Triangulation[T]) pseudopolyOuterTriangle(ia, ib VertInd) TriInd {
	for _, iT := range g.VertTris[ia] {
		if g.Triangles[iT].containsVertex(ib) {
			return iT
		}
	}
	return NoNeighbor
}

func reverse(points []VertInd) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
