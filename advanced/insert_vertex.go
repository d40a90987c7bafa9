package advanced

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// InsertVertices appends points to the triangulation and inserts each into
// the mesh. On the first call the mesh is seeded with a super-triangle
// strictly containing all input. Input points must be distinct; run the
// duplicate removal utilities first if they may not be.
//
// A non-finite coordinate fails the whole call before anything is inserted.
func (g *Triangulation[T]) InsertVertices(points []V2d[T]) (err error) {
	defer func() { handlePanic(recover(), &err) }()
	for _, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return errors.Errorf("vertex coordinate is not finite: (%v, %v)", p.X, p.Y)
		}
	}
	if len(points) == 0 {
		return nil
	}
	if len(g.Vertices) == 0 {
		g.addSuperTriangle(EnvelopBox(points))
	}
	nExisting := VertInd(len(g.Vertices))
	for _, p := range points {
		g.addNewVertex(p, nil)
	}
	switch g.insertionOrder {
	case AsProvided:
		for i := range points {
			g.insertVertex(nExisting + VertInd(i))
		}
	case Randomized:
		order := make([]VertInd, len(points))
		for i := range order {
			order[i] = nExisting + VertInd(i)
		}
		g.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, iV := range order {
			g.insertVertex(iV)
		}
	}
	return nil
}

// InsertVerticesBy inserts n vertices read through coordinate accessors,
// for callers whose points live in their own vertex type.
func (g *Triangulation[T]) InsertVerticesBy(n int, getX, getY func(i int) T) error {
	points := make([]V2d[T], n)
	for i := range points {
		points[i] = V2d[T]{getX(i), getY(i)}
	}
	return g.InsertVertices(points)
}

func isFinite[T constraints.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (g *Triangulation[T]) insertVertex(iV VertInd) {
	pos := g.Vertices[iV]
	iT1, iT2 := g.trianglesAt(pos)
	var stack []TriInd
	if iT2 == NoNeighbor {
		stack = g.insertPointInTriangle(iV, iT1)
	} else {
		stack = g.insertPointOnEdge(iV, iT1, iT2)
	}
	g.ensureDelaunay(iV, pos, stack)
	g.nearPtLocator.AddPoint(pos, iV)
}

// ensureDelaunay pops triangles incident to the newly inserted vertex and
// flips the edges opposite it until no flip is needed. Flipping puts both
// resulting triangles back on the stack.
func (g *Triangulation[T]) ensureDelaunay(iV VertInd, pos V2d[T], stack []TriInd) {
	for len(stack) > 0 {
		iT := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		iTopo := g.Triangles[iT].opposedTriangle(iV)
		if iTopo == NoNeighbor {
			continue
		}
		if g.isFlipNeeded(pos, iT, iTopo, iV) {
			g.flipEdge(iT, iTopo)
			stack = append(stack, iT, iTopo)
		}
	}
}

// isFlipNeeded reports whether the edge of iT opposite iV must be flipped
// to restore the Delaunay condition: the edge is not fixed and the vertex
// of iTopo across it falls strictly inside the circumcircle of iT.
func (g *Triangulation[T]) isFlipNeeded(pos V2d[T], iT, iTopo TriInd, iV VertInd) bool {
	t := g.Triangles[iT]
	i := t.vertexInd(iV)
	iV1 := t.Vertices[ccw(i)]
	iV2 := t.Vertices[cw(i)]
	if _, fixed := g.FixedEdges[NewEdge(iV1, iV2)]; fixed {
		return false
	}
	iVopo := g.Triangles[iTopo].opposedVertex(iT)
	return isInCircumcircle(g.Vertices[iVopo], pos, g.Vertices[iV1], g.Vertices[iV2])
}

// trianglesAt locates pos in the mesh: the containing triangle and
// NoNeighbor when pos is strictly inside it, or the two triangles sharing
// the edge pos falls on.
func (g *Triangulation[T]) trianglesAt(pos V2d[T]) (TriInd, TriInd) {
	iT := g.walkTriangles(g.nearPtLocator.NearPoint(pos), pos)
	t := g.Triangles[iT]
	v1 := g.Vertices[t.Vertices[0]]
	v2 := g.Vertices[t.Vertices[1]]
	v3 := g.Vertices[t.Vertices[2]]
	loc := locatePointTriangle(pos, v1, v2, v3)
	if loc == ptTriOutside {
		// The walk was cut short by an inexact predicate. Land on an edge
		// the point is collinear with, or failing that the edge with the
		// lowest orientation value (the one pos lies farthest beyond), and
		// let the on-edge split absorb the error.
		for i := 0; i < 3 && loc == ptTriOutside; i++ {
			if isOnEdge(pos, g.Vertices[t.Vertices[i]], g.Vertices[t.Vertices[ccw(i)]]) {
				loc = onEdge(i)
			}
		}
		if loc == ptTriOutside {
			loc = onEdge(g.closestTriEdge(iT, pos))
		}
	}
	if loc == ptTriInside {
		return iT, NoNeighbor
	}
	i := edgeIndex(loc)
	return iT, t.Neighbors[cw(i)]
}

func (g *Triangulation[T]) closestTriEdge(iT TriInd, pos V2d[T]) int {
	t := g.Triangles[iT]
	closest, lowest := 0, T(0)
	for i := 0; i < 3; i++ {
		o := orient2d(g.Vertices[t.Vertices[i]], g.Vertices[t.Vertices[ccw(i)]], pos)
		if i == 0 || o < lowest {
			closest, lowest = i, o
		}
	}
	return closest
}

// walkTriangles walks from a seed triangle of startVertex toward pos,
// crossing at each step an edge whose line separates pos from the current
// triangle's interior. The walk is bounded by the triangle count since the
// inexact predicates void the usual termination argument.
func (g *Triangulation[T]) walkTriangles(startVertex VertInd, pos V2d[T]) TriInd {
	iT := g.VertTris[startVertex][0]
	for steps := 0; steps <= len(g.Triangles); steps++ {
		t := g.Triangles[iT]
		moved := false
		for k := 0; k < 3 && !moved; k++ {
			// Rotate which edge is tested first so ties break
			// deterministically without always favoring one direction.
			i := (k + steps) % 3
			iN := t.Neighbors[cw(i)]
			if iN == NoNeighbor {
				continue
			}
			v1 := g.Vertices[t.Vertices[i]]
			v2 := g.Vertices[t.Vertices[ccw(i)]]
			if locatePointLine(pos, v1, v2) == rightOfLine {
				iT = iN
				moved = true
			}
		}
		if !moved {
			return iT
		}
	}
	return iT
}

/* Split the containing triangle into three.
 *
 *             v3
 *            / | \
 *   new2    /  |  \    new1
 *          /   v   \
 *         /  _/ \_  \
 *        / _/  t  \_ \
 *      v1 ----------- v2
 */
func (g *Triangulation[T]) insertPointInTriangle(iV VertInd, iT TriInd) []TriInd {
	iNew1 := g.reserveTriangle()
	iNew2 := g.reserveTriangle()
	t := g.Triangles[iT]
	iV1, iV2, iV3 := t.Vertices[0], t.Vertices[1], t.Vertices[2]
	n1, n2, n3 := t.Neighbors[0], t.Neighbors[1], t.Neighbors[2]
	g.Triangles[iNew1] = Triangle{[3]VertInd{iV2, iV3, iV}, [3]TriInd{iNew2, iT, n1}}
	g.Triangles[iNew2] = Triangle{[3]VertInd{iV3, iV1, iV}, [3]TriInd{iT, iNew1, n2}}
	g.Triangles[iT] = Triangle{[3]VertInd{iV1, iV2, iV}, [3]TriInd{iNew1, iNew2, n3}}
	g.addAdjacentTriangles(iV, iT, iNew1, iNew2)
	g.addAdjacentTriangle(iV1, iNew2)
	g.addAdjacentTriangle(iV2, iNew1)
	g.removeAdjacentTriangle(iV3, iT)
	g.addAdjacentTriangles(iV3, iNew1, iNew2)
	g.changeNeighbor(n1, iT, iNew1)
	g.changeNeighbor(n2, iT, iNew2)
	return []TriInd{iT, iNew1, iNew2}
}

/* Split the two triangles sharing the edge pos lies on into four.
 *
 *           v1
 *          /|\
 *      n3 / | \ n4
 *        /  |  \
 *      v2 - v - v4
 *        \  |  /
 *      n2 \ | / n1
 *          \|/
 *           v3
 */
func (g *Triangulation[T]) insertPointOnEdge(iV VertInd, iT1, iT2 TriInd) []TriInd {
	iTnew1 := g.reserveTriangle()
	iTnew2 := g.reserveTriangle()
	t1 := g.Triangles[iT1]
	t2 := g.Triangles[iT2]
	i := t1.neighborInd(iT2)
	iV1, iV2 := t1.Vertices[i], t1.Vertices[ccw(i)]
	n3, n4 := t1.Neighbors[cw(i)], t1.Neighbors[ccw(i)]
	j := t2.neighborInd(iT1)
	iV3, iV4 := t2.Vertices[j], t2.Vertices[ccw(j)]
	n1, n2 := t2.Neighbors[cw(j)], t2.Neighbors[ccw(j)]

	g.Triangles[iT1] = Triangle{[3]VertInd{iV1, iV2, iV}, [3]TriInd{iTnew2, iTnew1, n3}}
	g.Triangles[iTnew1] = Triangle{[3]VertInd{iV1, iV, iV4}, [3]TriInd{iT2, n4, iT1}}
	g.Triangles[iT2] = Triangle{[3]VertInd{iV3, iV4, iV}, [3]TriInd{iTnew1, iTnew2, n1}}
	g.Triangles[iTnew2] = Triangle{[3]VertInd{iV3, iV, iV2}, [3]TriInd{iT1, n2, iT2}}

	g.addAdjacentTriangles(iV, iT1, iTnew2, iT2, iTnew1)
	g.addAdjacentTriangle(iV1, iTnew1)
	g.addAdjacentTriangle(iV3, iTnew2)
	g.removeAdjacentTriangle(iV4, iT1)
	g.addAdjacentTriangle(iV4, iTnew1)
	g.removeAdjacentTriangle(iV2, iT2)
	g.addAdjacentTriangle(iV2, iTnew2)
	g.changeNeighbor(n4, iT1, iTnew1)
	g.changeNeighbor(n2, iT2, iTnew2)

	// Splitting a fixed edge leaves two fixed halves. Overlap counts do not
	// carry over; coinciding constraints must be re-inserted to be counted.
	splitEdge := NewEdge(iV2, iV4)
	if _, fixed := g.FixedEdges[splitEdge]; fixed {
		delete(g.FixedEdges, splitEdge)
		delete(g.OverlapCount, splitEdge)
		g.FixedEdges[NewEdge(iV2, iV)] = struct{}{}
		g.FixedEdges[NewEdge(iV, iV4)] = struct{}{}
	}
	return []TriInd{iT1, iTnew2, iT2, iTnew1}
}

/* Swap the diagonal of the quadrilateral formed by iT and iTopo.
 *
 *        vT                vT
 *       / \               /|\
 *   n3 / t \ n4       n3 / | \ n4
 *     /_____\           /  |  \
 *    a ~~~~~ b    →    a  t|opo b
 *     \     /           \  |  /
 *   n1 \opo/ n2       n1 \ | / n2
 *       \ /               \|/
 *       vOpo              vOpo
 */
func (g *Triangulation[T]) flipEdge(iT, iTopo TriInd) {
	t := g.Triangles[iT]
	tOpo := g.Triangles[iTopo]
	i := t.neighborInd(iTopo)
	vT := t.Vertices[i]
	a := t.Vertices[ccw(i)]
	b := t.Vertices[cw(i)]
	n4 := t.Neighbors[ccw(i)]
	n3 := t.Neighbors[cw(i)]
	j := tOpo.neighborInd(iT)
	vOpo := tOpo.Vertices[j]
	n1 := tOpo.Neighbors[ccw(j)]
	n2 := tOpo.Neighbors[cw(j)]

	g.Triangles[iT] = Triangle{[3]VertInd{vT, a, vOpo}, [3]TriInd{n1, iTopo, n3}}
	g.Triangles[iTopo] = Triangle{[3]VertInd{vOpo, b, vT}, [3]TriInd{n4, iT, n2}}
	g.changeNeighbor(n1, iTopo, iT)
	g.changeNeighbor(n4, iT, iTopo)
	g.addAdjacentTriangle(vT, iTopo)
	g.addAdjacentTriangle(vOpo, iT)
	g.removeAdjacentTriangle(a, iTopo)
	g.removeAdjacentTriangle(b, iT)
}
