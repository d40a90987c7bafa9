package advanced

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleTriangle(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices([]V2d[float64]{{0, 0}, {1, 0}, {0, 1}}))
	requireValidTriangulation(t, g)

	g.EraseSuperTriangle()
	requireValidTriangulation(t, g)
	require.Len(t, g.Triangles, 1)
	assert.ElementsMatch(t, []VertInd{0, 1, 2}, g.Triangles[0].Vertices[:])
	assert.Empty(t, g.FixedEdges)
}

func TestSquareWithDiagonalConstraint(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices([]V2d[float64]{{0, 0}, {1, 0}, {1, 1}, {0, 1}}))
	require.NoError(t, g.InsertEdges([]Edge{NewEdge(0, 2)}))
	requireValidTriangulation(t, g)

	g.EraseSuperTriangle()
	requireValidTriangulation(t, g)
	require.Len(t, g.Triangles, 2)
	assert.Contains(t, g.FixedEdges, NewEdge(0, 2))
	for _, tri := range g.Triangles {
		assert.True(t, tri.containsVertex(0) && tri.containsVertex(2),
			"both triangles must share the constrained diagonal")
	}
}

func squareWithHole() ([]V2d[float64], []Edge) {
	points := []V2d[float64]{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		{3, 3}, {7, 3}, {7, 7}, {3, 7},
	}
	edges := []Edge{
		NewEdge(0, 1), NewEdge(1, 2), NewEdge(2, 3), NewEdge(3, 0),
		NewEdge(4, 5), NewEdge(5, 6), NewEdge(6, 7), NewEdge(7, 4),
	}
	return points, edges
}

func TestSquareWithHole(t *testing.T) {
	points, edges := squareWithHole()
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices(points))
	require.NoError(t, g.InsertEdges(edges))
	requireValidTriangulation(t, g)

	g.EraseOuterTrianglesAndHoles()
	g.dbgDraw(20, true)
	requireValidTriangulation(t, g)
	assert.InDelta(t, 100.0-16.0, totalArea(g), 1e-9)
	for _, tri := range g.Triangles {
		c := centroid(g, tri)
		assert.False(t, 3 < c.X && c.X < 7 && 3 < c.Y && c.Y < 7,
			"triangle %v intrudes into the hole", tri.Vertices)
	}
}

func TestOverlappingBoundaries(t *testing.T) {
	points := []V2d[float64]{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	loop := []Edge{NewEdge(0, 1), NewEdge(1, 2), NewEdge(2, 3), NewEdge(3, 0)}
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices(points))
	require.NoError(t, g.InsertEdges(loop))
	require.NoError(t, g.InsertEdges(loop))
	requireValidTriangulation(t, g)

	require.Len(t, g.OverlapCount, 4)
	for _, e := range loop {
		internal := NewEdge(e.V1()+3, e.V2()+3)
		assert.Equal(t, BoundaryOverlapCount(1), g.OverlapCount[internal])
	}

	// Crossing a doubly-inserted boundary jumps two layers at once.
	depths := CalculateTriangleDepthsWithOverlaps(
		g.VertTris[0][0], g.Triangles, g.FixedEdges, g.OverlapCount)
	for iT, tri := range g.Triangles {
		c := centroid(g, tri)
		inside := 0 < c.X && c.X < 10 && 0 < c.Y && c.Y < 10
		if inside {
			assert.Equal(t, LayerDepth(2), depths[iT])
		} else {
			assert.Equal(t, LayerDepth(0), depths[iT])
		}
	}

	// Depth 2 is even, so the doubled boundary encloses only hole space.
	g.EraseOuterTrianglesAndHoles()
	assert.Empty(t, g.Triangles)
}

func TestConstraintThroughVertexIsSplit(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices([]V2d[float64]{{0, 0}, {1, 0}, {2, 0}, {1, 1}}))
	require.NoError(t, g.InsertEdges([]Edge{NewEdge(0, 2)}))
	requireValidTriangulation(t, g)

	g.EraseSuperTriangle()
	requireValidTriangulation(t, g)
	require.Len(t, g.Triangles, 2)
	assert.Contains(t, g.FixedEdges, NewEdge(0, 1))
	assert.Contains(t, g.FixedEdges, NewEdge(1, 2))
	assert.NotContains(t, g.FixedEdges, NewEdge(0, 2))
}

func TestVertexOnFixedEdgeSplitsIt(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices([]V2d[float64]{{0, 0}, {2, 0}, {1, 2}}))
	require.NoError(t, g.InsertEdges([]Edge{NewEdge(0, 1)}))
	// Internally the user vertices are 3, 4, 5; the new vertex becomes 6
	// and lands exactly on the fixed edge (3, 4).
	require.NoError(t, g.InsertVertices([]V2d[float64]{{1, 0}}))
	requireValidTriangulation(t, g)
	assert.NotContains(t, g.FixedEdges, NewEdge(3, 4))
	assert.Contains(t, g.FixedEdges, NewEdge(3, 6))
	assert.Contains(t, g.FixedEdges, NewEdge(4, 6))
}

func TestConstraintsCrossError(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices([]V2d[float64]{{0, 0}, {1, 0}, {1, 1}, {0, 1}}))
	require.NoError(t, g.InsertEdges([]Edge{NewEdge(0, 2)}))
	err := g.InsertEdges([]Edge{NewEdge(1, 3)})
	require.ErrorIs(t, err, ErrConstraintsCross)
	// The earlier constraint survives and the mesh stays consistent.
	requireValidTriangulation(t, g)
	assert.Contains(t, g.FixedEdges, NewEdge(3, 5))
}

func TestNonFiniteVertexIsRejected(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	err := g.InsertVertices([]V2d[float64]{{0, 0}, {math.NaN(), 1}})
	require.Error(t, err)
	assert.Empty(t, g.Vertices, "rejected input must not mutate the mesh")
}

func TestEdgeOutOfRangeIsRejected(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices([]V2d[float64]{{0, 0}, {1, 0}, {0, 1}}))
	err := g.InsertEdges([]Edge{NewEdge(0, 5)})
	require.Error(t, err)
	requireValidTriangulation(t, g)
}

func TestRandomizedInsertionIsDeterministic(t *testing.T) {
	points := randomPoints(200, 17)
	build := func() *Triangulation[float64] {
		g := NewTriangulation[float64](Randomized)
		require.NoError(t, g.InsertVertices(points))
		return g
	}
	g1 := build()
	g2 := build()
	requireValidTriangulation(t, g1)
	assert.Equal(t, g1.Vertices, g2.Vertices)
	assert.Equal(t, g1.Triangles, g2.Triangles)
}

func TestRandomPointCloudInvariants(t *testing.T) {
	for _, order := range []VertexInsertionOrder{AsProvided, Randomized} {
		points := randomPoints(300, 1)
		g := NewTriangulation[float64](order)
		require.NoError(t, g.InsertVertices(points))
		requireValidTriangulation(t, g)

		g.EraseSuperTriangle()
		requireValidTriangulation(t, g)
		require.Len(t, g.Vertices, len(points))
	}
}

func TestConstrainedBoundaryKeepsArea(t *testing.T) {
	points := []V2d[float64]{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		points = append(points, V2d[float64]{1 + 8*rng.Float64(), 1 + 8*rng.Float64()})
	}
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVertices(points))
	require.NoError(t, g.InsertEdges([]Edge{
		NewEdge(0, 1), NewEdge(1, 2), NewEdge(2, 3), NewEdge(3, 0),
	}))
	requireValidTriangulation(t, g)

	g.EraseOuterTriangles()
	requireValidTriangulation(t, g)
	assert.InDelta(t, 100.0, totalArea(g), 1e-9)
}

func TestInsertVerticesBy(t *testing.T) {
	xs := []float64{0, 2, 1}
	ys := []float64{0, 0, 2}
	g := NewTriangulation[float64](AsProvided)
	require.NoError(t, g.InsertVerticesBy(len(xs),
		func(i int) float64 { return xs[i] },
		func(i int) float64 { return ys[i] }))
	require.NoError(t, g.InsertEdgesBy(1,
		func(i int) int { return 0 },
		func(i int) int { return 1 }))
	g.EraseSuperTriangle()
	requireValidTriangulation(t, g)
	require.Len(t, g.Triangles, 1)
	assert.Contains(t, g.FixedEdges, NewEdge(0, 1))
}

func TestCustomSuperGeometry(t *testing.T) {
	g := NewTriangulation[float64](AsProvided)
	// A hand-built quad as the enclosing region.
	g.Vertices = []V2d[float64]{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	g.Triangles = []Triangle{
		{Vertices: [3]VertInd{0, 1, 3}, Neighbors: [3]TriInd{1, NoNeighbor, NoNeighbor}},
		{Vertices: [3]VertInd{1, 2, 3}, Neighbors: [3]TriInd{NoNeighbor, 0, NoNeighbor}},
	}
	g.VertTris = [][]TriInd{{0}, {0, 1}, {1}, {0, 1}}
	g.InitializedWithCustomSuperGeometry()

	require.NoError(t, g.InsertVertices([]V2d[float64]{{4, 4}}))
	requireValidTriangulation(t, g)
	require.Len(t, g.Triangles, 4)

	g.EraseSuperTriangle()
	require.Len(t, g.Triangles, 4, "custom geometry is never erased")
}

func randomPoints(n int, seed int64) []V2d[float64] {
	rng := rand.New(rand.NewSource(seed))
	points := make([]V2d[float64], n)
	for i := range points {
		points[i] = V2d[float64]{rng.Float64() * 100, rng.Float64() * 100}
	}
	return points
}
