package advanced

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrient2d(t *testing.T) {
	a := V2d[float64]{0, 0}
	b := V2d[float64]{1, 0}
	assert.Positive(t, orient2d(a, b, V2d[float64]{0, 1}), "left turn is CCW")
	assert.Negative(t, orient2d(a, b, V2d[float64]{0, -1}), "right turn is CW")
	assert.Zero(t, orient2d(a, b, V2d[float64]{2, 0}), "collinear")
}

func TestLocatePointLine(t *testing.T) {
	a := V2d[float64]{0, 0}
	b := V2d[float64]{2, 2}
	assert.Equal(t, leftOfLine, locatePointLine(V2d[float64]{0, 1}, a, b))
	assert.Equal(t, rightOfLine, locatePointLine(V2d[float64]{1, 0}, a, b))
	assert.Equal(t, onLine, locatePointLine(V2d[float64]{3, 3}, a, b))
}

func TestIsInCircumcircle(t *testing.T) {
	// Unit circle through three of the square's corners.
	a := V2d[float64]{1, 0}
	b := V2d[float64]{0, 1}
	c := V2d[float64]{-1, 0}
	assert.True(t, isInCircumcircle(V2d[float64]{0, 0}, a, b, c))
	assert.False(t, isInCircumcircle(V2d[float64]{2, 0}, a, b, c))
	assert.False(t, isInCircumcircle(V2d[float64]{0, -1}, a, b, c),
		"cocircular point is not strictly inside")
}

func TestLocatePointTriangle(t *testing.T) {
	v1 := V2d[float64]{0, 0}
	v2 := V2d[float64]{2, 0}
	v3 := V2d[float64]{0, 2}
	assert.Equal(t, ptTriInside, locatePointTriangle(V2d[float64]{0.5, 0.5}, v1, v2, v3))
	assert.Equal(t, ptTriOutside, locatePointTriangle(V2d[float64]{2, 2}, v1, v2, v3))
	assert.Equal(t, ptTriOnEdge1, locatePointTriangle(V2d[float64]{1, 0}, v1, v2, v3))
	assert.Equal(t, ptTriOnEdge2, locatePointTriangle(V2d[float64]{1, 1}, v1, v2, v3))
	assert.Equal(t, ptTriOnEdge3, locatePointTriangle(V2d[float64]{0, 1}, v1, v2, v3))
}

func TestIsOnEdge(t *testing.T) {
	a := V2d[float64]{0, 0}
	b := V2d[float64]{2, 2}
	assert.True(t, isOnEdge(V2d[float64]{1, 1}, a, b))
	assert.True(t, isOnEdge(a, a, b), "endpoints are on the edge")
	assert.False(t, isOnEdge(V2d[float64]{3, 3}, a, b), "collinear but beyond the box")
	assert.False(t, isOnEdge(V2d[float64]{1, 0}, a, b))
}

func TestSegmentsIntersect(t *testing.T) {
	assert.True(t, segmentsIntersect(
		V2d[float64]{0, 0}, V2d[float64]{2, 2},
		V2d[float64]{0, 2}, V2d[float64]{2, 0}))
	assert.False(t, segmentsIntersect(
		V2d[float64]{0, 0}, V2d[float64]{2, 2},
		V2d[float64]{3, 0}, V2d[float64]{3, 4}))
	assert.False(t, segmentsIntersect(
		V2d[float64]{0, 0}, V2d[float64]{2, 2},
		V2d[float64]{2, 2}, V2d[float64]{3, 0}), "endpoint touch is not a crossing")
}

func TestEnvelopBox(t *testing.T) {
	box := EnvelopBox([]V2d[float64]{{1, 5}, {-2, 3}, {4, -1}})
	assert.Equal(t, V2d[float64]{-2, -1}, box.Min)
	assert.Equal(t, V2d[float64]{4, 5}, box.Max)
}

func TestSuperTriangleContainsBox(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		points := make([]V2d[float64], 10)
		for i := range points {
			points[i] = V2d[float64]{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		}
		vs := superTriangleOf(EnvelopBox(points))
		require.Positive(t, orient2d(vs[0], vs[1], vs[2]), "super-triangle must be CCW")
		for _, p := range points {
			assert.Equal(t, ptTriInside, locatePointTriangle(p, vs[0], vs[1], vs[2]),
				"input point %v must be strictly inside the super-triangle", p)
		}
	}
}

func TestSuperTriangleDegenerateBox(t *testing.T) {
	// A single point still gets a proper enclosing triangle.
	vs := superTriangleOf(EnvelopBox([]V2d[float64]{{5, 5}}))
	assert.Equal(t, ptTriInside, locatePointTriangle(V2d[float64]{5, 5}, vs[0], vs[1], vs[2]))
}
