package advanced

import "golang.org/x/exp/constraints"

// All predicates are sign tests on floating point polynomial expressions.
// A zero is the degenerate case it names: collinear, cocircular, touching.
// On pathological input the sign can be wrong by a hair, so every search
// loop in the engine is bounded rather than trusting the exact-arithmetic
// termination argument.

// orient2d returns twice the signed area of triangle (a, b, c). Positive
// means counterclockwise.
func orient2d[T constraints.Float](a, b, c V2d[T]) T {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

type ptLineLocation int

const (
	onLine ptLineLocation = iota
	leftOfLine
	rightOfLine
)

// locatePointLine classifies p against the directed line v1→v2.
func locatePointLine[T constraints.Float](p, v1, v2 V2d[T]) ptLineLocation {
	o := orient2d(v1, v2, p)
	switch {
	case o > 0:
		return leftOfLine
	case o < 0:
		return rightOfLine
	}
	return onLine
}

// isInCircumcircle reports whether p lies strictly inside the circle
// through the counterclockwise triangle (a, b, c). It is the sign of the
// standard 4x4 in-circle determinant.
func isInCircumcircle[T constraints.Float](p, a, b, c V2d[T]) bool {
	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y
	aLift := adx*adx + ady*ady
	bLift := bdx*bdx + bdy*bdy
	cLift := cdx*cdx + cdy*cdy
	det := adx*(bdy*cLift-bLift*cdy) -
		ady*(bdx*cLift-bLift*cdx) +
		aLift*(bdx*cdy-bdy*cdx)
	return det > 0
}

type ptTriLocation int

const (
	ptTriInside ptTriLocation = iota
	ptTriOutside
	// Edge k joins triangle vertices k and ccw(k).
	ptTriOnEdge1
	ptTriOnEdge2
	ptTriOnEdge3
)

func onEdge(k int) ptTriLocation { return ptTriOnEdge1 + ptTriLocation(k) }

func edgeIndex(loc ptTriLocation) int { return int(loc - ptTriOnEdge1) }

// locatePointTriangle classifies p against the counterclockwise triangle
// (v1, v2, v3). A point coinciding with a vertex is reported on one of the
// vertex's edges; callers must deduplicate vertices upstream.
func locatePointTriangle[T constraints.Float](p, v1, v2, v3 V2d[T]) ptTriLocation {
	loc := ptTriInside
	for k, e := range [3][2]V2d[T]{{v1, v2}, {v2, v3}, {v3, v1}} {
		switch locatePointLine(p, e[0], e[1]) {
		case rightOfLine:
			return ptTriOutside
		case onLine:
			loc = onEdge(k)
		}
	}
	return loc
}

// isOnEdge reports whether p is collinear with segment ab and within its
// bounding box.
func isOnEdge[T constraints.Float](p, a, b V2d[T]) bool {
	if locatePointLine(p, a, b) != onLine {
		return false
	}
	return inRange(p.X, a.X, b.X) && inRange(p.Y, a.Y, b.Y)
}

func inRange[T constraints.Float](v, bound1, bound2 T) bool {
	if bound1 > bound2 {
		bound1, bound2 = bound2, bound1
	}
	return bound1 <= v && v <= bound2
}

// segmentsIntersect reports whether the open segments ab and cd properly
// cross. Touching at an endpoint or mere collinear overlap does not count.
func segmentsIntersect[T constraints.Float](a, b, c, d V2d[T]) bool {
	o1 := locatePointLine(c, a, b)
	o2 := locatePointLine(d, a, b)
	o3 := locatePointLine(a, c, d)
	o4 := locatePointLine(b, c, d)
	if o1 == onLine || o2 == onLine || o3 == onLine || o4 == onLine {
		return false
	}
	return o1 != o2 && o3 != o4
}

// EnvelopBox computes the axis-aligned bounding box of the points.
func EnvelopBox[T constraints.Float](points []V2d[T]) Box2d[T] {
	box := Box2d[T]{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
	}
	return box
}

// superTriangleOf builds three counterclockwise vertices of a triangle
// strictly containing every point of the box. The half-extent is padded so
// points on the box boundary stay clear of the triangle's edges.
func superTriangleOf[T constraints.Float](box Box2d[T]) [3]V2d[T] {
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	r := box.Max.X - box.Min.X
	if h := box.Max.Y - box.Min.Y; h > r {
		r = h
	}
	r /= 2
	if r == 0 {
		r = 1
	}
	r *= 1.1
	return [3]V2d[T]{
		{cx - 3*r, cy - 3*r},
		{cx + 3*r, cy - 3*r},
		{cx, cy + 3*r},
	}
}
