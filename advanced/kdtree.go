package advanced

import "golang.org/x/exp/constraints"

// NearPointLocator supplies a previously added vertex near a query
// position, used to seed the triangle walk during point location. It does
// not have to return the exact nearest vertex; any vertex whose incident
// triangles are close keeps the walk short.
type NearPointLocator[T constraints.Float] interface {
	AddPoint(pos V2d[T], iV VertInd)
	NearPoint(pos V2d[T]) VertInd
}

// KDTree is the default locator: a 2D k-d tree with alternating split axes
// and no rebalancing. Insertion order is the engine's insertion schedule,
// which is already shuffled under Randomized ordering.
type KDTree[T constraints.Float] struct {
	root *kdNode[T]
}

type kdNode[T constraints.Float] struct {
	pos         V2d[T]
	iV          VertInd
	left, right *kdNode[T]
}

// NewKDTree makes an empty k-d tree locator.
func NewKDTree[T constraints.Float]() *KDTree[T] {
	return &KDTree[T]{}
}

// AddPoint inserts a vertex index at the given position.
func (k *KDTree[T]) AddPoint(pos V2d[T], iV VertInd) {
	node := &kdNode[T]{pos: pos, iV: iV}
	if k.root == nil {
		k.root = node
		return
	}
	cur := k.root
	for axis := 0; ; axis ^= 1 {
		next := &cur.right
		if coord(pos, axis) < coord(cur.pos, axis) {
			next = &cur.left
		}
		if *next == nil {
			*next = node
			return
		}
		cur = *next
	}
}

// NearPoint returns the vertex nearest to pos among those added.
func (k *KDTree[T]) NearPoint(pos V2d[T]) VertInd {
	if k.root == nil {
		fatalf("near-point query on an empty locator")
	}
	best := k.root
	bestDist := distSq(pos, k.root.pos)
	nearest(k.root, pos, 0, &best, &bestDist)
	return best.iV
}

func nearest[T constraints.Float](n *kdNode[T], pos V2d[T], axis int, best **kdNode[T], bestDist *T) {
	if n == nil {
		return
	}
	if d := distSq(pos, n.pos); d < *bestDist {
		*best, *bestDist = n, d
	}
	delta := coord(pos, axis) - coord(n.pos, axis)
	near, far := n.left, n.right
	if delta >= 0 {
		near, far = n.right, n.left
	}
	nearest(near, pos, axis^1, best, bestDist)
	// The far side can only help if the splitting line is closer than the
	// best match so far.
	if delta*delta < *bestDist {
		nearest(far, pos, axis^1, best, bestDist)
	}
}

func coord[T constraints.Float](p V2d[T], axis int) T {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func distSq[T constraints.Float](a, b V2d[T]) T {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
