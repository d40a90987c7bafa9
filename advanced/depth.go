package advanced

import "math"

// Triangle depths are computed by peeling layers. A flood from the seed
// marks everything reachable across non-fixed edges with the current
// depth; triangles found behind fixed edges become seeds for deeper
// layers. Crossing an edge on which k+1 constraint boundaries coincide
// jumps k+1 layers at once, so the overlap-aware variant keys its pending
// seeds by target depth.

const unsetDepth = LayerDepth(math.MaxUint16)

// PeelLayer assigns layerDepth to every triangle reachable from the seeds
// without crossing a fixed edge and returns the set of triangles found
// behind fixed edges, to be used as seeds of the next layer.
func PeelLayer(seeds []TriInd, triangles []Triangle, fixedEdges map[Edge]struct{}, layerDepth LayerDepth, triDepths []LayerDepth) map[TriInd]struct{} {
	behindBoundary := make(map[TriInd]struct{})
	for len(seeds) > 0 {
		iT := seeds[len(seeds)-1]
		seeds = seeds[:len(seeds)-1]
		triDepths[iT] = layerDepth
		delete(behindBoundary, iT)
		t := triangles[iT]
		for i := 0; i < 3; i++ {
			iN := t.Neighbors[i]
			if iN == NoNeighbor || triDepths[iN] <= layerDepth {
				continue
			}
			opEdge := NewEdge(t.Vertices[ccw(i)], t.Vertices[cw(i)])
			if _, fixed := fixedEdges[opEdge]; fixed {
				behindBoundary[iN] = struct{}{}
				continue
			}
			seeds = append(seeds, iN)
		}
	}
	return behindBoundary
}

// PeelLayerWithOverlaps is PeelLayer for triangulations with overlapping
// boundaries: triangles behind a fixed edge are returned with the depth
// they should be entered at, layerDepth + overlaps + 1.
func PeelLayerWithOverlaps(seeds []TriInd, triangles []Triangle, fixedEdges map[Edge]struct{}, overlapCount map[Edge]BoundaryOverlapCount, layerDepth LayerDepth, triDepths []LayerDepth) map[TriInd]LayerDepth {
	behindBoundary := make(map[TriInd]LayerDepth)
	for len(seeds) > 0 {
		iT := seeds[len(seeds)-1]
		seeds = seeds[:len(seeds)-1]
		triDepths[iT] = layerDepth
		delete(behindBoundary, iT)
		t := triangles[iT]
		for i := 0; i < 3; i++ {
			iN := t.Neighbors[i]
			if iN == NoNeighbor || triDepths[iN] <= layerDepth {
				continue
			}
			opEdge := NewEdge(t.Vertices[ccw(i)], t.Vertices[cw(i)])
			if _, fixed := fixedEdges[opEdge]; fixed {
				behindBoundary[iN] = layerDepth + overlapCount[opEdge] + 1
				continue
			}
			seeds = append(seeds, iN)
		}
	}
	return behindBoundary
}

// CalculateTriangleDepths peels layers from the seed triangle outward-in:
// depth 0 is outside any constraint boundary, 1 inside the outermost
// boundary, 2 inside a hole, 3 inside an island, and so on.
func CalculateTriangleDepths(seed TriInd, triangles []Triangle, fixedEdges map[Edge]struct{}) []LayerDepth {
	triDepths := newDepths(len(triangles))
	seeds := []TriInd{seed}
	for layerDepth := LayerDepth(0); len(seeds) > 0; layerDepth++ {
		newSeeds := PeelLayer(seeds, triangles, fixedEdges, layerDepth, triDepths)
		seeds = seeds[:0]
		for iT := range newSeeds {
			seeds = append(seeds, iT)
		}
	}
	return triDepths
}

// CalculateTriangleDepthsWithOverlaps is CalculateTriangleDepths for
// triangulations where constraint boundaries may coincide: crossing an
// edge with overlap count k enters depth layerDepth + k + 1. Layers are
// entered in sorted depth order so a deep seed cannot shadow a shallower
// path to the same triangle.
func CalculateTriangleDepthsWithOverlaps(seed TriInd, triangles []Triangle, fixedEdges map[Edge]struct{}, overlapCount map[Edge]BoundaryOverlapCount) []LayerDepth {
	triDepths := newDepths(len(triangles))
	seeds := []TriInd{seed}
	layerDepth := LayerDepth(0)
	deepestSeedDepth := LayerDepth(0)
	seedsByDepth := make(map[LayerDepth]map[TriInd]struct{})
	for {
		newSeeds := PeelLayerWithOverlaps(seeds, triangles, fixedEdges, overlapCount, layerDepth, triDepths)
		delete(seedsByDepth, layerDepth)
		for iT, depth := range newSeeds {
			if depth > deepestSeedDepth {
				deepestSeedDepth = depth
			}
			byDepth := seedsByDepth[depth]
			if byDepth == nil {
				byDepth = make(map[TriInd]struct{})
				seedsByDepth[depth] = byDepth
			}
			byDepth[iT] = struct{}{}
		}
		layerDepth++
		seeds = seeds[:0]
		for iT := range seedsByDepth[layerDepth] {
			// A pending seed may have been reached on a shallower path in
			// the meantime; its recorded depth wins.
			if triDepths[iT] < layerDepth {
				continue
			}
			seeds = append(seeds, iT)
		}
		if len(seeds) == 0 && deepestSeedDepth <= layerDepth {
			break
		}
	}
	return triDepths
}

func newDepths(n int) []LayerDepth {
	triDepths := make([]LayerDepth, n)
	for i := range triDepths {
		triDepths[i] = unsetDepth
	}
	return triDepths
}

// ExtractEdgesFromTriangles returns the set of all edges of the triangles.
func ExtractEdgesFromTriangles(triangles []Triangle) map[Edge]struct{} {
	edges := make(map[Edge]struct{}, len(triangles)*3/2)
	for _, t := range triangles {
		edges[NewEdge(t.Vertices[0], t.Vertices[1])] = struct{}{}
		edges[NewEdge(t.Vertices[1], t.Vertices[2])] = struct{}{}
		edges[NewEdge(t.Vertices[2], t.Vertices[0])] = struct{}{}
	}
	return edges
}
