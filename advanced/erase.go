package advanced

// The erasure passes run after all insertions are done. They renumber
// triangles and, when the super-triangle is removed, vertices; every index
// held outside the mesh is invalidated. Call each pass at most once.

// EraseSuperTriangle removes the three super-triangle vertices and every
// triangle touching them. It does nothing when the triangulation was
// initialized with custom super-geometry.
func (g *Triangulation[T]) EraseSuperTriangle() {
	if g.superGeomType != SuperTriangle || len(g.Triangles) == 0 {
		return
	}
	toErase := make(map[TriInd]struct{})
	for iT, t := range g.Triangles {
		if t.Vertices[0] < 3 || t.Vertices[1] < 3 || t.Vertices[2] < 3 {
			toErase[TriInd(iT)] = struct{}{}
		}
	}
	g.eraseTrianglesAtIndices(toErase)
	g.eraseSuperTriangleVertices()
}

// EraseOuterTriangles floods from the super-triangle across non-fixed
// edges and removes everything reached, leaving only triangles enclosed by
// constraint boundaries.
func (g *Triangulation[T]) EraseOuterTriangles() {
	if len(g.Triangles) == 0 {
		return
	}
	// A triangle incident to super-triangle vertex 0 is always outside.
	seed := g.VertTris[0][0]
	toErase := g.growToBoundary([]TriInd{seed})
	g.eraseTrianglesAtIndices(toErase)
	g.eraseSuperTriangleVertices()
}

// EraseOuterTrianglesAndHoles removes the outer triangles and the
// auto-detected hole interiors: every triangle whose layer depth is even.
// Overlapping boundaries are accounted for through the overlap counts.
func (g *Triangulation[T]) EraseOuterTrianglesAndHoles() {
	if len(g.Triangles) == 0 {
		return
	}
	seed := g.VertTris[0][0]
	depths := CalculateTriangleDepthsWithOverlaps(seed, g.Triangles, g.FixedEdges, g.OverlapCount)
	toErase := make(map[TriInd]struct{})
	for iT := range g.Triangles {
		if depths[iT]%2 == 0 {
			toErase[TriInd(iT)] = struct{}{}
		}
	}
	g.eraseTrianglesAtIndices(toErase)
	g.eraseSuperTriangleVertices()
}

// growToBoundary floods from the seed triangles across edges that are not
// fixed and returns every triangle reached.
func (g *Triangulation[T]) growToBoundary(seeds []TriInd) map[TriInd]struct{} {
	traversed := make(map[TriInd]struct{})
	for len(seeds) > 0 {
		iT := seeds[len(seeds)-1]
		seeds = seeds[:len(seeds)-1]
		if _, seen := traversed[iT]; seen {
			continue
		}
		traversed[iT] = struct{}{}
		t := g.Triangles[iT]
		for i := 0; i < 3; i++ {
			opEdge := NewEdge(t.Vertices[ccw(i)], t.Vertices[cw(i)])
			if _, fixed := g.FixedEdges[opEdge]; fixed {
				continue
			}
			iN := t.Neighbors[i]
			if iN == NoNeighbor {
				continue
			}
			if _, seen := traversed[iN]; !seen {
				seeds = append(seeds, iN)
			}
		}
	}
	return traversed
}

func (g *Triangulation[T]) eraseTrianglesAtIndices(toErase map[TriInd]struct{}) {
	for iT := range toErase {
		g.makeDummy(iT)
	}
	g.eraseDummies()
}

// eraseSuperTriangleVertices drops the first three vertices and shifts
// every vertex reference down by three. After this the mesh's vertex
// indices line up with the caller's input indices.
func (g *Triangulation[T]) eraseSuperTriangleVertices() {
	if g.superGeomType != SuperTriangle || len(g.Vertices) < 3 {
		return
	}
	for i := range g.Triangles {
		t := &g.Triangles[i]
		for j := range t.Vertices {
			t.Vertices[j] -= 3
		}
	}
	fixed := make(map[Edge]struct{}, len(g.FixedEdges))
	for e := range g.FixedEdges {
		fixed[NewEdge(e.V1()-3, e.V2()-3)] = struct{}{}
	}
	g.FixedEdges = fixed
	overlaps := make(map[Edge]BoundaryOverlapCount, len(g.OverlapCount))
	for e, count := range g.OverlapCount {
		overlaps[NewEdge(e.V1()-3, e.V2()-3)] = count
	}
	g.OverlapCount = overlaps
	g.Vertices = g.Vertices[3:]
	g.VertTris = g.VertTris[3:]
	g.nTargetVerts = 0
}
