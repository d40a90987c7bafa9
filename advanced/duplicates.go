package advanced

import "golang.org/x/exp/constraints"

// The engine's behavior is undefined on duplicate input vertices, so these
// utilities run upstream of it: find exact-coordinate duplicates, drop
// them, and rewrite constraint edges through the resulting index mapping.

// DuplicatesInfo describes removed duplicate vertices. For vertices
// {0,1,2,3,4} where 0 and 3 coincide, the mapping is {0,1,2,0,3} (onto the
// deduplicated vertices {0,1,2,3}) and the duplicates are {3}.
type DuplicatesInfo struct {
	Mapping    []int
	Duplicates []int
}

// FindDuplicates scans n vertices through the coordinate accessors and
// reports which have been seen before. Duplicates are vertices with
// exactly equal coordinates.
func FindDuplicates[T constraints.Float](n int, getX, getY func(i int) T) DuplicatesInfo {
	unique := make(map[V2d[T]]int, n)
	di := DuplicatesInfo{Mapping: make([]int, n)}
	out := 0
	for i := 0; i < n; i++ {
		pos := V2d[T]{getX(i), getY(i)}
		if first, seen := unique[pos]; seen {
			di.Mapping[i] = first
			di.Duplicates = append(di.Duplicates, i)
			continue
		}
		unique[pos] = out
		di.Mapping[i] = out
		out++
	}
	return di
}

// RemoveDuplicates removes the listed vertices in place, preserving the
// order of the survivors, and returns the shortened slice. The duplicates
// list must be sorted ascending, as FindDuplicates produces it.
func RemoveDuplicates[T constraints.Float](vertices []V2d[T], duplicates []int) []V2d[T] {
	if len(duplicates) == 0 {
		return vertices
	}
	dup := 0
	out := duplicates[0]
	for i := duplicates[0]; i < len(vertices); i++ {
		if dup < len(duplicates) && duplicates[dup] == i {
			dup++
			continue
		}
		vertices[out] = vertices[i]
		out++
	}
	return vertices[:out]
}

// RemoveDuplicatesInfo finds and removes duplicated points in place,
// returning the shortened slice and the mapping information.
func RemoveDuplicatesInfo[T constraints.Float](vertices []V2d[T]) ([]V2d[T], DuplicatesInfo) {
	di := FindDuplicates(len(vertices),
		func(i int) T { return vertices[i].X },
		func(i int) T { return vertices[i].Y })
	return RemoveDuplicates(vertices, di.Duplicates), di
}

// RemapEdges rewrites every edge endpoint through the mapping, in place.
func RemapEdges(edges []Edge, mapping []int) {
	for i, e := range edges {
		edges[i] = NewEdge(VertInd(mapping[e.V1()]), VertInd(mapping[e.V2()]))
	}
}

// RemoveDuplicatesAndRemapEdges chains FindDuplicates, RemoveDuplicates
// and RemapEdges over native 2D points.
func RemoveDuplicatesAndRemapEdges[T constraints.Float](vertices []V2d[T], edges []Edge) ([]V2d[T], DuplicatesInfo) {
	vertices, di := RemoveDuplicatesInfo(vertices)
	RemapEdges(edges, di.Mapping)
	return vertices, di
}
