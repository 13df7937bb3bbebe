package path

// Edge is a pair of local point indices within one sub-path.
// Prev is the start of the edge and Cur its end.
type Edge struct {
	Prev, Cur int
}

// EdgeIter walks the edges of a sub-path by index.
//
// A cyclic iterator starts with the wrap-around edge (last, first) and then
// visits (0,1), (1,2), ... so every point is the Cur of exactly one edge.
// An interior iterator for open sub-paths yields (0,1) ... (n-3,n-2),
// leaving the first and last points to the caps.
type EdgeIter struct {
	prev, cur int
	end       int
}

// NewEdgeIter returns a cyclic edge iterator over count points.
// Sub-paths with fewer than two points yield no edges.
func NewEdgeIter(count int) EdgeIter {
	if count < 2 {
		return EdgeIter{}
	}
	return EdgeIter{prev: count - 1, cur: 0, end: count}
}

// NewInteriorEdgeIter returns an iterator over the interior joins of an
// open sub-path with count points.
func NewInteriorEdgeIter(count int) EdgeIter {
	if count < 2 {
		return EdgeIter{}
	}
	return EdgeIter{prev: 0, cur: 1, end: count - 1}
}

// Next returns the next edge, or false once iteration is complete.
func (it *EdgeIter) Next() (Edge, bool) {
	if it.cur >= it.end {
		return Edge{}, false
	}
	e := Edge{Prev: it.prev, Cur: it.cur}
	it.prev = it.cur
	it.cur++
	return e, true
}

// CollectEdges returns all edges of a cyclic iteration over count points.
func CollectEdges(count int) []Edge {
	var edges []Edge
	it := NewEdgeIter(count)
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		edges = append(edges, e)
	}
	return edges
}
