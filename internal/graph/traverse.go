package graph

// Traverse walks outward from the start node and returns every node
// reachable within maxDepth hops, in depth-first order. Edges are followed
// in both directions: an edge makes both of its endpoints reachable from
// the other, even though its relationship label stays directed.
//
// Each node is visited at most once per call, so cyclic graphs terminate.
// A maxDepth of zero, an unknown start id, or a start that is already in
// the visited set yields an empty result. The start node itself is not
// part of the result.
func (g *Graph) Traverse(startID int64, maxDepth int) []*Node {
	return g.TraverseFrom(startID, maxDepth, make(map[int64]bool))
}

// TraverseFrom is Traverse with a caller-supplied visited set, letting
// several traversals share one set so overlapping neighborhoods are not
// reported twice.
func (g *Graph) TraverseFrom(startID int64, maxDepth int, visited map[int64]bool) []*Node {
	if maxDepth <= 0 || visited[startID] {
		return nil
	}
	if g.byID[startID] == nil {
		return nil
	}
	visited[startID] = true

	var result []*Node
	for _, e := range g.incident[startID] {
		otherID := e.TargetNodeID
		if otherID == startID {
			otherID = e.SourceNodeID
		}
		if visited[otherID] {
			continue
		}
		other := g.byID[otherID]
		if other == nil {
			// Dangling edge; skip rather than fail.
			continue
		}
		result = append(result, other)
		result = append(result, g.TraverseFrom(otherID, maxDepth-1, visited)...)
		visited[otherID] = true
	}
	return result
}
