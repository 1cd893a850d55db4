package graph

import "testing"

// chainGraph builds file -> fn1 -> fn2 ... linked by defines/references edges.
func chainGraph(t *testing.T) (*Graph, []int64) {
	t.Helper()
	g := New()
	file := g.AddNode(NodeFile, &FileData{Path: "a.js"})
	f1 := g.AddNode(NodeFunction, &FunctionData{Name: "one", FilePath: "a.js", Line: 1})
	f2 := g.AddNode(NodeFunction, &FunctionData{Name: "two", FilePath: "a.js", Line: 5})
	f3 := g.AddNode(NodeFunction, &FunctionData{Name: "three", FilePath: "a.js", Line: 9})
	g.AddEdge(file, f1, RelDefines, nil)
	g.AddEdge(f1, f2, RelReferences, nil)
	g.AddEdge(f2, f3, RelReferences, nil)
	return g, []int64{file, f1, f2, f3}
}

func TestTraverseDepthBounds(t *testing.T) {
	g, ids := chainGraph(t)

	tests := []struct {
		name  string
		depth int
		want  int
	}{
		{"zero depth yields empty", 0, 0},
		{"one hop", 1, 1},
		{"two hops", 2, 2},
		{"full chain", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Traverse(ids[0], tt.depth)
			if len(got) != tt.want {
				t.Errorf("depth %d: expected %d nodes, got %d", tt.depth, tt.want, len(got))
			}
		})
	}
}

func TestTraverseUndirectedReachability(t *testing.T) {
	g, ids := chainGraph(t)

	// Starting from the deepest node, edges must be walkable backwards.
	got := g.Traverse(ids[3], 10)
	if len(got) != 3 {
		t.Errorf("expected 3 nodes reachable against edge direction, got %d", len(got))
	}
}

func TestTraverseCycleTerminates(t *testing.T) {
	g := New()
	a := g.AddNode(NodeFunction, &FunctionData{Name: "a", FilePath: "x.js", Line: 1})
	b := g.AddNode(NodeFunction, &FunctionData{Name: "b", FilePath: "x.js", Line: 2})
	c := g.AddNode(NodeFunction, &FunctionData{Name: "c", FilePath: "x.js", Line: 3})
	g.AddEdge(a, b, RelReferences, nil)
	g.AddEdge(b, c, RelReferences, nil)
	g.AddEdge(c, a, RelReferences, nil)

	got := g.Traverse(a, 100)

	seen := make(map[int64]int)
	for _, n := range got {
		seen[n.ID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("node %d appears %d times, expected at most once", id, count)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected the 2 other cycle members, got %d nodes", len(got))
	}
}

func TestTraverseVisitedStartYieldsEmpty(t *testing.T) {
	g, ids := chainGraph(t)

	visited := map[int64]bool{ids[0]: true}
	if got := g.TraverseFrom(ids[0], 5, visited); len(got) != 0 {
		t.Errorf("expected empty result for already-visited start, got %d nodes", len(got))
	}
}

func TestTraverseUnknownStart(t *testing.T) {
	g, _ := chainGraph(t)
	if got := g.Traverse(999, 5); len(got) != 0 {
		t.Errorf("expected empty result for unknown start, got %d nodes", len(got))
	}
}
