package graph

import "testing"

func snapshotFixture() *Graph {
	g := New()
	repo := g.AddNode(NodeRepository, &RepositoryData{Name: "demo"})
	file := g.AddNode(NodeFile, &FileData{Path: "a.js", Content: "function f() {}", Size: 15, Language: "javascript"})
	fn := g.AddNode(NodeFunction, &FunctionData{Name: "f", FilePath: "a.js", Line: 1})
	doc := g.AddNode(NodeDocumentation, &DocumentationData{Text: "does f things", FilePath: "a.js", Line: 1})
	g.AddEdge(repo, file, RelContains, nil)
	g.AddEdge(file, fn, RelDefines, nil)
	g.AddEdge(file, doc, RelContains, map[string]string{"kind": "doc"})
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := snapshotFixture()

	blob, err := g.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	restored := New()
	if err := restored.Import(blob); err != nil {
		t.Fatalf("import: %v", err)
	}

	if restored.NodeCount() != g.NodeCount() {
		t.Errorf("node count: got %d, want %d", restored.NodeCount(), g.NodeCount())
	}
	if restored.EdgeCount() != g.EdgeCount() {
		t.Errorf("edge count: got %d, want %d", restored.EdgeCount(), g.EdgeCount())
	}

	kinds := []NodeType{
		NodeRepository, NodeFile, NodeFunction, NodeClass, NodeImport,
		NodeExport, NodeDocumentation, NodeHeading, NodeCodeBlock, NodePath,
	}
	for _, kind := range kinds {
		want := g.FindNodesByType(kind)
		got := restored.FindNodesByType(kind)
		if len(got) != len(want) {
			t.Errorf("type %s: got %d nodes, want %d", kind, len(got), len(want))
			continue
		}
		for i := range want {
			if got[i].ID != want[i].ID || got[i].Name() != want[i].Name() {
				t.Errorf("type %s position %d: got (%d, %q), want (%d, %q)",
					kind, i, got[i].ID, got[i].Name(), want[i].ID, want[i].Name())
			}
		}
	}
}

func TestImportReplacesExistingState(t *testing.T) {
	g := snapshotFixture()
	blob, err := g.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	target := New()
	target.AddNode(NodePath, &PathData{Path: "stale"})
	target.AddNode(NodePath, &PathData{Path: "stale2"})

	if err := target.Import(blob); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(target.FindNodesByType(NodePath)) != 0 {
		t.Error("import must fully replace pre-existing state")
	}
	if target.NodeCount() != g.NodeCount() {
		t.Errorf("node count after import: got %d, want %d", target.NodeCount(), g.NodeCount())
	}
}

func TestImportRestoresIDCounters(t *testing.T) {
	g := snapshotFixture()
	blob, err := g.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	restored := New()
	if err := restored.Import(blob); err != nil {
		t.Fatalf("import: %v", err)
	}

	fresh := restored.AddNode(NodeFile, &FileData{Path: "new.js"})
	for _, n := range g.Nodes() {
		if n.ID == fresh {
			t.Fatalf("fresh id %d collides with a restored node", fresh)
		}
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	g := New()
	if err := g.Import([]byte("not json")); err == nil {
		t.Error("expected error for malformed snapshot")
	}
	if err := g.Import([]byte(`{"version":99}`)); err == nil {
		t.Error("expected error for unsupported snapshot version")
	}
}

func TestSerializedDataSurvivesRoundTrip(t *testing.T) {
	g := snapshotFixture()
	blob, err := g.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	restored := New()
	if err := restored.Import(blob); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Search relies on the cached serialization; it must be rebuilt on import.
	if got := restored.SearchNodes("javascript"); len(got) == 0 {
		t.Error("expected serialized data to be searchable after import")
	}
}
