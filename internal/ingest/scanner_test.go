package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hargabyte/scout/internal/engine"
	"github.com/hargabyte/scout/internal/graph"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scanPaths(t *testing.T, root string, opts Options) []string {
	t.Helper()
	s, err := NewScanner(root, opts)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	records, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var paths []string
	for _, rec := range records {
		paths = append(paths, rec.Path)
	}
	return paths
}

func TestScanSupportedFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "lib/app.js", "function a() {}\n")
	writeFile(t, root, "data.csv", "a,b\n")
	writeFile(t, root, "node_modules/dep/index.js", "function dep() {}\n")

	paths := scanPaths(t, root, Options{})
	want := []string{"lib/app.js", "main.go"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for _, w := range want {
		found := false
		for _, p := range paths {
			if p == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s in %v", w, paths)
		}
	}
}

func TestScanIncludeExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "sub/b.js", "function b() {}\n")
	writeFile(t, root, "sub/b_test.js", "function tb() {}\n")

	paths := scanPaths(t, root, Options{
		Include: []string{"**.js"},
		Exclude: []string{"**_test.js"},
	})
	if len(paths) != 1 || paths[0] != "sub/b.js" {
		t.Errorf("paths = %v, want [sub/b.js]", paths)
	}
}

func TestScanHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "secret.js\ngenerated/\n")
	writeFile(t, root, "app.js", "function app() {}\n")
	writeFile(t, root, "secret.js", "function leak() {}\n")
	writeFile(t, root, "generated/out.js", "function gen() {}\n")

	paths := scanPaths(t, root, Options{})
	if len(paths) != 1 || paths[0] != "app.js" {
		t.Errorf("paths = %v, want [app.js]", paths)
	}
}

func TestScanSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.go", "package small\n")
	writeFile(t, root, "big.go", "package big\n//"+strings.Repeat("x", 200)+"\n")

	paths := scanPaths(t, root, Options{MaxFileSize: 100})
	if len(paths) != 1 || paths[0] != "small.go" {
		t.Errorf("paths = %v, want [small.go]", paths)
	}
}

func TestNewScannerErrors(t *testing.T) {
	if _, err := NewScanner("", Options{}); err == nil {
		t.Error("empty root should fail")
	}
	if _, err := NewScanner(t.TempDir(), Options{Include: []string{"[bad"}}); err == nil {
		t.Error("invalid glob should fail")
	}
	file := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewScanner(file, Options{}); err == nil {
		t.Error("non-directory root should fail")
	}
}

func TestPopulateGroupsByDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "pkg/util/util.go", "package util\n\nfunc Help() {}\n")

	s, err := NewScanner(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	records, err := s.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	eng := engine.New()
	repoID := Populate(eng, "demo", records)
	if eng.Graph().Node(repoID) == nil {
		t.Fatal("repository node missing")
	}

	dirs := eng.Graph().FindNodesByType(graph.NodePath)
	// pkg and pkg/util
	if len(dirs) != 2 {
		t.Errorf("path nodes = %d, want 2", len(dirs))
	}
	files := eng.Graph().FindNodesByType(graph.NodeFile)
	if len(files) != 2 {
		t.Errorf("file nodes = %d, want 2", len(files))
	}
}
