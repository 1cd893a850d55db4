package mcp

import (
	"sort"
	"strings"
	"testing"

	scoutcontext "github.com/hargabyte/scout/internal/context"
	"github.com/hargabyte/scout/internal/engine"
	"github.com/hargabyte/scout/internal/extract"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New()
	eng.AddEntities(&extract.FileRecord{
		Path:     "auth.js",
		Language: "javascript",
		Content:  "function login(user) {\n  return check(user);\n}\n",
		Functions: []extract.FunctionDecl{
			{Name: "login", Line: 1},
		},
	}, 0)
	return eng
}

func TestNewRegistersAllTools(t *testing.T) {
	s, err := New(testEngine(t), "/repo", Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tools := s.ListTools()
	sort.Strings(tools)
	want := make([]string, len(AllTools))
	copy(want, AllTools)
	sort.Strings(want)

	if len(tools) != len(want) {
		t.Fatalf("tools = %v, want %v", tools, want)
	}
	for i := range want {
		if tools[i] != want[i] {
			t.Errorf("tools[%d] = %s, want %s", i, tools[i], want[i])
		}
	}
}

func TestNewRejectsUnknownTool(t *testing.T) {
	if _, err := New(testEngine(t), "/repo", Config{Tools: []string{"scout_bogus"}}); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestExecuteQuery(t *testing.T) {
	s, err := New(testEngine(t), "/repo", Config{})
	if err != nil {
		t.Fatal(err)
	}

	out := s.executeQuery("find login function", 20)
	if !strings.Contains(out, "query type: function_search") {
		t.Errorf("missing query type in %q", out)
	}
	if !strings.Contains(out, "login") || !strings.Contains(out, "auth.js:1") {
		t.Errorf("missing match detail in %q", out)
	}

	if out := s.executeQuery("zzqy", 20); !strings.Contains(out, "no matches") {
		t.Errorf("expected no matches, got %q", out)
	}
}

func TestExecuteQueryLimit(t *testing.T) {
	eng := engine.New()
	funcs := make([]extract.FunctionDecl, 5)
	for i := range funcs {
		funcs[i] = extract.FunctionDecl{Name: "login", Line: i + 1}
	}
	eng.AddEntities(&extract.FileRecord{Path: "a.js", Functions: funcs}, 0)

	s, err := New(eng, "/repo", Config{})
	if err != nil {
		t.Fatal(err)
	}

	out := s.executeQuery("find login function", 2)
	// Header line plus at most two match lines.
	lines := strings.Count(strings.TrimRight(out, "\n"), "\n") + 1
	if lines != 3 {
		t.Errorf("output has %d lines, want 3:\n%s", lines, out)
	}
}

func TestExecuteContext(t *testing.T) {
	s, err := New(testEngine(t), "/repo", Config{})
	if err != nil {
		t.Fatal(err)
	}

	out, err := s.executeContext("find login function", scoutcontext.DefaultOptions())
	if err != nil {
		t.Fatalf("executeContext: %v", err)
	}
	if !strings.Contains(out, "### auth.js") || !strings.Contains(out, "function login") {
		t.Errorf("missing code section in:\n%s", out)
	}
}

func TestExecuteOverview(t *testing.T) {
	s, err := New(testEngine(t), "/repo", Config{})
	if err != nil {
		t.Fatal(err)
	}

	out, err := s.executeOverview(scoutcontext.DefaultOptions())
	if err != nil {
		t.Fatalf("executeOverview: %v", err)
	}
	if !strings.Contains(out, "# Context: /repo") {
		t.Errorf("overview should carry the root, got:\n%s", out)
	}
	if !strings.Contains(out, "auth.js") {
		t.Errorf("overview missing file listing:\n%s", out)
	}
}
