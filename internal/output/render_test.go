package output

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/scout/internal/context"
	"github.com/hargabyte/scout/internal/query"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"  TEXT ", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleResult() context.Result {
	return context.Result{
		Query:     "find login function",
		QueryType: "function_search",
		Keywords:  []query.Keyword{{Original: "login", Stem: "login"}},
		Summary: context.Summary{
			TotalNodes:   4,
			CountsByType: map[string]int{"file": 1, "function": 2, "export": 1},
			Files:        []context.FileInfo{{Path: "auth.js", Language: "javascript", Size: 120}},
			Functions: []context.EntityInfo{
				{Name: "login", FilePath: "auth.js", Line: 3},
				{Name: "logout", FilePath: "auth.js", Line: 7},
			},
		},
		Files: []context.FileExcerpt{
			{Path: "auth.js", Language: "javascript", Excerpt: "function login() {}", TotalSize: 120},
		},
		Relationships: []context.Relationship{
			{Source: "file:auth.js", Relationship: "defines", Target: "function:login"},
		},
	}
}

func TestRenderMarkdownLayout(t *testing.T) {
	out, err := Render(sampleResult(), FormatMarkdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// The section order is a stable contract.
	sections := []string{
		"# Context: find login function",
		"## Summary",
		"## Files",
		"## Functions",
		"## Code",
		"### auth.js",
		"```javascript",
		"## Relationships",
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		if i < 0 {
			t.Fatalf("missing section %q in:\n%s", s, out)
		}
		if i < last {
			t.Errorf("section %q out of order", s)
		}
		last = i
	}

	if !strings.Contains(out, "| file:auth.js | defines | function:login |") {
		t.Error("relationship table row missing")
	}
	if strings.Contains(out, "## Classes") {
		t.Error("empty class list should be omitted")
	}
}

func TestRenderText(t *testing.T) {
	out, err := Render(sampleResult(), FormatText)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"type:  function_search",
		"auth.js (120 bytes)",
		"login  auth.js:3",
		"--- auth.js ---",
		"function login() {}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	out, err := Render(sampleResult(), FormatJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var decoded context.Result
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.QueryType != "function_search" || len(decoded.Files) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRenderYAML(t *testing.T) {
	out, err := Render(sampleResult(), FormatYAML)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var decoded context.Result
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if decoded.Summary.TotalNodes != 4 {
		t.Errorf("total nodes = %d", decoded.Summary.TotalNodes)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	if _, err := Render(sampleResult(), Format("xml")); err == nil {
		t.Error("expected error for invalid format")
	}
}
