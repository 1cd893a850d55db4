package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/scout/internal/context"
)

// Render formats a context result in the requested format.
func Render(res context.Result, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(res), nil
	case FormatText:
		return renderText(res), nil
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}
		return buf.String(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return "", fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("invalid format: %q", format)
	}
}

// renderMarkdown produces the prompt-ready layout: a summary block, a file
// list, a function list, a class list, one fenced code section per file
// headed by its path, and a relationship table. The section order is a
// stable contract for downstream consumers.
func renderMarkdown(res context.Result) string {
	var b strings.Builder

	b.WriteString("# Context")
	if res.Query != "" {
		fmt.Fprintf(&b, ": %s", res.Query)
	}
	b.WriteString("\n\n")

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Query type: %s\n", res.QueryType)
	if len(res.Keywords) > 0 {
		var words []string
		for _, kw := range res.Keywords {
			words = append(words, kw.Original)
		}
		fmt.Fprintf(&b, "- Keywords: %s\n", strings.Join(words, ", "))
	}
	fmt.Fprintf(&b, "- Nodes: %d\n", res.Summary.TotalNodes)
	for _, kind := range sortedKinds(res.Summary.CountsByType) {
		fmt.Fprintf(&b, "  - %s: %d\n", kind, res.Summary.CountsByType[kind])
	}

	if len(res.Summary.Files) > 0 {
		b.WriteString("\n## Files\n\n")
		for _, f := range res.Summary.Files {
			if f.Language != "" {
				fmt.Fprintf(&b, "- `%s` (%s, %d bytes)\n", f.Path, f.Language, f.Size)
			} else {
				fmt.Fprintf(&b, "- `%s` (%d bytes)\n", f.Path, f.Size)
			}
		}
	}

	if len(res.Summary.Functions) > 0 {
		b.WriteString("\n## Functions\n\n")
		for _, fn := range res.Summary.Functions {
			fmt.Fprintf(&b, "- `%s` (%s:%d)\n", fn.Name, fn.FilePath, fn.Line)
		}
	}

	if len(res.Summary.Classes) > 0 {
		b.WriteString("\n## Classes\n\n")
		for _, cl := range res.Summary.Classes {
			fmt.Fprintf(&b, "- `%s` (%s:%d)\n", cl.Name, cl.FilePath, cl.Line)
		}
	}

	if len(res.Files) > 0 {
		b.WriteString("\n## Code\n\n")
		for _, f := range res.Files {
			fmt.Fprintf(&b, "### %s\n\n", f.Path)
			fmt.Fprintf(&b, "```%s\n", f.Language)
			b.WriteString(f.Excerpt)
			if !strings.HasSuffix(f.Excerpt, "\n") {
				b.WriteString("\n")
			}
			b.WriteString("```\n\n")
		}
	}

	if len(res.Relationships) > 0 {
		b.WriteString("## Relationships\n\n")
		b.WriteString("| Source | Relationship | Target |\n")
		b.WriteString("|--------|--------------|--------|\n")
		for _, rel := range res.Relationships {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", rel.Source, rel.Relationship, rel.Target)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// renderText is the terminal-friendly rendition: same content as markdown
// without the markup.
func renderText(res context.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "query: %s\n", res.Query)
	fmt.Fprintf(&b, "type:  %s\n", res.QueryType)
	fmt.Fprintf(&b, "nodes: %d\n", res.Summary.TotalNodes)

	if len(res.Summary.Files) > 0 {
		b.WriteString("\nfiles:\n")
		for _, f := range res.Summary.Files {
			fmt.Fprintf(&b, "  %s (%d bytes)\n", f.Path, f.Size)
		}
	}
	if len(res.Summary.Functions) > 0 {
		b.WriteString("\nfunctions:\n")
		for _, fn := range res.Summary.Functions {
			fmt.Fprintf(&b, "  %s  %s:%d\n", fn.Name, fn.FilePath, fn.Line)
		}
	}
	if len(res.Summary.Classes) > 0 {
		b.WriteString("\nclasses:\n")
		for _, cl := range res.Summary.Classes {
			fmt.Fprintf(&b, "  %s  %s:%d\n", cl.Name, cl.FilePath, cl.Line)
		}
	}

	for _, f := range res.Files {
		fmt.Fprintf(&b, "\n--- %s ---\n", f.Path)
		b.WriteString(f.Excerpt)
		if !strings.HasSuffix(f.Excerpt, "\n") {
			b.WriteString("\n")
		}
	}

	if len(res.Relationships) > 0 {
		b.WriteString("\nrelationships:\n")
		for _, rel := range res.Relationships {
			fmt.Fprintf(&b, "  %s %s %s\n", rel.Source, rel.Relationship, rel.Target)
		}
	}

	return b.String()
}

func sortedKinds(counts map[string]int) []string {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
