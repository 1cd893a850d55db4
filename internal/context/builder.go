package context

import (
	"strconv"
	"strings"

	"github.com/hargabyte/scout/internal/graph"
	"github.com/hargabyte/scout/internal/query"
)

// expansionDepth is how many hops the builder walks out from each ranked
// node when gathering related entities for the summary and relationships.
const expansionDepth = 2

// Options bounds context construction. Budgets are validated by the
// caller before any graph work begins; the builder assumes sane values.
type Options struct {
	// MaxNodes caps how many ranked nodes seed the expansion and how long
	// the summary listings may grow.
	MaxNodes int `yaml:"max_nodes" json:"max_nodes"`

	// MaxFiles caps how many files contribute code sections.
	MaxFiles int `yaml:"max_files" json:"max_files"`

	// MaxCodeLength is the per-file character budget for excerpts.
	MaxCodeLength int `yaml:"max_code_length" json:"max_code_length"`

	// IncludeFullContent emits each file's full stored content instead of
	// a reconstructed excerpt.
	IncludeFullContent bool `yaml:"include_full_content" json:"include_full_content"`
}

// DefaultOptions returns the builder defaults.
func DefaultOptions() Options {
	return Options{
		MaxNodes:      50,
		MaxFiles:      5,
		MaxCodeLength: 8000,
	}
}

// FileInfo is one file entry in the overview summary.
type FileInfo struct {
	Path     string `yaml:"path" json:"path"`
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
	Size     int    `yaml:"size" json:"size"`
}

// EntityInfo is one function or class entry in the overview summary.
type EntityInfo struct {
	Name     string `yaml:"name" json:"name"`
	FilePath string `yaml:"file_path" json:"file_path"`
	Line     int    `yaml:"line" json:"line"`
}

// Summary is the overview part of a context result: counts by node type
// plus file, function, and class listings.
type Summary struct {
	TotalNodes   int            `yaml:"total_nodes" json:"total_nodes"`
	CountsByType map[string]int `yaml:"counts_by_type" json:"counts_by_type"`
	Files        []FileInfo     `yaml:"files,omitempty" json:"files,omitempty"`
	Functions    []EntityInfo   `yaml:"functions,omitempty" json:"functions,omitempty"`
	Classes      []EntityInfo   `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// FileExcerpt is one bounded code section. TotalSize is the true stored
// byte length of the file even when the excerpt is shorter.
type FileExcerpt struct {
	Path        string `yaml:"path" json:"path"`
	Language    string `yaml:"language,omitempty" json:"language,omitempty"`
	Excerpt     string `yaml:"excerpt" json:"excerpt"`
	TotalSize   int    `yaml:"total_size" json:"total_size"`
	FullContent bool   `yaml:"full_content,omitempty" json:"full_content,omitempty"`
	Truncated   bool   `yaml:"truncated,omitempty" json:"truncated,omitempty"`
}

// Relationship is one (source, relationship, target) triple reported with
// its directed label.
type Relationship struct {
	Source       string `yaml:"source" json:"source"`
	Relationship string `yaml:"relationship" json:"relationship"`
	Target       string `yaml:"target" json:"target"`
}

// Result is the assembled context bundle.
type Result struct {
	Query         string          `yaml:"query" json:"query"`
	QueryType     string          `yaml:"query_type" json:"query_type"`
	Keywords      []query.Keyword `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Summary       Summary         `yaml:"summary" json:"summary"`
	Files         []FileExcerpt   `yaml:"files,omitempty" json:"files,omitempty"`
	Relationships []Relationship  `yaml:"relationships,omitempty" json:"relationships,omitempty"`
}

// Builder derives context bundles from the graph. It only reads the graph
// and holds no state between calls.
type Builder struct {
	g *graph.Graph
}

// NewBuilder creates a builder over the graph.
func NewBuilder(g *graph.Graph) *Builder {
	return &Builder{g: g}
}

// Build assembles the context for the ranked node set. A query matching
// nothing produces an empty summary and no code sections, never an error.
func (b *Builder) Build(text string, intent query.Intent, ranked []query.Ranked, keywords []query.Keyword, opts Options) Result {
	result := Result{
		Query:     text,
		QueryType: string(intent),
		Keywords:  keywords,
	}

	if len(ranked) > opts.MaxNodes {
		ranked = ranked[:opts.MaxNodes]
	}

	involved := b.expand(ranked)
	files := b.selectFiles(involved, opts.MaxFiles)
	if len(files) == 0 {
		// Generic or overview query: fall back to a representative sample
		// in priority order files > functions/classes > exports.
		files = b.fallbackFiles(opts.MaxFiles)
	}

	result.Summary = b.summarize(involved, opts.MaxNodes)
	result.Files = b.excerptFiles(files, keywords, opts)
	result.Relationships = b.relationships(involved, opts.MaxNodes)
	return result
}

// expand walks outward from every ranked node and returns the ranked nodes
// plus everything reachable within expansionDepth hops, deduplicated, in
// rank order then discovery order.
func (b *Builder) expand(ranked []query.Ranked) []*graph.Node {
	var involved []*graph.Node
	seen := make(map[int64]bool)
	visited := make(map[int64]bool)

	for _, r := range ranked {
		if !seen[r.Node.ID] {
			seen[r.Node.ID] = true
			involved = append(involved, r.Node)
		}
	}
	for _, r := range ranked {
		for _, n := range b.g.TraverseFrom(r.Node.ID, expansionDepth, visited) {
			if !seen[n.ID] {
				seen[n.ID] = true
				involved = append(involved, n)
			}
		}
	}
	return involved
}

// selectFiles resolves the involved nodes to their owning file nodes:
// file nodes pass through, child entities follow their filePath
// back-reference. A reference to a path with no matching file node is
// stale and skipped silently.
func (b *Builder) selectFiles(involved []*graph.Node, maxFiles int) []*graph.Node {
	var files []*graph.Node
	seenPath := make(map[string]bool)

	add := func(n *graph.Node) bool {
		path := n.Name()
		if path == "" || seenPath[path] {
			return len(files) < maxFiles
		}
		seenPath[path] = true
		files = append(files, n)
		return len(files) < maxFiles
	}

	for _, n := range involved {
		if n.Type == graph.NodeFile {
			if !add(n) {
				return files
			}
			continue
		}
		if n.Data == nil {
			continue
		}
		fp, ok := n.Data.Property("filePath")
		if !ok || fp == "" {
			continue
		}
		matches := b.g.FindNodesByProperty("path", fp, graph.NodeFile)
		if len(matches) == 0 {
			continue
		}
		if !add(matches[0]) {
			return files
		}
	}
	return files
}

// fallbackFiles selects up to maxFiles representative files when nothing
// matched, walking node types in priority order: files anchor the excerpt
// because they carry raw content, then functions and classes resolved to
// their owning files, then exports.
func (b *Builder) fallbackFiles(maxFiles int) []*graph.Node {
	var files []*graph.Node
	seenPath := make(map[string]bool)

	for _, n := range b.g.FindNodesByType(graph.NodeFile) {
		if len(files) >= maxFiles {
			return files
		}
		if path := n.Name(); path != "" && !seenPath[path] {
			seenPath[path] = true
			files = append(files, n)
		}
	}

	resolve := func(kind graph.NodeType) {
		for _, n := range b.g.FindNodesByType(kind) {
			if len(files) >= maxFiles {
				return
			}
			fp, ok := n.Data.Property("filePath")
			if !ok || fp == "" || seenPath[fp] {
				continue
			}
			matches := b.g.FindNodesByProperty("path", fp, graph.NodeFile)
			if len(matches) == 0 {
				continue
			}
			seenPath[fp] = true
			files = append(files, matches[0])
		}
	}
	resolve(graph.NodeFunction)
	resolve(graph.NodeClass)
	resolve(graph.NodeExport)
	return files
}

// summarize builds the overview block. When the involved set is empty the
// whole graph is summarized instead (structural overview mode).
func (b *Builder) summarize(involved []*graph.Node, maxEntries int) Summary {
	nodes := involved
	if len(nodes) == 0 {
		nodes = b.g.Nodes()
	}

	s := Summary{
		TotalNodes:   len(nodes),
		CountsByType: make(map[string]int),
	}
	for _, n := range nodes {
		s.CountsByType[string(n.Type)]++
		switch n.Type {
		case graph.NodeFile:
			if len(s.Files) >= maxEntries {
				continue
			}
			if fd, ok := n.Data.(*graph.FileData); ok {
				s.Files = append(s.Files, FileInfo{Path: fd.Path, Language: fd.Language, Size: fd.Size})
			}
		case graph.NodeFunction:
			if len(s.Functions) >= maxEntries {
				continue
			}
			if fd, ok := n.Data.(*graph.FunctionData); ok {
				s.Functions = append(s.Functions, EntityInfo{Name: fd.Name, FilePath: fd.FilePath, Line: fd.Line})
			}
		case graph.NodeClass:
			if len(s.Classes) >= maxEntries {
				continue
			}
			if cd, ok := n.Data.(*graph.ClassData); ok {
				s.Classes = append(s.Classes, EntityInfo{Name: cd.Name, FilePath: cd.FilePath, Line: cd.Line})
			}
		}
	}
	return s
}

// excerptFiles derives one bounded code section per selected file.
func (b *Builder) excerptFiles(files []*graph.Node, keywords []query.Keyword, opts Options) []FileExcerpt {
	var out []FileExcerpt
	for _, n := range files {
		fd, ok := n.Data.(*graph.FileData)
		if !ok {
			continue
		}
		out = append(out, b.excerptFile(fd, keywords, opts))
	}
	return out
}

func (b *Builder) excerptFile(fd *graph.FileData, keywords []query.Keyword, opts Options) FileExcerpt {
	excerpt := FileExcerpt{
		Path:      fd.Path,
		Language:  fd.Language,
		TotalSize: len(fd.Content),
	}

	if opts.IncludeFullContent {
		excerpt.Excerpt = fd.Content
		excerpt.FullContent = true
		return excerpt
	}

	lines := strings.Split(fd.Content, "\n")
	var ranges []lineRange

	if r, ok := importBlockRange(lines); ok {
		ranges = append(ranges, r)
	}

	windows := keywordWindows(lines, keywords)
	windows = expandToBoundaries(windows, b.declarationStarts(fd.Path), lines, ResolverFor(fd.Language))
	ranges = append(ranges, windows...)

	if len(ranges) == 0 {
		// Nothing matched in this file; keep a representative head.
		ranges = append(ranges, clampRange(lineRange{0, 2 * windowRadius}, len(lines)))
	}

	merged := mergeRanges(ranges, mergeSlack)
	excerpt.Excerpt, excerpt.Truncated = renderRanges(lines, merged, opts.MaxCodeLength, elisionMarker(fd.Language))
	return excerpt
}

// declarationStarts returns the zero-based start lines of every function
// and class the graph knows in the given file.
func (b *Builder) declarationStarts(path string) []int {
	var starts []int
	for _, kind := range []graph.NodeType{graph.NodeFunction, graph.NodeClass} {
		for _, n := range b.g.FindNodesByProperty("filePath", path, kind) {
			if line, ok := n.Data.Property("line"); ok {
				if v, err := strconv.Atoi(line); err == nil && v > 0 {
					starts = append(starts, v-1)
				}
			}
		}
	}
	return starts
}

// relationships reports the directed edge triples among the involved
// nodes, capped at maxEntries.
func (b *Builder) relationships(involved []*graph.Node, maxEntries int) []Relationship {
	if len(involved) == 0 {
		return nil
	}
	inSet := make(map[int64]bool, len(involved))
	for _, n := range involved {
		inSet[n.ID] = true
	}

	var out []Relationship
	for _, e := range b.g.Edges() {
		if len(out) >= maxEntries {
			break
		}
		if !inSet[e.SourceNodeID] || !inSet[e.TargetNodeID] {
			continue
		}
		src := b.g.Node(e.SourceNodeID)
		dst := b.g.Node(e.TargetNodeID)
		if src == nil || dst == nil {
			continue
		}
		out = append(out, Relationship{
			Source:       nodeLabel(src),
			Relationship: string(e.Relationship),
			Target:       nodeLabel(dst),
		})
	}
	return out
}

// nodeLabel renders a node as "type:name", or just the type when the kind
// carries no name.
func nodeLabel(n *graph.Node) string {
	if name := n.Name(); name != "" {
		return string(n.Type) + ":" + name
	}
	return string(n.Type)
}
