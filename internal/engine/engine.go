// Package engine wires the graph, query, and context packages into the
// single entry point the CLI and MCP server talk to. An Engine owns one
// graph with an explicit lifecycle: create, populate, query, and
// optionally clear or reload from a snapshot.
package engine

import (
	"fmt"

	"github.com/hargabyte/scout/internal/context"
	"github.com/hargabyte/scout/internal/extract"
	"github.com/hargabyte/scout/internal/graph"
	"github.com/hargabyte/scout/internal/output"
	"github.com/hargabyte/scout/internal/query"
)

// Engine holds the in-memory code graph and the trained query classifier.
// It is the sole writer of its graph; callers must finish population
// before issuing queries.
type Engine struct {
	g          *graph.Graph
	classifier *query.Classifier
	builder    *context.Builder
}

// New returns an empty engine with a freshly trained classifier.
func New() *Engine {
	g := graph.New()
	return &Engine{
		g:          g,
		classifier: query.NewClassifier(),
		builder:    context.NewBuilder(g),
	}
}

// Graph exposes the underlying graph for direct inspection.
func (e *Engine) Graph() *graph.Graph { return e.g }

// AddRepository creates a repository grouping node and returns its id.
func (e *Engine) AddRepository(name, url string) int64 {
	return e.g.AddNode(graph.NodeRepository, &graph.RepositoryData{Name: name, URL: url})
}

// AddDirectory creates a path grouping node under parentID and returns its
// id. A parentID of zero means no parent.
func (e *Engine) AddDirectory(path string, parentID int64) int64 {
	id := e.g.AddNode(graph.NodePath, &graph.PathData{Path: path})
	if parentID != 0 && e.g.Node(parentID) != nil {
		e.g.AddEdge(parentID, id, graph.RelContains, nil)
	}
	return id
}

// AddEntities populates the graph from one extracted file record and
// returns the file node's id. A parentID of zero means no grouping parent.
// Missing record lists degrade to empty; a nil record is a no-op.
//
// An extends reference is linked only against classes already in the graph
// when the subclass arrives. A superclass defined in a file loaded later
// stays unlinked.
func (e *Engine) AddEntities(rec *extract.FileRecord, parentID int64) int64 {
	if rec == nil {
		return 0
	}

	names := make([]string, 0, len(rec.Functions))
	for _, fn := range rec.Functions {
		names = append(names, fn.Name)
	}

	fileID := e.g.AddNode(graph.NodeFile, &graph.FileData{
		Path:      rec.Path,
		Content:   rec.Content,
		Size:      len(rec.Content),
		Language:  rec.Language,
		Functions: names,
	})
	if parentID != 0 && e.g.Node(parentID) != nil {
		e.g.AddEdge(parentID, fileID, graph.RelContains, nil)
	}

	for _, fn := range rec.Functions {
		id := e.g.AddNode(graph.NodeFunction, &graph.FunctionData{
			Name:     fn.Name,
			FilePath: rec.Path,
			Line:     fn.Line,
		})
		e.g.AddEdge(fileID, id, graph.RelDefines, nil)
	}

	for _, cl := range rec.Classes {
		id := e.g.AddNode(graph.NodeClass, &graph.ClassData{
			Name:     cl.Name,
			FilePath: rec.Path,
			Line:     cl.Line,
			Extends:  cl.Extends,
		})
		e.g.AddEdge(fileID, id, graph.RelDefines, nil)
		if cl.Extends != "" {
			if parents := e.g.FindNodesByProperty("name", cl.Extends, graph.NodeClass); len(parents) > 0 {
				e.g.AddEdge(id, parents[0].ID, graph.RelExtends, nil)
			}
		}
	}

	for _, imp := range rec.Imports {
		id := e.g.AddNode(graph.NodeImport, &graph.ImportData{
			Statement: imp.Statement,
			FilePath:  rec.Path,
			Line:      imp.Line,
		})
		e.g.AddEdge(fileID, id, graph.RelImports, nil)
	}

	for _, exp := range rec.Exports {
		id := e.g.AddNode(graph.NodeExport, &graph.ExportData{
			Statement: exp.Statement,
			FilePath:  rec.Path,
			Line:      exp.Line,
		})
		e.g.AddEdge(fileID, id, graph.RelExports, nil)
	}

	for _, doc := range rec.Docs {
		id := e.g.AddNode(graph.NodeDocumentation, &graph.DocumentationData{
			Text:     doc.Text,
			FilePath: rec.Path,
			Line:     doc.Line,
		})
		e.g.AddEdge(id, fileID, graph.RelDocuments, nil)
	}

	for _, h := range rec.Headings {
		id := e.g.AddNode(graph.NodeHeading, &graph.HeadingData{
			Text:     h.Text,
			Level:    h.Level,
			FilePath: rec.Path,
			Line:     h.Line,
		})
		e.g.AddEdge(fileID, id, graph.RelContains, nil)
	}

	for _, cb := range rec.CodeBlocks {
		id := e.g.AddNode(graph.NodeCodeBlock, &graph.CodeBlockData{
			Language: cb.Language,
			Content:  cb.Content,
			FilePath: rec.Path,
			Line:     cb.Line,
		})
		e.g.AddEdge(fileID, id, graph.RelContains, nil)
	}

	return fileID
}

// QueryResult carries a classified query and its ranked matches.
type QueryResult struct {
	QueryType query.Intent    `yaml:"query_type" json:"query_type"`
	Keywords  []query.Keyword `yaml:"keywords" json:"keywords"`
	Ranked    []query.Ranked  `yaml:"ranked" json:"ranked"`
}

// Query classifies the text, extracts keywords, and ranks the nodes of the
// intent's preferred types. When the preferred types yield nothing, the
// whole graph is ranked instead, so a misclassified query still finds its
// target. A query matching nothing returns an empty ranked list, not an
// error.
func (e *Engine) Query(text string) QueryResult {
	intent := e.classifier.Classify(text)
	keywords := query.ExtractKeywords(text)

	ranked := query.Rank(e.candidatesFor(intent), keywords)
	if len(ranked) == 0 && intent != query.IntentGeneral {
		ranked = query.Rank(e.g.Nodes(), keywords)
	}

	return QueryResult{QueryType: intent, Keywords: keywords, Ranked: ranked}
}

func (e *Engine) candidatesFor(intent query.Intent) []*graph.Node {
	var out []*graph.Node
	for _, kind := range query.NodeTypesFor(intent) {
		out = append(out, e.g.FindNodesByType(graph.NodeType(kind))...)
	}
	return out
}

// BuildContext runs a query and assembles the bounded excerpt bundle for
// it. Invalid budgets fail fast before any graph work; zero budgets take
// the defaults.
func (e *Engine) BuildContext(text string, opts context.Options) (context.Result, error) {
	if opts.MaxNodes < 0 {
		return context.Result{}, fmt.Errorf("invalid context options: max nodes %d is negative", opts.MaxNodes)
	}
	if opts.MaxFiles < 0 {
		return context.Result{}, fmt.Errorf("invalid context options: max files %d is negative", opts.MaxFiles)
	}
	if opts.MaxCodeLength < 0 {
		return context.Result{}, fmt.Errorf("invalid context options: max code length %d is negative", opts.MaxCodeLength)
	}

	defaults := context.DefaultOptions()
	if opts.MaxNodes == 0 {
		opts.MaxNodes = defaults.MaxNodes
	}
	if opts.MaxFiles == 0 {
		opts.MaxFiles = defaults.MaxFiles
	}
	if opts.MaxCodeLength == 0 {
		opts.MaxCodeLength = defaults.MaxCodeLength
	}

	q := e.Query(text)
	return e.builder.Build(text, q.QueryType, q.Ranked, q.Keywords, opts), nil
}

// RenderContext is BuildContext followed by rendering in the named format.
func (e *Engine) RenderContext(text string, opts context.Options, format output.Format) (string, error) {
	res, err := e.BuildContext(text, opts)
	if err != nil {
		return "", err
	}
	return output.Render(res, format)
}

// Export serializes the graph to its JSON snapshot form.
func (e *Engine) Export() ([]byte, error) { return e.g.Export() }

// Import replaces the graph with the snapshot in blob.
func (e *Engine) Import(blob []byte) error { return e.g.Import(blob) }

// Clear drops all nodes and edges.
func (e *Engine) Clear() { e.g.Clear() }
