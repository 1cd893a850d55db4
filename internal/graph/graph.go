// Package graph implements the in-memory code entity graph.
//
// The graph holds typed nodes (repositories, files, functions, classes,
// imports, exports, documentation, ...) connected by directed, labeled
// edges. Nodes and edges are created once during population and never
// mutated afterwards; the only destructive operation is Clear (or Import,
// which replaces the whole graph from a snapshot).
//
// The graph is single-writer: populate first, query after. Queries are
// pure reads and safe to repeat.
package graph

import (
	"encoding/json"
	"time"
)

// NodeType identifies the kind of entity a node represents.
type NodeType string

const (
	NodeRepository    NodeType = "repository"
	NodeFile          NodeType = "file"
	NodeFunction      NodeType = "function"
	NodeClass         NodeType = "class"
	NodeImport        NodeType = "import"
	NodeExport        NodeType = "export"
	NodeDocumentation NodeType = "documentation"
	NodeHeading       NodeType = "heading"
	NodeCodeBlock     NodeType = "codeblock"
	NodePath          NodeType = "path"
)

// Relationship labels a directed edge between two nodes.
type Relationship string

const (
	RelContains   Relationship = "contains"
	RelDefines    Relationship = "defines"
	RelImports    Relationship = "imports"
	RelExports    Relationship = "exports"
	RelExtends    Relationship = "extends"
	RelReferences Relationship = "references"
	RelDocuments  Relationship = "documents"
)

// Node is a typed entity in the graph. Data carries the kind-specific
// attributes; serialized caches the JSON form of Data for substring and
// keyword scoring (Data is immutable after creation, so caching is safe).
type Node struct {
	ID        int64     `json:"id"`
	Type      NodeType  `json:"type"`
	Data      NodeData  `json:"data"`
	CreatedAt time.Time `json:"created_at"`

	serialized string
}

// Serialized returns the cached JSON serialization of the node's data.
func (n *Node) Serialized() string {
	return n.serialized
}

// Name returns the entity name carried by the node's data, or "" when the
// node kind has no name.
func (n *Node) Name() string {
	if n.Data == nil {
		return ""
	}
	return n.Data.EntityName()
}

// Edge is a directed, labeled relationship between two nodes. Edges are
// never mutated after creation, only added.
type Edge struct {
	ID           int64             `json:"id"`
	SourceNodeID int64             `json:"source"`
	TargetNodeID int64             `json:"target"`
	Relationship Relationship      `json:"relationship"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Graph is the entity store. It exclusively owns all nodes and edges;
// callers must not mutate returned values.
type Graph struct {
	nodes []*Node
	byID  map[int64]*Node

	edges []*Edge
	// incident lists every edge touching a node, from either endpoint.
	// Traversal treats edges as undirected for reachability; the
	// relationship label stays directed when reported.
	incident map[int64][]*Edge

	nextNodeID int64
	nextEdgeID int64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:     make(map[int64]*Node),
		incident: make(map[int64][]*Edge),
	}
}

// AddNode inserts a node with a fresh, monotonically assigned id and
// returns that id.
func (g *Graph) AddNode(kind NodeType, data NodeData) int64 {
	g.nextNodeID++
	id := g.nextNodeID
	g.insertNode(id, kind, data, time.Now())
	return id
}

// AddNodeWithID inserts a node under a caller-supplied id. The id must be
// globally unique: inserting an existing id silently overwrites the node
// in place, which is a correctness risk callers accept when they choose
// their own ids. The internal counter advances past the supplied id so
// later AddNode calls never collide.
func (g *Graph) AddNodeWithID(id int64, kind NodeType, data NodeData) int64 {
	if id > g.nextNodeID {
		g.nextNodeID = id
	}
	g.insertNode(id, kind, data, time.Now())
	return id
}

func (g *Graph) insertNode(id int64, kind NodeType, data NodeData, at time.Time) {
	n := &Node{
		ID:        id,
		Type:      kind,
		Data:      data,
		CreatedAt: at,
	}
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			n.serialized = string(b)
		}
	}

	if old, ok := g.byID[id]; ok {
		// Silent overwrite: keep the original insertion position.
		for i, existing := range g.nodes {
			if existing == old {
				g.nodes[i] = n
				break
			}
		}
		g.byID[id] = n
		return
	}

	g.nodes = append(g.nodes, n)
	g.byID[id] = n
}

// AddEdge inserts a directed edge and returns its id. Endpoint existence
// is not validated; callers must only link nodes already in the store.
func (g *Graph) AddEdge(sourceID, targetID int64, rel Relationship, metadata map[string]string) int64 {
	g.nextEdgeID++
	e := &Edge{
		ID:           g.nextEdgeID,
		SourceNodeID: sourceID,
		TargetNodeID: targetID,
		Relationship: rel,
		Metadata:     metadata,
	}
	g.edges = append(g.edges, e)
	g.incident[sourceID] = append(g.incident[sourceID], e)
	if targetID != sourceID {
		g.incident[targetID] = append(g.incident[targetID], e)
	}
	return e.ID
}

// Node returns the node with the given id, or nil if absent.
func (g *Graph) Node(id int64) *Node {
	return g.byID[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// FindNodesByType returns every node of the given type in insertion order.
func (g *Graph) FindNodesByType(kind NodeType) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

// FindNodesByProperty returns nodes whose data property key equals value
// exactly. No partial matching. An empty kind matches all node types.
func (g *Graph) FindNodesByProperty(key, value string, kind NodeType) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if kind != "" && n.Type != kind {
			continue
		}
		if n.Data == nil {
			continue
		}
		if v, ok := n.Data.Property(key); ok && v == value {
			out = append(out, n)
		}
	}
	return out
}

// EdgesFor returns every edge touching the node, regardless of direction.
func (g *Graph) EdgesFor(id int64) []*Edge {
	return g.incident[id]
}

// Clear removes all nodes and edges and resets the id counters.
func (g *Graph) Clear() {
	g.nodes = nil
	g.edges = nil
	g.byID = make(map[int64]*Node)
	g.incident = make(map[int64][]*Edge)
	g.nextNodeID = 0
	g.nextEdgeID = 0
}
