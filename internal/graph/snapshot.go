package graph

import (
	"encoding/json"
	"fmt"
	"time"
)

// snapshotVersion guards the snapshot wire format.
const snapshotVersion = 1

// Snapshot is the JSON-serializable form of the whole graph.
type Snapshot struct {
	Version    int            `json:"version"`
	Nodes      []snapshotNode `json:"nodes"`
	Edges      []*Edge        `json:"edges"`
	NextNodeID int64          `json:"next_node_id"`
	NextEdgeID int64          `json:"next_edge_id"`
}

type snapshotNode struct {
	ID        int64           `json:"id"`
	Type      NodeType        `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Export serializes the full graph to a JSON snapshot.
func (g *Graph) Export() ([]byte, error) {
	snap := Snapshot{
		Version:    snapshotVersion,
		Nodes:      make([]snapshotNode, 0, len(g.nodes)),
		Edges:      g.edges,
		NextNodeID: g.nextNodeID,
		NextEdgeID: g.nextEdgeID,
	}
	for _, n := range g.nodes {
		sn := snapshotNode{
			ID:        n.ID,
			Type:      n.Type,
			CreatedAt: n.CreatedAt,
		}
		if n.serialized != "" {
			sn.Data = json.RawMessage(n.serialized)
		}
		snap.Nodes = append(snap.Nodes, sn)
	}
	return json.Marshal(snap)
}

// Import replaces the entire graph state with the snapshot: existing nodes
// and edges are cleared first, and the id counters are restored so that
// ids assigned after the import never collide with restored ones.
func (g *Graph) Import(blob []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	g.Clear()

	for _, sn := range snap.Nodes {
		var data NodeData
		if len(sn.Data) > 0 {
			data = dataForType(sn.Type)
			if data != nil {
				if err := json.Unmarshal(sn.Data, data); err != nil {
					return fmt.Errorf("decode node %d data: %w", sn.ID, err)
				}
			}
		}
		g.insertNode(sn.ID, sn.Type, data, sn.CreatedAt)
		if sn.ID > g.nextNodeID {
			g.nextNodeID = sn.ID
		}
	}

	for _, e := range snap.Edges {
		g.edges = append(g.edges, e)
		g.incident[e.SourceNodeID] = append(g.incident[e.SourceNodeID], e)
		if e.TargetNodeID != e.SourceNodeID {
			g.incident[e.TargetNodeID] = append(g.incident[e.TargetNodeID], e)
		}
		if e.ID > g.nextEdgeID {
			g.nextEdgeID = e.ID
		}
	}

	if snap.NextNodeID > g.nextNodeID {
		g.nextNodeID = snap.NextNodeID
	}
	if snap.NextEdgeID > g.nextEdgeID {
		g.nextEdgeID = snap.NextEdgeID
	}
	return nil
}
