package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrNonConsecutiveRows is returned by [Graph.Validate] when an edge
	// connects nodes that are not in adjacent rows.
	ErrNonConsecutiveRows = errors.New("edges must connect consecutive rows")
)

// Metadata stores key-value pairs attached to nodes or edges.
type Metadata map[string]any

// NodeKind distinguishes binaries from the two library origins.
type NodeKind int

const (
	KindBinary NodeKind = iota
	KindLocal
	KindDownloaded
)

func (k NodeKind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindDownloaded:
		return "downloaded"
	}
	return "binary"
}

// Node is a vertex with an assigned row.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label; ID when empty
	Row   int      // 0 for binaries, 1 for libraries
	Kind  NodeKind // Binary, local or downloaded library
	Meta  Metadata // Never nil after AddNode
}

// DisplayLabel returns Label, or ID when no label is set.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects a binary to a library it consumes.
type Edge struct {
	From string
	To   string
	Meta Metadata // Never nil after AddEdge
}

// Graph is a row-layered directed graph. The zero value is not usable; use
// New. Graph is not safe for concurrent use.
type Graph struct {
	nodes    map[string]*Node
	order    []string // insertion order
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	rows     map[int][]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		rows:     make(map[int][]*Node),
	}
}

// AddNode adds a node and indexes it by row.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	g.rows[node.Row] = append(g.rows[node.Row], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Row adjacency is
// checked by Validate.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs the node has edges to. Read-only.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs that have edges to the node. Read-only.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// NodesInRow returns the nodes of a row in insertion order.
func (g *Graph) NodesInRow(row int) []*Node { return g.rows[row] }

// RowIDs returns the row indices in ascending order.
func (g *Graph) RowIDs() []int {
	return slices.Sorted(maps.Keys(g.rows))
}

// Validate checks that every edge connects consecutive rows.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		src, dst := g.nodes[e.From], g.nodes[e.To]
		if dst.Row != src.Row+1 {
			return ErrNonConsecutiveRows
		}
	}
	return nil
}
