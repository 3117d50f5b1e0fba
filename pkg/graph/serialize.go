package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Document is the JSON form of a graph. Nodes are sorted by ID and edges
// keep insertion order, so equal graphs serialize identically.
type Document struct {
	Nodes []DocumentNode `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
}

// DocumentNode is a serialized node.
type DocumentNode struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"`
	Row   int            `json:"row,omitempty"`
	Kind  string         `json:"kind"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// DocumentEdge is a serialized edge.
type DocumentEdge struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Export converts the graph to its serialization form.
func Export(g *Graph) Document {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *Node) int { return strings.Compare(a.ID, b.ID) })

	doc := Document{
		Nodes: make([]DocumentNode, len(nodes)),
		Edges: make([]DocumentEdge, 0, g.EdgeCount()),
	}
	for i, n := range nodes {
		doc.Nodes[i] = DocumentNode{
			ID:    n.ID,
			Label: n.Label,
			Row:   n.Row,
			Kind:  n.Kind.String(),
			Meta:  nonEmpty(n.Meta),
		}
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, DocumentEdge{From: e.From, To: e.To, Meta: nonEmpty(e.Meta)})
	}
	return doc
}

// Import rebuilds a graph from its serialization form.
func Import(doc Document) (*Graph, error) {
	g := New()
	for _, dn := range doc.Nodes {
		kind, err := parseKind(dn.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", dn.ID, err)
		}
		n := Node{ID: dn.ID, Label: dn.Label, Row: dn.Row, Kind: kind, Meta: Metadata(dn.Meta)}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", dn.ID, err)
		}
	}
	for _, de := range doc.Edges {
		if err := g.AddEdge(Edge{From: de.From, To: de.To, Meta: Metadata(de.Meta)}); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", de.From, de.To, err)
		}
	}
	return g, nil
}

// WriteJSON writes the graph as indented JSON.
func WriteJSON(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export(g))
}

// ReadJSON reads a graph written by WriteJSON.
func ReadJSON(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return Import(doc)
}

func parseKind(s string) (NodeKind, error) {
	for _, k := range []NodeKind{KindBinary, KindLocal, KindDownloaded} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

func nonEmpty(m Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}
