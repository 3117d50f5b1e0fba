package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/nativedeps/pkg/graph"
)

func ExampleWriteJSON() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "app", Kind: graph.KindBinary})
	_ = g.AddNode(graph.Node{ID: "local:m", Label: "m", Row: 1, Kind: graph.KindLocal})
	_ = g.AddEdge(graph.Edge{From: "app", To: "local:m", Meta: graph.Metadata{"usage": "compile"}})

	var buf bytes.Buffer
	if err := graph.WriteJSON(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "app",
	//       "kind": "binary"
	//     },
	//     {
	//       "id": "local:m",
	//       "label": "m",
	//       "row": 1,
	//       "kind": "local"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "app",
	//       "to": "local:m",
	//       "meta": {
	//         "usage": "compile"
	//       }
	//     }
	//   ]
	// }
}

func ExampleToDOT() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "app", Kind: graph.KindBinary})
	_ = g.AddNode(graph.Node{ID: "dl:org.acme:zlib", Label: "zlib", Row: 1, Kind: graph.KindDownloaded})
	_ = g.AddEdge(graph.Edge{From: "app", To: "dl:org.acme:zlib"})

	fmt.Print(graph.ToDOT(g, graph.Options{}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
	//   ranksep=0.8;
	//   nodesep=0.3;
	//
	//   { rank=same; "app"; }
	//   { rank=same; "dl:org.acme:zlib"; }
	//
	//   "app" [label="app", fillcolor="#e8f0fe", penwidth=2];
	//   "dl:org.acme:zlib" [label="zlib", fillcolor="#fff4e0"];
	//
	//   "app" -> "dl:org.acme:zlib";
	// }
}
