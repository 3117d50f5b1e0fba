// Package graph builds a layered view of resolutions: binaries in the top
// row, the libraries they consume in the row below.
//
// # Overview
//
// [Build] turns resolutions into a [Graph]. Each binary becomes a
// [KindBinary] node in row 0; each library becomes a [KindLocal] or
// [KindDownloaded] node in row 1, shared between all binaries that use it.
// Edges carry the usage bucket and linkage:
//
//	g, err := graph.Build(resolutions)
//	dot := graph.ToDOT(g, graph.Options{Detailed: true})
//	svg, err := graph.RenderSVG(ctx, dot)
//
// Edges only connect consecutive rows; [Graph.Validate] checks this.
package graph
