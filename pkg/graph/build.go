package graph

import (
	"fmt"

	"github.com/matzehuels/nativedeps/pkg/resolve"
)

// Node rows.
const (
	RowBinaries  = 0
	RowLibraries = 1
)

// LocalID returns the node ID of a local library.
func LocalID(name string) string { return "local:" + name }

// DownloadedID returns the node ID of a downloaded library. Downloaded IDs
// have their own prefix so a group named "local" cannot alias a local node.
func DownloadedID(group, name string) string { return "dl:" + group + ":" + name }

// Build creates the graph of binaries and the libraries attached to them.
// A library used by several binaries is a single node.
func Build(resolutions []*resolve.Resolution) (*Graph, error) {
	g := New()
	for _, res := range resolutions {
		b := res.Binary
		err := g.AddNode(Node{
			ID:   b.Name,
			Row:  RowBinaries,
			Kind: KindBinary,
			Meta: Metadata{
				"platform":  b.Platform,
				"buildType": b.BuildType,
				"toolchain": string(b.Toolchain),
				"test":      res.Test,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("binary %s: %w", b.Name, err)
		}

		for _, l := range res.Local {
			id := LocalID(l.Library.Name)
			if err := g.ensure(Node{ID: id, Label: l.Library.Name, Row: RowLibraries, Kind: KindLocal}); err != nil {
				return nil, err
			}
			if err := g.AddEdge(Edge{From: b.Name, To: id, Meta: Metadata{"usage": l.Usage}}); err != nil {
				return nil, err
			}
		}

		// Libraries and primary registrations are produced in the same order.
		primaries := primaryCoordinates(res)
		if len(primaries) != len(res.Libraries) {
			return nil, fmt.Errorf("binary %s: %d libraries but %d primary coordinates",
				b.Name, len(res.Libraries), len(primaries))
		}
		for i, lib := range res.Libraries {
			c := primaries[i]
			id := DownloadedID(c.Group, c.Name)
			node := Node{
				ID:    id,
				Label: lib.Library,
				Row:   RowLibraries,
				Kind:  KindDownloaded,
				Meta:  Metadata{"group": c.Group},
			}
			if c.Version != "" {
				node.Meta["version"] = c.Version
			}
			if err := g.ensure(node); err != nil {
				return nil, err
			}
			err := g.AddEdge(Edge{From: b.Name, To: id, Meta: Metadata{
				"usage":      lib.Usage,
				"linkage":    string(lib.Linkage),
				"classifier": c.Classifier,
			}})
			if err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (g *Graph) ensure(n Node) error {
	if existing, ok := g.nodes[n.ID]; ok {
		if existing.Kind != n.Kind {
			return fmt.Errorf("%w: %s is already a %s node, not %s", ErrDuplicateNodeID, n.ID, existing.Kind, n.Kind)
		}
		return nil
	}
	return g.AddNode(n)
}

func primaryCoordinates(res *resolve.Resolution) []resolve.Coordinate {
	out := make([]resolve.Coordinate, 0, len(res.Libraries))
	for _, r := range res.Registrations {
		if !r.Coordinate.Transitive {
			out = append(out, r.Coordinate)
		}
	}
	return out
}
