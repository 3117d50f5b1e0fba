package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/graph"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file; stdout when empty
	format   string // "dot", "svg" or "json"; derived from output extension when empty
	detailed bool   // include metadata and edge labels
	from     string // previously exported JSON graph; replaces the manifest
}

func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [manifest]",
		Short: "Export the binary/library graph as DOT, SVG or JSON",
		Long: `Export the graph of binaries and the libraries attached to them.

With --from, the graph is read from a JSON file written by an earlier
"graph -f json" run instead of being resolved from a manifest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.from != "" && len(args) > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--from cannot be combined with a manifest argument")
			}
			format, err := graphFormat(opts)
			if err != nil {
				return err
			}
			opts.format = format
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), manifestPath(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, json (default: from output extension, else dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show metadata and edge labels")
	cmd.Flags().StringVar(&opts.from, "from", "", "read the graph from a JSON export instead of a manifest")

	return cmd
}

// graphFormat picks the explicit format, else the output file extension,
// else DOT.
func graphFormat(opts graphOpts) (string, error) {
	format := opts.format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(opts.output), ".")
	}
	switch format {
	case "", formatDOT, "gv":
		return formatDOT, nil
	case formatSVG, formatJSON:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (available: dot, svg, json)", format)
}

// loadGraph builds the graph from the manifest at path, or reads it from
// opts.from when set.
func (c *CLI) loadGraph(path string, opts graphOpts) (*graph.Graph, error) {
	if opts.from != "" {
		f, err := os.Open(opts.from)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "graph %s not found", opts.from)
		}
		if err != nil {
			return nil, fmt.Errorf("open graph: %w", err)
		}
		defer f.Close()

		g, err := graph.ReadJSON(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.from)
		}
		return g, nil
	}

	_, out, err := c.loadResolutions(path, "")
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(out)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return g, nil
}

func (c *CLI) runGraph(ctx context.Context, w io.Writer, path string, opts graphOpts) error {
	g, err := c.loadGraph(path, opts)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	c.Logger.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	var data []byte
	switch opts.format {
	case formatJSON:
		var buf bytes.Buffer
		if err := graph.WriteJSON(g, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	case formatSVG:
		prog := newProgress(c.Logger)
		if data, err = graph.RenderSVG(ctx, graph.ToDOT(g, graph.Options{Detailed: opts.detailed})); err != nil {
			return err
		}
		prog.done("Rendered SVG")
	default:
		data = []byte(graph.ToDOT(g, graph.Options{Detailed: opts.detailed}))
	}

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(w, "Wrote %s graph", opts.format)
	printFile(w, opts.output)
	return nil
}
