package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	binary string // only resolve this binary
	format string // "table" or "json"
	submit bool   // show what would be handed to the host resolver
}

func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{format: formatTable}

	cmd := &cobra.Command{
		Use:   "resolve [manifest]",
		Short: "Resolve native dependencies for every binary target",
		Long: `Resolve native dependencies for every binary target of a manifest.

For each binary, prints the attached local libraries, the resolved library
files, the coordinates registered with the host resolver and the linker
search path arguments.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatTable && opts.format != formatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (available: table, json)", opts.format)
			}
			return c.runResolve(cmd.OutOrStdout(), manifestPath(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.binary, "binary", "b", "", "only resolve this binary")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json")
	cmd.Flags().BoolVar(&opts.submit, "submit", false, "print the dependencies handed to the host resolver, grouped by configuration")

	return cmd
}

func (c *CLI) runResolve(w io.Writer, path string, opts resolveOpts) error {
	prog := newProgress(c.Logger)
	_, out, err := c.loadResolutions(path, opts.binary)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d binaries", len(out)))

	if opts.submit {
		return writeSubmission(w, out, opts.format)
	}
	if opts.format == formatJSON {
		return writeJSON(w, out)
	}
	for i, res := range out {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderResolution(w, res)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSubmission replays every resolution into a recorder and prints the
// result per host configuration.
func writeSubmission(w io.Writer, out []*resolve.Resolution, format string) error {
	var rec resolve.Recorder
	for _, res := range out {
		if err := res.Submit(&rec); err != nil {
			return err
		}
	}

	if format == formatJSON {
		byConfig := make(map[string][]map[string]string, len(rec.Configurations()))
		for _, cfg := range rec.Configurations() {
			byConfig[cfg] = rec.Notations(cfg)
		}
		return writeJSON(w, byConfig)
	}

	for _, cfg := range rec.Configurations() {
		fmt.Fprintln(w, StyleTitle.Render(cfg))
		for _, n := range rec.Notations(cfg) {
			printDetail(w, "%s", notationString(n))
		}
	}
	printSuccess(w, "%d dependencies in %d configurations", rec.Len(), len(rec.Configurations()))
	return nil
}

func notationString(n map[string]string) string {
	s := fmt.Sprintf("group=%s name=%s", n["group"], n["name"])
	for _, k := range []string{"version", "classifier", "configuration", "ext"} {
		if v, ok := n[k]; ok {
			s += fmt.Sprintf(" %s=%s", k, v)
		}
	}
	return s
}

// renderResolution prints one binary's resolution as styled tables.
func renderResolution(w io.Writer, res *resolve.Resolution) {
	b := res.Binary
	title := StyleTitle.Render(b.Name)
	if res.Test {
		title += " " + StyleWarning.Render("(test)")
	}
	fmt.Fprintln(w, title)
	printKeyValue(w, "platform", b.Platform)
	printKeyValue(w, "build type", b.BuildType)
	printKeyValue(w, "toolchain", fmt.Sprintf("%s (%s)", b.Toolchain, b.OS))
	fmt.Fprintln(w)

	if len(res.Local) == 0 && len(res.Libraries) == 0 {
		printInfo(w, "no native dependencies")
	} else {
		fmt.Fprintln(w, librariesTable(res).Render())
	}

	if len(res.Registrations) > 0 {
		fmt.Fprintln(w, coordinatesTable(res).Render())
	}

	for _, arg := range res.LinkerArgs {
		printFile(w, arg)
	}
}

func librariesTable(res *resolve.Resolution) *table.Table {
	var rows [][]string
	for _, l := range res.Local {
		rows = append(rows, []string{l.Usage, "local", l.Library.Name, "", "", ""})
	}
	for _, lib := range res.Libraries {
		rows = append(rows, []string{lib.Usage, "downloaded", lib.Library, string(lib.Linkage), orDash(lib.LinkFile), orDash(lib.RuntimeFile)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Usage", "Origin", "Library", "Linkage", "Link", "Runtime").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < len(res.Local) {
				return styleLocal
			}
			if col == 2 {
				return styleDownloaded
			}
			return lipgloss.NewStyle()
		})
}

func coordinatesTable(res *resolve.Resolution) *table.Table {
	rows := make([][]string, len(res.Registrations))
	for i, r := range res.Registrations {
		rows[i] = []string{r.Configuration, r.Coordinate.String()}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Configuration", "Coordinate").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if res.Registrations[row].Coordinate.Transitive {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
