package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nativedeps/pkg/manifest"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check declarations and binary targets",
		Long: `Check a manifest without printing resolutions.

Every declaration is parsed, every binary target is checked and resolved, so
the first configuration error (missing attribute, unsupported linkage or
toolchain) is reported exactly as resolve would report it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.OutOrStdout(), manifestPath(args))
		},
	}
}

func (c *CLI) runValidate(w io.Writer, path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	policy, err := m.Policy()
	if err != nil {
		return err
	}

	out, err := m.Resolve(c.Logger)
	if err != nil {
		return err
	}

	registrations := 0
	for _, res := range out {
		registrations += len(res.Registrations)
	}
	printSuccess(w, "%s is valid", path)
	printDetail(w, "%s", policy)
	printDetail(w, "%d declarations, %d binaries, %d coordinates", m.Declarations(), len(out), registrations)
	if len(m.TestComponents) > 0 {
		printDetail(w, "test components: %v", m.TestComponents)
	}
	return nil
}
