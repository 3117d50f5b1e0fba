package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nativedeps/pkg/buildinfo"
	"github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/manifest"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used in help text and completions.
	appName = "nativedeps"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = "127.0.0.1:8780"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Resolve native library dependencies per binary target",
		Long:         `nativedeps reads a nativedeps.toml project file, validates its native library declarations and computes, for every binary target, the coordinates to fetch, the files to link and the linker search paths.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manifest Helpers
// =============================================================================

// manifestPath returns the manifest argument or the default filename.
func manifestPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return manifest.DefaultFilename
}

// loadResolutions loads the manifest and resolves every binary, or only the
// named one when binary is set.
func (c *CLI) loadResolutions(path, binary string) (*manifest.Manifest, []*resolve.Resolution, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("loaded manifest", "path", path, "declarations", m.Declarations(), "binaries", len(m.Binaries))

	out, err := m.Resolve(c.Logger)
	if err != nil {
		return nil, nil, err
	}
	if binary == "" {
		return m, out, nil
	}
	for _, res := range out {
		if res.Binary.Name == binary {
			return m, []*resolve.Resolution{res}, nil
		}
	}
	return nil, nil, errors.New(errors.ErrCodeNotFound, "binary %q not declared in %s", binary, path)
}
