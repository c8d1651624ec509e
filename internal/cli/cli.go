// Package cli implements the beamframe command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/buildinfo"
	"github.com/beamframe/beamframe/pkg/iec"
	"github.com/beamframe/beamframe/pkg/setup"
)

// =============================================================================
// Constants
// =============================================================================

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

// New creates a new CLI instance with a default logger. Logs go to w;
// command output goes to each command's configured output stream.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "beamframe",
		Short:        "Beamframe computes IEC 61217 coordinate transforms for radiotherapy machines",
		Long:         `Beamframe models the IEC 61217 coordinate frame hierarchy of an external-beam radiotherapy machine and computes affine transforms between any two frames from the machine's joint parameters.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.framesCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.setupCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Machine Factory
// =============================================================================

// newMachine builds a machine, optionally posed from a TOML setup file.
func (c *CLI) newMachine(setupPath string) (*iec.Machine, error) {
	m := iec.NewMachine()
	if setupPath == "" {
		return m, nil
	}
	p, err := setup.LoadFile(setupPath)
	if err != nil {
		return nil, err
	}
	p.Apply(m)
	c.Logger.Debug("applied setup file", "path", setupPath)
	return m, nil
}

// loadParameters reads the setup file, or returns the default setup
// when path is empty.
func loadParameters(path string) (setup.Parameters, error) {
	if path == "" {
		return setup.Default(), nil
	}
	return setup.LoadFile(path)
}
