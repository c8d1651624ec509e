package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/iec"
)

// edgesCommand creates the edges command listing the elementary transforms.
func (c *CLI) edgesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List the elementary transforms of the frame hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range iec.Edges() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s -> %s\n", e.Name(), e.From, e.To)
			}
			return nil
		},
	}
	return cmd
}
