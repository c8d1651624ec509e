package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/iec"
)

// framesCommand creates the frames command listing the declared frames.
func (c *CLI) framesCommand() *cobra.Command {
	var (
		transforms bool
		setupPath  string
	)

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "List the IEC 61217 coordinate frames",
		Long: `List the IEC 61217 coordinate frames.

With --transforms, dump every elementary transform matrix instead of
just the frame names. A TOML setup file can pose the machine first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !transforms {
				for _, f := range iec.Frames() {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}
			m, err := c.newMachine(setupPath)
			if err != nil {
				return err
			}
			return m.WriteDump(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&transforms, "transforms", false, "dump elementary transform matrices")
	cmd.Flags().StringVar(&setupPath, "setup", "", "TOML setup file to pose the machine")

	return cmd
}
