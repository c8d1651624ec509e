package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/grid"
)

// indexCommand creates the index command group for voxel index conversion.
func (c *CLI) indexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Convert between 3D voxel indices and flat array offsets",
	}
	cmd.AddCommand(c.linearizeCommand())
	cmd.AddCommand(c.delinearizeCommand())
	return cmd
}

func (c *CLI) linearizeCommand() *cobra.Command {
	var extentsStr string

	cmd := &cobra.Command{
		Use:   "linearize [i] [j] [k]",
		Short: "Convert a 3D voxel index to a flat array offset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseTriple(args)
			if err != nil {
				return err
			}
			extents, err := parseExtents(extentsStr)
			if err != nil {
				return err
			}
			linear, err := grid.ToLinear(index, extents)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), linear)
			return nil
		},
	}

	cmd.Flags().StringVar(&extentsStr, "extents", "", "grid extents as n0,n1,n2")
	_ = cmd.MarkFlagRequired("extents")

	return cmd
}

func (c *CLI) delinearizeCommand() *cobra.Command {
	var extentsStr string

	cmd := &cobra.Command{
		Use:   "delinearize [offset]",
		Short: "Convert a flat array offset back to a 3D voxel index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			linear, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("offset %q: %w", args[0], err)
			}
			extents, err := parseExtents(extentsStr)
			if err != nil {
				return err
			}
			index, err := grid.FromLinear(linear, extents)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %d\n", index[0], index[1], index[2])
			return nil
		},
	}

	cmd.Flags().StringVar(&extentsStr, "extents", "", "grid extents as n0,n1,n2")
	_ = cmd.MarkFlagRequired("extents")

	return cmd
}

// parseExtents parses "n0,n1,n2" into a uint16 triple.
func parseExtents(s string) ([3]uint16, error) {
	return parseTriple(strings.Split(s, ","))
}

func parseTriple(parts []string) ([3]uint16, error) {
	var out [3]uint16
	if len(parts) != 3 {
		return out, fmt.Errorf("want three components, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return out, fmt.Errorf("component %q: %w", p, err)
		}
		out[i] = uint16(v)
	}
	return out, nil
}
