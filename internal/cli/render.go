package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/dot"
)

// renderCommand creates the render command drawing the frame hierarchy.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output    string
		format    string
		edgeNames bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the frame hierarchy as a diagram",
		Long: `Render the frame hierarchy as a diagram.

Output formats are svg (default), png and dot. Without --output the
result is written to stdout; png output requires --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := dot.ToDOT(dot.Options{EdgeNames: edgeNames})

			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(src)
			case "svg":
				var err error
				if data, err = dot.RenderSVG(src); err != nil {
					return err
				}
			case "png":
				if output == "" {
					return fmt.Errorf("png output requires --output")
				}
				var err error
				if data, err = dot.RenderPNG(src); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q, want svg, png or dot", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			c.Logger.Info("wrote diagram", "path", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, dot")
	cmd.Flags().BoolVar(&edgeNames, "edge-names", false, "label edges with transform names")

	return cmd
}
