package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/pkg/iec"
)

// transformCommand creates the transform command computing a frame-to-frame
// transform.
func (c *CLI) transformCommand() *cobra.Command {
	var (
		fromName  string
		toName    string
		beam      bool
		setupPath string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Compute the transform between two coordinate frames",
		Long: `Compute the transform between two coordinate frames.

The machine is posed from the TOML setup file given with --setup, or
left at its home position. With --beam, elementary transforms on the
path from the root are taken as stored instead of inverted, matching
beam's-eye-view conventions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := iec.ParseFrame(fromName)
			if err != nil {
				return err
			}
			to, err := iec.ParseFrame(toName)
			if err != nil {
				return err
			}
			m, err := c.newMachine(setupPath)
			if err != nil {
				return err
			}
			t, err := m.TransformBetween(from, to, beam)
			if err != nil {
				return err
			}

			if asJSON {
				out := struct {
					From   string        `json:"from"`
					To     string        `json:"to"`
					Beam   bool          `json:"beam,omitempty"`
					Matrix [4][4]float64 `json:"matrix"`
				}{from.String(), to.String(), beam, t.Rows()}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s", iec.TransformNameBetween(from, to), t)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromName, "from", "", "source frame name")
	cmd.Flags().StringVar(&toName, "to", "", "target frame name")
	cmd.Flags().BoolVar(&beam, "beam", false, "compose for beam's-eye view")
	cmd.Flags().StringVar(&setupPath, "setup", "", "TOML setup file to pose the machine")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
