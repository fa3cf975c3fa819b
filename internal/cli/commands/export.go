package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &SourceOptions{}
	var nodeID, out string

	cmd := &cobra.Command{
		Use:   "export [design URL]",
		Short: "Crop a layer out of the rendered bitmap",
		Long: `Crop a layer's bounding box out of the rendered bitmap as PNG.

Without --out the image is printed as a data URL.`,
		Example: `  figlens export --file card.json --image card.png --node 1:3 -O button.png
  figlens export --snapshot 6f1c... --node 1:2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nodeID == "" {
				return errors.New("--node is required")
			}
			cc, v, err := openSource(cmd, opts, args)
			if err != nil {
				return err
			}
			n, err := v.Node(nodeID)
			if err != nil {
				return fmt.Errorf("%s: %w", nodeID, err)
			}
			r := cc.Renderer

			if out == "" {
				dataURL, err := v.ExportImage(n)
				if err != nil {
					return fmt.Errorf("failed to export %s: %w", nodeID, err)
				}
				if r.EffectiveMode() == output.ModeJSON {
					return r.JSON(map[string]string{"node": n.ID, "dataUrl": dataURL})
				}
				r.Println(dataURL)
				return nil
			}

			data, err := v.ExportPNG(n)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", nodeID, err)
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]any{"node": n.ID, "path": out, "bytes": len(data)})
			}
			r.Success(fmt.Sprintf("Exported %s to %s", n.Name, out))
			return nil
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&nodeID, "node", "", "Layer ID")
	cmd.Flags().StringVarP(&out, "out", "O", "", "Output PNG file (default: data URL on stdout)")

	return cmd
}
