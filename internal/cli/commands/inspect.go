package commands

import (
	"fmt"

	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/style"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &SourceOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [design URL]",
		Short: "Load a design and list its layers",
		Long: `Load a design and list every visible layer with a bounding box.

The JSON output is the payload of the viewer's loaded event: each layer
with its derived styles.`,
		Example: `  # Inspect a remote design
  figlens inspect "https://www.figma.com/file/KEY/Card?node-id=1-2"

  # Inspect a local export
  figlens inspect --file card.json --image card.png

  # As JSON
  figlens inspect --snapshot 6f1c... -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, v, err := openSource(cmd, opts, args)
			if err != nil {
				return err
			}
			return renderInspect(cc.Renderer, v)
		},
	}
	opts.AddFlags(cmd.Flags())

	return cmd
}

func renderInspect(r *output.Renderer, v *viewer.Viewer) error {
	nodes := v.Nodes()

	if r.EffectiveMode() == output.ModeJSON {
		loaded := viewer.Loaded{Nodes: make([]viewer.InspectedNode, 0, len(nodes))}
		for _, n := range nodes {
			loaded.Nodes = append(loaded.Nodes, viewer.Inspect(n))
		}
		return r.JSON(loaded)
	}

	root := v.Root()
	r.Header(1, fmt.Sprintf("%s (%d layers)", root.Name, len(nodes)))
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, string(n.Type), n.Name, nodeSize(n)})
	}
	r.Table([]string{"ID", "Type", "Name", "Size"}, rows)
	return nil
}

func nodeSize(n *figma.Node) string {
	if n.BoundingBox == nil {
		return ""
	}
	return fmt.Sprintf("%s × %s", style.Px(n.BoundingBox.Width), style.Px(n.BoundingBox.Height))
}
