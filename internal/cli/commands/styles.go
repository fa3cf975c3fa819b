package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/style"
	"github.com/spf13/cobra"
)

// NewStylesCommand creates the styles command.
func NewStylesCommand() *cobra.Command {
	opts := &SourceOptions{}
	var nodeID string

	cmd := &cobra.Command{
		Use:   "styles [design URL]",
		Short: "Show the CSS derived from a layer",
		Example: `  figlens styles --file card.json --image card.png --node 1:2
  figlens styles "https://www.figma.com/file/KEY/Card" --node 1:2 -o json`,
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
			return renderStyles(cc.Renderer, n, style.Derive(n))
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&nodeID, "node", "", "Layer ID")

	return cmd
}

func renderStyles(r *output.Renderer, n *figma.Node, decls style.Declarations) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(decls)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("%s (%s)", n.Name, n.ID)))
		r.Println(output.FormatCodeBlock("css", cssLines(decls)))
	default:
		styles := r.Styles()
		r.Header(1, fmt.Sprintf("%s %s", n.Name, styles.Muted.Render(n.ID)))
		for _, d := range decls {
			r.Printf("  %s: %s;\n", styles.ID.Render(d.Property), d.Value.String())
		}
	}
	return nil
}

func cssLines(decls style.Declarations) string {
	var sb strings.Builder
	for _, d := range decls {
		fmt.Fprintf(&sb, "%s: %s;\n", d.Property, d.Value.String())
	}
	return sb.String()
}
