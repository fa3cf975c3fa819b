package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/guide"
	"github.com/spf13/cobra"
)

// Guide kinds.
const (
	guideDistance = "distance"
	guideInset    = "inset"
)

// measuredGuide is one guide in command output.
type measuredGuide struct {
	Kind     string         `json:"kind"`
	Points   guide.Segment  `json:"points"`
	Bisector *guide.Segment `json:"bisector,omitempty"`
	Length   float64        `json:"length"`
	Label    string         `json:"label"`
}

// NewGuidesCommand creates the guides command.
func NewGuidesCommand() *cobra.Command {
	opts := &SourceOptions{}
	var selectID, hoverID string
	var insets bool

	cmd := &cobra.Command{
		Use:   "guides [design URL]",
		Short: "Measure the distances between two layers",
		Long: `Measure the gaps between a selected and a hovered layer, in design units.

A horizontal guide is reported when the layers are apart on the x axis and a
vertical one when they are apart on the y axis. With --insets, nested layers
also get one guide per side from the inner to the outer edge.`,
		Example: `  figlens guides --file card.json --image card.png --select 1:2 --hover 1:3
  figlens guides --snapshot 6f1c... --select 1:1 --hover 1:2 --insets`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if selectID == "" || hoverID == "" {
				return errors.New("--select and --hover are required")
			}
			cc, v, err := openSource(cmd, opts, args)
			if err != nil {
				return err
			}
			selected, err := v.Node(selectID)
			if err != nil {
				return fmt.Errorf("%s: %w", selectID, err)
			}
			hovered, err := v.Node(hoverID)
			if err != nil {
				return fmt.Errorf("%s: %w", hoverID, err)
			}
			if !cmd.Flags().Changed("insets") {
				insets = cc.Cfg.Viewer.ShowInsets
			}
			return renderGuides(cc.Renderer, measure(selected, hovered, insets))
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&selectID, "select", "", "Selected layer ID")
	cmd.Flags().StringVar(&hoverID, "hover", "", "Hovered layer ID")
	cmd.Flags().BoolVar(&insets, "insets", false, "Also measure insets between nested layers")

	return cmd
}

// measure mirrors the overlay: nothing for the same layer, distances for
// separated layers and, when asked, insets with the larger box as outer.
func measure(selected, hovered *figma.Node, insets bool) []measuredGuide {
	out := []measuredGuide{}
	if selected.ID == hovered.ID || !figma.HasBoundingBox(selected) || !figma.HasBoundingBox(hovered) {
		return out
	}
	a, h := *selected.BoundingBox, *hovered.BoundingBox

	add := func(kind string, guides []guide.Guide) {
		for _, g := range guides {
			out = append(out, measuredGuide{
				Kind:     kind,
				Points:   g.Points,
				Bisector: g.Bisector,
				Length:   g.Length(),
				Label:    g.Label(),
			})
		}
	}
	add(guideDistance, guide.Distances(a, h))
	if insets && a.Intersects(h) {
		outer, inner := a, h
		if inner.Width*inner.Height > outer.Width*outer.Height {
			outer, inner = inner, outer
		}
		add(guideInset, guide.Insets(outer, inner))
	}
	return out
}

func renderGuides(r *output.Renderer, guides []measuredGuide) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(guides)
	}

	r.Header(1, fmt.Sprintf("Guides (%d)", len(guides)))
	if len(guides) == 0 {
		r.Muted("The layers touch or overlap on both axes.")
		return nil
	}
	rows := make([][]string, 0, len(guides))
	for _, g := range guides {
		rows = append(rows, []string{g.Kind, point(g.Points[0]), point(g.Points[1]), g.Label})
	}
	r.Table([]string{"Kind", "From", "To", "Distance"}, rows)
	return nil
}

func point(p figma.Vector) string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}
