package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/figlens/internal/overlay"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/viewport"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Source   SourceOptions
	Select   string
	Hover    string
	Width    float64
	Zoom     float64
	Out      string
	NoBitmap bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [design URL]",
		Short: "Render the inspection overlay as SVG",
		Long: `Render the overlay for a design as a standalone SVG: the bitmap, outlines for
the selected and hovered layers, the selection's size label and the
distance guides between them.`,
		Example: `  # Overlay for a selection and hover, written to a file
  figlens render --file card.json --image card.png --select 1:2 --hover 1:3 -O card.svg

  # Fit to 600px and zoom in
  figlens render --snapshot 6f1c... --width 600 --zoom 2 > card.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}
	opts.Source.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.Select, "select", "", "Selected layer ID")
	cmd.Flags().StringVar(&opts.Hover, "hover", "", "Hovered layer ID")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "Container width to fit the design to, in pixels")
	cmd.Flags().Float64Var(&opts.Zoom, "zoom", 1, "Zoom factor applied after fitting")
	cmd.Flags().StringVarP(&opts.Out, "out", "O", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.NoBitmap, "no-bitmap", false, "Leave the rendered bitmap out of the SVG")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions, args []string) error {
	cc, v, err := openSource(cmd, &opts.Source, args)
	if err != nil {
		return err
	}

	if opts.Select != "" {
		if err := v.Select(opts.Select); err != nil {
			return fmt.Errorf("%s: %w", opts.Select, err)
		}
	}
	if opts.Hover != "" {
		if err := v.Hover(opts.Hover); err != nil {
			return fmt.Errorf("%s: %w", opts.Hover, err)
		}
	}

	vp, err := renderViewport(v, opts, cc.Cfg.Viewer.EnablePanAndZoom)
	if err != nil {
		return err
	}
	sc, err := v.Scene(vp)
	if err != nil {
		return err
	}
	if !opts.NoBitmap {
		root := v.Root().BoundingBox
		_, bm := v.Bitmap()
		sc.Background = &overlay.Background{Href: bm.DataURL(), Width: root.Width, Height: root.Height}
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.Out, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := overlay.Render(w, sc); err != nil {
		return fmt.Errorf("failed to render overlay: %w", err)
	}
	if opts.Out != "" {
		cc.Logger.Debug("overlay written", "path", opts.Out)
		_, _ = fmt.Fprintf(cc.Renderer.ErrWriter(), "Wrote %s\n", opts.Out)
	}
	return nil
}

// renderViewport gives the command its own viewport so --width and --zoom
// leave the viewer's untouched.
func renderViewport(v *viewer.Viewer, opts *RenderOptions, panAndZoom bool) (*viewport.Viewport, error) {
	img, _ := v.Bitmap()
	vp := viewport.New(*v.Root().BoundingBox, float64(img.Bounds().Dx()))
	if opts.Width > 0 {
		if err := vp.Fit(opts.Width); err != nil {
			return nil, err
		}
	}
	if opts.Zoom != 1 {
		if !panAndZoom {
			return nil, fmt.Errorf("--zoom needs viewer.enable_pan_and_zoom")
		}
		if err := vp.Zoom(opts.Zoom); err != nil {
			return nil, err
		}
	}
	return vp, nil
}
