package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"github.com/leapstack-labs/figlens/internal/ui"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/spf13/cobra"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Source    SourceOptions
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui [design URL]",
		Short: "Start the web inspector",
		Long: `Start a local web server with the interactive inspector.

The UI provides:
- Layer list with hover and selection
- Overlay with outlines, size labels and distance guides
- Derived CSS for the selected and hovered layers
- PNG export of the selected layer
- Live reload when a local --file or --image changes`,
		Example: `  # Inspect a remote design
  figlens ui "https://www.figma.com/file/KEY/Card?node-id=1-2"

  # Start on custom port
  figlens ui --file card.json --image card.png --port 3000

  # Start without auto-opening browser
  figlens ui --snapshot 6f1c... --no-browser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts, args)
		},
	}

	opts.Source.AddFlags(cmd.Flags())
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload when local design files change")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Serve assets from disk and enable live reload")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions, args []string) error {
	cc := NewCommandContext(cmd)
	uiCfg := cc.Cfg.UI

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	autoOpen := uiCfg.AutoOpen && !opts.NoBrowser
	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	src, err := opts.Source.Resolve(cmd.Context(), cc, args)
	if err != nil {
		return err
	}

	server := ui.NewServer(ui.Config{
		Viewer:        cc.Cfg.Viewer.Apply(viewer.Config{Source: src, Logger: cc.Logger}),
		Port:          port,
		Watch:         watch,
		Dev:           opts.Dev,
		SessionSecret: sessionSecret(uiCfg.SessionSecret),
		Logger:        cc.Logger,
	})

	if autoOpen {
		go openBrowser(server.URL())
	}

	r := cc.Renderer
	r.Printf("Inspecting %s on %s\n", src, server.URL())
	r.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("ui server: %w", err)
	}
	return nil
}

// sessionSecret returns the configured secret, or a random one that lasts
// for this process.
func sessionSecret(configured string) string {
	if configured != "" {
		return configured
	}
	return uuid.NewString()
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
