package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/figlens/internal/cli/config"
	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/leapstack-labs/figlens/internal/figmaapi"
	"github.com/leapstack-labs/figlens/internal/state"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/viewport"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrNoSource is returned when a command is given no design to load.
var ErrNoSource = errors.New("no design source: pass a design URL, --file and --image, or --snapshot")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// OpenStore opens the snapshot store at the configured path.
func (cc *CommandContext) OpenStore() (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore()
	if err := store.Open(cc.Cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return store, nil
}

// SourceOptions selects the design a command loads.
type SourceOptions struct {
	File     string
	Image    string
	Snapshot string
}

// AddFlags registers the source flags.
func (o *SourceOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.File, "file", "", "Local design document (JSON)")
	fs.StringVar(&o.Image, "image", "", "Local rendered bitmap for --file (png, jpg or svg)")
	fs.StringVar(&o.Snapshot, "snapshot", "", "Snapshot ID from the state database")
}

// Resolve picks the source from a positional design URL or the flags.
// Exactly one of them must be given.
func (o *SourceOptions) Resolve(ctx context.Context, cc *CommandContext, args []string) (viewer.Source, error) {
	given := 0
	for _, set := range []bool{len(args) > 0, o.File != "", o.Snapshot != ""} {
		if set {
			given++
		}
	}
	switch {
	case given == 0:
		return nil, ErrNoSource
	case given > 1:
		return nil, errors.New("pass only one of a design URL, --file or --snapshot")
	}

	switch {
	case len(args) > 0:
		if _, err := figmaapi.ParseLocator(args[0]); err != nil {
			return nil, fmt.Errorf("%q is not a design URL: %w", args[0], err)
		}
		if err := cc.Cfg.RequireToken(); err != nil {
			return nil, err
		}
		apiCfg := cc.Cfg.API.Client()
		apiCfg.Logger = cc.Logger
		return &viewer.RemoteSource{
			Client: figmaapi.New(apiCfg),
			URL:    args[0],
			Format: cc.Cfg.Viewer.ImageFormat,
		}, nil

	case o.File != "":
		if o.Image == "" {
			return nil, errors.New("--file needs --image")
		}
		return &viewer.FileSource{DocumentPath: o.File, ImagePath: o.Image}, nil

	default:
		return o.snapshot(ctx, cc)
	}
}

func (o *SourceOptions) snapshot(ctx context.Context, cc *CommandContext) (viewer.Source, error) {
	store, err := cc.OpenStore()
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.GetSnapshot(ctx, o.Snapshot)
	if err != nil {
		return nil, err
	}
	doc, err := viewer.DecodeDocument(snap.Document)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
	}
	return &viewer.StaticSource{
		Name:     "snapshot:" + snap.ID,
		Document: doc,
		Bitmap:   viewer.Bitmap{Data: snap.Bitmap, Format: snap.Format},
	}, nil
}

// LoadViewer loads src into a viewer configured from the CLI settings and
// fails unless it becomes interactive.
func (cc *CommandContext) LoadViewer(ctx context.Context, src viewer.Source) (*viewer.Viewer, error) {
	vc := cc.Cfg.Viewer.Apply(viewer.Config{Source: src, Logger: cc.Logger})
	v := viewer.New(vc)
	if err := v.Load(ctx); err != nil {
		return nil, err
	}
	if v.State() != viewport.StateInteractive {
		return nil, fmt.Errorf("failed to load %s: viewer is %s", src, v.State())
	}
	return v, nil
}

// openSource resolves and loads the design for a command in one step.
func openSource(cmd *cobra.Command, opts *SourceOptions, args []string) (*CommandContext, *viewer.Viewer, error) {
	cc := NewCommandContext(cmd)
	src, err := opts.Resolve(cmd.Context(), cc, args)
	if err != nil {
		return nil, nil, err
	}
	v, err := cc.LoadViewer(cmd.Context(), src)
	if err != nil {
		return nil, nil, err
	}
	return cc, v, nil
}
