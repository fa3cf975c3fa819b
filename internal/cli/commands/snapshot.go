package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/leapstack-labs/figlens/internal/state"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/spf13/cobra"
)

// NewSnapshotCommand creates the snapshot command group.
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save designs locally for offline inspection",
		Long: `Snapshots store a design document and its rendered bitmap in the state
database. Any command that loads a design accepts --snapshot <id>.`,
	}
	cmd.AddCommand(newSnapshotSaveCommand(), newSnapshotListCommand(), newSnapshotDeleteCommand())
	return cmd
}

func newSnapshotSaveCommand() *cobra.Command {
	opts := &SourceOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "save [design URL]",
		Short: "Fetch a design and store it",
		Example: `  figlens snapshot save "https://www.figma.com/file/KEY/Card?node-id=1-2" --name card
  figlens snapshot save --file card.json --image card.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, v, err := openSource(cmd, opts, args)
			if err != nil {
				return err
			}
			root := v.Root()
			doc, err := json.Marshal(root)
			if err != nil {
				return fmt.Errorf("failed to encode document: %w", err)
			}
			_, bm := v.Bitmap()
			if name == "" {
				name = root.Name
			}

			snap := &state.Snapshot{
				SnapshotInfo: state.SnapshotInfo{
					Name:      name,
					Source:    sourceName(opts, args),
					NodeID:    root.ID,
					Format:    bm.Format,
					Width:     root.BoundingBox.Width,
					Height:    root.BoundingBox.Height,
					NodeCount: figma.Count(root),
				},
				Document: doc,
				Bitmap:   bm.Data,
			}

			store, err := cc.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.SaveSnapshot(cmd.Context(), snap); err != nil {
				return err
			}

			r := cc.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(snap.SnapshotInfo)
			}
			r.Success(fmt.Sprintf("Saved %s as %s", name, r.ID(snap.ID)))
			return nil
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&name, "name", "", "Snapshot name (default: the root layer's name)")

	return cmd
}

// sourceName is what a snapshot records as its origin.
func sourceName(opts *SourceOptions, args []string) string {
	switch {
	case len(args) > 0:
		return args[0]
	case opts.File != "":
		return opts.File
	default:
		return "snapshot:" + opts.Snapshot
	}
}

func newSnapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored snapshots",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			store, err := cc.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snaps, err := store.ListSnapshots(cmd.Context())
			if err != nil {
				return err
			}
			return renderSnapshots(cc.Renderer, snaps)
		},
	}
}

func renderSnapshots(r *output.Renderer, snaps []state.SnapshotInfo) error {
	if r.EffectiveMode() == output.ModeJSON {
		if snaps == nil {
			snaps = []state.SnapshotInfo{}
		}
		return r.JSON(snaps)
	}

	r.Header(1, fmt.Sprintf("Snapshots (%d)", len(snaps)))
	if len(snaps) == 0 {
		r.Muted("No snapshots yet. Run 'figlens snapshot save' to add one.")
		return nil
	}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			s.NodeID,
			fmt.Sprintf("%s × %s", strconv.FormatFloat(s.Width, 'f', -1, 64), strconv.FormatFloat(s.Height, 'f', -1, 64)),
			strconv.Itoa(s.NodeCount),
			s.CreatedAt.Local().Format(time.DateTime),
		})
	}
	r.Table([]string{"ID", "Name", "Node", "Size", "Layers", "Created"}, rows)
	return nil
}

func newSnapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			store, err := cc.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, state.ErrSnapshotNotFound) {
					return fmt.Errorf("no snapshot %s", args[0])
				}
				return err
			}
			cc.Renderer.Success(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	}
}
