package commands

import (
	"github.com/leapstack-labs/figlens/internal/tui"
	"github.com/spf13/cobra"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	opts := &SourceOptions{}

	cmd := &cobra.Command{
		Use:   "browse [design URL]",
		Short: "Browse layers and styles in the terminal",
		Long: `Open a terminal browser over a design. Moving through the layer list hovers
a layer, enter selects it, esc clears the selection and q quits.`,
		Example: `  figlens browse --file card.json --image card.png`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, v, err := openSource(cmd, opts, args)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), v, nil, nil)
		},
	}
	opts.AddFlags(cmd.Flags())

	return cmd
}
