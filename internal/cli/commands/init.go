package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/figlens/internal/cli/config"
	"github.com/leapstack-labs/figlens/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// starterFile is the layout of the file init writes. Durations are kept as
// strings so the file reads "30s" rather than nanoseconds.
type starterFile struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		Token      string `yaml:"token"`
		AuthHeader string `yaml:"auth_header"`
		Timeout    string `yaml:"timeout"`
	} `yaml:"api"`
	Viewer    config.ViewerConfig `yaml:"viewer"`
	UI        config.UIConfig     `yaml:"ui"`
	StatePath string              `yaml:"state_path"`
	Output    string              `yaml:"output"`
}

// starterConfig is written by init. The token is read from the environment.
func starterConfig() starterFile {
	d := config.Default()
	var f starterFile
	f.API.BaseURL = d.API.BaseURL
	f.API.Token = "${FIGMA_TOKEN}"
	f.API.AuthHeader = d.API.AuthHeader
	f.API.Timeout = d.API.Timeout.String()
	f.Viewer = d.Viewer
	f.UI = d.UI
	f.StatePath = d.StatePath
	f.Output = d.OutputFormat
	return f
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter figlens.yaml",
		Long: `Write a figlens.yaml configuration file with the default settings.

The API token is referenced as ${FIGMA_TOKEN} and expanded from the
environment at load time, so the file can be committed.`,
		Example: `  # Initialize in current directory
  figlens init

  # Initialize in a new directory
  figlens init my-designs

  # Force overwrite existing config
  figlens init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cc := NewCommandContext(cmd)
			return runInit(cc.Renderer, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "figlens.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("figlens.yaml already exists. Use --force to overwrite")
	}

	data, err := yaml.Marshal(starterConfig())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success("figlens initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Export FIGMA_TOKEN with a personal access token")
	r.Println("  2. Run 'figlens inspect <design URL>' to list layers")
	r.Println("  3. Run 'figlens ui <design URL>' to open the inspector")

	return nil
}
