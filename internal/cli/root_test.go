package cli

import (
	"bytes"
	"encoding/json"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/figlens/internal/cli/commands"
	"github.com/leapstack-labs/figlens/internal/cli/config"
	"github.com/leapstack-labs/figlens/internal/cli/testutil"
	"github.com/leapstack-labs/figlens/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	design  testutil.Design
	cfgPath string
	state   string
}

func newEnv(t *testing.T, cfgBody string) env {
	t.Helper()
	d := testutil.SetupTestDesign(t)
	cfgPath := filepath.Join(d.Dir, "figlens.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o600))
	return env{design: d, cfgPath: cfgPath, state: filepath.Join(d.Dir, "state.db")}
}

// run executes the root command with the env's config and state database.
func (e env) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", e.cfgPath, "--state", e.state))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func (e env) source(args ...string) []string {
	return append(args, e.design.Args()...)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := newEnv(t, "").run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "figlens v"+Version)
}

func TestHelpListsCommands(t *testing.T) {
	config.ResetConfig()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, name := range []string{"inspect", "styles", "guides", "render", "export", "snapshot", "ui", "browse", "init"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := newEnv(t, "").run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
}

func TestInspectCommand(t *testing.T) {
	e := newEnv(t, "")

	t.Run("markdown when piped", func(t *testing.T) {
		out, _, err := e.run(t, e.source("inspect")...)
		require.NoError(t, err)
		testutil.AssertNoANSI(t, out)
		testutil.AssertValidMarkdown(t, out)
		assert.Contains(t, out, "# Card (3 layers)")
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "80px × 24px")
		assert.NotContains(t, out, "Badge", "hidden layers are not listed")
	})

	t.Run("json is the loaded payload", func(t *testing.T) {
		out, _, err := e.run(t, e.source("inspect", "-o", "json")...)
		require.NoError(t, err)

		var loaded struct {
			Nodes []struct {
				ID     string `json:"id"`
				Styles []struct {
					Property string `json:"propertyName"`
				} `json:"styles"`
			} `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &loaded))
		require.Len(t, loaded.Nodes, 3)
		assert.Equal(t, "1:1", loaded.Nodes[0].ID)
		assert.Equal(t, "1:2", loaded.Nodes[1].ID)
		require.NotEmpty(t, loaded.Nodes[1].Styles)
		assert.Equal(t, "width", loaded.Nodes[1].Styles[0].Property)
	})
}

func TestStylesCommand(t *testing.T) {
	e := newEnv(t, "")

	out, _, err := e.run(t, e.source("styles", "--node", "1:2")...)
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "```css")
	assert.Contains(t, out, "font-family: Inter;")
	assert.Contains(t, out, "width: 80px;")

	_, _, err = e.run(t, e.source("styles", "--node", "9:9")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node")

	_, _, err = e.run(t, e.source("styles")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--node is required")
}

type guideOut struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

func TestGuidesCommand(t *testing.T) {
	e := newEnv(t, "")

	labels := func(gs []guideOut, kind string) []string {
		var out []string
		for _, g := range gs {
			if g.Kind == kind {
				out = append(out, g.Label)
			}
		}
		return out
	}

	t.Run("diagonal layers", func(t *testing.T) {
		out, _, err := e.run(t, e.source("guides", "--select", "1:2", "--hover", "1:3", "-o", "json")...)
		require.NoError(t, err)
		var gs []guideOut
		require.NoError(t, json.Unmarshal([]byte(out), &gs))
		assert.ElementsMatch(t, []string{"24", "20"}, labels(gs, "distance"))
		assert.Empty(t, labels(gs, "inset"))
	})

	t.Run("nested layers with insets", func(t *testing.T) {
		out, _, err := e.run(t, e.source("guides", "--select", "1:1", "--hover", "1:2", "--insets", "-o", "json")...)
		require.NoError(t, err)
		var gs []guideOut
		require.NoError(t, json.Unmarshal([]byte(out), &gs))
		assert.Empty(t, labels(gs, "distance"))
		assert.ElementsMatch(t, []string{"16", "104", "16", "60"}, labels(gs, "inset"))
	})

	t.Run("same layer", func(t *testing.T) {
		out, _, err := e.run(t, e.source("guides", "--select", "1:2", "--hover", "1:2")...)
		require.NoError(t, err)
		assert.Contains(t, out, "Guides (0)")
	})
}

func TestRenderCommand(t *testing.T) {
	e := newEnv(t, "")
	svgPath := filepath.Join(e.design.Dir, "card.svg")

	_, errOut, err := e.run(t, e.source("render", "--select", "1:2", "--hover", "1:3", "-O", svgPath)...)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Wrote "+svgPath)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(svg), "<?xml") || strings.HasPrefix(strings.TrimSpace(svg), "<svg"))
	assert.Contains(t, svg, "node-select-stroke")
	assert.Contains(t, svg, "node-hover-stroke")
	assert.Contains(t, svg, "distance-guide")
	assert.Contains(t, svg, "data:image/png;base64,")

	out, _, err := e.run(t, e.source("render", "--no-bitmap", "--width", "100", "--zoom", "2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.NotContains(t, out, "data:image/png;base64,")
}

func TestRenderCommand_ZoomDisabled(t *testing.T) {
	e := newEnv(t, "viewer:\n  enable_pan_and_zoom: false\n")
	_, _, err := e.run(t, e.source("render", "--zoom", "2")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enable_pan_and_zoom")
}

func TestExportCommand(t *testing.T) {
	e := newEnv(t, "")
	pngPath := filepath.Join(e.design.Dir, "title.png")

	_, _, err := e.run(t, e.source("export", "--node", "1:2", "-O", pngPath)...)
	require.NoError(t, err)

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 160, cfg.Width, "bitmap is rendered at 2x")
	assert.Equal(t, 48, cfg.Height)

	out, _, err := e.run(t, e.source("export", "--node", "1:3")...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
}

func TestSnapshotCommands(t *testing.T) {
	e := newEnv(t, "")

	out, _, err := e.run(t, e.source("snapshot", "save", "--name", "card", "-o", "json")...)
	require.NoError(t, err)
	var saved state.SnapshotInfo
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "card", saved.Name)
	assert.Equal(t, "1:1", saved.NodeID)
	assert.Equal(t, "png", saved.Format)
	assert.Equal(t, 4, saved.NodeCount)
	assert.InDelta(t, 200, saved.Width, 1e-9)

	out, _, err = e.run(t, "snapshot", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshots (1)")
	assert.Contains(t, out, saved.ID)

	out, _, err = e.run(t, "inspect", "--snapshot", saved.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "# Card (3 layers)")

	_, _, err = e.run(t, "snapshot", "delete", saved.ID)
	require.NoError(t, err)

	_, _, err = e.run(t, "snapshot", "delete", saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no snapshot")

	out, _, err = e.run(t, "snapshot", "list", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestSourceSelection(t *testing.T) {
	e := newEnv(t, "")

	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{name: "none", args: []string{"inspect"}, errSubstr: commands.ErrNoSource.Error()},
		{name: "file without image", args: []string{"inspect", "--file", e.design.Document}, errSubstr: "--file needs --image"},
		{name: "two sources", args: e.source("inspect", "--snapshot", "x"), errSubstr: "only one"},
		{name: "not a URL", args: []string{"inspect", "card"}, errSubstr: "not a design URL"},
		{name: "URL without token", args: []string{"inspect", "https://www.figma.com/file/KEY/Card?node-id=1-2"}, errSubstr: "api.token is required"},
		{name: "unknown snapshot", args: []string{"inspect", "--snapshot", "missing"}, errSubstr: "snapshot not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestInitCommand(t *testing.T) {
	e := newEnv(t, "")
	dir := filepath.Join(e.design.Dir, "project")

	out, _, err := e.run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "figlens initialized!")

	_, _, err = e.run(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = e.run(t, "init", dir, "--force")
	require.NoError(t, err)

	t.Setenv("FIGMA_TOKEN", "from-env")
	config.ResetConfig()
	cfg, err := config.LoadConfig(filepath.Join(dir, "figlens.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, config.Default().API.Timeout, cfg.API.Timeout)
	assert.Equal(t, config.DefaultPort, cfg.UI.Port)
}

func TestGetConfig_Default(t *testing.T) {
	cfg := GetConfig(t.Context())
	assert.Equal(t, config.DefaultStateFile, cfg.StatePath)
}
