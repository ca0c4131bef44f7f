package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/dashboard"
)

const validManifest = `
version: "1"
panels:
  - definition:
      code: ops.panel.queue
      name: Queue depth
      kind: bar
seeds:
  - definition: ops.panel.queue
    area: admin.dashboard.main
    configuration:
      title: Queue depth
      x_axis: [mon, tue]
      series:
        - name: jobs
          data: [3, 5]
  - definition: chartkit.panel.line
    area: admin.dashboard.footer
    configuration:
      title: Latency
`

func writeManifestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderJSONDefaults(t *testing.T) {
	var out bytes.Buffer
	cmd := &renderCmd{Format: "json"}
	require.NoError(t, cmd.Run(context.Background(), zerolog.Nop(), &out))

	var panels []renderedPanel
	require.NoError(t, json.Unmarshal(out.Bytes(), &panels))
	assert.Len(t, panels, len(dashboard.DefaultSeedPanels()))
	for _, p := range panels {
		assert.NotEmpty(t, p.ID)
		if p.Error == "" {
			assert.NotEmpty(t, p.Option, p.Definition)
		}
	}
}

func TestRenderManifestSplit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cmd := &renderCmd{Format: "json", Manifest: writeManifestFile(t, validManifest), Split: dir}
	require.NoError(t, cmd.Run(context.Background(), zerolog.Nop(), &bytes.Buffer{}))

	data, err := os.ReadFile(filepath.Join(dir, "queue-depth.json"))
	require.NoError(t, err)
	var panel renderedPanel
	require.NoError(t, json.Unmarshal(data, &panel))
	assert.Equal(t, "ops.panel.queue", panel.Definition)
	assert.Equal(t, dashboard.AreaMain, panel.Area)

	_, err = os.Stat(filepath.Join(dir, "latency.json"))
	assert.NoError(t, err)
}

func TestRenderHTMLToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "page.html")
	cmd := &renderCmd{Format: "html", Title: "Ops board", Out: out, Dark: true}
	require.NoError(t, cmd.Run(context.Background(), zerolog.Nop(), &bytes.Buffer{}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ops board")
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	path := writeManifestFile(t, validManifest)
	require.NoError(t, (&validateCmd{Manifest: path}).Run(context.Background(), zerolog.Nop(), &out))
	assert.Contains(t, out.String(), "2 seeds")

	bad := strings.Replace(validManifest, "definition: chartkit.panel.line", "definition: ops.panel.missing", 1)
	err := (&validateCmd{Manifest: writeManifestFile(t, bad)}).Run(context.Background(), zerolog.Nop(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ops.panel.missing")
}

func TestValidateReportsComboIssues(t *testing.T) {
	doc, err := dashboard.DecodeManifest(strings.NewReader(`
version: "1"
seeds:
  - definition: chartkit.panel.combo
    area: admin.dashboard.main
    configuration:
      title: Mixed
`))
	require.NoError(t, err)
	assert.Error(t, validateManifest(doc))
}

func TestCLIParses(t *testing.T) {
	var root cli
	parser, err := kong.New(&root, kong.Name("chartctl"))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"serve", "--addr", ":9000", "--map", "pacific=http://example.test/geo.json", "--net-http",
		"--series-url", "http://bi.test", "--series", "chartkit.panel.bar", "--series", "chartkit.panel.line"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", root.Serve.Addr)
	assert.Equal(t, "http://example.test/geo.json", root.Serve.Map["pacific"])
	assert.True(t, root.Serve.NetHTTP)
	assert.Equal(t, "/admin", root.Serve.Base)
	assert.Equal(t, "http://bi.test", root.Serve.SeriesURL)
	assert.Equal(t, []string{"chartkit.panel.bar", "chartkit.panel.line"}, root.Serve.Series)

	_, err = parser.Parse([]string{"render", "--format", "svg"})
	assert.Error(t, err)
}
