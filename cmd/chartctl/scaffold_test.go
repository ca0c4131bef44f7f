package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

func TestScaffoldCreatesManifestAndSeed(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "panels", "manifest.yaml")
	stub := filepath.Join(dir, "providers", "revenue_provider.go")

	var out bytes.Buffer
	cmd := scaffoldCmd{
		Code:         "acme.panel.revenue",
		Name:         "Revenue",
		Kind:         "line",
		Category:     "finance",
		ManifestPath: manifest,
		Area:         dashboard.AreaMain,
		ProviderOut:  stub,
	}
	require.NoError(t, cmd.Run(context.Background(), zerolog.Nop(), &out))
	assert.Contains(t, out.String(), "acme.panel.revenue")

	doc, err := dashboard.ReadManifest(manifest)
	require.NoError(t, err)
	require.Len(t, doc.Panels, 1)
	assert.Equal(t, chart.KindLine, doc.Panels[0].Definition.Kind)
	require.Len(t, doc.Seeds, 1)
	assert.Equal(t, "Revenue", doc.Seeds[0].Configuration["title"])
	require.NoError(t, validateManifest(doc))

	source, err := os.ReadFile(stub)
	require.NoError(t, err)
	assert.Contains(t, string(source), "type RevenueProvider struct{}")
	assert.Contains(t, string(source), `"acme.panel.revenue"`)
}

func TestScaffoldRefusesDuplicatesWithoutOverwrite(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "manifest.yaml")
	cmd := scaffoldCmd{Code: "acme.panel.orders", Name: "Orders", Kind: "bar", ManifestPath: manifest}
	require.NoError(t, cmd.Run(context.Background(), zerolog.Nop(), &bytes.Buffer{}))

	err := cmd.Run(context.Background(), zerolog.Nop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	cmd.Overwrite = true
	cmd.Kind = "pie"
	require.NoError(t, cmd.Run(context.Background(), zerolog.Nop(), &bytes.Buffer{}))
	doc, err := dashboard.ReadManifest(manifest)
	require.NoError(t, err)
	require.Len(t, doc.Panels, 1)
	assert.Equal(t, chart.KindPie, doc.Panels[0].Definition.Kind)
}

func TestScaffoldRejectsBadCodes(t *testing.T) {
	cmd := scaffoldCmd{Code: "revenue", Name: "Revenue", Kind: "bar", ManifestPath: filepath.Join(t.TempDir(), "m.yaml")}
	err := cmd.Run(context.Background(), zerolog.Nop(), &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected code without segments to fail")
	}
}
