package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ettle/strcase"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

type scaffoldCmd struct {
	Code         string   `required:"" help:"Fully-qualified panel code (e.g. acme.panel.revenue)."`
	Name         string   `required:"" help:"Display name for the panel."`
	Kind         string   `required:"" enum:"bar,line,pie,scatter,map,combo" help:"Chart kind."`
	Description  string   `help:"One-line description used in manifests."`
	Category     string   `default:"custom" help:"Panel category (analytics, ops, etc.)."`
	Height       string   `help:"Default chart height (e.g. 320px)."`
	ManifestPath string   `name:"manifest" required:"" type:"path" help:"Panel manifest YAML to create or update."`
	SchemaPath   string   `name:"schema" type:"existingfile" help:"JSON schema file for the panel configuration."`
	Area         string   `help:"Also seed the panel into this area."`
	Title        string   `help:"Title of the seeded panel (defaults to --name)."`
	Tag          []string `help:"Tags to include in the manifest (use multiple --tag flags)."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	DocsURL      string   `name:"docs-url" help:"Link to provider documentation."`
	ProviderOut  string   `name:"provider-out" type:"path" help:"Write a provider stub to this file."`
	Overwrite    bool     `help:"Replace an existing manifest entry or provider stub."`
}

func (cmd *scaffoldCmd) Run(_ context.Context, logger zerolog.Logger, stdout io.Writer) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("chartctl: panel code %s must contain at least one '.' segment", cmd.Code)
	}
	kind, err := chart.ParseKind(cmd.Kind)
	if err != nil {
		return fmt.Errorf("chartctl: %w", err)
	}
	doc, err := loadOrInitManifest(cmd.ManifestPath)
	if err != nil {
		return err
	}
	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	entry := dashboard.ManifestPanel{
		Definition: dashboard.PanelDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Kind:        kind,
			Category:    cmd.Category,
			Height:      cmd.Height,
			Schema:      schema,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}
	if cmd.DocsURL != "" {
		entry.Provider = dashboard.ManifestProvider{
			Name:    cmd.Name + " Provider",
			Summary: cmd.Description,
			DocsURL: cmd.DocsURL,
		}
	}
	if err := upsertPanel(doc, entry, cmd.Overwrite); err != nil {
		return err
	}
	if cmd.Area != "" {
		title := cmd.Title
		if title == "" {
			title = cmd.Name
		}
		doc.Seeds = append(doc.Seeds, dashboard.ManifestSeed{
			Definition:    cmd.Code,
			Area:          cmd.Area,
			Configuration: map[string]any{"title": title},
		})
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(cmd.ManifestPath, doc); err != nil {
		return err
	}
	logger.Debug().Str("code", cmd.Code).Str("manifest", cmd.ManifestPath).Msg("panel scaffolded")

	if cmd.ProviderOut == "" {
		fmt.Fprintf(stdout, "✓ Added %s to %s\n", cmd.Code, cmd.ManifestPath)
		return nil
	}
	if err := writeProviderStub(cmd.ProviderOut, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "✓ Added %s to %s and generated %s\n", cmd.Code, cmd.ManifestPath, cmd.ProviderOut)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("chartctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("chartctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func upsertPanel(doc *dashboard.PanelManifestDocument, entry dashboard.ManifestPanel, overwrite bool) error {
	replaced := false
	for idx := range doc.Panels {
		if doc.Panels[idx].Definition.Code != entry.Definition.Code {
			continue
		}
		if !overwrite {
			return fmt.Errorf("chartctl: manifest already defines panel %s (use --overwrite to replace)", entry.Definition.Code)
		}
		doc.Panels[idx] = entry
		replaced = true
		break
	}
	if !replaced {
		doc.Panels = append(doc.Panels, entry)
	}
	sort.Slice(doc.Panels, func(i, j int) bool {
		return doc.Panels[i].Definition.Code < doc.Panels[j].Definition.Code
	})
	return nil
}

func loadOrInitManifest(path string) (*dashboard.PanelManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.PanelManifestDocument{Version: dashboard.ManifestVersion, Source: path}, nil
		}
		return nil, fmt.Errorf("chartctl: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifest(path string, doc *dashboard.PanelManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("chartctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("chartctl: write manifest: %w", err)
	}
	return encoder.Close()
}

func writeProviderStub(path, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("chartctl: provider stub %s already exists (use --overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartctl: mkdir provider dir: %w", err)
	}
	typeName := providerTypeName(code)
	content := fmt.Sprintf(`package providers

import (
	"context"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

// %[1]s builds chart props for %[2]s panels.
type %[1]s struct{}

// New%[1]s returns a provider for registry.RegisterProvider(%[2]q, ...).
func New%[1]s() dashboard.Provider {
	return &%[1]s{}
}

// Props starts from the panel configuration; add series before returning.
func (p *%[1]s) Props(ctx context.Context, meta dashboard.PanelContext) (chart.Props, error) {
	return dashboard.NewConfigProvider().Props(ctx, meta)
}
`, typeName, code)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("chartctl: write provider stub: %w", err)
	}
	return nil
}

func providerTypeName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug) + "Provider"
}
