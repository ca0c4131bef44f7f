package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ettle/strcase"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

type renderCmd struct {
	Manifest string `type:"existingfile" help:"Panel manifest (YAML). Defaults to the built-in layout."`
	Format   string `enum:"json,html" default:"json" help:"Output format."`
	Dark     bool   `help:"Compose with the dark palette."`
	Title    string `default:"Dashboard" help:"Page title for HTML output."`
	Out      string `type:"path" help:"Write to this file instead of stdout."`
	Split    string `type:"path" help:"Write one JSON file per panel into this directory."`
}

// renderedPanel is one entry of the JSON output. Composition failures are
// reported per panel.
type renderedPanel struct {
	ID         string           `json:"id"`
	Definition string           `json:"definition"`
	Area       string           `json:"area"`
	Title      string           `json:"title,omitempty"`
	Option     chart.OptionTree `json:"option,omitempty"`
	Error      string           `json:"error,omitempty"`
}

const renderViewer = "chartctl"

func (cmd *renderCmd) Run(ctx context.Context, logger zerolog.Logger, stdout io.Writer) error {
	stack, err := newStack(ctx, logger, cmd.Manifest, nil)
	if err != nil {
		return err
	}
	defer stack.Close()

	viewer := dashboard.ViewerContext{UserID: renderViewer}
	if cmd.Dark {
		if err := stack.Service.SetDarkMode(ctx, viewer, true); err != nil {
			return err
		}
	}

	if cmd.Format == "html" {
		return cmd.renderHTML(ctx, stack.Service, stack.Engine, viewer, stdout)
	}
	panels, err := cmd.compose(ctx, stack.Service, viewer)
	if err != nil {
		return err
	}
	for _, p := range panels {
		if p.Error != "" {
			logger.Warn().Str("panel", p.ID).Str("definition", p.Definition).Msg(p.Error)
		}
	}
	if cmd.Split != "" {
		return writeSplit(cmd.Split, panels)
	}
	return cmd.write(stdout, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(panels)
	})
}

func (cmd *renderCmd) compose(ctx context.Context, service *dashboard.Service, viewer dashboard.ViewerContext) ([]renderedPanel, error) {
	layout, err := service.ConfigureLayout(ctx, viewer)
	if err != nil {
		return nil, err
	}
	var out []renderedPanel
	for _, area := range service.Areas() {
		for _, panel := range layout.Areas[area] {
			entry := renderedPanel{
				ID:         panel.ID,
				Definition: panel.DefinitionID,
				Area:       area,
			}
			if title, ok := panel.Configuration["title"].(string); ok {
				entry.Title = title
			}
			tree, err := service.ComposePanel(ctx, panel, cmd.Dark)
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Option = tree
			}
			out = append(out, entry)
		}
	}
	return out, nil
}

type pageRenderer interface {
	RenderPage(title string, ids ...string) (string, error)
}

func (cmd *renderCmd) renderHTML(ctx context.Context, service *dashboard.Service, engine pageRenderer, viewer dashboard.ViewerContext, stdout io.Writer) error {
	session, err := service.OpenSession(ctx, viewer)
	if err != nil {
		return err
	}
	defer func() { _ = service.CloseSession(ctx, session.ID()) }()

	var ids []string
	for _, c := range session.Charts() {
		if c.Instance != "" {
			ids = append(ids, c.Instance)
		}
	}
	page, err := engine.RenderPage(cmd.Title, ids...)
	if err != nil {
		return err
	}
	return cmd.write(stdout, func(w io.Writer) error {
		_, err := io.WriteString(w, page)
		return err
	})
}

func (cmd *renderCmd) write(stdout io.Writer, fn func(io.Writer) error) error {
	if cmd.Out == "" {
		return fn(stdout)
	}
	f, err := os.Create(cmd.Out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("chartctl: create %s: %w", cmd.Out, err)
	}
	defer f.Close()
	return fn(f)
}

// writeSplit stores each panel as <kebab-title>.json, falling back to the
// definition code when a panel has no title.
func writeSplit(dir string, panels []renderedPanel) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("chartctl: mkdir %s: %w", dir, err)
	}
	seen := map[string]int{}
	for _, p := range panels {
		name := p.Title
		if name == "" {
			name = p.Definition
		}
		key := strcase.ToKebab(name)
		base := key
		if n := seen[key]; n > 0 {
			base = fmt.Sprintf("%s-%d", key, n+1)
		}
		seen[key]++
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("chartctl: encode %s: %w", p.ID, err)
		}
		if err := os.WriteFile(filepath.Join(dir, base+".json"), data, 0o644); err != nil {
			return fmt.Errorf("chartctl: write %s: %w", base, err)
		}
	}
	return nil
}
