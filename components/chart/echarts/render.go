package echarts

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Renderer describes the template renderer contract used for markup.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// NewTemplateRenderer creates a go-template renderer backed by the embedded
// chart templates.
func NewTemplateRenderer() (Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("echarts: embedded templates: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(sub),
		template.WithExtension(".html"),
	)
}

// Render returns the markup that mounts instance id in a browser: the
// container element, map registrations and the current option.
func (e *Engine) Render(id string) (string, error) {
	snap, err := e.Snapshot(id)
	if err != nil {
		return "", err
	}
	option := snap.Option
	if option == "" {
		option = "{}"
	}

	e.mu.RLock()
	var maps []map[string]any
	for _, name := range referencedMaps(snap) {
		if geo, ok := e.maps[name]; ok {
			maps = append(maps, map[string]any{"name": name, "geo": string(geo)})
		}
	}
	e.mu.RUnlock()

	html, err := e.renderer.Render("chart", map[string]any{
		"chart_id":    snap.Init.ChartID,
		"instance_id": snap.ID,
		"width":       snap.Init.Width,
		"height":      snap.Init.Height,
		"theme":       snap.Init.Theme,
		"option":      scriptSafe(option),
		"maps":        maps,
		"version":     snap.Version,
	})
	if err != nil {
		return "", fmt.Errorf("echarts: render instance %s: %w", id, err)
	}
	return html, nil
}

// RenderPage renders a standalone HTML document hosting the given instances
// in order.
func (e *Engine) RenderPage(title string, ids ...string) (string, error) {
	fragments := make([]string, 0, len(ids))
	for _, id := range ids {
		html, err := e.Render(id)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, html)
	}
	html, err := e.renderer.Render("page", map[string]any{
		"title":   title,
		"scripts": e.Scripts(),
		"charts":  fragments,
	})
	if err != nil {
		return "", fmt.Errorf("echarts: render page: %w", err)
	}
	return html, nil
}

func referencedMaps(snap Snapshot) []string {
	raw, ok := snap.Tree["series"]
	if !ok {
		return nil
	}
	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	case map[string]any:
		entries = []any{v}
	}
	seen := map[string]struct{}{}
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["map"].(string); ok && strings.TrimSpace(name) != "" {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
