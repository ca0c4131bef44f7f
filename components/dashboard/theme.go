package dashboard

import (
	"context"
	"sort"
	"strings"

	"github.com/ettle/strcase"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/chart/echarts"
)

const (
	ThemeVariantLight = "light"
	ThemeVariantDark  = "dark"
)

// ThemeProvider resolves the page theme for a selector. Applications may plug
// their own; PaletteThemeProvider is the default.
type ThemeProvider interface {
	SelectTheme(ctx context.Context, selector ThemeSelector) (*ThemeSelection, error)
}

// ThemeSelector describes the desired theme/variant.
type ThemeSelector struct {
	Name    string
	Variant string
}

// SelectorFor builds the selector of a color mode.
func SelectorFor(dark bool) ThemeSelector {
	if dark {
		return ThemeSelector{Name: "chartkit", Variant: ThemeVariantDark}
	}
	return ThemeSelector{Name: "chartkit", Variant: ThemeVariantLight}
}

// ThemeSelection carries resolved theme tokens and the engine theme name.
type ThemeSelection struct {
	Name       string
	Variant    string
	Tokens     map[string]string
	ChartTheme string
}

// Dark reports whether the dark variant was selected.
func (theme *ThemeSelection) Dark() bool {
	return theme != nil && theme.Variant == ThemeVariantDark
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted by name.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

// PaletteThemeProvider derives page tokens from the chart palette so cards,
// tables and charts share colors.
type PaletteThemeProvider struct{}

// SelectTheme implements ThemeProvider.
func (PaletteThemeProvider) SelectTheme(_ context.Context, selector ThemeSelector) (*ThemeSelection, error) {
	dark := selector.Variant == ThemeVariantDark
	palette := chart.ResolvePalette(dark)
	tokens := map[string]string{
		"Background":        palette.Background,
		"Text":              palette.Text,
		"SubText":           palette.SubText,
		"AxisLine":          palette.AxisLine,
		"SplitLine":         palette.SplitLine,
		"TooltipBackground": palette.TooltipBackground,
		"TooltipBorder":     palette.TooltipBorder,
		"TooltipText":       palette.TooltipText,
		"Accent":            palette.Accent,
		"Positive":          palette.Positive,
		"Negative":          palette.Negative,
	}
	for i, color := range palette.Categories {
		tokens["Category "+string(rune('a'+i))] = color
	}
	selection := &ThemeSelection{
		Name:       selector.Name,
		Variant:    ThemeVariantLight,
		ChartTheme: echarts.ThemeLight,
		Tokens:     make(map[string]string, len(tokens)),
	}
	if dark {
		selection.Variant = ThemeVariantDark
		selection.ChartTheme = echarts.ThemeDark
	}
	for key, value := range tokens {
		selection.Tokens["chart-"+strcase.ToKebab(key)] = value
	}
	return selection, nil
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
