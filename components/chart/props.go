package chart

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const DefaultHeight = "320px"

// Formatter is the source of a JavaScript formatter callback, or an ECharts
// string template such as "{b}: {c}". Function sources are shipped as raw JS.
type Formatter string

// Formatters groups the optional caller-supplied formatter callbacks.
type Formatters struct {
	Tooltip    Formatter `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	XAxisLabel Formatter `json:"x_axis_label,omitempty" yaml:"x_axis_label,omitempty"`
	YAxisLabel Formatter `json:"y_axis_label,omitempty" yaml:"y_axis_label,omitempty"`
	BarLabel   Formatter `json:"bar_label,omitempty" yaml:"bar_label,omitempty"`
	Label      Formatter `json:"label,omitempty" yaml:"label,omitempty"`
	Legend     Formatter `json:"legend,omitempty" yaml:"legend,omitempty"`
}

// DataPoint is a named value, used by pie slices, map regions and labelled bars.
type DataPoint struct {
	Name      string         `json:"name" yaml:"name"`
	Value     any            `json:"value" yaml:"value"`
	ItemStyle map[string]any `json:"itemStyle,omitempty" yaml:"item_style,omitempty"`
}

// SeriesSpec is one data series supplied by the caller. It is read-only to
// the builders.
type SeriesSpec struct {
	Name       string         `json:"name" yaml:"name"`
	Kind       Kind           `json:"type,omitempty" yaml:"type,omitempty"`
	Data       []any          `json:"data" yaml:"data"`
	Color      string         `json:"color,omitempty" yaml:"color,omitempty"`
	Colors     []string       `json:"colors,omitempty" yaml:"colors,omitempty"`
	Stack      string         `json:"stack,omitempty" yaml:"stack,omitempty"`
	Smooth     *bool          `json:"smooth,omitempty" yaml:"smooth,omitempty"`
	Symbol     string         `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	SymbolSize float64        `json:"symbolSize,omitempty" yaml:"symbol_size,omitempty" validate:"gte=0"`
	LineStyle  map[string]any `json:"lineStyle,omitempty" yaml:"line_style,omitempty"`
	ItemStyle  map[string]any `json:"itemStyle,omitempty" yaml:"item_style,omitempty"`
	AreaStyle  map[string]any `json:"areaStyle,omitempty" yaml:"area_style,omitempty"`
	Extra      map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// VisualMap configures a continuous color-by-value legend.
type VisualMap struct {
	Min        float64  `json:"min" yaml:"min"`
	Max        float64  `json:"max" yaml:"max" validate:"gtefield=Min"`
	Colors     []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Text       []string `json:"text,omitempty" yaml:"text,omitempty" validate:"omitempty,len=2"`
	Dimension  *int     `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Calculable bool     `json:"calculable,omitempty" yaml:"calculable,omitempty"`
	Orient     string   `json:"orient,omitempty" yaml:"orient,omitempty" validate:"omitempty,oneof=horizontal vertical"`
	Left       string   `json:"left,omitempty" yaml:"left,omitempty"`
	Right      string   `json:"right,omitempty" yaml:"right,omitempty"`
	Top        string   `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom     string   `json:"bottom,omitempty" yaml:"bottom,omitempty"`
}

// Props is the complete input of one chart render cycle.
type Props struct {
	Kind       Kind         `json:"kind" yaml:"kind" validate:"required"`
	Title      string       `json:"title,omitempty" yaml:"title,omitempty"`
	Series     []SeriesSpec `json:"series" yaml:"series" validate:"dive"`
	XAxisData  []any        `json:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	YAxisData  []any        `json:"y_axis,omitempty" yaml:"y_axis,omitempty"`
	XAxisName  string       `json:"x_axis_name,omitempty" yaml:"x_axis_name,omitempty"`
	YAxisName  string       `json:"y_axis_name,omitempty" yaml:"y_axis_name,omitempty"`
	LegendData []string     `json:"legend,omitempty" yaml:"legend,omitempty"`
	Horizontal bool         `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	DarkMode   bool         `json:"dark_mode,omitempty" yaml:"dark_mode,omitempty"`
	Height     string       `json:"height,omitempty" yaml:"height,omitempty" validate:"omitempty,css_size"`
	Formatters Formatters   `json:"formatters,omitempty" yaml:"formatters,omitempty"`
	VisualMap  *VisualMap   `json:"visual_map,omitempty" yaml:"visual_map,omitempty"`
	MapName    string       `json:"map_name,omitempty" yaml:"map_name,omitempty"`
	Override   OptionTree   `json:"override,omitempty" yaml:"override,omitempty"`
}

// HasData reports whether at least one series carries data points.
func (p Props) HasData() bool {
	for _, s := range p.Series {
		if len(s.Data) > 0 {
			return true
		}
	}
	return false
}

// ResolvedHeight returns the container height, defaulting to DefaultHeight.
func (p Props) ResolvedHeight() string {
	if h := strings.TrimSpace(p.Height); h != "" {
		return h
	}
	return DefaultHeight
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	cssSizePattern = regexp.MustCompile(`^\d+(\.\d+)?(px|%|vh|vw|rem|em)$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("css_size", func(fl validator.FieldLevel) bool {
			return cssSizePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// ValidateProps checks the structural constraints of props. Whether the kind
// has a builder, and kind-specific content checks such as combo data
// validation, are decided by the pipeline.
func ValidateProps(props Props) error {
	if err := validatorInstance().Struct(props); err != nil {
		return fmt.Errorf("chart: invalid props: %w", err)
	}
	return nil
}
