package dashboard

import (
	"github.com/goliatone/go-chartkit/components/chart"
)

const (
	AreaMain      = "admin.dashboard.main"
	AreaSecondary = "admin.dashboard.secondary"
	AreaFooter    = "admin.dashboard.footer"
)

// Built-in panel definition codes.
const (
	DefinitionBar     = "chartkit.panel.bar"
	DefinitionLine    = "chartkit.panel.line"
	DefinitionPie     = "chartkit.panel.pie"
	DefinitionScatter = "chartkit.panel.scatter"
	DefinitionMap     = "chartkit.panel.map"
	DefinitionCombo   = "chartkit.panel.combo"
)

var defaultAreaDefinitions = []AreaDefinition{
	{Code: AreaMain, Name: "Dashboard (Main)", Description: "Primary chart row"},
	{Code: AreaSecondary, Name: "Dashboard (Secondary)", Description: "Secondary chart row"},
	{Code: AreaFooter, Name: "Dashboard (Footer)", Description: "Wide charts below the fold"},
}

var defaultPanelDefinitions = []PanelDefinition{
	{
		Code:        DefinitionBar,
		Name:        "Bar Chart",
		Description: "Vertical or horizontal bars, optionally stacked.",
		Kind:        chart.KindBar,
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        DefinitionLine,
		Name:        "Line Chart",
		Description: "Smoothed line series over a category axis.",
		Kind:        chart.KindLine,
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        DefinitionPie,
		Name:        "Pie Chart",
		Description: "Named slices of a whole.",
		Kind:        chart.KindPie,
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
	{
		Code:        DefinitionScatter,
		Name:        "Scatter Chart",
		Description: "Point clouds with an optional visual map.",
		Kind:        chart.KindScatter,
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        DefinitionMap,
		Name:        "Map Chart",
		Description: "Regional values over a registered geo map.",
		Kind:        chart.KindMap,
		Category:    "maps",
		Height:      "300px",
		Schema:      chartConfigSchema(false),
	},
	{
		Code:        DefinitionCombo,
		Name:        "Combo Chart",
		Description: "Bar, line and pie series sharing one grid.",
		Kind:        chart.KindCombo,
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
}

func chartSeriesSchema() map[string]any {
	style := map[string]any{"type": "object"}
	return map[string]any{
		"type":     "object",
		"required": []string{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"type": map[string]any{
				"type": "string",
				"enum": []string{"bar", "line", "pie", "scatter", "map"},
			},
			"data": map[string]any{
				"type": "array",
				"items": map[string]any{
					"oneOf": []map[string]any{
						{"type": "number"},
						{"type": "string"},
						{"type": "null"},
						{
							"type":     "object",
							"required": []string{"name", "value"},
							"properties": map[string]any{
								"name":       map[string]any{"type": "string"},
								"item_style": style,
							},
						},
						{
							"type":     "array",
							"minItems": 2,
							"items":    map[string]any{"type": "number"},
						},
					},
				},
			},
			"color":       map[string]any{"type": "string"},
			"colors":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"stack":       map[string]any{"type": "string"},
			"smooth":      map[string]any{"type": "boolean"},
			"symbol":      map[string]any{"type": "string"},
			"symbol_size": map[string]any{"type": "number", "minimum": 0},
			"line_style":  style,
			"item_style":  style,
			"area_style":  style,
			"extra":       style,
		},
	}
}

func chartConfigSchema(includeAxis bool) map[string]any {
	kinds := make([]string, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		kinds = append(kinds, k.String())
	}
	formatter := map[string]any{"type": "string"}
	props := map[string]any{
		"kind":   map[string]any{"type": "string", "enum": kinds},
		"title":  map[string]any{"type": "string"},
		"height": map[string]any{"type": "string", "pattern": `^\d+(\.\d+)?(px|%|vh|vw|rem|em)$`},
		"series": map[string]any{
			"type":  "array",
			"items": chartSeriesSchema(),
		},
		"legend": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"formatters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tooltip":      formatter,
				"x_axis_label": formatter,
				"y_axis_label": formatter,
				"bar_label":    formatter,
				"label":        formatter,
				"legend":       formatter,
			},
			"additionalProperties": false,
		},
		"visual_map": map[string]any{
			"type":     "object",
			"required": []string{"min", "max"},
			"properties": map[string]any{
				"min":        map[string]any{"type": "number"},
				"max":        map[string]any{"type": "number"},
				"colors":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"text":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2, "maxItems": 2},
				"dimension":  map[string]any{"type": "integer", "minimum": 0},
				"calculable": map[string]any{"type": "boolean"},
				"orient":     map[string]any{"type": "string", "enum": []string{"horizontal", "vertical"}},
			},
		},
		"map_name": map[string]any{"type": "string"},
		"override": map[string]any{"type": "object"},
	}
	if includeAxis {
		axis := map[string]any{
			"type":  "array",
			"items": map[string]any{"type": []string{"string", "number"}},
		}
		props["x_axis"] = axis
		props["y_axis"] = axis
		props["x_axis_name"] = map[string]any{"type": "string"}
		props["y_axis_name"] = map[string]any{"type": "string"}
		props["horizontal"] = map[string]any{"type": "boolean"}
		props["x_axis_dates"] = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
		props["date_format"] = map[string]any{"type": "string", "enum": DateFormats()}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

var (
	revenueDays = []string{
		"2025-06-01T00:00:00", "2025-06-02T00:00:00", "2025-06-03T00:00:00", "2025-06-04T00:00:00",
		"2025-06-05T00:00:00", "2025-06-06T00:00:00", "2025-06-07T00:00:00",
	}
	targetMonths = []string{
		"2024-01-01T00:00:00", "2024-02-01T00:00:00", "2024-03-01T00:00:00",
		"2024-04-01T00:00:00", "2024-05-01T00:00:00", "2024-06-01T00:00:00",
	}
	volumeMonths = []string{
		"2024-01-01T00:00:00", "2025-02-01T00:00:00", "2025-03-01T00:00:00",
		"2025-04-01T00:00:00", "2025-05-01T00:00:00", "2025-06-01T00:00:00",
	}
)

func numbers(values ...float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func named(pairs ...any) []any {
	out := make([]any, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, map[string]any{"name": pairs[i], "value": pairs[i+1]})
	}
	return out
}

func defaultSeedConfigs() []AddPanelRequest {
	hidden := map[string]any{"show": false}
	return []AddPanelRequest{
		{
			DefinitionID: DefinitionBar,
			AreaCode:     AreaMain,
			Configuration: map[string]any{
				"title":        "Total Revenue",
				"x_axis_dates": revenueDays,
				"date_format":  DateFormatWeekdayShort,
				"series":       []any{
					map[string]any{"name": "Online", "data": numbers(4200, 3800, 4500, 5200, 6100, 7800, 6500), "extra": map[string]any{"barWidth": "25%"}},
					map[string]any{"name": "Offline", "data": numbers(2800, 3100, 2900, 3500, 4200, 5100, 4800), "extra": map[string]any{"barWidth": "25%"}},
				},
				"formatters": map[string]any{"y_axis_label": "₹{value}"},
				"override":   map[string]any{
					"grid":   map[string]any{"top": 40, "bottom": 0, "left": 0, "right": 0},
					"legend": map[string]any{"show": true, "orient": "horizontal", "top": 10, "itemWidth": 12, "itemHeight": 12, "icon": "rect"},
					"xAxis":  map[string]any{"axisTick": hidden},
				},
			},
		},
		{
			DefinitionID: DefinitionLine,
			AreaCode:     AreaMain,
			Configuration: map[string]any{
				"title":  "Customer Satisfaction",
				"x_axis": []any{"1", "2", "3", "4", "5", "6", "7"},
				"series": []any{
					map[string]any{
						"name":       "Last Week",
						"data":       numbers(2.1, 1.9, 2.4, 2.5, 2.9, 2.6, 3.5),
						"smooth":     true,
						"line_style": map[string]any{"width": 3, "color": "#0066FF"},
						"item_style": map[string]any{"color": "#0066FF"},
						"area_style": map[string]any{"opacity": 0.1, "color": "#0066FF"},
					},
					map[string]any{
						"name":       "Current Week",
						"data":       numbers(3.8, 4.2, 4.3, 4.0, 4.6, 4.7, 5.0),
						"smooth":     true,
						"line_style": map[string]any{"width": 3, "color": "#00C896"},
						"item_style": map[string]any{"color": "#00C896"},
						"area_style": map[string]any{"opacity": 0.1, "color": "#00C896"},
					},
				},
				"override": map[string]any{
					"xAxis":  map[string]any{"show": true, "axisLabel": hidden, "axisTick": hidden},
					"yAxis":  map[string]any{"show": false, "max": 6},
					"grid":   map[string]any{"top": 0, "bottom": 40, "left": 0, "right": 0},
					"legend": map[string]any{"show": true, "orient": "horizontal", "bottom": 0},
				},
			},
		},
		{
			DefinitionID: DefinitionBar,
			AreaCode:     AreaMain,
			Configuration: map[string]any{
				"title":        "Target vs Reality",
				"x_axis_dates": targetMonths,
				"date_format":  DateFormatMonthShort,
				"series":       []any{
					map[string]any{"name": "Reality", "data": numbers(4500, 4800, 4200, 5600, 4600, 5400), "color": "#4AB58B", "extra": map[string]any{"barWidth": "25%"}},
					map[string]any{"name": "Target", "data": numbers(5000, 5000, 5000, 5000, 5000, 5000), "color": "#FFCF00", "extra": map[string]any{"barWidth": "25%"}},
				},
				"override": map[string]any{
					"grid":  map[string]any{"top": 0, "bottom": 0, "left": 0, "right": 0},
					"xAxis": map[string]any{"axisTick": hidden},
					"yAxis": map[string]any{"show": false, "axisLabel": hidden, "axisLine": hidden, "axisTick": hidden},
				},
			},
		},
		{
			DefinitionID: DefinitionPie,
			AreaCode:     AreaSecondary,
			Configuration: map[string]any{
				"title":  "Visitor Insights",
				"series": []any{
					map[string]any{
						"name":  "Visitors",
						"data":  named("Direct", 635, "Search Engine", 998, "Email", 620, "Ads", 380),
						"extra": map[string]any{
							"radius": []any{"40%", "70%"},
							"center": []any{"50%", "45%"},
						},
					},
				},
				"formatters": map[string]any{
					"label": "{b}",
				},
				"override": map[string]any{
					"legend": map[string]any{"orient": "horizontal", "bottom": 5, "itemWidth": 12, "itemHeight": 12, "icon": "circle"},
				},
			},
		},
		{
			DefinitionID: DefinitionMap,
			AreaCode:     AreaSecondary,
			Configuration: map[string]any{
				"title":    "Sales Mapping by Country",
				"map_name": "pacific",
				"series":   []any{
					map[string]any{
						"name":  "Sales",
						"data":  named("India", 9500, "China", 2000, "Thailand", 7000, "Indonesia", 5000, "Iran", 4700, "Saudi Arabia", 8000, "Georgia", 4000),
						"extra": map[string]any{
							"roam":   true,
							"center": []any{80, 20},
							"zoom":   5,
						},
					},
				},
				"visual_map": map[string]any{
					"min":        0,
					"max":        9500,
					"colors":     []any{"#D3D3D3", "#EF4444", "#F59E0B", "#3B82F6", "#10B981"},
					"text":       []any{"High", "Low"},
					"calculable": true,
					"orient":     "horizontal",
				},
				"formatters": map[string]any{
					"tooltip": "(params) => `${params.name}: ${params.value || 0} sales`",
				},
			},
		},
		{
			DefinitionID: DefinitionBar,
			AreaCode:     AreaSecondary,
			Configuration: map[string]any{
				"title":        "Volume vs Service Level",
				"x_axis_dates": volumeMonths,
				"date_format":  DateFormatMonthShort,
				"series":       []any{
					map[string]any{"name": "Volume", "data": numbers(2100, 1800, 2400, 3000, 2700, 3200), "stack": "stack1", "item_style": map[string]any{"borderRadius": []any{8, 8, 8, 8}}, "extra": map[string]any{"barWidth": "30%"}},
					map[string]any{"name": "Service", "data": numbers(5470, 5200, 5800, 6200, 5900, 6500), "stack": "stack1", "item_style": map[string]any{"borderRadius": []any{8, 8, 8, 8}}, "extra": map[string]any{"barWidth": "30%"}},
				},
				"override": map[string]any{
					"xAxis":  map[string]any{"axisTick": hidden},
					"yAxis":  map[string]any{"show": false, "axisLabel": hidden, "axisTick": hidden},
					"grid":   map[string]any{"top": 0, "bottom": 40, "left": 0, "right": 0},
					"legend": map[string]any{"show": true, "icon": "circle", "bottom": 10},
				},
			},
		},
		{
			DefinitionID: DefinitionCombo,
			AreaCode:     AreaFooter,
			Configuration: map[string]any{
				"title":        "Revenue and Orders",
				"x_axis_dates": revenueDays,
				"date_format":  DateFormatWeekdayShort,
				"x_axis_name":  "Day",
				"y_axis_name":  "Revenue",
				"series":       []any{
					map[string]any{"name": "Revenue", "type": "bar", "data": numbers(7000, 6900, 7400, 8700, 10300, 12900, 11300)},
					map[string]any{"name": "Orders", "type": "line", "data": numbers(420, 390, 450, 510, 600, 770, 640), "smooth": true},
				},
			},
		},
	}
}

// DefaultAreaDefinitions returns copies of built-in area definitions.
func DefaultAreaDefinitions() []AreaDefinition {
	out := make([]AreaDefinition, len(defaultAreaDefinitions))
	copy(out, defaultAreaDefinitions)
	return out
}

// DefaultPanelDefinitions returns copies of built-in panel definitions.
func DefaultPanelDefinitions() []PanelDefinition {
	out := make([]PanelDefinition, len(defaultPanelDefinitions))
	copy(out, defaultPanelDefinitions)
	return out
}

// DefaultSeedPanels returns the starter dashboard panels.
func DefaultSeedPanels() []AddPanelRequest {
	return defaultSeedConfigs()
}
