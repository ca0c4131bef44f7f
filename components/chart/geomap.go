package chart

// DefaultMapName is the geo name used when props do not name a registered map.
const DefaultMapName = "pacific"

func buildMap(props Props, palette Palette) (OptionTree, error) {
	tree := baseTree(props, palette)
	tree["grid"] = map[string]any{"top": 0, "bottom": 40, "left": 0, "right": 0}

	name := props.MapName
	if name == "" {
		name = DefaultMapName
	}
	areaColor, borderColor := "#D3D3D3", "#FFFFFF"
	if palette.Dark {
		areaColor, borderColor = "#374151", "#475569"
	}

	series := make([]any, 0, len(props.Series))
	for _, s := range props.Series {
		entry := map[string]any{
			"type": "map",
			"map":  name,
			"roam": true,
			"itemStyle": map[string]any{
				"areaColor":   areaColor,
				"borderColor": borderColor,
				"borderWidth": 1,
			},
			"emphasis": map[string]any{
				"itemStyle": map[string]any{"areaColor": palette.Accent},
				"label": map[string]any{
					"show":  true,
					"color": palette.Text,
				},
			},
		}
		applySeriesSpec(entry, s)
		series = append(series, entry)
	}
	tree["series"] = series

	if vm := visualMapOption(props.VisualMap, palette); vm != nil {
		vm["itemStyle"] = map[string]any{"color": palette.Text}
		tree["visualMap"] = vm
	}
	return tree, nil
}
