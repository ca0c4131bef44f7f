package dashboard

func applyOrderOverride(panels []Panel, order []string) []Panel {
	if len(order) == 0 {
		return panels
	}
	index := make(map[string]Panel, len(panels))
	for _, p := range panels {
		index[p.ID] = p
	}
	result := make([]Panel, 0, len(panels))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if p, ok := index[id]; ok {
			if _, dup := seen[id]; dup {
				continue
			}
			result = append(result, p)
			seen[id] = struct{}{}
		}
	}
	for _, p := range panels {
		if _, ok := seen[p.ID]; !ok {
			result = append(result, p)
		}
	}
	return result
}

func applyHiddenFilter(panels []Panel, hidden map[string]bool) []Panel {
	if len(hidden) == 0 {
		return panels
	}
	result := make([]Panel, 0, len(panels))
	for _, p := range panels {
		if hidden[p.ID] {
			continue
		}
		result = append(result, p)
	}
	return result
}
