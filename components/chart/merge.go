package chart

// combinedSections accept a sequence override on top of a single default
// mapping; each override element is layered over that mapping.
var combinedSections = map[string]struct{}{
	"legend": {},
	"grid":   {},
	"xAxis":  {},
	"yAxis":  {},
}

// Merge deep-merges override onto defaults and returns a new tree. Leaves in
// override win, mappings recurse, sequences replace the default wholesale.
// Neither input is mutated.
func Merge(defaults, override OptionTree) OptionTree {
	out := defaults.Clone()
	if len(override) == 0 {
		return out
	}
	if out == nil {
		out = OptionTree{}
	}
	for key, value := range override {
		if _, ok := combinedSections[key]; ok {
			out[key] = mergeSection(out[key], value)
			continue
		}
		out[key] = mergeValue(out[key], value)
	}
	return out
}

func mergeValue(base, override any) any {
	overMap, ok := asMapping(override)
	if !ok {
		return cloneValue(override)
	}
	baseMap, ok := asMapping(base)
	if !ok {
		return cloneMap(overMap)
	}
	merged := cloneMap(baseMap)
	for key, value := range overMap {
		merged[key] = mergeValue(merged[key], value)
	}
	return merged
}

func mergeSection(base, override any) any {
	items, ok := asSequence(override)
	if !ok {
		return mergeValue(base, override)
	}
	template, ok := asMapping(base)
	if !ok {
		return cloneValue(override)
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = mergeValue(template, item)
	}
	return out
}
