package chart

// Palette carries the theme-dependent colors shared by every chart kind.
type Palette struct {
	Dark bool `json:"dark"`

	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Positive  string `json:"positive"`
	Negative  string `json:"negative"`
	Neutral   string `json:"neutral"`
	Highlight string `json:"highlight"`

	Categories []string `json:"categories"`

	Background string `json:"background"`
	Text       string `json:"text"`
	SubText    string `json:"sub_text"`
	AxisLine   string `json:"axis_line"`
	SplitLine  string `json:"split_line"`

	TooltipBackground string `json:"tooltip_background"`
	TooltipBorder     string `json:"tooltip_border"`
	TooltipText       string `json:"tooltip_text"`

	PieBorder string `json:"pie_border"`
	Hover     string `json:"hover"`
	Focus     string `json:"focus"`
	Shadow    string `json:"shadow"`
}

var categoryColors = [...]string{
	"#0066FF",
	"#00A693",
	"#FF8A00",
	"#00C896",
	"#8B5CF6",
	"#FF3366",
	"#F59E0B",
	"#00B8D4",
	"#E91E63",
	"#8BC34A",
}

// ResolvePalette returns the palette for the requested mode. The background is
// transparent in both modes so the chart inherits the page surface.
func ResolvePalette(dark bool) Palette {
	p := Palette{
		Dark:       dark,
		Categories: append([]string(nil), categoryColors[:]...),
		Background: "transparent",
	}
	if dark {
		p.Primary = "#4A9EFF"
		p.Secondary = "#4ECDC4"
		p.Accent = "#FFD93D"
		p.Positive = "#4ADE80"
		p.Negative = "#FF6B6B"
		p.Neutral = "#94A3B8"
		p.Highlight = "#A855F7"
		p.Text = "#E5E7EB"
		p.SubText = "#CBD5E1"
		p.AxisLine = "#475569"
		p.SplitLine = "#374151"
		p.TooltipBackground = "rgba(15, 23, 42, 0.95)"
		p.TooltipText = "#F8FAFC"
		p.TooltipBorder = "#475569"
		p.PieBorder = "#1E293B"
		p.Hover = "rgba(74, 158, 255, 0.1)"
		p.Focus = "#4A9EFF"
		p.Shadow = "rgba(0, 0, 0, 0.3)"
		return p
	}
	p.Primary = "#0066FF"
	p.Secondary = "#00A693"
	p.Accent = "#FF8A00"
	p.Positive = "#00C896"
	p.Negative = "#FF3366"
	p.Neutral = "#64748B"
	p.Highlight = "#8B5CF6"
	p.Text = "#0F172A"
	p.SubText = "#475569"
	p.AxisLine = "#CBD5E1"
	p.SplitLine = "#F1F5F9"
	p.TooltipBackground = "rgba(248, 250, 252, 0.95)"
	p.TooltipText = "#0F172A"
	p.TooltipBorder = "#CBD5E1"
	p.PieBorder = "#FFFFFF"
	p.Hover = "rgba(0, 102, 255, 0.1)"
	p.Focus = "#0066FF"
	p.Shadow = "rgba(15, 23, 42, 0.1)"
	return p
}

// CategoryColor returns the category color assigned to the series at index.
func (p Palette) CategoryColor(index int) string {
	if len(p.Categories) == 0 {
		return ""
	}
	if index < 0 {
		index = -index
	}
	return p.Categories[index%len(p.Categories)]
}

// CategoryList returns the category colors as a generic sequence for option trees.
func (p Palette) CategoryList() []any {
	out := make([]any, len(p.Categories))
	for i, c := range p.Categories {
		out[i] = c
	}
	return out
}
