package dashboard

import (
	"github.com/goliatone/go-chartkit/pkg/format"
)

// SummaryCard is one of the figure cards shown above the dashboard charts.
type SummaryCard struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Trend       string `json:"trend"`
	Icon        string `json:"icon"`

	IconColor     string `json:"icon_color"`
	IconColorDark string `json:"icon_color_dark"`
	CardColor     string `json:"card_color"`
	CardColorDark string `json:"card_color_dark"`
	TrendColor    string `json:"trend_color"`
	TrendDark     string `json:"trend_color_dark"`
}

// CardColors is the resolved color set of a card for one mode.
type CardColors struct {
	Icon  string `json:"icon"`
	Card  string `json:"card"`
	Trend string `json:"trend"`
}

// Colors picks the light or dark color set.
func (c SummaryCard) Colors(dark bool) CardColors {
	if dark {
		return CardColors{Icon: c.IconColorDark, Card: c.CardColorDark, Trend: c.TrendDark}
	}
	return CardColors{Icon: c.IconColor, Card: c.CardColor, Trend: c.TrendColor}
}

const (
	cardSurfaceDark = "oklch(0.269 0 0)"
	trendLight      = "#5D5FEF"
	trendDark       = "#4ADE80"
)

// DefaultSummaryCards returns the sales, orders, products and users cards.
func DefaultSummaryCards() []SummaryCard {
	return []SummaryCard{
		{
			Title:         "Today's Sales",
			Subtitle:      "Sales Summary",
			Value:         format.Amount(34723),
			Description:   "Total Sales",
			Trend:         "+8% from yesterday",
			Icon:          "chart-column",
			IconColor:     "#FA5A7D",
			IconColorDark: "#E11D48",
			CardColor:     "#FFE2E5",
			CardColorDark: cardSurfaceDark,
			TrendColor:    trendLight,
			TrendDark:     trendDark,
		},
		{
			Title:         "Total Order",
			Subtitle:      "Order Summary",
			Value:         format.Number(3096),
			Description:   "Total Order",
			Trend:         "+5% from yesterday",
			Icon:          "file",
			IconColor:     "#FF947A",
			IconColorDark: "#F97316",
			CardColor:     "#FFF4DE",
			CardColorDark: cardSurfaceDark,
			TrendColor:    trendLight,
			TrendDark:     trendDark,
		},
		{
			Title:         "Product Sold",
			Subtitle:      "Product Summary",
			Value:         format.Number(247),
			Description:   "Product Sold",
			Trend:         "+12% from yesterday",
			Icon:          "tag",
			IconColor:     "#3CD856",
			IconColorDark: "#22C55E",
			CardColor:     "#DCFCE7",
			CardColorDark: cardSurfaceDark,
			TrendColor:    trendLight,
			TrendDark:     trendDark,
		},
		{
			Title:         "New Users",
			Subtitle:      "User Summary",
			Value:         format.Number(85),
			Description:   "New Users",
			Trend:         "+2% from yesterday",
			Icon:          "user-plus",
			IconColor:     "#BF83FF",
			IconColorDark: "#A855F7",
			CardColor:     "#F3E8FF",
			CardColorDark: cardSurfaceDark,
			TrendColor:    trendLight,
			TrendDark:     trendDark,
		},
	}
}
