package dashboard

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
)

// DefaultDashboardTemplate is the page template name.
const DefaultDashboardTemplate = "dashboard"

// diagnosticsShown is the number of log entries rendered next to a failed chart.
const diagnosticsShown = 5

// PageService is the subset of Service the controller needs.
type PageService interface {
	OpenSession(ctx context.Context, viewer ViewerContext) (*Session, error)
	Areas() []string
}

// ChartRenderer turns a mounted engine instance into markup. The echarts
// engine satisfies it.
type ChartRenderer interface {
	Render(instanceID string) (string, error)
	Scripts() []string
}

// ControllerOptions configures the page controller.
type ControllerOptions struct {
	Service  PageService
	Renderer Renderer
	Charts   ChartRenderer
	Theme    ThemeProvider
	Template string
	Title    string
	Cards    []SummaryCard
	Products *ProductTable
	Menu     []MenuGroup
	Logger   *zerolog.Logger
}

// Controller orchestrates HTTP handlers/routes for the admin dashboard.
type Controller struct {
	opts   ControllerOptions
	logger zerolog.Logger
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = DefaultDashboardTemplate
	}
	if opts.Title == "" {
		opts.Title = "Dashboard"
	}
	if opts.Theme == nil {
		opts.Theme = PaletteThemeProvider{}
	}
	if opts.Cards == nil {
		opts.Cards = DefaultSummaryCards()
	}
	if opts.Products == nil {
		opts.Products = NewProductTable(DefaultProducts())
	}
	if opts.Menu == nil {
		opts.Menu = DefaultMenu()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Controller{opts: opts, logger: logger}
}

// PageRequest carries the viewer plus page-level query state.
type PageRequest struct {
	Viewer   ViewerContext
	Path     string
	Products ProductQuery
}

// ChartView is a chart as rendered on the page: engine markup on success,
// the error and recent diagnostics otherwise.
type ChartView struct {
	ChartState
	Markup      string                  `json:"markup,omitempty"`
	Diagnostics []chart.DiagnosticEntry `json:"diagnostics,omitempty"`
}

// Failed reports whether the chart shows the error affordance.
func (v ChartView) Failed() bool {
	return v.Markup == ""
}

// AreaView groups the charts of one area.
type AreaView struct {
	Code   string      `json:"code"`
	Charts []ChartView `json:"charts"`
}

// Page is the data behind the dashboard template.
type Page struct {
	Title     string        `json:"title"`
	SessionID string        `json:"session_id"`
	DarkMode  bool          `json:"dark_mode"`
	Theme     string        `json:"theme"`
	ThemeCSS  string        `json:"theme_css,omitempty"`
	Scripts   []string      `json:"scripts,omitempty"`
	Areas     []AreaView    `json:"areas"`
	Cards     []CardView    `json:"cards"`
	Products  ProductPage   `json:"products"`
	Menu      []MenuGroup   `json:"menu"`
	Active    MenuSelection `json:"active"`
}

// CardView is a summary card with colors resolved for the page mode.
type CardView struct {
	Card   SummaryCard `json:"card"`
	Colors CardColors  `json:"colors"`
}

// Page opens a chart session for the viewer and assembles the page data.
func (c *Controller) Page(ctx context.Context, req PageRequest) (Page, error) {
	if c.opts.Service == nil {
		return Page{}, errors.New("dashboard: controller requires a service")
	}
	session, err := c.opts.Service.OpenSession(ctx, req.Viewer)
	if err != nil {
		return Page{}, err
	}
	products, err := c.opts.Products.Query(req.Products)
	if err != nil {
		return Page{}, err
	}
	dark := session.DarkMode()
	theme, err := c.opts.Theme.SelectTheme(ctx, SelectorFor(dark))
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Title:     c.opts.Title,
		SessionID: session.ID(),
		DarkMode:  dark,
		Theme:     theme.Variant,
		ThemeCSS:  theme.CSSVariablesInline(),
		Products:  products,
		Menu:      c.opts.Menu,
		Active:    ActiveMenu(c.opts.Menu, req.Path),
	}
	if c.opts.Charts != nil {
		page.Scripts = c.opts.Charts.Scripts()
	}
	for _, card := range c.opts.Cards {
		page.Cards = append(page.Cards, CardView{Card: card, Colors: card.Colors(dark)})
	}

	byArea := map[string][]ChartView{}
	for _, state := range session.Charts() {
		byArea[state.AreaCode] = append(byArea[state.AreaCode], c.chartView(session, state))
	}
	for _, area := range c.opts.Service.Areas() {
		page.Areas = append(page.Areas, AreaView{Code: area, Charts: byArea[area]})
	}
	return page, nil
}

func (c *Controller) chartView(session *Session, state ChartState) ChartView {
	view := ChartView{ChartState: state}
	if state.Status == chart.StatusSuccess && state.Instance != "" && c.opts.Charts != nil {
		markup, err := c.opts.Charts.Render(state.Instance)
		if err == nil {
			view.Markup = markup
			return view
		}
		c.logger.Warn().Err(err).Str("panel", state.PanelID).Msg("chart markup failed")
		if view.Error == "" {
			view.Error = err.Error()
		}
	}
	if entries, ok := session.Diagnostics(state.PanelID); ok {
		if len(entries) > diagnosticsShown {
			entries = entries[len(entries)-diagnosticsShown:]
		}
		view.Diagnostics = entries
	}
	return view
}

// RenderTemplate renders the dashboard page into out.
func (c *Controller) RenderTemplate(ctx context.Context, req PageRequest, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: controller requires a renderer")
	}
	page, err := c.Page(ctx, req)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, map[string]any{
		"page":      page,
		"title":     page.Title,
		"session":   page.SessionID,
		"theme":     page.Theme,
		"dark":      page.DarkMode,
		"theme_css": page.ThemeCSS,
		"scripts":   page.Scripts,
		"areas":     page.Areas,
		"cards":     page.Cards,
		"products":  page.Products,
		"menu":      page.Menu,
		"active":    page.Active,
	}, out)
	return err
}
