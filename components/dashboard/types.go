package dashboard

import (
	"context"

	"github.com/goliatone/go-chartkit/components/chart"
)

// PanelStore persists areas, panel definitions and panel instances.
// Implementations ensure thread safety and idempotency.
type PanelStore interface {
	EnsureArea(ctx context.Context, def AreaDefinition) (bool, error)
	EnsureDefinition(ctx context.Context, def PanelDefinition) (bool, error)
	CreatePanel(ctx context.Context, input CreatePanelInput) (Panel, error)
	UpdatePanel(ctx context.Context, input UpdatePanelInput) (Panel, error)
	DeletePanel(ctx context.Context, panelID string) error
	AssignPanel(ctx context.Context, input AssignPanelInput) error
	ReorderArea(ctx context.Context, input ReorderAreaInput) error
	ResolveArea(ctx context.Context, input ResolveAreaInput) (ResolvedArea, error)
	Panel(ctx context.Context, panelID string) (Panel, error)
}

// Authorizer determines if a viewer can see a panel.
type Authorizer interface {
	CanViewPanel(ctx context.Context, viewer ViewerContext, panel Panel) bool
}

// PreferenceStore returns dashboard preferences per viewer.
type PreferenceStore interface {
	Preferences(ctx context.Context, viewer ViewerContext) (Preferences, error)
	SavePreferences(ctx context.Context, viewer ViewerContext, prefs Preferences) error
}

// ProviderRegistry stores panel definitions and the providers that turn
// panel configuration into chart props.
type ProviderRegistry interface {
	RegisterDefinition(def PanelDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (PanelDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []PanelDefinition
}

// RefreshHook notifies transports (SSE/WebSocket) about panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// AreaDefinition models a dashboard area (charts, summary, sidebar).
type AreaDefinition struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PanelDefinition describes a chart panel type and the schema its
// configuration must satisfy.
type PanelDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        chart.Kind     `json:"kind" yaml:"kind"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Height      string         `json:"height,omitempty" yaml:"height,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Panel is a configured chart placed in an area.
type Panel struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition_id"`
	AreaCode      string         `json:"area_code"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Roles         []string       `json:"roles,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// CreatePanelInput configures new panels.
type CreatePanelInput struct {
	DefinitionID  string
	Configuration map[string]any
	Roles         []string
	Metadata      map[string]any
}

// UpdatePanelInput replaces a panel configuration.
type UpdatePanelInput struct {
	PanelID       string
	Configuration map[string]any
}

// AssignPanelInput places a panel in an area.
type AssignPanelInput struct {
	AreaCode string
	PanelID  string
	Position *int
}

// ReorderAreaInput is a new panel ordering for an area.
type ReorderAreaInput struct {
	AreaCode string
	PanelIDs []string
}

// ResolveAreaInput requests the panels of an area for an audience.
type ResolveAreaInput struct {
	AreaCode string
	Audience []string
}

// ResolvedArea holds the panels returned by the store.
type ResolvedArea struct {
	AreaCode string  `json:"area_code"`
	Panels   []Panel `json:"panels"`
}

// Preferences captures per-viewer adjustments.
type Preferences struct {
	DarkMode     bool                `json:"dark_mode"`
	AreaOrder    map[string][]string `json:"area_order,omitempty"`
	HiddenPanels map[string]bool     `json:"hidden_panels,omitempty"`
}

// ViewerContext captures the active user information needed to render dashboards.
type ViewerContext struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	Locale string   `json:"locale,omitempty"`
}

// Layout describes the resolved panels per dashboard area.
type Layout struct {
	DarkMode bool               `json:"dark_mode"`
	Areas    map[string][]Panel `json:"areas"`
}

// PanelEvent describes changes that transports might care about.
type PanelEvent struct {
	AreaCode string `json:"area_code,omitempty"`
	Panel    Panel  `json:"panel"`
	Reason   string `json:"reason"`
}
