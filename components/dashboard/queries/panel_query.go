package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

// PanelOptionInput identifies a panel for a viewer.
type PanelOptionInput struct {
	Viewer  dashboard.ViewerContext
	PanelID string
}

// PanelOption is the final option tree of a panel.
type PanelOption struct {
	PanelID string           `json:"panel_id"`
	Option  chart.OptionTree `json:"option"`
}

type optionService interface {
	PanelOption(ctx context.Context, viewer dashboard.ViewerContext, panelID string) (chart.OptionTree, error)
}

// PanelOptionQuery composes the option tree that would be handed to the engine.
type PanelOptionQuery struct {
	service optionService
}

func NewPanelOptionQuery(service optionService) *PanelOptionQuery {
	return &PanelOptionQuery{service: service}
}

var _ gocommand.Querier[PanelOptionInput, PanelOption] = (*PanelOptionQuery)(nil)

func (q *PanelOptionQuery) Query(ctx context.Context, input PanelOptionInput) (PanelOption, error) {
	option, err := q.service.PanelOption(ctx, input.Viewer, input.PanelID)
	if err != nil {
		return PanelOption{}, err
	}
	return PanelOption{PanelID: input.PanelID, Option: option}, nil
}

// DiagnosticsInput identifies a chart inside a session.
type DiagnosticsInput struct {
	SessionID string
	PanelID   string
}

// Diagnostics reports a chart's state and its recent log entries.
type Diagnostics struct {
	Chart   dashboard.ChartState    `json:"chart"`
	Entries []chart.DiagnosticEntry `json:"entries"`
}

type sessionService interface {
	Session(id string) (*dashboard.Session, error)
}

// DiagnosticsQuery reads the diagnostics buffer of a mounted chart.
type DiagnosticsQuery struct {
	service sessionService
}

func NewDiagnosticsQuery(service sessionService) *DiagnosticsQuery {
	return &DiagnosticsQuery{service: service}
}

var _ gocommand.Querier[DiagnosticsInput, Diagnostics] = (*DiagnosticsQuery)(nil)

func (q *DiagnosticsQuery) Query(_ context.Context, input DiagnosticsInput) (Diagnostics, error) {
	session, err := q.service.Session(input.SessionID)
	if err != nil {
		return Diagnostics{}, err
	}
	state, ok := session.Chart(input.PanelID)
	if !ok {
		return Diagnostics{}, fmt.Errorf("%w: %s", dashboard.ErrPanelNotFound, input.PanelID)
	}
	entries, _ := session.Diagnostics(input.PanelID)
	return Diagnostics{Chart: state, Entries: entries}, nil
}
