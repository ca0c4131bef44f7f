package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartkit/components/dashboard"
)

type assignService interface {
	AddPanel(ctx context.Context, req dashboard.AddPanelRequest) (dashboard.Panel, error)
}

// AddPanelCommand translates incoming requests into service calls and emits
// telemetry so operators can observe panel assignment activity.
type AddPanelCommand struct {
	service   assignService
	telemetry Telemetry
	created   func(dashboard.Panel)
}

// NewAddPanelCommand creates a command instance. created, when set, receives
// every stored panel.
func NewAddPanelCommand(service assignService, telemetry Telemetry, created func(dashboard.Panel)) *AddPanelCommand {
	return &AddPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry), created: created}
}

var _ gocommand.Commander[dashboard.AddPanelRequest] = (*AddPanelCommand)(nil)

// Execute delegates to the dashboard service.
func (c *AddPanelCommand) Execute(ctx context.Context, msg dashboard.AddPanelRequest) error {
	if c.service == nil {
		return errors.New("add panel command requires service")
	}
	panel, err := c.service.AddPanel(ctx, msg)
	if err != nil {
		return err
	}
	if c.created != nil {
		c.created(panel)
	}
	c.telemetry.Record(ctx, "dashboard.panel.assign", map[string]any{
		"definition_id": msg.DefinitionID,
		"area_code":     msg.AreaCode,
		"panel_id":      panel.ID,
	})
	return nil
}
