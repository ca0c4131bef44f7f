package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartkit/components/dashboard"
)

type updateService interface {
	UpdatePanel(ctx context.Context, req dashboard.UpdatePanelRequest) (dashboard.Panel, error)
}

// UpdatePanelCommand wraps Service.UpdatePanel. A chart that fails to
// re-render in an open session is reported as an error after the
// configuration was stored.
type UpdatePanelCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdatePanelCommand creates the command.
func NewUpdatePanelCommand(service updateService, telemetry Telemetry) *UpdatePanelCommand {
	return &UpdatePanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[dashboard.UpdatePanelRequest] = (*UpdatePanelCommand)(nil)

// Execute replaces the panel configuration.
func (c *UpdatePanelCommand) Execute(ctx context.Context, msg dashboard.UpdatePanelRequest) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.PanelID == "" {
		return errors.New("update command requires panel id")
	}
	_, err := c.service.UpdatePanel(ctx, msg)
	c.telemetry.Record(ctx, "dashboard.panel.update", map[string]any{
		"panel_id": msg.PanelID,
		"failed":   err != nil,
	})
	return err
}
