package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ReorderPanelsInput contains the reorder payload.
type ReorderPanelsInput struct {
	AreaCode string   `json:"area_code"`
	PanelIDs []string `json:"panel_ids"`
}

type reorderService interface {
	ReorderPanels(ctx context.Context, areaCode string, panelIDs []string) error
}

// ReorderPanelsCommand wraps Service.ReorderPanels.
type ReorderPanelsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderPanelsCommand builds the command.
func NewReorderPanelsCommand(service reorderService, telemetry Telemetry) *ReorderPanelsCommand {
	return &ReorderPanelsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderPanelsInput] = (*ReorderPanelsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderPanelsCommand) Execute(ctx context.Context, msg ReorderPanelsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if err := c.service.ReorderPanels(ctx, msg.AreaCode, msg.PanelIDs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.panel.reorder", map[string]any{
		"area_code": msg.AreaCode,
		"count":     len(msg.PanelIDs),
	})
	return nil
}
