package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartkit/components/dashboard"
)

// RefreshPanelInput emits refresh notifications for a panel.
type RefreshPanelInput struct {
	Event dashboard.PanelEvent
}

type refreshNotifier interface {
	NotifyPanelUpdated(ctx context.Context, event dashboard.PanelEvent) error
}

// RefreshPanelCommand triggers refresh hooks without forcing transports.
type RefreshPanelCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshPanelCommand creates the command.
func NewRefreshPanelCommand(service refreshNotifier, telemetry Telemetry) *RefreshPanelCommand {
	return &RefreshPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshPanelInput] = (*RefreshPanelCommand)(nil)

// Execute notifies the dashboard service's refresh hooks.
func (c *RefreshPanelCommand) Execute(ctx context.Context, msg RefreshPanelInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.Event.Reason == "" {
		msg.Event.Reason = "refresh"
	}
	if err := c.service.NotifyPanelUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.panel.refresh", map[string]any{
		"area_code": msg.Event.AreaCode,
		"panel_id":  msg.Event.Panel.ID,
	})
	return nil
}
