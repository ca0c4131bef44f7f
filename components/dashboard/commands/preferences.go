package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartkit/components/dashboard"
)

// SaveLayoutPreferencesInput captures viewer overrides for layout customization.
type SaveLayoutPreferencesInput struct {
	Viewer       dashboard.ViewerContext `json:"viewer"`
	DarkMode     bool                    `json:"dark_mode"`
	AreaOrder    map[string][]string     `json:"area_order"`
	HiddenPanels []string                `json:"hidden_panel_ids"`
}

type preferenceService interface {
	SavePreferences(ctx context.Context, viewer dashboard.ViewerContext, prefs dashboard.Preferences) error
}

// SaveLayoutPreferencesCommand persists per-user layout overrides.
type SaveLayoutPreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSaveLayoutPreferencesCommand creates the command.
func NewSaveLayoutPreferencesCommand(service preferenceService, telemetry Telemetry) *SaveLayoutPreferencesCommand {
	return &SaveLayoutPreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutPreferencesInput] = (*SaveLayoutPreferencesCommand)(nil)

// Execute stores the provided overrides for the viewer.
func (c *SaveLayoutPreferencesCommand) Execute(ctx context.Context, msg SaveLayoutPreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("preferences command requires viewer user id")
	}
	prefs := dashboard.Preferences{
		DarkMode:     msg.DarkMode,
		AreaOrder:    msg.AreaOrder,
		HiddenPanels: make(map[string]bool, len(msg.HiddenPanels)),
	}
	for _, id := range msg.HiddenPanels {
		prefs.HiddenPanels[id] = true
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, prefs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.save", map[string]any{
		"user_id":    msg.Viewer.UserID,
		"areas":      len(msg.AreaOrder),
		"hidden_cnt": len(msg.HiddenPanels),
	})
	return nil
}
