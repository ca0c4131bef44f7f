package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartkit/components/dashboard"
)

// SetDarkModeInput selects the viewer's color mode. A nil Dark flips the
// stored mode.
type SetDarkModeInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Dark   *bool                   `json:"dark,omitempty"`
}

type themeService interface {
	SetDarkMode(ctx context.Context, viewer dashboard.ViewerContext, dark bool) error
	ToggleDarkMode(ctx context.Context, viewer dashboard.ViewerContext) (bool, error)
}

// SetDarkModeCommand switches the color mode of every open chart of a viewer.
type SetDarkModeCommand struct {
	service   themeService
	telemetry Telemetry
}

// NewSetDarkModeCommand creates the command.
func NewSetDarkModeCommand(service themeService, telemetry Telemetry) *SetDarkModeCommand {
	return &SetDarkModeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetDarkModeInput] = (*SetDarkModeCommand)(nil)

// Execute applies or toggles the mode.
func (c *SetDarkModeCommand) Execute(ctx context.Context, msg SetDarkModeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	var (
		dark bool
		err  error
	)
	if msg.Dark == nil {
		dark, err = c.service.ToggleDarkMode(ctx, msg.Viewer)
	} else {
		dark = *msg.Dark
		err = c.service.SetDarkMode(ctx, msg.Viewer, dark)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.theme.set", map[string]any{
		"user_id": msg.Viewer.UserID,
		"dark":    dark,
	})
	return nil
}
