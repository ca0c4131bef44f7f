package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-chartkit/components/chart"
)

// ResizeChartInput reports a new container size observed by a client.
type ResizeChartInput struct {
	SessionID   string  `json:"session"`
	ContainerID string  `json:"container"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

type resizeService interface {
	ResizeChart(ctx context.Context, sessionID, containerID string, size chart.Size) error
}

// ResizeChartCommand forwards resize reports to the session lifecycles.
type ResizeChartCommand struct {
	service resizeService
}

// NewResizeChartCommand creates the command.
func NewResizeChartCommand(service resizeService) *ResizeChartCommand {
	return &ResizeChartCommand{service: service}
}

var _ gocommand.Commander[ResizeChartInput] = (*ResizeChartCommand)(nil)

// Execute notifies the session. Resizes are frequent, so no telemetry is recorded.
func (c *ResizeChartCommand) Execute(ctx context.Context, msg ResizeChartInput) error {
	if c.service == nil {
		return errors.New("resize command requires service")
	}
	if msg.Width < 0 || msg.Height < 0 {
		return errors.New("resize command requires a non-negative size")
	}
	return c.service.ResizeChart(ctx, msg.SessionID, msg.ContainerID, chart.Size{Width: msg.Width, Height: msg.Height})
}

// CloseSessionInput identifies the session to close.
type CloseSessionInput struct {
	SessionID string `json:"session"`
}

type closeService interface {
	CloseSession(ctx context.Context, id string) error
}

// CloseSessionCommand unmounts every chart of a session.
type CloseSessionCommand struct {
	service   closeService
	telemetry Telemetry
}

// NewCloseSessionCommand creates the command.
func NewCloseSessionCommand(service closeService, telemetry Telemetry) *CloseSessionCommand {
	return &CloseSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseSessionInput] = (*CloseSessionCommand)(nil)

// Execute closes the session.
func (c *CloseSessionCommand) Execute(ctx context.Context, msg CloseSessionInput) error {
	if c.service == nil {
		return errors.New("close command requires service")
	}
	if err := c.service.CloseSession(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.session.closed", map[string]any{"session": msg.SessionID})
	return nil
}
