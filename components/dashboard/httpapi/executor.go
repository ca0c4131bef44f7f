package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-chartkit/components/dashboard"
	"github.com/goliatone/go-chartkit/components/dashboard/commands"
)

var errMissingCommand = errors.New("httpapi: command not configured")

// Executor runs dashboard commands on behalf of a transport.
type Executor interface {
	AddPanel(ctx context.Context, req dashboard.AddPanelRequest) error
	UpdatePanel(ctx context.Context, req dashboard.UpdatePanelRequest) error
	RemovePanel(ctx context.Context, input commands.RemovePanelInput) error
	Reorder(ctx context.Context, input commands.ReorderPanelsInput) error
	Refresh(ctx context.Context, input commands.RefreshPanelInput) error
	Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error
	Theme(ctx context.Context, input commands.SetDarkModeInput) error
	Resize(ctx context.Context, input commands.ResizeChartInput) error
	CloseSession(ctx context.Context, input commands.CloseSessionInput) error
}

// CommandExecutor adapts go-command commanders to Executor. Operations whose
// commander is nil fail with errMissingCommand.
type CommandExecutor struct {
	AddCommander         gocommand.Commander[dashboard.AddPanelRequest]
	UpdateCommander      gocommand.Commander[dashboard.UpdatePanelRequest]
	RemoveCommander      gocommand.Commander[commands.RemovePanelInput]
	ReorderCommander     gocommand.Commander[commands.ReorderPanelsInput]
	RefreshCommander     gocommand.Commander[commands.RefreshPanelInput]
	PreferencesCommander gocommand.Commander[commands.SaveLayoutPreferencesInput]
	ThemeCommander       gocommand.Commander[commands.SetDarkModeInput]
	ResizeCommander      gocommand.Commander[commands.ResizeChartInput]
	CloseCommander       gocommand.Commander[commands.CloseSessionInput]
}

// NewCommandExecutor wires the default commands against a dashboard service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		AddCommander:         commands.NewAddPanelCommand(service, telemetry, nil),
		UpdateCommander:      commands.NewUpdatePanelCommand(service, telemetry),
		RemoveCommander:      commands.NewRemovePanelCommand(service, telemetry),
		ReorderCommander:     commands.NewReorderPanelsCommand(service, telemetry),
		RefreshCommander:     commands.NewRefreshPanelCommand(service, telemetry),
		PreferencesCommander: commands.NewSaveLayoutPreferencesCommand(service, telemetry),
		ThemeCommander:       commands.NewSetDarkModeCommand(service, telemetry),
		ResizeCommander:      commands.NewResizeChartCommand(service),
		CloseCommander:       commands.NewCloseSessionCommand(service, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func run[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errMissingCommand
	}
	return cmd.Execute(ctx, msg)
}

func (e *CommandExecutor) AddPanel(ctx context.Context, req dashboard.AddPanelRequest) error {
	return run(ctx, e.AddCommander, req)
}

func (e *CommandExecutor) UpdatePanel(ctx context.Context, req dashboard.UpdatePanelRequest) error {
	return run(ctx, e.UpdateCommander, req)
}

func (e *CommandExecutor) RemovePanel(ctx context.Context, input commands.RemovePanelInput) error {
	return run(ctx, e.RemoveCommander, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderPanelsInput) error {
	return run(ctx, e.ReorderCommander, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshPanelInput) error {
	return run(ctx, e.RefreshCommander, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error {
	return run(ctx, e.PreferencesCommander, input)
}

func (e *CommandExecutor) Theme(ctx context.Context, input commands.SetDarkModeInput) error {
	return run(ctx, e.ThemeCommander, input)
}

func (e *CommandExecutor) Resize(ctx context.Context, input commands.ResizeChartInput) error {
	return run(ctx, e.ResizeCommander, input)
}

func (e *CommandExecutor) CloseSession(ctx context.Context, input commands.CloseSessionInput) error {
	return run(ctx, e.CloseCommander, input)
}
