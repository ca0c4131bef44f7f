package dashboard

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// EventPublisher defines the minimal interface needed from an external
// notifications client or message bus.
type EventPublisher interface {
	PublishPanelEvent(ctx context.Context, event PanelEvent) error
}

// PublisherHook forwards panel events to an external publisher.
type PublisherHook struct {
	Publisher EventPublisher
}

// PanelUpdated publishes events to the configured publisher.
func (h *PublisherHook) PanelUpdated(ctx context.Context, event PanelEvent) error {
	if h == nil || h.Publisher == nil {
		return nil
	}
	return h.Publisher.PublishPanelEvent(ctx, event)
}

// RefreshHooks runs every hook in order and joins their errors.
type RefreshHooks []RefreshHook

// PanelUpdated implements RefreshHook.
func (hooks RefreshHooks) PanelUpdated(ctx context.Context, event PanelEvent) error {
	var errs error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.PanelUpdated(ctx, event); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// LoggingRefreshHook writes panel events to a zerolog logger.
type LoggingRefreshHook struct {
	Logger zerolog.Logger
}

// PanelUpdated implements RefreshHook.
func (h LoggingRefreshHook) PanelUpdated(_ context.Context, event PanelEvent) error {
	h.Logger.Info().
		Str("area", event.AreaCode).
		Str("panel", event.Panel.ID).
		Str("reason", event.Reason).
		Msg("panel updated")
	return nil
}
