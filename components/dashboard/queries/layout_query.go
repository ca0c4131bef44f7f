package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-chartkit/components/dashboard"
)

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.Layout] = (*LayoutQuery)(nil)

// Query resolves the layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error) {
	return q.service.ConfigureLayout(ctx, viewer)
}

// AreaInput identifies an area request for a viewer.
type AreaInput struct {
	Viewer   dashboard.ViewerContext
	AreaCode string
}

type areaService interface {
	ResolveArea(ctx context.Context, viewer dashboard.ViewerContext, areaCode string) (dashboard.ResolvedArea, error)
}

// AreaQuery fetches the panels of a single area.
type AreaQuery struct {
	service areaService
}

func NewAreaQuery(service areaService) *AreaQuery {
	return &AreaQuery{service: service}
}

var _ gocommand.Querier[AreaInput, dashboard.ResolvedArea] = (*AreaQuery)(nil)

func (q *AreaQuery) Query(ctx context.Context, input AreaInput) (dashboard.ResolvedArea, error) {
	return q.service.ResolveArea(ctx, input.Viewer, input.AreaCode)
}
