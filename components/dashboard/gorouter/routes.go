package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-chartkit/components/chart/echarts"
	"github.com/goliatone/go-chartkit/components/dashboard"
	"github.com/goliatone/go-chartkit/components/dashboard/commands"
	"github.com/goliatone/go-chartkit/components/dashboard/httpapi"
	"github.com/goliatone/go-chartkit/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller, commands, and streams.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	Service        *dashboard.Service
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	Instances      *echarts.Hub
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	Layout      string
	Panels      string
	PanelID     string
	PanelOption string
	Reorder     string
	Refresh     string
	Preferences string
	Theme       string
	Resize      string
	Session     string
	Diagnostics string
	WebSocket   string
	Instances   string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		err := cfg.Controller.RenderTemplate(ctx.Context(), dashboard.PageRequest{
			Viewer:   viewerResolver(ctx),
			Path:     base + routes.HTML,
			Products: httpapi.ProductQuery(func(key string) string { return ctx.Query(key) }),
		}, &buf)
		if err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	if cfg.Service != nil {
		registerQueries(group, cfg.Service, viewerResolver, routes)
	}
	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	if cfg.Instances != nil {
		registerInstanceStream(group, cfg.Instances, routes.Instances)
	}
	return nil
}

func registerQueries[T any](r router.Router[T], service *dashboard.Service, resolver ViewerResolver, routes RouteConfig) {
	layout := queries.NewLayoutQuery(service)
	option := queries.NewPanelOptionQuery(service)
	diagnostics := queries.NewDiagnosticsQuery(service)

	r.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := layout.Query(ctx.Context(), resolver(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	r.Get(routes.PanelOption, router.WrapHandler(func(ctx router.Context) error {
		payload, err := option.Query(ctx.Context(), queries.PanelOptionInput{
			Viewer:  resolver(ctx),
			PanelID: ctx.Param("id"),
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	r.Get(routes.Diagnostics, router.WrapHandler(func(ctx router.Context) error {
		payload, err := diagnostics.Query(ctx.Context(), queries.DiagnosticsInput{
			SessionID: ctx.Param("session"),
			PanelID:   ctx.Param("id"),
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Panels, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.AddPanelRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if payload.UserID == "" {
			payload.UserID = resolver(ctx).UserID
		}
		if err := api.AddPanel(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Post(routes.PanelID, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.UpdatePanelRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		payload.PanelID = ctx.Param("id")
		if err := api.UpdatePanel(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.PanelID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondStatus(ctx, http.StatusBadRequest, errors.New("panel id is required"))
		}
		input := commands.RemovePanelInput{PanelID: id, ActorID: resolver(ctx).UserID}
		if err := api.RemovePanel(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderPanelsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshPanelInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutPreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
		var payload httpapi.ThemeRequest
		if body := ctx.Body(); len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondStatus(ctx, http.StatusBadRequest, err)
			}
		}
		input := commands.SetDarkModeInput{Viewer: resolver(ctx), Dark: payload.Dark}
		if err := api.Theme(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "applied"})
	}))

	r.Post(routes.Resize, router.WrapHandler(func(ctx router.Context) error {
		var payload httpapi.ResizeRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		err := api.Resize(ctx.Context(), commands.ResizeChartInput{
			SessionID:   ctx.Param("session"),
			ContainerID: payload.Container,
			Width:       payload.Width,
			Height:      payload.Height,
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Delete(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		if err := api.CloseSession(ctx.Context(), commands.CloseSessionInput{SessionID: ctx.Param("session")}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "closed"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// registerInstanceStream forwards engine commands to browsers that replay
// them against their echarts instances.
func registerInstanceStream[T any](r router.Router[T], hub *echarts.Hub, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		stream, cancel := hub.Subscribe()
		defer cancel()
		for {
			select {
			case cmd, ok := <-stream:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(cmd); err != nil {
					return err
				}
				hub.Flush()
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Param("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return httpapi.LocaleFromAcceptLanguage(ctx.Header("Accept-Language"))
}

func respondError(ctx router.Context, err error) error {
	return respondStatus(ctx, httpapi.StatusFor(err), err)
}

func respondStatus(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboard/_layout"
	}
	if routes.Panels == "" {
		routes.Panels = "/dashboard/panels"
	}
	if routes.PanelID == "" {
		routes.PanelID = "/dashboard/panels/:id"
	}
	if routes.PanelOption == "" {
		routes.PanelOption = "/dashboard/panels/:id/option"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/dashboard/panels/reorder"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/panels/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/dashboard/preferences"
	}
	if routes.Theme == "" {
		routes.Theme = "/dashboard/theme"
	}
	if routes.Resize == "" {
		routes.Resize = "/dashboard/sessions/:session/resize"
	}
	if routes.Session == "" {
		routes.Session = "/dashboard/sessions/:session"
	}
	if routes.Diagnostics == "" {
		routes.Diagnostics = "/dashboard/sessions/:session/panels/:id/diagnostics"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	if routes.Instances == "" {
		routes.Instances = "/dashboard/instances/ws"
	}
	return routes
}
