package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
	"github.com/goliatone/go-chartkit/components/dashboard/commands"
	"github.com/goliatone/go-chartkit/components/dashboard/queries"
)

// Queries is the read side used by the JSON endpoints. *dashboard.Service
// satisfies it.
type Queries interface {
	ConfigureLayout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error)
	PanelOption(ctx context.Context, viewer dashboard.ViewerContext, panelID string) (chart.OptionTree, error)
	Session(id string) (*dashboard.Session, error)
}

// PageRenderer renders the dashboard page. *dashboard.Controller satisfies it.
type PageRenderer interface {
	RenderTemplate(ctx context.Context, req dashboard.PageRequest, out io.Writer) error
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Exec    Executor
	Queries Queries
	Pages   PageRenderer
	Viewer  ViewerFunc
	// Instances streams engine instance commands (echarts.Hub).
	Instances http.Handler
	// Events streams panel refresh events (dashboard.BroadcastHook).
	Events      http.Handler
	EventStream http.Handler
	Logger      zerolog.Logger
}

// ResizeRequest is the body of a resize notification.
type ResizeRequest struct {
	Container string  `json:"container"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// ThemeRequest is the body of a theme change; a missing dark flag toggles.
type ThemeRequest struct {
	Dark *bool `json:"dark,omitempty"`
}

func (h *Handlers) viewer(r *http.Request) dashboard.ViewerContext {
	if h.Viewer != nil {
		return h.Viewer(r)
	}
	return ViewerFromRequest(r)
}

// HandlePage renders the dashboard HTML.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	if h.Pages == nil {
		h.fail(w, errMissingCommand)
		return
	}
	var buf bytes.Buffer
	err := h.Pages.RenderTemplate(r.Context(), dashboard.PageRequest{
		Viewer:   h.viewer(r),
		Path:     r.URL.Path,
		Products: ProductQuery(r.URL.Query().Get),
	}, &buf)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// HandleLayout returns the viewer's resolved layout.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := queries.NewLayoutQuery(h.Queries).Query(r.Context(), h.viewer(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// HandlePanelOption returns the final option tree of a panel.
func (h *Handlers) HandlePanelOption(w http.ResponseWriter, r *http.Request, panelID string) {
	result, err := queries.NewPanelOptionQuery(h.Queries).Query(r.Context(), queries.PanelOptionInput{
		Viewer:  h.viewer(r),
		PanelID: panelID,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleDiagnostics returns the state and recent log entries of a session chart.
func (h *Handlers) HandleDiagnostics(w http.ResponseWriter, r *http.Request, sessionID, panelID string) {
	result, err := queries.NewDiagnosticsQuery(h.Queries).Query(r.Context(), queries.DiagnosticsInput{
		SessionID: sessionID,
		PanelID:   panelID,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleAddPanel(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.AddPanelRequest
	if !decode(w, r, &payload) {
		return
	}
	if payload.UserID == "" {
		payload.UserID = h.viewer(r).UserID
	}
	if err := h.Exec.AddPanel(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdatePanel(w http.ResponseWriter, r *http.Request, panelID string) {
	var payload dashboard.UpdatePanelRequest
	if !decode(w, r, &payload) {
		return
	}
	payload.PanelID = panelID
	if err := h.Exec.UpdatePanel(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRemovePanel(w http.ResponseWriter, r *http.Request, panelID string) {
	input := commands.RemovePanelInput{PanelID: panelID, ActorID: h.viewer(r).UserID}
	if err := h.Exec.RemovePanel(r.Context(), input); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorderPanels(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderPanelsInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.Exec.Reorder(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshPanel(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshPanelInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.Exec.Refresh(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveLayoutPreferencesInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	if err := h.Exec.Preferences(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleTheme sets or toggles the viewer's color mode.
func (h *Handlers) HandleTheme(w http.ResponseWriter, r *http.Request) {
	var payload ThemeRequest
	if r.ContentLength != 0 && !decode(w, r, &payload) {
		return
	}
	if err := h.Exec.Theme(r.Context(), commands.SetDarkModeInput{Viewer: h.viewer(r), Dark: payload.Dark}); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleResize forwards a container size reported by the browser.
func (h *Handlers) HandleResize(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload ResizeRequest
	if !decode(w, r, &payload) {
		return
	}
	err := h.Exec.Resize(r.Context(), commands.ResizeChartInput{
		SessionID:   sessionID,
		ContainerID: payload.Container,
		Width:       payload.Width,
		Height:      payload.Height,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.Exec.CloseSession(r.Context(), commands.CloseSessionInput{SessionID: sessionID}); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error().Err(err).Int("status", status).Msg("dashboard request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("httpapi: request body is empty")
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
