package httpapi

import "net/http"

// Mux mounts every handler under base (for example "/admin").
func (h *Handlers) Mux(base string) *http.ServeMux {
	mux := http.NewServeMux()
	p := func(path string) string { return base + path }

	if h.Pages != nil {
		mux.HandleFunc("GET "+p("/dashboard"), h.HandlePage)
	}
	if h.Queries != nil {
		mux.HandleFunc("GET "+p("/dashboard/_layout"), h.HandleLayout)
		mux.HandleFunc("GET "+p("/dashboard/panels/{id}/option"), func(w http.ResponseWriter, r *http.Request) {
			h.HandlePanelOption(w, r, r.PathValue("id"))
		})
		mux.HandleFunc("GET "+p("/dashboard/sessions/{session}/panels/{id}/diagnostics"), func(w http.ResponseWriter, r *http.Request) {
			h.HandleDiagnostics(w, r, r.PathValue("session"), r.PathValue("id"))
		})
	}
	if h.Exec != nil {
		mux.HandleFunc("POST "+p("/dashboard/panels"), h.HandleAddPanel)
		mux.HandleFunc("PUT "+p("/dashboard/panels/{id}"), func(w http.ResponseWriter, r *http.Request) {
			h.HandleUpdatePanel(w, r, r.PathValue("id"))
		})
		mux.HandleFunc("DELETE "+p("/dashboard/panels/{id}"), func(w http.ResponseWriter, r *http.Request) {
			h.HandleRemovePanel(w, r, r.PathValue("id"))
		})
		mux.HandleFunc("POST "+p("/dashboard/panels/reorder"), h.HandleReorderPanels)
		mux.HandleFunc("POST "+p("/dashboard/panels/refresh"), h.HandleRefreshPanel)
		mux.HandleFunc("POST "+p("/dashboard/preferences"), h.HandlePreferences)
		mux.HandleFunc("POST "+p("/dashboard/theme"), h.HandleTheme)
		mux.HandleFunc("POST "+p("/dashboard/sessions/{session}/resize"), func(w http.ResponseWriter, r *http.Request) {
			h.HandleResize(w, r, r.PathValue("session"))
		})
		mux.HandleFunc("DELETE "+p("/dashboard/sessions/{session}"), func(w http.ResponseWriter, r *http.Request) {
			h.HandleCloseSession(w, r, r.PathValue("session"))
		})
	}
	if h.Instances != nil {
		mux.Handle("GET "+p("/dashboard/instances/ws"), h.Instances)
	}
	if h.Events != nil {
		mux.Handle("GET "+p("/dashboard/ws"), h.Events)
	}
	if h.EventStream != nil {
		mux.Handle("GET "+p("/dashboard/events"), h.EventStream)
	}
	return mux
}
