package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

// Headers read by ViewerFromRequest. Deployments put an auth proxy or
// middleware in front that sets them.
const (
	HeaderUserID = "X-User-ID"
	HeaderRoles  = "X-User-Roles"
)

// ViewerFunc resolves the viewer of a request.
type ViewerFunc func(*http.Request) dashboard.ViewerContext

// ViewerFromRequest reads the viewer from the identity headers and the
// locale from the "locale" query parameter or Accept-Language.
func ViewerFromRequest(r *http.Request) dashboard.ViewerContext {
	viewer := dashboard.ViewerContext{UserID: strings.TrimSpace(r.Header.Get(HeaderUserID))}
	for _, role := range strings.Split(r.Header.Get(HeaderRoles), ",") {
		if role = strings.TrimSpace(role); role != "" {
			viewer.Roles = append(viewer.Roles, role)
		}
	}
	viewer.Locale = strings.ToLower(strings.TrimSpace(r.URL.Query().Get("locale")))
	if viewer.Locale == "" {
		viewer.Locale = LocaleFromAcceptLanguage(r.Header.Get("Accept-Language"))
	}
	return viewer
}

// LocaleFromAcceptLanguage returns the preferred tag of an Accept-Language
// header, lowercased, or "" when the header is empty or malformed.
func LocaleFromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return strings.ToLower(tags[0].String())
}

// ProductQuery reads the products table state from lookup, typically a
// query-string getter. Filters use "filter_<column>" keys.
func ProductQuery(lookup func(string) string) dashboard.ProductQuery {
	q := dashboard.ProductQuery{
		SortBy: strings.TrimSpace(lookup("sort")),
		Desc:   lookup("desc") == "true" || lookup("desc") == "1",
	}
	q.Page, _ = strconv.Atoi(lookup("page"))
	q.PageSize, _ = strconv.Atoi(lookup("page_size"))
	for _, key := range strings.Split(lookup("hidden"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			q.Hidden = append(q.Hidden, key)
		}
	}
	for _, col := range dashboard.ProductColumns() {
		if value := strings.TrimSpace(lookup("filter_" + col.Key)); value != "" {
			if q.Filters == nil {
				q.Filters = map[string]string{}
			}
			q.Filters[col.Key] = value
		}
	}
	return q
}

// StatusFor maps dashboard and chart errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dashboard.ErrPanelNotFound), errors.Is(err, dashboard.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrInvalidConfiguration), chart.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errMissingCommand):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
