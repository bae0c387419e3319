package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/application/listutil"
	"sportlink/internal/application/projections"
)

// handleDashboard handles GET /
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		Token:    viewer.Token,
		Username: viewer.Username,
		Now:      timeNow(),
	}, projections.GetDashboardDeps{Backend: backend})
	if err != nil {
		if errors.Is(err, projections.ErrDashboardUnavailable) {
			renderError(w, r, http.StatusBadGateway, "ErrorBackendDown")
			return
		}
		handleBackendError(w, r, err)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"UpcomingPreview": result.UpcomingPreview,
		"HostedUpcoming":  result.HostedUpcoming,
		"UnreadCount":     result.UnreadCount,
		"Profile":         result.Profile,
		"HasProfile":      result.HasProfile,
		"Degraded":        result.Degraded,
	})
}

// handleCatalog handles GET /events with optional filters and pagination.
func handleCatalog(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	q := r.URL.Query()
	criteria := listutil.ParseFilterCriteria(q)
	pageParams := listutil.ParsePageParams(q)

	result, err := projections.QueryGetCatalog(r.Context(), projections.GetCatalogQuery{
		Token:    viewer.Token,
		Criteria: criteria,
		Now:      timeNow(),
	}, projections.GetCatalogDeps{Events: backend, Profile: backend})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}

	pageEvents, pageInfo := listutil.Paginate(result.Events, pageParams)

	// Pagination links re-emit the current query minus the page number.
	baseQuery := url.Values{}
	for k, vs := range q {
		if k == "page" || k == "notice" || k == "error" {
			continue
		}
		baseQuery[k] = vs
	}

	renderTemplate(w, r, "catalog.html", map[string]any{
		"BaseQuery":      template.URL(baseQuery.Encode()),
		"Events":         pageEvents,
		"PageInfo":       pageInfo,
		"NoticeKey":      noticeKey(r),
		"Filtered":       result.Filtered,
		"Degraded":       result.Degraded,
		"Criteria":       criteria,
		"Query":          q,
		"PerPageOptions": listutil.PerPageOptions,
	})
}
