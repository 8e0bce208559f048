package ui

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/middleware"
	"motofibra/catalog/internal/models"
	"motofibra/catalog/internal/models/dtos"
	"motofibra/catalog/internal/services"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UIHandler manages all UI routes
type UIHandler struct {
	catalog *services.CatalogService
	reports *services.ReportService
	export  *services.ExportService
}

// NewUIHandler creates a new UI handler
func NewUIHandler(catalog *services.CatalogService, reports *services.ReportService, export *services.ExportService) *UIHandler {
	return &UIHandler{catalog: catalog, reports: reports, export: export}
}

func (h *UIHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	RenderTemplate(w, r, http.StatusOK, "home.html", map[string]interface{}{
		"Title": "MotoFibra catalog",
	})
}

// OrdersHandler renders the orders page. Orders are not tracked yet.
func (h *UIHandler) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	RenderTemplate(w, r, http.StatusOK, "orders.html", map[string]interface{}{
		"Title": "Orders",
	})
}

// ListPartsHandler renders the filtered parts list.
func (h *UIHandler) ListPartsHandler(w http.ResponseWriter, r *http.Request) {
	filter := common.PartFilterFromQuery(r.URL.Query())

	parts, err := h.catalog.FilterParts(r.Context(), filter)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	RenderTemplate(w, r, http.StatusOK, "parts/list.html", withEnums(map[string]interface{}{
		"Title":     "Parts",
		"Parts":     parts,
		"Filter":    filter,
		"ExportURL": "/parts/export.xlsx?" + r.URL.RawQuery,
	}))
}

func (h *UIHandler) NewPartFormHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPartForm(w, r, http.StatusOK, url.Values{}, nil)
}

// CreatePartHandler stores a part from the creation form and redirects to the
// list. Invalid input re-renders the form with 400.
func (h *UIHandler) CreatePartHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, constants.MsgInvalidForm)
		return
	}

	req, fieldErrs := parseCreateForm(r.PostForm)
	if len(fieldErrs) == 0 {
		part, err := h.catalog.CreatePart(r.Context(), req)
		if err == nil {
			logging.Debug("Part created from form", "part_id", part.ID)
			http.Redirect(w, r, "/parts", http.StatusSeeOther)
			return
		}
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			h.renderServiceError(w, r, err)
			return
		}
		fieldErrs = verr.Fields
	}

	h.renderPartForm(w, r, http.StatusBadRequest, r.PostForm, fieldErrs)
}

func (h *UIHandler) renderPartForm(w http.ResponseWriter, r *http.Request, status int, form url.Values, errs map[string]string) {
	RenderTemplate(w, r, status, "parts/new.html", withEnums(map[string]interface{}{
		"Title":  "New part",
		"Form":   form,
		"Errors": errs,
	}))
}

// ViewPartHandler renders a part with its details, if any.
func (h *UIHandler) ViewPartHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	view, err := h.catalog.GetPartWithDetails(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	data := map[string]interface{}{
		"Title":   view.Part.Name,
		"Part":    view.Part,
		"Details": view.Details,
	}
	if view.Details != nil {
		if hours, known := view.Details.LabourHours(); known {
			data["LabourHours"] = &hours
		}
	}
	RenderTemplate(w, r, http.StatusOK, "parts/view.html", data)
}

func (h *UIHandler) EditPartFormHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	part, err := h.catalog.GetPart(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderEditForm(w, r, http.StatusOK, id, partFormValues(part), nil)
}

// UpdatePartHandler applies the edit form and redirects to the part page.
func (h *UIHandler) UpdatePartHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, constants.MsgInvalidForm)
		return
	}

	_, err := h.catalog.UpdatePart(r.Context(), id, parseUpdateForm(r.PostForm))
	if err == nil {
		http.Redirect(w, r, fmt.Sprintf("/parts/%d", id), http.StatusSeeOther)
		return
	}

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderEditForm(w, r, http.StatusBadRequest, id, r.PostForm, verr.Fields)
}

func (h *UIHandler) renderEditForm(w http.ResponseWriter, r *http.Request, status int, id uint, form url.Values, errs map[string]string) {
	RenderTemplate(w, r, status, "parts/edit.html", withEnums(map[string]interface{}{
		"Title":  "Edit part",
		"PartID": id,
		"Form":   form,
		"Errors": errs,
	}))
}

// DetailsFormHandler renders the details form prefilled with stored values.
func (h *UIHandler) DetailsFormHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	view, err := h.catalog.GetPartWithDetails(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderDetailsForm(w, r, http.StatusOK, id, view.Part.Name, detailsFormValues(view.Details), nil)
}

// SaveDetailsHandler creates or merges the part's details from the form.
func (h *UIHandler) SaveDetailsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, constants.MsgInvalidForm)
		return
	}

	part, err := h.catalog.GetPart(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	req, fieldErrs := parseDetailsForm(r.PostForm)
	if len(fieldErrs) == 0 {
		_, err := h.catalog.CreateOrMergeDetails(r.Context(), id, req)
		if err == nil {
			http.Redirect(w, r, fmt.Sprintf("/parts/%d", id), http.StatusSeeOther)
			return
		}
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			h.renderServiceError(w, r, err)
			return
		}
		fieldErrs = verr.Fields
	}
	h.renderDetailsForm(w, r, http.StatusBadRequest, id, part.Name, r.PostForm, fieldErrs)
}

func (h *UIHandler) renderDetailsForm(w http.ResponseWriter, r *http.Request, status int, id uint, name string, form url.Values, errs map[string]string) {
	RenderTemplate(w, r, status, "parts/details.html", map[string]interface{}{
		"Title":    "Details of " + name,
		"PartID":   id,
		"PartName": name,
		"Form":     form,
		"Errors":   errs,
		"Policy":   h.catalog.MergePolicy().String(),
	})
}

// CompareHandler renders the picker without ids and the comparison with both.
func (h *UIHandler) CompareHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("id1") == "" && q.Get("id2") == "" {
		h.renderComparePicker(w, r, http.StatusOK, "")
		return
	}

	if q.Get("id1") == "" || q.Get("id2") == "" {
		h.renderComparePicker(w, r, http.StatusBadRequest, constants.MsgCompareIDsMissing)
		return
	}
	id1, err1 := common.ParseID(q.Get("id1"))
	id2, err2 := common.ParseID(q.Get("id2"))
	if err1 != nil || err2 != nil {
		h.renderComparePicker(w, r, http.StatusBadRequest, constants.MsgInvalidPartID)
		return
	}

	cmp, err := h.catalog.Compare(r.Context(), id1, id2)
	if err != nil {
		if errors.Is(err, models.ErrDetailsNotFound) {
			h.renderComparePicker(w, r, http.StatusConflict, err.Error())
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	RenderTemplate(w, r, http.StatusOK, "parts/compare.html", map[string]interface{}{
		"Title":      "Compare parts",
		"Comparison": cmp,
	})
}

func (h *UIHandler) renderComparePicker(w http.ResponseWriter, r *http.Request, status int, message string) {
	parts, err := h.catalog.FilterParts(r.Context(), dtos.PartFilter{})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	RenderTemplate(w, r, status, "parts/compare.html", map[string]interface{}{
		"Title":   "Compare parts",
		"Parts":   parts,
		"Message": message,
		"ID1":     r.URL.Query().Get("id1"),
		"ID2":     r.URL.Query().Get("id2"),
	})
}

// ExportHandler streams the filtered catalog as an XLSX workbook.
func (h *UIHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	filter := common.PartFilterFromQuery(r.URL.Query())

	f, err := h.export.ExportParts(r.Context(), filter)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="parts.xlsx"`)
	if err := f.Write(w); err != nil {
		logging.Error("Failed to write export", "error", err.Error())
	}
}

// CategoryReportHandler renders per-category totals, optionally for one client.
func (h *UIHandler) CategoryReportHandler(w http.ResponseWriter, r *http.Request) {
	client := r.URL.Query().Get("client")
	if client != "" && !constants.IsClient(client) {
		h.renderError(w, r, http.StatusBadRequest, "unknown client "+client)
		return
	}

	rows, err := h.reports.CategorySummary(r.Context(), client)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	RenderTemplate(w, r, http.StatusOK, "reports.html", map[string]interface{}{
		"Title":   "Category report",
		"Rows":    rows,
		"Client":  client,
		"Clients": constants.Clients,
	})
}

// SetThemeHandler stores the theme cookie and returns to the previous page.
func (h *UIHandler) SetThemeHandler(w http.ResponseWriter, r *http.Request) {
	theme := r.FormValue("theme")
	if !middleware.IsValidTheme(theme) {
		theme = "light"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.ThemeCookie,
		Value:    theme,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	back := "/"
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" {
		back = ref.RequestURI()
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *UIHandler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := common.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, constants.MsgInvalidPartID)
		return 0, false
	}
	return id, true
}

func (h *UIHandler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrPartNotFound):
		h.renderError(w, r, http.StatusNotFound, constants.MsgPartNotFound)
	case errors.Is(err, models.ErrDetailsNotFound):
		h.renderError(w, r, http.StatusConflict, err.Error())
	default:
		logging.Error("UI request failed", "path", r.URL.Path, "error", err.Error())
		h.renderError(w, r, http.StatusInternalServerError, constants.MsgInternalError)
	}
}

func (h *UIHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RenderTemplate(w, r, status, "error.html", map[string]interface{}{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

func withEnums(data map[string]interface{}) map[string]interface{} {
	data["Brands"] = constants.Brands
	data["Clients"] = constants.Clients
	data["Categories"] = constants.Categories
	return data
}
